package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startedSession returns a session in its first regular period with both goalkeepers set.
func startedSession(t *testing.T) Session {
	t.Helper()

	s, err := NewSession().SetInitialGoalkeeper(SideA, "1")
	require.NoError(t, err)
	s, err = s.SetInitialGoalkeeper(SideB, "1")
	require.NoError(t, err)
	s, err = s.StartPeriod(PeriodRegular)
	require.NoError(t, err)
	return s
}

func record(t *testing.T, s Session, side Side, player string, action ActionCode, outcome Outcome) Session {
	t.Helper()

	s, err := s.SelectPlayer(side, player)
	require.NoError(t, err)
	if action != ActionNone {
		s, err = s.ChooseAction(action)
		require.NoError(t, err)
	}
	s, res, err := s.Resolve(outcome)
	require.NoError(t, err)
	require.True(t, res.Appended)
	return s
}

func TestStartPeriodRequiresGoalkeepers(t *testing.T) {
	s, err := NewSession().SetInitialGoalkeeper(SideA, "1")
	require.NoError(t, err)

	_, err = s.StartPeriod(PeriodRegular)
	require.ErrorIs(t, err, ErrGoalkeepersMissing)

	s, err = s.SetInitialGoalkeeper(SideB, "16")
	require.NoError(t, err)
	s, err = s.StartPeriod(PeriodRegular)
	require.NoError(t, err)

	assert.Equal(t, 1, s.Period)
	assert.True(t, s.Clock.Running)
	require.Len(t, s.Events, 2)
	assert.Equal(t, KindGoalkeeperChange, s.Events[0].Kind)
	assert.Equal(t, "1", s.Events[0].Player)
	assert.Equal(t, SideB, s.Events[1].Side)
	assert.Equal(t, "16", s.Events[1].Player)
}

func TestInitialGoalkeeperLockedAfterStart(t *testing.T) {
	s := startedSession(t)

	_, err := s.SetInitialGoalkeeper(SideA, "12")
	require.ErrorIs(t, err, ErrGoalkeeperLocked)
}

func TestSelectPlayerRequiresRunningClock(t *testing.T) {
	s := startedSession(t).Pause()

	_, err := s.SelectPlayer(SideA, "7")
	require.ErrorIs(t, err, ErrClockStopped)
}

func TestEntryStagesAdvanceInOrder(t *testing.T) {
	s := startedSession(t)

	_, err := s.ChooseAction(ActionYellowCard)
	require.ErrorIs(t, err, ErrEntryOutOfOrder)

	s, err = s.SelectPlayer(SideA, "7")
	require.NoError(t, err)
	assert.Equal(t, StagePlayerSelected, s.Entry.Stage())

	_, err = s.SelectPlayer(SideA, "8")
	require.ErrorIs(t, err, ErrEntryOutOfOrder)

	_, err = s.ChooseZone(ZoneTopLeft)
	require.ErrorIs(t, err, ErrZoneWithoutShot)

	s, err = s.ChooseCourtPosition(CourtPoint{X: 300, Y: 250})
	require.NoError(t, err)
	assert.Equal(t, StageActionChosen, s.Entry.Stage())

	_, err = s.ChooseAction(ActionFastBreak)
	require.ErrorIs(t, err, ErrEntryConflict)

	s, err = s.ChooseZone(ZoneBottomRight)
	require.NoError(t, err)
	assert.Equal(t, StageZoneChosen, s.Entry.Stage())

	s = s.ClearEntry()
	assert.Equal(t, StageIdle, s.Entry.Stage())
}

func TestZoneOnlyForShots(t *testing.T) {
	s := startedSession(t)
	s, err := s.SelectPlayer(SideA, "7")
	require.NoError(t, err)
	s, err = s.ChooseAction(ActionSuspension)
	require.NoError(t, err)

	_, err = s.ChooseZone(ZoneTopLeft)
	require.ErrorIs(t, err, ErrZoneWithoutShot)

	s = s.ClearEntry()
	s, err = s.SelectPlayer(SideA, "7")
	require.NoError(t, err)
	s, err = s.ChooseAction(ActionSevenMeter)
	require.NoError(t, err)
	s, err = s.ChooseZone(ZoneTopLeft)
	require.NoError(t, err)
	assert.Equal(t, ZoneTopLeft, s.Entry.Zone)
}

func TestCourtPositionInsideGoalAreaRejected(t *testing.T) {
	s := startedSession(t)
	s, err := s.SelectPlayer(SideA, "7")
	require.NoError(t, err)

	_, err = s.ChooseCourtPosition(CourtPoint{X: 300, Y: 100})
	require.ErrorIs(t, err, ErrInvalidCourtPoint)
}

func TestResolveWithoutPlayerIsNoOp(t *testing.T) {
	s := startedSession(t)

	next, res, err := s.Resolve(OutcomeA)
	require.NoError(t, err)
	assert.False(t, res.Appended)
	assert.False(t, res.NeedsConfirmation)
	assert.Equal(t, s, next)
}

func TestResolveGoalUpdatesScoreAndClearsEntry(t *testing.T) {
	s := startedSession(t)
	s = s.Tick().Tick()

	s, err := s.SelectPlayer(SideA, "7")
	require.NoError(t, err)
	s, err = s.ChooseCourtPosition(CourtPoint{X: 120, Y: 300})
	require.NoError(t, err)
	s, res, err := s.Resolve(OutcomeA)
	require.NoError(t, err)

	require.True(t, res.Appended)
	assert.Equal(t, 1, s.ScoreA)
	assert.Equal(t, 0, s.ScoreB)
	assert.Equal(t, StageIdle, s.Entry.Stage())

	ev, ok := s.LastEvent()
	require.True(t, ok)
	assert.Equal(t, KindShot, ev.Kind)
	assert.Equal(t, 2, ev.ClockSeconds)
	assert.Equal(t, 1, ev.ScoreA)
	assert.Equal(t, 1, ev.Period)
	assert.Equal(t, PeriodRegular, ev.PeriodKind)
}

func TestResolveOtherSideNeedsConfirmation(t *testing.T) {
	s := startedSession(t)
	before := len(s.Events)

	s, err := s.SelectPlayer(SideA, "7")
	require.NoError(t, err)
	s, res, err := s.Resolve(OutcomeB)
	require.NoError(t, err)
	assert.True(t, res.NeedsConfirmation)
	assert.False(t, res.Appended)
	assert.Len(t, s.Events, before)
	assert.Equal(t, 0, s.ScoreB)
	assert.Equal(t, OutcomeB, s.Entry.AwaitingOutcome)

	s, res, err = s.ConfirmAttribution()
	require.NoError(t, err)
	assert.True(t, res.Appended)
	assert.Len(t, s.Events, before+1)
	assert.Equal(t, 1, s.ScoreB)
	assert.Equal(t, StageIdle, s.Entry.Stage())
}

func TestCancelAttributionKeepsEntry(t *testing.T) {
	s := startedSession(t)
	s, err := s.SelectPlayer(SideA, "7")
	require.NoError(t, err)
	s, _, err = s.Resolve(OutcomeB)
	require.NoError(t, err)

	s, err = s.CancelAttribution()
	require.NoError(t, err)
	assert.Equal(t, OutcomeNone, s.Entry.AwaitingOutcome)
	assert.Equal(t, "7", s.Entry.Player)

	_, _, err = s.ConfirmAttribution()
	require.ErrorIs(t, err, ErrNoPendingConfirmation)

	s, res, err := s.Resolve(OutcomeA)
	require.NoError(t, err)
	assert.True(t, res.Appended)
	assert.Equal(t, 1, s.ScoreA)
	assert.Equal(t, 0, s.ScoreB)
}

func TestDeleteEventRollsBackGoal(t *testing.T) {
	s := startedSession(t)
	s = record(t, s, SideA, "7", ActionNone, OutcomeA)
	s = record(t, s, SideA, "9", ActionFastBreak, OutcomeA)
	s = record(t, s, SideB, "3", ActionNone, OutcomeB)
	require.Equal(t, 2, s.ScoreA)

	goalIndex := len(s.Events) - 3
	s, removed, err := s.DeleteEvent(goalIndex)
	require.NoError(t, err)
	assert.Equal(t, "7", removed.Player)
	assert.Equal(t, 1, s.ScoreA)
	assert.Equal(t, 1, s.ScoreB)

	last, _ := s.LastEvent()
	assert.Equal(t, 2, last.ScoreA, "remaining snapshots are not rewritten")

	_, _, err = s.DeleteEvent(len(s.Events))
	require.ErrorIs(t, err, ErrEventIndex)
}

func TestDeleteDoesNotMutateOriginal(t *testing.T) {
	s := record(t, startedSession(t), SideA, "7", ActionNone, OutcomeA)
	events := len(s.Events)

	_, _, err := s.DeleteEvent(events - 1)
	require.NoError(t, err)
	assert.Len(t, s.Events, events)
	assert.Equal(t, 1, s.ScoreA)
}

func TestDeleteGoalkeeperChangeRestoresPreviousKeeper(t *testing.T) {
	s := startedSession(t)
	s, err := s.SubstituteGoalkeeper(SideB, "12")
	require.NoError(t, err)
	substitution := len(s.Events) - 1

	s, removed, err := s.DeleteEvent(substitution)
	require.NoError(t, err)
	assert.Equal(t, "12", removed.Player)
	assert.Equal(t, "1", s.Goalkeepers.B)
	assert.Equal(t, RestoreSession(s.Events).Goalkeepers, s.Goalkeepers)

	s = record(t, s, SideA, "7", ActionBlock, OutcomeNoGoal)
	box := s.BoxScore(testRosters())
	assert.Equal(t, 1, box.Get(SideB, s.Goalkeepers.B).Saves)
	assert.Equal(t, 0, box.Get(SideB, "12").Saves)
}

func TestStartingGoalkeeperEntriesCannotBeDeleted(t *testing.T) {
	s := startedSession(t)
	s, err := s.SubstituteGoalkeeper(SideA, "2")
	require.NoError(t, err)

	for _, index := range []int{0, 1} {
		_, _, err := s.DeleteEvent(index)
		require.ErrorIs(t, err, ErrStartingGoalkeeper)
	}

	s, _, err = s.DeleteEvent(2)
	require.NoError(t, err)
	assert.Equal(t, Goalkeepers{A: "1", B: "1"}, s.Goalkeepers)
}

func TestEndPeriodAppendsDivider(t *testing.T) {
	s := startedSession(t)
	_, err := s.EndPeriod()
	require.ErrorIs(t, err, ErrPeriodNotOver)

	for i := 0; i < RegularPeriodSeconds; i++ {
		s = s.Tick()
	}
	s.Entry = Entry{Side: SideA, Player: "7"}

	s, err = s.EndPeriod()
	require.NoError(t, err)
	last, _ := s.LastEvent()
	assert.Equal(t, KindPeriodEnd, last.Kind)
	assert.Equal(t, SideNone, last.Side)
	assert.Equal(t, RegularPeriodSeconds, last.ClockSeconds)
	assert.Equal(t, StageIdle, s.Entry.Stage())
	assert.Equal(t, PeriodNone, s.Clock.Kind)

	s, err = s.StartPeriod(PeriodRegular)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Period)
}

func TestSubstituteGoalkeeperLogsPreviousScore(t *testing.T) {
	s := startedSession(t)
	s = record(t, s, SideA, "7", ActionNone, OutcomeA)

	s, err := s.SubstituteGoalkeeper(SideB, "12")
	require.NoError(t, err)
	assert.Equal(t, "12", s.Goalkeepers.B)

	last, _ := s.LastEvent()
	assert.Equal(t, KindGoalkeeperChange, last.Kind)
	assert.Equal(t, SideB, last.Side)
	assert.Equal(t, 1, last.ScoreA)

	_, err = NewSession().SubstituteGoalkeeper(SideA, "2")
	require.ErrorIs(t, err, ErrMatchNotStarted)
}

func TestCallTimeout(t *testing.T) {
	s := startedSession(t)

	_, err := s.CallTimeout(SideA, MaxTimeouts)
	require.ErrorIs(t, err, ErrTimeoutsExhausted)

	s, err = s.CallTimeout(SideA, 2)
	require.NoError(t, err)
	assert.False(t, s.Clock.Running)

	_, err = s.CallTimeout(SideB, 0)
	require.ErrorIs(t, err, ErrClockStopped)
}

func TestRestoreSession(t *testing.T) {
	s := startedSession(t)
	s = record(t, s, SideA, "7", ActionNone, OutcomeA)
	s, err := s.SubstituteGoalkeeper(SideB, "12")
	require.NoError(t, err)
	s = record(t, s, SideB, "5", ActionNone, OutcomeB)
	s = record(t, s, SideB, "5", ActionNone, OutcomeB)

	restored := RestoreSession(s.Events)
	assert.Equal(t, s.ScoreA, restored.ScoreA)
	assert.Equal(t, s.ScoreB, restored.ScoreB)
	assert.Equal(t, "12", restored.Goalkeepers.B)
	assert.Equal(t, 1, restored.Period)
	assert.True(t, restored.MatchStarted)
	assert.False(t, restored.Clock.Running)
}
