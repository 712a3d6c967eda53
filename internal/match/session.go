// Package match holds the recorder state machine for a single handball game and the
// statistics derived from its event log. It has no I/O.
package match

import (
	"errors"
	"slices"
	"strings"
)

var (
	ErrClockStopped          = errors.New("clock is not running")
	ErrMatchNotStarted       = errors.New("match has not started")
	ErrEntryOutOfOrder       = errors.New("entry step out of order")
	ErrEntryConflict         = errors.New("entry already has an action or court position")
	ErrZoneWithoutShot       = errors.New("goal zone only applies to shot attempts")
	ErrNoPendingConfirmation = errors.New("no outcome is awaiting confirmation")
	ErrEventIndex            = errors.New("event index out of range")
	ErrTimeoutsExhausted     = errors.New("team has used all of its timeouts")
	ErrPeriodNotOver         = errors.New("period cannot be ended yet")
	ErrStartingGoalkeeper    = errors.New("starting goalkeeper entries cannot be deleted")
)

// MaxTimeouts is the number of team timeouts allowed per game.
const MaxTimeouts = 3

// BenchCodes are the team-official identifiers that can be selected instead of a jersey.
var BenchCodes = []string{"A", "B", "C", "D"}

// Stage is how far a pending entry has progressed.
type Stage string

const (
	StageIdle           Stage = "idle"
	StagePlayerSelected Stage = "player_selected"
	StageActionChosen   Stage = "action_chosen"
	StageZoneChosen     Stage = "zone_chosen"
)

// Entry is the operator's in-progress record before an outcome is confirmed.
type Entry struct {
	Side   Side        `json:"side,omitempty"`
	Player string      `json:"player,omitempty"`
	Action ActionCode  `json:"action,omitempty"`
	Court  *CourtPoint `json:"court,omitempty"`
	Zone   GoalZone    `json:"zone,omitempty"`
	// AwaitingOutcome holds an outcome for the other team until the operator confirms it.
	AwaitingOutcome Outcome `json:"awaitingOutcome,omitempty"`
	// ConfirmedOutcome is the cross-team outcome the operator already approved for this entry.
	ConfirmedOutcome Outcome `json:"confirmedOutcome,omitempty"`
}

func (e Entry) Stage() Stage {
	switch {
	case e.Player == "":
		return StageIdle
	case e.Zone != ZoneNone:
		return StageZoneChosen
	case e.Action != ActionNone || e.Court != nil:
		return StageActionChosen
	default:
		return StagePlayerSelected
	}
}

func (e Entry) IsShotAttempt() bool {
	return e.Court != nil || e.Action.IsShot()
}

// Resolution describes what Resolve did with the pending entry.
type Resolution struct {
	Appended          bool    `json:"appended"`
	NeedsConfirmation bool    `json:"needsConfirmation"`
	Outcome           Outcome `json:"outcome,omitempty"`
	Event             *Event  `json:"event,omitempty"`
}

// Session is the full recorder state for one game. Every operation returns the next
// state and leaves the receiver untouched, so callers decide when to commit.
type Session struct {
	Clock        Clock       `json:"clock"`
	Period       int         `json:"period"`
	MatchStarted bool        `json:"matchStarted"`
	Goalkeepers  Goalkeepers `json:"goalkeepers"`
	Entry        Entry       `json:"entry"`
	Events       []Event     `json:"events"`
	ScoreA       int         `json:"scoreA"`
	ScoreB       int         `json:"scoreB"`
}

func NewSession() Session {
	return Session{Clock: NewClock()}
}

// RestoreSession rebuilds a session from a stored log. The clock is not persisted and
// comes back idle.
func RestoreSession(events []Event) Session {
	s := NewSession()
	s.Events = slices.Clone(events)
	s.Goalkeepers = keepersFromLog(events)
	for _, ev := range events {
		if ev.Period > s.Period {
			s.Period = ev.Period
		}
		if side, ok := ev.Outcome.ScoringSide(); ok {
			s = s.addScore(side, 1)
		}
	}
	s.MatchStarted = len(events) > 0
	return s
}

func (s Session) Score(side Side) int {
	switch side {
	case SideA:
		return s.ScoreA
	case SideB:
		return s.ScoreB
	default:
		return 0
	}
}

// SetInitialGoalkeeper picks a team's starting goalkeeper. The choice can be changed
// freely until the first period starts.
func (s Session) SetInitialGoalkeeper(side Side, player string) (Session, error) {
	if s.MatchStarted {
		return s, ErrGoalkeeperLocked
	}
	keepers, err := s.Goalkeepers.With(side, player)
	if err != nil {
		return s, err
	}
	s.Goalkeepers = keepers
	return s, nil
}

// StartPeriod puts a new period on the clock. The first period also records the
// starting goalkeepers in the log.
func (s Session) StartPeriod(kind PeriodKind) (Session, error) {
	if !s.MatchStarted && !s.Goalkeepers.Ready() {
		return s, ErrGoalkeepersMissing
	}
	clock, err := s.Clock.Start(kind.Limit(), kind)
	if err != nil {
		return s, err
	}
	s.Clock = clock
	s.Period++
	if !s.MatchStarted {
		s.MatchStarted = true
		s = s.appendEvent(s.goalkeeperEvent(SideA, s.Goalkeepers.A))
		s = s.appendEvent(s.goalkeeperEvent(SideB, s.Goalkeepers.B))
	}
	return s, nil
}

func (s Session) Pause() Session {
	s.Clock = s.Clock.Pause()
	return s
}

func (s Session) Resume() Session {
	s.Clock = s.Clock.Resume()
	return s
}

func (s Session) Tick() Session {
	s.Clock = s.Clock.Tick()
	return s
}

// ResetClock puts the clock back to its idle state. The log and score are kept.
func (s Session) ResetClock() Session {
	s.Clock = s.Clock.Reset()
	return s
}

// EndPeriod closes a finished period, appends a divider to the log and drops any
// pending entry.
func (s Session) EndPeriod() (Session, error) {
	clock, ended := s.Clock.EndPeriod()
	if !ended {
		return s, ErrPeriodNotOver
	}
	divider := Event{
		Period:       s.Period,
		PeriodKind:   s.Clock.Kind,
		ClockSeconds: s.Clock.Elapsed,
		Kind:         KindPeriodEnd,
		ScoreA:       s.ScoreA,
		ScoreB:       s.ScoreB,
	}
	s = s.appendEvent(divider)
	s.Clock = clock
	s.Entry = Entry{}
	return s, nil
}

// SubstituteGoalkeeper puts a new goalkeeper in goal and logs the change with the score
// as it stood before the change.
func (s Session) SubstituteGoalkeeper(side Side, player string) (Session, error) {
	if !s.MatchStarted {
		return s, ErrMatchNotStarted
	}
	keepers, err := s.Goalkeepers.With(side, player)
	if err != nil {
		return s, err
	}
	s.Goalkeepers = keepers
	s = s.appendEvent(s.goalkeeperEvent(side, keepers.Current(side)))
	return s, nil
}

// CallTimeout validates a team timeout against the number already used and stops the clock.
func (s Session) CallTimeout(side Side, used int) (Session, error) {
	if !side.Valid() {
		return s, ErrUnknownSide
	}
	if !s.Clock.Running {
		return s, ErrClockStopped
	}
	if used >= MaxTimeouts {
		return s, ErrTimeoutsExhausted
	}
	return s.Pause(), nil
}

func (s Session) SelectPlayer(side Side, player string) (Session, error) {
	if !side.Valid() {
		return s, ErrUnknownSide
	}
	player = strings.TrimSpace(player)
	if player == "" {
		return s, ErrEmptyPlayer
	}
	if !s.Clock.Running {
		return s, ErrClockStopped
	}
	if s.Entry.Stage() != StageIdle {
		return s, ErrEntryOutOfOrder
	}
	s.Entry = Entry{Side: side, Player: player}
	return s, nil
}

func (s Session) ChooseAction(code ActionCode) (Session, error) {
	if code.Category() == CategoryNone {
		return s, ErrUnknownActionCode
	}
	if err := s.Entry.readyForAction(); err != nil {
		return s, err
	}
	s.Entry.Action = code
	return s, nil
}

func (s Session) ChooseCourtPosition(point CourtPoint) (Session, error) {
	if !point.Valid() {
		return s, ErrInvalidCourtPoint
	}
	if err := s.Entry.readyForAction(); err != nil {
		return s, err
	}
	s.Entry.Court = &point
	return s, nil
}

func (s Session) ChooseZone(zone GoalZone) (Session, error) {
	if _, ok := goalZones[zone]; !ok {
		return s, ErrUnknownZone
	}
	switch s.Entry.Stage() {
	case StageIdle, StageZoneChosen:
		return s, ErrEntryOutOfOrder
	}
	if !s.Entry.IsShotAttempt() {
		return s, ErrZoneWithoutShot
	}
	s.Entry.Zone = zone
	return s, nil
}

func (s Session) ClearEntry() Session {
	s.Entry = Entry{}
	return s
}

// Resolve records the pending entry with the given outcome. Without a selected player it
// does nothing. A goal for the team that was not selected is held back until confirmed.
func (s Session) Resolve(outcome Outcome) (Session, Resolution, error) {
	switch outcome {
	case OutcomeA, OutcomeB, OutcomeNoGoal:
	default:
		return s, Resolution{}, ErrUnknownOutcome
	}
	if s.Entry.Stage() == StageIdle {
		return s, Resolution{}, nil
	}

	if scorer, ok := outcome.ScoringSide(); ok && scorer != s.Entry.Side && outcome != s.Entry.ConfirmedOutcome {
		s.Entry.AwaitingOutcome = outcome
		return s, Resolution{NeedsConfirmation: true, Outcome: outcome}, nil
	}

	entry := s.Entry
	if scorer, ok := outcome.ScoringSide(); ok {
		s = s.addScore(scorer, 1)
	}
	kind := KindAction
	if entry.IsShotAttempt() || outcome != OutcomeNoGoal {
		kind = KindShot
	}
	ev := Event{
		Period:       s.Period,
		PeriodKind:   s.Clock.Kind,
		ClockSeconds: s.Clock.Elapsed,
		Side:         entry.Side,
		Player:       entry.Player,
		Kind:         kind,
		Action:       entry.Action,
		Zone:         entry.Zone,
		Court:        entry.Court,
		Outcome:      outcome,
		ScoreA:       s.ScoreA,
		ScoreB:       s.ScoreB,
	}
	s = s.appendEvent(ev)
	s.Entry = Entry{}
	return s, Resolution{Appended: true, Outcome: outcome, Event: &ev}, nil
}

// ConfirmAttribution approves the outcome held back by Resolve and records it.
func (s Session) ConfirmAttribution() (Session, Resolution, error) {
	outcome := s.Entry.AwaitingOutcome
	if outcome == OutcomeNone {
		return s, Resolution{}, ErrNoPendingConfirmation
	}
	s.Entry.AwaitingOutcome = OutcomeNone
	s.Entry.ConfirmedOutcome = outcome
	return s.Resolve(outcome)
}

// CancelAttribution drops the held-back outcome; the entry stays as it was.
func (s Session) CancelAttribution() (Session, error) {
	if s.Entry.AwaitingOutcome == OutcomeNone {
		return s, ErrNoPendingConfirmation
	}
	s.Entry.AwaitingOutcome = OutcomeNone
	return s, nil
}

// DeleteEvent removes the event at index and takes back the goal it scored. Snapshots
// on the remaining events are left as they were recorded.
func (s Session) DeleteEvent(index int) (Session, Event, error) {
	if index < 0 || index >= len(s.Events) {
		return s, Event{}, ErrEventIndex
	}
	removed := s.Events[index]
	if isStartingGoalkeeper(s.Events, index) {
		return s, Event{}, ErrStartingGoalkeeper
	}
	if side, ok := removed.Outcome.ScoringSide(); ok {
		s = s.addScore(side, -1)
	}
	s.Events = slices.Delete(slices.Clone(s.Events), index, index+1)
	if removed.Kind == KindGoalkeeperChange {
		s.Goalkeepers = keepersFromLog(s.Events)
	}
	return s, removed, nil
}

// keepersFromLog replays the goalkeeper changes of a log in order.
func keepersFromLog(events []Event) Goalkeepers {
	var keepers Goalkeepers
	for _, ev := range events {
		if ev.Kind != KindGoalkeeperChange {
			continue
		}
		if next, err := keepers.With(ev.Side, ev.Player); err == nil {
			keepers = next
		}
	}
	return keepers
}

// isStartingGoalkeeper reports whether the event at index is the first goalkeeper entry
// of its side, the one logged when the match started.
func isStartingGoalkeeper(events []Event, index int) bool {
	ev := events[index]
	if ev.Kind != KindGoalkeeperChange {
		return false
	}
	for _, earlier := range events[:index] {
		if earlier.Kind == KindGoalkeeperChange && earlier.Side == ev.Side {
			return false
		}
	}
	return true
}

// LastEvent returns the most recently appended event.
func (s Session) LastEvent() (Event, bool) {
	if len(s.Events) == 0 {
		return Event{}, false
	}
	return s.Events[len(s.Events)-1], true
}

// WithEventID stamps the store ID onto the event at index.
func (s Session) WithEventID(index int, id int64) Session {
	if index < 0 || index >= len(s.Events) {
		return s
	}
	s.Events = slices.Clone(s.Events)
	s.Events[index].ID = id
	return s
}

func (s Session) BoxScore(rosters Rosters) BoxScore {
	return Aggregate(s.Events, rosters)
}

func (s Session) goalkeeperEvent(side Side, player string) Event {
	return Event{
		Period:       s.Period,
		PeriodKind:   s.Clock.Kind,
		ClockSeconds: s.Clock.Elapsed,
		Side:         side,
		Player:       player,
		Kind:         KindGoalkeeperChange,
		ScoreA:       s.ScoreA,
		ScoreB:       s.ScoreB,
	}
}

func (s Session) appendEvent(ev Event) Session {
	events := make([]Event, len(s.Events), len(s.Events)+1)
	copy(events, s.Events)
	s.Events = append(events, ev)
	return s
}

func (s Session) addScore(side Side, delta int) Session {
	switch side {
	case SideA:
		s.ScoreA = max(0, s.ScoreA+delta)
	case SideB:
		s.ScoreB = max(0, s.ScoreB+delta)
	}
	return s
}

func (e Entry) readyForAction() error {
	switch e.Stage() {
	case StageIdle:
		return ErrEntryOutOfOrder
	case StagePlayerSelected:
		return nil
	default:
		return ErrEntryConflict
	}
}
