package match

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActionCode(t *testing.T) {
	tests := []struct {
		raw      string
		want     ActionCode
		category ActionCategory
		wantErr  bool
	}{
		{raw: "f", want: ActionFastBreak, category: CategoryShotContext},
		{raw: "7", want: ActionSevenMeter, category: CategoryShotContext},
		{raw: " bt ", want: ActionBreakthrough, category: CategoryShotContext},
		{raw: "2'", want: ActionSuspension, category: CategorySanction},
		{raw: "DR", want: ActionDisqualificationReport, category: CategorySanction},
		{raw: "p", want: ActionPassivePlay, category: CategoryTechnicalFault},
		{raw: "X", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.raw, func(t *testing.T) {
			got, err := ParseActionCode(test.raw)
			if test.wantErr {
				require.ErrorIs(t, err, ErrUnknownActionCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
			assert.Equal(t, test.category, got.Category())
		})
	}
}

func TestEveryListedActionCodeHasACategory(t *testing.T) {
	for _, code := range ActionCodes {
		assert.NotEqual(t, CategoryNone, code.Category(), "code %q", code)
	}
	assert.Len(t, ActionCodes, len(actionCategories))
}

func TestParseSideAndOutcome(t *testing.T) {
	side, err := ParseSide("b")
	require.NoError(t, err)
	assert.Equal(t, SideB, side)
	assert.Equal(t, SideA, side.Opponent())

	_, err = ParseSide("C")
	require.ErrorIs(t, err, ErrUnknownSide)

	outcome, err := ParseOutcome("n")
	require.NoError(t, err)
	_, scored := outcome.ScoringSide()
	assert.False(t, scored)

	_, err = ParseOutcome("draw")
	require.ErrorIs(t, err, ErrUnknownOutcome)
}

func TestParseGoalZone(t *testing.T) {
	zone, err := ParseGoalZone("off")
	require.NoError(t, err)
	assert.Equal(t, ZoneOff, zone)

	_, err = ParseGoalZone("XX")
	require.ErrorIs(t, err, ErrUnknownZone)
}

func TestCourtPointValid(t *testing.T) {
	tests := []struct {
		name  string
		point CourtPoint
		want  bool
	}{
		{name: "nine_metres_centre", point: CourtPoint{X: 300, Y: 270}, want: true},
		{name: "wing", point: CourtPoint{X: 10, Y: 20}, want: true},
		{name: "goal_area_centre", point: CourtPoint{X: 300, Y: 150}, want: false},
		{name: "goal_area_arc", point: CourtPoint{X: 400, Y: 100}, want: false},
		{name: "on_goal_area_line", point: CourtPoint{X: 300, Y: 180}, want: false},
		{name: "off_court", point: CourtPoint{X: -1, Y: 300}, want: false},
		{name: "beyond_half", point: CourtPoint{X: 300, Y: 401}, want: false},
		{name: "nan", point: CourtPoint{X: math.NaN(), Y: 300}, want: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, test.point.Valid())
		})
	}
}

func TestEventIsShotAttempt(t *testing.T) {
	assert.True(t, Event{Court: &CourtPoint{X: 100, Y: 300}}.IsShotAttempt())
	assert.True(t, Event{Action: ActionSevenMeter}.IsShotAttempt())
	assert.False(t, Event{Action: ActionYellowCard}.IsShotAttempt())
	assert.False(t, Event{}.IsShotAttempt())
}
