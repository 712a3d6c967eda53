package gamelog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codr1/handball-record/internal/match"
	"github.com/codr1/handball-record/internal/testutil"
)

func TestAppendLoadDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	game := testutil.SeedGame(t, database, 1, "U14", "Lions", "Bears")

	shot := match.Event{
		Period:       1,
		PeriodKind:   match.PeriodRegular,
		ClockSeconds: 95,
		Side:         match.SideA,
		Player:       "7",
		Kind:         match.KindShot,
		Zone:         match.ZoneTopLeft,
		Court:        &match.CourtPoint{X: 120.5, Y: 310},
		Outcome:      match.OutcomeA,
		ScoreA:       1,
	}
	card := match.Event{
		Period:     1,
		PeriodKind: match.PeriodRegular,
		Side:       match.SideB,
		Player:     "5",
		Kind:       match.KindAction,
		Action:     match.ActionSuspension,
		Outcome:    match.OutcomeNoGoal,
		ScoreA:     1,
	}

	stored, err := Append(ctx, database.Queries, game.ID, shot)
	require.NoError(t, err)
	assert.NotZero(t, stored.ID)
	_, err = Append(ctx, database.Queries, game.ID, card)
	require.NoError(t, err)

	events, err := Load(ctx, database.Queries, game.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)

	shot.ID = stored.ID
	assert.Equal(t, shot, events[0])
	assert.Nil(t, events[1].Court)
	assert.Equal(t, match.ActionSuspension, events[1].Action)

	require.NoError(t, Delete(ctx, database.Queries, game.ID, stored.ID))
	err = Delete(ctx, database.Queries, game.ID, stored.ID)
	assert.True(t, errors.Is(err, ErrEventNotFound))

	events, err = Load(ctx, database.Queries, game.ID)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
