// Package gamelog stores the match event log of a game.
package gamelog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	dbgen "github.com/codr1/handball-record/internal/db/generated"
	"github.com/codr1/handball-record/internal/match"
)

var ErrEventNotFound = errors.New("event not found")

// FromRow converts a stored event row.
func FromRow(row dbgen.GameEvent) match.Event {
	ev := match.Event{
		ID:           row.ID,
		Period:       int(row.Period),
		PeriodKind:   match.PeriodKind(row.PeriodKind),
		ClockSeconds: int(row.ClockSeconds),
		Side:         match.Side(row.Side),
		Player:       row.Player,
		Kind:         match.EventKind(row.Kind),
		Action:       match.ActionCode(row.Action),
		Zone:         match.GoalZone(row.Zone),
		Outcome:      match.Outcome(row.Outcome),
		ScoreA:       int(row.ScoreA),
		ScoreB:       int(row.ScoreB),
	}
	if row.CourtX.Valid && row.CourtY.Valid {
		ev.Court = &match.CourtPoint{X: row.CourtX.Float64, Y: row.CourtY.Float64}
	}
	return ev
}

func appendParams(gameID int64, ev match.Event) dbgen.AppendGameEventParams {
	params := dbgen.AppendGameEventParams{
		GameID:       gameID,
		Period:       int64(ev.Period),
		PeriodKind:   string(ev.PeriodKind),
		ClockSeconds: int64(ev.ClockSeconds),
		Side:         string(ev.Side),
		Player:       ev.Player,
		Kind:         string(ev.Kind),
		Action:       string(ev.Action),
		Zone:         string(ev.Zone),
		Outcome:      string(ev.Outcome),
		ScoreA:       int64(ev.ScoreA),
		ScoreB:       int64(ev.ScoreB),
	}
	if ev.Court != nil {
		params.CourtX = sql.NullFloat64{Float64: ev.Court.X, Valid: true}
		params.CourtY = sql.NullFloat64{Float64: ev.Court.Y, Valid: true}
	}
	return params
}

// Load returns a game's events in append order.
func Load(ctx context.Context, q *dbgen.Queries, gameID int64) ([]match.Event, error) {
	rows, err := q.ListGameEvents(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list events for game %d: %w", gameID, err)
	}
	events := make([]match.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, FromRow(row))
	}
	return events, nil
}

// Append stores ev and returns it with its store ID.
func Append(ctx context.Context, q *dbgen.Queries, gameID int64, ev match.Event) (match.Event, error) {
	row, err := q.AppendGameEvent(ctx, appendParams(gameID, ev))
	if err != nil {
		return ev, fmt.Errorf("append event for game %d: %w", gameID, err)
	}
	ev.ID = row.ID
	return ev, nil
}

// Delete removes one event of a game.
func Delete(ctx context.Context, q *dbgen.Queries, gameID, eventID int64) error {
	n, err := q.DeleteGameEvent(ctx, dbgen.DeleteGameEventParams{ID: eventID, GameID: gameID})
	if err != nil {
		return fmt.Errorf("delete event %d: %w", eventID, err)
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return nil
}
