// Package boxscore keeps the derived per-game statistics in the store. The rows it writes
// are a cache: they are always rebuilt from the event log and never read back by the
// aggregator.
package boxscore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/handball-record/internal/db"
	dbgen "github.com/codr1/handball-record/internal/db/generated"
	"github.com/codr1/handball-record/internal/gamelog"
	"github.com/codr1/handball-record/internal/match"
	"github.com/codr1/handball-record/internal/roster"
)

// Snapshot is the cached box score of one game.
type Snapshot struct {
	GameNumber int64        `json:"gameNumber"`
	Team1      string       `json:"team1"`
	Team2      string       `json:"team2"`
	Lines      []match.Line `json:"lines"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

type Cache struct {
	db     *db.DB
	mirror Mirror
	now    func() time.Time
	logger zerolog.Logger
}

// NewCache returns a cache over database. mirror may be nil.
func NewCache(database *db.DB, mirror Mirror) *Cache {
	return &Cache{
		db:     database,
		mirror: mirror,
		now:    time.Now,
		logger: log.With().Str("component", "boxscore_cache").Logger(),
	}
}

// Write replaces the game's cached lines, refreshes both teams' player totals and
// mirrors the result. A mirror failure is logged and does not fail the write.
func (c *Cache) Write(ctx context.Context, game dbgen.Game, box match.BoxScore) (Snapshot, error) {
	snap := Snapshot{
		GameNumber: game.GameNumber,
		Team1:      game.Team1,
		Team2:      game.Team2,
		Lines:      box.Lines(),
		UpdatedAt:  c.now().UTC(),
	}
	for i := range snap.Lines {
		snap.Lines[i].Team = teamForSide(game, snap.Lines[i].Side)
	}

	err := c.db.RunInTx(ctx, func(tx *db.DB) error {
		if err := tx.Queries.DeleteBoxScoreLines(ctx, game.ID); err != nil {
			return fmt.Errorf("clear box score for game %d: %w", game.GameNumber, err)
		}
		for _, line := range snap.Lines {
			if err := tx.Queries.InsertBoxScoreLine(ctx, lineParams(game.ID, line)); err != nil {
				return fmt.Errorf("insert box score line %s#%s: %w", line.Side, line.Player, err)
			}
		}
		for _, team := range []string{game.Team1, game.Team2} {
			if _, err := tx.Queries.RefreshTeamTotals(ctx, dbgen.RefreshTeamTotalsParams{
				GroupName: game.GroupName,
				Team:      team,
			}); err != nil {
				return fmt.Errorf("refresh totals for %s: %w", team, err)
			}
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}

	if c.mirror != nil {
		if err := c.mirror.WriteBoxScore(ctx, snap); err != nil {
			c.logger.Warn().Err(err).Int64("game_number", game.GameNumber).Msg("Failed to mirror box score")
		}
	}
	return snap, nil
}

// Read returns the cached box score, from the mirror when it has it.
func (c *Cache) Read(ctx context.Context, game dbgen.Game) (Snapshot, error) {
	if c.mirror != nil {
		snap, err := c.mirror.ReadBoxScore(ctx, game.GameNumber)
		if err == nil {
			return snap, nil
		}
		if !errors.Is(err, ErrNotCached) {
			c.logger.Warn().Err(err).Int64("game_number", game.GameNumber).Msg("Box score mirror read failed")
		}
	}

	rows, err := c.db.Queries.ListBoxScoreLines(ctx, game.ID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list box score for game %d: %w", game.GameNumber, err)
	}
	snap := Snapshot{
		GameNumber: game.GameNumber,
		Team1:      game.Team1,
		Team2:      game.Team2,
		Lines:      make([]match.Line, 0, len(rows)),
	}
	for _, row := range rows {
		snap.Lines = append(snap.Lines, lineFromRow(row))
		if row.UpdatedAt.After(snap.UpdatedAt) {
			snap.UpdatedAt = row.UpdatedAt
		}
	}
	return snap, nil
}

// Rebuild recomputes one game's cache from its stored event log.
func (c *Cache) Rebuild(ctx context.Context, game dbgen.Game) (Snapshot, error) {
	rosters, err := roster.LoadGame(ctx, c.db.Queries, game)
	if err != nil {
		return Snapshot{}, err
	}
	events, err := gamelog.Load(ctx, c.db.Queries, game.ID)
	if err != nil {
		return Snapshot{}, err
	}
	return c.Write(ctx, game, match.Aggregate(events, rosters))
}

// RebuildAll rebuilds every game and returns how many succeeded. Failures are logged and
// the remaining games are still rebuilt.
func (c *Cache) RebuildAll(ctx context.Context) (int, error) {
	games, err := c.db.Queries.ListGames(ctx)
	if err != nil {
		return 0, fmt.Errorf("list games: %w", err)
	}

	rebuilt := 0
	for _, game := range games {
		if err := ctx.Err(); err != nil {
			return rebuilt, err
		}
		if _, err := c.Rebuild(ctx, game); err != nil {
			c.logger.Error().Err(err).Int64("game_number", game.GameNumber).Msg("Failed to rebuild box score")
			continue
		}
		rebuilt++
	}
	return rebuilt, nil
}

func teamForSide(game dbgen.Game, side match.Side) string {
	if side == match.SideB {
		return game.Team2
	}
	return game.Team1
}

func lineParams(gameID int64, line match.Line) dbgen.InsertBoxScoreLineParams {
	return dbgen.InsertBoxScoreLineParams{
		GameID:                  gameID,
		Side:                    string(line.Side),
		Player:                  line.Player,
		Team:                    line.Team,
		Name:                    line.Name,
		Goals:                   int64(line.Goals),
		Attempts:                int64(line.Attempts),
		Saves:                   int64(line.Saves),
		ShotsFaced:              int64(line.ShotsFaced),
		YellowCards:             int64(line.YellowCards),
		Suspensions:             int64(line.Suspensions),
		RedCards:                int64(line.RedCards),
		DisqualificationReports: int64(line.DisqualificationReports),
		Misses:                  int64(line.Misses),
	}
}

func lineFromRow(row dbgen.BoxScoreLine) match.Line {
	return match.Line{
		Side:                    match.Side(row.Side),
		Team:                    row.Team,
		Player:                  row.Player,
		Name:                    row.Name,
		Goals:                   int(row.Goals),
		Attempts:                int(row.Attempts),
		Saves:                   int(row.Saves),
		ShotsFaced:              int(row.ShotsFaced),
		YellowCards:             int(row.YellowCards),
		Suspensions:             int(row.Suspensions),
		RedCards:                int(row.RedCards),
		DisqualificationReports: int(row.DisqualificationReports),
		Misses:                  int(row.Misses),
	}
}
