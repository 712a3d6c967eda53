package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/codr1/handball-record/internal/db"
	dbgen "github.com/codr1/handball-record/internal/db/generated"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

// SeedGame inserts a game between team1 and team2 in group.
func SeedGame(t *testing.T, database *db.DB, number int64, group, team1, team2 string) dbgen.Game {
	t.Helper()

	game, err := database.Queries.CreateGame(context.Background(), dbgen.CreateGameParams{
		GameNumber: number,
		GroupName:  group,
		GameType:   "Pool",
		Team1:      team1,
		Team2:      team2,
	})
	if err != nil {
		t.Fatalf("seed game %d: %v", number, err)
	}
	return game
}

// SeedPlayer describes one roster row for SeedTeam.
type SeedPlayer struct {
	Jersey   string
	Role     string
	Position string
	GKOrder  int64
	BenchID  int64
	Name     string
}

// SeedTeam inserts a team sheet. Sheet numbers follow slice order starting at 1.
func SeedTeam(t *testing.T, database *db.DB, group, team string, players ...SeedPlayer) []dbgen.Player {
	t.Helper()

	rows := make([]dbgen.Player, 0, len(players))
	for i, p := range players {
		role := p.Role
		if role == "" {
			role = "Player"
		}
		row, err := database.Queries.UpsertPlayer(context.Background(), dbgen.UpsertPlayerParams{
			SheetNo:   int64(i + 1),
			BenchID:   p.BenchID,
			GroupName: group,
			Team:      team,
			Jersey:    p.Jersey,
			Role:      role,
			Position:  p.Position,
			GkOrder:   p.GKOrder,
			FullName:  p.Name,
			ShortName: p.Name,
		})
		if err != nil {
			t.Fatalf("seed player %s/%s #%s: %v", group, team, p.Jersey, err)
		}
		rows = append(rows, row)
	}
	return rows
}
