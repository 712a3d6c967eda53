package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	dbgen "github.com/codr1/handball-record/internal/db/generated"
	"github.com/codr1/handball-record/internal/testutil"
)

func TestTimeoutIncrementStopsAtThree(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	game := testutil.SeedGame(t, database, 1, "U14", "Lions", "Bears")

	for want := int64(1); want <= 3; want++ {
		got, err := database.Queries.IncrementTeam1Timeout(ctx, game.ID)
		if err != nil {
			t.Fatalf("increment %d: %v", want, err)
		}
		if got != want {
			t.Fatalf("expected %d timeouts, got %d", want, got)
		}
	}

	if _, err := database.Queries.IncrementTeam1Timeout(ctx, game.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows for the fourth timeout, got %v", err)
	}

	got, err := database.Queries.IncrementTeam2Timeout(ctx, game.ID)
	if err != nil {
		t.Fatalf("increment team2: %v", err)
	}
	if got != 1 {
		t.Fatalf("expected team2 to be independent, got %d", got)
	}
}

func TestDeleteGameEventScopedToGame(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	first := testutil.SeedGame(t, database, 1, "U14", "Lions", "Bears")
	second := testutil.SeedGame(t, database, 2, "U14", "Wolves", "Hawks")

	ev, err := database.Queries.AppendGameEvent(ctx, dbgen.AppendGameEventParams{
		GameID:     first.ID,
		Period:     1,
		PeriodKind: "regular",
		Side:       "A",
		Player:     "7",
		Kind:       "shot",
		CourtX:     sql.NullFloat64{Float64: 120, Valid: true},
		CourtY:     sql.NullFloat64{Float64: 300, Valid: true},
		Outcome:    "A",
		ScoreA:     1,
	})
	if err != nil {
		t.Fatalf("append event: %v", err)
	}

	n, err := database.Queries.DeleteGameEvent(ctx, dbgen.DeleteGameEventParams{ID: ev.ID, GameID: second.ID})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no rows deleted for the wrong game, got %d", n)
	}

	events, err := database.Queries.ListGameEvents(ctx, first.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 1 || !events[0].CourtX.Valid || events[0].CourtX.Float64 != 120 {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestRefreshTeamTotalsSumsAcrossGames(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	testutil.SeedTeam(t, database, "U14", "Lions",
		testutil.SeedPlayer{Jersey: "7", Name: "Sam Shooter"},
		testutil.SeedPlayer{Jersey: "1", Position: "GK", GKOrder: 1, Name: "Ada Keeper"},
	)
	games := []dbgen.Game{
		testutil.SeedGame(t, database, 1, "U14", "Lions", "Bears"),
		testutil.SeedGame(t, database, 2, "U14", "Hawks", "Lions"),
	}

	for i, game := range games {
		side := "A"
		if i == 1 {
			side = "B"
		}
		err := database.Queries.InsertBoxScoreLine(ctx, dbgen.InsertBoxScoreLineParams{
			GameID:   game.ID,
			Side:     side,
			Player:   "7",
			Team:     "Lions",
			Goals:    2,
			Attempts: 3,
			Misses:   1,
		})
		if err != nil {
			t.Fatalf("insert line: %v", err)
		}
	}

	if _, err := database.Queries.RefreshTeamTotals(ctx, dbgen.RefreshTeamTotalsParams{GroupName: "U14", Team: "Lions"}); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	players, err := database.Queries.ListPlayersByTeam(ctx, dbgen.ListPlayersByTeamParams{GroupName: "U14", Team: "Lions"})
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	for _, p := range players {
		switch p.Jersey {
		case "7":
			if p.Goals != 4 || p.Attempts != 6 || p.Misses != 2 {
				t.Fatalf("unexpected totals for #7: %+v", p)
			}
		case "1":
			if p.Goals != 0 || p.Saves != 0 {
				t.Fatalf("expected zero totals for keeper, got %+v", p)
			}
		}
	}
}

func TestUpsertPlayerKeepsSheetNumberUnique(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	testutil.SeedTeam(t, database, "U14", "Lions", testutil.SeedPlayer{Jersey: "7", Name: "Old Name"})

	_, err := database.Queries.UpsertPlayer(ctx, dbgen.UpsertPlayerParams{
		SheetNo:   1,
		GroupName: "U14",
		Team:      "Lions",
		Jersey:    "8",
		Role:      "Player",
		FullName:  "New Name",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	players, err := database.Queries.ListPlayersByTeam(ctx, dbgen.ListPlayersByTeamParams{GroupName: "U14", Team: "Lions"})
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(players) != 1 || players[0].Jersey != "8" || players[0].FullName != "New Name" {
		t.Fatalf("unexpected players after upsert: %+v", players)
	}
}

func TestDeletingGameCascades(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	game := testutil.SeedGame(t, database, 3, "U14", "Lions", "Bears")

	if _, err := database.Queries.AppendGameEvent(ctx, dbgen.AppendGameEventParams{
		GameID: game.ID, Period: 1, PeriodKind: "regular", Kind: "period_end",
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := database.ExecContext(ctx, "DELETE FROM games WHERE id = ?", game.ID); err != nil {
		t.Fatalf("delete game: %v", err)
	}

	events, err := database.Queries.ListGameEvents(ctx, game.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected events to cascade, got %d", len(events))
	}
}
