package roster

import (
	"context"
	"errors"
	"reflect"
	"testing"

	dbgen "github.com/codr1/handball-record/internal/db/generated"
	"github.com/codr1/handball-record/internal/match"
	"github.com/codr1/handball-record/internal/testutil"
)

func TestDetailOrderPutsOfficialsFirst(t *testing.T) {
	rows := []dbgen.Player{
		{SheetNo: 1, Jersey: "10", Role: "Player"},
		{SheetNo: 2, Jersey: "B", Role: "Coach", BenchID: 2},
		{SheetNo: 3, Jersey: "2", Role: "Player"},
		{SheetNo: 4, Jersey: "A", Role: "Team Leader", BenchID: 1},
	}

	got := DetailOrder(rows)

	var jerseys []string
	for _, row := range got {
		jerseys = append(jerseys, row.Jersey)
	}
	want := []string{"A", "B", "2", "10"}
	if !reflect.DeepEqual(jerseys, want) {
		t.Fatalf("expected %v, got %v", want, jerseys)
	}
}

func TestDedupeKeepsFirstSheetNumber(t *testing.T) {
	rows := []dbgen.Player{
		{SheetNo: 1, Jersey: "7"},
		{SheetNo: 1, Jersey: "77"},
		{SheetNo: 2, Jersey: "9"},
	}

	got := Dedupe(rows)
	if len(got) != 2 || got[0].Jersey != "7" || got[1].Jersey != "9" {
		t.Fatalf("unexpected dedupe result: %+v", got)
	}
}

func TestBuildLineup(t *testing.T) {
	roster := match.Roster{
		{Jersey: "12", Role: "Player", Position: "GK", GKOrder: 2},
		{Jersey: "9", Role: "Player", Position: "RW"},
		{Jersey: "A", Role: "Coach"},
		{Jersey: "16", Role: "Player", Position: "GK", GKOrder: 1},
		{Jersey: "3", Role: "Player", Position: "CB"},
	}

	lineup := BuildLineup("Lions", roster)

	wantButtons := []string{"3", "9", "12", "16", "A", "B", "C", "D"}
	if !reflect.DeepEqual(lineup.Buttons, wantButtons) {
		t.Fatalf("expected buttons %v, got %v", wantButtons, lineup.Buttons)
	}
	if lineup.Designated != "16" {
		t.Fatalf("expected designated keeper 16, got %q", lineup.Designated)
	}

	var candidates []string
	for _, entry := range lineup.Goalkeepers {
		candidates = append(candidates, entry.Jersey)
	}
	wantCandidates := []string{"16", "12", "3", "9"}
	if !reflect.DeepEqual(candidates, wantCandidates) {
		t.Fatalf("expected candidates %v, got %v", wantCandidates, candidates)
	}
}

func TestImportAndLoadGame(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	rows := []ImportRow{
		{No: 1, Group: "U14", Team: "Lions", Jersey: "1", Position: "GK", GKOrder: 1, FullName: "Ada Keeper"},
		{No: 2, Group: "U14", Team: "Lions", Jersey: "7", FullName: "Sam Shooter"},
		{No: 1, Group: "U14", Team: "Bears", Jersey: "16", Position: "GK", GKOrder: 1, FullName: "Max Wall"},
	}
	n, err := Import(ctx, database, rows)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 imported rows, got %d", n)
	}
	if _, err := Import(ctx, database, rows); err != nil {
		t.Fatalf("re-import: %v", err)
	}

	game := testutil.SeedGame(t, database, 1, "U14", "Lions", "Bears")
	rosters, err := LoadGame(ctx, database.Queries, game)
	if err != nil {
		t.Fatalf("load game: %v", err)
	}
	if len(rosters.A) != 2 || len(rosters.B) != 1 {
		t.Fatalf("unexpected roster sizes: A=%d B=%d", len(rosters.A), len(rosters.B))
	}
	if rosters.A[0].Role != match.RolePlayer {
		t.Fatalf("expected default role Player, got %q", rosters.A[0].Role)
	}
	if got := match.SeedGoalkeepers(rosters); got != (match.Goalkeepers{A: "1", B: "16"}) {
		t.Fatalf("unexpected seeded keepers: %+v", got)
	}
}

func TestImportRejectsInvalidRows(t *testing.T) {
	database := testutil.NewTestDB(t)

	_, err := Import(context.Background(), database, []ImportRow{
		{No: 1, Group: "U14", Team: "Lions", Jersey: "7"},
		{No: 2, Group: "U14", Team: "", Jersey: "8"},
	})
	if !errors.Is(err, ErrInvalidRow) {
		t.Fatalf("expected ErrInvalidRow, got %v", err)
	}

	players, err := LoadTeam(context.Background(), database.Queries, "U14", "Lions")
	if err != nil {
		t.Fatalf("load team: %v", err)
	}
	if len(players) != 0 {
		t.Fatalf("expected nothing imported, got %d rows", len(players))
	}
}

func TestUpdateTeamRejectsOtherTeamsRows(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	lions := testutil.SeedTeam(t, database, "U14", "Lions", testutil.SeedPlayer{Jersey: "7", Name: "Sam"})
	bears := testutil.SeedTeam(t, database, "U14", "Bears", testutil.SeedPlayer{Jersey: "5", Name: "Kim"})

	_, err := UpdateTeam(ctx, database, "U14", "Lions", []PlayerEdit{
		{ID: lions[0].ID, Jersey: "8", Role: "Player", FullName: "Sam"},
		{ID: bears[0].ID, Jersey: "6", Role: "Player", FullName: "Kim"},
	})
	if err == nil {
		t.Fatalf("expected error when editing another team's player")
	}

	players, err := LoadTeam(ctx, database.Queries, "U14", "Lions")
	if err != nil {
		t.Fatalf("load team: %v", err)
	}
	if players[0].Jersey != "7" {
		t.Fatalf("expected batch to roll back, got jersey %q", players[0].Jersey)
	}

	updated, err := UpdateTeam(ctx, database, "U14", "Lions", []PlayerEdit{
		{ID: lions[0].ID, Jersey: "8", Role: "Player", Position: "LB", FullName: "Sam Shooter"},
	})
	if err != nil {
		t.Fatalf("update team: %v", err)
	}
	if updated[0].Jersey != "8" || updated[0].Position != "LB" {
		t.Fatalf("unexpected update result: %+v", updated[0])
	}
}
