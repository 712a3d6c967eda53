// Package roster loads team sheets from the store and orders them for the pages and the
// recorder.
package roster

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/codr1/handball-record/internal/db"
	dbgen "github.com/codr1/handball-record/internal/db/generated"
	"github.com/codr1/handball-record/internal/match"
)

var ErrInvalidRow = errors.New("invalid roster row")

// Entry converts a stored player row to the recorder's view of it.
func Entry(row dbgen.Player) match.RosterEntry {
	return match.RosterEntry{
		Team:     row.Team,
		Group:    row.GroupName,
		Jersey:   row.Jersey,
		Role:     row.Role,
		Position: row.Position,
		FullName: row.FullName,
		GKOrder:  int(row.GkOrder),
	}
}

func Entries(rows []dbgen.Player) match.Roster {
	out := make(match.Roster, 0, len(rows))
	for _, row := range rows {
		out = append(out, Entry(row))
	}
	return out
}

// Dedupe keeps the first row for every sheet number.
func Dedupe(rows []dbgen.Player) []dbgen.Player {
	seen := make(map[int64]struct{}, len(rows))
	out := make([]dbgen.Player, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.SheetNo]; ok {
			continue
		}
		seen[row.SheetNo] = struct{}{}
		out = append(out, row)
	}
	return out
}

// DetailOrder sorts a team sheet the way the game detail page lists it: officials first by
// bench ID, then players by jersey number.
func DetailOrder(rows []dbgen.Player) []dbgen.Player {
	out := append([]dbgen.Player(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := isPlayer(out[i]), isPlayer(out[j])
		if pi != pj {
			return !pi
		}
		if !pi {
			return out[i].BenchID < out[j].BenchID
		}
		return match.JerseyNumber(out[i].Jersey) < match.JerseyNumber(out[j].Jersey)
	})
	return out
}

// Lineup is what the record page needs for one team.
type Lineup struct {
	Team        string       `json:"team"`
	Buttons     []string     `json:"buttons"`
	Goalkeepers match.Roster `json:"goalkeepers"`
	Designated  string       `json:"designated,omitempty"`
	Players     match.Roster `json:"players"`
}

// BuildLineup returns the jersey buttons (players only, by number, then the bench codes)
// and the goalkeeper candidates with sheet goalkeepers first.
func BuildLineup(team string, roster match.Roster) Lineup {
	players := make(match.Roster, 0, len(roster))
	for _, entry := range roster {
		if entry.IsPlayer() {
			players = append(players, entry)
		}
	}
	sort.SliceStable(players, func(i, j int) bool {
		return match.JerseyNumber(players[i].Jersey) < match.JerseyNumber(players[j].Jersey)
	})

	buttons := make([]string, 0, len(players)+len(match.BenchCodes))
	for _, p := range players {
		buttons = append(buttons, p.Jersey)
	}
	buttons = append(buttons, match.BenchCodes...)

	lineup := Lineup{
		Team:        team,
		Buttons:     buttons,
		Goalkeepers: GoalkeeperCandidates(players),
		Players:     players,
	}
	if gk, ok := roster.DesignatedGoalkeeper(); ok {
		lineup.Designated = gk.Jersey
	}
	return lineup
}

// GoalkeeperCandidates lists every player, sheet goalkeepers first in GK order, the rest
// by jersey.
func GoalkeeperCandidates(players match.Roster) match.Roster {
	keepers := players.Goalkeepers()
	out := append(match.Roster(nil), keepers...)
	var rest match.Roster
	for _, p := range players {
		if !p.IsGoalkeeper() {
			rest = append(rest, p)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return match.JerseyNumber(rest[i].Jersey) < match.JerseyNumber(rest[j].Jersey)
	})
	return append(out, rest...)
}

// LoadTeam returns a team's sheet, de-duplicated by sheet number.
func LoadTeam(ctx context.Context, q *dbgen.Queries, group, team string) ([]dbgen.Player, error) {
	rows, err := q.ListPlayersByTeam(ctx, dbgen.ListPlayersByTeamParams{GroupName: group, Team: team})
	if err != nil {
		return nil, fmt.Errorf("list players for %s/%s: %w", group, team, err)
	}
	return Dedupe(rows), nil
}

// LoadGame returns both rosters of a game: team1 is side A.
func LoadGame(ctx context.Context, q *dbgen.Queries, game dbgen.Game) (match.Rosters, error) {
	a, err := LoadTeam(ctx, q, game.GroupName, game.Team1)
	if err != nil {
		return match.Rosters{}, err
	}
	b, err := LoadTeam(ctx, q, game.GroupName, game.Team2)
	if err != nil {
		return match.Rosters{}, err
	}
	return match.Rosters{A: Entries(a), B: Entries(b)}, nil
}

// ImportRow is one line of a team sheet as uploaded.
type ImportRow struct {
	No        int64  `json:"no"`
	BenchID   int64  `json:"id"`
	Group     string `json:"group"`
	Team      string `json:"team"`
	Jersey    string `json:"number"`
	Role      string `json:"role"`
	Position  string `json:"position"`
	GKOrder   int64  `json:"gkId"`
	FullName  string `json:"fullName"`
	ShortName string `json:"shortName"`
}

func (r ImportRow) validate() error {
	switch {
	case r.No <= 0:
		return fmt.Errorf("%w: sheet number must be positive", ErrInvalidRow)
	case strings.TrimSpace(r.Group) == "":
		return fmt.Errorf("%w: group is required", ErrInvalidRow)
	case strings.TrimSpace(r.Team) == "":
		return fmt.Errorf("%w: team is required", ErrInvalidRow)
	case strings.TrimSpace(r.Jersey) == "":
		return fmt.Errorf("%w: number is required", ErrInvalidRow)
	}
	return nil
}

// Import upserts sheet rows in one transaction. Rows are keyed by group, team and sheet
// number, so importing the same sheet twice does not duplicate players.
func Import(ctx context.Context, database *db.DB, rows []ImportRow) (int, error) {
	for i, row := range rows {
		if err := row.validate(); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	err := database.RunInTx(ctx, func(tx *db.DB) error {
		for _, row := range rows {
			role := strings.TrimSpace(row.Role)
			if role == "" {
				role = match.RolePlayer
			}
			if _, err := tx.Queries.UpsertPlayer(ctx, dbgen.UpsertPlayerParams{
				SheetNo:   row.No,
				BenchID:   row.BenchID,
				GroupName: strings.TrimSpace(row.Group),
				Team:      strings.TrimSpace(row.Team),
				Jersey:    strings.TrimSpace(row.Jersey),
				Role:      role,
				Position:  strings.TrimSpace(row.Position),
				GkOrder:   row.GKOrder,
				FullName:  strings.TrimSpace(row.FullName),
				ShortName: strings.TrimSpace(row.ShortName),
			}); err != nil {
				return fmt.Errorf("upsert %s/%s no %d: %w", row.Group, row.Team, row.No, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// PlayerEdit is a change to one row of a team sheet.
type PlayerEdit struct {
	ID        int64  `json:"id"`
	Jersey    string `json:"number"`
	Role      string `json:"role"`
	Position  string `json:"position"`
	GKOrder   int64  `json:"gkId"`
	FullName  string `json:"fullName"`
	ShortName string `json:"shortName"`
}

// UpdateTeam applies a batch of edits to one team. An edit for a row that is not on the
// team fails the whole batch.
func UpdateTeam(ctx context.Context, database *db.DB, group, team string, edits []PlayerEdit) ([]dbgen.Player, error) {
	updated := make([]dbgen.Player, 0, len(edits))
	err := database.RunInTx(ctx, func(tx *db.DB) error {
		for _, edit := range edits {
			if strings.TrimSpace(edit.Jersey) == "" {
				return fmt.Errorf("%w: number is required for player %d", ErrInvalidRow, edit.ID)
			}
			row, err := tx.Queries.UpdatePlayer(ctx, dbgen.UpdatePlayerParams{
				Jersey:    strings.TrimSpace(edit.Jersey),
				Role:      strings.TrimSpace(edit.Role),
				Position:  strings.TrimSpace(edit.Position),
				GkOrder:   edit.GKOrder,
				FullName:  strings.TrimSpace(edit.FullName),
				ShortName: strings.TrimSpace(edit.ShortName),
				ID:        edit.ID,
				GroupName: group,
				Team:      team,
			})
			if err != nil {
				return fmt.Errorf("update player %d: %w", edit.ID, err)
			}
			updated = append(updated, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func isPlayer(row dbgen.Player) bool {
	return strings.Contains(row.Role, match.RolePlayer)
}
