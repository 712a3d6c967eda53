// Package scoreboard ranks the players of a group by their cached season totals.
package scoreboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	dbgen "github.com/codr1/handball-record/internal/db/generated"
	"github.com/codr1/handball-record/internal/match"
)

var ErrUnknownSort = errors.New("unknown sort key")

type SortKey string

const (
	SortName     SortKey = "name"
	SortJersey   SortKey = "jersey"
	SortGoals    SortKey = "goals"
	SortAttempts SortKey = "attempts"
	SortMisses   SortKey = "misses"
	SortTeam     SortKey = "team"
)

func ParseSortKey(raw string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(raw))); key {
	case "":
		return SortGoals, nil
	case SortName, SortJersey, SortGoals, SortAttempts, SortMisses, SortTeam:
		return key, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSort, raw)
	}
}

// Query selects and orders scoreboard rows. An empty Team means every team.
type Query struct {
	Group      string
	Team       string
	Search     string
	Sort       SortKey
	Descending bool
}

type Row struct {
	Team        string `json:"team"`
	Jersey      string `json:"jersey"`
	Name        string `json:"name"`
	Goals       int    `json:"goals"`
	Attempts    int    `json:"attempts"`
	Misses      int    `json:"misses"`
	Saves       int    `json:"saves"`
	ShotsFaced  int    `json:"shotsFaced"`
	ShootingPct *int   `json:"shootingPct"`
}

// Lister reads the player rows of a group.
type Lister interface {
	ListPlayersByGroup(ctx context.Context, groupName string) ([]dbgen.Player, error)
}

func Load(ctx context.Context, q Lister, query Query) ([]Row, error) {
	players, err := q.ListPlayersByGroup(ctx, query.Group)
	if err != nil {
		return nil, fmt.Errorf("list players of %s: %w", query.Group, err)
	}
	return Build(players, query), nil
}

// Build keeps the players of query.Team whose name matches query.Search and sorts them.
// Ties fall back to team then jersey so the order is stable.
func Build(players []dbgen.Player, query Query) []Row {
	rows := make([]Row, 0, len(players))
	for _, p := range players {
		if !strings.Contains(p.Role, match.RolePlayer) {
			continue
		}
		if query.Team != "" && p.Team != query.Team {
			continue
		}
		if !matchesName(query.Search, p) {
			continue
		}
		rows = append(rows, rowFor(p))
	}

	key := query.Sort
	if key == "" {
		key = SortGoals
	}
	sort.SliceStable(rows, func(i, j int) bool {
		c := compare(rows[i], rows[j], key)
		if c == 0 {
			return tieBreak(rows[i], rows[j]) < 0
		}
		if query.Descending {
			return c > 0
		}
		return c < 0
	})
	return rows
}

func matchesName(search string, p dbgen.Player) bool {
	search = strings.TrimSpace(search)
	if search == "" {
		return true
	}
	return fuzzy.MatchNormalizedFold(search, p.FullName) || fuzzy.MatchNormalizedFold(search, p.ShortName)
}

func rowFor(p dbgen.Player) Row {
	row := Row{
		Team:       p.Team,
		Jersey:     p.Jersey,
		Name:       p.FullName,
		Goals:      int(p.Goals),
		Attempts:   int(p.Attempts),
		Misses:     int(p.Misses),
		Saves:      int(p.Saves),
		ShotsFaced: int(p.ShotsFaced),
	}
	if row.Name == "" {
		row.Name = p.ShortName
	}
	line := match.Line{Goals: row.Goals, Attempts: row.Attempts}
	if pct, ok := line.ShootingPercentage(); ok {
		row.ShootingPct = &pct
	}
	return row
}

func compare(a, b Row, key SortKey) int {
	switch key {
	case SortName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case SortJersey:
		return match.JerseyNumber(a.Jersey) - match.JerseyNumber(b.Jersey)
	case SortAttempts:
		return a.Attempts - b.Attempts
	case SortMisses:
		return a.Misses - b.Misses
	case SortTeam:
		return strings.Compare(a.Team, b.Team)
	default:
		return a.Goals - b.Goals
	}
}

func tieBreak(a, b Row) int {
	if c := strings.Compare(a.Team, b.Team); c != 0 {
		return c
	}
	return match.JerseyNumber(a.Jersey) - match.JerseyNumber(b.Jersey)
}
