package match

import (
	"sort"
	"strconv"
	"strings"
)

// Roles as they appear on roster sheets. Matching is by substring, the sheets are not consistent.
const (
	RolePlayer = "Player"
	RoleCoach  = "Coach"
	RoleLeader = "Leader"
)

// RosterEntry is one line of a team sheet as the recorder sees it.
type RosterEntry struct {
	Team     string `json:"team"`
	Group    string `json:"group"`
	Jersey   string `json:"jersey"`
	Role     string `json:"role"`
	Position string `json:"position"`
	FullName string `json:"fullName"`
	// GKOrder ranks goalkeepers on the sheet; lower comes first, zero means unranked.
	GKOrder int `json:"gkOrder"`
}

func (r RosterEntry) IsPlayer() bool {
	return strings.Contains(r.Role, RolePlayer)
}

func (r RosterEntry) IsGoalkeeper() bool {
	return strings.Contains(strings.ToUpper(r.Position), "GK")
}

// Roster is one team's sheet for a game.
type Roster []RosterEntry

// Rosters holds both teams of a game.
type Rosters struct {
	A Roster `json:"a"`
	B Roster `json:"b"`
}

func (r Rosters) Side(side Side) Roster {
	switch side {
	case SideA:
		return r.A
	case SideB:
		return r.B
	default:
		return nil
	}
}

// Goalkeepers returns the roster's goalkeepers in sheet order.
func (r Roster) Goalkeepers() Roster {
	var keepers Roster
	for _, entry := range r {
		if entry.IsGoalkeeper() {
			keepers = append(keepers, entry)
		}
	}
	sort.SliceStable(keepers, func(i, j int) bool {
		return gkRank(keepers[i]) < gkRank(keepers[j])
	})
	return keepers
}

// DesignatedGoalkeeper is the first goalkeeper on the sheet.
func (r Roster) DesignatedGoalkeeper() (RosterEntry, bool) {
	keepers := r.Goalkeepers()
	if len(keepers) == 0 {
		return RosterEntry{}, false
	}
	return keepers[0], true
}

func (r Roster) Find(jersey string) (RosterEntry, bool) {
	for _, entry := range r {
		if entry.Jersey == jersey {
			return entry, true
		}
	}
	return RosterEntry{}, false
}

func gkRank(entry RosterEntry) int {
	if entry.GKOrder <= 0 {
		return int(^uint(0) >> 1)
	}
	return entry.GKOrder
}

// JerseyNumber parses a jersey for ordering. Non-numeric jerseys sort as zero.
func JerseyNumber(jersey string) int {
	n, err := strconv.Atoi(strings.TrimSpace(jersey))
	if err != nil {
		return 0
	}
	return n
}
