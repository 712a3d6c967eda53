package match

import (
	"errors"
	"strings"
)

var (
	ErrGoalkeeperLocked   = errors.New("starting goalkeeper can only be chosen before the match starts")
	ErrGoalkeepersMissing = errors.New("both teams need a goalkeeper before the match starts")
	ErrEmptyPlayer        = errors.New("player is required")
)

// Goalkeepers holds the player currently in goal for each team.
type Goalkeepers struct {
	A string `json:"a"`
	B string `json:"b"`
}

func (g Goalkeepers) Current(side Side) string {
	switch side {
	case SideA:
		return g.A
	case SideB:
		return g.B
	default:
		return ""
	}
}

// Ready reports whether both teams have someone in goal.
func (g Goalkeepers) Ready() bool {
	return g.A != "" && g.B != ""
}

func (g Goalkeepers) With(side Side, player string) (Goalkeepers, error) {
	player = strings.TrimSpace(player)
	if player == "" {
		return g, ErrEmptyPlayer
	}
	switch side {
	case SideA:
		g.A = player
	case SideB:
		g.B = player
	default:
		return g, ErrUnknownSide
	}
	return g, nil
}

// SeedGoalkeepers builds the cursor the aggregator starts from: each team's
// roster-designated goalkeeper.
func SeedGoalkeepers(rosters Rosters) Goalkeepers {
	var g Goalkeepers
	if gk, ok := rosters.A.DesignatedGoalkeeper(); ok {
		g.A = gk.Jersey
	}
	if gk, ok := rosters.B.DesignatedGoalkeeper(); ok {
		g.B = gk.Jersey
	}
	return g
}
