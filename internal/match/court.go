package match

import (
	"errors"
	"math"
)

var ErrInvalidCourtPoint = errors.New("court position must be on court and outside the goal area")

// Court picker geometry, in picker units (10 units per metre), goal line at y=0.
const (
	CourtWidth  = 600.0
	CourtHeight = 400.0

	courtCenterX     = 300.0
	goalAreaRadius   = 180.0
	goalAreaFlatHalf = 45.0
)

// CourtPoint is where on the half court a shot was taken from.
type CourtPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Valid reports whether the point is a legal shooting position: on the half court and
// not inside the 6 m goal area.
func (p CourtPoint) Valid() bool {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return false
	}
	if p.X < 0 || p.X > CourtWidth || p.Y < 0 || p.Y > CourtHeight {
		return false
	}
	return !p.insideGoalArea()
}

func (p CourtPoint) insideGoalArea() bool {
	dx := math.Abs(p.X - courtCenterX)
	if dx <= goalAreaFlatHalf {
		return p.Y <= goalAreaRadius
	}
	return math.Hypot(dx-goalAreaFlatHalf, p.Y) <= goalAreaRadius
}
