package match

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrPeriodInProgress  = errors.New("a period is still in progress")
	ErrUnknownPeriodKind = errors.New("unknown period kind")
)

// PeriodKind is the kind of the period currently on the clock.
type PeriodKind string

const (
	PeriodNone    PeriodKind = "none"
	PeriodRegular PeriodKind = "regular"
	PeriodExtra   PeriodKind = "extra"
	PeriodPenalty PeriodKind = "penalty"
)

const (
	RegularPeriodSeconds = 1800
	ExtraPeriodSeconds   = 300
	// SuddenDeathSeconds never expires; the period ends only when the operator ends it.
	SuddenDeathSeconds = math.MaxInt
)

func ParsePeriodKind(raw string) (PeriodKind, error) {
	switch kind := PeriodKind(raw); kind {
	case PeriodRegular, PeriodExtra, PeriodPenalty:
		return kind, nil
	default:
		return PeriodNone, fmt.Errorf("%w: %q", ErrUnknownPeriodKind, raw)
	}
}

// Limit returns the period length in seconds for the kind.
func (k PeriodKind) Limit() int {
	switch k {
	case PeriodExtra:
		return ExtraPeriodSeconds
	case PeriodPenalty:
		return SuddenDeathSeconds
	default:
		return RegularPeriodSeconds
	}
}

// Clock is the match clock. Methods return the next state and never modify the receiver.
type Clock struct {
	Elapsed int        `json:"elapsed"`
	Limit   int        `json:"limit"`
	Running bool       `json:"running"`
	Started bool       `json:"started"`
	Kind    PeriodKind `json:"kind"`
}

func NewClock() Clock {
	return Clock{Limit: RegularPeriodSeconds, Kind: PeriodNone}
}

// AllowStart reports whether a new period may begin.
func (c Clock) AllowStart() bool {
	return c.Kind == PeriodNone || c.Elapsed >= c.Limit
}

func (c Clock) SuddenDeath() bool {
	return c.Limit == SuddenDeathSeconds
}

// Start begins a period of the given length from zero.
func (c Clock) Start(limit int, kind PeriodKind) (Clock, error) {
	if !c.AllowStart() {
		return c, ErrPeriodInProgress
	}
	if limit <= 0 {
		return c, fmt.Errorf("period limit must be positive, got %d", limit)
	}
	return Clock{
		Elapsed: 0,
		Limit:   limit,
		Running: true,
		Started: true,
		Kind:    kind,
	}, nil
}

func (c Clock) Pause() Clock {
	if c.Running {
		c.Running = false
	}
	return c
}

func (c Clock) Resume() Clock {
	if !c.Running && c.Started && c.Elapsed < c.Limit {
		c.Running = true
	}
	return c
}

// Tick advances a running clock by one second and stops it at the limit.
func (c Clock) Tick() Clock {
	if !c.Running {
		return c
	}
	if c.Elapsed >= c.Limit-1 {
		c.Elapsed = c.Limit
		c.Running = false
		c.Started = true
		return c
	}
	c.Elapsed++
	return c
}

func (c Clock) Reset() Clock {
	return NewClock()
}

// EndPeriod returns the clock to its idle state once the period is over. Regular and
// extra periods must have run out; a sudden-death period can be ended at any time.
func (c Clock) EndPeriod() (Clock, bool) {
	switch {
	case c.Kind == PeriodRegular && c.Elapsed >= RegularPeriodSeconds,
		c.Kind == PeriodExtra && c.Elapsed >= ExtraPeriodSeconds,
		c.Kind == PeriodPenalty:
		return c.Reset(), true
	default:
		return c, false
	}
}

// Display renders the elapsed time as MM:SS.
func (c Clock) Display() string {
	return FormatClock(c.Elapsed)
}

func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
