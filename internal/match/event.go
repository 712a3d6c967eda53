package match

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownSide       = errors.New("unknown side")
	ErrUnknownOutcome    = errors.New("unknown outcome")
	ErrUnknownActionCode = errors.New("unknown action code")
	ErrUnknownZone       = errors.New("unknown goal zone")
)

// Side identifies one of the two teams of a game. Team A is the game's first team.
type Side string

const (
	SideNone Side = ""
	SideA    Side = "A"
	SideB    Side = "B"
)

func ParseSide(raw string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(raw))) {
	case SideA:
		return SideA, nil
	case SideB:
		return SideB, nil
	default:
		return SideNone, fmt.Errorf("%w: %q", ErrUnknownSide, raw)
	}
}

// Opponent returns the other team. SideNone has no opponent.
func (s Side) Opponent() Side {
	switch s {
	case SideA:
		return SideB
	case SideB:
		return SideA
	default:
		return SideNone
	}
}

func (s Side) Valid() bool {
	return s == SideA || s == SideB
}

// Outcome is the operator's resolution of a pending entry.
type Outcome string

const (
	OutcomeNone   Outcome = ""
	OutcomeA      Outcome = "A"
	OutcomeB      Outcome = "B"
	OutcomeNoGoal Outcome = "N"
)

func ParseOutcome(raw string) (Outcome, error) {
	switch Outcome(strings.ToUpper(strings.TrimSpace(raw))) {
	case OutcomeA:
		return OutcomeA, nil
	case OutcomeB:
		return OutcomeB, nil
	case OutcomeNoGoal:
		return OutcomeNoGoal, nil
	default:
		return OutcomeNone, fmt.Errorf("%w: %q", ErrUnknownOutcome, raw)
	}
}

// ScoringSide reports which team scored, if any.
func (o Outcome) ScoringSide() (Side, bool) {
	switch o {
	case OutcomeA:
		return SideA, true
	case OutcomeB:
		return SideB, true
	default:
		return SideNone, false
	}
}

// ActionCategory groups action codes so statistics can switch on them exhaustively.
type ActionCategory int

const (
	CategoryNone ActionCategory = iota
	CategoryShotContext
	CategorySanction
	CategoryTechnicalFault
)

func (c ActionCategory) String() string {
	switch c {
	case CategoryShotContext:
		return "shot_context"
	case CategorySanction:
		return "sanction"
	case CategoryTechnicalFault:
		return "technical_fault"
	default:
		return "none"
	}
}

// ActionCode is the discrete code an operator attaches to an entry instead of a court position.
type ActionCode string

const (
	ActionNone ActionCode = ""

	// Shot contexts.
	ActionFastBreak    ActionCode = "F"
	ActionSevenMeter   ActionCode = "7"
	ActionBreakthrough ActionCode = "BT"
	ActionCrossZone    ActionCode = "E"
	ActionBlock        ActionCode = "B"

	// Sanctions.
	ActionYellowCard             ActionCode = "Y"
	ActionSuspension             ActionCode = "2'"
	ActionRedCard                ActionCode = "R"
	ActionDisqualificationReport ActionCode = "DR"

	// Technical faults.
	ActionDribble       ActionCode = "D"
	ActionOffensiveFoul ActionCode = "O"
	ActionSteps         ActionCode = "S"
	ActionAreaViolation ActionCode = "A"
	ActionMisplay       ActionCode = "M"
	ActionPassivePlay   ActionCode = "P"
)

var actionCategories = map[ActionCode]ActionCategory{
	ActionFastBreak:              CategoryShotContext,
	ActionSevenMeter:             CategoryShotContext,
	ActionBreakthrough:           CategoryShotContext,
	ActionCrossZone:              CategoryShotContext,
	ActionBlock:                  CategoryShotContext,
	ActionYellowCard:             CategorySanction,
	ActionSuspension:             CategorySanction,
	ActionRedCard:                CategorySanction,
	ActionDisqualificationReport: CategorySanction,
	ActionDribble:                CategoryTechnicalFault,
	ActionOffensiveFoul:          CategoryTechnicalFault,
	ActionSteps:                  CategoryTechnicalFault,
	ActionAreaViolation:          CategoryTechnicalFault,
	ActionMisplay:                CategoryTechnicalFault,
	ActionPassivePlay:            CategoryTechnicalFault,
}

// ActionCodes lists every known code in the order the recorder shows them.
var ActionCodes = []ActionCode{
	ActionFastBreak, ActionSevenMeter, ActionBreakthrough, ActionCrossZone, ActionBlock,
	ActionYellowCard, ActionSuspension, ActionRedCard, ActionDisqualificationReport,
	ActionDribble, ActionOffensiveFoul, ActionSteps, ActionAreaViolation, ActionMisplay, ActionPassivePlay,
}

func ParseActionCode(raw string) (ActionCode, error) {
	code := ActionCode(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := actionCategories[code]; !ok {
		return ActionNone, fmt.Errorf("%w: %q", ErrUnknownActionCode, raw)
	}
	return code, nil
}

func (a ActionCode) Category() ActionCategory {
	return actionCategories[a]
}

// IsShot reports whether the code describes a shot attempt.
func (a ActionCode) IsShot() bool {
	return a.Category() == CategoryShotContext
}

// GoalZone tags where on the goal a shot was aimed. Reporting only.
type GoalZone string

const (
	ZoneNone         GoalZone = ""
	ZoneTopLeft      GoalZone = "TL"
	ZoneTopCenter    GoalZone = "TC"
	ZoneTopRight     GoalZone = "TR"
	ZoneMiddleLeft   GoalZone = "ML"
	ZoneMiddleCenter GoalZone = "MC"
	ZoneMiddleRight  GoalZone = "MR"
	ZoneBottomLeft   GoalZone = "BL"
	ZoneBottomCenter GoalZone = "BC"
	ZoneBottomRight  GoalZone = "BR"
	ZoneOff          GoalZone = "OFF"
)

var goalZones = map[GoalZone]struct{}{
	ZoneTopLeft: {}, ZoneTopCenter: {}, ZoneTopRight: {},
	ZoneMiddleLeft: {}, ZoneMiddleCenter: {}, ZoneMiddleRight: {},
	ZoneBottomLeft: {}, ZoneBottomCenter: {}, ZoneBottomRight: {},
	ZoneOff: {},
}

func ParseGoalZone(raw string) (GoalZone, error) {
	zone := GoalZone(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := goalZones[zone]; !ok {
		return ZoneNone, fmt.Errorf("%w: %q", ErrUnknownZone, raw)
	}
	return zone, nil
}

// EventKind is the category of a recorded match event.
type EventKind string

const (
	KindShot             EventKind = "shot"
	KindAction           EventKind = "action"
	KindGoalkeeperChange EventKind = "gk_change"
	KindPeriodEnd        EventKind = "period_end"
)

// Event is one immutable entry of the match log.
type Event struct {
	// ID is assigned by the store; zero until persisted.
	ID           int64       `json:"id"`
	Period       int         `json:"period"`
	PeriodKind   PeriodKind  `json:"periodKind"`
	ClockSeconds int         `json:"clockSeconds"`
	Side         Side        `json:"side"`
	Player       string      `json:"player"`
	Kind         EventKind   `json:"kind"`
	Action       ActionCode  `json:"action,omitempty"`
	Zone         GoalZone    `json:"zone,omitempty"`
	Court        *CourtPoint `json:"court,omitempty"`
	Outcome      Outcome     `json:"outcome,omitempty"`
	ScoreA       int         `json:"scoreA"`
	ScoreB       int         `json:"scoreB"`
}

// IsShotAttempt reports whether the event counts as an attempt on goal.
func (e Event) IsShotAttempt() bool {
	return e.Court != nil || e.Action.IsShot()
}
