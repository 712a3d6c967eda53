package recorder

import "github.com/codr1/handball-record/internal/match"

// Timeouts counts the team timeouts taken so far.
type Timeouts struct {
	A   int `json:"a"`
	B   int `json:"b"`
	Max int `json:"max"`
}

// View is the recorder state sent to the page and to live subscribers.
type View struct {
	GameNumber   int64         `json:"gameNumber"`
	Group        string        `json:"group"`
	Team1        string        `json:"team1"`
	Team2        string        `json:"team2"`
	ClockDisplay string        `json:"clockDisplay"`
	AllowStart   bool          `json:"allowStart"`
	Stage        match.Stage   `json:"stage"`
	Timeouts     Timeouts      `json:"timeouts"`
	Session      match.Session `json:"session"`
}

func (lg *liveGame) view() View {
	return View{
		GameNumber:   lg.game.GameNumber,
		Group:        lg.game.GroupName,
		Team1:        lg.game.Team1,
		Team2:        lg.game.Team2,
		ClockDisplay: lg.session.Clock.Display(),
		AllowStart:   lg.session.Clock.AllowStart(),
		Stage:        lg.session.Entry.Stage(),
		Timeouts: Timeouts{
			A:   int(lg.game.Team1Timeouts),
			B:   int(lg.game.Team2Timeouts),
			Max: match.MaxTimeouts,
		},
		Session: lg.session,
	}
}
