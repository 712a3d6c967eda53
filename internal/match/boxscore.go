package match

import (
	"encoding/json"
	"math"
	"sort"
)

// LineKey identifies a player within a game.
type LineKey struct {
	Side   Side
	Player string
}

// Line is one player's derived statistics for a game.
type Line struct {
	Side                    Side   `json:"side"`
	Team                    string `json:"team"`
	Player                  string `json:"player"`
	Name                    string `json:"name"`
	Goals                   int    `json:"goals"`
	Attempts                int    `json:"attempts"`
	Saves                   int    `json:"saves"`
	ShotsFaced              int    `json:"shotsFaced"`
	YellowCards             int    `json:"yellowCards"`
	Suspensions             int    `json:"suspensions"`
	RedCards                int    `json:"redCards"`
	DisqualificationReports int    `json:"disqualificationReports"`
	Misses                  int    `json:"misses"`
}

// ShootingPercentage is goals over attempts, rounded to a whole percent. It is undefined
// without attempts.
func (l Line) ShootingPercentage() (int, bool) {
	return percentage(l.Goals, l.Attempts)
}

// SavePercentage is saves over shots faced, rounded to a whole percent.
func (l Line) SavePercentage() (int, bool) {
	return percentage(l.Saves, l.ShotsFaced)
}

func (l Line) MarshalJSON() ([]byte, error) {
	type line Line
	out := struct {
		line
		ShootingPct *int `json:"shootingPct"`
		SavePct     *int `json:"savePct"`
	}{line: line(l)}
	if pct, ok := l.ShootingPercentage(); ok {
		out.ShootingPct = &pct
	}
	if pct, ok := l.SavePercentage(); ok {
		out.SavePct = &pct
	}
	return json.Marshal(out)
}

func percentage(part, whole int) (int, bool) {
	if whole <= 0 {
		return 0, false
	}
	return int(math.Round(float64(part) * 100 / float64(whole))), true
}

// BoxScore maps each player that appears in the log to their statistics.
type BoxScore map[LineKey]Line

// Lines returns the box score in a stable order: team A first, then by jersey.
func (b BoxScore) Lines() []Line {
	lines := make([]Line, 0, len(b))
	for _, line := range b {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Side != lines[j].Side {
			return lines[i].Side < lines[j].Side
		}
		ni, nj := JerseyNumber(lines[i].Player), JerseyNumber(lines[j].Player)
		if ni != nj {
			return ni < nj
		}
		return lines[i].Player < lines[j].Player
	})
	return lines
}

func (b BoxScore) Get(side Side, player string) Line {
	return b[LineKey{Side: side, Player: player}]
}

// Aggregate derives the box score from the event log. Goalkeeper attribution follows the
// log: each team starts with its roster-designated keeper and changes on every
// goalkeeper-change event.
func Aggregate(events []Event, rosters Rosters) BoxScore {
	box := BoxScore{}
	keepers := SeedGoalkeepers(rosters)

	for _, ev := range events {
		switch ev.Kind {
		case KindGoalkeeperChange:
			if next, err := keepers.With(ev.Side, ev.Player); err == nil {
				keepers = next
			}
			continue
		case KindPeriodEnd:
			continue
		}

		if scorer, ok := ev.Outcome.ScoringSide(); ok {
			box.update(rosters, ev.Side, ev.Player, func(l *Line) {
				l.Goals++
				l.Attempts++
			})
			conceding := scorer.Opponent()
			box.update(rosters, conceding, keepers.Current(conceding), func(l *Line) {
				l.ShotsFaced++
			})
			continue
		}
		if ev.Outcome != OutcomeNoGoal {
			continue
		}

		if ev.IsShotAttempt() {
			box.update(rosters, ev.Side, ev.Player, func(l *Line) {
				l.Attempts++
			})
			if ev.Action != ActionCrossZone {
				defending := ev.Side.Opponent()
				box.update(rosters, defending, keepers.Current(defending), func(l *Line) {
					l.Saves++
					l.ShotsFaced++
				})
			}
			continue
		}

		switch ev.Action.Category() {
		case CategorySanction:
			box.update(rosters, ev.Side, ev.Player, func(l *Line) {
				switch ev.Action {
				case ActionYellowCard:
					l.YellowCards++
				case ActionSuspension:
					l.Suspensions++
				case ActionRedCard:
					l.RedCards++
				case ActionDisqualificationReport:
					l.DisqualificationReports++
				}
			})
		case CategoryTechnicalFault:
			box.update(rosters, ev.Side, ev.Player, func(l *Line) {
				l.Misses++
			})
		case CategoryShotContext, CategoryNone:
			// Shot contexts were counted above; an entry with neither code nor position
			// carries no statistic.
		}
	}
	return box
}

func (b BoxScore) update(rosters Rosters, side Side, player string, fn func(*Line)) {
	if !side.Valid() || player == "" {
		return
	}
	key := LineKey{Side: side, Player: player}
	line, ok := b[key]
	if !ok {
		line = Line{Side: side, Player: player}
		if entry, found := rosters.Side(side).Find(player); found {
			line.Team = entry.Team
			line.Name = entry.FullName
		}
	}
	fn(&line)
	b[key] = line
}
