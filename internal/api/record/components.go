package record

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/handball-record/internal/boxscore"
	"github.com/codr1/handball-record/internal/match"
	"github.com/codr1/handball-record/internal/recorder"
	"github.com/codr1/handball-record/internal/roster"
)

var outcomeLabels = []struct {
	outcome match.Outcome
	label   string
}{
	{match.OutcomeA, "Goal A"},
	{match.OutcomeB, "Goal B"},
	{match.OutcomeNoGoal, "No goal"},
}

var zoneRows = [][]match.GoalZone{
	{match.ZoneTopLeft, match.ZoneTopCenter, match.ZoneTopRight},
	{match.ZoneMiddleLeft, match.ZoneMiddleCenter, match.ZoneMiddleRight},
	{match.ZoneBottomLeft, match.ZoneBottomCenter, match.ZoneBottomRight},
}

func recordPageComponent(view recorder.View, a, b roster.Lineup) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		header := fmt.Sprintf(
			`<div class="space-y-6"><div class="flex items-center justify-between">
			<h1 class="text-2xl font-semibold">Game %d <span class="text-gray-500">%s</span></h1>
			<a class="text-blue-600 hover:underline" href="/games/%d">Details</a></div>
			<div ws-connect="/ws/games/%d"></div>`,
			view.GameNumber,
			html.EscapeString(view.Group),
			view.GameNumber,
			view.GameNumber,
		)
		if _, err := io.WriteString(w, header); err != nil {
			return err
		}
		if _, err := io.WriteString(w, buildPanelHTML(view, a, b)); err != nil {
			return err
		}
		boxScore := fmt.Sprintf(
			`<div id="boxscore" hx-get="/api/v1/games/%d/boxscore" hx-trigger="load, every 5s"></div></div>`,
			view.GameNumber,
		)
		_, err := io.WriteString(w, boxScore)
		return err
	})
}

func panelComponent(view recorder.View, a, b roster.Lineup) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildPanelHTML(view, a, b))
		return err
	})
}

func boxScoreComponent(snap boxscore.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildBoxScoreHTML(snap))
		return err
	})
}

func buildPanelHTML(view recorder.View, a, b roster.Lineup) string {
	base := fmt.Sprintf("/api/v1/games/%d", view.GameNumber)
	sess := view.Session

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(
		`<div id="recorder" class="space-y-4 rounded border bg-white p-4" data-stage="%s" hx-target="#recorder" hx-swap="outerHTML"`,
		html.EscapeString(string(view.Stage)),
	))
	if sess.Clock.Running {
		builder.WriteString(fmt.Sprintf(` hx-get="%s/session" hx-trigger="every 1s"`, base))
	}
	builder.WriteString(`>`)

	builder.WriteString(fmt.Sprintf(
		`<div class="flex items-center justify-between text-xl font-semibold"><span class="team-a">%s</span><span id="score">%d : %d</span><span class="team-b">%s</span></div>`,
		html.EscapeString(view.Team1), sess.ScoreA, sess.ScoreB, html.EscapeString(view.Team2),
	))

	writeClock(&builder, base, view)
	writeTimeouts(&builder, base, view)

	builder.WriteString(`<div class="grid gap-4 md:grid-cols-2">`)
	writeTeam(&builder, base, view, match.SideA, a)
	writeTeam(&builder, base, view, match.SideB, b)
	builder.WriteString(`</div>`)

	writeEntry(&builder, base, view)
	writeEventLog(&builder, base, sess.Events)

	builder.WriteString(`</div>`)
	return builder.String()
}

func writeClock(builder *strings.Builder, base string, view recorder.View) {
	clock := view.Session.Clock
	builder.WriteString(fmt.Sprintf(
		`<div class="flex flex-wrap items-center gap-2"><span id="clock" class="font-mono text-3xl">%s</span><span class="text-sm text-gray-500">Period %d (%s)</span>`,
		html.EscapeString(view.ClockDisplay), view.Session.Period, html.EscapeString(string(clock.Kind)),
	))
	if view.AllowStart {
		for _, kind := range []match.PeriodKind{match.PeriodRegular, match.PeriodExtra, match.PeriodPenalty} {
			builder.WriteString(postButton(base+"/clock/start?kind="+string(kind), "Start "+string(kind), nil))
		}
	}
	if clock.Running {
		builder.WriteString(postButton(base+"/clock/pause", "Pause", nil))
	} else if clock.Started {
		builder.WriteString(postButton(base+"/clock/resume", "Resume", nil))
	}
	builder.WriteString(postButton(base+"/clock/reset", "Reset", nil))
	builder.WriteString(postButton(base+"/clock/end", "End period", nil))
	builder.WriteString(`</div>`)
}

func writeTimeouts(builder *strings.Builder, base string, view recorder.View) {
	builder.WriteString(`<div class="flex gap-2 text-sm">`)
	for _, side := range []match.Side{match.SideA, match.SideB} {
		used := view.Timeouts.A
		if side == match.SideB {
			used = view.Timeouts.B
		}
		label := fmt.Sprintf("Timeout %s (%d/%d)", side, used, view.Timeouts.Max)
		if used >= view.Timeouts.Max {
			builder.WriteString(`<button class="rounded border px-3 py-1 text-gray-400" disabled>` + html.EscapeString(label) + `</button>`)
			continue
		}
		builder.WriteString(postButton(base+"/timeouts", label, map[string]string{"side": string(side)}))
	}
	builder.WriteString(`</div>`)
}

func writeTeam(builder *strings.Builder, base string, view recorder.View, side match.Side, lineup roster.Lineup) {
	sess := view.Session
	current := sess.Goalkeepers.Current(side)

	colorVar := "team-a"
	if side == match.SideB {
		colorVar = "team-b"
	}
	builder.WriteString(fmt.Sprintf(
		`<div class="space-y-2" data-side="%s"><h2 class="rounded px-2 font-semibold" style="background:var(--theme-%s);color:var(--theme-on-%s)">%s</h2>`,
		side, colorVar, colorVar, html.EscapeString(lineup.Team),
	))

	endpoint := base + "/goalkeepers"
	label := "Set GK"
	if sess.MatchStarted {
		endpoint += "/substitute"
		label = "Change GK"
	}
	builder.WriteString(fmt.Sprintf(
		`<form class="flex items-center gap-2 text-sm" hx-post="%s"><input type="hidden" name="side" value="%s"/><select name="player" class="rounded border px-2 py-1">`,
		endpoint, side,
	))
	for _, gk := range lineup.Goalkeepers {
		selected := ""
		if gk.Jersey == current {
			selected = ` selected`
		}
		builder.WriteString(fmt.Sprintf(
			`<option value="%s"%s>%s %s</option>`,
			html.EscapeString(gk.Jersey), selected, html.EscapeString(gk.Jersey), html.EscapeString(gk.FullName),
		))
	}
	builder.WriteString(`</select><button type="submit" class="rounded border px-2 py-1">` + label + `</button></form>`)

	builder.WriteString(`<div class="flex flex-wrap gap-1">`)
	for _, jersey := range lineup.Buttons {
		class := "rounded border px-3 py-2 font-mono"
		if sess.Entry.Side == side && sess.Entry.Player == jersey {
			class += " bg-blue-600 text-white"
		}
		if jersey == current {
			class += " border-yellow-500"
		}
		builder.WriteString(fmt.Sprintf(
			`<button class="%s" hx-post="%s/entry/player" hx-vals="%s">%s</button>`,
			class, base, hxVals(map[string]string{"side": string(side), "player": jersey}), html.EscapeString(jersey),
		))
	}
	builder.WriteString(`</div></div>`)
}

func writeEntry(builder *strings.Builder, base string, view recorder.View) {
	entry := view.Session.Entry

	builder.WriteString(`<div id="entry" class="space-y-2 border-t pt-3">`)
	summary := "Select a player"
	if entry.Player != "" {
		summary = fmt.Sprintf("%s #%s", entry.Side, entry.Player)
		if entry.Action != match.ActionNone {
			summary += " · " + string(entry.Action)
		}
		if entry.Court != nil {
			summary += fmt.Sprintf(" · (%.0f, %.0f)", entry.Court.X, entry.Court.Y)
		}
		if entry.Zone != match.ZoneNone {
			summary += " · " + string(entry.Zone)
		}
	}
	builder.WriteString(`<p class="text-sm text-gray-600">` + html.EscapeString(summary) + `</p>`)

	if entry.AwaitingOutcome != match.OutcomeNone {
		builder.WriteString(fmt.Sprintf(
			`<div class="rounded bg-yellow-50 p-2 text-sm">Credit goal %s to #%s of the other team?`,
			html.EscapeString(string(entry.AwaitingOutcome)), html.EscapeString(entry.Player),
		))
		builder.WriteString(postButton(base+"/entry/confirm", "Confirm", nil))
		builder.WriteString(postButton(base+"/entry/cancel", "Cancel", nil))
		builder.WriteString(`</div>`)
	}

	builder.WriteString(`<div class="flex flex-wrap gap-1">`)
	for _, code := range match.ActionCodes {
		builder.WriteString(postButton(base+"/entry/action", string(code), map[string]string{"action": string(code)}))
	}
	builder.WriteString(`</div>`)

	builder.WriteString(fmt.Sprintf(
		`<form class="flex items-center gap-2 text-sm" hx-post="%s/entry/court"><input name="x" type="number" step="1" min="0" max="%.0f" class="w-20 rounded border px-2 py-1" placeholder="x"/><input name="y" type="number" step="1" min="0" max="%.0f" class="w-20 rounded border px-2 py-1" placeholder="y"/><button type="submit" class="rounded border px-2 py-1">Court</button></form>`,
		base, match.CourtWidth, match.CourtHeight,
	))

	builder.WriteString(`<div class="inline-grid grid-cols-3 gap-1">`)
	for _, row := range zoneRows {
		for _, zone := range row {
			builder.WriteString(postButton(base+"/entry/zone", string(zone), map[string]string{"zone": string(zone)}))
		}
	}
	builder.WriteString(`</div>`)
	builder.WriteString(postButton(base+"/entry/zone", "Off target", map[string]string{"zone": string(match.ZoneOff)}))

	builder.WriteString(`<div class="flex gap-2">`)
	for _, o := range outcomeLabels {
		builder.WriteString(postButton(base+"/entry/resolve", o.label, map[string]string{"outcome": string(o.outcome)}))
	}
	builder.WriteString(postButton(base+"/entry/clear", "Clear", nil))
	builder.WriteString(`</div></div>`)
}

func writeEventLog(builder *strings.Builder, base string, events []match.Event) {
	builder.WriteString(`<div id="event-log" class="border-t pt-3">`)
	if len(events) == 0 {
		builder.WriteString(`<p class="text-sm text-gray-500">No events yet.</p></div>`)
		return
	}
	builder.WriteString(`<table class="w-full text-sm"><thead><tr class="text-left text-gray-500"><th>#</th><th>Time</th><th>Team</th><th>Player</th><th>Event</th><th>Score</th><th></th></tr></thead><tbody>`)
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		builder.WriteString(fmt.Sprintf(
			`<tr class="border-t" data-event-id="%d"><td>%d</td><td class="font-mono">%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d : %d</td>`,
			ev.ID,
			i+1,
			match.FormatClock(ev.ClockSeconds),
			html.EscapeString(string(ev.Side)),
			html.EscapeString(ev.Player),
			html.EscapeString(describeEvent(ev)),
			ev.ScoreA,
			ev.ScoreB,
		))
		builder.WriteString(fmt.Sprintf(
			`<td><button class="text-red-600 hover:underline" hx-delete="%s/events/%d" hx-confirm="Delete this event?">Delete</button></td></tr>`,
			base, i,
		))
	}
	builder.WriteString(`</tbody></table></div>`)
}

func describeEvent(ev match.Event) string {
	switch ev.Kind {
	case match.KindGoalkeeperChange:
		return "Goalkeeper in"
	case match.KindPeriodEnd:
		return "End of period " + fmt.Sprint(ev.Period)
	}

	parts := make([]string, 0, 4)
	if ev.Action != match.ActionNone {
		parts = append(parts, string(ev.Action))
	}
	if ev.Court != nil {
		parts = append(parts, fmt.Sprintf("(%.0f, %.0f)", ev.Court.X, ev.Court.Y))
	}
	if ev.Zone != match.ZoneNone {
		parts = append(parts, string(ev.Zone))
	}
	switch ev.Outcome {
	case match.OutcomeA, match.OutcomeB:
		parts = append(parts, "goal "+string(ev.Outcome))
	case match.OutcomeNoGoal:
		parts = append(parts, "no goal")
	}
	if len(parts) == 0 {
		return string(ev.Kind)
	}
	return strings.Join(parts, " ")
}

func buildBoxScoreHTML(snap boxscore.Snapshot) string {
	var builder strings.Builder
	builder.WriteString(`<div id="boxscore" class="rounded border bg-white p-4">`)
	if len(snap.Lines) == 0 {
		builder.WriteString(`<p class="text-sm text-gray-500">No statistics yet.</p></div>`)
		return builder.String()
	}
	builder.WriteString(`<table class="w-full text-sm"><thead><tr class="text-left text-gray-500"><th>Team</th><th>#</th><th>Name</th><th>G</th><th>Att</th><th>Miss</th><th>%</th><th>Saves</th><th>Faced</th><th>Y</th><th>2'</th><th>R</th><th>DR</th></tr></thead><tbody>`)
	for _, line := range snap.Lines {
		builder.WriteString(fmt.Sprintf(
			`<tr class="border-t"><td>%s</td><td class="font-mono">%s</td><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td></tr>`,
			html.EscapeString(line.Team),
			html.EscapeString(line.Player),
			html.EscapeString(line.Name),
			line.Goals,
			line.Attempts,
			line.Misses,
			pctText(line.ShootingPercentage()),
			line.Saves,
			line.ShotsFaced,
			line.YellowCards,
			line.Suspensions,
			line.RedCards,
			line.DisqualificationReports,
		))
	}
	builder.WriteString(`</tbody></table></div>`)
	return builder.String()
}

func pctText(pct int, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%d%%", pct)
}

func postButton(url, label string, vals map[string]string) string {
	attrs := ""
	if len(vals) > 0 {
		attrs = fmt.Sprintf(` hx-vals="%s"`, hxVals(vals))
	}
	return fmt.Sprintf(
		`<button class="rounded border px-3 py-1" hx-post="%s"%s>%s</button>`,
		html.EscapeString(url), attrs, html.EscapeString(label),
	)
}

func hxVals(vals map[string]string) string {
	body, err := json.Marshal(vals)
	if err != nil {
		return "{}"
	}
	return html.EscapeString(string(body))
}
