package games

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	dbgen "github.com/codr1/handball-record/internal/db/generated"
)

func homePageComponent(groups []string, games []dbgen.Game) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var builder strings.Builder
		builder.WriteString(`<div class="space-y-6"><h1 class="text-2xl font-semibold">Handball Record</h1>`)
		builder.WriteString(`<section><h2 class="mb-2 font-semibold">Groups</h2>`)
		if len(groups) == 0 {
			builder.WriteString(`<p class="text-sm text-gray-500">No team sheets imported yet.</p>`)
		} else {
			builder.WriteString(`<ul class="flex flex-wrap gap-2">`)
			for _, group := range groups {
				escaped := url.PathEscape(group)
				builder.WriteString(fmt.Sprintf(
					`<li class="rounded border bg-white px-3 py-2">%s <a class="text-blue-600 hover:underline" href="/teams/%s">Teams</a> <a class="text-blue-600 hover:underline" href="/scoreboard/%s">Scoreboard</a></li>`,
					html.EscapeString(group), escaped, escaped,
				))
			}
			builder.WriteString(`</ul>`)
		}
		builder.WriteString(`</section><section><h2 class="mb-2 font-semibold">Games</h2>`)
		builder.WriteString(buildGamesTableHTML(games))
		builder.WriteString(`</section></div>`)
		_, err := io.WriteString(w, builder.String())
		return err
	})
}

func gamesPageComponent(games []dbgen.Game) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="space-y-6"><h1 class="text-2xl font-semibold">Games</h1>`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<div id="games-list" hx-get="/api/v1/games" hx-trigger="refreshGamesList from:body">`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, buildGamesTableHTML(games)); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></div>`)
		return err
	})
}

func gamesListComponent(games []dbgen.Game) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildGamesTableHTML(games))
		return err
	})
}

func gameRowComponent(game dbgen.Game) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildGameRowHTML(game))
		return err
	})
}

func gameDetailComponent(detail GameDetail) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		game := detail.Game
		header := fmt.Sprintf(
			`<div class="space-y-6" data-game-number="%d">
			<div class="flex items-center justify-between">
				<h1 class="text-2xl font-semibold">Game %d: %s vs %s</h1>
				<a class="rounded bg-blue-600 px-4 py-2 text-white" href="/games/%d/record">Record</a>
			</div>
			<p class="text-sm text-gray-600">%s %s %s %s</p>
			<div class="grid gap-6 md:grid-cols-2">`,
			game.GameNumber,
			game.GameNumber,
			html.EscapeString(game.Team1),
			html.EscapeString(game.Team2),
			game.GameNumber,
			html.EscapeString(game.GroupName),
			html.EscapeString(game.GameDate),
			html.EscapeString(game.GameTime),
			html.EscapeString(game.Location),
		)
		if _, err := io.WriteString(w, header); err != nil {
			return err
		}
		if _, err := io.WriteString(w, buildRosterHTML(game.Team1, detail.Team1, detail.Team1Keeper)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, buildRosterHTML(game.Team2, detail.Team2, detail.Team2Keeper)); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></div>`)
		return err
	})
}

func buildGamesTableHTML(games []dbgen.Game) string {
	if len(games) == 0 {
		return `<div class="rounded border border-dashed p-6 text-center text-sm text-gray-500">No games yet.</div>`
	}

	var builder strings.Builder
	builder.WriteString(`<table class="w-full text-sm"><thead><tr class="text-left text-gray-500">`)
	builder.WriteString(`<th>#</th><th>Group</th><th>Type</th><th>Teams</th><th>Date</th><th>Time</th><th>Location</th><th>Score</th></tr></thead><tbody>`)
	for _, game := range games {
		builder.WriteString(buildGameRowHTML(game))
	}
	builder.WriteString(`</tbody></table>`)
	return builder.String()
}

func buildGameRowHTML(game dbgen.Game) string {
	return fmt.Sprintf(
		`<tr class="border-t" data-game-number="%d"><td><a class="text-blue-600 hover:underline" href="/games/%d">%d</a></td><td>%s</td><td>%s</td><td>%s vs %s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
		game.GameNumber,
		game.GameNumber,
		game.GameNumber,
		html.EscapeString(game.GroupName),
		html.EscapeString(game.GameType),
		html.EscapeString(game.Team1),
		html.EscapeString(game.Team2),
		html.EscapeString(game.GameDate),
		html.EscapeString(game.GameTime),
		html.EscapeString(game.Location),
		html.EscapeString(game.Score),
	)
}

func buildRosterHTML(team string, rows []dbgen.Player, keepers []string) string {
	var builder strings.Builder
	builder.WriteString(`<section class="rounded border bg-white p-4 shadow-sm">`)
	builder.WriteString(`<h2 class="mb-2 text-lg font-semibold">` + html.EscapeString(team) + `</h2>`)
	if len(rows) == 0 {
		builder.WriteString(`<p class="text-sm text-gray-500">No roster uploaded.</p></section>`)
		return builder.String()
	}
	builder.WriteString(`<table class="w-full text-sm"><tbody>`)
	for _, p := range rows {
		builder.WriteString(fmt.Sprintf(
			`<tr class="border-t"><td class="w-10 font-mono">%s</td><td>%s</td><td class="text-gray-500">%s</td><td class="text-gray-500">%s</td></tr>`,
			html.EscapeString(p.Jersey),
			html.EscapeString(p.FullName),
			html.EscapeString(p.Role),
			html.EscapeString(p.Position),
		))
	}
	builder.WriteString(`</tbody></table>`)
	if len(keepers) > 0 {
		escaped := make([]string, len(keepers))
		for i, k := range keepers {
			escaped[i] = html.EscapeString(k)
		}
		builder.WriteString(`<p class="mt-2 text-xs text-gray-500">Goalkeepers: ` + strings.Join(escaped, ", ") + `</p>`)
	}
	builder.WriteString(`</section>`)
	return builder.String()
}
