package roster

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

func groupPageComponent(group string, teams []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var builder strings.Builder
		builder.WriteString(`<div class="space-y-4"><div class="flex items-center justify-between">`)
		builder.WriteString(`<h1 class="text-2xl font-semibold">` + html.EscapeString(group) + `</h1>`)
		builder.WriteString(`<a class="text-blue-600 hover:underline" href="/scoreboard/` + url.PathEscape(group) + `">Scoreboard</a></div>`)
		if len(teams) == 0 {
			builder.WriteString(`<p class="text-sm text-gray-500">No teams in this group.</p>`)
		} else {
			builder.WriteString(`<ul class="grid gap-2 md:grid-cols-3">`)
			for _, team := range teams {
				builder.WriteString(fmt.Sprintf(
					`<li><a class="block rounded border bg-white p-3 hover:bg-gray-50" href="/teams/%s/%s">%s</a></li>`,
					url.PathEscape(group), url.PathEscape(team), html.EscapeString(team),
				))
			}
			builder.WriteString(`</ul>`)
		}
		builder.WriteString(`</div>`)
		_, err := io.WriteString(w, builder.String())
		return err
	})
}

func teamSheetComponent(group, team string, players []dbgen.Player) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildTeamSheetHTML(group, team, players))
		return err
	})
}

func buildTeamSheetHTML(group, team string, players []dbgen.Player) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(
		`<div id="team-sheet" class="space-y-4"><h1 class="text-2xl font-semibold">%s <span class="text-gray-500">%s</span></h1>`,
		html.EscapeString(team), html.EscapeString(group),
	))
	if len(players) == 0 {
		builder.WriteString(`<p class="text-sm text-gray-500">No players on this sheet.</p></div>`)
		return builder.String()
	}

	builder.WriteString(`<table class="w-full text-sm"><thead><tr class="text-left text-gray-500">`)
	builder.WriteString(`<th>No</th><th>#</th><th>Name</th><th>Role</th><th>Position</th><th>GK</th><th>Goals</th><th>Attempts</th><th>Misses</th><th>Saves</th></tr></thead><tbody>`)
	for _, p := range players {
		builder.WriteString(fmt.Sprintf(
			`<tr class="border-t" data-player-id="%d"><td>%d</td><td class="font-mono">%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td></tr>`,
			p.ID,
			p.SheetNo,
			html.EscapeString(p.Jersey),
			html.EscapeString(p.FullName),
			html.EscapeString(p.Role),
			html.EscapeString(p.Position),
			p.GkOrder,
			p.Goals,
			p.Attempts,
			p.Misses,
			p.Saves,
		))
	}
	builder.WriteString(`</tbody></table></div>`)
	return builder.String()
}
