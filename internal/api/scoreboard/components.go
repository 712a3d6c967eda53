package scoreboard

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/handball-record/internal/scoreboard"
)

var sortColumns = []struct {
	key   scoreboard.SortKey
	label string
}{
	{scoreboard.SortTeam, "Team"},
	{scoreboard.SortJersey, "#"},
	{scoreboard.SortName, "Name"},
	{scoreboard.SortGoals, "Goals"},
	{scoreboard.SortAttempts, "Attempts"},
	{scoreboard.SortMisses, "Misses"},
}

func pageComponent(query scoreboard.Query, teams []string, rows []scoreboard.Row) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		endpoint := "/api/v1/scoreboard/" + url.PathEscape(query.Group)

		var builder strings.Builder
		builder.WriteString(fmt.Sprintf(
			`<div class="space-y-4"><h1 class="text-2xl font-semibold">Scoreboard <span class="text-gray-500">%s</span></h1>`,
			html.EscapeString(query.Group),
		))
		builder.WriteString(fmt.Sprintf(
			`<form class="flex flex-wrap gap-2" hx-get="%s" hx-target="#scoreboard" hx-swap="outerHTML" hx-trigger="change, keyup delay:300ms from:input[name='q']">`,
			endpoint,
		))
		builder.WriteString(`<select name="team" class="rounded border px-2 py-1"><option value="">All teams</option>`)
		for _, team := range teams {
			selected := ""
			if team == query.Team {
				selected = " selected"
			}
			builder.WriteString(fmt.Sprintf(`<option value="%s"%s>%s</option>`, html.EscapeString(team), selected, html.EscapeString(team)))
		}
		builder.WriteString(`</select>`)
		builder.WriteString(fmt.Sprintf(
			`<input name="q" type="search" placeholder="Search players" value="%s" class="rounded border px-2 py-1"/>`,
			html.EscapeString(query.Search),
		))
		builder.WriteString(`</form>`)
		if _, err := io.WriteString(w, builder.String()); err != nil {
			return err
		}
		if _, err := io.WriteString(w, buildTableHTML(query, rows)); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func tableComponent(query scoreboard.Query, rows []scoreboard.Row) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildTableHTML(query, rows))
		return err
	})
}

func buildTableHTML(query scoreboard.Query, rows []scoreboard.Row) string {
	var builder strings.Builder
	builder.WriteString(`<div id="scoreboard"><table class="w-full text-sm"><thead><tr class="text-left text-gray-500">`)
	for _, col := range sortColumns {
		builder.WriteString(fmt.Sprintf(
			`<th><a href="#" hx-get="%s" hx-target="#scoreboard" hx-swap="outerHTML">%s%s</a></th>`,
			html.EscapeString(sortLink(query, col.key)), html.EscapeString(col.label), sortMarker(query, col.key),
		))
	}
	builder.WriteString(`<th>%</th></tr></thead><tbody>`)

	if len(rows) == 0 {
		builder.WriteString(`<tr><td colspan="7" class="py-4 text-center text-gray-500">No players found.</td></tr>`)
	}
	for _, row := range rows {
		pct := "-"
		if row.ShootingPct != nil {
			pct = fmt.Sprintf("%d%%", *row.ShootingPct)
		}
		builder.WriteString(fmt.Sprintf(
			`<tr class="border-t"><td>%s</td><td class="font-mono">%s</td><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%s</td></tr>`,
			html.EscapeString(row.Team),
			html.EscapeString(row.Jersey),
			html.EscapeString(row.Name),
			row.Goals,
			row.Attempts,
			row.Misses,
			pct,
		))
	}
	builder.WriteString(`</tbody></table></div>`)
	return builder.String()
}

// sortLink toggles the order when the column is already the sort key.
func sortLink(query scoreboard.Query, key scoreboard.SortKey) string {
	values := url.Values{}
	values.Set("sort", string(key))
	if query.Team != "" {
		values.Set("team", query.Team)
	}
	if query.Search != "" {
		values.Set("q", query.Search)
	}
	if key == query.Sort {
		values.Set("order", orderName(!query.Descending))
	}
	return "/api/v1/scoreboard/" + url.PathEscape(query.Group) + "?" + values.Encode()
}

func sortMarker(query scoreboard.Query, key scoreboard.SortKey) string {
	if key != query.Sort {
		return ""
	}
	if query.Descending {
		return " ▼"
	}
	return " ▲"
}
