// internal/api/nav/handlers.go
package nav

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog/log"

	"github.com/codr1/handball-record/internal/api/apiutil"
	"github.com/codr1/handball-record/internal/api/htmx"
	dbgen "github.com/codr1/handball-record/internal/db/generated"
)

const (
	searchLimit   = 10
	searchTimeout = 5 * time.Second
)

var (
	queries     *dbgen.Queries
	queriesOnce sync.Once
)

type searchResult struct {
	Group  string `json:"group"`
	Team   string `json:"team"`
	Jersey string `json:"jersey"`
	Name   string `json:"name"`
}

func InitHandlers(q *dbgen.Queries) {
	if q == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = q
	})
}

// GET /api/v1/players/search?q=
func HandleSearch(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	term := strings.TrimSpace(r.URL.Query().Get("q"))
	results := []searchResult{}
	if term != "" {
		ctx, cancel := context.WithTimeout(r.Context(), searchTimeout)
		defer cancel()

		var err error
		results, err = searchPlayers(ctx, queries, term)
		if err != nil {
			logger.Error().Err(err).Str("term", term).Msg("Player search failed")
			http.Error(w, "Search failed", http.StatusInternalServerError)
			return
		}
	}

	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, resultsComponent(results), nil, "Failed to render search results", "Failed to render search results")
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, results); err != nil {
		logger.Error().Err(err).Msg("Failed to write search response")
	}
}

// searchPlayers matches across every group. A jersey must match exactly; names
// match fuzzily.
func searchPlayers(ctx context.Context, q *dbgen.Queries, term string) ([]searchResult, error) {
	groups, err := q.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	results := []searchResult{}
	for _, group := range groups {
		players, err := q.ListPlayersByGroup(ctx, group)
		if err != nil {
			return nil, fmt.Errorf("list players for %s: %w", group, err)
		}
		for _, p := range players {
			if !strings.EqualFold(p.Jersey, term) &&
				!fuzzy.MatchNormalizedFold(term, p.FullName) &&
				!fuzzy.MatchNormalizedFold(term, p.ShortName) {
				continue
			}
			results = append(results, searchResult{Group: p.GroupName, Team: p.Team, Jersey: p.Jersey, Name: p.FullName})
			if len(results) == searchLimit {
				return results, nil
			}
		}
	}
	return results, nil
}

func resultsComponent(results []searchResult) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var builder strings.Builder
		builder.WriteString(`<ul id="player-search-results" class="absolute z-10 mt-1 w-64 rounded bg-white text-gray-900 shadow">`)
		for _, res := range results {
			builder.WriteString(fmt.Sprintf(
				`<li><a class="block px-3 py-1 hover:bg-gray-100" href="/teams/%s/%s">#%s %s <span class="text-gray-500">%s %s</span></a></li>`,
				url.PathEscape(res.Group),
				url.PathEscape(res.Team),
				html.EscapeString(res.Jersey),
				html.EscapeString(res.Name),
				html.EscapeString(res.Group),
				html.EscapeString(res.Team),
			))
		}
		builder.WriteString(`</ul>`)
		_, err := io.WriteString(w, builder.String())
		return err
	})
}
