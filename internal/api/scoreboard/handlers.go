// internal/api/scoreboard/handlers.go
package scoreboard

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/handball-record/internal/api/apiutil"
	"github.com/codr1/handball-record/internal/api/htmx"
	dbgen "github.com/codr1/handball-record/internal/db/generated"
	"github.com/codr1/handball-record/internal/scoreboard"
	"github.com/codr1/handball-record/internal/templates/layouts"
)

const scoreboardQueryTimeout = 5 * time.Second

var (
	queries     *dbgen.Queries
	queriesOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *dbgen.Queries) {
	if q == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = q
	})
}

// GET /api/v1/scoreboard/{group}?team=&q=&sort=&order=
func HandleScoreboard(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	query, err := parseQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), scoreboardQueryTimeout)
	defer cancel()

	rows, err := scoreboard.Load(ctx, q, query)
	if err != nil {
		logger.Error().Err(err).Str("group", query.Group).Msg("Failed to load scoreboard")
		http.Error(w, "Failed to load scoreboard", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, tableComponent(query, rows), nil, "Failed to render scoreboard", "Failed to render scoreboard")
		return
	}

	resp := map[string]any{
		"group": query.Group,
		"team":  query.Team,
		"sort":  query.Sort,
		"order": orderName(query.Descending),
		"rows":  rows,
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Str("group", query.Group).Msg("Failed to write scoreboard response")
	}
}

// GET /scoreboard/{group}
func HandleScoreboardPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	query, err := parseQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), scoreboardQueryTimeout)
	defer cancel()

	teams, err := q.ListTeamsByGroup(ctx, query.Group)
	if err != nil {
		logger.Error().Err(err).Str("group", query.Group).Msg("Failed to list teams")
		http.Error(w, "Failed to load scoreboard", http.StatusInternalServerError)
		return
	}
	rows, err := scoreboard.Load(ctx, q, query)
	if err != nil {
		logger.Error().Err(err).Str("group", query.Group).Msg("Failed to load scoreboard")
		http.Error(w, "Failed to load scoreboard", http.StatusInternalServerError)
		return
	}

	page := layouts.Base("Scoreboard "+query.Group, pageComponent(query, teams, rows), nil)
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render scoreboard page", "Failed to render page")
}

// parseQuery reads the scoreboard filters. Without an explicit order, counting columns
// sort high to low and text columns A to Z.
func parseQuery(r *http.Request) (scoreboard.Query, error) {
	group, _, err := apiutil.TeamFromPath(r)
	if err != nil {
		return scoreboard.Query{}, err
	}

	values := r.URL.Query()
	key, err := scoreboard.ParseSortKey(values.Get("sort"))
	if err != nil {
		return scoreboard.Query{}, err
	}

	query := scoreboard.Query{
		Group:  group,
		Team:   strings.TrimSpace(values.Get("team")),
		Search: strings.TrimSpace(values.Get("q")),
		Sort:   key,
	}
	switch strings.ToLower(strings.TrimSpace(values.Get("order"))) {
	case "":
		query.Descending = key == scoreboard.SortGoals || key == scoreboard.SortAttempts || key == scoreboard.SortMisses
	case "asc":
		query.Descending = false
	case "desc":
		query.Descending = true
	default:
		return scoreboard.Query{}, errors.New("order must be asc or desc")
	}
	return query, nil
}

func orderName(descending bool) string {
	if descending {
		return "desc"
	}
	return "asc"
}

func loadQueries() *dbgen.Queries {
	return queries
}
