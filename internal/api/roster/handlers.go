// internal/api/roster/handlers.go
package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/handball-record/internal/api/apiutil"
	"github.com/codr1/handball-record/internal/api/htmx"
	"github.com/codr1/handball-record/internal/db"
	dbgen "github.com/codr1/handball-record/internal/db/generated"
	"github.com/codr1/handball-record/internal/roster"
	"github.com/codr1/handball-record/internal/templates/layouts"
)

const rosterQueryTimeout = 5 * time.Second

// Refresher reloads the team sheets held by live sessions.
type Refresher interface {
	RefreshRosters(ctx context.Context, group, team string) error
}

var (
	store     *db.DB
	refresher Refresher
	storeOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *db.DB, live Refresher) {
	if database == nil {
		return
	}
	storeOnce.Do(func() {
		store = database
		refresher = live
	})
}

// Lineups is the record page's view of both teams of a game.
type Lineups struct {
	GameNumber int64         `json:"gameNumber"`
	A          roster.Lineup `json:"a"`
	B          roster.Lineup `json:"b"`
}

// POST /api/v1/players
func HandlePlayersImport(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	database := loadDB()
	if database == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var rows []roster.ImportRow
	if err := apiutil.DecodeJSON(r, &rows); err != nil {
		http.Error(w, "Invalid roster JSON", http.StatusBadRequest)
		return
	}
	if len(rows) == 0 {
		http.Error(w, "No roster rows", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), rosterQueryTimeout)
	defer cancel()

	imported, err := roster.Import(ctx, database, rows)
	if err != nil {
		if errors.Is(err, roster.ErrInvalidRow) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Error().Err(err).Int("rows", len(rows)).Msg("Failed to import roster")
		http.Error(w, "Failed to import roster", http.StatusInternalServerError)
		return
	}

	for _, key := range importedTeams(rows) {
		refreshLive(ctx, key[0], key[1])
	}

	logger.Info().Int("rows", imported).Msg("Roster imported")
	if err := apiutil.WriteJSON(w, http.StatusCreated, map[string]int{"imported": imported}); err != nil {
		logger.Error().Err(err).Msg("Failed to write import response")
	}
}

// GET /api/v1/teams?group= lists groups, or the teams of one group.
func HandleTeamsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	database := loadDB()
	if database == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), rosterQueryTimeout)
	defer cancel()

	group := strings.TrimSpace(r.URL.Query().Get("group"))
	if group == "" {
		groups, err := database.Queries.ListGroups(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to list groups")
			http.Error(w, "Failed to list groups", http.StatusInternalServerError)
			return
		}
		if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"groups": groups}); err != nil {
			logger.Error().Err(err).Msg("Failed to write groups response")
		}
		return
	}

	teams, err := database.Queries.ListTeamsByGroup(ctx, group)
	if err != nil {
		logger.Error().Err(err).Str("group", group).Msg("Failed to list teams")
		http.Error(w, "Failed to list teams", http.StatusInternalServerError)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"group": group, "teams": teams}); err != nil {
		logger.Error().Err(err).Str("group", group).Msg("Failed to write teams response")
	}
}

// GET /teams/{group}
func HandleGroupPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	database := loadDB()
	if database == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	group, _, err := apiutil.TeamFromPath(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), rosterQueryTimeout)
	defer cancel()

	teams, err := database.Queries.ListTeamsByGroup(ctx, group)
	if err != nil {
		logger.Error().Err(err).Str("group", group).Msg("Failed to list teams")
		http.Error(w, "Failed to list teams", http.StatusInternalServerError)
		return
	}

	page := layouts.Base(group, groupPageComponent(group, teams), nil)
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render group page", "Failed to render page")
}

// GET /api/v1/teams/{group}/{team} and the /teams/{group}/{team} page.
func HandleTeamDetail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	database := loadDB()
	if database == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	group, team, err := apiutil.TeamFromPath(r)
	if err != nil || team == "" {
		http.Error(w, "Group and team are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), rosterQueryTimeout)
	defer cancel()

	players, err := roster.LoadTeam(ctx, database.Queries, group, team)
	if err != nil {
		logger.Error().Err(err).Str("group", group).Str("team", team).Msg("Failed to load team")
		http.Error(w, "Failed to load team", http.StatusInternalServerError)
		return
	}

	if strings.HasPrefix(r.URL.Path, "/api/") && !htmx.IsRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"group": group, "team": team, "players": players}); err != nil {
			logger.Error().Err(err).Str("team", team).Msg("Failed to write team response")
		}
		return
	}

	var component = teamSheetComponent(group, team, players)
	if !htmx.IsRequest(r) {
		component = layouts.Base(team, component, nil)
	}
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render team sheet", "Failed to render team")
}

// PUT /api/v1/teams/{group}/{team}
func HandleTeamUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	database := loadDB()
	if database == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	group, team, err := apiutil.TeamFromPath(r)
	if err != nil || team == "" {
		http.Error(w, "Group and team are required", http.StatusBadRequest)
		return
	}

	var edits []roster.PlayerEdit
	if err := apiutil.DecodeJSON(r, &edits); err != nil {
		http.Error(w, "Invalid player edits", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), rosterQueryTimeout)
	defer cancel()

	updated, err := roster.UpdateTeam(ctx, database, group, team, edits)
	if err != nil {
		switch {
		case errors.Is(err, roster.ErrInvalidRow):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, sql.ErrNoRows):
			http.Error(w, "Player is not on this team", http.StatusNotFound)
		case apiutil.IsSQLiteUniqueViolation(err):
			http.Error(w, "Duplicate sheet row", http.StatusConflict)
		default:
			logger.Error().Err(err).Str("group", group).Str("team", team).Msg("Failed to update team")
			http.Error(w, "Failed to update team", http.StatusInternalServerError)
		}
		return
	}

	refreshLive(ctx, group, team)

	if htmx.IsRequest(r) {
		players, err := roster.LoadTeam(ctx, database.Queries, group, team)
		if err != nil {
			logger.Error().Err(err).Str("team", team).Msg("Failed to reload team")
			http.Error(w, "Failed to load team", http.StatusInternalServerError)
			return
		}
		headers := map[string]string{"HX-Trigger": "rosterSaved"}
		apiutil.RenderHTMLComponent(r.Context(), w, teamSheetComponent(group, team, players), headers, "Failed to render team sheet", "Failed to render team")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"players": updated}); err != nil {
		logger.Error().Err(err).Str("team", team).Msg("Failed to write team response")
	}
}

// GET /api/v1/games/{number}/lineup
func HandleGameLineup(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	database := loadDB()
	if database == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	number, err := apiutil.GameNumberFromPath(r)
	if err != nil {
		http.Error(w, "Invalid game number", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), rosterQueryTimeout)
	defer cancel()

	lineups, err := LoadLineups(ctx, database.Queries, number)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load lineup")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, lineups); err != nil {
		logger.Error().Err(err).Int64("game_number", number).Msg("Failed to write lineup response")
	}
}

// LoadLineups builds both teams' record-page lineups for a game.
func LoadLineups(ctx context.Context, q *dbgen.Queries, number int64) (Lineups, error) {
	game, err := q.GetGameByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Lineups{}, apiutil.HandlerError{Status: http.StatusNotFound, Message: "Game not found", Err: err}
		}
		return Lineups{}, fmt.Errorf("load game %d: %w", number, err)
	}
	rosters, err := roster.LoadGame(ctx, q, game)
	if err != nil {
		return Lineups{}, err
	}
	return Lineups{
		GameNumber: number,
		A:          roster.BuildLineup(game.Team1, rosters.A),
		B:          roster.BuildLineup(game.Team2, rosters.B),
	}, nil
}

func refreshLive(ctx context.Context, group, team string) {
	if refresher == nil {
		return
	}
	if err := refresher.RefreshRosters(ctx, group, team); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("group", group).Str("team", team).Msg("Failed to refresh live rosters")
	}
}

func importedTeams(rows []roster.ImportRow) [][2]string {
	seen := make(map[[2]string]struct{})
	var keys [][2]string
	for _, row := range rows {
		key := [2]string{strings.TrimSpace(row.Group), strings.TrimSpace(row.Team)}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

func loadDB() *db.DB {
	return store
}
