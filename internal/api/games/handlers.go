// internal/api/games/handlers.go
package games

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
	dbgen "github.com/codr1/handball-record/internal/db/generated"
	"github.com/codr1/handball-record/internal/roster"
	"github.com/codr1/handball-record/internal/templates/layouts"
)

const gamesQueryTimeout = 5 * time.Second

// Evicter drops a cached live session after the game row changes.
type Evicter interface {
	Evict(number int64)
}

var (
	queries     *dbgen.Queries
	live        Evicter
	queriesOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *dbgen.Queries, sessions Evicter) {
	if q == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = q
		live = sessions
	})
}

type gameRequest struct {
	GameNumber int64  `json:"gameNumber"`
	Group      string `json:"group"`
	GameType   string `json:"gameType"`
	Team1      string `json:"team1"`
	Team2      string `json:"team2"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Location   string `json:"location"`
	Win        string `json:"win"`
	Lose       string `json:"lose"`
	Score      string `json:"score"`
}

// GameDetail is a game with both team sheets in display order.
type GameDetail struct {
	Game        dbgen.Game     `json:"game"`
	Team1       []dbgen.Player `json:"team1Roster"`
	Team2       []dbgen.Player `json:"team2Roster"`
	Team1Keeper []string       `json:"team1Goalkeepers"`
	Team2Keeper []string       `json:"team2Goalkeepers"`
}

// GET /
func HandleHomePage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gamesQueryTimeout)
	defer cancel()

	groups, err := q.ListGroups(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list groups")
		http.Error(w, "Failed to load home page", http.StatusInternalServerError)
		return
	}
	games, err := q.ListGames(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list games")
		http.Error(w, "Failed to load home page", http.StatusInternalServerError)
		return
	}

	page := layouts.Base("Handball Record", homePageComponent(groups, games), nil)
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render home page", "Failed to render page")
}

// GET /games
func HandleGamesPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gamesQueryTimeout)
	defer cancel()

	games, err := q.ListGames(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list games")
		http.Error(w, "Failed to list games", http.StatusInternalServerError)
		return
	}

	page := layouts.Base("Games", gamesPageComponent(games), nil)
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render games page", "Failed to render page")
}

// GET /api/v1/games
func HandleGameList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gamesQueryTimeout)
	defer cancel()

	games, err := q.ListGames(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list games")
		http.Error(w, "Failed to list games", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, gamesListComponent(games), nil, "Failed to render games list", "Failed to render list")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"games": games}); err != nil {
		logger.Error().Err(err).Msg("Failed to write games response")
	}
}

// POST /api/v1/games
func HandleGameCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	req, err := decodeGameRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateGameRequest(req, true); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gamesQueryTimeout)
	defer cancel()

	created, err := q.CreateGame(ctx, dbgen.CreateGameParams{
		GameNumber: req.GameNumber,
		GroupName:  req.Group,
		GameType:   req.GameType,
		Team1:      req.Team1,
		Team2:      req.Team2,
		GameDate:   req.Date,
		GameTime:   req.Time,
		Location:   req.Location,
	})
	if err != nil {
		if apiutil.IsSQLiteUniqueViolation(err) {
			http.Error(w, fmt.Sprintf("Game %d already exists", req.GameNumber), http.StatusConflict)
			return
		}
		logger.Error().Err(err).Int64("game_number", req.GameNumber).Msg("Failed to create game")
		http.Error(w, "Failed to create game", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("game_number", created.GameNumber).Str("team1", created.Team1).Str("team2", created.Team2).Msg("Game created")

	if htmx.IsRequest(r) {
		headers := map[string]string{"HX-Trigger": "refreshGamesList"}
		apiutil.RenderHTMLComponent(r.Context(), w, gameRowComponent(created), headers, "Failed to render game row", "Failed to render response")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, created); err != nil {
		logger.Error().Err(err).Int64("game_number", created.GameNumber).Msg("Failed to write game response")
	}
}

// GET /api/v1/games/{number} and the /games/{number} page.
func HandleGameDetail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	number, err := apiutil.GameNumberFromPath(r)
	if err != nil {
		http.Error(w, "Invalid game number", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gamesQueryTimeout)
	defer cancel()

	detail, err := loadDetail(ctx, q, number)
	if err != nil {
		var herr apiutil.HandlerError
		if errors.As(err, &herr) {
			apiutil.WriteError(w, r, herr, "Failed to load game")
			return
		}
		logger.Error().Err(err).Int64("game_number", number).Msg("Failed to load game")
		http.Error(w, "Failed to load game", http.StatusInternalServerError)
		return
	}

	if strings.HasPrefix(r.URL.Path, "/api/") && !htmx.IsRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, detail); err != nil {
			logger.Error().Err(err).Int64("game_number", number).Msg("Failed to write game response")
		}
		return
	}

	var component = gameDetailComponent(detail)
	if !htmx.IsRequest(r) {
		component = layouts.Base(fmt.Sprintf("Game %d", number), component, nil)
	}
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render game detail", "Failed to render game")
}

// PUT /api/v1/games/{number}
func HandleGameUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	number, err := apiutil.GameNumberFromPath(r)
	if err != nil {
		http.Error(w, "Invalid game number", http.StatusBadRequest)
		return
	}

	req, err := decodeGameRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateGameRequest(req, false); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), gamesQueryTimeout)
	defer cancel()

	updated, err := q.UpdateGame(ctx, dbgen.UpdateGameParams{
		GroupName:  req.Group,
		GameType:   req.GameType,
		Team1:      req.Team1,
		Team2:      req.Team2,
		GameDate:   req.Date,
		GameTime:   req.Time,
		Location:   req.Location,
		Win:        req.Win,
		Lose:       req.Lose,
		Score:      req.Score,
		GameNumber: number,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Game not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("game_number", number).Msg("Failed to update game")
		http.Error(w, "Failed to update game", http.StatusInternalServerError)
		return
	}

	if live != nil {
		live.Evict(number)
	}

	if htmx.IsRequest(r) {
		headers := map[string]string{"HX-Trigger": "refreshGamesList"}
		apiutil.RenderHTMLComponent(r.Context(), w, gameRowComponent(updated), headers, "Failed to render game row", "Failed to render response")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, updated); err != nil {
		logger.Error().Err(err).Int64("game_number", number).Msg("Failed to write game response")
	}
}

func loadDetail(ctx context.Context, q *dbgen.Queries, number int64) (GameDetail, error) {
	game, err := q.GetGameByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GameDetail{}, apiutil.HandlerError{Status: http.StatusNotFound, Message: "Game not found", Err: err}
		}
		return GameDetail{}, fmt.Errorf("load game %d: %w", number, err)
	}

	team1, err := roster.LoadTeam(ctx, q, game.GroupName, game.Team1)
	if err != nil {
		return GameDetail{}, err
	}
	team2, err := roster.LoadTeam(ctx, q, game.GroupName, game.Team2)
	if err != nil {
		return GameDetail{}, err
	}

	return GameDetail{
		Game:        game,
		Team1:       roster.DetailOrder(team1),
		Team2:       roster.DetailOrder(team2),
		Team1Keeper: keeperJerseys(team1),
		Team2Keeper: keeperJerseys(team2),
	}, nil
}

func keeperJerseys(rows []dbgen.Player) []string {
	keepers := roster.Entries(rows).Goalkeepers()
	out := make([]string, 0, len(keepers))
	for _, gk := range keepers {
		out = append(out, gk.Jersey)
	}
	return out
}

func decodeGameRequest(r *http.Request) (gameRequest, error) {
	if apiutil.IsJSONRequest(r) {
		var req gameRequest
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			return gameRequest{}, err
		}
		return trimGameRequest(req), nil
	}

	if err := r.ParseForm(); err != nil {
		return gameRequest{}, err
	}

	var number int64
	if raw := apiutil.FirstNonEmpty(r.FormValue("game_number"), r.FormValue("gameNumber")); raw != "" {
		parsed, err := apiutil.ParsePositiveInt64Field(raw, "game_number")
		if err != nil {
			return gameRequest{}, err
		}
		number = parsed
	}

	return gameRequest{
		GameNumber: number,
		Group:      apiutil.FirstNonEmpty(r.FormValue("group")),
		GameType:   apiutil.FirstNonEmpty(r.FormValue("game_type"), r.FormValue("gameType")),
		Team1:      apiutil.FirstNonEmpty(r.FormValue("team1")),
		Team2:      apiutil.FirstNonEmpty(r.FormValue("team2")),
		Date:       apiutil.FirstNonEmpty(r.FormValue("date")),
		Time:       apiutil.FirstNonEmpty(r.FormValue("time")),
		Location:   apiutil.FirstNonEmpty(r.FormValue("location")),
		Win:        apiutil.FirstNonEmpty(r.FormValue("win")),
		Lose:       apiutil.FirstNonEmpty(r.FormValue("lose")),
		Score:      apiutil.FirstNonEmpty(r.FormValue("score")),
	}, nil
}

func trimGameRequest(req gameRequest) gameRequest {
	req.Group = strings.TrimSpace(req.Group)
	req.GameType = strings.TrimSpace(req.GameType)
	req.Team1 = strings.TrimSpace(req.Team1)
	req.Team2 = strings.TrimSpace(req.Team2)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.Location = strings.TrimSpace(req.Location)
	req.Win = strings.TrimSpace(req.Win)
	req.Lose = strings.TrimSpace(req.Lose)
	req.Score = strings.TrimSpace(req.Score)
	return req
}

func validateGameRequest(req gameRequest, creating bool) error {
	switch {
	case creating && req.GameNumber <= 0:
		return apiutil.FieldError{Field: "gameNumber", Reason: "must be greater than 0"}
	case req.Team1 == "":
		return apiutil.FieldError{Field: "team1", Reason: "is required"}
	case req.Team2 == "":
		return apiutil.FieldError{Field: "team2", Reason: "is required"}
	case req.Team1 == req.Team2:
		return apiutil.FieldError{Field: "team2", Reason: "must differ from team1"}
	}
	return nil
}

func loadQueries() *dbgen.Queries {
	return queries
}
