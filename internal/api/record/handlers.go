// internal/api/record/handlers.go
package record

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/handball-record/internal/api/apiutil"
	"github.com/codr1/handball-record/internal/api/htmx"
	"github.com/codr1/handball-record/internal/match"
	"github.com/codr1/handball-record/internal/recorder"
	"github.com/codr1/handball-record/internal/roster"
	"github.com/codr1/handball-record/internal/templates/layouts"
)

const recordTimeout = 5 * time.Second

var (
	service     *recorder.Service
	serviceOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *recorder.Service) {
	if svc == nil {
		return
	}
	serviceOnce.Do(func() {
		service = svc
	})
}

type commandRequest struct {
	Side    string   `json:"side"`
	Player  string   `json:"player"`
	Action  string   `json:"action"`
	Zone    string   `json:"zone"`
	Outcome string   `json:"outcome"`
	X       *float64 `json:"x"`
	Y       *float64 `json:"y"`
}

type commandResponse struct {
	View       recorder.View     `json:"view"`
	Resolution *match.Resolution `json:"resolution,omitempty"`
	Removed    *match.Event      `json:"removed,omitempty"`
}

// GET /games/{number}/record
func HandleRecordPage(w http.ResponseWriter, r *http.Request) {
	svc, number, ok := begin(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), recordTimeout)
	defer cancel()

	view, err := svc.View(ctx, number)
	if err != nil {
		writeCommandError(w, r, number, commandResponse{}, err)
		return
	}
	a, b, err := lineups(ctx, svc, number)
	if err != nil {
		writeCommandError(w, r, number, commandResponse{}, err)
		return
	}

	title := "Game " + strconv.FormatInt(number, 10)
	page := layouts.Base(title, recordPageComponent(view, a, b), nil)
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render record page", "Failed to render page")
}

// GET /api/v1/games/{number}/session
func HandleSession(w http.ResponseWriter, r *http.Request) {
	svc, number, ok := begin(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), recordTimeout)
	defer cancel()

	view, err := svc.View(ctx, number)
	respond(w, r, number, commandResponse{View: view}, err)
}

// POST /api/v1/games/{number}/goalkeepers
func HandleGoalkeeper(w http.ResponseWriter, r *http.Request) {
	handleGoalkeeper(w, r, false)
}

// POST /api/v1/games/{number}/goalkeepers/substitute
func HandleGoalkeeperSubstitute(w http.ResponseWriter, r *http.Request) {
	handleGoalkeeper(w, r, true)
}

func handleGoalkeeper(w http.ResponseWriter, r *http.Request, substitute bool) {
	svc, number, ok := begin(w, r)
	if !ok {
		return
	}

	req, err := decodeCommand(r)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	side, err := match.ParseSide(req.Side)
	if err != nil {
		respond(w, r, number, commandResponse{}, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), recordTimeout)
	defer cancel()

	var view recorder.View
	if substitute {
		view, err = svc.SubstituteGoalkeeper(ctx, number, side, req.Player)
	} else {
		view, err = svc.SetInitialGoalkeeper(ctx, number, side, req.Player)
	}
	if err == nil {
		log.Ctx(r.Context()).Info().
			Int64("game_number", number).
			Str("side", string(side)).
			Str("player", strings.TrimSpace(req.Player)).
			Bool("substitute", substitute).
			Msg("Goalkeeper set")
	}
	respond(w, r, number, commandResponse{View: view}, err)
}

// POST /api/v1/games/{number}/clock/{action}
func HandleClock(w http.ResponseWriter, r *http.Request) {
	svc, number, ok := begin(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), recordTimeout)
	defer cancel()

	var (
		view recorder.View
		err  error
	)
	switch action := r.PathValue("action"); action {
	case "start":
		raw := apiutil.FirstNonEmpty(r.URL.Query().Get("kind"), r.FormValue("kind"), string(match.PeriodRegular))
		kind, perr := match.ParsePeriodKind(raw)
		if perr != nil {
			respond(w, r, number, commandResponse{}, perr)
			return
		}
		view, err = svc.StartPeriod(ctx, number, kind)
	case "pause":
		view, err = svc.Pause(ctx, number)
	case "resume":
		view, err = svc.Resume(ctx, number)
	case "reset":
		view, err = svc.ResetClock(ctx, number)
	case "end":
		view, err = svc.EndPeriod(ctx, number)
	default:
		err = apiutil.HandlerError{Status: http.StatusNotFound, Message: "Unknown clock action " + strconv.Quote(action)}
	}
	respond(w, r, number, commandResponse{View: view}, err)
}

// POST /api/v1/games/{number}/timeouts
func HandleTimeout(w http.ResponseWriter, r *http.Request) {
	svc, number, ok := begin(w, r)
	if !ok {
		return
	}

	req, err := decodeCommand(r)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	side, err := match.ParseSide(req.Side)
	if err != nil {
		respond(w, r, number, commandResponse{}, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), recordTimeout)
	defer cancel()

	view, err := svc.CallTimeout(ctx, number, side)
	if err == nil {
		log.Ctx(r.Context()).Info().Int64("game_number", number).Str("side", string(side)).Msg("Timeout called")
	}
	respond(w, r, number, commandResponse{View: view}, err)
}

// POST /api/v1/games/{number}/entry/{step}
func HandleEntry(w http.ResponseWriter, r *http.Request) {
	svc, number, ok := begin(w, r)
	if !ok {
		return
	}

	step := r.PathValue("step")
	var req commandRequest
	if stepTakesInput(step) {
		var err error
		if req, err = decodeCommand(r); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), recordTimeout)
	defer cancel()

	resp, err := runEntryStep(ctx, svc, number, step, req)
	if err == nil && resp.Resolution != nil && resp.Resolution.Appended {
		log.Ctx(r.Context()).Info().
			Int64("game_number", number).
			Str("outcome", string(resp.Resolution.Outcome)).
			Msg("Entry recorded")
	}
	respond(w, r, number, resp, err)
}

func stepTakesInput(step string) bool {
	switch step {
	case "player", "action", "court", "zone", "resolve":
		return true
	default:
		return false
	}
}

func runEntryStep(ctx context.Context, svc *recorder.Service, number int64, step string, req commandRequest) (commandResponse, error) {
	var resp commandResponse
	switch step {
	case "player":
		side, err := match.ParseSide(req.Side)
		if err != nil {
			return resp, err
		}
		resp.View, err = svc.SelectPlayer(ctx, number, side, req.Player)
		return resp, err
	case "action":
		code, err := match.ParseActionCode(req.Action)
		if err != nil {
			return resp, err
		}
		resp.View, err = svc.ChooseAction(ctx, number, code)
		return resp, err
	case "court":
		if req.X == nil || req.Y == nil {
			return resp, match.ErrInvalidCourtPoint
		}
		var err error
		resp.View, err = svc.ChooseCourtPosition(ctx, number, match.CourtPoint{X: *req.X, Y: *req.Y})
		return resp, err
	case "zone":
		zone, err := match.ParseGoalZone(req.Zone)
		if err != nil {
			return resp, err
		}
		resp.View, err = svc.ChooseZone(ctx, number, zone)
		return resp, err
	case "clear":
		var err error
		resp.View, err = svc.ClearEntry(ctx, number)
		return resp, err
	case "resolve":
		outcome, err := match.ParseOutcome(req.Outcome)
		if err != nil {
			return resp, err
		}
		view, res, err := svc.Resolve(ctx, number, outcome)
		resp.View, resp.Resolution = view, &res
		return resp, err
	case "confirm":
		view, res, err := svc.ConfirmAttribution(ctx, number)
		resp.View, resp.Resolution = view, &res
		return resp, err
	case "cancel":
		var err error
		resp.View, err = svc.CancelAttribution(ctx, number)
		return resp, err
	default:
		return resp, apiutil.HandlerError{Status: http.StatusNotFound, Message: "Unknown entry step " + strconv.Quote(step)}
	}
}

// DELETE /api/v1/games/{number}/events/{index}
func HandleEventDelete(w http.ResponseWriter, r *http.Request) {
	svc, number, ok := begin(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(strings.TrimSpace(r.PathValue("index")))
	if err != nil {
		respond(w, r, number, commandResponse{}, apiutil.FieldError{Field: "index", Reason: "must be a number"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), recordTimeout)
	defer cancel()

	view, removed, err := svc.DeleteEvent(ctx, number, index)
	resp := commandResponse{View: view}
	if err == nil {
		resp.Removed = &removed
		log.Ctx(r.Context()).Info().
			Int64("game_number", number).
			Int("index", index).
			Int64("event_id", removed.ID).
			Msg("Event deleted")
	}
	respond(w, r, number, resp, err)
}

// GET /api/v1/games/{number}/boxscore
func HandleBoxScore(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc, number, ok := begin(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), recordTimeout)
	defer cancel()

	snap, err := svc.BoxScore(ctx, number)
	if err != nil {
		writeCommandError(w, r, number, commandResponse{}, err)
		return
	}

	if htmx.IsRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, boxScoreComponent(snap), nil, "Failed to render box score", "Failed to render box score")
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, snap); err != nil {
		logger.Error().Err(err).Int64("game_number", number).Msg("Failed to write box score response")
	}
}

func begin(w http.ResponseWriter, r *http.Request) (*recorder.Service, int64, bool) {
	svc := loadService()
	if svc == nil {
		log.Ctx(r.Context()).Error().Msg("Recorder not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, 0, false
	}
	number, err := apiutil.GameNumberFromPath(r)
	if err != nil {
		http.Error(w, "Invalid game number", http.StatusBadRequest)
		return nil, 0, false
	}
	return svc, number, true
}

// respond writes the command result: the re-rendered recorder panel for HTMX requests and
// JSON otherwise.
func respond(w http.ResponseWriter, r *http.Request, number int64, resp commandResponse, err error) {
	if err != nil {
		writeCommandError(w, r, number, resp, err)
		return
	}
	if htmx.IsRequest(r) {
		renderPanel(w, r, number, resp.View)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("game_number", number).Msg("Failed to write recorder response")
	}
}

func renderPanel(w http.ResponseWriter, r *http.Request, number int64, view recorder.View) {
	ctx, cancel := context.WithTimeout(r.Context(), recordTimeout)
	defer cancel()

	a, b, err := lineups(ctx, loadService(), number)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load lineups")
		return
	}
	apiutil.RenderHTMLComponent(r.Context(), w, panelComponent(view, a, b), nil, "Failed to render recorder panel", "Failed to render recorder")
}

func lineups(ctx context.Context, svc *recorder.Service, number int64) (roster.Lineup, roster.Lineup, error) {
	game, rosters, err := svc.Rosters(ctx, number)
	if err != nil {
		return roster.Lineup{}, roster.Lineup{}, err
	}
	return roster.BuildLineup(game.Team1, rosters.A), roster.BuildLineup(game.Team2, rosters.B), nil
}

func decodeCommand(r *http.Request) (commandRequest, error) {
	if apiutil.IsJSONRequest(r) {
		var req commandRequest
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			return commandRequest{}, err
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return commandRequest{}, err
	}
	req := commandRequest{
		Side:    r.FormValue("side"),
		Player:  r.FormValue("player"),
		Action:  apiutil.FirstNonEmpty(r.FormValue("action"), r.FormValue("code")),
		Zone:    r.FormValue("zone"),
		Outcome: r.FormValue("outcome"),
	}
	var err error
	if req.X, err = parseCoordinate(r.FormValue("x"), "x"); err != nil {
		return commandRequest{}, err
	}
	if req.Y, err = parseCoordinate(r.FormValue("y"), "y"); err != nil {
		return commandRequest{}, err
	}
	return req, nil
}

func parseCoordinate(raw, field string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apiutil.FieldError{Field: field, Reason: "must be a number"}
	}
	return &value, nil
}

func loadService() *recorder.Service {
	return service
}
