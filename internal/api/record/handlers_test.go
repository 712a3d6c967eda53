package record

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codr1/handball-record/internal/api/apiutil"
	"github.com/codr1/handball-record/internal/boxscore"
	"github.com/codr1/handball-record/internal/match"
	"github.com/codr1/handball-record/internal/recorder"
	"github.com/codr1/handball-record/internal/testutil"
)

const gameNumber = 21

func setupRecordTest(t *testing.T) *http.ServeMux {
	t.Helper()

	database := testutil.NewTestDB(t)
	testutil.SeedGame(t, database, gameNumber, "U16", "Sharks", "Owls")
	testutil.SeedTeam(t, database, "U16", "Sharks",
		testutil.SeedPlayer{Jersey: "1", Position: "GK", GKOrder: 1, Name: "Ana"},
		testutil.SeedPlayer{Jersey: "10", Name: "Bo"},
	)
	testutil.SeedTeam(t, database, "U16", "Owls",
		testutil.SeedPlayer{Jersey: "16", Position: "GK", GKOrder: 1, Name: "Cai"},
		testutil.SeedPlayer{Jersey: "4", Name: "Dee"},
	)

	svc := recorder.New(database, boxscore.NewCache(database, nil), nil, clockwork.NewFakeClock())
	service = svc
	t.Cleanup(func() {
		svc.Close()
		service = nil
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /games/{number}/record", HandleRecordPage)
	mux.HandleFunc("GET /api/v1/games/{number}/session", HandleSession)
	mux.HandleFunc("POST /api/v1/games/{number}/goalkeepers", HandleGoalkeeper)
	mux.HandleFunc("POST /api/v1/games/{number}/goalkeepers/substitute", HandleGoalkeeperSubstitute)
	mux.HandleFunc("POST /api/v1/games/{number}/clock/{action}", HandleClock)
	mux.HandleFunc("POST /api/v1/games/{number}/timeouts", HandleTimeout)
	mux.HandleFunc("POST /api/v1/games/{number}/entry/{step}", HandleEntry)
	mux.HandleFunc("DELETE /api/v1/games/{number}/events/{index}", HandleEventDelete)
	mux.HandleFunc("GET /api/v1/games/{number}/boxscore", HandleBoxScore)
	return mux
}

type response struct {
	View       recorder.View     `json:"view"`
	Resolution *match.Resolution `json:"resolution"`
	Removed    *match.Event      `json:"removed"`
}

func send(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func sendOK(t *testing.T, mux *http.ServeMux, method, path, body string) response {
	t.Helper()
	rec := send(t, mux, method, path, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func gamePath(suffix string) string {
	return fmt.Sprintf("/api/v1/games/%d%s", gameNumber, suffix)
}

func TestRecordGoalOverJSON(t *testing.T) {
	mux := setupRecordTest(t)

	resp := sendOK(t, mux, http.MethodPost, gamePath("/clock/start?kind=regular"), "")
	assert.True(t, resp.View.Session.Clock.Running)
	assert.True(t, resp.View.Session.MatchStarted)

	sendOK(t, mux, http.MethodPost, gamePath("/entry/player"), `{"side":"A","player":"10"}`)
	sendOK(t, mux, http.MethodPost, gamePath("/entry/court"), `{"x":300,"y":300}`)
	resp = sendOK(t, mux, http.MethodPost, gamePath("/entry/zone"), `{"zone":"bl"}`)
	assert.Equal(t, match.StageZoneChosen, resp.View.Stage)

	resp = sendOK(t, mux, http.MethodPost, gamePath("/entry/resolve"), `{"outcome":"A"}`)
	require.NotNil(t, resp.Resolution)
	assert.True(t, resp.Resolution.Appended)
	assert.Equal(t, 1, resp.View.Session.ScoreA)
	assert.Equal(t, match.StageIdle, resp.View.Stage)

	rec := send(t, mux, http.MethodGet, gamePath("/boxscore"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var snap boxscore.Snapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	var goals int
	for _, line := range snap.Lines {
		if line.Side == match.SideA && line.Player == "10" {
			goals = line.Goals
		}
	}
	assert.Equal(t, 1, goals)
}

func TestCrossTeamOutcomeNeedsConfirmation(t *testing.T) {
	mux := setupRecordTest(t)
	sendOK(t, mux, http.MethodPost, gamePath("/clock/start"), "")

	sendOK(t, mux, http.MethodPost, gamePath("/entry/player"), `{"side":"A","player":"10"}`)
	resp := sendOK(t, mux, http.MethodPost, gamePath("/entry/resolve"), `{"outcome":"B"}`)
	require.NotNil(t, resp.Resolution)
	assert.True(t, resp.Resolution.NeedsConfirmation)
	assert.Equal(t, 0, resp.View.Session.ScoreB)

	resp = sendOK(t, mux, http.MethodPost, gamePath("/entry/confirm"), "")
	assert.True(t, resp.Resolution.Appended)
	assert.Equal(t, 1, resp.View.Session.ScoreB)

	rec := send(t, mux, http.MethodPost, gamePath("/entry/confirm"), "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCommandErrorsMapToStatus(t *testing.T) {
	mux := setupRecordTest(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"clock stopped", http.MethodPost, gamePath("/entry/player"), `{"side":"A","player":"10"}`, http.StatusConflict},
		{"unknown side", http.MethodPost, gamePath("/entry/player"), `{"side":"C","player":"10"}`, http.StatusBadRequest},
		{"unknown action", http.MethodPost, gamePath("/entry/action"), `{"action":"XX"}`, http.StatusBadRequest},
		{"missing court point", http.MethodPost, gamePath("/entry/court"), `{"x":10}`, http.StatusBadRequest},
		{"unknown step", http.MethodPost, gamePath("/entry/jump"), "", http.StatusNotFound},
		{"unknown clock action", http.MethodPost, gamePath("/clock/rewind"), "", http.StatusNotFound},
		{"unknown period kind", http.MethodPost, gamePath("/clock/start?kind=golden"), "", http.StatusBadRequest},
		{"bad event index", http.MethodDelete, gamePath("/events/x"), "", http.StatusBadRequest},
		{"event index out of range", http.MethodDelete, gamePath("/events/4"), "", http.StatusBadRequest},
		{"unknown game", http.MethodGet, "/api/v1/games/404/session", "", http.StatusNotFound},
		{"bad game number", http.MethodGet, "/api/v1/games/abc/session", "", http.StatusBadRequest},
		{"malformed body", http.MethodPost, gamePath("/timeouts"), `{"side":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := send(t, mux, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestGoalkeeperLockedAfterStart(t *testing.T) {
	mux := setupRecordTest(t)

	resp := sendOK(t, mux, http.MethodPost, gamePath("/goalkeepers"), `{"side":"B","player":"4"}`)
	assert.Equal(t, "4", resp.View.Session.Goalkeepers.B)

	sendOK(t, mux, http.MethodPost, gamePath("/clock/start"), "")
	rec := send(t, mux, http.MethodPost, gamePath("/goalkeepers"), `{"side":"B","player":"16"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	resp = sendOK(t, mux, http.MethodPost, gamePath("/goalkeepers/substitute"), `{"side":"B","player":"16"}`)
	assert.Equal(t, "16", resp.View.Session.Goalkeepers.B)
}

func TestTimeoutsExhausted(t *testing.T) {
	mux := setupRecordTest(t)
	sendOK(t, mux, http.MethodPost, gamePath("/clock/start"), "")

	for i := 1; i <= match.MaxTimeouts; i++ {
		if i > 1 {
			sendOK(t, mux, http.MethodPost, gamePath("/clock/resume"), "")
		}
		resp := sendOK(t, mux, http.MethodPost, gamePath("/timeouts"), `{"side":"B"}`)
		assert.Equal(t, i, resp.View.Timeouts.B)
		assert.False(t, resp.View.Session.Clock.Running)
	}

	sendOK(t, mux, http.MethodPost, gamePath("/clock/resume"), "")
	rec := send(t, mux, http.MethodPost, gamePath("/timeouts"), `{"side":"B"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteEventReturnsRemoved(t *testing.T) {
	mux := setupRecordTest(t)
	sendOK(t, mux, http.MethodPost, gamePath("/clock/start"), "")
	sendOK(t, mux, http.MethodPost, gamePath("/entry/player"), `{"side":"B","player":"4"}`)
	resp := sendOK(t, mux, http.MethodPost, gamePath("/entry/resolve"), `{"outcome":"B"}`)
	last := len(resp.View.Session.Events) - 1

	resp = sendOK(t, mux, http.MethodDelete, gamePath(fmt.Sprintf("/events/%d", last)), "")
	require.NotNil(t, resp.Removed)
	assert.Equal(t, "4", resp.Removed.Player)
	assert.Equal(t, 0, resp.View.Session.ScoreB)

	rec := send(t, mux, http.MethodDelete, gamePath("/events/0"), "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHTMXRejectionRendersPanelWithAlert(t *testing.T) {
	mux := setupRecordTest(t)

	form := url.Values{"side": {"A"}, "player": {"10"}}
	req := httptest.NewRequest(http.MethodPost, gamePath("/entry/player"), strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("HX-Trigger"), `"alert"`)
	assert.Contains(t, rec.Body.String(), `id="recorder"`)
}

func TestHTMXCourtFormParsesCoordinates(t *testing.T) {
	mux := setupRecordTest(t)
	sendOK(t, mux, http.MethodPost, gamePath("/clock/start"), "")
	sendOK(t, mux, http.MethodPost, gamePath("/entry/player"), `{"side":"A","player":"10"}`)

	form := url.Values{"x": {"120"}, "y": {"250"}}
	req := httptest.NewRequest(http.MethodPost, gamePath("/entry/court"), strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("HX-Trigger"))
	assert.Contains(t, rec.Body.String(), `data-stage="action_chosen"`)
	assert.Contains(t, rec.Body.String(), "(120, 250)")
}

func TestRecordPageListsJerseys(t *testing.T) {
	mux := setupRecordTest(t)

	rec := send(t, mux, http.MethodGet, fmt.Sprintf("/games/%d/record", gameNumber), "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, "Sharks")
	assert.Contains(t, body, `hx-vals="{&#34;player&#34;:&#34;10&#34;,&#34;side&#34;:&#34;A&#34;}"`)
	assert.Contains(t, body, fmt.Sprintf(`ws-connect="/ws/games/%d"`, gameNumber))
	assert.Contains(t, body, "Start regular")
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{recorder.ErrGameNotFound, http.StatusNotFound},
		{recorder.ErrClosed, http.StatusServiceUnavailable},
		{fmt.Errorf("wrap: %w", match.ErrTimeoutsExhausted), http.StatusConflict},
		{match.ErrPeriodInProgress, http.StatusConflict},
		{match.ErrStartingGoalkeeper, http.StatusConflict},
		{match.ErrEventIndex, http.StatusBadRequest},
		{apiutil.FieldError{Field: "x", Reason: "bad"}, http.StatusBadRequest},
		{apiutil.HandlerError{Status: http.StatusTeapot, Message: "tea"}, http.StatusTeapot},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
