package live

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codr1/handball-record/internal/hub"
)

func setupLiveTest(t *testing.T) (*hub.Hub, *httptest.Server) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	h := hub.New()
	go h.Run(ctx)
	liveHub = h
	liveCtx = ctx

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws/games/{number}", HandleGameStream)
	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		srv.Close()
		cancel()
		liveHub = nil
		liveCtx = nil
	})
	return h, srv
}

func TestStreamDeliversGameUpdates(t *testing.T) {
	h, srv := setupLiveTest(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/games/8"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	h.Publish(8, hub.TypeSession, map[string]int{"scoreA": 2})

	var msg hub.Message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, hub.TypeSession, msg.Type)
	assert.Equal(t, int64(8), msg.Game)
}

func TestStreamRejectsBadGameNumber(t *testing.T) {
	_, srv := setupLiveTest(t)

	resp, err := http.Get(srv.URL + "/ws/games/zero")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStreamWithoutHub(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ws/games/1", nil)
	req.SetPathValue("number", "1")
	rec := httptest.NewRecorder()
	HandleGameStream(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
