// internal/api/live/handlers.go
package live

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/codr1/handball-record/internal/api/apiutil"
	"github.com/codr1/handball-record/internal/hub"
)

var (
	liveHub *hub.Hub
	liveCtx context.Context
	hubOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests. ctx bounds
// the lifetime of every subscriber connection.
func InitHandlers(ctx context.Context, h *hub.Hub) {
	if h == nil {
		return
	}
	hubOnce.Do(func() {
		liveHub = h
		liveCtx = ctx
	})
}

// GET /ws/games/{number}
func HandleGameStream(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if liveHub == nil || liveCtx == nil {
		logger.Error().Msg("Live hub not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	number, err := apiutil.GameNumberFromPath(r)
	if err != nil {
		http.Error(w, "Invalid game number", http.StatusBadRequest)
		return
	}

	logger.Debug().Int64("game_number", number).Msg("Live subscriber connecting")
	liveHub.Serve(liveCtx, w, r, number)
}
