package record

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/handball-record/internal/api/apiutil"
	"github.com/codr1/handball-record/internal/api/htmx"
	"github.com/codr1/handball-record/internal/match"
	"github.com/codr1/handball-record/internal/recorder"
)

var badRequestErrors = []error{
	match.ErrUnknownSide,
	match.ErrUnknownOutcome,
	match.ErrUnknownActionCode,
	match.ErrUnknownZone,
	match.ErrUnknownPeriodKind,
	match.ErrEmptyPlayer,
	match.ErrInvalidCourtPoint,
	match.ErrEventIndex,
}

var conflictErrors = []error{
	match.ErrClockStopped,
	match.ErrMatchNotStarted,
	match.ErrEntryOutOfOrder,
	match.ErrEntryConflict,
	match.ErrZoneWithoutShot,
	match.ErrNoPendingConfirmation,
	match.ErrTimeoutsExhausted,
	match.ErrPeriodNotOver,
	match.ErrPeriodInProgress,
	match.ErrGoalkeeperLocked,
	match.ErrGoalkeepersMissing,
	match.ErrStartingGoalkeeper,
}

func statusFor(err error) int {
	var herr apiutil.HandlerError
	if errors.As(err, &herr) {
		return herr.Status
	}
	var ferr apiutil.FieldError
	if errors.As(err, &ferr) {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, recorder.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, recorder.ErrClosed):
		return http.StatusServiceUnavailable
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}

// writeCommandError answers a rejected command. HTMX callers get the current panel back
// with an alert trigger so the page stays in step with the session.
func writeCommandError(w http.ResponseWriter, r *http.Request, number int64, resp commandResponse, err error) {
	logger := log.Ctx(r.Context())
	status := statusFor(err)

	if status >= http.StatusInternalServerError {
		if errors.Is(err, recorder.ErrClosed) {
			http.Error(w, "Recorder is shutting down", status)
			return
		}
		logger.Error().Err(err).Int64("game_number", number).Msg("Recorder command failed")
		http.Error(w, "Failed to record command", status)
		return
	}

	logger.Debug().Err(err).Int64("game_number", number).Int("status", status).Msg("Recorder command rejected")

	if htmx.IsRequest(r) && status != http.StatusNotFound {
		view := resp.View
		if view.GameNumber == 0 {
			ctx, cancel := context.WithTimeout(r.Context(), recordTimeout)
			current, verr := loadService().View(ctx, number)
			cancel()
			if verr != nil {
				http.Error(w, err.Error(), status)
				return
			}
			view = current
		}
		if terr := htmx.Trigger(w, "alert", map[string]any{"message": err.Error(), "status": status}); terr != nil {
			logger.Error().Err(terr).Msg("Failed to set alert trigger")
		}
		renderPanel(w, r, number, view)
		return
	}

	http.Error(w, err.Error(), status)
}
