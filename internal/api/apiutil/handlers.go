package apiutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"
)

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// RenderHTMLComponent renders component into a buffer first so a failed render can
// still answer with a clean 500. It reports whether the response was written.
func RenderHTMLComponent(ctx context.Context, w http.ResponseWriter, component templ.Component, headers map[string]string, logMessage, errorMessage string) bool {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg(logMessage)
		http.Error(w, errorMessage, http.StatusInternalServerError)
		return false
	}

	for key, value := range headers {
		w.Header().Set(key, value)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to write HTML response")
		return false
	}
	return true
}

// WriteError answers with err's status when it is a HandlerError and 500 otherwise.
// Server-side failures are logged with their cause.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	logger := log.Ctx(r.Context())

	var herr HandlerError
	if errors.As(err, &herr) {
		if herr.Status >= http.StatusInternalServerError {
			logger.Error().Err(herr.Err).Msg(herr.Message)
		}
		http.Error(w, herr.Message, herr.Status)
		return
	}
	logger.Error().Err(err).Msg(fallback)
	http.Error(w, fallback, http.StatusInternalServerError)
}
