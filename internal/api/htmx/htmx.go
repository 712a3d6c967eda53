package htmx

import (
	"encoding/json"
	"net/http"
	"strings"
)

func IsRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

// Trigger sets an HX-Trigger header carrying one event with a JSON payload.
func Trigger(w http.ResponseWriter, event string, payload any) error {
	body, err := json.Marshal(map[string]any{event: payload})
	if err != nil {
		return err
	}
	w.Header().Set("HX-Trigger", string(body))
	return nil
}
