package apiutil

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	gameNumberPathKey = "number"
	groupPathKey      = "group"
	teamPathKey       = "team"
)

func ParseNonNegativeInt64Field(raw string, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%s must be 0 or greater", field)
	}
	return value, nil
}

func ParsePositiveInt64Field(raw string, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", field)
	}
	return value, nil
}

// GameNumberFromPath reads the {number} path segment.
func GameNumberFromPath(r *http.Request) (int64, error) {
	return ParsePositiveInt64Field(r.PathValue(gameNumberPathKey), "game number")
}

// TeamFromPath reads the {group} and {team} path segments. team may be absent.
func TeamFromPath(r *http.Request) (group, team string, err error) {
	group = strings.TrimSpace(r.PathValue(groupPathKey))
	if group == "" {
		return "", "", fmt.Errorf("group is required")
	}
	return group, strings.TrimSpace(r.PathValue(teamPathKey)), nil
}

// IsJSONRequest reports whether the body is JSON rather than a form post.
func IsJSONRequest(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "application/json")
}

func FirstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
