package layouts

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Theme colors the page chrome and the two sides of the recorder.
type Theme struct {
	PrimaryColor string
	TeamAColor   string
	TeamBColor   string
	AccentColor  string
}

func DefaultTheme() Theme {
	return Theme{
		PrimaryColor: "#1f2937",
		TeamAColor:   "#2563eb",
		TeamBColor:   "#dc2626",
		AccentColor:  "#f59e0b",
	}
}

func IsHexColor(value string) bool {
	return hexColorPattern.MatchString(value)
}

func themeCSSVars(theme *Theme) string {
	defaults := DefaultTheme()
	primary := defaults.PrimaryColor
	teamA := defaults.TeamAColor
	teamB := defaults.TeamBColor
	accent := defaults.AccentColor

	if theme != nil {
		primary = colorOrDefault(theme.PrimaryColor, primary)
		teamA = colorOrDefault(theme.TeamAColor, teamA)
		teamB = colorOrDefault(theme.TeamBColor, teamB)
		accent = colorOrDefault(theme.AccentColor, accent)
	}

	return fmt.Sprintf(
		":root{--theme-primary:%s;--theme-team-a:%s;--theme-team-b:%s;--theme-accent:%s;"+
			"--theme-on-primary:%s;--theme-on-team-a:%s;--theme-on-team-b:%s;}",
		primary,
		teamA,
		teamB,
		accent,
		TextColorFor(primary),
		TextColorFor(teamA),
		TextColorFor(teamB),
	)
}

// TextColorFor picks black or white text for a background, whichever reads better.
func TextColorFor(background string) string {
	c, err := colorful.Hex(expandHex(background))
	if err != nil {
		return "#ffffff"
	}
	if l, _, _ := c.Lab(); l > 0.6 {
		return "#111827"
	}
	return "#ffffff"
}

// expandHex turns #abc into #aabbcc.
func expandHex(value string) string {
	if len(value) != 4 {
		return value
	}
	return "#" + strings.Repeat(value[1:2], 2) + strings.Repeat(value[2:3], 2) + strings.Repeat(value[3:4], 2)
}

func colorOrDefault(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || !IsHexColor(trimmed) {
		return fallback
	}
	return trimmed
}
