package view

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"playground/internal/models"
)

// Action describes the control shown on a tile.
type Action struct {
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

// IndicatorColor maps a status to its indicator class.
func IndicatorColor(s models.Status) string {
	switch s {
	case models.StatusPlayable:
		return "ok"
	case models.StatusInDevelopment:
		return "pending"
	case models.StatusUnavailable:
		return "unavailable"
	}
	panic(fmt.Sprintf("view: unhandled status %d", int(s)))
}

// StatusLabel maps a status to its human readable label.
func StatusLabel(s models.Status) string {
	switch s {
	case models.StatusPlayable:
		return "Ready to Play"
	case models.StatusInDevelopment:
		return "In Development"
	case models.StatusUnavailable:
		return "Unavailable"
	}
	panic(fmt.Sprintf("view: unhandled status %d", int(s)))
}

// ActionFor maps a status to the tile's action control.
func ActionFor(s models.Status) Action {
	switch s {
	case models.StatusPlayable:
		return Action{Label: "Play", Enabled: true}
	case models.StatusInDevelopment:
		return Action{Label: "Coming Soon"}
	case models.StatusUnavailable:
		return Action{Label: "Unavailable"}
	}
	panic(fmt.Sprintf("view: unhandled status %d", int(s)))
}

// FormatTag turns "turn-based" into "Turn Based".
func FormatTag(tag string) string {
	words := strings.Split(tag, "-")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
