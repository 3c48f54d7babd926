package view

import (
	"strings"

	"playground/internal/models"
)

// DefaultEmbedHost is the origin whose games are wrapped rather than
// navigated to.
const DefaultEmbedHost = "https://playground.kaballah.site/"

// LaunchKind says what activating an action control does.
type LaunchKind int

const (
	LaunchNone LaunchKind = iota
	LaunchEmbed
	LaunchNavigate
)

func (k LaunchKind) String() string {
	switch k {
	case LaunchNone:
		return "none"
	case LaunchEmbed:
		return "embed"
	case LaunchNavigate:
		return "navigate"
	}
	return "unknown"
}

// Launch is the outcome of dispatching an entry.
type Launch struct {
	Kind   LaunchKind
	Target string // navigate target
	Markup string // embed markup, verbatim
	Title  string
}

// Dispatch decides how a launch of e is carried out. Only playable entries
// ever produce something other than LaunchNone.
func Dispatch(e models.GameEntry, embedHost string) Launch {
	if e.Status != models.StatusPlayable {
		return Launch{Kind: LaunchNone}
	}
	switch {
	case embedHost != "" && strings.HasPrefix(e.Path, embedHost):
		return Launch{Kind: LaunchEmbed, Markup: e.EmbedMarkup, Title: e.Title}
	case e.Path != "":
		return Launch{Kind: LaunchNavigate, Target: e.Path, Title: e.Title}
	default:
		return Launch{Kind: LaunchNone}
	}
}
