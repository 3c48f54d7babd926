package models

import (
	"encoding/json"
	"fmt"
)

// DefaultIcon is shown for entries whose manifest record has no icon.
const DefaultIcon = "🎮"

// Status governs how an entry is presented and whether it can be launched.
type Status int

const (
	StatusUnavailable Status = iota
	StatusPlayable
	StatusInDevelopment
)

// ParseStatus maps a manifest status string onto the closed enumeration.
// Anything that is not playable or in-development is unavailable.
func ParseStatus(s string) Status {
	switch s {
	case "playable":
		return StatusPlayable
	case "in-development":
		return StatusInDevelopment
	default:
		return StatusUnavailable
	}
}

func (s Status) String() string {
	switch s {
	case StatusPlayable:
		return "playable"
	case StatusInDevelopment:
		return "in-development"
	case StatusUnavailable:
		return "unavailable"
	}
	panic(fmt.Sprintf("models: unknown status %d", int(s)))
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("status: %w", err)
	}
	*s = ParseStatus(raw)
	return nil
}

// GameEntry is one manifest record. Entries are never modified after load.
type GameEntry struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Status      Status   `json:"status"`
	Path        string   `json:"path"`
	Icon        string   `json:"icon,omitempty"`
	EmbedMarkup string   `json:"embedMarkup,omitempty"`
}

// UnmarshalJSON accepts the older "iframe" field as an alias of embedMarkup.
func (g *GameEntry) UnmarshalJSON(b []byte) error {
	type plain GameEntry
	var aux struct {
		plain
		Iframe string `json:"iframe"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*g = GameEntry(aux.plain)
	if g.EmbedMarkup == "" {
		g.EmbedMarkup = aux.Iframe
	}
	return nil
}

// DisplayIcon returns the entry icon or DefaultIcon.
func (g GameEntry) DisplayIcon() string {
	if g.Icon == "" {
		return DefaultIcon
	}
	return g.Icon
}

// HasTag reports whether tag is one of the entry's tags.
func (g GameEntry) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Source records where a catalog came from.
type Source string

const (
	SourceManifest Source = "manifest"
	SourceFallback Source = "fallback"
)

// Catalog is the ordered list of entries loaded at startup.
type Catalog struct {
	Entries []GameEntry `json:"entries"`
	Source  Source      `json:"source"`
	Version string      `json:"version"`
}

// Lookup finds an entry by id.
func (c *Catalog) Lookup(id string) (GameEntry, bool) {
	if c == nil {
		return GameEntry{}, false
	}
	for _, e := range c.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return GameEntry{}, false
}

// Tags returns the distinct tags of the catalog in first-seen order.
func (c *Catalog) Tags() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var tags []string
	for _, e := range c.Entries {
		for _, t := range e.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}
