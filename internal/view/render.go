package view

import "playground/internal/models"

// Tag is a tag as shown on a tile.
type Tag struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Tile is the declarative description of one visible entry.
type Tile struct {
	ID          string `json:"id"`
	ControlID   string `json:"controlId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Tags        []Tag  `json:"tags"`
	Status      string `json:"status"`
	Color       string `json:"color"`
	StatusLabel string `json:"statusLabel"`
	Action      Action `json:"action"`
}

// FilterControl is one filter selector; "all" comes first.
type FilterControl struct {
	Tag    string `json:"tag"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Page is the full description of what a render shows.
type Page struct {
	Loading    bool            `json:"loading"`
	Filter     string          `json:"filter"`
	Filters    []FilterControl `json:"filters"`
	Tiles      []Tile          `json:"tiles"`
	EmptyState bool            `json:"emptyState"`
}

// Filter returns the visible subset of the catalog for tag, in catalog
// order.
func Filter(c *models.Catalog, tag string) []models.GameEntry {
	if c == nil {
		return nil
	}
	if tag == FilterAll {
		return c.Entries
	}
	var out []models.GameEntry
	for _, e := range c.Entries {
		if e.HasTag(tag) {
			out = append(out, e)
		}
	}
	return out
}

// ControlID is the identifier of an entry's action control.
func ControlID(id string) string { return "play-" + id }

// NewTile derives the presentation of a single entry.
func NewTile(e models.GameEntry) Tile {
	tags := make([]Tag, 0, len(e.Tags))
	for _, t := range e.Tags {
		tags = append(tags, Tag{Value: t, Label: FormatTag(t)})
	}
	return Tile{
		ID:          e.ID,
		ControlID:   ControlID(e.ID),
		Title:       e.Title,
		Description: e.Description,
		Icon:        e.DisplayIcon(),
		Tags:        tags,
		Status:      e.Status.String(),
		Color:       IndicatorColor(e.Status),
		StatusLabel: StatusLabel(e.Status),
		Action:      ActionFor(e.Status),
	}
}

// Render derives the page for a state. It is a pure function of s.
func Render(s State) Page {
	p := Page{Filter: s.ActiveFilter}
	if s.Phase == PhaseLoading {
		p.Loading = true
		return p
	}

	p.Filters = append(p.Filters, FilterControl{Tag: FilterAll, Label: "All", Active: s.ActiveFilter == FilterAll})
	for _, t := range s.Catalog.Tags() {
		p.Filters = append(p.Filters, FilterControl{Tag: t, Label: FormatTag(t), Active: s.ActiveFilter == t})
	}

	visible := Filter(s.Catalog, s.ActiveFilter)
	p.Tiles = make([]Tile, 0, len(visible))
	for _, e := range visible {
		p.Tiles = append(p.Tiles, NewTile(e))
	}
	p.EmptyState = len(p.Tiles) == 0
	return p
}
