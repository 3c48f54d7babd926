package view

import "playground/internal/models"

// FilterAll selects every entry of the catalog.
const FilterAll = "all"

// Phase is the lifecycle of the catalog: it is loaded once and never
// goes back to loading.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseLoaded
)

// State is everything a render depends on.
type State struct {
	Phase        Phase
	Catalog      *models.Catalog
	ActiveFilter string
}

// Event is an input to Reduce.
type Event interface{ isEvent() }

// CatalogLoaded replaces the whole catalog.
type CatalogLoaded struct{ Catalog *models.Catalog }

// FilterSelected replaces the active filter.
type FilterSelected struct{ Tag string }

func (CatalogLoaded) isEvent()  {}
func (FilterSelected) isEvent() {}

// Initial is the state before the catalog arrives.
func Initial() State {
	return State{Phase: PhaseLoading, ActiveFilter: FilterAll}
}

// Reduce applies one event and returns the next state.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case CatalogLoaded:
		s.Catalog = ev.Catalog
		s.Phase = PhaseLoaded
	case FilterSelected:
		s.ActiveFilter = normalizeFilter(ev.Tag)
	}
	return s
}

func normalizeFilter(tag string) string {
	if tag == "" {
		return FilterAll
	}
	return tag
}
