package view

import "playground/internal/models"

// Bindings maps an action control ID to the launch it triggers. Each
// enabled control with something to launch has exactly one entry; a render
// always produces a complete new set rather than patching an old one.
type Bindings map[string]Launch

// Bind computes the bindings for a rendered page.
func Bind(c *models.Catalog, p Page, embedHost string) Bindings {
	b := make(Bindings, len(p.Tiles))
	for _, t := range p.Tiles {
		if !t.Action.Enabled {
			continue
		}
		e, ok := c.Lookup(t.ID)
		if !ok {
			continue
		}
		l := Dispatch(e, embedHost)
		if l.Kind == LaunchNone {
			continue
		}
		b[t.ControlID] = l
	}
	return b
}
