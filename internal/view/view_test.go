package view

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playground/internal/models"
)

func testCatalog() *models.Catalog {
	return &models.Catalog{
		Source: models.SourceManifest,
		Entries: []models.GameEntry{
			{ID: "moto", Title: "Moto", Tags: []string{"single-player", "racing"}, Status: models.StatusPlayable,
				Path: DefaultEmbedHost + "game/moto", EmbedMarkup: `<iframe src="http://games.example/embed/1"></iframe>`},
			{ID: "chess", Title: "Chess", Tags: []string{"multiplayer", "turn-based"}, Status: models.StatusInDevelopment, Path: "/games/chess/", Icon: "♔"},
			{ID: "snake", Title: "Snake", Tags: []string{"single-player", "arcade"}, Status: models.StatusPlayable, Path: "/games/snake/"},
			{ID: "blank", Title: "Blank", Tags: []string{"arcade"}, Status: models.StatusPlayable},
			{ID: "pong", Title: "Pong", Tags: []string{"arcade", "real-time"}, Status: models.StatusUnavailable, Path: "https://elsewhere.example/pong"},
		},
	}
}

func ids(entries []models.GameEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func loaded(c *models.Catalog) State {
	return Reduce(Initial(), CatalogLoaded{Catalog: c})
}

func TestFilter(t *testing.T) {
	c := testCatalog()

	t.Run("all keeps catalog order", func(t *testing.T) {
		assert.Equal(t, []string{"moto", "chess", "snake", "blank", "pong"}, ids(Filter(c, FilterAll)))
	})

	t.Run("every tag selects exactly its entries in order", func(t *testing.T) {
		for _, tag := range c.Tags() {
			var want []string
			for _, e := range c.Entries {
				for _, et := range e.Tags {
					if et == tag {
						want = append(want, e.ID)
						break
					}
				}
			}
			assert.Equal(t, want, ids(Filter(c, tag)), tag)
		}
	})

	t.Run("arcade", func(t *testing.T) {
		assert.Equal(t, []string{"snake", "blank", "pong"}, ids(Filter(c, "arcade")))
	})

	t.Run("unknown tag is empty", func(t *testing.T) {
		assert.Empty(t, Filter(c, "puzzle"))
	})
}

func TestReduce(t *testing.T) {
	s := Initial()
	assert.Equal(t, PhaseLoading, s.Phase)
	assert.Equal(t, FilterAll, s.ActiveFilter)

	c := testCatalog()
	s = Reduce(s, CatalogLoaded{Catalog: c})
	assert.Equal(t, PhaseLoaded, s.Phase)
	assert.Same(t, c, s.Catalog)

	s = Reduce(s, FilterSelected{Tag: "arcade"})
	assert.Equal(t, "arcade", s.ActiveFilter)
	assert.Equal(t, PhaseLoaded, s.Phase)

	s = Reduce(s, FilterSelected{Tag: ""})
	assert.Equal(t, FilterAll, s.ActiveFilter)
}

func TestStatusPresentation(t *testing.T) {
	cases := []struct {
		status models.Status
		color  string
		label  string
		action Action
	}{
		{models.StatusPlayable, "ok", "Ready to Play", Action{Label: "Play", Enabled: true}},
		{models.StatusInDevelopment, "pending", "In Development", Action{Label: "Coming Soon"}},
		{models.StatusUnavailable, "unavailable", "Unavailable", Action{Label: "Unavailable"}},
	}
	for _, tc := range cases {
		t.Run(tc.status.String(), func(t *testing.T) {
			assert.Equal(t, tc.color, IndicatorColor(tc.status))
			assert.Equal(t, tc.label, StatusLabel(tc.status))
			assert.Equal(t, tc.action, ActionFor(tc.status))
		})
	}
	assert.Equal(t, models.StatusUnavailable, models.ParseStatus("retired"))
}

func TestFormatTag(t *testing.T) {
	assert.Equal(t, "Real Time", FormatTag("real-time"))
	assert.Equal(t, "Single Player", FormatTag("single-player"))
	assert.Equal(t, "Turn Based", FormatTag("turn-based"))
	assert.Equal(t, "Cards", FormatTag("cards"))
	assert.Equal(t, "Éclair", FormatTag("éclair"))
	assert.Equal(t, "", FormatTag(""))
}

func TestRender(t *testing.T) {
	c := testCatalog()

	t.Run("loading", func(t *testing.T) {
		p := Render(Initial())
		assert.True(t, p.Loading)
		assert.Empty(t, p.Tiles)
	})

	t.Run("tiles", func(t *testing.T) {
		p := Render(loaded(c))
		require.Len(t, p.Tiles, 5)
		assert.False(t, p.EmptyState)

		chess := p.Tiles[1]
		assert.Equal(t, Tile{
			ID:          "chess",
			ControlID:   "play-chess",
			Title:       "Chess",
			Icon:        "♔",
			Tags:        []Tag{{"multiplayer", "Multiplayer"}, {"turn-based", "Turn Based"}},
			Status:      "in-development",
			Color:       "pending",
			StatusLabel: "In Development",
			Action:      Action{Label: "Coming Soon"},
		}, chess)
		assert.Equal(t, models.DefaultIcon, p.Tiles[0].Icon)
	})

	t.Run("filters", func(t *testing.T) {
		p := Render(Reduce(loaded(c), FilterSelected{Tag: "arcade"}))
		require.NotEmpty(t, p.Filters)
		assert.Equal(t, FilterControl{Tag: FilterAll, Label: "All"}, p.Filters[0])
		var active []string
		for _, f := range p.Filters {
			if f.Active {
				active = append(active, f.Tag)
			}
		}
		assert.Equal(t, []string{"arcade"}, active)
	})

	t.Run("empty state toggles", func(t *testing.T) {
		s := Reduce(loaded(c), FilterSelected{Tag: "puzzle"})
		p := Render(s)
		assert.True(t, p.EmptyState)
		assert.Empty(t, p.Tiles)

		p = Render(Reduce(s, FilterSelected{Tag: FilterAll}))
		assert.False(t, p.EmptyState)
		assert.Len(t, p.Tiles, 5)
	})

	t.Run("idempotent", func(t *testing.T) {
		s := Reduce(loaded(c), FilterSelected{Tag: "single-player"})
		first, second := Render(s), Render(s)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("render not idempotent (-first +second):\n%s", diff)
		}
		if diff := cmp.Diff(Bind(c, first, DefaultEmbedHost), Bind(c, second, DefaultEmbedHost)); diff != "" {
			t.Fatalf("bindings differ (-first +second):\n%s", diff)
		}
	})
}

func TestDispatch(t *testing.T) {
	c := testCatalog()
	get := func(id string) models.GameEntry {
		e, ok := c.Lookup(id)
		require.True(t, ok)
		return e
	}

	l := Dispatch(get("moto"), DefaultEmbedHost)
	assert.Equal(t, LaunchEmbed, l.Kind)
	assert.Equal(t, `<iframe src="http://games.example/embed/1"></iframe>`, l.Markup)

	l = Dispatch(get("snake"), DefaultEmbedHost)
	assert.Equal(t, LaunchNavigate, l.Kind)
	assert.Equal(t, "/games/snake/", l.Target)

	assert.Equal(t, LaunchNone, Dispatch(get("blank"), DefaultEmbedHost).Kind)
	assert.Equal(t, LaunchNone, Dispatch(get("chess"), DefaultEmbedHost).Kind)
	assert.Equal(t, LaunchNone, Dispatch(get("pong"), DefaultEmbedHost).Kind)

	// with no embed host every non-empty path navigates
	assert.Equal(t, LaunchNavigate, Dispatch(get("moto"), "").Kind)
}

func TestBind(t *testing.T) {
	c := testCatalog()
	b := Bind(c, Render(loaded(c)), DefaultEmbedHost)

	assert.Len(t, b, 2)
	assert.Equal(t, LaunchEmbed, b["play-moto"].Kind)
	assert.Equal(t, LaunchNavigate, b["play-snake"].Kind)
	assert.NotContains(t, b, "play-blank")
	assert.NotContains(t, b, "play-chess")
	assert.NotContains(t, b, "play-pong")

	filtered := Bind(c, Render(Reduce(loaded(c), FilterSelected{Tag: "racing"})), DefaultEmbedHost)
	assert.Equal(t, Bindings{"play-moto": b["play-moto"]}, filtered)
}
