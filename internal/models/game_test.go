package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	assert.Equal(t, StatusPlayable, ParseStatus("playable"))
	assert.Equal(t, StatusInDevelopment, ParseStatus("in-development"))
	assert.Equal(t, StatusUnavailable, ParseStatus("unavailable"))
	assert.Equal(t, StatusUnavailable, ParseStatus("retired"))
	assert.Equal(t, StatusUnavailable, ParseStatus(""))
}

func TestStatusStringPanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { _ = Status(42).String() })
}

func TestGameEntryDecode(t *testing.T) {
	var e GameEntry
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "x", "title": "X", "description": "d",
		"tags": ["a"], "status": "playable", "path": "/x",
		"iframe": "<iframe></iframe>"
	}`), &e))
	assert.Equal(t, StatusPlayable, e.Status)
	assert.Equal(t, "<iframe></iframe>", e.EmbedMarkup)
	assert.Equal(t, DefaultIcon, e.DisplayIcon())

	require.NoError(t, json.Unmarshal([]byte(`{"id":"y","status":"soon","embedMarkup":"a","iframe":"b"}`), &e))
	assert.Equal(t, StatusUnavailable, e.Status)
	assert.Equal(t, "a", e.EmbedMarkup)
}

func TestCatalogTagsAndLookup(t *testing.T) {
	c := &Catalog{Entries: []GameEntry{
		{ID: "a", Tags: []string{"action", "racing"}},
		{ID: "b", Tags: []string{"puzzle", "action"}},
	}}
	assert.Equal(t, []string{"action", "racing", "puzzle"}, c.Tags())

	e, ok := c.Lookup("b")
	assert.True(t, ok)
	assert.True(t, e.HasTag("puzzle"))
	assert.False(t, e.HasTag("racing"))

	_, ok = c.Lookup("zzz")
	assert.False(t, ok)

	var nilCatalog *Catalog
	_, ok = nilCatalog.Lookup("a")
	assert.False(t, ok)
	assert.Nil(t, nilCatalog.Tags())
}
