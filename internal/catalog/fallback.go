package catalog

import (
	"encoding/json"

	"playground/internal/models"
)

// fallbackEntries is served whenever the manifest cannot be loaded.
var fallbackEntries = []models.GameEntry{
	{
		ID:          "moto-x3m",
		Title:       "Moto X3M Pool Party",
		Description: "Extreme motorcycle racing with pool party theme",
		Tags:        []string{"single-player", "action", "racing"},
		Status:      models.StatusPlayable,
		Path:        "#",
		Icon:        "🏍️",
		EmbedMarkup: `<iframe src="http://www.freeonlinegames.com/embed/145570" width="640" height="427" frameborder="no" scrolling="no"></iframe>`,
	},
	{
		ID:          "bubble-shooter",
		Title:       "Bubble Shooter Extreme",
		Description: "Classic bubble shooting game with extreme challenges",
		Tags:        []string{"single-player", "puzzle", "casual"},
		Status:      models.StatusPlayable,
		Path:        "https://playground.kaballah.site/game/bubble-shooter",
		Icon:        "🫧",
		EmbedMarkup: `<iframe src="http://www.freeonlinegames.com/embed/144939" width="900" height="675" frameborder="no" scrolling="no"></iframe>`,
	},
	{
		ID:          "battle-area",
		Title:       "Battle Area HTML5",
		Description: "Intense multiplayer battle arena game",
		Tags:        []string{"multiplayer", "action", "strategy"},
		Status:      models.StatusPlayable,
		Path:        "https://playground.kaballah.site/game/battle-area",
		Icon:        "⚔️",
		EmbedMarkup: `<iframe src="http://www.freeonlinegames.com/embed/160243" width="800" height="450" frameborder="no" scrolling="no"></iframe>`,
	},
	{
		ID:          "chess",
		Title:       "Chess",
		Description: "Classic two-player strategy game",
		Tags:        []string{"multiplayer", "turn-based", "strategy"},
		Status:      models.StatusInDevelopment,
		Icon:        "♔",
	},
	{
		ID:          "solitaire",
		Title:       "Klondike Solitaire",
		Description: "The classic single-player card game",
		Tags:        []string{"single-player", "cards"},
		Status:      models.StatusInDevelopment,
		Path:        "/games/solitaire/",
		Icon:        "🃏",
	},
	{
		ID:          "poker",
		Title:       "Texas Hold'em",
		Description: "Multiplayer poker with real-time gameplay",
		Tags:        []string{"multiplayer", "cards", "real-time"},
		Status:      models.StatusInDevelopment,
		Path:        "/games/poker/",
		Icon:        "🂡",
	},
	{
		ID:          "checkers",
		Title:       "Checkers",
		Description: "Classic board game for two players",
		Tags:        []string{"multiplayer", "turn-based", "strategy"},
		Status:      models.StatusInDevelopment,
		Path:        "/games/checkers/",
		Icon:        "⚫",
	},
	{
		ID:          "blackjack",
		Title:       "Blackjack",
		Description: "Beat the dealer to 21",
		Tags:        []string{"single-player", "cards"},
		Status:      models.StatusInDevelopment,
		Path:        "/games/blackjack/",
		Icon:        "🂫",
	},
}

// Fallback returns a fresh copy of the built-in catalog.
func Fallback() *models.Catalog {
	entries := make([]models.GameEntry, len(fallbackEntries))
	for i, e := range fallbackEntries {
		e.Tags = append([]string(nil), e.Tags...)
		entries[i] = e
	}
	return &models.Catalog{
		Entries: entries,
		Source:  models.SourceFallback,
		Version: Fingerprint(FallbackManifest()),
	}
}

// FallbackManifest renders the built-in catalog in manifest form.
func FallbackManifest() []byte {
	b, err := json.MarshalIndent(fallbackEntries, "", "  ")
	if err != nil {
		// the table is static; marshalling it cannot fail
		panic(err)
	}
	return b
}
