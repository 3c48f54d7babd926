package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"playground/internal/models"
)

// DefaultManifest is the well-known manifest location relative to the root.
const DefaultManifest = "./games/manifest.json"

// Loader fetches the manifest once and substitutes the built-in catalog on
// any failure.
type Loader struct {
	Location string
	Root     string
	Client   *http.Client
	Logger   *slog.Logger
}

// NewLoader builds a loader for location. A nil client uses
// http.DefaultClient and a nil logger uses slog.Default().
func NewLoader(location, root string, client *http.Client, logger *slog.Logger) *Loader {
	if location == "" {
		location = DefaultManifest
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{Location: location, Root: root, Client: client, Logger: logger}
}

// Load returns the manifest catalog, or the fallback catalog if the
// manifest cannot be fetched, decoded or validated. It never fails.
func (l *Loader) Load(ctx context.Context) *models.Catalog {
	c, err := l.Fetch(ctx)
	if err != nil {
		l.Logger.Warn("using fallback catalog", "manifest", l.Location, "error", err)
		return Fallback()
	}
	l.Logger.Info("catalog loaded", "manifest", l.Location, "entries", len(c.Entries), "version", c.Version)
	return c
}

// Fetch performs a single all-or-nothing manifest load.
func (l *Loader) Fetch(ctx context.Context) (*models.Catalog, error) {
	data, err := l.read(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := Validate(data)
	if err != nil {
		return nil, err
	}
	return &models.Catalog{
		Entries: entries,
		Source:  models.SourceManifest,
		Version: Fingerprint(data),
	}, nil
}

// IsRemote reports whether the location is fetched over HTTP.
func (l *Loader) IsRemote() bool {
	return strings.HasPrefix(l.Location, "http://") || strings.HasPrefix(l.Location, "https://")
}

// Path resolves a filesystem location against the root directory.
func (l *Loader) Path() string {
	if filepath.IsAbs(l.Location) || l.Root == "" {
		return l.Location
	}
	return filepath.Join(l.Root, l.Location)
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	if !l.IsRemote() {
		data, err := os.ReadFile(l.Path())
		if err != nil {
			return nil, fmt.Errorf("read manifest: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.Location, nil)
	if err != nil {
		return nil, fmt.Errorf("build manifest request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch manifest: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read manifest body: %w", err)
	}
	return data, nil
}
