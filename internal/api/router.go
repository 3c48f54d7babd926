package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/mux"
	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus"

	"playground/internal/models"
	"playground/internal/prefs"
	"playground/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

// FailureMessage is the only text shown when the page cannot start.
const FailureMessage = "Failed to load games. Please try again."

// Options configures a Server. Zero values fall back to sensible defaults.
type Options struct {
	EmbedHost     string
	SanitizeEmbed bool
	StaticDir     string
	Prefs         prefs.Backend
	Logger        *slog.Logger
	Registry      *prometheus.Registry
	// Templates overrides the embedded templates; it must hold
	// templates/index.html and templates/play.html.
	Templates fs.FS
}

type Server struct {
	catalog   atomic.Pointer[models.Catalog]
	embedHost string
	staticDir string
	prefs     prefs.Backend
	logger    *slog.Logger
	index     *template.Template
	play      *template.Template
	sanitizer *bluemonday.Policy
	metrics   *metrics
}

// NewServer builds the HTTP surface over c. An error means the page cannot
// be served at all; callers answer with FailureHandler instead.
func NewServer(c *models.Catalog, opts Options) (*Server, error) {
	tfs := opts.Templates
	if tfs == nil {
		tfs = templateFS
	}
	index, err := template.ParseFS(tfs, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}
	if err := checkMountPoints(tfs); err != nil {
		return nil, err
	}
	play, err := template.ParseFS(tfs, "templates/play.html")
	if err != nil {
		return nil, fmt.Errorf("parse play template: %w", err)
	}
	m, err := newMetrics(opts.Registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	s := &Server{
		embedHost: opts.EmbedHost,
		staticDir: opts.StaticDir,
		prefs:     opts.Prefs,
		logger:    opts.Logger,
		index:     index,
		play:      play,
		metrics:   m,
	}
	if s.prefs == nil {
		s.prefs = prefs.NewMemory()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if opts.SanitizeEmbed {
		s.sanitizer = embedPolicy()
	}
	s.SetCatalog(c)
	return s, nil
}

// SetCatalog replaces the whole catalog served from now on.
func (s *Server) SetCatalog(c *models.Catalog) {
	s.catalog.Store(c)
	s.metrics.observeCatalog(c)
}

// Catalog returns the catalog currently served.
func (s *Server) Catalog() *models.Catalog {
	return s.catalog.Load()
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(withVisitor)

	r.HandleFunc("/health", s.HealthHandler).Methods("GET")
	r.Handle("/metrics", s.metrics.handler()).Methods("GET")

	r.HandleFunc("/", s.IndexHandler).Methods("GET")
	r.HandleFunc("/index.html", s.IndexHandler).Methods("GET")
	r.HandleFunc("/api/games", s.GamesHandler).Methods("GET")
	r.HandleFunc("/play/{id}", s.PlayHandler).Methods("GET")
	r.HandleFunc("/api/prefs/{key}", s.GetPrefHandler).Methods("GET")
	r.HandleFunc("/api/prefs/{key}", s.PutPrefHandler).Methods("PUT")

	if s.staticDir != "" {
		r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir))))
	}
	return r
}

// FailureHandler answers every request with the failure page. It is
// served when NewServer fails.
func FailureHandler(logger *slog.Logger, cause error) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	page, err := templateFS.ReadFile("templates/failure.html")
	if err != nil {
		page = []byte(FailureMessage)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Error("serving failure page", "path", r.URL.Path, "error", cause)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write(page)
	})
}

// mountPoints are the elements the catalog page cannot render without.
var mountPoints = []string{"game-grid", "empty-state"}

func checkMountPoints(tfs fs.FS) error {
	src, err := fs.ReadFile(tfs, "templates/index.html")
	if err != nil {
		return fmt.Errorf("read index template: %w", err)
	}
	for _, id := range mountPoints {
		if !bytes.Contains(src, []byte(`id="`+id+`"`)) {
			return fmt.Errorf("index template has no #%s element", id)
		}
	}
	return nil
}

func embedPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("iframe")
	p.AllowAttrs("src").OnElements("iframe")
	p.AllowAttrs("width", "height", "frameborder", "scrolling", "allowfullscreen").OnElements("iframe")
	p.AllowURLSchemes("http", "https")
	p.RequireParseableURLs(true)
	return p
}

func (s *Server) launchTarget(e models.GameEntry) view.Launch {
	return view.Dispatch(e, s.embedHost)
}
