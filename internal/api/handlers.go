package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"playground/internal/catalog"
	"playground/internal/models"
	"playground/internal/prefs"
	"playground/internal/utils"
	"playground/internal/view"
)

var catalogPage = &url.URL{Path: "/"}

type tileView struct {
	view.Tile
	Href    string
	TagList string
}

type indexData struct {
	Theme    string
	Username string
	Page     view.Page
	Tiles    []tileView
}

type playData struct {
	Title  string
	Markup template.HTML
}

type gamesResponse struct {
	Source  models.Source `json:"source"`
	Version string        `json:"version"`
	Page    view.Page     `json:"page"`
}

type prefRequest struct {
	Value string `json:"value"`
}

type prefResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "OK")
}

func (s *Server) state(r *http.Request) view.State {
	st := view.Initial()
	if c := s.Catalog(); c != nil {
		st = view.Reduce(st, view.CatalogLoaded{Catalog: c})
	}
	return view.Reduce(st, view.FilterSelected{Tag: r.URL.Query().Get("filter")})
}

// IndexHandler renders the catalog page for the requested filter.
func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	st := s.state(r)
	page := view.Render(st)
	bindings := view.Bind(st.Catalog, page, s.embedHost)

	data := indexData{
		Theme:    s.theme(r),
		Username: s.pref(r, prefs.KeyUsername),
		Page:     page,
		Tiles:    make([]tileView, 0, len(page.Tiles)),
	}
	for _, t := range page.Tiles {
		tv := tileView{Tile: t}
		if _, ok := bindings[t.ControlID]; ok {
			tv.Href = "/play/" + t.ID
		}
		values := make([]string, 0, len(t.Tags))
		for _, tag := range t.Tags {
			values = append(values, tag.Value)
		}
		tv.TagList = strings.Join(values, " ")
		data.Tiles = append(data.Tiles, tv)
	}

	var buf bytes.Buffer
	if err := s.index.Execute(&buf, data); err != nil {
		s.logger.Error("render index", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.metrics.observeRender(page.EmptyState)

	etag := `"` + catalog.Fingerprint(buf.Bytes()) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Vary", "Cookie, Sec-CH-Prefers-Color-Scheme")
	if etagMatch(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// GamesHandler returns the rendered page as JSON.
func (s *Server) GamesHandler(w http.ResponseWriter, r *http.Request) {
	st := s.state(r)
	resp := gamesResponse{Page: view.Render(st)}
	if st.Catalog != nil {
		resp.Source = st.Catalog.Source
		resp.Version = st.Catalog.Version
	}
	writeJSON(w, http.StatusOK, resp)
}

// PlayHandler carries out the launch of one entry.
func (s *Server) PlayHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	e, ok := s.Catalog().Lookup(id)
	if !ok {
		writeError(w, utils.New(http.StatusNotFound, "game not found"))
		return
	}
	if e.Status != models.StatusPlayable {
		writeError(w, utils.New(http.StatusConflict, "game is not playable"))
		return
	}

	l := s.launchTarget(e)
	s.metrics.launches.WithLabelValues(l.Kind.String()).Inc()
	s.logger.Debug("launch", "id", id, "kind", l.Kind.String())

	switch l.Kind {
	case view.LaunchEmbed:
		markup := l.Markup
		if s.sanitizer != nil {
			markup = s.sanitizer.Sanitize(markup)
		}
		var buf bytes.Buffer
		if err := s.play.Execute(&buf, playData{Title: l.Title, Markup: template.HTML(markup)}); err != nil {
			s.logger.Error("render play", "id", id, "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
	case view.LaunchNavigate:
		target, err := url.Parse(l.Target)
		if err != nil {
			writeError(w, utils.Wrap(http.StatusInternalServerError, "invalid game path", err))
			return
		}
		// relative paths resolve against the catalog page
		http.Redirect(w, r, catalogPage.ResolveReference(target).String(), http.StatusFound)
	case view.LaunchNone:
		w.WriteHeader(http.StatusNoContent)
	}
}

// etagMatch reports whether an If-None-Match header value matches etag,
// using weak comparison.
func etagMatch(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == strings.TrimPrefix(etag, "W/") {
			return true
		}
	}
	return false
}

func (s *Server) GetPrefHandler(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	v, ok, err := prefs.Scope(s.prefs, VisitorID(r.Context())).Get(r.Context(), key)
	if err != nil {
		writeError(w, prefError(err))
		return
	}
	if !ok {
		writeError(w, utils.New(http.StatusNotFound, "preference not set"))
		return
	}
	writeJSON(w, http.StatusOK, prefResponse{Key: key, Value: v})
}

func (s *Server) PutPrefHandler(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	var req prefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, utils.Wrap(http.StatusBadRequest, "invalid request body", err))
		return
	}
	v, err := prefs.Normalize(key, req.Value)
	if err != nil {
		writeError(w, prefError(err))
		return
	}
	if err := prefs.Scope(s.prefs, VisitorID(r.Context())).Set(r.Context(), key, v); err != nil {
		writeError(w, prefError(err))
		return
	}
	writeJSON(w, http.StatusOK, prefResponse{Key: key, Value: v})
}

func (s *Server) pref(r *http.Request, key string) string {
	v, ok, err := prefs.Scope(s.prefs, VisitorID(r.Context())).Get(r.Context(), key)
	if err != nil {
		s.logger.Warn("read preference", "key", key, "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

// theme prefers the saved choice, then the client's color-scheme hint.
func (s *Server) theme(r *http.Request) string {
	if v := s.pref(r, prefs.KeyTheme); v != "" {
		return v
	}
	if strings.Contains(r.Header.Get("Sec-CH-Prefers-Color-Scheme"), prefs.ThemeDark) {
		return prefs.ThemeDark
	}
	return prefs.ThemeLight
}

func prefError(err error) error {
	switch {
	case errors.Is(err, prefs.ErrUnknownKey):
		return utils.Wrap(http.StatusNotFound, "unknown preference", err)
	case errors.Is(err, prefs.ErrInvalidValue):
		return utils.Wrap(http.StatusBadRequest, err.Error(), err)
	default:
		return utils.Wrap(http.StatusInternalServerError, "preference storage unavailable", err)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, utils.PublicMessage(err), utils.StatusCode(err))
}
