package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/masonry/pkg/buildinfo"
	errs "github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/grid"
	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/pipeline"
	"github.com/matzehuels/masonry/pkg/store"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

type profileResponse struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Config      masonry.Config `json:"config"`
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	out := make([]profileResponse, 0, len(s.profiles.Profiles))
	for _, name := range s.profiles.Names() {
		cfg, err := s.profiles.Resolve(name, 0)
		if err != nil {
			// Profiles without a width resolve against the default width.
			cfg, err = s.profiles.Resolve(name, pipeline.DefaultContainerWidth)
		}
		if err != nil {
			writeError(w, r, s.logger, err)
			return
		}
		out = append(out, profileResponse{
			Name:        name,
			Description: s.profiles.Profiles[name].Description,
			Config:      cfg,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// layoutRequest is the body of POST /v1/layouts. Exactly one of Tiles and
// Page should be set; Tiles also accepts a {"tiles": [...]} document.
type layoutRequest struct {
	Profile        string          `json:"profile"`
	ContainerWidth float64         `json:"container_width"`
	Tiles          json.RawMessage `json:"tiles"`
	Page           json.RawMessage `json:"page"`
}

type layoutResponse struct {
	ID       string      `json:"id,omitempty"`
	Layout   grid.Layout `json:"layout"`
	Skipped  []string    `json:"skipped,omitempty"`
	CacheHit bool        `json:"cache_hit"`
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req layoutRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if statusFor(err) == http.StatusRequestEntityTooLarge {
			writeError(w, r, s.logger, err)
			return
		}
		writeError(w, r, s.logger, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	var raw json.RawMessage
	switch {
	case len(req.Tiles) > 0:
		raw = req.Tiles
	case len(req.Page) > 0:
		raw = req.Page
	default:
		writeError(w, r, s.logger, errs.New(errs.ErrCodeInvalidInput, "tiles or page is required"))
		return
	}
	tiles, err := grid.ParseTiles(raw)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	res, err := s.runner.Layout(r.Context(), tiles, pipeline.Options{
		Profile:        req.Profile,
		ContainerWidth: req.ContainerWidth,
		Refresh:        r.URL.Query().Get("refresh") == "true",
		Profiles:       s.profiles,
		Logger:         s.logger,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	resp := layoutResponse{Layout: res.Layout, Skipped: res.Skipped, CacheHit: res.CacheHit}
	if r.URL.Query().Get("save") != "true" {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	saved, err := s.runner.Save(r.Context(), res.Layout)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	resp.ID = saved.ID
	resp.Layout = saved
	w.Header().Set("Location", "/v1/layouts/"+saved.ID)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	if s.runner.Store == nil {
		writeError(w, r, s.logger, errs.New(errs.ErrCodeUnsupported, "no layout store configured"))
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, r, s.logger, errs.New(errs.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	list, err := s.runner.Store.List(r.Context(), limit)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if list == nil {
		list = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

var contentTypes = map[string]string{
	grid.FormatSVG:  "image/svg+xml",
	grid.FormatPNG:  "image/png",
	grid.FormatText: "text/plain; charset=utf-8",
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	id, format := splitFormat(chi.URLParam(r, "id"))
	if format != "" && !grid.ValidFormat(format) {
		writeError(w, r, s.logger, errs.New(errs.ErrCodeInvalidFormat, "unsupported format %q", format))
		return
	}

	l, err := s.runner.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if format == "" || format == grid.FormatJSON {
		writeJSON(w, http.StatusOK, l)
		return
	}

	artifacts, err := s.runner.Render(r.Context(), l, pipeline.Options{
		Formats:  []string{format},
		Labels:   r.URL.Query().Get("labels") == "true",
		Profiles: s.profiles,
		Logger:   s.logger,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	if s.runner.Store == nil {
		writeError(w, r, s.logger, errs.New(errs.ErrCodeUnsupported, "no layout store configured"))
		return
	}
	if err := s.runner.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// splitFormat splits "abc.svg" into ("abc", "svg"). Layout IDs never
// contain dots.
func splitFormat(param string) (string, string) {
	id, ext, ok := strings.Cut(param, ".")
	if !ok {
		return param, ""
	}
	return id, strings.ToLower(ext)
}
