package api

import (
	"bytes"
	"net/http"
	"slices"

	"github.com/dgallion1/docnav/internal/navtree"
	"github.com/dgallion1/docnav/internal/render"
	"github.com/go-chi/chi/v5"
)

func (s *Server) forest(w http.ResponseWriter, r *http.Request) (*navtree.Forest, bool) {
	f, err := s.catalog.Forest(chi.URLParam(r, "doc"), chi.URLParam(r, "forest"))
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return nil, false
	}
	return f, true
}

// handleRenderForest renders a forest in the format named by ?format=
// (outline when absent).
func (s *Server) handleRenderForest(w http.ResponseWriter, r *http.Request) {
	format, err := render.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	f, ok := s.forest(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.Render(&buf, f, format); err != nil {
		s.log.Error("render failed", "forest", f.Name, "format", format, "error", err)
		jsonError(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Write(buf.Bytes())
}

func (s *Server) handleFlattenForest(w http.ResponseWriter, r *http.Request) {
	f, ok := s.forest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"forest":  f.Name,
		"entries": f.Flatten(),
	})
}

func (s *Server) handleFindByTarget(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("target")
	if target == "" {
		jsonError(w, "target query parameter is required", http.StatusBadRequest)
		return
	}
	f, ok := s.forest(w, r)
	if !ok {
		return
	}

	paths := slices.Collect(f.FindByTarget(target))
	if paths == nil {
		paths = [][]string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"forest": f.Name,
		"target": target,
		"paths":  paths,
	})
}
