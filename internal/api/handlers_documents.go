package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docnav/internal/importer"
	"github.com/dgallion1/docnav/internal/navtree"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"documents": s.catalog.List()})
}

// handleUploadDocument imports a multipart "file" upload under the optional
// "name" field, defaulting to the file's stem.
func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !importer.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		name = strings.TrimSuffix(filename, filepath.Ext(filename))
	}

	entry, err := s.catalog.Import(name, filename, bytes.NewReader(data))
	if err != nil {
		s.log.Warn("upload rejected", "name", name, "filename", filename, "error", err)
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	s.log.Info("document uploaded", "name", entry.Name, "filename", filename, "hash", entry.ContentHash)
	writeJSON(w, http.StatusCreated, entry.Summary())
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	doc := chi.URLParam(r, "doc")
	if !s.catalog.Delete(doc) {
		jsonError(w, fmt.Sprintf("document %q not found", doc), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": doc})
}

// handleRawDocument serves the whole document in exchange format.
func (s *Server) handleRawDocument(w http.ResponseWriter, r *http.Request) {
	e, err := s.catalog.Get(chi.URLParam(r, "doc"))
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Write(navtree.Serialize(e.Doc))
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	e, err := s.catalog.Get(chi.URLParam(r, "doc"))
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settings": e.Doc.Settings()})
}
