package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docnav/internal/catalog"
	"github.com/dgallion1/docnav/internal/importer"
	"github.com/dgallion1/docnav/internal/navtree"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrDocumentNotFound), errors.Is(err, catalog.ErrForestNotFound):
		return http.StatusNotFound
	case errors.Is(err, importer.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrInvalidDocument),
		errors.Is(err, navtree.ErrMalformedInput),
		errors.Is(err, navtree.ErrDepthExceeded):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
