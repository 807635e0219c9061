package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dgallion1/docnav/internal/catalog"
	"github.com/dgallion1/docnav/internal/config"
	"github.com/dgallion1/docnav/internal/navtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const navtreeJS = `var NAVTREE =
[
    [ "Mali OpenGL ES SDK", "index.html", [
      [ "Files", null, [
        [ "File List", "files.html", "files" ]
      ] ],
      [ "Overview", "files.html", null ]
    ] ]
];

var SYNCONMSG = 'click to disable panel synchronisation';`

func newTestServer(t *testing.T, apiKey string) (*Server, *catalog.Catalog) {
	t.Helper()
	cfg := config.Config{
		Port:           "8091",
		APIKey:         apiKey,
		MaxDepth:       navtree.DefaultMaxDepth,
		MaxUploadBytes: 1 << 20,
	}
	cat := catalog.New(cfg.ParseConfig(), nil)
	_, err := cat.Import("sdk", "navtreedata.js", strings.NewReader(navtreeJS))
	require.NoError(t, err)
	return NewServer(cat, nil, slog.New(slog.NewTextHandler(io.Discard, nil)), cfg), cat
}

func do(t *testing.T, s *Server, method, path string, body io.Reader, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func upload(t *testing.T, filename, content, name string) (io.Reader, http.Header) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if name != "" {
		require.NoError(t, mw.WriteField("name", name))
	}
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, http.Header{"Content-Type": {mw.FormDataContentType()}}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, "secret")
	rec := do(t, s, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAuth(t *testing.T) {
	s, _ := newTestServer(t, "secret")

	rec := do(t, s, http.MethodGet, "/api/documents", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/documents", nil, http.Header{"Authorization": {"Bearer wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/documents", nil, http.Header{"Authorization": {"Bearer secret"}})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthDisabledWithoutKey(t *testing.T) {
	s, _ := newTestServer(t, "")
	rec := do(t, s, http.MethodGet, "/api/documents", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMCPMount(t *testing.T) {
	s, _ := newTestServer(t, "secret")
	rec := do(t, s, http.MethodPost, "/mcp", strings.NewReader("{}"), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "not mounted without a handler")

	cfg := config.Config{APIKey: "secret", MaxUploadBytes: 1 << 20}
	called := false
	mcp := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusAccepted)
	})
	s = NewServer(catalog.New(cfg.ParseConfig(), nil), mcp, slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)

	rec = do(t, s, http.MethodPost, "/mcp", strings.NewReader("{}"), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	rec = do(t, s, http.MethodPost, "/mcp", strings.NewReader("{}"), http.Header{"Authorization": {"Bearer secret"}})
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.True(t, called)
}

func TestListDocuments(t *testing.T) {
	s, _ := newTestServer(t, "")
	rec := do(t, s, http.MethodGet, "/api/documents", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Documents []catalog.Summary `json:"documents"`
	}
	decode(t, rec, &body)
	require.Len(t, body.Documents, 1)
	assert.Equal(t, "sdk", body.Documents[0].Name)
	assert.Equal(t, []catalog.ForestSummary{{Name: "NAVTREE", Nodes: 4}}, body.Documents[0].Forests)
	assert.Equal(t, catalog.ContentHashHex([]byte(navtreeJS)), body.Documents[0].ContentHash)
}

func TestFlattenForest(t *testing.T) {
	s, _ := newTestServer(t, "")
	rec := do(t, s, http.MethodGet, "/api/documents/sdk/forests/NAVTREE/flatten", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Forest  string          `json:"forest"`
		Entries []navtree.Entry `json:"entries"`
	}
	decode(t, rec, &body)
	assert.Equal(t, "NAVTREE", body.Forest)
	require.Len(t, body.Entries, 4)
	assert.Equal(t, 2, body.Entries[2].Depth)
	assert.Equal(t, "File List", body.Entries[2].Label)
	assert.Nil(t, body.Entries[1].Target)
}

func TestFindByTarget(t *testing.T) {
	s, _ := newTestServer(t, "")
	rec := do(t, s, http.MethodGet, "/api/documents/sdk/forests/NAVTREE/find?target=files.html", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Paths [][]string `json:"paths"`
	}
	decode(t, rec, &body)
	assert.Equal(t, [][]string{
		{"Mali OpenGL ES SDK", "Files", "File List"},
		{"Mali OpenGL ES SDK", "Overview"},
	}, body.Paths)

	rec = do(t, s, http.MethodGet, "/api/documents/sdk/forests/NAVTREE/find?target=none.html", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"paths":[]`)

	rec = do(t, s, http.MethodGet, "/api/documents/sdk/forests/NAVTREE/find", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRenderForest(t *testing.T) {
	s, _ := newTestServer(t, "")

	rec := do(t, s, http.MethodGet, "/api/documents/sdk/forests/NAVTREE", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Mali OpenGL ES SDK -> index.html\n  Files\n"))

	rec = do(t, s, http.MethodGet, "/api/documents/sdk/forests/NAVTREE?format=html", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<a href="files.html">File List</a>`)

	rec = do(t, s, http.MethodGet, "/api/documents/sdk/forests/NAVTREE?format=pdf", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotFound(t *testing.T) {
	s, _ := newTestServer(t, "")
	for _, path := range []string{
		"/api/documents/nope/raw",
		"/api/documents/nope/settings",
		"/api/documents/nope/forests/NAVTREE/flatten",
		"/api/documents/sdk/forests/hierarchy/flatten",
	} {
		rec := do(t, s, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestRawAndSettings(t *testing.T) {
	s, _ := newTestServer(t, "")

	rec := do(t, s, http.MethodGet, "/api/documents/sdk/raw", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, navtreeJS, strings.TrimSpace(rec.Body.String()))

	rec = do(t, s, http.MethodGet, "/api/documents/sdk/settings", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Settings map[string]string `json:"settings"`
	}
	decode(t, rec, &body)
	assert.Equal(t, map[string]string{"SYNCONMSG": "click to disable panel synchronisation"}, body.Settings)
}

func TestUploadDocument(t *testing.T) {
	s, cat := newTestServer(t, "")

	body, header := upload(t, "guide.md", "# Guide\n\n- [Intro](intro.html)\n", "")
	rec := do(t, s, http.MethodPost, "/api/documents", body, header)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var summary catalog.Summary
	decode(t, rec, &summary)
	assert.Equal(t, "guide", summary.Name)
	assert.Equal(t, []catalog.ForestSummary{{Name: "guide", Nodes: 2}}, summary.Forests)

	_, err := cat.Get("guide")
	assert.NoError(t, err)

	body, header = upload(t, "../../etc/nav.js", `[["A", "a.html", null]]`, "custom")
	rec = do(t, s, http.MethodPost, "/api/documents", body, header)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(t, rec, &summary)
	assert.Equal(t, "custom", summary.Name)
	assert.Equal(t, "nav.js", summary.Filename)
}

func TestUploadDocument_Errors(t *testing.T) {
	s, _ := newTestServer(t, "")

	tests := []struct {
		name     string
		filename string
		content  string
		want     int
	}{
		{"unsupported extension", "tool.exe", "MZ", http.StatusBadRequest},
		{"malformed exchange", "bad.js", `var x = [["A", null]];`, http.StatusUnprocessableEntity},
		{"invalid json", "bad.json", `{"roots": [`, http.StatusUnprocessableEntity},
		{"too large", "big.json", strings.Repeat(" ", 3<<19), http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, header := upload(t, tt.filename, tt.content, "")
			rec := do(t, s, http.MethodPost, "/api/documents", body, header)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}

	rec := do(t, s, http.MethodPost, "/api/documents", strings.NewReader("nope"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadDocument_NullNodeLeavesCatalogUsable(t *testing.T) {
	s, cat := newTestServer(t, "")

	body, header := upload(t, "bad.json", `[{"label":"ok","children":[null]}]`, "")
	rec := do(t, s, http.MethodPost, "/api/documents", body, header)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "bad[0].children[0]")

	_, err := cat.Get("bad")
	assert.ErrorIs(t, err, catalog.ErrDocumentNotFound)

	rec = do(t, s, http.MethodGet, "/api/documents", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/api/stats/load", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var stats struct {
		Stats catalog.StatsSnapshot `json:"stats"`
	}
	decode(t, rec, &stats)
	assert.Equal(t, 2, stats.Stats.Count)
	assert.Equal(t, 1, stats.Stats.Failed)
}

func TestDeleteDocument(t *testing.T) {
	s, cat := newTestServer(t, "")

	rec := do(t, s, http.MethodDelete, "/api/documents/sdk", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, cat.List())

	rec = do(t, s, http.MethodDelete, "/api/documents/sdk", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoadStats(t *testing.T) {
	s, _ := newTestServer(t, "")
	rec := do(t, s, http.MethodGet, "/api/stats/load", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Documents int                   `json:"documents"`
		Stats     catalog.StatsSnapshot `json:"stats"`
	}
	decode(t, rec, &body)
	assert.Equal(t, 1, body.Documents)
	assert.Equal(t, 1, body.Stats.Count)
	assert.Equal(t, 0, body.Stats.Failed)
	assert.Equal(t, int64(len(navtreeJS)), body.Stats.TotalBytes)
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"nav.js":           "nav.js",
		"../../etc/nav.js": "nav.js",
		`C:\docs\guide.md`: "guide.md",
		"":                 "unnamed",
		"..":               "_",
		"a..b.md":          "a_b.md",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeFilename(in), in)
	}
}
