package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dgallion1/docnav/internal/catalog"
	"github.com/dgallion1/docnav/internal/navtree"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hierarchyJS = `var hierarchy =
[
    [ "MaliSDK::Platform", "class_mali_s_d_k_1_1_platform.html", [
      [ "MaliSDK::LinuxOnFBDEVPlatform", "class_mali_s_d_k_1_1_linux_on_f_b_d_e_v_platform.html", null ],
      [ "MaliSDK::LinuxPlatform", "class_mali_s_d_k_1_1_linux_platform.html", null ]
    ] ],
    [ "MaliSDK::Timer", "class_mali_s_d_k_1_1_timer.html", null ]
];`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cat := catalog.New(navtree.DefaultParseConfig(), nil)
	_, err := cat.Import("classes", "hierarchy.js", strings.NewReader(hierarchyJS))
	require.NoError(t, err)
	return New(cat, slog.New(slog.NewTextHandler(io.Discard, nil)), "test")
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestListDocuments(t *testing.T) {
	s := newTestServer(t)
	res, _, err := s.listDocuments(context.Background(), nil, ListDocumentsArgs{})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var body struct {
		Documents []catalog.Summary `json:"documents"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &body))
	require.Len(t, body.Documents, 1)
	assert.Equal(t, []catalog.ForestSummary{{Name: "hierarchy", Nodes: 4}}, body.Documents[0].Forests)
}

func TestFlattenForest(t *testing.T) {
	s := newTestServer(t)
	res, _, err := s.flattenForest(context.Background(), nil, FlattenForestArgs{Document: "classes"})
	require.NoError(t, err)

	var body struct {
		Forest  string          `json:"forest"`
		Entries []navtree.Entry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &body))
	assert.Equal(t, "hierarchy", body.Forest)
	require.Len(t, body.Entries, 4)
	assert.Equal(t, 1, body.Entries[1].Depth)
	assert.Equal(t, "MaliSDK::Timer", body.Entries[3].Label)
}

func TestFindByTarget(t *testing.T) {
	s := newTestServer(t)
	res, _, err := s.findByTarget(context.Background(), nil, FindByTargetArgs{
		Document: "classes",
		Forest:   "hierarchy",
		Target:   "class_mali_s_d_k_1_1_linux_platform.html",
	})
	require.NoError(t, err)
	assert.Contains(t, text(t, res), `"MaliSDK::LinuxPlatform"`)

	var body struct {
		Paths [][]string `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &body))
	assert.Equal(t, [][]string{{"MaliSDK::Platform", "MaliSDK::LinuxPlatform"}}, body.Paths)

	res, _, err = s.findByTarget(context.Background(), nil, FindByTargetArgs{Document: "classes"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestRenderForest(t *testing.T) {
	s := newTestServer(t)
	res, _, err := s.renderForest(context.Background(), nil, RenderForestArgs{Document: "classes", Format: "markdown"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text(t, res), "- [MaliSDK::Platform](class_mali_s_d_k_1_1_platform.html)\n"))

	res, _, err = s.renderForest(context.Background(), nil, RenderForestArgs{Document: "classes", Format: "docx"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestUnknownDocumentIsToolError(t *testing.T) {
	s := newTestServer(t)
	res, _, err := s.flattenForest(context.Background(), nil, FlattenForestArgs{Document: "missing"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "document not found")

	res, _, err = s.flattenForest(context.Background(), nil, FlattenForestArgs{Document: "classes", Forest: "NAVTREE"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

// The tools are reachable through a real client session.
func TestToolsOverSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := newTestServer(t)
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ss, err := s.mcpServer.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer cs.Close()

	tools, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_documents", "flatten_forest", "find_by_target", "render_forest"}, names)

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "render_forest",
		Arguments: map[string]any{"document": "classes"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "MaliSDK::Platform -> class_mali_s_d_k_1_1_platform.html\n", strings.SplitAfter(text(t, res), "\n")[0])
}
