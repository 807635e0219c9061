// Package mcpserver exposes the document catalog as Model Context Protocol
// tools.
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/dgallion1/docnav/internal/catalog"
	"github.com/dgallion1/docnav/internal/render"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ListDocumentsArgs struct{}

type FlattenForestArgs struct {
	Document string `json:"document" jsonschema:"name of a loaded document"`
	Forest   string `json:"forest,omitempty" jsonschema:"forest name, defaults to the document's first forest"`
}

type FindByTargetArgs struct {
	Document string `json:"document" jsonschema:"name of a loaded document"`
	Forest   string `json:"forest,omitempty" jsonschema:"forest name, defaults to the document's first forest"`
	Target   string `json:"target" jsonschema:"link target to look for, e.g. files.html"`
}

type RenderForestArgs struct {
	Document string `json:"document" jsonschema:"name of a loaded document"`
	Forest   string `json:"forest,omitempty" jsonschema:"forest name, defaults to the document's first forest"`
	Format   string `json:"format,omitempty" jsonschema:"outline, markdown, html, json, yaml or js; outline when empty"`
}

// Server wires catalog queries to MCP tools.
type Server struct {
	mcpServer *mcp.Server
	catalog   *catalog.Catalog
	log       *slog.Logger
}

func New(cat *catalog.Catalog, log *slog.Logger, version string) *Server {
	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{Name: "docnav", Version: version}, nil),
		catalog:   cat,
		log:       log,
	}
	s.registerTools()
	return s
}

// RunStdio serves MCP over stdin/stdout until ctx is done or the client
// disconnects.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// Handler serves MCP over streamable HTTP.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s.mcpServer }, nil)
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_documents",
		Description: "Lists loaded navigation documents with their forests and node counts",
	}, s.listDocuments)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "flatten_forest",
		Description: "Returns every node of a navigation forest in document order with its depth, label and target",
	}, s.flattenForest)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "find_by_target",
		Description: "Returns the label path from the root to every node linking to the given target",
	}, s.findByTarget)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "render_forest",
		Description: "Renders a navigation forest as an outline, Markdown, HTML, JSON, YAML or exchange-format script",
	}, s.renderForest)
}

func (s *Server) listDocuments(ctx context.Context, req *mcp.CallToolRequest, args ListDocumentsArgs) (*mcp.CallToolResult, any, error) {
	return jsonResult(map[string]any{"documents": s.catalog.List()})
}

func (s *Server) flattenForest(ctx context.Context, req *mcp.CallToolRequest, args FlattenForestArgs) (*mcp.CallToolResult, any, error) {
	f, err := s.catalog.Forest(args.Document, args.Forest)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	return jsonResult(map[string]any{"forest": f.Name, "entries": f.Flatten()})
}

func (s *Server) findByTarget(ctx context.Context, req *mcp.CallToolRequest, args FindByTargetArgs) (*mcp.CallToolResult, any, error) {
	if args.Target == "" {
		return errorResult("target is required"), nil, nil
	}
	f, err := s.catalog.Forest(args.Document, args.Forest)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	paths := slices.Collect(f.FindByTarget(args.Target))
	if paths == nil {
		paths = [][]string{}
	}
	return jsonResult(map[string]any{"forest": f.Name, "target": args.Target, "paths": paths})
}

func (s *Server) renderForest(ctx context.Context, req *mcp.CallToolRequest, args RenderForestArgs) (*mcp.CallToolResult, any, error) {
	format, err := render.ParseFormat(args.Format)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	f, err := s.catalog.Forest(args.Document, args.Forest)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	var buf bytes.Buffer
	if err := render.Render(&buf, f, format); err != nil {
		s.log.Error("render failed", "document", args.Document, "forest", f.Name, "error", err)
		return nil, nil, fmt.Errorf("render %s: %w", f.Name, err)
	}
	return textResult(buf.String()), nil, nil
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return textResult(string(b)), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}
