package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"docgraph/internal/adapters/console"
	"docgraph/internal/adapters/filesystem"
	"docgraph/internal/adapters/plantuml"
	"docgraph/internal/adapters/tui/styles"
	"docgraph/internal/application"
	"docgraph/internal/application/commands"
	"docgraph/internal/domain"
	"docgraph/internal/ports"
)

// Service runs analyses of one root on behalf of MCP tools
type Service struct {
	root    string
	exclude []string
	workers int
	reader  ports.DocumentReader
	logger  *slog.Logger
}

// Option configures the Service
type Option func(*Service)

// WithExcludes sets the excluded directory names
func WithExcludes(names []string) Option {
	return func(s *Service) {
		s.exclude = names
	}
}

// WithWorkers sets the number of parallel document reads
func WithWorkers(n int) Option {
	return func(s *Service) {
		s.workers = n
	}
}

// WithReader replaces the document reader (e.g., with a cached one)
func WithReader(r ports.DocumentReader) Option {
	return func(s *Service) {
		s.reader = r
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a Service for root
func NewService(root string, opts ...Option) *Service {
	s := &Service{
		root:    root,
		exclude: domain.DefaultExcludedDirs,
		workers: commands.DefaultWorkers,
		reader:  filesystem.NewReader(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) scanner(filter string) *filesystem.Scanner {
	return filesystem.NewScanner(s.root,
		filesystem.WithFilter(filter),
		filesystem.WithExcludes(s.exclude),
		filesystem.WithLogger(s.logger),
	)
}

func (s *Service) analyze(ctx context.Context, filter string) (*commands.AnalyzeResult, error) {
	cmd := commands.NewAnalyzeCommand(
		s.scanner(filter),
		s.reader,
		domain.NewLinkExtractor(domain.NewExcludeSet(s.exclude)),
		commands.WithWorkers(s.workers),
		commands.WithLogger(s.logger),
	)
	return cmd.Execute(ctx)
}

// RegisterTools adds the analysis tools to the MCP server.
func RegisterTools(s *server.MCPServer, svc *Service) {
	s.AddTool(analyzeTool(), analyzeHandler(svc))
	s.AddTool(orphansTool(), orphansHandler(svc))
	s.AddTool(documentLinksTool(), documentLinksHandler(svc))
	s.AddTool(mindmapTool(), mindmapHandler(svc))
	s.AddTool(graphTool(), graphHandler(svc))
}

// --- analyze ---

func analyzeTool() mcp.Tool {
	return mcp.NewTool("analyze",
		mcp.WithDescription("Analyze the markdown link graph. Returns document and link statistics and the orphaned documents (no incoming and no outgoing links)."),
		mcp.WithString("path",
			mcp.Description("Subdirectory of the root to restrict the scan to. Document paths stay relative to the root."),
		),
		mcp.WithBoolean("verbose",
			mcp.Description("Include per-document link counts, link details and skipped paths"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: text (default) or json"),
			mcp.Enum("text", "json"),
		),
	)
}

func analyzeHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := req.GetString("path", "")
		verbose := req.GetBool("verbose", false)
		format := req.GetString("format", "text")

		result, err := svc.analyze(ctx, filter)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		printer := console.NewPrinter(&sb, console.WithStyle(false))
		switch format {
		case "json":
			if err := printer.PrintJSON(result.Report); err != nil {
				return toolError(err)
			}
		case "text":
			printer.PrintTarget(result.Inventory.Root, len(result.Inventory.Files))
			printer.PrintReport(result, verbose)
		default:
			return toolError(fmt.Errorf("invalid format: %s (expected text or json)", format))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- orphans ---

func orphansTool() mcp.Tool {
	return mcp.NewTool("orphans",
		mcp.WithDescription("List orphaned documents, one root-relative path per line."),
		mcp.WithString("path",
			mcp.Description("Subdirectory of the root to restrict the scan to"),
		),
	)
}

func orphansHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := svc.analyze(ctx, req.GetString("path", ""))
		if err != nil {
			return toolError(err)
		}
		if len(result.Report.Orphaned) == 0 {
			return mcp.NewToolResultText("No orphaned documents."), nil
		}
		return mcp.NewToolResultText(strings.Join(result.Report.Orphaned, "\n")), nil
	}
}

// --- document_links ---

func documentLinksTool() mcp.Tool {
	return mcp.NewTool("document_links",
		mcp.WithDescription("Show the incoming and outgoing links of one document."),
		mcp.WithString("document",
			mcp.Description("Document path relative to the root (e.g. guide/setup.md)"),
			mcp.Required(),
		),
	)
}

func documentLinksHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc := req.GetString("document", "")
		if err := application.ValidateRequired("document", doc); err != nil {
			return toolError(err)
		}
		doc = domain.NormalizePath(doc)

		result, err := svc.analyze(ctx, "")
		if err != nil {
			return toolError(err)
		}
		if !result.Graph.HasDocument(doc) {
			return toolError(fmt.Errorf("%w: %s", application.ErrDocumentNotFound, doc))
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s\n", doc)
		writeLinkList(&sb, "outgoing", result.Graph.Outgoing(doc))
		writeLinkList(&sb, "incoming", result.Graph.Incoming(doc))
		if d, ok := result.Report.Degree(doc); ok && d.IsOrphaned() {
			sb.WriteString("orphaned\n")
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func writeLinkList(sb *strings.Builder, label string, paths []string) {
	fmt.Fprintf(sb, "%s (%d):\n", label, len(paths))
	for _, p := range paths {
		fmt.Fprintf(sb, "  %s\n", p)
	}
}

// --- mindmap ---

func mindmapTool() mcp.Tool {
	return mcp.NewTool("mindmap",
		mcp.WithDescription("Render the directory layout of the documents as a PlantUML mindmap, a text tree or JSON."),
		mcp.WithString("format",
			mcp.Description("Output format: puml (default), tree or json"),
			mcp.Enum("puml", "tree", "json"),
		),
		mcp.WithBoolean("highlight_orphans",
			mcp.Description("Color orphaned documents in the PlantUML output"),
		),
	)
}

func mindmapHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		format := req.GetString("format", "puml")
		highlight := req.GetBool("highlight_orphans", false)

		var encoderOpts []plantuml.EncoderOption
		var mindmapOpts []commands.MindmapOption
		if highlight {
			result, err := svc.analyze(ctx, "")
			if err != nil {
				return toolError(err)
			}
			encoderOpts = append(encoderOpts, plantuml.WithHighlight(result.Report.Orphaned, styles.OrphanHex))
			mindmapOpts = append(mindmapOpts, commands.WithInventory(result.Inventory))
		}

		cmd := commands.NewMindmapCommand(svc.scanner(""), plantuml.NewEncoder(encoderOpts...), mindmapOpts...)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		switch format {
		case "puml":
			return mcp.NewToolResultText(result.Text), nil
		case "tree":
			return mcp.NewToolResultText(console.RenderTree(result.Root)), nil
		case "json":
			var sb strings.Builder
			if err := console.NewPrinter(&sb, console.WithStyle(false)).PrintJSON(result.Root); err != nil {
				return toolError(err)
			}
			return mcp.NewToolResultText(sb.String()), nil
		default:
			return toolError(fmt.Errorf("invalid format: %s (expected puml, tree or json)", format))
		}
	}
}

// --- graph ---

func graphTool() mcp.Tool {
	return mcp.NewTool("graph",
		mcp.WithDescription("Render the links between documents as a PlantUML diagram. Nodes are colored as orphaned, no incoming, no outgoing or connected."),
		mcp.WithString("path",
			mcp.Description("Subdirectory of the root to restrict the scan to"),
		),
	)
}

func graphHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := svc.analyze(ctx, req.GetString("path", ""))
		if err != nil {
			return toolError(err)
		}

		encoder := plantuml.NewGraphEncoder(plantuml.WithCategoryColor(domain.CategoryOrphaned, styles.OrphanHex))
		graph, err := commands.NewGraphCommand(nil, encoder, commands.WithAnalysis(result)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(graph.Text), nil
	}
}

// Root returns the analyzed root as given
func (s *Service) Root() string {
	return filepath.Clean(s.root)
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
