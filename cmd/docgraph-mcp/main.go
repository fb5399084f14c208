package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"docgraph/internal/adapters/filesystem"
	mcpadapter "docgraph/internal/adapters/mcp"
	"docgraph/internal/config"
)

func main() {
	configFlag := flag.String("config", "", "path to a .docgraph.yaml file")
	rootFlag := flag.String("root", "", "root directory to analyze (default from config)")
	flag.Parse()

	cfg, err := config.Load(config.Options{ConfigFile: *configFlag, Root: *rootFlag})
	if err != nil {
		log.Fatalf("docgraph-mcp: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("docgraph-mcp: %v", err)
	}

	// stdout carries the protocol; logs go to stderr
	logger, err := config.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("docgraph-mcp: %v", err)
	}

	reader, err := filesystem.NewCachedReader(filesystem.NewReader(), filesystem.DefaultCacheSize)
	if err != nil {
		log.Fatalf("docgraph-mcp: %v", err)
	}

	svc := mcpadapter.NewService(cfg.Root,
		mcpadapter.WithExcludes(cfg.Exclude),
		mcpadapter.WithWorkers(cfg.Workers),
		mcpadapter.WithReader(reader),
		mcpadapter.WithLogger(logger),
	)

	mcpServer := server.NewMCPServer(
		"docgraph-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterTools(mcpServer, svc)

	logger.Info("serving MCP over stdio", "root", svc.Root())
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("docgraph-mcp: %v", err)
	}
}
