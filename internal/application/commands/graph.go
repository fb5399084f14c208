package commands

import (
	"context"
	"fmt"
	"log/slog"

	"docgraph/internal/application"
	"docgraph/internal/domain"
	"docgraph/internal/ports"
)

// GraphResult contains the encoded link graph and the artifacts written for it
type GraphResult struct {
	Report     domain.Report
	Text       string
	SourcePath string // Empty when no output file was requested
	ImagePath  string // Empty when the renderer was skipped or failed
	Warning    error  // Degraded rendering, never fatal
}

// GraphCommand draws the link graph with nodes colored by link status
type GraphCommand struct {
	analyze  *AnalyzeCommand
	analysis *AnalyzeResult
	encoder  ports.GraphEncoder
	renderer ports.DiagramRenderer
	output   string
	logger   *slog.Logger
}

// GraphOption configures the GraphCommand
type GraphOption func(*GraphCommand)

// WithAnalysis reuses a finished analysis instead of running one
func WithAnalysis(result *AnalyzeResult) GraphOption {
	return func(c *GraphCommand) {
		c.analysis = result
	}
}

// WithGraphOutput sets the file the encoded graph is written to
func WithGraphOutput(path string) GraphOption {
	return func(c *GraphCommand) {
		c.output = path
	}
}

// WithGraphRenderer sets the external renderer used after the text is written
func WithGraphRenderer(r ports.DiagramRenderer) GraphOption {
	return func(c *GraphCommand) {
		c.renderer = r
	}
}

// WithGraphLogger sets the logger used for degraded rendering
func WithGraphLogger(logger *slog.Logger) GraphOption {
	return func(c *GraphCommand) {
		c.logger = logger
	}
}

// NewGraphCommand creates a new GraphCommand
func NewGraphCommand(analyze *AnalyzeCommand, encoder ports.GraphEncoder, opts ...GraphOption) *GraphCommand {
	c := &GraphCommand{
		analyze: analyze,
		encoder: encoder,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks the command dependencies
func (c *GraphCommand) Validate() error {
	if c.encoder == nil {
		return &application.ValidationError{Field: "encoder", Message: "graph encoder is required"}
	}
	if c.analyze == nil && c.analysis == nil {
		return &application.ValidationError{Field: "analyze", Message: "analyze command or analysis is required"}
	}
	return nil
}

// Execute encodes the graph and, when an output path is set,
// writes the text and asks the renderer for an image.
func (c *GraphCommand) Execute(ctx context.Context) (*GraphResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	analysis := c.analysis
	if analysis == nil {
		var err error
		analysis, err = c.analyze.Execute(ctx)
		if err != nil {
			return nil, err
		}
	}

	text, err := c.encoder.EncodeGraph(analysis.Graph, analysis.Report)
	if err != nil {
		return nil, fmt.Errorf("failed to encode graph: %w", err)
	}

	result := &GraphResult{Report: analysis.Report, Text: text}
	if c.output == "" {
		return result, nil
	}

	d, err := writeDiagram(ctx, "graph", c.output, text, c.renderer, c.logger)
	if err != nil {
		return nil, err
	}
	result.SourcePath = d.sourcePath
	result.ImagePath = d.imagePath
	result.Warning = d.warning
	return result, nil
}
