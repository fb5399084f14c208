package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"docgraph/internal/application"
	"docgraph/internal/domain"
	"docgraph/internal/ports"
)

// MindmapResult contains the projected tree and the artifacts written for it
type MindmapResult struct {
	Root       *domain.MindmapNode
	Text       string
	SourcePath string // Empty when no output file was requested
	ImagePath  string // Empty when the renderer was skipped or failed
	Warning    error  // Degraded rendering, never fatal
}

// MindmapCommand projects the scanned inventory onto a directory mindmap
type MindmapCommand struct {
	scanner   ports.DocumentScanner
	encoder   ports.MindmapEncoder
	renderer  ports.DiagramRenderer
	inventory *domain.Inventory
	output    string
	logger    *slog.Logger
}

// MindmapOption configures the MindmapCommand
type MindmapOption func(*MindmapCommand)

// WithInventory reuses an inventory from a previous scan instead of scanning again
func WithInventory(inv *domain.Inventory) MindmapOption {
	return func(c *MindmapCommand) {
		c.inventory = inv
	}
}

// WithOutput sets the file the encoded mindmap is written to
func WithOutput(path string) MindmapOption {
	return func(c *MindmapCommand) {
		c.output = path
	}
}

// WithRenderer sets the external renderer used after the text is written
func WithRenderer(r ports.DiagramRenderer) MindmapOption {
	return func(c *MindmapCommand) {
		c.renderer = r
	}
}

// WithMindmapLogger sets the logger used for degraded rendering
func WithMindmapLogger(logger *slog.Logger) MindmapOption {
	return func(c *MindmapCommand) {
		c.logger = logger
	}
}

// NewMindmapCommand creates a new MindmapCommand
func NewMindmapCommand(scanner ports.DocumentScanner, encoder ports.MindmapEncoder, opts ...MindmapOption) *MindmapCommand {
	c := &MindmapCommand{
		scanner: scanner,
		encoder: encoder,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks the command dependencies
func (c *MindmapCommand) Validate() error {
	if c.encoder == nil {
		return &application.ValidationError{Field: "encoder", Message: "mindmap encoder is required"}
	}
	if c.scanner == nil && c.inventory == nil {
		return &application.ValidationError{Field: "scanner", Message: "scanner or inventory is required"}
	}
	return nil
}

// Execute builds the tree, encodes it and, when an output path is set,
// writes the text and asks the renderer for an image.
func (c *MindmapCommand) Execute(ctx context.Context) (*MindmapResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	inv := c.inventory
	if inv == nil {
		var err error
		inv, err = c.scanner.Scan(ctx)
		if err != nil {
			return nil, err
		}
	}

	root := domain.BuildMindmap(filepath.Base(inv.Root), inv.Paths())
	text, err := c.encoder.Encode(root)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mindmap: %w", err)
	}

	result := &MindmapResult{Root: root, Text: text}
	if c.output == "" {
		return result, nil
	}

	d, err := writeDiagram(ctx, "mindmap", c.output, text, c.renderer, c.logger)
	if err != nil {
		return nil, err
	}
	result.SourcePath = d.sourcePath
	result.ImagePath = d.imagePath
	result.Warning = d.warning
	return result, nil
}
