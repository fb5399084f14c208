package plantuml

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"docgraph/internal/ports"
)

// DefaultCommand is the renderer executable looked up on PATH
const DefaultCommand = "plantuml"

// Renderer implements ports.DiagramRenderer by invoking the plantuml CLI
type Renderer struct {
	command string
	format  string
}

// Ensure Renderer implements DiagramRenderer
var _ ports.DiagramRenderer = (*Renderer)(nil)

// RendererOption configures the Renderer
type RendererOption func(*Renderer)

// WithCommand sets the renderer executable (name on PATH or absolute path)
func WithCommand(command string) RendererOption {
	return func(r *Renderer) {
		if command != "" {
			r.command = command
		}
	}
}

// WithFormat sets the image format passed as -t<format>
func WithFormat(format string) RendererOption {
	return func(r *Renderer) {
		if format != "" {
			r.format = format
		}
	}
}

// NewRenderer creates a new PlantUML renderer
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		command: DefaultCommand,
		format:  "png",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Available returns true if the plantuml executable can be found
func (r *Renderer) Available() bool {
	_, err := exec.LookPath(r.command)
	return err == nil
}

// Render produces an image next to sourcePath and returns its path
func (r *Renderer) Render(ctx context.Context, sourcePath string) (string, error) {
	cmd := exec.CommandContext(ctx, r.command, "-t"+r.format, sourcePath)
	if _, err := cmd.Output(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%s failed: %s", r.command, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("failed to run %s: %w", r.command, err)
	}
	return ImagePath(sourcePath, r.format), nil
}

// ImagePath returns the file plantuml writes for sourcePath.
// plantuml replaces whatever extension the source has.
func ImagePath(sourcePath, format string) string {
	return strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + "." + format
}
