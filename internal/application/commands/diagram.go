package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"docgraph/internal/application"
	"docgraph/internal/ports"
)

// diagram is an encoded text written to disk and, when possible, rendered
type diagram struct {
	sourcePath string
	imagePath  string
	warning    error
}

// writeDiagram writes text to output and hands it to renderer.
// A missing or failing renderer degrades to a warning; only the write can fail.
func writeDiagram(ctx context.Context, kind, output, text string, renderer ports.DiagramRenderer, logger *slog.Logger) (diagram, error) {
	if err := os.WriteFile(output, []byte(text), 0644); err != nil {
		return diagram{}, fmt.Errorf("failed to write %s %s: %w", kind, output, err)
	}
	d := diagram{sourcePath: output}

	if renderer == nil {
		return d, nil
	}
	if !renderer.Available() {
		d.warning = &application.RenderError{Source: output, Err: application.ErrRendererUnavailable}
		logger.Warn(kind+" renderer not found, image skipped", "source", output)
		return d, nil
	}

	image, err := renderer.Render(ctx, output)
	if err != nil {
		d.warning = &application.RenderError{Source: output, Err: err}
		logger.Warn(kind+" rendering failed", "source", output, "err", err)
		return d, nil
	}
	d.imagePath = image
	return d, nil
}
