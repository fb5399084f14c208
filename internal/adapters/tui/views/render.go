package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"docgraph/internal/adapters/tui/styles"
)

// screen assembles a view top to bottom: header, body lines, status message, key help
type screen struct {
	b strings.Builder
}

func (s *screen) header(title, subtitle string) *screen {
	s.b.WriteString(styles.Title.Render(title))
	s.b.WriteString("\n")
	if subtitle != "" {
		s.b.WriteString(styles.Subtitle.Render(subtitle))
		s.b.WriteString("\n\n")
	}
	return s
}

func (s *screen) line(text string) *screen {
	s.b.WriteString(text)
	s.b.WriteString("\n")
	return s
}

// status shows the last action result; errors are red, everything else green
func (s *screen) status(message string, isError bool) *screen {
	if message == "" {
		return s
	}
	style := styles.Success
	if isError {
		style = styles.ErrorMsg
	}
	s.b.WriteString("\n")
	s.b.WriteString(style.Render(message))
	s.b.WriteString("\n")
	return s
}

func (s *screen) keys(bindings ...key.Binding) *screen {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	s.b.WriteString("\n")
	s.b.WriteString(strings.Join(parts, styles.HelpSeparator.String()))
	return s
}

func (s *screen) String() string {
	return styles.App.Render(s.b.String())
}
