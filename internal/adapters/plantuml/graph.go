package plantuml

import (
	"fmt"
	"strings"

	"docgraph/internal/domain"
	"docgraph/internal/ports"
)

// Default node colors per link status
var DefaultCategoryColors = map[domain.Category]string{
	domain.CategoryOrphaned:   "#FF6B6B",
	domain.CategoryNoIncoming: "#FFD43B",
	domain.CategoryNoOutgoing: "#51CF66",
	domain.CategoryConnected:  "#339AF0",
}

var legendOrder = []domain.Category{
	domain.CategoryOrphaned,
	domain.CategoryNoIncoming,
	domain.CategoryNoOutgoing,
	domain.CategoryConnected,
}

// GraphEncoder serializes the link graph as a PlantUML diagram.
// Every document is a node colored by its category; every link is an arrow.
type GraphEncoder struct {
	colors map[domain.Category]string
}

// Ensure GraphEncoder implements GraphEncoder
var _ ports.GraphEncoder = (*GraphEncoder)(nil)

// GraphEncoderOption configures the GraphEncoder
type GraphEncoderOption func(*GraphEncoder)

// WithCategoryColor overrides the node color of one category
func WithCategoryColor(category domain.Category, color string) GraphEncoderOption {
	return func(e *GraphEncoder) {
		if color != "" {
			e.colors[category] = color
		}
	}
}

// NewGraphEncoder creates a new link graph encoder
func NewGraphEncoder(opts ...GraphEncoderOption) *GraphEncoder {
	e := &GraphEncoder{colors: make(map[domain.Category]string, len(DefaultCategoryColors))}
	for k, v := range DefaultCategoryColors {
		e.colors[k] = v
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EncodeGraph writes nodes in path order, then the links ordered by source and target.
// Documents missing from the report are drawn as connected.
func (e *GraphEncoder) EncodeGraph(g *domain.Graph, report domain.Report) (string, error) {
	categories := make(map[string]domain.Category, len(report.Documents))
	for _, d := range report.Documents {
		categories[d.Path] = d.Category()
	}

	var b strings.Builder
	b.WriteString("@startuml\n")
	b.WriteString("left to right direction\n")
	b.WriteString("skinparam shadowing false\n")

	aliases := make(map[string]string, g.Len())
	for p := range g.Documents() {
		alias := fmt.Sprintf("d%d", len(aliases))
		aliases[p] = alias

		category, ok := categories[p]
		if !ok {
			category = domain.CategoryConnected
		}
		fmt.Fprintf(&b, "rectangle \"%s\" as %s %s\n", nodeLabel(p), alias, e.colors[category])
	}

	for src, dst := range g.Links() {
		fmt.Fprintf(&b, "%s --> %s\n", aliases[src], aliases[dst])
	}

	b.WriteString("legend right\n")
	for _, c := range legendOrder {
		fmt.Fprintf(&b, "  |<%s>| %s |\n", e.colors[c], strings.ReplaceAll(string(c), "_", " "))
	}
	b.WriteString("endlegend\n")

	b.WriteString("@enduml\n")
	return b.String(), nil
}

func nodeLabel(p string) string {
	return strings.NewReplacer("\"", "'", "\r", " ", "\n", " ").Replace(p)
}
