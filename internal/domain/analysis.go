package domain

// Statistics is a snapshot of graph-wide counts
type Statistics struct {
	TotalDocuments int `json:"total_documents"`
	TotalLinks     int `json:"total_links"`
	Orphaned       int `json:"orphaned"`
	NoIncoming     int `json:"no_incoming"`
	NoOutgoing     int `json:"no_outgoing"`
}

// DocumentDegree carries the link counts of one document
type DocumentDegree struct {
	Path     string `json:"path"`
	Incoming int    `json:"incoming"`
	Outgoing int    `json:"outgoing"`
}

// IsOrphaned reports whether the document has no links in either direction
func (d DocumentDegree) IsOrphaned() bool {
	return d.Incoming == 0 && d.Outgoing == 0
}

// Category is the link status of one document
type Category string

const (
	CategoryOrphaned   Category = "orphaned"
	CategoryNoIncoming Category = "no_incoming"
	CategoryNoOutgoing Category = "no_outgoing"
	CategoryConnected  Category = "connected"
)

// Category classifies the document; orphaned wins over the one-sided categories
func (d DocumentDegree) Category() Category {
	switch {
	case d.IsOrphaned():
		return CategoryOrphaned
	case d.Incoming == 0:
		return CategoryNoIncoming
	case d.Outgoing == 0:
		return CategoryNoOutgoing
	default:
		return CategoryConnected
	}
}

// Report is the analysis output handed to presentation layers.
// Every list is in lexical path order.
type Report struct {
	Stats      Statistics       `json:"statistics"`
	Orphaned   []string         `json:"orphaned"`
	NoIncoming []string         `json:"no_incoming"`
	NoOutgoing []string         `json:"no_outgoing"`
	Documents  []DocumentDegree `json:"documents"`
}

// Analyze classifies every document of a fully built graph
func Analyze(g *Graph) Report {
	r := Report{
		Orphaned:   []string{},
		NoIncoming: []string{},
		NoOutgoing: []string{},
		Documents:  make([]DocumentDegree, 0, g.Len()),
	}

	for p := range g.Documents() {
		d := DocumentDegree{
			Path:     p,
			Incoming: g.IncomingCount(p),
			Outgoing: g.OutgoingCount(p),
		}
		r.Documents = append(r.Documents, d)

		if d.Incoming == 0 {
			r.NoIncoming = append(r.NoIncoming, p)
		}
		if d.Outgoing == 0 {
			r.NoOutgoing = append(r.NoOutgoing, p)
		}
		if d.IsOrphaned() {
			r.Orphaned = append(r.Orphaned, p)
		}
	}

	r.Stats = Statistics{
		TotalDocuments: g.Len(),
		TotalLinks:     g.LinkCount(),
		Orphaned:       len(r.Orphaned),
		NoIncoming:     len(r.NoIncoming),
		NoOutgoing:     len(r.NoOutgoing),
	}
	return r
}

// OrphanSet returns the orphaned documents as a lookup set
func (r Report) OrphanSet() map[string]bool {
	set := make(map[string]bool, len(r.Orphaned))
	for _, p := range r.Orphaned {
		set[p] = true
	}
	return set
}

// Degree returns the counts recorded for path
func (r Report) Degree(path string) (DocumentDegree, bool) {
	for _, d := range r.Documents {
		if d.Path == path {
			return d, true
		}
	}
	return DocumentDegree{}, false
}
