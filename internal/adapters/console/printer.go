package console

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"docgraph/internal/adapters/tui/styles"
	"docgraph/internal/application/commands"
	"docgraph/internal/domain"
)

// Printer writes analysis results for humans (or JSON for tools)
type Printer struct {
	out    io.Writer
	styled bool
}

// Option configures the Printer
type Option func(*Printer)

// WithStyle forces styled (true) or plain (false) output
func WithStyle(styled bool) Option {
	return func(p *Printer) {
		p.styled = styled
	}
}

// NewPrinter creates a printer writing to out.
// Output is styled only when out is a terminal.
func NewPrinter(out io.Writer, opts ...Option) *Printer {
	p := &Printer{out: out, styled: IsTerminal(out)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *Printer) style(s lipgloss.Style) lipgloss.Style {
	if !p.styled {
		return lipgloss.NewStyle()
	}
	return s
}

// PrintTarget prints the analyzed root and the number of documents found
func (p *Printer) PrintTarget(root string, documents int) {
	fmt.Fprintf(p.out, "%s %s\n", p.style(styles.Success).Render("Analyzing:"), root)
	fmt.Fprintf(p.out, "%s\n\n", p.style(styles.MutedText).Render(fmt.Sprintf("%d documents found", documents)))
}

// PrintReport prints the statistics table and the category lists.
// In verbose mode per-document counts, outgoing links, the extraction
// breakdown and skipped paths follow.
func (p *Printer) PrintReport(result *commands.AnalyzeResult, verbose bool) {
	r := result.Report

	fmt.Fprintln(p.out, p.style(styles.Title).Render("Document statistics"))
	fmt.Fprintln(p.out, p.table([]string{"Metric", "Count"}, [][]string{
		{"Total documents", strconv.Itoa(r.Stats.TotalDocuments)},
		{"Total links", strconv.Itoa(r.Stats.TotalLinks)},
		{"Orphaned documents", strconv.Itoa(r.Stats.Orphaned)},
		{"No incoming links", strconv.Itoa(r.Stats.NoIncoming)},
		{"No outgoing links", strconv.Itoa(r.Stats.NoOutgoing)},
	}))
	fmt.Fprintln(p.out)

	p.printCategory("orphaned", "Orphaned documents", r.Orphaned)
	if verbose {
		p.printCategory("no_incoming", "No incoming links", r.NoIncoming)
		p.printCategory("no_outgoing", "No outgoing links", r.NoOutgoing)
		p.printDocuments(result)
		p.printBreakdown(result)
	}
	p.PrintWarnings(result.Warnings, verbose)
}

func (p *Printer) printCategory(key, title string, paths []string) {
	if len(paths) == 0 {
		return
	}
	heading := p.style(lipgloss.NewStyle().Bold(true).Foreground(styles.CategoryColor(key)))
	fmt.Fprintln(p.out, heading.Render(title+":"))
	for _, path := range paths {
		fmt.Fprintf(p.out, "  • %s\n", path)
	}
	fmt.Fprintln(p.out)
}

func (p *Printer) printDocuments(result *commands.AnalyzeResult) {
	rows := make([][]string, 0, len(result.Report.Documents))
	for _, d := range result.Report.Documents {
		rows = append(rows, []string{d.Path, strconv.Itoa(d.Outgoing), strconv.Itoa(d.Incoming)})
	}
	fmt.Fprintln(p.out, p.style(styles.Title).Render("Links per document"))
	fmt.Fprintln(p.out, p.table([]string{"Document", "Outgoing", "Incoming"}, rows))
	fmt.Fprintln(p.out)

	fmt.Fprintln(p.out, p.style(styles.Title).Render("Link details"))
	for path := range result.Graph.Documents() {
		targets := result.Graph.Outgoing(path)
		if len(targets) == 0 {
			continue
		}
		fmt.Fprintf(p.out, "%s:\n", p.style(styles.NodeDirectory).Render(path))
		for _, t := range targets {
			fmt.Fprintf(p.out, "  → %s\n", t)
		}
	}
	fmt.Fprintln(p.out)
}

func (p *Printer) printBreakdown(result *commands.AnalyzeResult) {
	kinds := make([]domain.LinkKind, 0, len(result.ByKind))
	for k := range result.ByKind {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	rows := [][]string{{"raw matches", strconv.Itoa(result.RawMatches)}}
	for _, k := range kinds {
		rows = append(rows, []string{k.String(), strconv.Itoa(result.ByKind[k])})
	}
	fmt.Fprintln(p.out, p.style(styles.Title).Render("Link matches"))
	fmt.Fprintln(p.out, p.table([]string{"Kind", "Count"}, rows))
	fmt.Fprintln(p.out)
}

// PrintWarnings prints the skipped paths. Without verbose only their count is shown.
func (p *Printer) PrintWarnings(warnings []domain.Warning, verbose bool) {
	if len(warnings) == 0 {
		return
	}
	warn := p.style(styles.WarningMsg)
	if !verbose {
		fmt.Fprintln(p.out, warn.Render(fmt.Sprintf("%d paths skipped (use --verbose for details)", len(warnings))))
		return
	}
	fmt.Fprintln(p.out, warn.Render("Skipped:"))
	for _, w := range warnings {
		fmt.Fprintf(p.out, "  ! %s\n", w)
	}
}

// PrintWarning prints a single degraded-mode message
func (p *Printer) PrintWarning(err error) {
	fmt.Fprintln(p.out, p.style(styles.WarningMsg).Render("warning: "+err.Error()))
}

// PrintSuccess prints a confirmation line
func (p *Printer) PrintSuccess(msg string) {
	fmt.Fprintln(p.out, p.style(styles.Success).Render(msg))
}

// PrintJSON writes v as indented JSON
func (p *Printer) PrintJSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintTree writes the mindmap as an indented text tree
func (p *Printer) PrintTree(root *domain.MindmapNode) {
	fmt.Fprint(p.out, RenderTree(root))
}

func (p *Printer) table(headers []string, rows [][]string) string {
	header := p.style(styles.TableHeader).Padding(0, 1)
	cell := p.style(styles.TableCell).Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.style(styles.TableBorder)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		String()
}
