package commands

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"docgraph/internal/application"
	"docgraph/internal/domain"
	"docgraph/internal/ports"
)

// DefaultWorkers is the number of documents read concurrently
const DefaultWorkers = 8

// AnalyzeResult contains the output of one analysis run
type AnalyzeResult struct {
	Inventory   *domain.Inventory
	Graph       *domain.Graph
	Report      domain.Report
	Extractions []domain.Extraction
	RawMatches  int // Every [text](target) occurrence across the corpus
	ByKind      map[domain.LinkKind]int
	Warnings    []domain.Warning // Skipped directories and unreadable files
}

// AnalyzeCommand scans a root, extracts links and classifies every document
type AnalyzeCommand struct {
	scanner   ports.DocumentScanner
	reader    ports.DocumentReader
	extractor *domain.LinkExtractor
	workers   int
	logger    *slog.Logger
}

// AnalyzeOption configures the AnalyzeCommand
type AnalyzeOption func(*AnalyzeCommand)

// WithWorkers sets how many documents are read in parallel
func WithWorkers(n int) AnalyzeOption {
	return func(c *AnalyzeCommand) {
		c.workers = n
	}
}

// WithLogger sets the logger used for skipped documents
func WithLogger(logger *slog.Logger) AnalyzeOption {
	return func(c *AnalyzeCommand) {
		c.logger = logger
	}
}

// NewAnalyzeCommand creates a new AnalyzeCommand
func NewAnalyzeCommand(
	scanner ports.DocumentScanner,
	reader ports.DocumentReader,
	extractor *domain.LinkExtractor,
	opts ...AnalyzeOption,
) *AnalyzeCommand {
	c := &AnalyzeCommand{
		scanner:   scanner,
		reader:    reader,
		extractor: extractor,
		workers:   DefaultWorkers,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks the command options
func (c *AnalyzeCommand) Validate() error {
	return application.ValidatePositive("workers", c.workers)
}

// Execute runs the scan → extract → graph → analyze pipeline.
// Only a problem with the root is returned as an error; unreadable documents
// are kept as graph nodes without outgoing links and reported as warnings.
func (c *AnalyzeCommand) Execute(ctx context.Context) (*AnalyzeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	inv, err := c.scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}

	extractions, readErrs, err := c.extractAll(ctx, inv)
	if err != nil {
		return nil, err
	}

	result := &AnalyzeResult{
		Inventory: inv,
		ByKind:    make(map[domain.LinkKind]int),
		Warnings:  append([]domain.Warning(nil), inv.Warnings...),
	}

	// Single writer from here on
	for i, f := range inv.Files {
		if readErrs[i] != nil {
			c.logger.Warn("skipping unreadable document", "path", f.Path, "err", readErrs[i])
			result.Warnings = append(result.Warnings, domain.Warning{Path: f.Path, Op: "read", Err: readErrs[i]})
			continue
		}
		ex := extractions[i]
		result.Extractions = append(result.Extractions, ex)
		result.RawMatches += ex.Matches
		for kind, n := range ex.ByKind {
			result.ByKind[kind] += n
		}
	}

	result.Graph = domain.BuildGraph(inv, result.Extractions)
	result.Report = domain.Analyze(result.Graph)

	c.logger.Debug("analysis complete",
		"root", inv.Root,
		"documents", result.Report.Stats.TotalDocuments,
		"links", result.Report.Stats.TotalLinks,
		"orphaned", result.Report.Stats.Orphaned,
	)
	return result, nil
}

// extractAll reads and extracts every document with a bounded worker pool.
// Results are written to per-index slots so no locking is needed.
func (c *AnalyzeCommand) extractAll(ctx context.Context, inv *domain.Inventory) ([]domain.Extraction, []error, error) {
	extractions := make([]domain.Extraction, len(inv.Files))
	readErrs := make([]error, len(inv.Files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i, f := range inv.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content, err := c.reader.ReadDocument(f.AbsPath)
			if err != nil {
				readErrs[i] = err
				return nil
			}
			extractions[i] = c.extractor.Extract(f.Path, content)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return extractions, readErrs, nil
}
