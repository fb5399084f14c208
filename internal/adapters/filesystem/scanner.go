package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"docgraph/internal/application"
	"docgraph/internal/domain"
	"docgraph/internal/ports"
)

var (
	errSymlinkCycle  = errors.New("directory already visited (symlink cycle)")
	errSymlinkInRoot = errors.New("symlink to a directory inside the root")
)

// Scanner implements ports.DocumentScanner by walking the local filesystem
type Scanner struct {
	root    string
	filter  string
	exclude domain.ExcludeSet
	logger  *slog.Logger
}

// Ensure Scanner implements DocumentScanner
var _ ports.DocumentScanner = (*Scanner)(nil)

// ScannerOption configures the Scanner
type ScannerOption func(*Scanner)

// WithFilter restricts the walk to a subdirectory of the root.
// Document paths stay relative to the root.
func WithFilter(filter string) ScannerOption {
	return func(s *Scanner) {
		s.filter = filter
	}
}

// WithExcludes replaces the excluded directory names
func WithExcludes(names []string) ScannerOption {
	return func(s *Scanner) {
		s.exclude = domain.NewExcludeSet(names)
	}
}

// WithLogger sets the logger used for skipped paths
func WithLogger(logger *slog.Logger) ScannerOption {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// NewScanner creates a new filesystem scanner
func NewScanner(root string, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		root:    ExpandHome(root),
		exclude: domain.NewExcludeSet(domain.DefaultExcludedDirs),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Root returns the root the scanner was configured with
func (s *Scanner) Root() string {
	return s.root
}

// Excludes returns the excluded directory names
func (s *Scanner) Excludes() domain.ExcludeSet {
	return s.exclude
}

// Scan returns every markdown document below the root (or filter)
func (s *Scanner) Scan(ctx context.Context) (*domain.Inventory, error) {
	root, err := application.ResolveRoot(s.root)
	if err != nil {
		return nil, err
	}
	start, err := application.ResolveFilter(root, s.filter)
	if err != nil {
		return nil, err
	}

	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, &application.RootError{Path: root, Err: err}
	}

	inv := &domain.Inventory{Root: root}
	w := &walker{
		scanner:  s,
		root:     root,
		realRoot: realRoot,
		inv:      inv,
		visited:  make(map[string]struct{}),
	}

	if err := w.walkDir(ctx, start, true); err != nil {
		return nil, err
	}

	inv.SortFiles()
	return inv, nil
}

// walker holds the state of one Scan call
type walker struct {
	scanner  *Scanner
	root     string
	realRoot string
	inv      *domain.Inventory
	visited  map[string]struct{} // Resolved real paths of visited directories
}

func (w *walker) walkDir(ctx context.Context, dir string, isStart bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		if isStart {
			return &application.RootError{Path: dir, Err: err}
		}
		w.skip(dir, err)
		return nil
	}
	if _, seen := w.visited[real]; seen {
		w.scanner.logger.Debug("skipping directory", "path", dir, "reason", errSymlinkCycle)
		return nil
	}
	w.visited[real] = struct{}{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if isStart {
			return &application.RootError{Path: dir, Err: fmt.Errorf("failed to read directory: %w", err)}
		}
		w.skip(dir, err)
		// ReadDir returns the entries it could read before failing
		if len(entries) == 0 {
			return nil
		}
	}

	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(dir, name)

		isDir := entry.IsDir()
		isRegular := entry.Type().IsRegular()

		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(full)
			if err != nil {
				w.skip(full, err)
				continue
			}
			isDir = info.IsDir()
			isRegular = info.Mode().IsRegular()

			// A directory link back into the root would rename the documents
			// it points to; the real directory is walked under its own path.
			if isDir && w.insideRoot(full) {
				w.scanner.logger.Debug("skipping directory", "path", full, "reason", errSymlinkInRoot)
				continue
			}
		}

		if isDir {
			if w.scanner.exclude.Contains(name) {
				continue
			}
			if err := w.walkDir(ctx, full, false); err != nil {
				return err
			}
			continue
		}

		if !isRegular || !domain.IsMarkdown(name) {
			continue
		}

		rel, err := filepath.Rel(w.root, full)
		if err != nil {
			w.skip(full, err)
			continue
		}
		w.inv.Files = append(w.inv.Files, domain.File{
			Path:    domain.NormalizePath(filepath.ToSlash(rel)),
			AbsPath: full,
		})
	}

	return nil
}

// insideRoot reports whether the link target of path lies under the real root
func (w *walker) insideRoot(path string) bool {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(w.realRoot, target)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func (w *walker) skip(path string, err error) {
	w.scanner.logger.Warn("skipping path", "path", path, "err", err)
	w.inv.Warnings = append(w.inv.Warnings, domain.Warning{Path: path, Op: "scan", Err: err})
}
