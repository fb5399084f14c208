package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"docgraph/internal/domain"
)

// DefaultDebounce is the quiet period after the last event before a batch is handed over
const DefaultDebounce = 300 * time.Millisecond

// ChangeHandler receives the absolute paths changed since the previous batch, sorted
type ChangeHandler func(ctx context.Context, changed []string)

// Watcher reports markdown changes below a root, batched by a debounce window.
// Excluded directories are never watched.
type Watcher struct {
	root     string
	exclude  domain.ExcludeSet
	debounce time.Duration
	handler  ChangeHandler
	logger   *slog.Logger
}

// Option configures the Watcher
type Option func(*Watcher)

// WithExcludes sets the directory names that are not watched
func WithExcludes(names []string) Option {
	return func(w *Watcher) {
		w.exclude = domain.NewExcludeSet(names)
	}
}

// WithDebounce sets the debounce window
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// NewWatcher creates a watcher for root calling handler with every batch
func NewWatcher(root string, handler ChangeHandler, opts ...Option) *Watcher {
	w := &Watcher{
		root:     root,
		exclude:  domain.NewExcludeSet(domain.DefaultExcludedDirs),
		debounce: DefaultDebounce,
		handler:  handler,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is canceled. Pending changes are dropped on exit.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addRecursive(fw, w.root); err != nil {
		return err
	}

	pending := make(map[string]struct{})
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(fw, event) {
				continue
			}
			pending[event.Name] = struct{}{}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)

		case <-timerC:
			timer, timerC = nil, nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			slices.Sort(changed)

			w.logger.Debug("changes detected", "count", len(changed))
			w.handler(ctx, changed)
		}
	}
}

// relevant filters events down to markdown files and directories.
// New directories are added to the watch list.
func (w *Watcher) relevant(fw *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}

	name := filepath.Base(event.Name)
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if w.exclude.Contains(name) {
				return false
			}
			if err := w.addRecursive(fw, event.Name); err != nil {
				w.logger.Warn("cannot watch new directory", "path", event.Name, "err", err)
			}
			return true
		}
	}

	if domain.IsMarkdown(name) {
		return true
	}
	// A removed or renamed directory takes its documents with it
	return event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// addRecursive adds dir and every non-excluded subdirectory to the watch list
func (w *Watcher) addRecursive(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			w.logger.Warn("skipping directory", "path", path, "err", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.exclude.Contains(d.Name()) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			if path == dir {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			w.logger.Warn("skipping directory", "path", path, "err", err)
		}
		return nil
	})
}
