package domain

import (
	"path"
	"slices"
	"strings"
)

// DefaultExcludedDirs are directory names never descended into or linked through
var DefaultExcludedDirs = []string{
	"node_modules",
	".venv",
	"venv",
	"__pycache__",
	".git",
	"vendor",
}

// MarkdownExt is the suffix a file name must carry to be treated as a document
const MarkdownExt = ".md"

// File is a document discovered by the scanner
type File struct {
	Path    string // Relative to the scan root, forward slashes (identity)
	AbsPath string // Absolute filesystem path
}

// Warning records a path that was skipped during a run without aborting it
type Warning struct {
	Path string
	Op   string // "scan", "read"
	Err  error
}

func (w Warning) String() string {
	return w.Op + " " + w.Path + ": " + w.Err.Error()
}

// Inventory is the shared file list both projections are built from
type Inventory struct {
	Root     string // Absolute scan root
	Files    []File
	Warnings []Warning
}

// Paths returns the document identities in lexical order
func (inv *Inventory) Paths() []string {
	paths := make([]string, 0, len(inv.Files))
	for _, f := range inv.Files {
		paths = append(paths, f.Path)
	}
	slices.Sort(paths)
	return paths
}

// SortFiles orders the inventory files by identity
func (inv *Inventory) SortFiles() {
	slices.SortFunc(inv.Files, func(a, b File) int {
		return strings.Compare(a.Path, b.Path)
	})
}

// ExcludeSet is a set of directory names
type ExcludeSet map[string]struct{}

// NewExcludeSet builds an ExcludeSet, ignoring blank names
func NewExcludeSet(names []string) ExcludeSet {
	set := make(ExcludeSet, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}

// Contains reports whether name is excluded
func (s ExcludeSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Excludes reports whether any directory component of a slash path is excluded
func (s ExcludeSet) Excludes(p string) bool {
	dir := path.Dir(p)
	if dir == "." {
		return false
	}
	for _, part := range strings.Split(dir, "/") {
		if s.Contains(part) {
			return true
		}
	}
	return false
}

// NormalizePath converts a relative path to document identity form
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(p)
	return strings.TrimPrefix(p, "./")
}

// IsMarkdown reports whether a file name qualifies as a document
func IsMarkdown(name string) bool {
	return strings.HasSuffix(name, MarkdownExt) && len(name) > len(MarkdownExt)
}
