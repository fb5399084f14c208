package domain

import (
	"net/url"
	"path"
	"regexp"
	"slices"
	"strings"
)

// Inline markdown link: [text](target)
var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// URI scheme prefix (http:, https:, mailto:, ftp:, obsidian: ...)
var schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*:`)

// LinkKind classifies a matched link target
type LinkKind int

const (
	LinkInternal LinkKind = iota
	LinkExternal
	LinkAnchor
	LinkNotMarkdown
	LinkOutsideRoot
	LinkExcluded
)

func (k LinkKind) String() string {
	switch k {
	case LinkInternal:
		return "internal"
	case LinkExternal:
		return "external"
	case LinkAnchor:
		return "anchor"
	case LinkNotMarkdown:
		return "not-markdown"
	case LinkOutsideRoot:
		return "outside-root"
	case LinkExcluded:
		return "excluded"
	default:
		return "unknown"
	}
}

// Extraction is the result of scanning one document for links
type Extraction struct {
	Source  string
	Targets []string // Distinct resolved targets, lexical order
	Matches int      // Every pattern match, including duplicates and rejected ones
	ByKind  map[LinkKind]int
}

// LinkExtractor finds local markdown links in document text
type LinkExtractor struct {
	exclude ExcludeSet
}

// NewLinkExtractor creates an extractor that rejects targets inside excluded directories
func NewLinkExtractor(exclude ExcludeSet) *LinkExtractor {
	if exclude == nil {
		exclude = NewExcludeSet(DefaultExcludedDirs)
	}
	return &LinkExtractor{exclude: exclude}
}

// Extract returns the distinct documents referenced by content.
// source is the normalized path of the document the content belongs to.
func (e *LinkExtractor) Extract(source, content string) Extraction {
	result := Extraction{
		Source: source,
		ByKind: make(map[LinkKind]int),
	}

	seen := make(map[string]struct{})
	for _, m := range linkPattern.FindAllStringSubmatch(content, -1) {
		result.Matches++

		target, kind := e.Resolve(source, m[2])
		result.ByKind[kind]++
		if kind != LinkInternal {
			continue
		}
		if _, dup := seen[target]; dup {
			continue
		}
		seen[target] = struct{}{}
		result.Targets = append(result.Targets, target)
	}

	slices.Sort(result.Targets)
	return result
}

// Resolve classifies a raw link target found in source and, for internal
// links, returns the normalized document path it points to.
func (e *LinkExtractor) Resolve(source, raw string) (string, LinkKind) {
	target := cleanTarget(raw)

	if strings.HasPrefix(target, "#") || target == "" {
		return "", LinkAnchor
	}
	if schemePattern.MatchString(target) {
		return "", LinkExternal
	}

	if i := strings.IndexByte(target, '#'); i >= 0 {
		target = target[:i]
	}
	if unescaped, err := url.PathUnescape(target); err == nil {
		target = unescaped
	}

	// Absolute paths point at the filesystem, never into the scan root
	if strings.HasPrefix(target, "/") {
		return "", LinkOutsideRoot
	}

	resolved := path.Clean(path.Join(path.Dir(source), target))
	if resolved == ".." || strings.HasPrefix(resolved, "../") {
		return "", LinkOutsideRoot
	}
	if !IsMarkdown(path.Base(resolved)) {
		return "", LinkNotMarkdown
	}
	if e.exclude.Excludes(resolved) {
		return "", LinkExcluded
	}

	return resolved, LinkInternal
}

// cleanTarget strips surrounding whitespace, angle brackets and a quoted title
func cleanTarget(raw string) string {
	target := strings.TrimSpace(raw)

	if strings.HasPrefix(target, "<") {
		if end := strings.IndexByte(target, '>'); end > 0 {
			return target[1:end]
		}
	}

	for _, sep := range []string{` "`, ` '`} {
		if i := strings.Index(target, sep); i > 0 {
			target = strings.TrimSpace(target[:i])
		}
	}

	return target
}
