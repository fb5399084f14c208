package application

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts field names to readable words for error messages
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"root":      "root path",
		"filter":    "path filter",
		"document":  "document path",
		"dbPath":    "database path",
		"outputDir": "output directory",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidatePositive checks that an integer option is greater than zero
func ValidatePositive(fieldName string, value int) error {
	if value <= 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be positive, got: %d", formatFieldName(fieldName), value),
		}
	}
	return nil
}

// ResolveRoot returns the absolute form of root after checking it is an
// existing directory. Failures are fatal and wrapped in a RootError.
func ResolveRoot(root string) (string, error) {
	if err := ValidateRequired("root", root); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", &RootError{Path: root, Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &RootError{Path: abs, Err: ErrRootNotFound}
		}
		return "", &RootError{Path: abs, Err: err}
	}
	if !info.IsDir() {
		return "", &RootError{Path: abs, Err: ErrNotDirectory}
	}

	return abs, nil
}

// ResolveFilter turns an optional subdirectory filter into an absolute path
// inside root. An empty filter returns root itself.
func ResolveFilter(root, filter string) (string, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return root, nil
	}

	dir := filter
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	dir = filepath.Clean(dir)

	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &RootError{Path: dir, Err: ErrFilterOutsideRoot}
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &RootError{Path: dir, Err: ErrRootNotFound}
		}
		return "", &RootError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return "", &RootError{Path: dir, Err: ErrNotDirectory}
	}

	return dir, nil
}
