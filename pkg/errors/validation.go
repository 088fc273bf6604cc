package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateDiagramName validates a diagram name used as a document key.
// It rejects names that could be used for path traversal when the name is
// mapped to a file or a redis key.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateDiagramName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidName, "diagram name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidName, "diagram name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "diagram name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "diagram name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// nodeTypeRegex matches registrable node type tags: lowercase words joined
// by dashes or dots.
var nodeTypeRegex = regexp.MustCompile(`^[a-z][a-z0-9]*([.-][a-z0-9]+)*$`)

// ValidateNodeType validates a node type tag before it enters the registry.
func ValidateNodeType(tag string) error {
	if tag == "" {
		return New(ErrCodeInvalidName, "node type cannot be empty")
	}
	if !nodeTypeRegex.MatchString(tag) {
		return New(ErrCodeInvalidName, "invalid node type: %q", tag)
	}
	return nil
}
