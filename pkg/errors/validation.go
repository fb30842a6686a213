package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxNodeIDLength bounds node ids; they end up in SVG ids and edge ids.
const maxNodeIDLength = 256

// ValidateNodeID validates a flow node id.
//
// Empty ids are accepted because the reader assigns generated ids to nodes
// without one. Non-empty ids must not contain control characters or
// whitespace, and must not contain '/', which separates the owner and role
// parts of edge ids.
func ValidateNodeID(id string) error {
	if id == "" {
		return nil
	}

	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidDocument, "node id too long (max %d characters)", maxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidDocument, "node id %q contains whitespace or control characters", id)
		}
	}

	if strings.Contains(id, "/") {
		return New(ErrCodeInvalidDocument, "node id %q cannot contain '/'", id)
	}

	return nil
}

// documentExtensions lists the file extensions flow documents may use.
var documentExtensions = map[string]bool{
	".json": true,
	".toml": true,
}

// ValidateDocumentFilename validates a flow document filename.
// It ensures the filename is a simple basename with a supported extension.
func ValidateDocumentFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidFormat, "document filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidFormat, "document filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidFormat, "document filename cannot be a hidden file")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !documentExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported document extension %q (must be .json or .toml)", ext)
	}

	return nil
}

// ValidatePath validates an output path supplied by a user.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
