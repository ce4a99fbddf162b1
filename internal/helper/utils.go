package helper

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// NewDocumentID returns a random unique document identifier. Record ids are
// derived from it, so it only needs uniqueness per document, not content
// addressing.
func NewDocumentID() string {
	return uuid.NewString()
}

// WriteArtifact writes artifact bytes to dir/name, creating the directory
// when needed, and returns the full path.
func WriteArtifact(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating artifact directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing artifact: %w", err)
	}
	return path, nil
}
