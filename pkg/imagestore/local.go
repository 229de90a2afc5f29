package imagestore

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ghuser/stocktrack/pkg/logger"
)

// LocalStore writes images to a directory on disk and serves them under a
// URL prefix mounted by the HTTP server. This is the development default.
type LocalStore struct {
	dir     string
	baseURL string
	log     logger.Logger
}

// NewLocalStore creates the upload directory if needed and returns a store
// that maps saved files to "<baseURL>/<name>".
func NewLocalStore(dir, baseURL string, log logger.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		log:     log,
	}, nil
}

// Save writes the image to disk and returns its public URL.
func (s *LocalStore) Save(ctx context.Context, data []byte, contentType string) (string, error) {
	name := objectName(extForContentType(contentType))
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

// Delete removes the file behind imageURL. URLs outside the store's base URL
// are ignored, as are already-deleted files.
func (s *LocalStore) Delete(ctx context.Context, imageURL string) error {
	name, ok := strings.CutPrefix(imageURL, s.baseURL+"/")
	if !ok {
		return nil
	}
	// Refuse traversal out of the upload dir.
	name = path.Base(name)
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete image file: %w", err)
	}
	return nil
}
