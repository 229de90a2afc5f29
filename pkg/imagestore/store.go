// Package imagestore abstracts where location photos live. The API persists
// only the returned URL; deletion is best-effort and callers are expected to
// ignore failures.
package imagestore

import (
	"context"
	"fmt"
	"time"

	"math/rand"
)

// Store saves and deletes location images.
type Store interface {
	// Save writes the image and returns the public URL to persist on the
	// Location record.
	Save(ctx context.Context, data []byte, contentType string) (string, error)

	// Delete removes a previously stored image by its URL. URLs this store
	// did not produce are ignored without error.
	Delete(ctx context.Context, imageURL string) error
}

// objectName builds a unique image name: "<unix-nanos>-<random>.jpg".
// Mirrors the upload naming used before object keys carried any meaning, so
// keys stay opaque.
func objectName(ext string) string {
	return fmt.Sprintf("%d-%09d%s", time.Now().UnixNano(), rand.Intn(1e9), ext)
}

// extForContentType maps the few content types the imaging pipeline emits.
func extForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	default:
		return ".jpg"
	}
}
