package httpx

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// StaticFiles mounts a file server on r at urlPrefix, serving files from dir.
// Used for locally stored location images (e.g. /uploads/* → UPLOAD_DIR).
// Directory listings are disabled.
func StaticFiles(r chi.Router, urlPrefix, dir string) {
	prefix := strings.TrimSuffix(urlPrefix, "/")
	fs := http.StripPrefix(prefix, http.FileServer(noDirFS{http.Dir(dir)}))
	r.Get(prefix+"/*", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		fs.ServeHTTP(w, req)
	})
}

// noDirFS wraps an http.FileSystem and refuses directory reads so the file
// server returns 404 instead of a listing.
type noDirFS struct {
	fs http.FileSystem
}

func (n noDirFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, http.ErrMissingFile
	}
	return f, nil
}
