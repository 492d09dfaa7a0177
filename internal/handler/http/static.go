package http

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
)

// staticBundle serves the prebuilt frontend from a directory.
// Directories are only served through their index.html, never listed.
type staticBundle struct {
	fs     http.FileSystem
	server http.Handler
}

func newStaticBundle(dir string) *staticBundle {
	if dir == "" {
		return &staticBundle{}
	}
	bundle := indexOnlyFS{http.Dir(dir)}
	return &staticBundle{
		fs:     bundle,
		server: http.FileServer(bundle),
	}
}

func (b *staticBundle) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if b.server == nil {
		http.NotFound(w, r)
		return
	}
	b.server.ServeHTTP(w, r)
}

// exists reports whether urlPath names a regular file in the bundle
func (b *staticBundle) exists(urlPath string) bool {
	if b.fs == nil {
		return false
	}
	f, err := b.fs.Open(path.Clean("/" + urlPath))
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	return err == nil && !info.IsDir()
}

// indexOnlyFS hides directories that have no index.html
type indexOnlyFS struct {
	http.FileSystem
}

func (i indexOnlyFS) Open(name string) (http.File, error) {
	f, err := i.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.IsDir() {
		return f, nil
	}

	index, err := i.FileSystem.Open(path.Join(name, "index.html"))
	if err != nil {
		f.Close()
		if errors.Is(err, fs.ErrNotExist) {
			return nil, os.ErrNotExist
		}
		return nil, err
	}
	index.Close()

	return f, nil
}
