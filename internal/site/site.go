// Package site serves a prebuilt web bundle. The root document is read from
// disk on every request to / or /index.html; every other path is handed,
// unmodified, to a delegate that serves generated resources and the bundle's
// files.
package site

import (
	"context"
	"landing/internal/config"
	"landing/pkg/logger"
	"landing/pkg/serrors"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Options locate the bundle on disk.
type Options struct {
	// BuildDir is the directory holding the prebuilt site.
	BuildDir string
	// IndexFile is the root document's name inside BuildDir.
	IndexFile string
	// ImmutablePaths are path prefixes holding content-hashed assets.
	ImmutablePaths []string
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		BuildDir:       cfg.Site.BuildDir,
		IndexFile:      cfg.Site.IndexFile,
		ImmutablePaths: cfg.Site.ImmutablePaths,
	}
}

// Site is a prepared bundle ready to be served.
type Site struct {
	assets   *Assets
	delegate *http.ServeMux
	handler  *Handler
}

// Prepare checks that the build directory exists and wires the handlers that
// serve it. It must succeed before the server binds its listener.
func Prepare(ctx context.Context, opts Options) (*Site, error) {
	dir, err := filepath.Abs(opts.BuildDir)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInvalid, err, "could not resolve build directory %q", opts.BuildDir)
	}

	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return nil, serrors.Wrap(serrors.ErrNotFound, err, "build directory %q does not exist", dir)
	case err != nil:
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not stat build directory %q", dir)
	case !info.IsDir():
		return nil, serrors.With(serrors.ErrInvalid, "build directory %q is not a directory", dir)
	}

	assets := NewAssets(os.DirFS(dir), opts.ImmutablePaths...)
	if !assets.Has(opts.IndexFile) {
		// The root document is read per request, so it may still appear later.
		logger.Warn(ctx, "root document is missing from build directory",
			zap.String("dir", dir), zap.String("file", opts.IndexFile))
	}

	delegate := http.NewServeMux()
	delegate.Handle("/", assets)

	logger.Info(ctx, "site prepared", zap.String("dir", dir))

	return &Site{
		assets:   assets,
		delegate: delegate,
		handler:  New(FileDocument{Path: filepath.Join(dir, opts.IndexFile)}, delegate),
	}, nil
}

// Mount registers a generated resource on the delegate. Mounted patterns take
// precedence over files of the bundle.
func (s *Site) Mount(pattern string, h http.Handler) {
	s.delegate.Handle(pattern, h)
}

// Has reports whether the bundle contains the named file.
func (s *Site) Has(name string) bool {
	return s.assets.Has(name)
}

// Handler returns the site's HTTP handler.
func (s *Site) Handler() http.Handler {
	return s.handler
}

// Handler serves the root document itself and forwards everything else.
type Handler struct {
	doc      Document
	delegate http.Handler
}

// New returns a Handler serving doc for the root paths and delegate otherwise.
func New(doc Document, delegate http.Handler) *Handler {
	return &Handler{doc: doc, delegate: delegate}
}

// IsRoot reports whether p addresses the root document.
func IsRoot(p string) bool {
	return p == "/" || p == "/index.html"
}

// ServeHTTP writes the root document with Content-Type text/html for / and
// /index.html. A document that cannot be read fails the request: the error is
// logged and the response aborted, so the client never sees a 404 or 500 page.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !IsRoot(r.URL.Path) {
		h.delegate.ServeHTTP(w, r)

		return
	}

	ctx := r.Context()
	content, err := h.doc.Read(ctx)
	if err != nil {
		logger.Error(ctx, "could not serve root document",
			zap.String("kind", serrors.KindOf(err).Error()),
			zap.Error(err))
		panic(http.ErrAbortHandler)
	}

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
