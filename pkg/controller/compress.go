package controller

import (
	"io"
	"net/http"

	"github.com/andybalholm/brotli"
)

// compressWriter defers choosing an encoding until the downstream handler
// commits its status, so bodiless responses and pre-encoded bodies are left
// untouched.
type compressWriter struct {
	http.ResponseWriter

	r           *http.Request
	enc         io.WriteCloser
	wroteHeader bool
}

func (cw *compressWriter) WriteHeader(code int) {
	if cw.wroteHeader {
		return
	}
	cw.wroteHeader = true

	if compressible(cw.r, code, cw.Header()) {
		cw.enc = brotli.HTTPCompressor(cw.ResponseWriter, cw.r)
		if cw.Header().Get("Content-Encoding") != "" {
			// length and byte ranges describe the identity body
			cw.Header().Del("Content-Length")
			cw.Header().Del("Accept-Ranges")
		}
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *compressWriter) Write(b []byte) (int, error) {
	if !cw.wroteHeader {
		cw.WriteHeader(http.StatusOK)
	}
	if cw.enc != nil {
		return cw.enc.Write(b) //nolint: wrapcheck
	}

	return cw.ResponseWriter.Write(b) //nolint: wrapcheck
}

func (cw *compressWriter) Close() error {
	if cw.enc == nil {
		return nil
	}

	return cw.enc.Close() //nolint: wrapcheck
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (cw *compressWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}

func compressible(r *http.Request, code int, h http.Header) bool {
	switch {
	case r.Method == http.MethodHead:
		return false
	case code < http.StatusOK, code == http.StatusNoContent, code == http.StatusNotModified:
		return false
	case h.Get("Content-Encoding") != "":
		return false
	case h.Get("Content-Range") != "":
		return false
	}

	return true
}

// WithCompression returns a middleware that encodes response bodies with
// brotli or gzip, whichever the client's Accept-Encoding prefers. Clients that
// accept neither receive the body unchanged.
func WithCompression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cw := &compressWriter{ResponseWriter: w, r: r}
		defer func() { _ = cw.Close() }()

		next.ServeHTTP(cw, r)
	})
}
