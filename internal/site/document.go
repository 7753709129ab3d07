package site

import (
	"context"
	"errors"
	"io/fs"
	"landing/pkg/serrors"
	"os"
)

// FileDocument reads the root document from disk on every call. Nothing is
// cached, so a rebuilt index.html is served on the next request.
type FileDocument struct {
	Path string
}

// Read returns the file's bytes as they are on disk now.
func (d FileDocument) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, serrors.Wrap(serrors.ErrTimeout, err, "could not read %s", d.Path)
	}

	content, err := os.ReadFile(d.Path)
	switch {
	case err == nil:
		return content, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, serrors.Wrap(serrors.ErrNotFound, err, "could not read %s", d.Path)
	default:
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not read %s", d.Path)
	}
}
