package site

import "context"

// Document is the root HTML document of the site.
//
//go:generate mockgen -package mocksite -source=interface.go -destination=mock/mocksite.go *
type Document interface {
	// Read returns the document's current bytes.
	Read(ctx context.Context) ([]byte, error)
}
