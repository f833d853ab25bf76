package ports

import (
	"context"
	"io"

	"github.com/ellytic/onboard/internal/domain"
)

// DocumentUploader stores an uploaded document and returns its reference.
// Remove deletes a stored document; removing one that is already gone is not an error.
type DocumentUploader interface {
	Upload(ctx context.Context, kind domain.DocumentKind, name string, r io.Reader) (domain.FileRef, error)
	Remove(ctx context.Context, ref domain.FileRef) error
}
