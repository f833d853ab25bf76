package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/ports"
	"github.com/ellytic/onboard/internal/wizard"
)

// Upload is one document picked by the user.
type Upload struct {
	Name string
	Body io.Reader
}

type AttachDocuments struct {
	uploader ports.DocumentUploader
}

func NewAttachDocuments(u ports.DocumentUploader) *AttachDocuments {
	return &AttachDocuments{uploader: u}
}

// Execute uploads every document and then replaces the session's list for kind.
// The list is left untouched unless all uploads succeed. No uploads clears it.
// When an upload fails, the documents already stored by this call are removed.
func (uc *AttachDocuments) Execute(ctx context.Context, s *wizard.Session, kind domain.DocumentKind, uploads []Upload) ([]domain.FileRef, error) {
	if !domain.IsKnownDocumentKind(kind) {
		return nil, domain.InvalidInput("usecase.attach_documents", "unknown document kind %q", kind)
	}

	refs := make([]domain.FileRef, 0, len(uploads))
	for _, u := range uploads {
		if err := ctx.Err(); err != nil {
			return nil, uc.discard(refs, err)
		}
		ref, err := uc.uploader.Upload(ctx, kind, u.Name, u.Body)
		if err != nil {
			return nil, uc.discard(refs, err)
		}
		refs = append(refs, ref)
	}

	if err := s.SetFiles(kind, refs); err != nil {
		return nil, uc.discard(refs, err)
	}
	return refs, nil
}

// discard removes stored documents and returns cause joined with any removal failures.
func (uc *AttachDocuments) discard(refs []domain.FileRef, cause error) error {
	errs := []error{cause}
	for _, ref := range refs {
		// the caller's context may already be done
		if err := uc.uploader.Remove(context.Background(), ref); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", ref.Key, err))
		}
	}
	return errors.Join(errs...)
}
