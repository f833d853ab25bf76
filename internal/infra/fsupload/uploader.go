// Package fsupload keeps uploaded documents in the workspace.
package fsupload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/ports"
)

// DefaultMaxSize caps a single document.
const DefaultMaxSize = 10 << 20

// Uploader copies documents under <root>/.onboard/uploads/<kind>/.
type Uploader struct {
	root    string
	maxSize int64
}

type Option func(*Uploader)

func WithMaxSize(n int64) Option {
	return func(u *Uploader) { u.maxSize = n }
}

func New(root string, opts ...Option) *Uploader {
	u := &Uploader{root: root, maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

var _ ports.DocumentUploader = (*Uploader)(nil)

// Upload writes r to a uniquely named file. The returned key is relative to the
// uploads directory and uses forward slashes.
func (u *Uploader) Upload(ctx context.Context, kind domain.DocumentKind, name string, r io.Reader) (domain.FileRef, error) {
	const op = "fsupload.upload"

	if !domain.IsKnownDocumentKind(kind) {
		return domain.FileRef{}, domain.InvalidInput(op, "unknown document kind %q", kind)
	}
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return domain.FileRef{}, domain.InvalidInput(op, "document name is empty")
	}
	if err := ctx.Err(); err != nil {
		return domain.FileRef{}, err
	}

	dir := filepath.Join(u.root, ".onboard", "uploads", string(kind))
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return domain.FileRef{}, &domain.OpError{Op: op, Kind: domain.KindExecution, Path: dir, Err: err}
	}

	stored := uuid.NewString()[:8] + "_" + base
	dst := filepath.Join(dir, stored)

	tmp, err := os.CreateTemp(dir, "."+stored+".tmp-*")
	if err != nil {
		return domain.FileRef{}, &domain.OpError{Op: op, Kind: domain.KindExecution, Path: dir, Err: err}
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	n, err := io.Copy(tmp, io.LimitReader(r, u.maxSize+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return domain.FileRef{}, &domain.OpError{Op: op, Kind: domain.KindExecution, Path: dst, Err: err}
	}
	if n > u.maxSize {
		return domain.FileRef{}, domain.InvalidInput(op, "document %q exceeds %d bytes", base, u.maxSize)
	}
	if n == 0 {
		return domain.FileRef{}, domain.InvalidInput(op, "document %q is empty", base)
	}

	if err := os.Rename(tmpName, dst); err != nil {
		return domain.FileRef{}, &domain.OpError{Op: op, Kind: domain.KindExecution, Path: dst, Err: fmt.Errorf("rename: %w", err)}
	}

	return domain.FileRef{
		Name: base,
		Key:  path.Join(string(kind), stored),
		Size: n,
	}, nil
}

// Remove deletes the file behind ref.Key. Keys must have the <kind>/<file>
// shape Upload returns.
func (u *Uploader) Remove(ctx context.Context, ref domain.FileRef) error {
	const op = "fsupload.remove"

	if err := ctx.Err(); err != nil {
		return err
	}
	kind, file, ok := strings.Cut(ref.Key, "/")
	if !ok || path.Clean(ref.Key) != ref.Key || strings.Contains(file, "/") ||
		file == "" || file == "." || file == ".." || !domain.IsKnownDocumentKind(domain.DocumentKind(kind)) {
		return domain.InvalidInput(op, "invalid upload key %q", ref.Key)
	}

	p := filepath.Join(u.root, ".onboard", "uploads", kind, file)
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &domain.OpError{Op: op, Kind: domain.KindExecution, Path: p, Err: err}
	}
	return nil
}
