package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/ellytic/onboard/internal/catalog"
	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/infra/yamlcatalog"
	"github.com/ellytic/onboard/internal/wizard"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := yamlcatalog.Default()
	if err != nil {
		t.Fatalf("Default catalog: %v", err)
	}
	return c
}

func newSession(t *testing.T, opts ...wizard.Option) *wizard.Session {
	t.Helper()
	opts = append([]wizard.Option{
		wizard.WithID("sess-1"),
		wizard.WithNow(func() time.Time { return fixedNow }),
	}, opts...)
	return wizard.NewSession(testCatalog(t), opts...)
}

func readyForReview(bundle domain.ProductID) domain.WizardAnswers {
	a := domain.DefaultAnswers()
	a.Audience = domain.AudienceExpats
	a.SelectedProducts = []domain.ProductID{bundle}
	a.HasValidID = true
	a.IDType = domain.IDTypeNational
	a.HasBirthCertificate = true
	a.HasAddressProof = true
	a.RecentDocsConfirmed = true
	a.Personal = domain.PersonalInfo{
		FirstName:       "Eleni",
		LastName:        "Papadopoulou",
		FatherFirstName: "Nikos",
		FatherLastName:  "Papadopoulos",
		MotherFirstName: "Maria",
		MotherLastName:  "Georgiou",
		PlaceOfBirth:    "Melbourne",
		DateOfBirth:     "1990-03-01",
		Email:           "eleni@example.gr",
		CurrentCountry:  "AU",
	}
	a.ConsentSelf = true
	a.ConsentNoCoercion = true
	a.ConsentGenuineDocs = true
	for _, k := range []domain.DocumentKind{domain.DocIDDocument, domain.DocBirthCertificate, domain.DocAddressProof} {
		a.Files[k] = []domain.FileRef{{Name: string(k) + ".pdf"}}
	}
	return a
}

type fakeStore struct {
	mu    sync.Mutex
	saved []domain.Handoff
	err   error
}

func (f *fakeStore) SaveHandoff(h domain.Handoff) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, h)
	return "stored-" + h.SessionID, nil
}

type fakeLeads struct {
	got []domain.Handoff
	ref string
	err error
}

func (f *fakeLeads) SubmitLead(_ context.Context, h domain.Handoff) (string, error) {
	f.got = append(f.got, h)
	return f.ref, f.err
}

type fakeUploader struct {
	calls  int
	failAt int // 1-based; 0 never fails

	removed   []string
	removeErr error
}

var errUploadFailed = errors.New("upload failed")

func (f *fakeUploader) Upload(_ context.Context, kind domain.DocumentKind, name string, r io.Reader) (domain.FileRef, error) {
	f.calls++
	if f.failAt == f.calls {
		return domain.FileRef{}, errUploadFailed
	}
	b, _ := io.ReadAll(r)
	return domain.FileRef{Name: name, Key: string(kind) + "/" + name, Size: int64(len(b))}, nil
}

func (f *fakeUploader) Remove(_ context.Context, ref domain.FileRef) error {
	f.removed = append(f.removed, ref.Key)
	return f.removeErr
}
