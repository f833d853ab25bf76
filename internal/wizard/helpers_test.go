package wizard

import (
	"testing"
	"time"

	"github.com/ellytic/onboard/internal/catalog"
	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/infra/yamlcatalog"
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

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithNow(func() time.Time { return fixedNow })}, opts...)
	return NewSession(testCatalog(t), opts...)
}

// completeAnswers satisfies every gate for the given bundle.
func completeAnswers(bundle domain.ProductID) domain.WizardAnswers {
	a := domain.DefaultAnswers()
	a.Audience = domain.AudienceExpats
	a.SelectedProducts = []domain.ProductID{bundle}

	a.HasValidID = true
	a.IDType = domain.IDTypePassport
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
	}

	a.ConsentSelf = true
	a.ConsentNoCoercion = true
	a.ConsentGenuineDocs = true

	for _, k := range []domain.DocumentKind{domain.DocIDDocument, domain.DocBirthCertificate, domain.DocAddressProof} {
		a.Files[k] = []domain.FileRef{{Name: string(k) + ".pdf"}}
	}

	a.Bank = domain.BankOptions{
		FinancialDocType:     domain.FinancialTaxClearance,
		ProofOfAddressOption: domain.AddressOnID,
		EmploymentLine:       "Software engineer at Acme",
		MobileOption:         domain.MobileGreek,
	}
	a.Files[domain.DocFinancial] = []domain.FileRef{{Name: "tax.pdf"}}
	a.Files[domain.DocEmployerCertificate] = []domain.FileRef{{Name: "employer.pdf"}}
	return a
}
