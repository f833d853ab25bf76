package yamlanswers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ellytic/onboard/internal/domain"
)

// MapAnswers validates enumerated values and builds the domain snapshot.
// Products are not checked against a catalog here.
func MapAnswers(path string, y YAMLAnswers) (domain.WizardAnswers, error) {
	a := domain.DefaultAnswers()

	if s := strings.TrimSpace(y.Audience); s != "" {
		aud, ok := domain.ParseAudience(s)
		if !ok {
			return domain.WizardAnswers{}, invalidField(path, "audience", fmt.Sprintf("unknown audience %q", y.Audience))
		}
		a.Audience = aud
	}

	for i, p := range y.Products {
		id := domain.ProductID(strings.TrimSpace(p))
		if id == "" {
			return domain.WizardAnswers{}, invalidField(path, fmt.Sprintf("products[%d]", i), "product id is required")
		}
		if !a.IsSelected(id) {
			a.SelectedProducts = append(a.SelectedProducts, id)
		}
	}

	for i, s := range y.Interests {
		in, ok := domain.ParseInterest(s)
		if !ok {
			return domain.WizardAnswers{}, invalidField(path, fmt.Sprintf("interests[%d]", i), fmt.Sprintf("unknown interest %q", s))
		}
		if !a.HasInterest(in) {
			a.Professionals.Interests = append(a.Professionals.Interests, in)
		}
	}

	a.IsCouple = y.Couple
	a.IsMarried = y.Married

	r := y.Requirements
	switch t := strings.TrimSpace(r.IDType); t {
	case "", domain.IDTypePassport, domain.IDTypeNational:
		a.IDType = t
	default:
		return domain.WizardAnswers{}, invalidField(path, "requirements.id_type", fmt.Sprintf("unsupported id type %q", r.IDType))
	}
	a.HasValidID = r.ValidID
	a.HasBirthCertificate = r.BirthCertificate
	a.HasAddressProof = r.AddressProof
	a.RecentDocsConfirmed = r.RecentDocsConfirmed
	a.HasMarriageCertificate = r.MarriageCertificate

	a.ConsentSelf = y.Consents.Self
	a.ConsentNoCoercion = y.Consents.NoCoercion
	a.ConsentGenuineDocs = y.Consents.GenuineDocs
	a.PoAAccepted = y.Consents.PoA

	p := y.Personal
	a.Personal = domain.PersonalInfo{
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		FatherFirstName: p.FatherFirstName,
		FatherLastName:  p.FatherLastName,
		MotherFirstName: p.MotherFirstName,
		MotherLastName:  p.MotherLastName,
		Sex:             p.Sex,
		PlaceOfBirth:    p.PlaceOfBirth,
		BirthRegion:     p.BirthRegion,
		BirthZipCode:    p.BirthZipCode,
		BirthCountry:    p.BirthCountry,
		DateOfBirth:     p.DateOfBirth,
		CurrentStreet:   p.CurrentStreet,
		CurrentCity:     p.CurrentCity,
		CurrentZipCode:  p.CurrentZipCode,
		CurrentCountry:  p.CurrentCountry,
		Email:           p.Email,
	}

	kinds := make([]string, 0, len(y.Files))
	for k := range y.Files {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		kind := domain.DocumentKind(k)
		if !domain.IsKnownDocumentKind(kind) {
			return domain.WizardAnswers{}, invalidField(path, "files."+k, "unknown document kind")
		}
		refs := make([]domain.FileRef, 0, len(y.Files[k]))
		for i, f := range y.Files[k] {
			if strings.TrimSpace(f.Name) == "" {
				return domain.WizardAnswers{}, invalidField(path, fmt.Sprintf("files.%s[%d].name", k, i), "file name is required")
			}
			refs = append(refs, domain.FileRef{Name: f.Name, Key: f.Key, Size: f.Size})
		}
		if len(refs) > 0 {
			a.Files[kind] = refs
		}
	}

	b := y.Bank
	if err := oneOf(path, "bank.financial_doc_type", b.FinancialDocType, domain.FinancialTaxClearance, domain.FinancialAnnualWageStatement); err != nil {
		return domain.WizardAnswers{}, err
	}
	if err := oneOf(path, "bank.proof_of_address_option", b.ProofOfAddressOption, domain.AddressUtility, domain.AddressRegistration, domain.AddressOnID); err != nil {
		return domain.WizardAnswers{}, err
	}
	if err := oneOf(path, "bank.mobile_option", b.MobileOption, domain.MobileEU, domain.MobileGreek); err != nil {
		return domain.WizardAnswers{}, err
	}
	a.Bank = domain.BankOptions{
		FinancialDocType:     b.FinancialDocType,
		ProofOfAddressOption: b.ProofOfAddressOption,
		EmploymentLine:       b.EmploymentLine,
		MobileOption:         b.MobileOption,
		HasGreekNumber:       b.HasGreekNumber,
	}

	return a, nil
}

func oneOf(path, field, v string, allowed ...string) error {
	if v == "" {
		return nil
	}
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return invalidField(path, field, fmt.Sprintf("unsupported value %q (want one of %s)", v, strings.Join(allowed, ", ")))
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlanswers.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
