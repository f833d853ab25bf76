package domain

// DocumentKind names an upload slot. The vocabulary is fixed.
type DocumentKind string

const (
	DocIDDocument          DocumentKind = "id_document"
	DocBirthCertificate    DocumentKind = "birth_certificate"
	DocAddressProof        DocumentKind = "address_proof"
	DocMarriageCertificate DocumentKind = "marriage_certificate"
	DocFinancial           DocumentKind = "financial_doc"
	DocBankAddress         DocumentKind = "address_doc"
	DocEmployerCertificate DocumentKind = "employer_certificate"
	DocMobileBill          DocumentKind = "mobile_bill"
	DocProviderCertificate DocumentKind = "provider_cert"
)

// DocumentKinds returns the full upload vocabulary.
func DocumentKinds() []DocumentKind {
	return []DocumentKind{
		DocIDDocument,
		DocBirthCertificate,
		DocAddressProof,
		DocMarriageCertificate,
		DocFinancial,
		DocBankAddress,
		DocEmployerCertificate,
		DocMobileBill,
		DocProviderCertificate,
	}
}

// IsKnownDocumentKind reports whether k belongs to the vocabulary.
func IsKnownDocumentKind(k DocumentKind) bool {
	for _, d := range DocumentKinds() {
		if d == k {
			return true
		}
	}
	return false
}

// FileRef points to a document registered by the upload collaborator.
type FileRef struct {
	Name string `json:"name" yaml:"name"`
	Key  string `json:"key,omitempty" yaml:"key"`
	Size int64  `json:"size,omitempty" yaml:"size"`
}

// ID types accepted for the AFM application.
const (
	IDTypePassport = "passport"
	IDTypeNational = "id"
)

// Bank sub-answer values.
const (
	FinancialTaxClearance        = "tax_clearance"
	FinancialAnnualWageStatement = "annual_wage_statement"

	AddressUtility      = "utility"
	AddressRegistration = "registration"
	AddressOnID         = "id_address"

	MobileEU    = "eu_number"
	MobileGreek = "greek_number"
)

// PersonalInfo holds identity fields for the AFM application.
type PersonalInfo struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	FatherFirstName string `json:"father_first_name"`
	FatherLastName  string `json:"father_last_name"`
	MotherFirstName string `json:"mother_first_name"`
	MotherLastName  string `json:"mother_last_name"`
	Sex             string `json:"sex"`
	PlaceOfBirth    string `json:"place_of_birth"`
	BirthRegion     string `json:"birth_region"`
	BirthZipCode    string `json:"birth_zip_code"`
	BirthCountry    string `json:"birth_country"`
	DateOfBirth     string `json:"date_of_birth"` // yyyy-mm-dd
	CurrentStreet   string `json:"current_street"`
	CurrentCity     string `json:"current_city"`
	CurrentZipCode  string `json:"current_zip_code"`
	CurrentCountry  string `json:"current_country"`
	Email           string `json:"email,omitempty"`
}

// BankOptions are the bank-onboarding sub-answers.
type BankOptions struct {
	FinancialDocType     string `json:"financial_doc_type"`
	ProofOfAddressOption string `json:"proof_of_address_option"`
	EmploymentLine       string `json:"employment_line"`
	MobileOption         string `json:"mobile_option"`
	HasGreekNumber       bool   `json:"has_greek_number"`
}

// ProfessionalAnswers is only meaningful for the professionals audience.
type ProfessionalAnswers struct {
	Interests []Interest `json:"interests"`
}

// WizardAnswers is everything a user has entered in one session.
type WizardAnswers struct {
	Audience         Audience            `json:"audience,omitempty"`
	SelectedProducts []ProductID         `json:"selected_products"`
	Professionals    ProfessionalAnswers `json:"professionals"`

	IsMarried              bool   `json:"is_married"`
	IsCouple               bool   `json:"is_couple"`
	IDType                 string `json:"id_type"`
	HasValidID             bool   `json:"has_valid_id"`
	HasBirthCertificate    bool   `json:"has_birth_certificate"`
	HasAddressProof        bool   `json:"has_address_proof"`
	RecentDocsConfirmed    bool   `json:"recent_docs_confirmed"`
	HasMarriageCertificate bool   `json:"has_marriage_certificate"`

	ConsentSelf        bool `json:"consent_self"`
	ConsentNoCoercion  bool `json:"consent_no_coercion"`
	ConsentGenuineDocs bool `json:"consent_genuine_docs"`
	PoAAccepted        bool `json:"poa_accepted"`

	Personal PersonalInfo               `json:"personal"`
	Files    map[DocumentKind][]FileRef `json:"files"`
	Bank     BankOptions                `json:"bank"`
}

// DefaultAnswers returns a fresh, empty answer set.
func DefaultAnswers() WizardAnswers {
	return WizardAnswers{
		SelectedProducts: []ProductID{},
		Professionals:    ProfessionalAnswers{Interests: []Interest{}},
		Files:            map[DocumentKind][]FileRef{},
	}
}

// Clone returns a deep copy (does NOT share slices or maps with the receiver).
func (a WizardAnswers) Clone() WizardAnswers {
	out := a

	out.SelectedProducts = make([]ProductID, len(a.SelectedProducts))
	copy(out.SelectedProducts, a.SelectedProducts)

	out.Professionals.Interests = make([]Interest, len(a.Professionals.Interests))
	copy(out.Professionals.Interests, a.Professionals.Interests)

	out.Files = make(map[DocumentKind][]FileRef, len(a.Files))
	for k, v := range a.Files {
		cp := make([]FileRef, len(v))
		copy(cp, v)
		out.Files[k] = cp
	}
	return out
}

// HasFiles reports whether at least one file is registered for the kind.
func (a WizardAnswers) HasFiles(k DocumentKind) bool {
	return len(a.Files[k]) > 0
}

// IsSelected reports whether the product is in the selection.
func (a WizardAnswers) IsSelected(id ProductID) bool {
	for _, s := range a.SelectedProducts {
		if s == id {
			return true
		}
	}
	return false
}

// HasInterest reports whether the interest tag is chosen.
func (a WizardAnswers) HasInterest(i Interest) bool {
	for _, s := range a.Professionals.Interests {
		if s == i {
			return true
		}
	}
	return false
}
