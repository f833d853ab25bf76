package yamlanswers

// YAMLAnswers is the on-disk shape of a wizard answers snapshot.
type YAMLAnswers struct {
	Audience  string   `yaml:"audience"`
	Products  []string `yaml:"products"`
	Interests []string `yaml:"interests"`
	Couple    bool     `yaml:"couple"`
	Married   bool     `yaml:"married"`

	Requirements YAMLRequirements      `yaml:"requirements"`
	Consents     YAMLConsents          `yaml:"consents"`
	Personal     YAMLPersonal          `yaml:"personal"`
	Files        map[string][]YAMLFile `yaml:"files"`
	Bank         YAMLBank              `yaml:"bank"`
}

type YAMLRequirements struct {
	IDType              string `yaml:"id_type"`
	ValidID             bool   `yaml:"valid_id"`
	BirthCertificate    bool   `yaml:"birth_certificate"`
	AddressProof        bool   `yaml:"address_proof"`
	RecentDocsConfirmed bool   `yaml:"recent_docs_confirmed"`
	MarriageCertificate bool   `yaml:"marriage_certificate"`
}

type YAMLConsents struct {
	Self        bool `yaml:"self"`
	NoCoercion  bool `yaml:"no_coercion"`
	GenuineDocs bool `yaml:"genuine_docs"`
	PoA         bool `yaml:"poa"`
}

type YAMLPersonal struct {
	FirstName       string `yaml:"first_name"`
	LastName        string `yaml:"last_name"`
	FatherFirstName string `yaml:"father_first_name"`
	FatherLastName  string `yaml:"father_last_name"`
	MotherFirstName string `yaml:"mother_first_name"`
	MotherLastName  string `yaml:"mother_last_name"`
	Sex             string `yaml:"sex"`
	PlaceOfBirth    string `yaml:"place_of_birth"`
	BirthRegion     string `yaml:"birth_region"`
	BirthZipCode    string `yaml:"birth_zip_code"`
	BirthCountry    string `yaml:"birth_country"`
	DateOfBirth     string `yaml:"date_of_birth"`
	CurrentStreet   string `yaml:"current_street"`
	CurrentCity     string `yaml:"current_city"`
	CurrentZipCode  string `yaml:"current_zip_code"`
	CurrentCountry  string `yaml:"current_country"`
	Email           string `yaml:"email"`
}

type YAMLFile struct {
	Name string `yaml:"name"`
	Key  string `yaml:"key"`
	Size int64  `yaml:"size"`
}

type YAMLBank struct {
	FinancialDocType     string `yaml:"financial_doc_type"`
	ProofOfAddressOption string `yaml:"proof_of_address_option"`
	EmploymentLine       string `yaml:"employment_line"`
	MobileOption         string `yaml:"mobile_option"`
	HasGreekNumber       bool   `yaml:"has_greek_number"`
}
