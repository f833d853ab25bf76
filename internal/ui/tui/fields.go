package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/usecase"
)

type fieldKind int

const (
	fieldOption fieldKind = iota // single choice among siblings
	fieldCheck                   // multi choice among siblings
	fieldToggle
	fieldChoice
	fieldText
	fieldFiles
)

// field is one row of a wizard step.
type field struct {
	label string
	hint  string
	warn  string
	kind  fieldKind
	doc   domain.DocumentKind

	on    func(a domain.WizardAnswers) bool
	value func(a domain.WizardAnswers) string
	act   func(ctx context.Context, w *usecase.Wizard) error
	set   func(a *domain.WizardAnswers, v string)
}

func (f field) editable() bool { return f.kind == fieldText || f.kind == fieldFiles }

func toggle(label string, get func(a domain.WizardAnswers) bool, set func(a *domain.WizardAnswers, v bool)) field {
	return field{
		label: label,
		kind:  fieldToggle,
		on:    get,
		act: func(_ context.Context, w *usecase.Wizard) error {
			w.Session().Update(func(a *domain.WizardAnswers) { set(a, !get(*a)) })
			return nil
		},
	}
}

func choice(label string, choices []string, get func(a domain.WizardAnswers) string, set func(a *domain.WizardAnswers, v string)) field {
	return field{
		label: label,
		kind:  fieldChoice,
		value: get,
		act: func(_ context.Context, w *usecase.Wizard) error {
			w.Session().Update(func(a *domain.WizardAnswers) { set(a, nextChoice(choices, get(*a))) })
			return nil
		},
	}
}

func text(label string, get func(a domain.WizardAnswers) string, set func(a *domain.WizardAnswers, v string)) field {
	return field{label: label, kind: fieldText, value: get, set: set}
}

func files(label string, kind domain.DocumentKind) field {
	return field{
		label: label,
		kind:  fieldFiles,
		doc:   kind,
		value: func(a domain.WizardAnswers) string {
			refs := a.Files[kind]
			names := make([]string, 0, len(refs))
			for _, r := range refs {
				names = append(names, r.Name)
			}
			return strings.Join(names, ", ")
		},
	}
}

// nextChoice cycles through choices; an unset value starts at the first one.
func nextChoice(choices []string, cur string) string {
	for i, c := range choices {
		if c == cur {
			return choices[(i+1)%len(choices)]
		}
	}
	return choices[0]
}

func fieldsFor(step domain.StepKey, w *usecase.Wizard) []field {
	a := w.Session().Answers()

	switch step {
	case domain.StepAudience:
		out := make([]field, 0, len(domain.Audiences()))
		for _, aud := range domain.Audiences() {
			aud := aud
			out = append(out, field{
				label: string(aud),
				kind:  fieldOption,
				on:    func(a domain.WizardAnswers) bool { return a.Audience == aud },
				act: func(ctx context.Context, w *usecase.Wizard) error {
					return w.SelectAudience(ctx, aud)
				},
			})
		}
		return out

	case domain.StepBundle:
		if a.Audience == domain.AudienceProfessionals {
			return interestFields()
		}
		return productFields(w, a)

	case domain.StepRequirements:
		out := []field{
			choice("ID type", []string{domain.IDTypePassport, domain.IDTypeNational},
				func(a domain.WizardAnswers) string { return a.IDType },
				func(a *domain.WizardAnswers, v string) { a.IDType = v }),
			toggle("I have a valid ID", func(a domain.WizardAnswers) bool { return a.HasValidID },
				func(a *domain.WizardAnswers, v bool) { a.HasValidID = v }),
			toggle("I have my birth certificate", func(a domain.WizardAnswers) bool { return a.HasBirthCertificate },
				func(a *domain.WizardAnswers, v bool) { a.HasBirthCertificate = v }),
			toggle("I have proof of address", func(a domain.WizardAnswers) bool { return a.HasAddressProof },
				func(a *domain.WizardAnswers, v bool) { a.HasAddressProof = v }),
			toggle("Documents are less than 6 months old", func(a domain.WizardAnswers) bool { return a.RecentDocsConfirmed },
				func(a *domain.WizardAnswers, v bool) { a.RecentDocsConfirmed = v }),
			toggle("I am married", func(a domain.WizardAnswers) bool { return a.IsMarried },
				func(a *domain.WizardAnswers, v bool) { a.IsMarried = v }),
		}
		if a.IsMarried {
			out = append(out, toggle("I have my marriage certificate",
				func(a domain.WizardAnswers) bool { return a.HasMarriageCertificate },
				func(a *domain.WizardAnswers, v bool) { a.HasMarriageCertificate = v }))
		}
		return out

	case domain.StepPersonal:
		var out []field
		add := func(label string, get func(p domain.PersonalInfo) string, set func(p *domain.PersonalInfo, v string)) {
			out = append(out, text(label,
				func(a domain.WizardAnswers) string { return get(a.Personal) },
				func(a *domain.WizardAnswers, v string) { set(&a.Personal, v) }))
		}
		add("First name", func(p domain.PersonalInfo) string { return p.FirstName }, func(p *domain.PersonalInfo, v string) { p.FirstName = v })
		add("Last name", func(p domain.PersonalInfo) string { return p.LastName }, func(p *domain.PersonalInfo, v string) { p.LastName = v })
		add("Father's first name", func(p domain.PersonalInfo) string { return p.FatherFirstName }, func(p *domain.PersonalInfo, v string) { p.FatherFirstName = v })
		add("Father's last name", func(p domain.PersonalInfo) string { return p.FatherLastName }, func(p *domain.PersonalInfo, v string) { p.FatherLastName = v })
		add("Mother's first name", func(p domain.PersonalInfo) string { return p.MotherFirstName }, func(p *domain.PersonalInfo, v string) { p.MotherFirstName = v })
		add("Mother's last name", func(p domain.PersonalInfo) string { return p.MotherLastName }, func(p *domain.PersonalInfo, v string) { p.MotherLastName = v })
		add("Place of birth", func(p domain.PersonalInfo) string { return p.PlaceOfBirth }, func(p *domain.PersonalInfo, v string) { p.PlaceOfBirth = v })
		add("Date of birth (YYYY-MM-DD)", func(p domain.PersonalInfo) string { return p.DateOfBirth }, func(p *domain.PersonalInfo, v string) { p.DateOfBirth = v })
		add("Email", func(p domain.PersonalInfo) string { return p.Email }, func(p *domain.PersonalInfo, v string) { p.Email = v })
		add("Country of residence", func(p domain.PersonalInfo) string { return p.CurrentCountry }, func(p *domain.PersonalInfo, v string) { p.CurrentCountry = v })
		return out

	case domain.StepMarriage:
		out := []field{toggle("I am married", func(a domain.WizardAnswers) bool { return a.IsMarried },
			func(a *domain.WizardAnswers, v bool) { a.IsMarried = v })}
		if a.IsMarried {
			out = append(out, files("Marriage certificate", domain.DocMarriageCertificate))
		}
		return out

	case domain.StepConsents:
		return []field{
			toggle("I am acting on my own behalf", func(a domain.WizardAnswers) bool { return a.ConsentSelf },
				func(a *domain.WizardAnswers, v bool) { a.ConsentSelf = v }),
			toggle("Nobody is forcing me to apply", func(a domain.WizardAnswers) bool { return a.ConsentNoCoercion },
				func(a *domain.WizardAnswers, v bool) { a.ConsentNoCoercion = v }),
			toggle("My documents are genuine", func(a domain.WizardAnswers) bool { return a.ConsentGenuineDocs },
				func(a *domain.WizardAnswers, v bool) { a.ConsentGenuineDocs = v }),
			toggle("I accept the power of attorney", func(a domain.WizardAnswers) bool { return a.PoAAccepted },
				func(a *domain.WizardAnswers, v bool) { a.PoAAccepted = v }),
		}

	case domain.StepUploads:
		return []field{
			files("ID document", domain.DocIDDocument),
			files("Birth certificate", domain.DocBirthCertificate),
			files("Proof of address", domain.DocAddressProof),
		}

	case domain.StepBankDocs:
		out := []field{
			choice("Financial document", []string{domain.FinancialTaxClearance, domain.FinancialAnnualWageStatement},
				func(a domain.WizardAnswers) string { return a.Bank.FinancialDocType },
				func(a *domain.WizardAnswers, v string) { a.Bank.FinancialDocType = v }),
			files("Financial document upload", domain.DocFinancial),
			choice("Proof of address for the bank", []string{domain.AddressUtility, domain.AddressRegistration, domain.AddressOnID},
				func(a domain.WizardAnswers) string { return a.Bank.ProofOfAddressOption },
				func(a *domain.WizardAnswers, v string) { a.Bank.ProofOfAddressOption = v }),
		}
		if a.Bank.ProofOfAddressOption != domain.AddressOnID {
			out = append(out, files("Bank address document", domain.DocBankAddress))
		}
		return append(out,
			text("Employment (employer and role)",
				func(a domain.WizardAnswers) string { return a.Bank.EmploymentLine },
				func(a *domain.WizardAnswers, v string) { a.Bank.EmploymentLine = v }),
			files("Employer certificate", domain.DocEmployerCertificate),
		)

	case domain.StepBankMobile:
		out := []field{
			choice("Mobile phone", []string{domain.MobileEU, domain.MobileGreek},
				func(a domain.WizardAnswers) string { return a.Bank.MobileOption },
				func(a *domain.WizardAnswers, v string) { a.Bank.MobileOption = v }),
		}
		switch a.Bank.MobileOption {
		case domain.MobileEU:
			out = append(out, files("Mobile phone bill", domain.DocMobileBill))
		case domain.MobileGreek:
			out = append(out, toggle("I already have a Greek number",
				func(a domain.WizardAnswers) bool { return a.Bank.HasGreekNumber },
				func(a *domain.WizardAnswers, v bool) { a.Bank.HasGreekNumber = v }))
			if a.Bank.HasGreekNumber {
				out = append(out, files("Provider certificate", domain.DocProviderCertificate))
			}
		}
		return out
	}

	return nil
}

func interestFields() []field {
	out := make([]field, 0, len(domain.Interests()))
	for _, i := range domain.Interests() {
		i := i
		out = append(out, field{
			label: i.Label(),
			kind:  fieldCheck,
			on:    func(a domain.WizardAnswers) bool { return a.HasInterest(i) },
			act: func(ctx context.Context, w *usecase.Wizard) error {
				_, err := w.ToggleInterest(ctx, i)
				return err
			},
		})
	}
	return out
}

func productFields(w *usecase.Wizard, a domain.WizardAnswers) []field {
	s := w.Session()
	cat := s.Catalog()

	var out []field
	for _, c := range cat.Categories() {
		for _, p := range cat.ProductsByCategory(c) {
			p := p
			f := field{
				label: fmt.Sprintf("%s  %s", p.ID, p.Price.Display),
				hint:  string(p.Category),
				kind:  fieldCheck,
				on:    func(a domain.WizardAnswers) bool { return a.IsSelected(p.ID) },
				act: func(ctx context.Context, w *usecase.Wizard) error {
					_, err := w.ToggleProduct(ctx, p.ID)
					return err
				},
			}
			if cat.IsRecommended(p.ID, a.Audience) {
				f.hint += " · recommended"
			}
			if p.Fulfillment == domain.FulfillContactSales {
				f.hint += " · contact sales"
			}
			f.warn = s.SuitabilityWarning(p.ID)
			out = append(out, f)
		}
	}

	out = append(out, toggle("Couple service", func(a domain.WizardAnswers) bool { return a.IsCouple },
		func(a *domain.WizardAnswers, v bool) { a.IsCouple = v }))
	// the couple toggle swaps the selected bundle to its sibling variant
	out[len(out)-1].act = func(_ context.Context, w *usecase.Wizard) error {
		w.Session().SetCoupleService(!w.Session().Answers().IsCouple)
		return nil
	}
	return out
}
