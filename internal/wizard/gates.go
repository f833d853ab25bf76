package wizard

import (
	"strings"
	"time"

	"github.com/ellytic/onboard/internal/domain"
)

// Env is the context a gate is evaluated in.
type Env struct {
	Now  time.Time
	Tier domain.BundleTier
}

// Gate returns the labels of unmet requirements. Empty means the step passes.
type Gate func(a domain.WizardAnswers, env Env) []string

// Missing-item labels.
const (
	LabelAudience     = "Audience selection"
	LabelNoProducts   = "Select at least one product"
	LabelNoInterests  = "Select at least one interest"
	LabelValidID      = "Valid ID"
	LabelBirthCert    = "Birth certificate"
	LabelAddressProof = "Proof of address"
	LabelRecentDocs   = "6-months doc freshness confirmation"
	LabelMarriageCert = "Marriage certificate"

	LabelDateOfBirth = "Date of birth"
	LabelAdult       = "Age 18+"

	LabelMarriageUpload = "Marriage certificate upload"

	LabelConsentSelf     = "Consent: acting on your own behalf"
	LabelConsentCoercion = "Consent: no coercion"
	LabelConsentGenuine  = "Consent: genuine documents"

	LabelIDUpload      = "ID document upload"
	LabelBirthUpload   = "Birth certificate upload"
	LabelAddressUpload = "Address proof upload"

	LabelFinancialType     = "Financial document selection"
	LabelFinancialUpload   = "Financial document upload"
	LabelBankAddressUpload = "Bank address document upload"
	LabelEmployerText      = "Employer certificate text"
	LabelEmployerUpload    = "Employer certificate upload"
	LabelMobileOption      = "Mobile phone option"
	LabelMobileBill        = "Mobile phone bill upload"
	LabelProviderCert      = "Provider certificate upload"
)

// MinimumAge is the youngest applicant accepted for an AFM application.
const MinimumAge = 18

var gates = map[domain.StepKey]Gate{
	domain.StepAudience:     audienceGate,
	domain.StepBundle:       selectionGate,
	domain.StepRequirements: requirementsGate,
	domain.StepPersonal:     personalGate,
	domain.StepMarriage:     marriageGate,
	domain.StepConsents:     consentsGate,
	domain.StepUploads:      uploadsGate,
	domain.StepBankDocs:     bankDocsGate,
	domain.StepBankMobile:   bankMobileGate,
}

// MissingFor evaluates the gate of one step. The review step aggregates every
// step that precedes it in the effective sequence, in order and without
// duplicates.
func MissingFor(step domain.StepKey, a domain.WizardAnswers, env Env) []string {
	if step != domain.StepReview {
		if g, ok := gates[step]; ok {
			return g(a, env)
		}
		return nil
	}

	var out []string
	seen := map[string]bool{}
	for _, k := range domain.EffectiveSteps(env.Tier) {
		if k == domain.StepReview {
			break
		}
		for _, m := range MissingFor(k, a, env) {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}

func audienceGate(a domain.WizardAnswers, _ Env) []string {
	if a.Audience == "" {
		return []string{LabelAudience}
	}
	return nil
}

func selectionGate(a domain.WizardAnswers, _ Env) []string {
	if a.Audience == domain.AudienceProfessionals {
		if len(a.Professionals.Interests) == 0 {
			return []string{LabelNoInterests}
		}
		return nil
	}
	if len(a.SelectedProducts) == 0 {
		return []string{LabelNoProducts}
	}
	return nil
}

func requirementsGate(a domain.WizardAnswers, _ Env) []string {
	var m []string
	if !a.HasValidID || a.IDType == "" {
		m = append(m, LabelValidID)
	}
	if !a.HasBirthCertificate {
		m = append(m, LabelBirthCert)
	}
	if !a.HasAddressProof {
		m = append(m, LabelAddressProof)
	}
	if !a.RecentDocsConfirmed {
		m = append(m, LabelRecentDocs)
	}
	if a.IsMarried && !a.HasMarriageCertificate {
		m = append(m, LabelMarriageCert)
	}
	return m
}

func personalGate(a domain.WizardAnswers, env Env) []string {
	p := a.Personal
	fields := []struct {
		label string
		value string
	}{
		{"First name", p.FirstName},
		{"Last name", p.LastName},
		{"Father's first name", p.FatherFirstName},
		{"Father's last name", p.FatherLastName},
		{"Mother's first name", p.MotherFirstName},
		{"Mother's last name", p.MotherLastName},
		{"Place of birth", p.PlaceOfBirth},
	}

	var m []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			m = append(m, f.label)
		}
	}

	dob, err := time.Parse(time.DateOnly, strings.TrimSpace(p.DateOfBirth))
	switch {
	case err != nil:
		m = append(m, LabelDateOfBirth)
	case Age(dob, env.Now) < MinimumAge:
		m = append(m, LabelAdult)
	}
	return m
}

func marriageGate(a domain.WizardAnswers, _ Env) []string {
	if a.IsMarried && !a.HasFiles(domain.DocMarriageCertificate) {
		return []string{LabelMarriageUpload}
	}
	return nil
}

func consentsGate(a domain.WizardAnswers, _ Env) []string {
	var m []string
	if !a.ConsentSelf {
		m = append(m, LabelConsentSelf)
	}
	if !a.ConsentNoCoercion {
		m = append(m, LabelConsentCoercion)
	}
	if !a.ConsentGenuineDocs {
		m = append(m, LabelConsentGenuine)
	}
	return m
}

func uploadsGate(a domain.WizardAnswers, _ Env) []string {
	var m []string
	if !a.HasFiles(domain.DocIDDocument) {
		m = append(m, LabelIDUpload)
	}
	if !a.HasFiles(domain.DocBirthCertificate) {
		m = append(m, LabelBirthUpload)
	}
	if !a.HasFiles(domain.DocAddressProof) {
		m = append(m, LabelAddressUpload)
	}
	return m
}

// Bank gates only apply when bank onboarding is part of the bundle.
func bankDocsGate(a domain.WizardAnswers, env Env) []string {
	if env.Tier != domain.TierFull {
		return nil
	}
	b := a.Bank

	var m []string
	if b.FinancialDocType == "" {
		m = append(m, LabelFinancialType)
	}
	if !a.HasFiles(domain.DocFinancial) {
		m = append(m, LabelFinancialUpload)
	}
	if b.ProofOfAddressOption != domain.AddressOnID && !a.HasFiles(domain.DocBankAddress) {
		m = append(m, LabelBankAddressUpload)
	}
	if strings.TrimSpace(b.EmploymentLine) == "" {
		m = append(m, LabelEmployerText)
	}
	if !a.HasFiles(domain.DocEmployerCertificate) {
		m = append(m, LabelEmployerUpload)
	}
	return m
}

func bankMobileGate(a domain.WizardAnswers, env Env) []string {
	if env.Tier != domain.TierFull {
		return nil
	}
	b := a.Bank

	switch b.MobileOption {
	case domain.MobileEU:
		if !a.HasFiles(domain.DocMobileBill) {
			return []string{LabelMobileBill}
		}
	case domain.MobileGreek:
		if b.HasGreekNumber && !a.HasFiles(domain.DocProviderCertificate) {
			return []string{LabelProviderCert}
		}
	default:
		return []string{LabelMobileOption}
	}
	return nil
}

// Age returns the completed years between dob and now.
func Age(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}
