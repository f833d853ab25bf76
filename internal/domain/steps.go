package domain

// StepKey identifies a wizard step.
type StepKey string

const (
	StepAudience     StepKey = "audience"
	StepBundle       StepKey = "bundle"
	StepRequirements StepKey = "requirements"
	StepPersonal     StepKey = "personal"
	StepMarriage     StepKey = "marriage"
	StepConsents     StepKey = "consents"
	StepUploads      StepKey = "uploads"
	StepBankOverview StepKey = "bank_overview"
	StepBankDocs     StepKey = "bank_docs"
	StepBankMobile   StepKey = "bank_mobile"
	StepReview       StepKey = "review"
)

// AllSteps is the full step order for the heaviest bundle.
func AllSteps() []StepKey {
	return []StepKey{
		StepAudience,
		StepBundle,
		StepRequirements,
		StepPersonal,
		StepMarriage,
		StepConsents,
		StepUploads,
		StepBankOverview,
		StepBankDocs,
		StepBankMobile,
		StepReview,
	}
}

// IsBankStep reports whether the step belongs to the bank-onboarding sub-flow.
func IsBankStep(k StepKey) bool {
	return k == StepBankOverview || k == StepBankDocs || k == StepBankMobile
}

// EffectiveSteps returns the step sequence for a bundle tier.
// The starter tier excludes bank onboarding, so its bank steps are dropped.
func EffectiveSteps(tier BundleTier) []StepKey {
	all := AllSteps()
	if tier != TierStarter {
		return all
	}
	out := make([]StepKey, 0, len(all))
	for _, k := range all {
		if IsBankStep(k) {
			continue
		}
		out = append(out, k)
	}
	return out
}

// IndexOf returns the position of k in steps, or -1.
func IndexOf(steps []StepKey, k StepKey) int {
	for i, s := range steps {
		if s == k {
			return i
		}
	}
	return -1
}

// Title is a short English label for logs and the terminal UI.
func (k StepKey) Title() string {
	switch k {
	case StepAudience:
		return "Who are you?"
	case StepBundle:
		return "Choose your products"
	case StepRequirements:
		return "AFM requirements"
	case StepPersonal:
		return "Personal details"
	case StepMarriage:
		return "Marriage"
	case StepConsents:
		return "Consents"
	case StepUploads:
		return "Upload documents (AFM)"
	case StepBankOverview:
		return "Bank account onboarding"
	case StepBankDocs:
		return "Bank documents"
	case StepBankMobile:
		return "Mobile phone for banking"
	case StepReview:
		return "Review & compliance check"
	default:
		return string(k)
	}
}
