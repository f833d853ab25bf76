package domain

import "strings"

// Audience is the customer segment chosen in the first wizard step.
type Audience string

const (
	AudienceHomeBuyers    Audience = "homeBuyers"
	AudienceDiasporaHeirs Audience = "diasporaHeirs"
	AudienceExpats        Audience = "expats"
	AudienceHomeOwners    Audience = "homeOwners"
	AudienceInvestors     Audience = "investors"
	AudienceProfessionals Audience = "professionals"
)

// Audiences returns every audience in display order.
func Audiences() []Audience {
	return []Audience{
		AudienceHomeBuyers,
		AudienceDiasporaHeirs,
		AudienceExpats,
		AudienceHomeOwners,
		AudienceInvestors,
		AudienceProfessionals,
	}
}

// ParseAudience matches an audience token case-insensitively.
func ParseAudience(s string) (Audience, bool) {
	in := strings.TrimSpace(s)
	for _, a := range Audiences() {
		if strings.EqualFold(string(a), in) {
			return a, true
		}
	}
	return "", false
}

// Interest is a B2B interest tag offered to professionals instead of the catalog.
type Interest string

const (
	InterestAPI      Interest = "api"
	InterestBulk     Interest = "bulk"
	InterestReferral Interest = "referral"
)

// Interests returns the interest vocabulary in display order.
func Interests() []Interest {
	return []Interest{InterestAPI, InterestBulk, InterestReferral}
}

// Label is the human readable name used in the contact-sales message.
func (i Interest) Label() string {
	switch i {
	case InterestAPI:
		return "B2B API License"
	case InterestBulk:
		return "Bulk B2B Transactions"
	case InterestReferral:
		return "Referral Program (B2B Lite)"
	default:
		return string(i)
	}
}

// ParseInterest validates an interest tag.
func ParseInterest(s string) (Interest, bool) {
	in := strings.ToLower(strings.TrimSpace(s))
	for _, i := range Interests() {
		if string(i) == in {
			return i, true
		}
	}
	return "", false
}
