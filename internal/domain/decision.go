package domain

import (
	"net/url"
	"sort"
	"strings"
	"time"
)

// DecisionKind is the outcome of the checkout routing decision.
type DecisionKind string

const (
	DecisionBlocked        DecisionKind = "blocked"
	DecisionContactSales   DecisionKind = "contact_sales"
	DecisionDirectCheckout DecisionKind = "direct_checkout"
)

// Context payload keys shared with the checkout and contact-sales destinations.
const (
	CtxBundle    = "bundle"
	CtxAddons    = "addons"
	CtxAudience  = "audience"
	CtxProducts  = "products"
	CtxInterests = "interests"
	CtxSource    = "source"
)

// SourceWizardProducts marks hand-offs coming from the product selection step.
const SourceWizardProducts = "wizard_step2"

// Decision is where the user goes after the product selection (or review) step.
type Decision struct {
	Kind    DecisionKind
	Context map[string]string

	// Missing lists unmet requirements when Kind is DecisionBlocked.
	Missing []string
}

// Blocked reports whether the decision keeps the user on the current step.
func (d Decision) Blocked() bool { return d.Kind == DecisionBlocked }

// Values encodes the context payload as query parameters.
func (d Decision) Values() url.Values {
	v := url.Values{}
	keys := make([]string, 0, len(d.Context))
	for k := range d.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.Set(k, d.Context[k])
	}
	return v
}

// URL appends the encoded context to a destination base path.
func (d Decision) URL(base string) string {
	q := d.Values().Encode()
	if q == "" {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + q
}

// Handoff is the record of a user leaving the wizard for checkout or sales.
type Handoff struct {
	ID        string            `json:"id"`
	SessionID string            `json:"session_id"`
	Kind      DecisionKind      `json:"kind"`
	URL       string            `json:"url"`
	Context   map[string]string `json:"context"`
	Audience  Audience          `json:"audience,omitempty"`
	Message   string            `json:"message,omitempty"`
	Contact   Contact           `json:"contact"`
	CreatedAt time.Time         `json:"created_at"`
}

// Contact is the personal data attached to a hand-off.
type Contact struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Country string `json:"country,omitempty"`
}
