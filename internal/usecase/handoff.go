package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ellytic/onboard/internal/app/template"
	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/infra/logger"
	"github.com/ellytic/onboard/internal/ports"
)

// Handoff records the user leaving the wizard and forwards sales leads.
type Handoff struct {
	store  ports.HandoffStore
	leads  ports.LeadSubmitter
	routes domain.RoutesConfig
	now    func() time.Time
}

type HandoffOption func(*Handoff)

// WithLeadSubmitter forwards contact-sales hand-offs after they are stored.
func WithLeadSubmitter(l ports.LeadSubmitter) HandoffOption {
	return func(uc *Handoff) { uc.leads = l }
}

func WithHandoffClock(now func() time.Time) HandoffOption {
	return func(uc *Handoff) { uc.now = now }
}

func NewHandoff(store ports.HandoffStore, routes domain.RoutesConfig, opts ...HandoffOption) *Handoff {
	uc := &Handoff{store: store, routes: routes, now: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type HandoffResult struct {
	Handoff domain.Handoff

	// LeadRef is the reference returned by the leads endpoint, if any.
	LeadRef string
}

// Execute stores the hand-off for a routing decision. A blocked decision is
// rejected. When the lead submission fails the stored hand-off is still returned.
func (uc *Handoff) Execute(ctx context.Context, sessionID string, a domain.WizardAnswers, d domain.Decision) (HandoffResult, error) {
	const op = "usecase.handoff"

	var (
		base string
		msg  string
		err  error
	)
	switch d.Kind {
	case domain.DecisionContactSales:
		base = uc.routes.ContactSales
		if a.Audience == domain.AudienceProfessionals {
			msg, err = template.InterestsMessage(a.Professionals.Interests)
		} else {
			msg, err = template.ProductsMessage(a.SelectedProducts)
		}
		if err != nil {
			return HandoffResult{}, err
		}
	case domain.DecisionDirectCheckout:
		base = uc.routes.Checkout
	default:
		return HandoffResult{}, domain.InvalidInput(op, "decision is %s: %s", d.Kind, strings.Join(d.Missing, ", "))
	}

	h := domain.Handoff{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Kind:      d.Kind,
		URL:       d.URL(base),
		Context:   copyContext(d.Context),
		Audience:  a.Audience,
		Message:   msg,
		Contact:   contactFrom(a.Personal),
		CreatedAt: uc.now(),
	}

	id, err := uc.store.SaveHandoff(h)
	if err != nil {
		return HandoffResult{}, err
	}
	h.ID = id
	res := HandoffResult{Handoff: h}

	logger.L().Info("checkout.handoff",
		"session_id", sessionID,
		"handoff_id", id,
		"kind", string(d.Kind),
		"url", h.URL,
	)

	if d.Kind != domain.DecisionContactSales || uc.leads == nil {
		return res, nil
	}

	ref, err := uc.leads.SubmitLead(ctx, h)
	if err != nil {
		logger.L().Warn("checkout.lead.failed", "handoff_id", id, "err", err)
		return res, err
	}
	res.LeadRef = ref
	logger.L().Info("checkout.lead.submitted", "handoff_id", id, "ref", ref)
	return res, nil
}

func contactFrom(p domain.PersonalInfo) domain.Contact {
	country := p.CurrentCountry
	if country == "" {
		country = p.BirthCountry
	}
	return domain.Contact{
		Name:    strings.TrimSpace(p.FirstName + " " + p.LastName),
		Email:   strings.TrimSpace(p.Email),
		Country: country,
	}
}

func copyContext(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
