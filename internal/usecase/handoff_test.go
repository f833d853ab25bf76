package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ellytic/onboard/internal/domain"
)

func newHandoff(store *fakeStore, opts ...HandoffOption) *Handoff {
	opts = append([]HandoffOption{WithHandoffClock(func() time.Time { return fixedNow })}, opts...)
	return NewHandoff(store, domain.DefaultConfig().Routes, opts...)
}

func TestHandoff_DirectCheckout(t *testing.T) {
	store := &fakeStore{}
	leads := &fakeLeads{ref: "never"}
	uc := newHandoff(store, WithLeadSubmitter(leads))

	a := readyForReview("full_couple")
	d := domain.Decision{Kind: domain.DecisionDirectCheckout, Context: map[string]string{domain.CtxBundle: "full_couple"}}

	res, err := uc.Execute(context.Background(), "sess-1", a, d)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	h := res.Handoff
	if h.ID != "stored-sess-1" || h.URL != "/checkout?bundle=full_couple" {
		t.Fatalf("unexpected handoff %+v", h)
	}
	if h.Message != "" || !h.CreatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected message/time %+v", h)
	}
	if h.Contact.Name != "Eleni Papadopoulou" || h.Contact.Country != "AU" {
		t.Fatalf("unexpected contact %+v", h.Contact)
	}
	if len(leads.got) != 0 {
		t.Fatalf("checkout hand-offs are not leads")
	}

	d.Context["mutated"] = "x"
	if _, ok := store.saved[0].Context["mutated"]; ok {
		t.Fatalf("stored context shares the decision map")
	}
}

func TestHandoff_ProfessionalsLead(t *testing.T) {
	store := &fakeStore{}
	leads := &fakeLeads{ref: "L-7"}
	uc := newHandoff(store, WithLeadSubmitter(leads))

	a := domain.DefaultAnswers()
	a.Audience = domain.AudienceProfessionals
	a.Professionals.Interests = []domain.Interest{domain.InterestBulk}
	d := domain.Decision{Kind: domain.DecisionContactSales, Context: map[string]string{
		domain.CtxAudience:  "professionals",
		domain.CtxInterests: "bulk",
	}}

	res, err := uc.Execute(context.Background(), "sess-2", a, d)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.LeadRef != "L-7" || len(leads.got) != 1 {
		t.Fatalf("expected submitted lead, got %+v", res)
	}
	if !strings.Contains(res.Handoff.Message, "Bulk B2B Transactions") {
		t.Fatalf("unexpected message %q", res.Handoff.Message)
	}
	if res.Handoff.URL != "/contact-sales?audience=professionals&interests=bulk" {
		t.Fatalf("unexpected url %q", res.Handoff.URL)
	}
}

func TestHandoff_LeadFailureKeepsStoredHandoff(t *testing.T) {
	store := &fakeStore{}
	boom := errors.New("leads down")
	uc := newHandoff(store, WithLeadSubmitter(&fakeLeads{err: boom}))

	a := domain.DefaultAnswers()
	a.Audience = domain.AudienceInvestors
	a.SelectedProducts = []domain.ProductID{"due_diligence"}
	d := domain.Decision{Kind: domain.DecisionContactSales, Context: map[string]string{domain.CtxProducts: "due_diligence"}}

	res, err := uc.Execute(context.Background(), "sess-3", a, d)
	if !errors.Is(err, boom) {
		t.Fatalf("expected lead error, got %v", err)
	}
	if res.Handoff.ID == "" || len(store.saved) != 1 {
		t.Fatalf("expected hand-off stored before submission")
	}
	if !strings.Contains(res.Handoff.Message, "due_diligence") {
		t.Fatalf("unexpected message %q", res.Handoff.Message)
	}
}

func TestHandoff_Rejects(t *testing.T) {
	store := &fakeStore{}
	uc := newHandoff(store)

	d := domain.Decision{Kind: domain.DecisionBlocked, Missing: []string{"select at least one product"}}
	if _, err := uc.Execute(context.Background(), "s", domain.DefaultAnswers(), d); !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected invalid_input for blocked decision, got %v", err)
	}

	store.err = errors.New("disk full")
	d = domain.Decision{Kind: domain.DecisionDirectCheckout, Context: map[string]string{domain.CtxBundle: "translation"}}
	if _, err := uc.Execute(context.Background(), "s", domain.DefaultAnswers(), d); err == nil {
		t.Fatalf("expected store error")
	}
}
