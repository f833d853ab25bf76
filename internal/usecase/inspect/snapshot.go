// Package inspect evaluates JSONPath queries and expectations against a JSON
// view of a wizard session.
package inspect

import (
	"encoding/json"

	"github.com/ellytic/onboard/internal/checkout"
	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/wizard"
)

// Snapshot is the JSON document queries run against.
type Snapshot struct {
	SessionID   string               `json:"session_id,omitempty"`
	Step        domain.StepKey       `json:"step"`
	Steps       []domain.StepKey     `json:"steps"`
	Tier        domain.BundleTier    `json:"tier"`
	Answers     domain.WizardAnswers `json:"answers"`
	Recommended []domain.ProductID   `json:"recommended"`
	Missing     []string             `json:"missing"`
	Decision    DecisionView         `json:"decision"`
}

type DecisionView struct {
	Kind    domain.DecisionKind `json:"kind"`
	Context map[string]string   `json:"context"`
	Missing []string            `json:"missing"`
	URL     string              `json:"url,omitempty"`
}

// Take captures the session: the review aggregation as Missing and the
// routing decision with its destination URL.
func Take(s *wizard.Session, routes domain.RoutesConfig) Snapshot {
	a := s.Answers()
	cat := s.Catalog()

	recs := []domain.ProductID{}
	for _, p := range cat.Recommended(a.Audience) {
		recs = append(recs, p.ID)
	}

	missing := s.Missing(domain.StepReview)
	if missing == nil {
		missing = []string{}
	}

	d := checkout.Decide(a, cat)
	view := DecisionView{Kind: d.Kind, Context: d.Context, Missing: d.Missing}
	if view.Context == nil {
		view.Context = map[string]string{}
	}
	if view.Missing == nil {
		view.Missing = []string{}
	}
	switch d.Kind {
	case domain.DecisionContactSales:
		view.URL = d.URL(routes.ContactSales)
	case domain.DecisionDirectCheckout:
		view.URL = d.URL(routes.Checkout)
	}

	return Snapshot{
		SessionID:   s.ID(),
		Step:        s.Step(),
		Steps:       s.Steps(),
		Tier:        s.Tier(),
		Answers:     a,
		Recommended: recs,
		Missing:     missing,
		Decision:    view,
	}
}

// Document converts the snapshot into the generic form jsonpath walks.
func (s Snapshot) Document() (any, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
