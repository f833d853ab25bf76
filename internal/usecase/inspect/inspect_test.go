package inspect

import (
	"strings"
	"testing"
	"time"

	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/infra/yamlcatalog"
	"github.com/ellytic/onboard/internal/wizard"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func snapshotDoc(t *testing.T, fn func(s *wizard.Session)) any {
	t.Helper()
	cat, err := yamlcatalog.Default()
	if err != nil {
		t.Fatalf("Default catalog: %v", err)
	}
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	s := wizard.NewSession(cat, wizard.WithID("sess-1"), wizard.WithNow(func() time.Time { return now }))
	fn(s)
	doc, err := Take(s, domain.DefaultConfig().Routes).Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	return doc
}

func TestQuery_DirectCheckout(t *testing.T) {
	doc := snapshotDoc(t, func(s *wizard.Session) {
		_ = s.SelectAudience(domain.AudienceExpats)
		_ = s.AddProduct("starter_single")
	})

	values, results := Query(doc, map[string]string{
		"kind":   "$.decision.kind",
		"bundle": "$.decision.context.bundle",
		"url":    "$.decision.url",
		"tier":   "$.tier",
		"nope":   "$.decision.context.nope",
		"empty":  "  ",
	})

	if values["kind"] != "direct_checkout" {
		t.Fatalf("expected direct_checkout, got %q", values["kind"])
	}
	if values["bundle"] != "starter_single" || values["tier"] != "starter" {
		t.Fatalf("unexpected values %v", values)
	}
	if values["url"] != "/checkout?bundle=starter_single" {
		t.Fatalf("unexpected url %q", values["url"])
	}

	if len(results) != 6 || results[0].Name != "bundle" {
		t.Fatalf("expected results sorted by name, got %+v", results)
	}
	for _, r := range results {
		if (r.Name == "nope" || r.Name == "empty") == r.Success {
			t.Fatalf("unexpected outcome for %s: %+v", r.Name, r)
		}
	}
}

func TestQuery_RendersArrays(t *testing.T) {
	doc := snapshotDoc(t, func(s *wizard.Session) {
		_ = s.SelectAudience(domain.AudienceProfessionals)
		_, _ = s.ToggleInterest(domain.InterestAPI)
		_, _ = s.ToggleInterest(domain.InterestBulk)
	})

	values, _ := Query(doc, map[string]string{
		"interests": "$.answers.professionals.interests",
		"first":     "$.answers.professionals.interests[0]",
	})
	if values["interests"] != `["api","bulk"]` {
		t.Fatalf("expected JSON array, got %q", values["interests"])
	}
	if values["first"] != "api" {
		t.Fatalf("expected api, got %q", values["first"])
	}
}

func TestEvaluate(t *testing.T) {
	doc := snapshotDoc(t, func(s *wizard.Session) {
		_ = s.SelectAudience(domain.AudienceInvestors)
		_ = s.AddProduct("investment_analysis")
	})

	results := Evaluate(doc, []Expectation{
		{Path: "$.decision.kind", Exists: true, Eq: strPtr("contact_sales")},
		{Path: "$.decision.context.source", Eq: strPtr(domain.SourceWizardProducts)},
		{Path: "$.decision.url", Contains: strPtr("/contact-sales?"), Matches: strPtr(`products=investment_analysis`)},
		{Path: "$.steps", Len: intPtr(len(domain.AllSteps()))},
	})
	if !AllPassed(results) {
		t.Fatalf("expected all checks to pass, got %+v", results)
	}
	if len(results) != 6 {
		t.Fatalf("expected 6 checks, got %d", len(results))
	}
}

func TestEvaluate_Failures(t *testing.T) {
	doc := snapshotDoc(t, func(s *wizard.Session) {})

	results := Evaluate(doc, []Expectation{
		{Path: "$.decision.kind", Eq: strPtr("direct_checkout")},
		{Path: "$.answers.audience", Exists: true},
		{Path: "$.decision.kind", Matches: strPtr("(")},
		{Path: "$.missing", Len: intPtr(0)},
	})
	if AllPassed(results) {
		t.Fatalf("expected failures, got %+v", results)
	}
	for _, r := range results {
		if r.Passed {
			t.Fatalf("expected every check to fail, %s passed: %s", r.Name, r.Message)
		}
	}

	var sawRegex bool
	for _, r := range results {
		if strings.Contains(r.Message, "invalid regex") {
			sawRegex = true
		}
	}
	if !sawRegex {
		t.Fatalf("expected invalid regex message, got %+v", results)
	}
}

func TestTake_BlockedSelection(t *testing.T) {
	cat, err := yamlcatalog.Default()
	if err != nil {
		t.Fatalf("Default catalog: %v", err)
	}
	snap := Take(wizard.NewSession(cat), domain.DefaultConfig().Routes)
	if snap.Decision.Kind != domain.DecisionBlocked || snap.Decision.URL != "" {
		t.Fatalf("expected blocked decision without url, got %+v", snap.Decision)
	}
	if snap.Step != domain.StepAudience || len(snap.Missing) == 0 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}
