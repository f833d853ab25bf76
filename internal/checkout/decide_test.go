package checkout

import (
	"reflect"
	"testing"

	"github.com/ellytic/onboard/internal/catalog"
	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/infra/yamlcatalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := yamlcatalog.Default()
	if err != nil {
		t.Fatalf("Default catalog: %v", err)
	}
	return c
}

func answers(aud domain.Audience, ids ...domain.ProductID) domain.WizardAnswers {
	a := domain.DefaultAnswers()
	a.Audience = aud
	a.SelectedProducts = append(a.SelectedProducts, ids...)
	return a
}

func TestDecide(t *testing.T) {
	cat := testCatalog(t)

	pro := answers(domain.AudienceProfessionals)
	pro.Professionals.Interests = []domain.Interest{domain.InterestAPI, domain.InterestBulk}

	proWithProducts := answers(domain.AudienceProfessionals, "starter_single")
	proWithProducts.Professionals.Interests = []domain.Interest{domain.InterestReferral}

	cases := []struct {
		name    string
		in      domain.WizardAnswers
		kind    domain.DecisionKind
		context map[string]string
	}{
		{
			name:    "empty selection",
			in:      answers(domain.AudienceExpats),
			kind:    domain.DecisionBlocked,
			context: map[string]string{},
		},
		{
			name:    "professionals without interests",
			in:      answers(domain.AudienceProfessionals),
			kind:    domain.DecisionBlocked,
			context: map[string]string{},
		},
		{
			name: "professionals",
			in:   pro,
			kind: domain.DecisionContactSales,
			context: map[string]string{
				"audience":  "professionals",
				"interests": "api,bulk",
			},
		},
		{
			name: "professionals never reach the catalog",
			in:   proWithProducts,
			kind: domain.DecisionContactSales,
			context: map[string]string{
				"audience":  "professionals",
				"interests": "referral",
			},
		},
		{
			name:    "bundle only",
			in:      answers(domain.AudienceExpats, "starter_single"),
			kind:    domain.DecisionDirectCheckout,
			context: map[string]string{"bundle": "starter_single"},
		},
		{
			name: "bundle with contact-sales product",
			in:   answers(domain.AudienceExpats, "starter_single", "due_diligence"),
			kind: domain.DecisionContactSales,
			context: map[string]string{
				"audience": "expats",
				"products": "starter_single,due_diligence",
				"source":   "wizard_step2",
			},
		},
		{
			name: "property service",
			in:   answers(domain.AudienceHomeBuyers, "e2e_purchase"),
			kind: domain.DecisionContactSales,
			context: map[string]string{
				"audience": "homeBuyers",
				"products": "e2e_purchase",
				"source":   "wizard_step2",
			},
		},
		{
			name:    "standalone translation",
			in:      answers(domain.AudienceHomeOwners, "standalone_translation"),
			kind:    domain.DecisionDirectCheckout,
			context: map[string]string{"bundle": "translation"},
		},
		{
			name: "bundle with add-ons",
			in:   answers(domain.AudienceInvestors, "addon_bank_single", "full_single", "annual_e9_single"),
			kind: domain.DecisionDirectCheckout,
			context: map[string]string{
				"bundle": "full_single",
				"addons": "addon_bank_single,annual_e9_single",
			},
		},
		{
			name: "recurring tax product alone",
			in:   answers(domain.AudienceHomeOwners, "annual_e9_family"),
			kind: domain.DecisionDirectCheckout,
			context: map[string]string{
				"addons": "annual_e9_family",
			},
		},
	}

	for _, tc := range cases {
		got := Decide(tc.in, cat)
		if got.Kind != tc.kind {
			t.Errorf("%s: kind=%s want %s", tc.name, got.Kind, tc.kind)
			continue
		}
		if !reflect.DeepEqual(got.Context, tc.context) {
			t.Errorf("%s: context=%v want %v", tc.name, got.Context, tc.context)
		}
	}
}

func TestDecide_BlockedCarriesMessage(t *testing.T) {
	got := Decide(answers(domain.AudienceInvestors), testCatalog(t))
	if !got.Blocked() || !reflect.DeepEqual(got.Missing, []string{MissingSelection}) {
		t.Fatalf("unexpected decision %+v", got)
	}
}

func TestDecide_InconsistentSelectionBlocks(t *testing.T) {
	cat := testCatalog(t)

	cases := []struct {
		name    string
		in      domain.WizardAnswers
		missing string
	}{
		{
			name:    "unknown id",
			in:      answers(domain.AudienceExpats, "starter_single", "no_such_product"),
			missing: "unknown product no_such_product",
		},
		{
			name:    "unknown id next to a sales product",
			in:      answers(domain.AudienceExpats, "due_diligence", "no_such_product"),
			missing: "unknown product no_such_product",
		},
		{
			name:    "two core bundles",
			in:      answers(domain.AudienceExpats, "starter_single", "full_couple"),
			missing: "choose one core bundle, not both starter_single and full_couple",
		},
	}
	for _, tc := range cases {
		got := Decide(tc.in, cat)
		if !got.Blocked() || !reflect.DeepEqual(got.Missing, []string{tc.missing}) {
			t.Errorf("%s: unexpected decision %+v", tc.name, got)
		}
		if len(got.Context) != 0 {
			t.Errorf("%s: expected empty context, got %v", tc.name, got.Context)
		}
	}
}

func TestDecide_URL(t *testing.T) {
	got := Decide(answers(domain.AudienceExpats, "starter_single", "due_diligence"), testCatalog(t))
	want := "/contact-sales?audience=expats&products=starter_single%2Cdue_diligence&source=wizard_step2"
	if u := got.URL("/contact-sales"); u != want {
		t.Fatalf("URL=%q want %q", u, want)
	}
}

func TestFinal(t *testing.T) {
	cat := testCatalog(t)
	a := answers(domain.AudienceExpats, "starter_single")

	blocked := Final(a, cat, []string{"Marriage certificate upload"})
	if !blocked.Blocked() || len(blocked.Missing) != 1 {
		t.Fatalf("expected blocked, got %+v", blocked)
	}

	ok := Final(a, cat, nil)
	if ok.Kind != domain.DecisionDirectCheckout {
		t.Fatalf("expected direct checkout, got %+v", ok)
	}
}
