package wizard

import (
	"math/rand"
	"testing"

	"github.com/ellytic/onboard/internal/domain"
)

func countBundles(s *Session) int {
	n := 0
	for _, id := range s.Answers().SelectedProducts {
		if s.cat.IsCoreBundle(id) {
			n++
		}
	}
	return n
}

func TestToggleProduct_BundleExclusivity(t *testing.T) {
	s := newTestSession(t)

	steps := []domain.ProductID{"starter_single", "addon_bank_single", "full_single", "standalone_translation", "full_couple"}
	for _, id := range steps {
		if _, err := s.ToggleProduct(id); err != nil {
			t.Fatalf("ToggleProduct(%s): %v", id, err)
		}
		if n := countBundles(s); n > 1 {
			t.Fatalf("after %s: %d bundles selected", id, n)
		}
	}

	got := s.Answers().SelectedProducts
	want := []domain.ProductID{"addon_bank_single", "standalone_translation", "full_couple"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestToggleProduct_RandomSequences(t *testing.T) {
	c := testCatalog(t)
	ids := []domain.ProductID{}
	for _, p := range c.Products() {
		ids = append(ids, p.ID)
	}

	r := rand.New(rand.NewSource(42))
	for run := 0; run < 50; run++ {
		s := NewSession(c)
		for i := 0; i < 40; i++ {
			id := ids[r.Intn(len(ids))]
			if _, err := s.ToggleProduct(id); err != nil {
				t.Fatalf("ToggleProduct: %v", err)
			}
			if n := countBundles(s); n > 1 {
				t.Fatalf("run %d step %d: %d bundles", run, i, n)
			}
		}
	}
}

func TestToggleProduct_Removes(t *testing.T) {
	s := newTestSession(t)
	on, _ := s.ToggleProduct("due_diligence")
	if !on {
		t.Fatalf("expected added")
	}
	on, _ = s.ToggleProduct("due_diligence")
	if on || len(s.Answers().SelectedProducts) != 0 {
		t.Fatalf("expected removed")
	}
}

func TestAddRemoveIdempotent(t *testing.T) {
	s := newTestSession(t)

	_ = s.AddProduct("addon_govgr_single")
	once := s.Answers().SelectedProducts
	_ = s.AddProduct("addon_govgr_single")
	twice := s.Answers().SelectedProducts
	if len(once) != 1 || len(twice) != 1 {
		t.Fatalf("expected single entry, got %v then %v", once, twice)
	}

	if s.RemoveProduct("e2e_purchase") {
		t.Fatalf("removing an absent id must be a no-op")
	}
	if len(s.Answers().SelectedProducts) != 1 {
		t.Fatalf("selection changed")
	}
	if !s.RemoveProduct("addon_govgr_single") || s.RemoveProduct("addon_govgr_single") {
		t.Fatalf("expected exactly one removal")
	}
}

func TestAddProduct_Unknown(t *testing.T) {
	s := newTestSession(t)
	err := s.AddProduct("ghost")
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if _, err := s.ToggleProduct("ghost"); err == nil {
		t.Fatalf("expected toggle error")
	}
	if len(s.Answers().SelectedProducts) != 0 {
		t.Fatalf("unknown id must not mutate")
	}
}

func TestSetCoupleService_SwapsVariant(t *testing.T) {
	s := newTestSession(t)
	_ = s.AddProduct("addon_bank_single")
	_ = s.AddProduct("starter_single")

	s.SetCoupleService(true)
	got := s.Answers()
	if !got.IsCouple {
		t.Fatalf("expected couple")
	}
	if !got.IsSelected("starter_couple") || got.IsSelected("starter_single") {
		t.Fatalf("expected bundle swap, got %v", got.SelectedProducts)
	}
	if got.SelectedProducts[0] != "addon_bank_single" {
		t.Fatalf("add-ons must be untouched")
	}

	s.SetCoupleService(false)
	if !s.Answers().IsSelected("starter_single") {
		t.Fatalf("expected swap back")
	}
}

func TestSetCoupleService_NoBundle(t *testing.T) {
	s := newTestSession(t)
	s.SetCoupleService(true)
	if !s.Answers().IsCouple || len(s.Answers().SelectedProducts) != 0 {
		t.Fatalf("unexpected state %+v", s.Answers())
	}
}

func TestSuitabilityWarningIsAdvisory(t *testing.T) {
	s := newTestSession(t)
	_ = s.SelectAudience(domain.AudienceExpats)

	if w := s.SuitabilityWarning("investment_analysis"); w == "" {
		t.Fatalf("expected warning for investors-only product")
	}
	if err := s.AddProduct("investment_analysis"); err != nil {
		t.Fatalf("selection must not be blocked: %v", err)
	}
	if w := s.SuitabilityWarning("starter_single"); w != "" {
		t.Fatalf("unexpected warning %q", w)
	}
}
