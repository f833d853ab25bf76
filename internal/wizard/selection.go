package wizard

import (
	"fmt"

	"github.com/ellytic/onboard/internal/domain"
)

// ToggleProduct adds an absent product or removes a present one and reports
// whether the product is now selected. Adding a core bundle drops any other.
func (s *Session) ToggleProduct(id domain.ProductID) (bool, error) {
	if s.answers.IsSelected(id) {
		s.RemoveProduct(id)
		return false, nil
	}
	if err := s.AddProduct(id); err != nil {
		return false, err
	}
	return true, nil
}

// AddProduct is idempotent. Unknown ids are rejected without mutation.
func (s *Session) AddProduct(id domain.ProductID) error {
	p, ok := s.cat.ProductByID(id)
	if !ok {
		return &domain.OpError{
			Op:   "wizard.add_product",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("unknown product %q: %w", id, domain.ErrNotFound),
		}
	}
	if s.answers.IsSelected(id) {
		return nil
	}

	s.Update(func(a *domain.WizardAnswers) {
		if p.Flags.Bundle {
			kept := make([]domain.ProductID, 0, len(a.SelectedProducts))
			for _, sel := range a.SelectedProducts {
				if !s.cat.IsCoreBundle(sel) {
					kept = append(kept, sel)
				}
			}
			a.SelectedProducts = kept
			a.IsCouple = p.Variant == domain.VariantCouple
		}
		a.SelectedProducts = append(a.SelectedProducts, id)
	})
	return nil
}

// RemoveProduct is idempotent and reports whether anything was removed.
func (s *Session) RemoveProduct(id domain.ProductID) bool {
	if !s.answers.IsSelected(id) {
		return false
	}
	s.Update(func(a *domain.WizardAnswers) {
		out := make([]domain.ProductID, 0, len(a.SelectedProducts))
		for _, sel := range a.SelectedProducts {
			if sel != id {
				out = append(out, sel)
			}
		}
		a.SelectedProducts = out
	})
	return true
}

// SetCoupleService records the household size and swaps a selected bundle to
// the variant of the same tier.
func (s *Session) SetCoupleService(couple bool) {
	v := domain.VariantSingle
	if couple {
		v = domain.VariantCouple
	}

	var sibling domain.ProductID
	if tier := s.Tier(); tier != domain.TierNone {
		if p, ok := s.cat.BundleFor(tier, v); ok {
			sibling = p.ID
		}
	}

	s.Update(func(a *domain.WizardAnswers) {
		a.IsCouple = couple
		if sibling == "" {
			return
		}
		for i, sel := range a.SelectedProducts {
			if s.cat.IsCoreBundle(sel) {
				a.SelectedProducts[i] = sibling
			}
		}
	})
}

// SuitabilityWarning returns a non-empty message when the product is not meant
// for the chosen audience. Selection is never blocked by it.
func (s *Session) SuitabilityWarning(id domain.ProductID) string {
	p, ok := s.cat.ProductByID(id)
	if !ok || s.answers.Audience == "" || p.SuitableFor(s.answers.Audience) {
		return ""
	}
	return fmt.Sprintf("%s is not usually recommended for %s", p.ID, s.answers.Audience)
}
