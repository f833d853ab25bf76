package catalog

import (
	"fmt"
	"strings"

	"github.com/ellytic/onboard/internal/domain"
)

func validateProduct(i int, p domain.Product) error {
	field := fmt.Sprintf("products[%d]", i)

	if strings.TrimSpace(string(p.ID)) == "" {
		return invalid("%s.id: product id is required", field)
	}
	field = fmt.Sprintf("products[%d](%s)", i, p.ID)

	switch p.Category {
	case domain.CategoryTranslytic, domain.CategoryTaxlytic, domain.CategoryHomelytic:
	default:
		return invalid("%s.category: unknown category %q", field, p.Category)
	}

	switch p.Role {
	case domain.RoleBase, domain.RoleUpsell, domain.RoleAddon, domain.RoleRecurring, domain.RoleStandalone:
	default:
		return invalid("%s.role: unknown role %q", field, p.Role)
	}

	if p.Flags.Bundle && p.Flags.Addon {
		return invalid("%s.flags: a product cannot be both bundle and addon", field)
	}

	if p.Flags.Bundle {
		if p.Tier != domain.TierStarter && p.Tier != domain.TierFull {
			return invalid("%s.tier: bundle tier must be starter or full", field)
		}
		if p.Variant != domain.VariantSingle && p.Variant != domain.VariantCouple {
			return invalid("%s.variant: bundle variant must be single or couple", field)
		}
	} else if p.Tier != domain.TierNone {
		return invalid("%s.tier: only bundles carry a tier", field)
	}

	if p.Variant != "" {
		if _, ok := domain.ParseVariant(string(p.Variant)); !ok {
			return invalid("%s.variant: unknown variant %q", field, p.Variant)
		}
	}

	for _, a := range p.SuitableAudiences {
		if _, ok := domain.ParseAudience(string(a)); !ok {
			return invalid("%s.audiences: unknown audience %q", field, a)
		}
	}

	return validatePrice(field, p.Price)
}

func validatePrice(field string, pr domain.Price) error {
	if strings.TrimSpace(pr.Display) == "" {
		return invalid("%s.price.display: display price is required", field)
	}
	if !HasCurrencyMarker(pr.Display) {
		return invalid("%s.price.display: %q has no currency marker", field, pr.Display)
	}
	for name, v := range pr.Components() {
		c, err := ParseAmount(v)
		if err != nil {
			return invalid("%s.price.%s: %v", field, name, err)
		}
		if c <= 0 {
			return invalid("%s.price.%s: must be positive", field, name)
		}
	}
	return nil
}

// HasCurrencyMarker reports whether a display price names its currency.
func HasCurrencyMarker(s string) bool {
	return strings.Contains(s, "€") || strings.Contains(strings.ToUpper(s), "EUR")
}

func invalid(format string, args ...any) error {
	return &domain.OpError{
		Op:   "catalog.validate",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf(format+": %w", append(args, domain.ErrInvalidConfig)...),
	}
}
