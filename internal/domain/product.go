package domain

import "strings"

// ProductID is the stable identifier of a catalog product (e.g. "starter_single").
type ProductID string

// Category groups products by service line.
type Category string

const (
	CategoryTranslytic Category = "translytic" // translation and AFM services
	CategoryTaxlytic   Category = "taxlytic"   // tax services
	CategoryHomelytic  Category = "homelytic"  // property services
)

// Categories returns the fixed category order used for display.
func Categories() []Category {
	return []Category{CategoryTranslytic, CategoryTaxlytic, CategoryHomelytic}
}

// Role is a display grouping tag. It carries no behavioral weight.
type Role string

const (
	RoleBase       Role = "Base"
	RoleUpsell     Role = "Upsell"
	RoleAddon      Role = "Addon"
	RoleRecurring  Role = "Recurring"
	RoleStandalone Role = "Standalone"
)

// BundleTier distinguishes the two core bundle tiers.
// The zero value means no bundle has been chosen.
type BundleTier string

const (
	TierNone    BundleTier = ""
	TierStarter BundleTier = "starter"
	TierFull    BundleTier = "full"
)

// Variant is the household size a bundle is priced for.
type Variant string

const (
	VariantSingle Variant = "single"
	VariantCouple Variant = "couple"
	VariantFamily Variant = "family"
)

// ParseVariant accepts single, couple or family.
func ParseVariant(s string) (Variant, bool) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantSingle, VariantCouple, VariantFamily:
		return v, true
	default:
		return "", false
	}
}

// FulfillmentPath says whether a product can be bought through self-service checkout.
type FulfillmentPath string

const (
	FulfillDirect       FulfillmentPath = "direct"
	FulfillContactSales FulfillmentPath = "contact_sales"
)

// Price is the structured price of a product.
// Numeric components are decimal strings ("24.90"); Display is always set.
type Price struct {
	Single     string
	Couple     string
	Family     string
	ExtraChild string
	Display    string
}

// Components returns the named numeric components that are present.
func (p Price) Components() map[string]string {
	out := map[string]string{}
	if p.Single != "" {
		out["single"] = p.Single
	}
	if p.Couple != "" {
		out["couple"] = p.Couple
	}
	if p.Family != "" {
		out["family"] = p.Family
	}
	if p.ExtraChild != "" {
		out["extra_child"] = p.ExtraChild
	}
	return out
}

// For returns the numeric component for a variant, falling back to the other
// variant when only one is defined.
func (p Price) For(v Variant) string {
	switch v {
	case VariantFamily:
		if p.Family != "" {
			return p.Family
		}
		return p.For(VariantCouple)
	case VariantCouple:
		if p.Couple != "" {
			return p.Couple
		}
		return p.Single
	default:
		if p.Single != "" {
			return p.Single
		}
		return p.Couple
	}
}

// Flags describe the commercial role of a product. They are not mutually exclusive.
type Flags struct {
	Bundle       bool
	Addon        bool
	Recurring    bool
	Standalone   bool
	ContactSales bool
}

// TextRefs are opaque i18n keys resolved outside the core.
type TextRefs struct {
	Title    string
	Subtitle string
}

// Product is a purchasable catalog item.
type Product struct {
	ID       ProductID
	Category Category
	Text     TextRefs
	Price    Price
	Flags    Flags
	Role     Role

	// SuitableAudiences is advisory. Empty means suitable for everyone.
	SuitableAudiences []Audience

	// Tier is set for bundle products only. Variant is required for bundles
	// and optional elsewhere (it picks the price component to quote).
	Tier    BundleTier
	Variant Variant

	// Fulfillment is derived when the catalog is built.
	Fulfillment FulfillmentPath
}

// SuitableFor reports whether the product is meant for the audience.
func (p Product) SuitableFor(a Audience) bool {
	if len(p.SuitableAudiences) == 0 || a == "" {
		return true
	}
	for _, s := range p.SuitableAudiences {
		if s == a {
			return true
		}
	}
	return false
}

// DeriveFulfillment classifies a product into a single fulfillment path.
// Explicit contact-sales flags win; property services and non-recurring tax
// services have no self-service checkout.
func DeriveFulfillment(p Product) FulfillmentPath {
	switch {
	case p.Flags.ContactSales:
		return FulfillContactSales
	case p.Category == CategoryHomelytic:
		return FulfillContactSales
	case p.Category == CategoryTaxlytic && !p.Flags.Recurring:
		return FulfillContactSales
	default:
		return FulfillDirect
	}
}
