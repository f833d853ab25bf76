// Package catalog holds the validated product registry, the audience
// recommendation table and price quoting.
package catalog

import "github.com/ellytic/onboard/internal/domain"

// Catalog is immutable after New returns. It is safe for concurrent readers.
type Catalog struct {
	products []domain.Product
	byID     map[domain.ProductID]int
	recs     map[domain.Audience]ProductSet
}

// New validates the products and the recommendation table and derives the
// fulfillment path of every product. Any violation is an invalid_config error.
func New(products []domain.Product, recs map[domain.Audience][]domain.ProductID) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[domain.ProductID]int, len(products)),
		recs:     make(map[domain.Audience]ProductSet, len(recs)),
	}

	for i, p := range products {
		if err := validateProduct(i, p); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, invalid("products[%d].id: duplicate id %q", i, p.ID)
		}

		p.SuitableAudiences = append([]domain.Audience(nil), p.SuitableAudiences...)
		p.Fulfillment = domain.DeriveFulfillment(p)

		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	for _, a := range domain.Audiences() {
		ids, ok := recs[a]
		if !ok {
			return nil, invalid("recommendations: audience %q has no entry", a)
		}
		set := make(ProductSet, len(ids))
		for _, id := range ids {
			if _, ok := c.byID[id]; !ok {
				return nil, invalid("recommendations.%s: unknown product %q", a, id)
			}
			set[id] = struct{}{}
		}
		c.recs[a] = set
	}
	for a := range recs {
		if _, ok := domain.ParseAudience(string(a)); !ok {
			return nil, invalid("recommendations: unknown audience %q", a)
		}
	}

	return c, nil
}

// ProductByID looks up a product. A missing id is a normal outcome.
func (c *Catalog) ProductByID(id domain.ProductID) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// ProductsByCategory returns the products of one category in declaration order.
func (c *Catalog) ProductsByCategory(cat domain.Category) []domain.Product {
	out := []domain.Product{}
	for _, p := range c.products {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

// Categories is the fixed display order.
func (c *Catalog) Categories() []domain.Category {
	return domain.Categories()
}

// Products returns every product in declaration order.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// IsCoreBundle reports whether the id names a product flagged as a bundle.
func (c *Catalog) IsCoreBundle(id domain.ProductID) bool {
	p, ok := c.ProductByID(id)
	return ok && p.Flags.Bundle
}

// BundleFor finds the bundle of a tier priced for a household variant.
func (c *Catalog) BundleFor(tier domain.BundleTier, v domain.Variant) (domain.Product, bool) {
	for _, p := range c.products {
		if p.Flags.Bundle && p.Tier == tier && p.Variant == v {
			return p, true
		}
	}
	return domain.Product{}, false
}

// TierOf returns the bundle tier of the first selected core bundle.
func (c *Catalog) TierOf(selected []domain.ProductID) domain.BundleTier {
	for _, id := range selected {
		if p, ok := c.ProductByID(id); ok && p.Flags.Bundle {
			return p.Tier
		}
	}
	return domain.TierNone
}

// CheckSelection verifies a restored selection against the catalog: every id
// must exist and at most one core bundle may be selected.
func (c *Catalog) CheckSelection(selected []domain.ProductID) error {
	const op = "catalog.check_selection"

	var bundle domain.ProductID
	for _, id := range selected {
		p, ok := c.ProductByID(id)
		if !ok {
			return &domain.OpError{Op: op, Kind: domain.KindNotFound, Err: unknownProduct(id)}
		}
		if !p.Flags.Bundle || id == bundle {
			continue
		}
		if bundle != "" {
			return domain.InvalidInput(op, "core bundles %q and %q are mutually exclusive", bundle, id)
		}
		bundle = id
	}
	return nil
}
