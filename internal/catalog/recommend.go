package catalog

import "github.com/ellytic/onboard/internal/domain"

// ProductSet is an unordered set of product ids.
type ProductSet map[domain.ProductID]struct{}

// Has reports membership.
func (s ProductSet) Has(id domain.ProductID) bool {
	_, ok := s[id]
	return ok
}

// RecommendationsForAudience returns the advisory set for an audience.
// An empty or unknown audience yields an empty set. The result is a copy.
func (c *Catalog) RecommendationsForAudience(a domain.Audience) ProductSet {
	out := ProductSet{}
	for id := range c.recs[a] {
		out[id] = struct{}{}
	}
	return out
}

// IsRecommended reports whether the product is recommended for the audience.
func (c *Catalog) IsRecommended(id domain.ProductID, a domain.Audience) bool {
	return c.recs[a].Has(id)
}

// Recommended lists the recommended products in catalog declaration order.
func (c *Catalog) Recommended(a domain.Audience) []domain.Product {
	set := c.recs[a]
	out := []domain.Product{}
	for _, p := range c.products {
		if set.Has(p.ID) {
			out = append(out, p)
		}
	}
	return out
}
