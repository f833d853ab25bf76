package usecase

import (
	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/ports"
)

type ValidateCatalog struct {
	loader ports.CatalogLoader
}

func NewValidateCatalog(l ports.CatalogLoader) *ValidateCatalog {
	return &ValidateCatalog{loader: l}
}

// CatalogSummary describes a catalog that passed validation.
type CatalogSummary struct {
	Products     int
	ByCategory   map[domain.Category]int
	Bundles      []domain.ProductID
	ContactSales []domain.ProductID
}

// Execute loads the catalog at path (empty for the built-in one) and reports
// what it contains. Any validation failure is returned as is.
func (uc *ValidateCatalog) Execute(path string) (CatalogSummary, error) {
	cat, err := uc.loader.LoadCatalog(path)
	if err != nil {
		return CatalogSummary{}, err
	}

	sum := CatalogSummary{ByCategory: map[domain.Category]int{}}
	for _, p := range cat.Products() {
		sum.Products++
		sum.ByCategory[p.Category]++
		if cat.IsCoreBundle(p.ID) {
			sum.Bundles = append(sum.Bundles, p.ID)
		}
		if p.Fulfillment == domain.FulfillContactSales {
			sum.ContactSales = append(sum.ContactSales, p.ID)
		}
	}
	return sum, nil
}
