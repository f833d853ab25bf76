package catalog

import (
	"github.com/ellytic/onboard/internal/domain"
)

// StandaloneTranslation is the per-document translation service.
const StandaloneTranslation domain.ProductID = "standalone_translation"

const (
	translationPerDoc  Cents = 3000
	translationMaxDocs       = 10
)

// TranslationPrice is the volume price for standalone translation:
// €30 per document for 1 to 10 documents.
func TranslationPrice(docs int) (Cents, error) {
	if docs < 1 || docs > translationMaxDocs {
		return 0, domain.InvalidInput("catalog.translation_price", "documents must be between 1 and %d, got %d", translationMaxDocs, docs)
	}
	return translationPerDoc * Cents(docs), nil
}

// QuoteRequest describes what to price.
type QuoteRequest struct {
	Products []domain.ProductID
	// Variant picks the price component for products without their own variant.
	Variant domain.Variant
	// TranslationDocs prices standalone translation when positive.
	TranslationDocs int
}

// QuoteLine is one priced (or unpriced) product.
type QuoteLine struct {
	ID      domain.ProductID
	Display string
	Amount  Cents
	Priced  bool
}

// Quote is an indicative total for the direct-checkout items of a selection.
type Quote struct {
	Lines []QuoteLine
	Total Cents

	// ContactSales lists selected products that are priced by the sales team.
	ContactSales []domain.ProductID
}

// Quote prices a selection. Unknown ids are rejected.
func (c *Catalog) Quote(req QuoteRequest) (Quote, error) {
	const op = "catalog.quote"

	variant := req.Variant
	if variant == "" {
		variant = domain.VariantSingle
	}

	q := Quote{Lines: []QuoteLine{}, ContactSales: []domain.ProductID{}}
	for _, id := range req.Products {
		p, ok := c.ProductByID(id)
		if !ok {
			return Quote{}, &domain.OpError{Op: op, Kind: domain.KindNotFound, Err: unknownProduct(id)}
		}
		if p.Fulfillment == domain.FulfillContactSales {
			q.ContactSales = append(q.ContactSales, id)
			continue
		}

		line := QuoteLine{ID: id, Display: p.Price.Display}

		if id == StandaloneTranslation && req.TranslationDocs > 0 {
			amount, err := TranslationPrice(req.TranslationDocs)
			if err != nil {
				return Quote{}, err
			}
			line.Amount, line.Priced = amount, true
		} else {
			v := variant
			if p.Variant != "" {
				v = p.Variant
			}
			if raw := p.Price.For(v); raw != "" {
				amount, err := ParseAmount(raw)
				if err != nil {
					return Quote{}, &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Err: err}
				}
				line.Amount, line.Priced = amount, true
			}
		}

		if line.Priced {
			q.Total += line.Amount
		}
		q.Lines = append(q.Lines, line)
	}
	return q, nil
}
