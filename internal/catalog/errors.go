package catalog

import (
	"fmt"

	"github.com/ellytic/onboard/internal/domain"
)

func unknownProduct(id domain.ProductID) error {
	return fmt.Errorf("unknown product %q: %w", id, domain.ErrNotFound)
}
