package ports

import "github.com/ellytic/onboard/internal/catalog"

// CatalogLoader builds a validated catalog from a source (e.g., filesystem).
// An empty path selects the built-in catalog.
type CatalogLoader interface {
	LoadCatalog(path string) (*catalog.Catalog, error)
}
