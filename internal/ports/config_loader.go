package ports

import "github.com/ellytic/onboard/internal/domain"

// ConfigLoader reads onboard.yaml from a workspace root.
type ConfigLoader interface {
	LoadConfig(root string) (domain.Config, error)
}
