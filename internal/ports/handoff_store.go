package ports

import "github.com/ellytic/onboard/internal/domain"

// HandoffStore persists checkout and contact-sales hand-offs.
type HandoffStore interface {
	SaveHandoff(h domain.Handoff) (id string, err error)
}
