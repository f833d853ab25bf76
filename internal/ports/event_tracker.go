package ports

import (
	"context"

	"github.com/ellytic/onboard/internal/domain"
)

// EventTracker receives analytics events. Implementations must not block the wizard.
type EventTracker interface {
	Track(ctx context.Context, ev domain.Event)
}
