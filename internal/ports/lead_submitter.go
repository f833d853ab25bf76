package ports

import (
	"context"

	"github.com/ellytic/onboard/internal/domain"
)

// LeadSubmitter forwards a contact-sales hand-off to the sales team.
type LeadSubmitter interface {
	SubmitLead(ctx context.Context, h domain.Handoff) (ref string, err error)
}
