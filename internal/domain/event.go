package domain

import "time"

// Analytics event names emitted by the wizard.
const (
	EventAudienceSelected  = "audience_selected"
	EventProductAdded      = "product_added"
	EventProductRemoved    = "product_removed"
	EventProContactStarted = "pro_contact_started"
	EventStepCompleted     = "wizard_step_completed"
	EventValidationFailed  = "wizard_validation_failed"
	EventHandoff           = "wizard_handoff"
)

// Event is a single analytics event.
type Event struct {
	Name       string
	SessionID  string
	Properties map[string]any
	At         time.Time
}
