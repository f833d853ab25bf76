package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/ellytic/onboard/internal/checkout"
	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/infra/logger"
	"github.com/ellytic/onboard/internal/ports"
	"github.com/ellytic/onboard/internal/wizard"
)

// Outcome is the result of pressing continue.
type Outcome struct {
	Gate wizard.GateResult

	// Exit is set when the user leaves the wizard for checkout or sales.
	Exit *domain.Decision
}

// Wizard drives a session on behalf of a user interface and reports analytics.
type Wizard struct {
	session *wizard.Session
	tracker ports.EventTracker
	now     func() time.Time
}

type WizardOption func(*Wizard)

func WithTracker(t ports.EventTracker) WizardOption {
	return func(w *Wizard) {
		if t != nil {
			w.tracker = t
		}
	}
}

// WithEventClock stamps events. Tests use it.
func WithEventClock(now func() time.Time) WizardOption {
	return func(w *Wizard) { w.now = now }
}

func NewWizard(s *wizard.Session, opts ...WizardOption) *Wizard {
	w := &Wizard{session: s, tracker: noopTracker{}, now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Wizard) Session() *wizard.Session { return w.session }

func (w *Wizard) SelectAudience(ctx context.Context, a domain.Audience) error {
	if err := w.session.SelectAudience(a); err != nil {
		return err
	}
	w.track(ctx, domain.EventAudienceSelected, map[string]any{"audience": string(a)})
	return nil
}

// ToggleProduct reports a removal for every product that left the selection,
// including a core bundle displaced by another one.
func (w *Wizard) ToggleProduct(ctx context.Context, id domain.ProductID) (bool, error) {
	before := w.session.Answers()

	added, err := w.session.ToggleProduct(id)
	if err != nil {
		return false, err
	}

	after := w.session.Answers()
	audience := audienceOrUnknown(before.Audience)
	for _, prev := range before.SelectedProducts {
		if !after.IsSelected(prev) {
			w.track(ctx, domain.EventProductRemoved, map[string]any{
				"product_id": string(prev),
				"audience":   audience,
			})
		}
	}
	if added {
		w.track(ctx, domain.EventProductAdded, map[string]any{
			"product_id":     string(id),
			"audience":       audience,
			"is_recommended": w.session.Catalog().IsRecommended(id, before.Audience),
		})
	}
	return added, nil
}

func (w *Wizard) ToggleInterest(_ context.Context, i domain.Interest) (bool, error) {
	return w.session.ToggleInterest(i)
}

// Continue evaluates the current step. A contact-sales selection leaves the
// wizard at the product step; the review step leaves it through checkout.Final.
func (w *Wizard) Continue(ctx context.Context) Outcome {
	s := w.session
	step := s.Step()
	a := s.Answers()

	switch step {
	case domain.StepBundle:
		if len(s.Missing(step)) > 0 {
			break
		}
		d := checkout.Decide(a, s.Catalog())
		if d.Kind != domain.DecisionContactSales {
			break
		}
		if a.Audience == domain.AudienceProfessionals {
			w.track(ctx, domain.EventProContactStarted, map[string]any{
				"audience":  string(a.Audience),
				"interests": d.Context[domain.CtxInterests],
			})
		}
		w.completed(ctx, step, a)
		return w.exit(ctx, wizard.GateResult{Step: step}, d)

	case domain.StepReview:
		missing := s.Missing(step)
		d := checkout.Final(a, s.Catalog(), missing)
		if d.Blocked() {
			w.failed(ctx, step, d.Missing)
			return Outcome{Gate: wizard.GateResult{Step: step, Missing: d.Missing}}
		}
		w.completed(ctx, step, a)
		return w.exit(ctx, wizard.GateResult{Step: step, Missing: missing}, d)
	}

	res := s.Continue()
	if res.Passed() {
		w.completed(ctx, step, a)
	} else {
		w.failed(ctx, step, res.Missing)
	}
	return Outcome{Gate: res}
}

func (w *Wizard) exit(ctx context.Context, gate wizard.GateResult, d domain.Decision) Outcome {
	w.track(ctx, domain.EventHandoff, map[string]any{
		"kind":    string(d.Kind),
		"payload": d.Values().Encode(),
	})
	return Outcome{Gate: gate, Exit: &d}
}

func (w *Wizard) completed(ctx context.Context, step domain.StepKey, a domain.WizardAnswers) {
	w.track(ctx, domain.EventStepCompleted, map[string]any{
		"step":     string(step),
		"audience": audienceOrUnknown(a.Audience),
	})
}

func (w *Wizard) failed(ctx context.Context, step domain.StepKey, missing []string) {
	w.track(ctx, domain.EventValidationFailed, map[string]any{
		"step":   string(step),
		"reason": strings.Join(missing, "; "),
	})
}

func (w *Wizard) track(ctx context.Context, name string, props map[string]any) {
	logger.L().Debug("wizard.event", "event", name, "session_id", w.session.ID())
	w.tracker.Track(ctx, domain.Event{
		Name:       name,
		SessionID:  w.session.ID(),
		Properties: props,
		At:         w.now(),
	})
}

func audienceOrUnknown(a domain.Audience) string {
	if a == "" {
		return "unknown"
	}
	return string(a)
}

type noopTracker struct{}

func (noopTracker) Track(context.Context, domain.Event) {}
