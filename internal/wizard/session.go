// Package wizard implements the onboarding state machine: step sequencing
// over the tier-dependent step list, answer mutation and completion gates.
package wizard

import (
	"time"

	"github.com/google/uuid"

	"github.com/ellytic/onboard/internal/catalog"
	"github.com/ellytic/onboard/internal/domain"
)

// Session is one user's pass through the wizard. A Session has a single
// owner and is not safe for concurrent use.
type Session struct {
	id      string
	cat     *catalog.Catalog
	now     func() time.Time
	step    domain.StepKey
	answers domain.WizardAnswers
}

type Option func(*Session)

func WithNow(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithAnswers restores a trusted snapshot. The session starts on the audience
// step. Snapshots read from outside the process go through Restore.
func WithAnswers(a domain.WizardAnswers) Option {
	return func(s *Session) { s.answers = normalize(a.Clone()) }
}

func NewSession(cat *catalog.Catalog, opts ...Option) *Session {
	s := &Session{
		id:      uuid.NewString(),
		cat:     cat,
		now:     time.Now,
		step:    domain.StepAudience,
		answers: domain.DefaultAnswers(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore builds a session from an external snapshot. The selection must name
// catalog products only and hold at most one core bundle.
func Restore(cat *catalog.Catalog, a domain.WizardAnswers, opts ...Option) (*Session, error) {
	if err := cat.CheckSelection(a.SelectedProducts); err != nil {
		return nil, err
	}
	return NewSession(cat, append(opts, WithAnswers(a))...), nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) Catalog() *catalog.Catalog { return s.cat }

// Tier is the tier of the selected core bundle, if any.
func (s *Session) Tier() domain.BundleTier {
	return s.cat.TierOf(s.answers.SelectedProducts)
}

// Steps is the effective step sequence for the current selection.
func (s *Session) Steps() []domain.StepKey {
	return domain.EffectiveSteps(s.Tier())
}

func (s *Session) Step() domain.StepKey { return s.step }

// StepIndex is the position of the current step in Steps().
func (s *Session) StepIndex() int {
	return domain.IndexOf(s.Steps(), s.step)
}

// Answers returns a copy of the current answers.
func (s *Session) Answers() domain.WizardAnswers {
	return s.answers.Clone()
}

// Advance moves to the next step of the effective sequence.
// It is a no-op on the review step.
func (s *Session) Advance() bool {
	steps := s.Steps()
	i := domain.IndexOf(steps, s.step)
	if i < 0 || i >= len(steps)-1 {
		return false
	}
	s.step = steps[i+1]
	return true
}

// Retreat moves to the previous step, staying on the first one.
func (s *Session) Retreat() bool {
	steps := s.Steps()
	i := domain.IndexOf(steps, s.step)
	if i <= 0 {
		return false
	}
	s.step = steps[i-1]
	return true
}

// JumpToStep sets the position directly. It does not check gates.
func (s *Session) JumpToStep(index int) error {
	steps := s.Steps()
	if index < 0 || index >= len(steps) {
		return domain.InvalidInput("wizard.jump", "step index %d out of range [0,%d)", index, len(steps))
	}
	s.step = steps[index]
	return nil
}

// Reset returns to the first step with empty answers.
func (s *Session) Reset() {
	s.step = domain.StepAudience
	s.answers = domain.DefaultAnswers()
}

// Update applies fn to a copy of the answers and swaps it in.
// A tier change that removes the current step moves the position back to the
// nearest surviving step.
func (s *Session) Update(fn func(a *domain.WizardAnswers)) {
	next := s.answers.Clone()
	fn(&next)
	s.answers = normalize(next)
	s.remap()
}

// SetFiles replaces the file list for a document kind. An empty list clears it.
func (s *Session) SetFiles(kind domain.DocumentKind, refs []domain.FileRef) error {
	if !domain.IsKnownDocumentKind(kind) {
		return domain.InvalidInput("wizard.set_files", "unknown document kind %q", kind)
	}
	s.Update(func(a *domain.WizardAnswers) {
		if len(refs) == 0 {
			delete(a.Files, kind)
			return
		}
		cp := make([]domain.FileRef, len(refs))
		copy(cp, refs)
		a.Files[kind] = cp
	})
	return nil
}

// SelectAudience records the customer segment.
func (s *Session) SelectAudience(a domain.Audience) error {
	if _, ok := domain.ParseAudience(string(a)); !ok {
		return domain.InvalidInput("wizard.select_audience", "unknown audience %q", a)
	}
	s.Update(func(w *domain.WizardAnswers) { w.Audience = a })
	return nil
}

// ToggleInterest adds or removes a B2B interest tag and reports whether it is now chosen.
func (s *Session) ToggleInterest(i domain.Interest) (bool, error) {
	if _, ok := domain.ParseInterest(string(i)); !ok {
		return false, domain.InvalidInput("wizard.toggle_interest", "unknown interest %q", i)
	}
	chosen := false
	s.Update(func(w *domain.WizardAnswers) {
		if w.HasInterest(i) {
			w.Professionals.Interests = removeInterest(w.Professionals.Interests, i)
			return
		}
		w.Professionals.Interests = append(w.Professionals.Interests, i)
		chosen = true
	})
	return chosen, nil
}

func (s *Session) remap() {
	steps := s.Steps()
	if domain.IndexOf(steps, s.step) >= 0 {
		return
	}
	all := domain.AllSteps()
	for i := domain.IndexOf(all, s.step); i >= 0; i-- {
		if domain.IndexOf(steps, all[i]) >= 0 {
			s.step = all[i]
			return
		}
	}
	s.step = steps[0]
}

func normalize(a domain.WizardAnswers) domain.WizardAnswers {
	if a.SelectedProducts == nil {
		a.SelectedProducts = []domain.ProductID{}
	}
	if a.Professionals.Interests == nil {
		a.Professionals.Interests = []domain.Interest{}
	}
	if a.Files == nil {
		a.Files = map[domain.DocumentKind][]domain.FileRef{}
	}
	return a
}

func removeInterest(in []domain.Interest, i domain.Interest) []domain.Interest {
	out := make([]domain.Interest, 0, len(in))
	for _, x := range in {
		if x != i {
			out = append(out, x)
		}
	}
	return out
}
