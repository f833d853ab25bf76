package wizard

import "github.com/ellytic/onboard/internal/domain"

// GateResult is the outcome of trying to leave a step.
type GateResult struct {
	Step     domain.StepKey
	Missing  []string
	Advanced bool
}

// Passed reports whether the step had no unmet requirements.
func (r GateResult) Passed() bool { return len(r.Missing) == 0 }

func (s *Session) env() Env {
	return Env{Now: s.now(), Tier: s.Tier()}
}

// Missing evaluates the gate of a step against the current answers.
func (s *Session) Missing(step domain.StepKey) []string {
	return MissingFor(step, s.answers, s.env())
}

// CanAdvance reports whether the step gate passes.
func (s *Session) CanAdvance(step domain.StepKey) bool {
	return len(s.Missing(step)) == 0
}

// Continue checks the current step gate and advances only when it passes.
// On the review step a passing gate leaves the position unchanged; the caller
// hands off to checkout.
func (s *Session) Continue() GateResult {
	res := GateResult{Step: s.step, Missing: s.Missing(s.step)}
	if res.Passed() {
		res.Advanced = s.Advance()
	}
	return res
}
