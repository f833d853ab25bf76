package ports

import "github.com/ellytic/onboard/internal/domain"

// AnswersLoader loads a wizard answers snapshot from a source (e.g., filesystem).
type AnswersLoader interface {
	LoadAnswers(path string) (domain.WizardAnswers, error)
}
