package yamlanswers

import (
	"errors"
	"os"

	"github.com/ellytic/onboard/internal/catalog"
	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/ports"
	"gopkg.in/yaml.v3"
)

type Loader struct {
	cat *catalog.Catalog
}

type Option func(*Loader)

// WithCatalog checks the products of every loaded snapshot against cat.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(l *Loader) { l.cat = cat }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.AnswersLoader = (*Loader)(nil)

func (l *Loader) LoadAnswers(path string) (domain.WizardAnswers, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.WizardAnswers{}, &domain.OpError{
			Op:   "yamlanswers.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	a, err := Parse(path, b)
	if err != nil || l.cat == nil {
		return a, err
	}

	if err := l.cat.CheckSelection(a.SelectedProducts); err != nil {
		kind := domain.KindInvalidInput
		var oe *domain.OpError
		if errors.As(err, &oe) {
			kind = oe.Kind
		}
		return domain.WizardAnswers{}, &domain.OpError{
			Op:   "yamlanswers.load",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}
	return a, nil
}

// Parse decodes a snapshot document.
func Parse(path string, b []byte) (domain.WizardAnswers, error) {
	var dto YAMLAnswers
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return domain.WizardAnswers{}, &domain.OpError{
			Op:   "yamlanswers.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return MapAnswers(path, dto)
}
