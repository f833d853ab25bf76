package yamlanswers

import (
	"strings"
	"testing"

	"github.com/ellytic/onboard/internal/domain"
)

func TestMapAnswersRejectsUnknownValues(t *testing.T) {
	cases := map[string]struct {
		in    YAMLAnswers
		field string
	}{
		"audience":  {YAMLAnswers{Audience: "martians"}, "audience"},
		"interest":  {YAMLAnswers{Interests: []string{"api", "crypto"}}, "interests[1]"},
		"id type":   {YAMLAnswers{Requirements: YAMLRequirements{IDType: "driving_licence"}}, "requirements.id_type"},
		"mobile":    {YAMLAnswers{Bank: YAMLBank{MobileOption: "satellite"}}, "bank.mobile_option"},
		"empty id":  {YAMLAnswers{Products: []string{" "}}, "products[0]"},
		"file name": {YAMLAnswers{Files: map[string][]YAMLFile{"id_document": {{}}}}, "files.id_document[0].name"},
	}

	for name, tc := range cases {
		_, err := MapAnswers("answers.yaml", tc.in)
		if err == nil {
			t.Errorf("%s: expected error", name)
			continue
		}
		if !domain.IsKind(err, domain.KindInvalidConfig) {
			t.Errorf("%s: expected invalid_config, got %v", name, err)
		}
		if !strings.Contains(err.Error(), tc.field) {
			t.Errorf("%s: expected field %s in %v", name, tc.field, err)
		}
	}
}

func TestMapAnswersDeduplicates(t *testing.T) {
	a, err := MapAnswers("answers.yaml", YAMLAnswers{
		Audience:  "professionals",
		Products:  []string{"standalone_translation", "standalone_translation"},
		Interests: []string{"API", "api", "bulk"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.SelectedProducts) != 1 {
		t.Fatalf("expected one product, got %v", a.SelectedProducts)
	}
	if len(a.Professionals.Interests) != 2 {
		t.Fatalf("expected two interests, got %v", a.Professionals.Interests)
	}
}

func TestMapAnswersEmptyIsDefault(t *testing.T) {
	a, err := MapAnswers("answers.yaml", YAMLAnswers{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Audience != "" || a.SelectedProducts == nil || a.Files == nil {
		t.Fatalf("expected default answers, got %+v", a)
	}
}
