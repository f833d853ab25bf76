package template

import (
	"fmt"
	"strings"

	"github.com/ellytic/onboard/internal/domain"
)

// ContactSalesMessage prefills the contact-sales form.
const ContactSalesMessage = "I'm interested in the following services: {{services}}\n\nPlease get in touch to discuss how we can work together."

// RenderString replaces {{VAR}} placeholders with vars values.
// It returns an error if a variable is missing or a placeholder is malformed.
func RenderString(input string, vars map[string]string) (string, error) {
	const op = "template.render"
	if input == "" {
		return "", nil
	}

	var out strings.Builder
	rest := input
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}

		out.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return "", &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Err: fmt.Errorf("unclosed template expression: %w", domain.ErrInvalidConfig)}
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return "", &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Err: fmt.Errorf("empty template expression: %w", domain.ErrInvalidConfig)}
		}

		value, ok := vars[key]
		if !ok {
			return "", domain.InvalidInput(op, "missing variable %q", key)
		}

		out.WriteString(value)
		rest = rest[end+2:]
	}
}

// InterestsMessage lists the interest labels of a professional.
func InterestsMessage(interests []domain.Interest) (string, error) {
	labels := make([]string, 0, len(interests))
	for _, i := range interests {
		labels = append(labels, i.Label())
	}
	return servicesMessage(labels)
}

// ProductsMessage lists the products of a selection routed to sales.
func ProductsMessage(ids []domain.ProductID) (string, error) {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, string(id))
	}
	return servicesMessage(names)
}

func servicesMessage(names []string) (string, error) {
	if len(names) == 0 {
		return "", domain.InvalidInput("template.message", "no services to list")
	}
	return RenderString(ContactSalesMessage, map[string]string{"services": strings.Join(names, ", ")})
}
