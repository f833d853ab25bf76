package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/list"

	"github.com/ellytic/onboard/internal/checkout"
	"github.com/ellytic/onboard/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

type productItem struct {
	p domain.Product
}

func (i productItem) Title() string {
	return fmt.Sprintf("%s  %s", i.p.ID, i.p.Price.Display)
}

func (i productItem) Description() string {
	return fmt.Sprintf("%s · %s · %s", i.p.Category, i.p.Role, i.p.Fulfillment)
}

func (i productItem) FilterValue() string { return string(i.p.ID) }

func newCatalogList(deps Deps) list.Model {
	var items []list.Item
	if deps.Catalog != nil {
		for _, p := range deps.Catalog.Products() {
			items = append(items, productItem{p: p})
		}
	}
	l := list.New(items, list.NewDefaultDelegate(), 60, 20)
	l.Title = "Catalog"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func mark(f field, a domain.WizardAnswers) string {
	switch f.kind {
	case fieldOption:
		if f.on(a) {
			return "(•)"
		}
		return "( )"
	case fieldCheck, fieldToggle:
		if f.on(a) {
			return "[x]"
		}
		return "[ ]"
	default:
		return "   "
	}
}

func (m model) wizardView() string {
	s := m.wiz.Session()
	a := s.Answers()
	step := s.Step()
	steps := s.Steps()

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(fmt.Sprintf("Step %d/%d · %s", s.StepIndex()+1, len(steps), step.Title())))
	b.WriteString("\n")
	b.WriteString(m.theme.Subtitle.Render(progress(steps, s.StepIndex())))
	b.WriteString("\n\n")

	switch step {
	case domain.StepBankOverview:
		b.WriteString("The full bundle opens a Greek bank account for you.\n")
		b.WriteString("Next we ask for a financial document, proof of address and a mobile number.\n")
	case domain.StepReview:
		b.WriteString(m.reviewView(a))
	}

	for i, f := range fieldsFor(step, m.wiz) {
		cursor := "  "
		if i == m.cursor {
			cursor = m.theme.Cursor.Render("> ")
		}
		line := cursor + mark(f, a) + " " + f.label
		if f.value != nil {
			v := f.value(a)
			if v == "" {
				v = "—"
			}
			line += ": " + clampString(v, 48)
		}
		if f.hint != "" {
			line += "  " + m.theme.Badge.Render(f.hint)
		}
		b.WriteString(line)
		b.WriteString("\n")
		if f.warn != "" && f.on != nil && f.on(a) {
			b.WriteString("      " + m.theme.Warning.Render(f.warn) + "\n")
		}
	}

	if len(m.missing) > 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.Missing.Render("Missing:"))
		b.WriteString("\n")
		for _, item := range m.missing {
			b.WriteString(m.theme.Missing.Render("  • " + item))
			b.WriteString("\n")
		}
	}

	if m.editing {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(m.theme.Help.Render("enter save • esc cancel"))
		return b.String()
	}
	if m.busy {
		b.WriteString("\n")
		b.WriteString(m.theme.Help.Render("Working…"))
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render("↑/↓ move • space toggle • e edit • enter continue • esc back • q home"))
	return b.String()
}

func (m model) reviewView(a domain.WizardAnswers) string {
	s := m.wiz.Session()

	var b strings.Builder
	b.WriteString("Audience:  " + string(a.Audience) + "\n")
	ids := make([]string, 0, len(a.SelectedProducts))
	for _, id := range a.SelectedProducts {
		ids = append(ids, string(id))
	}
	b.WriteString("Selection: " + strings.Join(ids, ", ") + "\n")

	missing := s.Missing(domain.StepReview)
	d := checkout.Final(a, s.Catalog(), missing)
	b.WriteString("Next:      " + string(d.Kind) + "\n")
	if len(missing) == 0 {
		b.WriteString(m.theme.Badge.Render("Everything is ready."))
		b.WriteString("\n")
	}
	return b.String()
}

func progress(steps []domain.StepKey, current int) string {
	parts := make([]string, len(steps))
	for i := range steps {
		switch {
		case i < current:
			parts[i] = "●"
		case i == current:
			parts[i] = "◉"
		default:
			parts[i] = "○"
		}
	}
	return strings.Join(parts, " ")
}

func (m model) doneView() string {
	var b strings.Builder

	if m.exit == nil {
		return "Nothing to hand off."
	}
	switch m.exit.Kind {
	case domain.DecisionContactSales:
		b.WriteString(m.theme.Title.Render("Our team will contact you"))
	default:
		b.WriteString(m.theme.Title.Render("Ready for checkout"))
	}
	b.WriteString("\n\n")

	if m.result != nil && m.result.Handoff.ID != "" {
		h := m.result.Handoff
		b.WriteString("Continue at: " + h.URL + "\n")
		b.WriteString("Reference:   " + h.ID + "\n")
		if m.result.LeadRef != "" {
			b.WriteString("Lead:        " + m.result.LeadRef + "\n")
		}
		if h.Message != "" {
			b.WriteString("\n" + h.Message + "\n")
		}
	} else {
		b.WriteString("Payload: " + m.exit.Values().Encode() + "\n")
	}

	if m.exitErr != nil {
		b.WriteString("\n" + m.theme.Missing.Render(userMessage(m.exitErr)) + "\n")
	}

	b.WriteString("\n" + m.theme.Help.Render("enter home"))
	return b.String()
}
