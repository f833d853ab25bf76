package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/infra/analytics"
	"github.com/ellytic/onboard/internal/infra/handoffstore"
	"github.com/ellytic/onboard/internal/infra/yamlcatalog"
	"github.com/ellytic/onboard/internal/usecase"
	"github.com/ellytic/onboard/internal/wizard"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testDeps(t *testing.T) (Deps, *analytics.Recorder) {
	t.Helper()
	cat, err := yamlcatalog.Default()
	if err != nil {
		t.Fatalf("Default catalog: %v", err)
	}
	rec := analytics.NewRecorder(nil)
	return Deps{
		Catalog: cat,
		Tracker: rec,
		Now:     func() time.Time { return fixedNow },
	}, rec
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, keys ...string) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		mm, ok := next.(model)
		if !ok {
			t.Fatalf("unexpected model type %T", next)
		}
		m = mm
	}
	return m, cmd
}

func TestStartWizardFromHome(t *testing.T) {
	deps, _ := testDeps(t)
	m := newModel(deps)

	m, _ = press(t, m, "enter")
	if m.scr != screenWizard || m.wiz == nil {
		t.Fatalf("expected wizard screen, got %v", m.scr)
	}
	if m.wiz.Session().Step() != domain.StepAudience {
		t.Fatalf("expected audience step, got %s", m.wiz.Session().Step())
	}
	if !strings.Contains(m.View(), "Who are you?") {
		t.Fatalf("expected audience title in view")
	}
}

func TestStartWizardWithoutCatalog(t *testing.T) {
	m := newModel(Deps{})
	m, _ = press(t, m, "enter")
	if m.scr != screenHome || m.toast != "No catalog loaded" {
		t.Fatalf("expected toast on home, got scr=%v toast=%q", m.scr, m.toast)
	}
}

func TestAudienceThenBlockedSelection(t *testing.T) {
	deps, rec := testDeps(t)
	m := newModel(deps)

	// enter on the first audience both selects and continues
	m, _ = press(t, m, "enter", "enter")
	s := m.wiz.Session()
	if s.Answers().Audience != domain.AudienceHomeBuyers || s.Step() != domain.StepBundle {
		t.Fatalf("expected homeBuyers on bundle step, got %q/%s", s.Answers().Audience, s.Step())
	}

	m, _ = press(t, m, "enter")
	if len(m.missing) != 1 || m.missing[0] != wizard.LabelNoProducts {
		t.Fatalf("expected empty-selection gate, got %v", m.missing)
	}
	if !strings.Contains(m.View(), wizard.LabelNoProducts) {
		t.Fatalf("expected missing item in view")
	}

	names := rec.Names()
	if names[len(names)-1] != domain.EventValidationFailed {
		t.Fatalf("expected validation_failed event, got %v", names)
	}
}

func TestFailedAudienceSelectionStaysOnStep(t *testing.T) {
	deps, rec := testDeps(t)
	m := newModel(deps)
	m, _ = press(t, m, "enter")
	before := len(rec.Names())

	bogus := field{
		label: "martians",
		kind:  fieldOption,
		act: func(ctx context.Context, w *usecase.Wizard) error {
			return w.SelectAudience(ctx, "martians")
		},
	}
	next, _ := m.selectAndContinue(bogus)
	m = next.(model)

	if !strings.Contains(m.toast, `unknown audience "martians"`) {
		t.Fatalf("expected audience error toast, got %q", m.toast)
	}
	s := m.wiz.Session()
	if s.Step() != domain.StepAudience || s.Answers().Audience != "" {
		t.Fatalf("expected to stay on an empty audience step, got %q/%s", s.Answers().Audience, s.Step())
	}
	if len(m.missing) != 0 || len(rec.Names()) != before {
		t.Fatalf("expected no gate evaluation, missing=%v events=%v", m.missing, rec.Names())
	}
	if !strings.Contains(m.View(), "unknown audience") {
		t.Fatalf("expected toast in view")
	}
}

func TestSelectBundleAndAdvance(t *testing.T) {
	deps, _ := testDeps(t)
	m := newModel(deps)

	m, _ = press(t, m, "enter", "enter")
	// first product row is starter_single
	m, _ = press(t, m, " ")
	if !m.wiz.Session().Answers().IsSelected("starter_single") {
		t.Fatalf("expected starter_single selected, got %v", m.wiz.Session().Answers().SelectedProducts)
	}

	m, _ = press(t, m, "enter")
	if m.wiz.Session().Step() != domain.StepRequirements {
		t.Fatalf("expected requirements step, got %s", m.wiz.Session().Step())
	}

	m, _ = press(t, m, "esc")
	if m.wiz.Session().Step() != domain.StepBundle {
		t.Fatalf("expected back on bundle step, got %s", m.wiz.Session().Step())
	}
}

func TestProfessionalsHandOff(t *testing.T) {
	deps, _ := testDeps(t)
	root := t.TempDir()
	store := handoffstore.NewJSONStore(root, domain.DefaultConfig().Handoffs)
	deps.Handoff = usecase.NewHandoff(store, domain.DefaultConfig().Routes)

	m := newModel(deps)
	m, _ = press(t, m, "enter")

	// professionals is the last audience
	for range domain.Audiences()[1:] {
		m, _ = press(t, m, "down")
	}
	m, _ = press(t, m, "enter")
	if m.wiz.Session().Answers().Audience != domain.AudienceProfessionals {
		t.Fatalf("expected professionals, got %q", m.wiz.Session().Answers().Audience)
	}

	m, _ = press(t, m, " ", "enter")
	if !m.busy || m.exit == nil || m.exit.Kind != domain.DecisionContactSales {
		t.Fatalf("expected pending contact-sales hand-off, got busy=%v exit=%+v", m.busy, m.exit)
	}

	m, cmd := press(t, m, "enter")
	if cmd != nil {
		t.Fatalf("keys must be ignored while busy")
	}

	msg := cmdHandoff(deps.Handoff, m.wiz.Session().ID(), m.wiz.Session().Answers(), *m.exit)()
	next, _ := m.Update(msg)
	m = next.(model)

	if m.scr != screenDone || m.result == nil {
		t.Fatalf("expected done screen, got %v", m.scr)
	}
	view := m.View()
	if !strings.Contains(view, "/contact-sales?audience=professionals&interests=api") {
		t.Fatalf("expected contact-sales url in view:\n%s", view)
	}
	if !strings.Contains(view, "B2B API License") {
		t.Fatalf("expected interest label in message:\n%s", view)
	}
}

func TestEditTextField(t *testing.T) {
	deps, _ := testDeps(t)
	m := newModel(deps)
	m, _ = press(t, m, "enter")

	s := m.wiz.Session()
	if err := s.JumpToStep(domain.IndexOf(s.Steps(), domain.StepPersonal)); err != nil {
		t.Fatalf("JumpToStep: %v", err)
	}

	m, _ = press(t, m, "e")
	if !m.editing {
		t.Fatalf("expected editing mode")
	}
	m, _ = press(t, m, "E", "l", "e", "n", "i", "enter")
	if m.editing {
		t.Fatalf("expected editing to end")
	}
	if got := m.wiz.Session().Answers().Personal.FirstName; got != "Eleni" {
		t.Fatalf("expected first name saved, got %q", got)
	}
}

func TestFilesWithoutUploaderRecordNames(t *testing.T) {
	deps, _ := testDeps(t)
	m := newModel(deps)
	m, _ = press(t, m, "enter")

	s := m.wiz.Session()
	_ = s.JumpToStep(domain.IndexOf(s.Steps(), domain.StepUploads))

	m, _ = press(t, m, " ")
	m.input.SetValue("a.pdf, b.pdf")
	m, _ = press(t, m, "enter")

	refs := m.wiz.Session().Answers().Files[domain.DocIDDocument]
	if len(refs) != 2 || refs[1].Name != "b.pdf" {
		t.Fatalf("expected two refs, got %+v", refs)
	}
}

func TestSafeModelRecoversFromPanic(t *testing.T) {
	deps, _ := testDeps(t)
	m := newModel(deps)
	m.scr = screenWizard // no session: the wizard screen panics on update

	s := wrapSafe(m, nil)
	next, _ := s.Update(key("enter"))
	sm, ok := next.(safeModel)
	if !ok {
		t.Fatalf("expected safeModel, got %T", next)
	}
	if sm.m.scr != screenHome || sm.m.toast == "" {
		t.Fatalf("expected recovery to home with toast, got %+v", sm.m.scr)
	}
}
