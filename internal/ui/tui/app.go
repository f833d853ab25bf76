package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/usecase"
	"github.com/ellytic/onboard/internal/wizard"
)

type screen int

const (
	screenHome screen = iota
	screenWizard
	screenCatalog
	screenDone
)

const (
	menuStart   = "Start wizard"
	menuCatalog = "Browse catalog"
	menuInit    = "Init workspace here"
	menuQuit    = "Quit"
)

type menuItem struct {
	title string
	desc  string
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

type model struct {
	theme Theme
	deps  Deps

	scr      screen
	menu     list.Model
	products list.Model

	workspaceFound bool
	workspaceRoot  string
	toast          string

	wiz     *usecase.Wizard
	cursor  int
	missing []string
	editing bool
	input   textinput.Model
	busy    bool

	exit    *domain.Decision
	result  *usecase.HandoffResult
	exitErr error
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	t := DefaultTheme()

	items := []list.Item{
		menuItem{menuStart, "Choose your products and prepare your AFM application"},
		menuItem{menuCatalog, "Products, prices and how they are fulfilled"},
		menuItem{menuInit, "Write onboard.yaml and an editable catalog"},
		menuItem{menuQuit, "Exit"},
	}

	l := list.New(items, list.NewDefaultDelegate(), 60, 20)
	l.Title = "onboard"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	in := textinput.New()
	in.CharLimit = 256

	m := model{
		theme:    t,
		deps:     deps,
		scr:      screenHome,
		menu:     l,
		products: newCatalogList(deps),
		input:    in,
	}

	wd, err := os.Getwd()
	if err == nil && deps.WorkspaceLocator != nil {
		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr == nil {
			m.workspaceFound = true
			m.workspaceRoot = root
		}
	}

	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w, h := msg.Width, msg.Height
		m.menu.SetSize(w-4, h-10)
		m.products.SetSize(w-4, h-8)
		return m, nil

	case workspaceRefreshedMsg:
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		return m, nil

	case initWorkspaceDoneMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = "Workspace ready at " + msg.root
		return m, cmdRefreshWorkspace(m.deps)

	case handoffDoneMsg:
		m.busy = false
		res := msg.res
		m.result = &res
		m.exitErr = msg.err
		m.scr = screenDone
		return m, nil

	case attachDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = fmt.Sprintf("Attached %d file(s) as %s", len(msg.refs), msg.kind)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.scr {
		case screenHome:
			return m.updateHome(msg)
		case screenCatalog:
			return m.updateCatalog(msg)
		case screenWizard:
			return m.updateWizard(msg)
		case screenDone:
			switch msg.String() {
			case "enter", "esc", "q", "b":
				m.scr = screenHome
				m.wiz = nil
				return m, nil
			}
			return m, nil
		}
	}

	if m.scr == screenHome {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		it, ok := m.menu.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}
		m.toast = ""
		switch it.title {
		case menuQuit:
			return m, tea.Quit
		case menuStart:
			return m.startWizard()
		case menuCatalog:
			m.scr = screenCatalog
			return m, nil
		case menuInit:
			wd, err := os.Getwd()
			if err != nil {
				m.toast = userMessage(err)
				return m, nil
			}
			return m, cmdInitWorkspaceHere(m.deps, wd)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m model) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b", "q":
		m.scr = screenHome
		return m, nil
	}
	var cmd tea.Cmd
	m.products, cmd = m.products.Update(msg)
	return m, cmd
}

func (m model) startWizard() (tea.Model, tea.Cmd) {
	if m.deps.Catalog == nil {
		m.toast = "No catalog loaded"
		return m, nil
	}

	var opts []wizard.Option
	if m.deps.Now != nil {
		opts = append(opts, wizard.WithNow(m.deps.Now))
	}
	s := wizard.NewSession(m.deps.Catalog, opts...)

	wopts := []usecase.WizardOption{usecase.WithTracker(m.deps.Tracker)}
	if m.deps.Now != nil {
		wopts = append(wopts, usecase.WithEventClock(m.deps.Now))
	}
	m.wiz = usecase.NewWizard(s, wopts...)

	if m.deps.Logger != nil {
		m.deps.Logger.Info("wizard.session.started", "session_id", s.ID())
	}

	m.scr = screenWizard
	m.cursor = 0
	m.missing = nil
	m.exit = nil
	m.result = nil
	m.exitErr = nil
	m.toast = ""
	return m, nil
}

func (m model) updateWizard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	if m.editing {
		return m.updateEditing(msg)
	}

	fields := fieldsFor(m.wiz.Session().Step(), m.wiz)
	ctx := context.Background()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(fields)-1 {
			m.cursor++
		}
		return m, nil

	case " ", "x":
		if m.cursor >= len(fields) {
			return m, nil
		}
		f := fields[m.cursor]
		if f.editable() {
			return m.startEditing(f)
		}
		if err := f.act(ctx, m.wiz); err != nil {
			m.toast = userMessage(err)
		}
		m.clampCursor()
		return m, nil

	case "e":
		if m.cursor < len(fields) && fields[m.cursor].editable() {
			return m.startEditing(fields[m.cursor])
		}
		return m, nil

	case "enter":
		return m.continueStep()

	case "esc", "b":
		m.missing = nil
		m.toast = ""
		if !m.wiz.Session().Retreat() {
			m.scr = screenHome
			return m, nil
		}
		m.cursor = 0
		return m, nil

	case "q":
		m.scr = screenHome
		return m, nil
	}
	return m, nil
}

func (m model) continueStep() (tea.Model, tea.Cmd) {
	// Choosing an audience with enter both selects and continues.
	s := m.wiz.Session()
	if s.Step() == domain.StepAudience && s.Answers().Audience == "" {
		fields := fieldsFor(domain.StepAudience, m.wiz)
		if m.cursor < len(fields) {
			return m.selectAndContinue(fields[m.cursor])
		}
	}
	return m.advance()
}

// selectAndContinue applies f and only continues when it succeeded.
func (m model) selectAndContinue(f field) (tea.Model, tea.Cmd) {
	if err := f.act(context.Background(), m.wiz); err != nil {
		m.toast = userMessage(err)
		return m, nil
	}
	return m.advance()
}

func (m model) advance() (tea.Model, tea.Cmd) {
	s := m.wiz.Session()
	out := m.wiz.Continue(context.Background())
	m.toast = ""

	if out.Exit != nil {
		d := *out.Exit
		m.exit = &d
		m.missing = nil
		if m.deps.Handoff == nil {
			m.scr = screenDone
			return m, nil
		}
		m.busy = true
		return m, cmdHandoff(m.deps.Handoff, s.ID(), s.Answers(), d)
	}

	if !out.Gate.Passed() {
		m.missing = out.Gate.Missing
		return m, nil
	}
	m.missing = nil
	m.cursor = 0
	return m, nil
}

func (m model) startEditing(f field) (tea.Model, tea.Cmd) {
	m.editing = true
	m.input.Prompt = f.label + ": "
	m.input.Placeholder = ""
	if f.kind == fieldFiles {
		m.input.Placeholder = "path/to/file.pdf, path/to/other.pdf"
		m.input.SetValue("")
	} else {
		m.input.SetValue(f.value(m.wiz.Session().Answers()))
	}
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil

	case "enter":
		m.editing = false
		m.input.Blur()
		value := strings.TrimSpace(m.input.Value())

		fields := fieldsFor(m.wiz.Session().Step(), m.wiz)
		if m.cursor >= len(fields) {
			return m, nil
		}
		f := fields[m.cursor]
		switch f.kind {
		case fieldText:
			m.wiz.Session().Update(func(a *domain.WizardAnswers) { f.set(a, value) })
			return m, nil
		case fieldFiles:
			return m.attach(f.doc, splitPaths(value))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// attach uploads through the use case, or records the names when no uploader is wired.
func (m model) attach(kind domain.DocumentKind, paths []string) (tea.Model, tea.Cmd) {
	if m.deps.Attach != nil && len(paths) > 0 {
		m.busy = true
		return m, cmdAttach(m.deps.Attach, m.wiz.Session(), kind, paths)
	}

	refs := make([]domain.FileRef, 0, len(paths))
	for _, p := range paths {
		refs = append(refs, domain.FileRef{Name: p})
	}
	if err := m.wiz.Session().SetFiles(kind, refs); err != nil {
		m.toast = userMessage(err)
	}
	return m, nil
}

func (m *model) clampCursor() {
	n := len(fieldsFor(m.wiz.Session().Step(), m.wiz))
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("onboard") + "\n" +
		m.theme.Subtitle.Render("Greek tax number, bank account and property services for expats and heirs") + "\n"

	var workspaceBanner string
	if m.workspaceFound {
		workspaceBanner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s", m.workspaceRoot))
	} else {
		workspaceBanner = m.theme.Help.Render("No workspace: using the built-in catalog. Hand-offs are not saved.")
	}

	toast := ""
	if m.toast != "" {
		toast = "\n" + m.theme.Warning.Render(m.toast)
	}

	switch m.scr {
	case screenHome:
		help := m.theme.Help.Render("↑/↓ navigate • enter open • q quit")
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" + m.theme.Card.Render(m.menu.View()) + "\n" + help + toast)

	case screenCatalog:
		help := m.theme.Help.Render("↑/↓ navigate • esc back")
		return wrap.Render(header + "\n" + m.theme.Card.Render(m.products.View()) + "\n" + help)

	case screenWizard:
		return wrap.Render(header + "\n" + m.theme.Card.Render(m.wizardView()) + toast)

	case screenDone:
		return wrap.Render(header + "\n" + m.theme.Card.Render(m.doneView()))

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}
