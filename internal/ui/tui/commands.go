package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/usecase"
	"github.com/ellytic/onboard/internal/wizard"
)

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return workspaceRefreshedMsg{cwd: "", found: false, err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: findErr}
		}

		return workspaceRefreshedMsg{cwd: wd, found: true, root: root, err: nil}
	}
}

func cmdInitWorkspaceHere(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: root, err: errors.New("WorkspaceInitializer is nil")}
		}

		err := deps.WorkspaceInitializer.Init(domain.WorkspaceSpec{Root: root}, false)
		return initWorkspaceDoneMsg{root: root, err: err}
	}
}

func cmdHandoff(uc *usecase.Handoff, sessionID string, a domain.WizardAnswers, d domain.Decision) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		res, err := uc.Execute(ctx, sessionID, a, d)
		return handoffDoneMsg{res: res, err: err}
	}
}

// cmdAttach opens each path and uploads it. The session list is only replaced
// when every upload succeeds.
func cmdAttach(uc *usecase.AttachDocuments, s *wizard.Session, kind domain.DocumentKind, paths []string) tea.Cmd {
	return func() tea.Msg {
		uploads := make([]usecase.Upload, 0, len(paths))
		var files []*os.File
		defer func() {
			for _, f := range files {
				_ = f.Close()
			}
		}()

		for _, p := range paths {
			f, err := os.Open(p)
			if err != nil {
				return attachDoneMsg{kind: kind, err: &domain.OpError{Op: "tui.attach", Kind: domain.KindNotFound, Path: p, Err: err}}
			}
			files = append(files, f)
			uploads = append(uploads, usecase.Upload{Name: filepath.Base(p), Body: f})
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		refs, err := uc.Execute(ctx, s, kind, uploads)
		return attachDoneMsg{kind: kind, refs: refs, err: err}
	}
}

func splitPaths(in string) []string {
	var out []string
	for _, p := range strings.Split(in, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
