package tui

import (
	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/usecase"
)

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type initWorkspaceDoneMsg struct {
	root string
	err  error
}

type handoffDoneMsg struct {
	res usecase.HandoffResult
	err error
}

type attachDoneMsg struct {
	kind domain.DocumentKind
	refs []domain.FileRef
	err  error
}
