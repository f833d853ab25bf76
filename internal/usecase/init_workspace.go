package usecase

import (
	"path/filepath"

	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/infra/logger"
	"github.com/ellytic/onboard/internal/ports"
)

// InitWorkspace scaffolds onboard.yaml, an editable catalog and an example
// answers file.
type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

// Execute initializes root. Existing files are kept unless force is set.
func (uc *InitWorkspace) Execute(root string, force bool) error {
	if root == "" {
		return domain.InvalidInput("usecase.init_workspace", "workspace root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return &domain.OpError{Op: "usecase.init_workspace", Kind: domain.KindInvalidInput, Path: root, Err: err}
	}

	if err := uc.initializer.Init(domain.WorkspaceSpec{Root: abs}, force); err != nil {
		return err
	}
	logger.L().Info("workspace.initialized", "root", abs, "force", force)
	return nil
}
