package tui

import (
	"log/slog"
	"time"

	"github.com/ellytic/onboard/internal/catalog"
	"github.com/ellytic/onboard/internal/ports"
	"github.com/ellytic/onboard/internal/usecase"
)

type Deps struct {
	WorkspaceLocator     ports.WorkspaceLocator
	WorkspaceInitializer ports.WorkspaceInitializer

	Catalog *catalog.Catalog
	Tracker ports.EventTracker

	// Handoff and Attach are optional. Without Handoff the final decision is
	// only displayed; without Attach file names are recorded as typed.
	Handoff *usecase.Handoff
	Attach  *usecase.AttachDocuments

	Now    func() time.Time
	Logger *slog.Logger
	Debug  bool
}
