package domain

// WorkspaceSpec describes where an onboard workspace is created.
type WorkspaceSpec struct {
	Root string
}
