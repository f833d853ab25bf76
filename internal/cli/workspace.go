package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ellytic/onboard/internal/catalog"
	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/infra/fsupload"
	"github.com/ellytic/onboard/internal/infra/handoffstore"
	"github.com/ellytic/onboard/internal/infra/httplead"
	"github.com/ellytic/onboard/internal/infra/workspacefinder"
	"github.com/ellytic/onboard/internal/infra/yamlanswers"
	"github.com/ellytic/onboard/internal/infra/yamlcatalog"
	"github.com/ellytic/onboard/internal/ports"
)

const answersDir = "answers"

type workspaceCtx struct {
	// root is empty when running outside a workspace with the built-in catalog.
	root string
	cfg  domain.Config

	catalog *catalog.Catalog
	answers ports.AnswersLoader

	store   ports.HandoffStore
	leads   ports.LeadSubmitter
	uploads ports.DocumentUploader
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	var configs ports.ConfigLoader = workspacefinder.NewConfigLoader()
	cfg, err := configs.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	var catalogs ports.CatalogLoader = yamlcatalog.NewLoader()
	cat, err := catalogs.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	ws := &workspaceCtx{
		root:    root,
		cfg:     cfg,
		catalog: cat,
		answers: yamlanswers.NewLoader(yamlanswers.WithCatalog(cat)),
		store:   handoffstore.NewJSONStore(root, cfg.Handoffs),
		uploads: fsupload.New(root),
	}
	if cfg.Leads.SubmitURL != "" {
		ws.leads = httplead.New(cfg.Leads)
	}
	return ws, nil
}

// loadWorkspaceOrDefault falls back to the built-in catalog when no workspace
// was requested and none is found from the working directory.
func loadWorkspaceOrDefault(workspaceFlag string) (*workspaceCtx, error) {
	if strings.TrimSpace(workspaceFlag) != "" {
		return loadWorkspace(workspaceFlag)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	if _, err := workspacefinder.NewFinder().FindRoot(wd); err == nil {
		return loadWorkspace("")
	}

	cat, err := yamlcatalog.Default()
	if err != nil {
		return nil, err
	}
	return &workspaceCtx{
		cfg:     domain.DefaultConfig(),
		catalog: cat,
		answers: yamlanswers.NewLoader(yamlanswers.WithCatalog(cat)),
	}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `onboard init`): %w", wd, err)
	}
	return root, nil
}

// resolveAnswersPath accepts a path, a file name under answers/, or a bare name.
func resolveAnswersPath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", fmt.Errorf("answers file is required")
	}

	if looksLikePath(in) || ws.root == "" {
		p := in
		if !filepath.IsAbs(p) && ws.root != "" && !fileExists(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p), nil
	}

	dir := filepath.Join(ws.root, answersDir)

	if hasYAMLExt(in) {
		p := filepath.Join(dir, in)
		if fileExists(p) {
			return p, nil
		}
		return in, nil
	}

	for _, ext := range []string{".yaml", ".yml"} {
		p := filepath.Join(dir, in+ext)
		if fileExists(p) {
			return p, nil
		}
	}

	return "", fmt.Errorf("answers %q not found in %q", in, dir)
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
