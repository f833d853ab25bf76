// Package fsworkspace lays out a new onboard workspace on disk.
package fsworkspace

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/infra/yamlcatalog"
	"github.com/ellytic/onboard/internal/ports"
)

//go:embed templates
var templatesFS embed.FS

// CatalogFile is the editable copy of the built-in catalog.
const CatalogFile = "catalog.yaml"

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

// Init creates the workspace directories and writes the templates. Existing
// files are kept unless force is set.
func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) error {
	root := filepath.Clean(spec.Root)

	dirs := []string{
		filepath.Join(root, "answers"),
		filepath.Join(root, "handoffs"),
		filepath.Join(root, ".onboard", "logs"),
	}

	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}

	if err := ensureGitignore(root); err != nil {
		return err
	}

	if err := writeFile(filepath.Join(root, CatalogFile), yamlcatalog.DefaultYAML(), force); err != nil {
		return err
	}

	return fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		b, err := fs.ReadFile(templatesFS, p)
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(p, "templates/")
		return writeFile(filepath.Join(root, filepath.FromSlash(rel)), b, force)
	})
}

func writeFile(dst string, b []byte, force bool) error {
	if !force {
		if _, err := os.Stat(dst); err == nil {
			return nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	// answer snapshots hold personal data
	mode := fs.FileMode(0o644)
	if strings.Contains(filepath.ToSlash(dst), "/answers/") {
		mode = 0o600
	}
	return os.WriteFile(dst, b, mode)
}

func ensureGitignore(root string) error {
	const header = "# onboard"
	entries := []string{
		"handoffs/",
		".onboard/",
		"answers/*.local.yaml",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 64)

	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
