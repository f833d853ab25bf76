package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ellytic/onboard/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			switch {
			case strings.Contains(oe.Op, "add_product"), strings.Contains(err.Error(), "unknown product"):
				return "Unknown product"
			case strings.Contains(oe.Op, "yamlcatalog"):
				return "Catalog not found"
			case strings.Contains(oe.Op, "yamlanswers"):
				return "Answers file not found"
			case strings.Contains(oe.Op, "workspacefinder.findroot"):
				return "Workspace not found"
			case oe.Path != "":
				return "File not found: " + filepath.Base(oe.Path)
			}
			return "Not found"

		case domain.KindInvalidInput:
			msg := "Invalid input"
			if oe.Err != nil {
				detail := strings.TrimSuffix(oe.Err.Error(), ": "+domain.ErrInvalidInput.Error())
				if detail != "" {
					msg += ": " + detail
				}
			}
			return msg

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			line := extractLine(err.Error())
			if line != "" {
				return "Invalid YAML at " + base + " line " + line
			}

			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			return "Invalid config"

		case domain.KindExecution:
			if strings.Contains(oe.Op, "httplead") {
				return "Could not reach the sales team (saved locally)"
			}
			return "Unexpected error (see logs)"

		default:
			return "Unexpected error (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		line := extractLine(err.Error())
		if line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}

	return "Unexpected error (see logs)"
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
