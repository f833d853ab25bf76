package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ellytic/onboard/internal/usecase/inspect"
)

type inspectFlags struct {
	get      []string
	exists   []string
	eq       []string
	contains []string
	matches  []string
	length   []string
}

func inspectCmd() *cobra.Command {
	var workspace string
	var f inspectFlags

	c := &cobra.Command{
		Use:   "inspect <answers>",
		Short: "Query a session snapshot with JSONPath and check expectations",
		Long: `Builds the session snapshot for an answers file (answers, steps, missing
items and routing decision) and evaluates JSONPath expressions against it.

  onboard inspect answers/example.yaml --get url='$.decision.url'
  onboard inspect example --eq '$.decision.kind=direct_checkout' --len '$.missing=0'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspaceOrDefault(workspace)
			if err != nil {
				return err
			}
			s, err := loadSession(ws, args[0])
			if err != nil {
				return err
			}

			exprs, exps, err := f.parse()
			if err != nil {
				return err
			}

			doc, err := inspect.Take(s, ws.cfg.Routes).Document()
			if err != nil {
				return err
			}

			if len(exprs) == 0 && len(exps) == 0 {
				exprs = map[string]string{"snapshot": "$"}
			}

			_, queries := inspect.Query(doc, exprs)
			checks := inspect.Evaluate(doc, exps)

			fails := printInspect(cmd.OutOrStdout(), queries, checks)
			if fails > 0 {
				return fmt.Errorf("inspect failed (%d failed check(s))", fails)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringArrayVar(&f.get, "get", nil, "Print a value: name=<jsonpath>")
	c.Flags().StringArrayVar(&f.exists, "exists", nil, "Check that a path resolves: <jsonpath>")
	c.Flags().StringArrayVar(&f.eq, "eq", nil, "Check equality: <jsonpath>=<value>")
	c.Flags().StringArrayVar(&f.contains, "contains", nil, "Check substring: <jsonpath>=<value>")
	c.Flags().StringArrayVar(&f.matches, "matches", nil, "Check regex: <jsonpath>=<regex>")
	c.Flags().StringArrayVar(&f.length, "len", nil, "Check length: <jsonpath>=<n>")
	return c
}

func (f inspectFlags) parse() (map[string]string, []inspect.Expectation, error) {
	exprs := map[string]string{}
	for _, g := range f.get {
		name, expr, ok := strings.Cut(g, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, nil, fmt.Errorf("invalid --get %q (expected name=<jsonpath>)", g)
		}
		exprs[strings.TrimSpace(name)] = expr
	}

	var exps []inspect.Expectation
	for _, p := range f.exists {
		exps = append(exps, inspect.Expectation{Path: p, Exists: true})
	}

	pairs := []struct {
		flag string
		in   []string
		set  func(e *inspect.Expectation, v string) error
	}{
		{"eq", f.eq, func(e *inspect.Expectation, v string) error { e.Eq = &v; return nil }},
		{"contains", f.contains, func(e *inspect.Expectation, v string) error { e.Contains = &v; return nil }},
		{"matches", f.matches, func(e *inspect.Expectation, v string) error { e.Matches = &v; return nil }},
		{"len", f.length, func(e *inspect.Expectation, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil || n < 0 {
				return fmt.Errorf("expected a non-negative integer, got %q", v)
			}
			e.Len = &n
			return nil
		}},
	}
	for _, p := range pairs {
		for _, raw := range p.in {
			path, value, ok := splitAssign(raw)
			if !ok {
				return nil, nil, fmt.Errorf("invalid --%s %q (expected <jsonpath>=<value>)", p.flag, raw)
			}
			e := inspect.Expectation{Path: path}
			if err := p.set(&e, value); err != nil {
				return nil, nil, fmt.Errorf("invalid --%s %q: %w", p.flag, raw, err)
			}
			exps = append(exps, e)
		}
	}
	return exprs, exps, nil
}

// splitAssign splits on the first '=' that is not part of an "==" comparison,
// so filter expressions like $.a[?(@.k=="v")] survive.
func splitAssign(s string) (string, string, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] != '=' {
			continue
		}
		if (i > 0 && strings.ContainsRune("=!<>", rune(s[i-1]))) || (i+1 < len(s) && s[i+1] == '=') {
			if i+1 < len(s) && s[i+1] == '=' {
				i++
			}
			continue
		}
		path := strings.TrimSpace(s[:i])
		if path == "" {
			return "", "", false
		}
		return path, s[i+1:], true
	}
	return "", "", false
}

func printInspect(w io.Writer, queries []inspect.QueryResult, checks []inspect.CheckResult) int {
	fails := 0
	for _, q := range queries {
		if !q.Success {
			fails++
			fmt.Fprintf(w, "✗ %s — %s\n", q.Name, q.Message)
			continue
		}
		fmt.Fprintf(w, "%s = %s\n", q.Name, q.Value)
	}
	for _, c := range checks {
		mark := "✓"
		if !c.Passed {
			mark = "✗"
			fails++
		}
		fmt.Fprintf(w, "%s %s — %s\n", mark, c.Name, c.Message)
	}
	return fails
}
