package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ellytic/onboard/internal/checkout"
	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/usecase"
	"github.com/ellytic/onboard/internal/wizard"
)

// routeReport is what route and review print.
type routeReport struct {
	SessionID string              `json:"session_id"`
	Kind      domain.DecisionKind `json:"kind"`
	Context   map[string]string   `json:"context"`
	Missing   []string            `json:"missing,omitempty"`
	URL       string              `json:"url,omitempty"`
	HandoffID string              `json:"handoff_id,omitempty"`
	LeadRef   string              `json:"lead_ref,omitempty"`
}

func newRouteReport(sessionID string, routes domain.RoutesConfig, d domain.Decision) routeReport {
	rep := routeReport{SessionID: sessionID, Kind: d.Kind, Context: d.Context, Missing: d.Missing}
	if rep.Context == nil {
		rep.Context = map[string]string{}
	}
	switch d.Kind {
	case domain.DecisionContactSales:
		rep.URL = d.URL(routes.ContactSales)
	case domain.DecisionDirectCheckout:
		rep.URL = d.URL(routes.Checkout)
	}
	return rep
}

func loadSession(ws *workspaceCtx, arg string) (*wizard.Session, error) {
	path, err := resolveAnswersPath(ws, arg)
	if err != nil {
		return nil, err
	}
	a, err := ws.answers.LoadAnswers(path)
	if err != nil {
		return nil, err
	}
	return wizard.Restore(ws.catalog, a)
}

func routeCmd() *cobra.Command {
	var workspace string
	var format string
	var save bool
	var submit bool

	c := &cobra.Command{
		Use:   "route <answers>",
		Short: "Decide where a product selection goes: direct checkout or the sales team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspaceOrDefault(workspace)
			if err != nil {
				return err
			}
			s, err := loadSession(ws, args[0])
			if err != nil {
				return err
			}

			d := checkout.Decide(s.Answers(), ws.catalog)
			rep := newRouteReport(s.ID(), ws.cfg.Routes, d)

			if d.Blocked() {
				if err := printRoute(cmd.OutOrStdout(), rep, format); err != nil {
					return err
				}
				return fmt.Errorf("routing blocked: %s", strings.Join(d.Missing, "; "))
			}

			var handoffErr error
			if save || submit {
				rep, handoffErr = handOff(cmd, ws, s, d, rep, submit)
			}

			if err := printRoute(cmd.OutOrStdout(), rep, format); err != nil {
				return err
			}
			return handoffErr
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	c.Flags().BoolVar(&save, "save", false, "Record the hand-off under handoffs/")
	c.Flags().BoolVar(&submit, "submit", false, "Record the hand-off and send contact-sales leads to leads.submit_url")
	return c
}

func handOff(cmd *cobra.Command, ws *workspaceCtx, s *wizard.Session, d domain.Decision, rep routeReport, submit bool) (routeReport, error) {
	if ws.store == nil {
		return rep, errors.New("saving a hand-off needs a workspace (tip: run `onboard init`)")
	}

	var opts []usecase.HandoffOption
	if submit {
		if ws.leads == nil {
			return rep, errors.New("leads.submit_url is not set in onboard.yaml")
		}
		opts = append(opts, usecase.WithLeadSubmitter(ws.leads))
	}

	res, err := usecase.NewHandoff(ws.store, ws.cfg.Routes, opts...).Execute(cmd.Context(), s.ID(), s.Answers(), d)
	rep.HandoffID = res.Handoff.ID
	rep.LeadRef = res.LeadRef
	return rep, err
}

func printRoute(w io.Writer, rep routeReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "pretty", "":
		printPrettyRoute(w, rep)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyRoute(w io.Writer, rep routeReport) {
	fmt.Fprintf(w, "Decision: %s\n", rep.Kind)
	if rep.URL != "" {
		fmt.Fprintf(w, "URL:      %s\n", rep.URL)
	}
	if rep.HandoffID != "" {
		fmt.Fprintf(w, "Handoff:  %s\n", rep.HandoffID)
	}
	if rep.LeadRef != "" {
		fmt.Fprintf(w, "Lead:     %s\n", rep.LeadRef)
	}

	if len(rep.Context) > 0 {
		keys := make([]string, 0, len(rep.Context))
		for k := range rep.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprintln(w, "Context:")
		for _, k := range keys {
			fmt.Fprintf(w, "  %s = %s\n", k, rep.Context[k])
		}
	}

	for _, m := range rep.Missing {
		fmt.Fprintf(w, "  ✗ %s\n", m)
	}
}

func reviewCmd() *cobra.Command {
	var workspace string

	c := &cobra.Command{
		Use:   "review <answers>",
		Short: "Check every wizard step of an answers file and show the final routing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspaceOrDefault(workspace)
			if err != nil {
				return err
			}
			s, err := loadSession(ws, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSteps(out, s)

			missing := s.Missing(domain.StepReview)
			d := checkout.Final(s.Answers(), ws.catalog, missing)
			fmt.Fprintln(out)
			printPrettyRoute(out, newRouteReport(s.ID(), ws.cfg.Routes, d))

			if d.Blocked() {
				return fmt.Errorf("review incomplete (%d missing item(s))", len(d.Missing))
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return c
}

func printSteps(w io.Writer, s *wizard.Session) {
	fmt.Fprintf(w, "Tier: %s\n\n", tierLabel(s.Tier()))
	for _, step := range s.Steps() {
		if step == domain.StepReview {
			continue
		}
		missing := s.Missing(step)
		mark := "✓"
		if len(missing) > 0 {
			mark = "✗"
		}
		fmt.Fprintf(w, "[%s] %s\n", mark, step.Title())
		for _, m := range missing {
			fmt.Fprintf(w, "    - %s\n", m)
		}
	}
}

func tierLabel(t domain.BundleTier) string {
	if t == domain.TierNone {
		return "none"
	}
	return string(t)
}
