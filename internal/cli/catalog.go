package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ellytic/onboard/internal/catalog"
	"github.com/ellytic/onboard/internal/domain"
	"github.com/ellytic/onboard/internal/infra/yamlcatalog"
	"github.com/ellytic/onboard/internal/usecase"
)

func catalogCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate the product catalog",
	}

	c.AddCommand(catalogListCmd(), catalogShowCmd(), catalogValidateCmd())
	return c
}

func catalogListCmd() *cobra.Command {
	var workspace string
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products grouped by category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspaceOrDefault(workspace)
			if err != nil {
				return err
			}

			cats := ws.catalog.Categories()
			if category != "" {
				cats = []domain.Category{domain.Category(strings.ToLower(category))}
			}

			printCatalog(cmd.OutOrStdout(), ws.catalog, cats)
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; built-in catalog if none)")
	cmd.Flags().StringVar(&category, "category", "", "Only list one category: translytic|taxlytic|homelytic")
	return cmd
}

func printCatalog(w io.Writer, cat *catalog.Catalog, cats []domain.Category) {
	for _, c := range cats {
		products := cat.ProductsByCategory(c)
		if len(products) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\n", c)
		for _, p := range products {
			fmt.Fprintf(w, "  %-28s %-22s %-10s %s\n", p.ID, p.Price.Display, p.Role, p.Fulfillment)
		}
		fmt.Fprintln(w)
	}
}

func catalogShowCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "show <product>",
		Short: "Show one product as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspaceOrDefault(workspace)
			if err != nil {
				return err
			}

			p, ok := ws.catalog.ProductByID(domain.ProductID(args[0]))
			if !ok {
				return &domain.OpError{Op: "cli.catalog.show", Kind: domain.KindNotFound, Err: fmt.Errorf("unknown product %q", args[0])}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; built-in catalog if none)")
	return cmd
}

func catalogValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a catalog file (no path validates the built-in catalog)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			sum, err := usecase.NewValidateCatalog(yamlcatalog.NewLoader()).Execute(path)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), sum)
			return nil
		},
	}
	return cmd
}

func printSummary(w io.Writer, sum usecase.CatalogSummary) {
	fmt.Fprintln(w, "OK")
	fmt.Fprintf(w, "Products:      %d\n", sum.Products)

	cats := make([]string, 0, len(sum.ByCategory))
	for c := range sum.ByCategory {
		cats = append(cats, string(c))
	}
	sort.Strings(cats)
	for _, c := range cats {
		fmt.Fprintf(w, "  %-12s %d\n", c, sum.ByCategory[domain.Category(c)])
	}
	fmt.Fprintf(w, "Bundles:       %s\n", joinIDs(sum.Bundles))
	fmt.Fprintf(w, "Contact sales: %s\n", joinIDs(sum.ContactSales))
}

func recommendCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "recommend <audience>",
		Short: "List the products recommended for an audience",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ok := domain.ParseAudience(args[0])
			if !ok {
				return domain.InvalidInput("cli.recommend", "unknown audience %q", args[0])
			}

			ws, err := loadWorkspaceOrDefault(workspace)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			recs := ws.catalog.Recommended(a)
			if len(recs) == 0 {
				fmt.Fprintln(out, "(no recommendations)")
				return nil
			}
			for _, p := range recs {
				fmt.Fprintf(out, "- %s  %s\n", p.ID, p.Price.Display)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; built-in catalog if none)")
	return cmd
}

func quoteCmd() *cobra.Command {
	var workspace string
	var variant string
	var docs int

	cmd := &cobra.Command{
		Use:   "quote <product>...",
		Short: "Price a selection of products",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok := domain.ParseVariant(variant)
			if !ok {
				return domain.InvalidInput("cli.quote", "unknown variant %q", variant)
			}

			ws, err := loadWorkspaceOrDefault(workspace)
			if err != nil {
				return err
			}

			ids := make([]domain.ProductID, 0, len(args))
			for _, a := range args {
				ids = append(ids, domain.ProductID(a))
			}

			q, err := ws.catalog.Quote(catalog.QuoteRequest{Products: ids, Variant: v, TranslationDocs: docs})
			if err != nil {
				return err
			}

			printQuote(cmd.OutOrStdout(), q)
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; built-in catalog if none)")
	cmd.Flags().StringVar(&variant, "variant", string(domain.VariantSingle), "Price variant: single|couple|family")
	cmd.Flags().IntVar(&docs, "translation-docs", 0, "Number of documents for standalone translation (1-10)")
	return cmd
}

func printQuote(w io.Writer, q catalog.Quote) {
	for _, l := range q.Lines {
		amount := "-"
		if l.Priced {
			amount = l.Amount.String()
		}
		fmt.Fprintf(w, "  %-28s %10s   (%s)\n", l.ID, amount, l.Display)
	}
	fmt.Fprintf(w, "Total: %s\n", q.Total.String())
	if len(q.ContactSales) > 0 {
		fmt.Fprintf(w, "Priced by our team: %s\n", joinIDs(q.ContactSales))
	}
}

func joinIDs(ids []domain.ProductID) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, string(id))
	}
	return strings.Join(parts, ", ")
}
