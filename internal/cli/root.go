package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ellytic/onboard/internal/buildinfo"
	"github.com/ellytic/onboard/internal/infra/analytics"
	"github.com/ellytic/onboard/internal/infra/fsworkspace"
	"github.com/ellytic/onboard/internal/infra/logger"
	"github.com/ellytic/onboard/internal/infra/workspacefinder"
	"github.com/ellytic/onboard/internal/ui/tui"
	"github.com/ellytic/onboard/internal/usecase"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var workspace string

	cmd := &cobra.Command{
		Use:          "onboard",
		Short:        "onboard: product selection and AFM onboarding wizard",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			wd, err := os.Getwd()
			if err != nil {
				wd = "."
			}
			wd, _ = filepath.Abs(wd)

			finder := workspacefinder.NewFinder()

			logRoot := wd
			if root, ferr := finder.FindRoot(wd); ferr == nil && root != "" {
				logRoot = root
			}

			cleanup, _ := logger.Setup(logger.Config{
				Root:  logRoot,
				Debug: debug,
			})
			if cleanup != nil {
				defer func() { _ = cleanup() }()
			}

			ws, err := loadWorkspaceOrDefault(workspace)
			if err != nil {
				return err
			}

			deps := tui.Deps{
				WorkspaceLocator:     finder,
				WorkspaceInitializer: fsworkspace.NewInitializer(),
				Catalog:              ws.catalog,
				Tracker:              analytics.NewLogTracker(logger.L()),
				Logger:               logger.L(),
				Debug:                debug,
			}
			if ws.store != nil {
				var opts []usecase.HandoffOption
				if ws.leads != nil {
					opts = append(opts, usecase.WithLeadSubmitter(ws.leads))
				}
				deps.Handoff = usecase.NewHandoff(ws.store, ws.cfg.Routes, opts...)
			}
			if ws.uploads != nil {
				deps.Attach = usecase.NewAttachDocuments(ws.uploads)
			}

			return tui.Run(deps)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .onboard/logs/onboard.log")
	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")

	cmd.AddCommand(
		catalogCmd(),
		recommendCmd(),
		quoteCmd(),
		routeCmd(),
		reviewCmd(),
		inspectCmd(),
		initCmd(),
		versionCmd(),
	)
	return cmd
}

func initCmd() *cobra.Command {
	var path string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create an onboard workspace (onboard.yaml, catalog.yaml, answers/)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := path
			if root == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("get working directory: %w", err)
				}
				root = wd
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(root, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Workspace ready at %s\n", root)
			return nil
		},
	}

	c.Flags().StringVarP(&path, "path", "p", "", "Directory to initialize (default: current directory)")
	c.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return c
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
