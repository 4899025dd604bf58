// Package cli implements the interactive dashboard TUI and the scriptable
// subcommands around it.
package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/planops/sopdash/internal/controller"
	"github.com/planops/sopdash/internal/domain"
	"github.com/planops/sopdash/internal/service"
)

// App holds the wired services and session controller used by the CLI.
type App struct {
	Scenarios service.ScenarioService
	Alerts    service.AlertService
	Materials service.MaterialService

	Controller *controller.Controller

	// ExportDir is where CSV exports land; the TUI and the export
	// subcommand share it.
	ExportDir string

	// Import stores a scenario import file. Wired in main so the CLI does
	// not need the repositories directly.
	Import func(ctx context.Context, path string) (domain.ScenarioID, error)

	// IsInteractive reports whether stdin is a terminal. The bare root
	// command starts the TUI only when it is.
	IsInteractive func() bool
}

// addScenarioFlag registers the shared --scenario flag.
func addScenarioFlag(fs *pflag.FlagSet, target *string) {
	fs.StringVarP(target, "scenario", "s", "BASE", "Scenario ID to operate on")
}

// NewRootCmd creates the top-level "sopdash" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var importPath string

	root := &cobra.Command{
		Use:   "sopdash",
		Short: "S&OP scenario review dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if importPath != "" {
				if app.Import == nil {
					return fmt.Errorf("import is not available")
				}
				id, err := app.Import(cmd.Context(), importPath)
				if err != nil {
					return err
				}
				fmt.Printf("Imported scenario %s\n", id)
			}
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("stdin is not a terminal; use a subcommand (see --help)")
			}
			program := tea.NewProgram(newAppModel(app), tea.WithAltScreen())
			_, err := program.Run()
			return err
		},
	}
	root.Flags().StringVar(&importPath, "import", "",
		"Scenario JSON file to load into the store before the dashboard starts")

	root.AddCommand(
		newAlertsCmd(app),
		newRecommendCmd(app),
		newApplyCmd(app),
		newExportCmd(app),
		newImportCmd(app),
	)

	return root
}
