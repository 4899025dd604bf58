package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/planops/sopdash/internal/domain"
	"github.com/planops/sopdash/internal/export"
)

func newExportCmd(app *App) *cobra.Command {
	var scenarioID string
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a scenario's alerts and raw data as CSV files",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id := domain.ScenarioID(scenarioID)

			ds, err := app.Scenarios.Load(ctx, id)
			if err != nil {
				return err
			}
			alerts, err := app.Alerts.ListByScenario(ctx, id)
			if err != nil {
				return err
			}
			materials, err := app.Materials.Index(ctx)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}

			// Empty views are a no-op: report, write nothing.
			if len(alerts) == 0 {
				fmt.Printf("%s: no alerts to export\n", id)
			} else {
				alertsPath := filepath.Join(outDir, export.AlertsFilename(id))
				if err := writeFile(alertsPath, func(f *os.File) error {
					return export.WriteAlertsCSV(f, alerts, materials)
				}); err != nil {
					return err
				}
				fmt.Printf("Wrote %s\n", alertsPath)
			}

			if len(ds.RawRows) == 0 {
				fmt.Printf("%s: no raw data to export\n", id)
			} else {
				rawPath := filepath.Join(outDir, export.RawDataFilename(id))
				if err := writeFile(rawPath, func(f *os.File) error {
					return export.WriteRawCSV(f, ds)
				}); err != nil {
					return err
				}
				fmt.Printf("Wrote %s\n", rawPath)
			}
			return nil
		},
	}

	addScenarioFlag(cmd.Flags(), &scenarioID)
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory to write CSV files into")
	return cmd
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
