package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planops/sopdash/internal/cli/formatter"
	"github.com/planops/sopdash/internal/domain"
)

func newAlertsCmd(app *App) *cobra.Command {
	var scenarioID string

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List a scenario's alerts by severity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id := domain.ScenarioID(scenarioID)

			alerts, err := app.Alerts.ListByScenario(ctx, id)
			if err != nil {
				return err
			}
			materials, err := app.Materials.Index(ctx)
			if err != nil {
				return err
			}

			summary := domain.Summarize(alerts)
			fmt.Printf("%s: %d alerts (%d critical, %d capacity, %d supporting)\n\n",
				id, summary.Total(), summary.Critical, summary.Capacity, summary.Supporting)

			rows := make([][]string, 0, len(alerts))
			for _, a := range alerts {
				rows = append(rows, []string{
					fmt.Sprintf("%d", a.ID),
					formatter.AlertBadge(a.Type),
					a.Week,
					domain.MaterialName(materials, a.MaterialID),
					a.Description,
				})
			}
			fmt.Print(formatter.RenderTable(
				[]string{"ID", "Type", "Week", "Material", "Description"},
				rows,
				[]formatter.Align{formatter.AlignRight},
			))
			return nil
		},
	}

	addScenarioFlag(cmd.Flags(), &scenarioID)
	return cmd
}
