package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/planops/sopdash/internal/cli/formatter"
	"github.com/planops/sopdash/internal/domain"
)

func newRecommendCmd(app *App) *cobra.Command {
	var scenarioID string

	cmd := &cobra.Command{
		Use:   "recommend <alert-id>",
		Short: "Show the recommendation for one alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alertID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("alert ID must be a number: %q", args[0])
			}

			ctx := context.Background()
			if err := app.Controller.LoadScenario(ctx, domain.ScenarioID(scenarioID)); err != nil {
				return err
			}
			rec, err := app.Controller.Describe(alertID)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Bold(rec.Title))
			for i, step := range rec.Steps {
				fmt.Printf("  %d. %s\n", i+1, step)
			}
			fmt.Printf("Impact: %s\n", rec.Impact)
			return nil
		},
	}

	addScenarioFlag(cmd.Flags(), &scenarioID)
	return cmd
}

func newApplyCmd(app *App) *cobra.Command {
	var scenarioID string

	cmd := &cobra.Command{
		Use:   "apply <alert-id>",
		Short: "Apply one alert's recommendation and print the change",
		Long: `Apply one alert's recommendation to an in-memory copy of the scenario
and print the resulting change record. The stored scenario is not modified;
this previews what the interactive dashboard would do.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alertID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("alert ID must be a number: %q", args[0])
			}

			ctx := context.Background()
			if err := app.Controller.LoadScenario(ctx, domain.ScenarioID(scenarioID)); err != nil {
				return err
			}
			record, err := app.Controller.ApplyRecommendation(alertID)
			if err != nil {
				return err
			}
			if record == nil {
				fmt.Printf("Alert %d has no data to adjust; nothing changed.\n", alertID)
				return nil
			}

			fmt.Printf("%s for %s, week %s\n",
				formatter.Bold(string(record.ChangeType)), record.Material(), record.Week)
			fmt.Printf("  %d -> %d\n", record.Before, record.After)
			fmt.Printf("  %s\n", record.Impact)
			return nil
		},
	}

	addScenarioFlag(cmd.Flags(), &scenarioID)
	return cmd
}
