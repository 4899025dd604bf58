package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Validate and store a scenario import file",
		Long: `Import reads a JSON scenario file, validates it against the planning
schema and stores it alongside the built-in scenarios. The built-in
scenario IDs are reserved and cannot be overwritten.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Import == nil {
				return fmt.Errorf("import is not available")
			}
			id, err := app.Import(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported scenario %s\n", id)
			return nil
		},
	}
}
