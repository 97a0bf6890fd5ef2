package cmd

import (
	"context"

	"github.com/bitswalk/staffdb/src/common/output"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	Long:  `Checks the health status of the staffd server and its store.`,
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	resp, err := getClient().Health(context.Background())
	if err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), resp, func() error {
		output.PrintTable(
			[]string{"FIELD", "VALUE"},
			[][]string{
				{"Status", resp.Status},
				{"Database", resp.Database},
				{"Driver", resp.Driver},
				{"Timestamp", resp.Timestamp},
			},
		)
		return nil
	})
}
