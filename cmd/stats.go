package cmd

import (
	"github.com/marcus/todos/internal/models"
	"github.com/marcus/todos/internal/output"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts",
	Long:  `Show total, active and completed counts, over one category or the whole collection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		mgr, cleanup, err := openManager(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer cleanup()

		filter, _ := cmd.Flags().GetString("category")
		if filter == "" {
			filter = models.FilterAll
		}
		mgr.SetFilter(filter)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return output.JSON(mgr.Stats())
		}

		if filter != models.FilterAll {
			output.Info("Filter: %s", filter)
		}
		output.Info("%s", output.FormatStats(mgr.Stats()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringP("category", "c", "", "Only count tasks in this category")
	statsCmd.Flags().Bool("json", false, "JSON output")
}
