package cmd

import (
	"github.com/marcus/todos/internal/models"
	"github.com/marcus/todos/internal/output"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"cats"},
	Short:   "List categories",
	Long:    `List the distinct categories in the collection, in order of first appearance.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		mgr, cleanup, err := openManager(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer cleanup()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return output.JSON(mgr.Categories())
		}

		for _, c := range mgr.Categories() {
			if c == models.FilterAll {
				continue
			}
			output.Info("%s", c)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)

	categoriesCmd.Flags().Bool("json", false, "JSON output")
}
