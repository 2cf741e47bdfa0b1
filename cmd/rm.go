package cmd

import (
	"github.com/marcus/todos/internal/output"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete", "del"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id := args[0]

		mgr, cleanup, err := openManager(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer cleanup()

		known := false
		for _, t := range mgr.Tasks() {
			if t.ID == id {
				known = true
				break
			}
		}
		if !known {
			// Deleting an absent id is a no-op, not an error.
			output.Warning("no task with id %s", id)
			return nil
		}

		if err := mgr.Delete(ctx, id); err != nil {
			output.Error("failed to delete task: %v", err)
			return err
		}

		output.Success("DELETED %s", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
