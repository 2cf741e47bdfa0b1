package cmd

import (
	"github.com/marcus/todos/internal/output"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:     "done <id>",
	Aliases: []string{"toggle", "check"},
	Short:   "Toggle a task's completion",
	Long:    `Toggle a task between active and completed. Running it again flips it back.`,
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
			output.Warning("no task with id %s", id)
			return nil
		}

		if err := mgr.ToggleCompleted(ctx, id); err != nil {
			output.Error("failed to update task: %v", err)
			return err
		}

		for _, t := range mgr.Tasks() {
			if t.ID == id {
				if t.Completed {
					output.Success("DONE %s", id)
				} else {
					output.Success("REOPENED %s", id)
				}
				break
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
