package cmd

import (
	"strings"

	"github.com/marcus/todos/internal/output"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id> <text>",
	Short: "Replace a task's text",
	Long:  `Replace a task's text. Every other field is left untouched.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id := args[0]
		text := strings.Join(args[1:], " ")

		mgr, cleanup, err := openManager(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer cleanup()

		if strings.TrimSpace(text) == "" {
			output.Warning("nothing to save: new text is empty")
			return nil
		}

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

		if err := mgr.EditText(ctx, id, text); err != nil {
			output.Error("failed to update task: %v", err)
			return err
		}

		output.Success("UPDATED %s", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
