package cmd

import (
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/marcus/todos/internal/dateparse"
	"github.com/marcus/todos/internal/output"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:     "add [text]",
	Aliases: []string{"new", "create"},
	Short:   "Add a new task",
	Long: `Add a new task. With no arguments, prompts interactively.

The category defaults to "General". Due dates accept exact dates
(2026-03-01), relative offsets (+7d, +2w, +1m), day names, and the keywords
today, tomorrow, next-week, next-month.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		text := strings.Join(args, " ")
		category, _ := cmd.Flags().GetString("category")
		dueStr, _ := cmd.Flags().GetString("due")

		if len(args) == 0 {
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Task").Placeholder("What needs to be done?").Value(&text),
				huh.NewInput().Title("Category").Placeholder("General").Value(&category),
				huh.NewInput().Title("Due date").Placeholder("tomorrow, +7d, 2026-03-01 ...").Value(&dueStr),
			))
			if err := form.Run(); err != nil {
				return err
			}
		}

		var due *time.Time
		if strings.TrimSpace(dueStr) != "" {
			d, err := dateparse.Parse(dueStr)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			due = &d
		}

		mgr, cleanup, err := openManager(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer cleanup()

		task, err := mgr.Add(ctx, text, category, due)
		if err != nil {
			output.Error("failed to add task: %v", err)
			return err
		}
		if task == nil {
			output.Warning("nothing to add: task text is empty")
			return nil
		}

		output.Success("ADDED %s", task.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringP("category", "c", "", "Task category (defaults to General)")
	addCmd.Flags().StringP("due", "d", "", "Due date")
}
