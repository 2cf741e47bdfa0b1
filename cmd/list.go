package cmd

import (
	"time"

	"github.com/marcus/todos/internal/config"
	"github.com/marcus/todos/internal/models"
	"github.com/marcus/todos/internal/output"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long:    `List tasks, optionally narrowed to one category. The last used filter is remembered.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		baseDir := getBaseDir()

		mgr, cleanup, err := openManager(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer cleanup()

		filter, _ := cmd.Flags().GetString("category")
		if all, _ := cmd.Flags().GetBool("all"); all {
			filter = models.FilterAll
		}
		if filter == "" {
			cfg, err := config.Load(baseDir)
			if err == nil && cfg.LastFilter != "" {
				filter = cfg.LastFilter
			} else {
				filter = models.FilterAll
			}
		}
		mgr.SetFilter(filter)
		if err := config.SetLastFilter(baseDir, filter); err != nil {
			output.Warning("failed to remember filter: %v", err)
		}

		tasks := mgr.Filtered()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return output.JSON(map[string]any{
				"filter": filter,
				"tasks":  tasks,
				"stats":  mgr.Stats(),
			})
		}

		if filter != models.FilterAll {
			output.Info("Filter: %s", filter)
		}
		if len(tasks) == 0 {
			output.Info("No tasks. Add one with 'todos add'.")
			return nil
		}

		now := time.Now()
		for i := range tasks {
			output.Info("%s", output.FormatTask(&tasks[i], now))
		}
		output.Info("")
		output.Info("%s", output.FormatStats(mgr.Stats()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("category", "c", "", "Only tasks in this category")
	listCmd.Flags().Bool("all", false, "Ignore the remembered filter")
	listCmd.Flags().Bool("json", false, "JSON output")
}
