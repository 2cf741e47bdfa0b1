package cmd

import (
	"github.com/marcus/todos/internal/config"
	"github.com/marcus/todos/internal/output"
	"github.com/marcus/todos/internal/store"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a task list in the current directory",
	Long:  `Initialize a task list here, choosing which backend stores it (file, sqlite, or remote).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		backend, _ := cmd.Flags().GetString("backend")
		url, _ := cmd.Flags().GetString("url")
		apiKey, _ := cmd.Flags().GetString("api-key")

		if err := config.SetBackend(baseDir, backend, url, apiKey); err != nil {
			output.Error("%v", err)
			return err
		}

		// Create the database up front so the first command doesn't have to.
		if backend == config.BackendSQLite {
			st, err := store.OpenSQLite(baseDir)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			st.Close()
		}

		output.Success("Initialized task list (backend: %s)", backend)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringP("backend", "b", config.BackendFile, "Storage backend (file, sqlite, remote)")
	initCmd.Flags().String("url", "", "Remote server URL (remote backend)")
	initCmd.Flags().String("api-key", "", "Remote server API key")
}
