package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcus/todos/internal/api"
	"github.com/marcus/todos/internal/output"
	"github.com/marcus/todos/internal/store"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the todos task server",
	Long: `Run the HTTP task server that remote-backed clients talk to.
Tasks are stored in a SQLite database under the current directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		listen, _ := cmd.Flags().GetString("listen")
		apiKey, _ := cmd.Flags().GetString("api-key")
		origins, _ := cmd.Flags().GetStringSlice("origin")

		st, err := store.OpenSQLite(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer st.Close()

		srv := api.NewServer(api.Config{
			ListenAddr:     listen,
			APIKey:         apiKey,
			AllowedOrigins: origins,
		}, st)

		if err := srv.Start(); err != nil {
			output.Error("%v", err)
			return err
		}
		slog.Info("todos server listening", "addr", listen)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		slog.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", "127.0.0.1:8787", "Listen address")
	serveCmd.Flags().String("api-key", "", "Require this bearer API key")
	serveCmd.Flags().StringSlice("origin", nil, "Allowed CORS origins")
}
