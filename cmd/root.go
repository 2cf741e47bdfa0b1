package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/marcus/todos/internal/config"
	"github.com/marcus/todos/internal/manager"
	"github.com/marcus/todos/internal/store"
	"github.com/spf13/cobra"
)

var (
	version string
	baseDir string
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

var rootCmd = &cobra.Command{
	Use:   "todos",
	Short: "Personal task list manager",
	Long: `todos - A personal task list manager.

Tasks live in a local file or SQLite database, or on a remote todos server;
the same commands work against any backend.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir)
}

func initBaseDir() {
	var err error
	baseDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
}

// getBaseDir returns the base directory for the task list
func getBaseDir() string {
	return baseDir
}

// openStore builds the configured store. The returned cleanup func closes
// any underlying connection.
func openStore(baseDir string) (store.Store, func(), error) {
	cfg, err := config.Load(baseDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	switch cfg.Backend {
	case config.BackendSQLite:
		st, err := store.OpenSQLite(baseDir)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { st.Close() }, nil
	case config.BackendRemote:
		if cfg.RemoteURL == "" {
			return nil, nil, fmt.Errorf("remote backend configured without a server URL: run 'todos init --backend remote --url ...'")
		}
		return store.NewRemoteStore(cfg.RemoteURL, cfg.APIKey), func() {}, nil
	default:
		// File slot is the default backend.
		return store.NewFileStore(baseDir), func() {}, nil
	}
}

// openManager builds a manager over the configured store and syncs it.
func openManager(ctx context.Context) (*manager.Manager, func(), error) {
	st, cleanup, err := openStore(getBaseDir())
	if err != nil {
		return nil, nil, err
	}

	mgr := manager.New(st)
	if err := mgr.Initialize(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return mgr, cleanup, nil
}
