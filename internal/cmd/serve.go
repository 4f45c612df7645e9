package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gravitrone/treenotes/internal/config"
	"github.com/gravitrone/treenotes/internal/logging"
	"github.com/gravitrone/treenotes/internal/server"
	"github.com/gravitrone/treenotes/internal/storage"
)

// ServeCmd returns the `treenotes serve` command.
func ServeCmd() *cobra.Command {
	var (
		addr     string
		dbPath   string
		treePath string
		level    string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reference notes backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.New(cmd.ErrOrStderr(), logging.ParseLevel(level))

			repo, err := storage.Open(dbPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(repo, server.NewTreeSource(treePath, logger), logger)
			return srv.Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8000", "listen address")
	cmd.Flags().StringVar(&dbPath, "db", filepath.Join(config.Dir(), "notes.db"), "sqlite database path")
	cmd.Flags().StringVar(&treePath, "tree", "", "yaml file with the content tree")
	cmd.Flags().StringVar(&level, "log-level", "info", "debug, info, warn or error")
	return cmd
}
