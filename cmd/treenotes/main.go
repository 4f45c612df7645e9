package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gravitrone/treenotes/internal/api"
	"github.com/gravitrone/treenotes/internal/cmd"
	"github.com/gravitrone/treenotes/internal/config"
	"github.com/gravitrone/treenotes/internal/logging"
	"github.com/gravitrone/treenotes/internal/notes"
	"github.com/gravitrone/treenotes/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var noFeed bool
	root := &cobra.Command{
		Use:   "treenotes",
		Short: "treenotes - notes attached to a content tree",
		Long:  "treenotes browses a remote content tree and keeps a note per node, saving edits as you type.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(os.Stdin, os.Stdout, !noFeed)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Flags().BoolVar(&noFeed, "no-feed", false, "do not subscribe to live tree updates")

	root.AddCommand(cmd.LoginCmd())
	root.AddCommand(cmd.NotesCmd())
	root.AddCommand(cmd.TreeCmd())
	root.AddCommand(cmd.ServeCmd())
	return root
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI(in, out *os.File, withFeed bool) error {
	if !isInteractiveTerminal(in) || !isInteractiveTerminal(out) {
		return fmt.Errorf("the notes browser needs a terminal; try 'treenotes notes list'")
	}

	cfg, err := config.LoadOrDefault()
	if err != nil {
		return err
	}

	logger, closer, err := logging.OpenFile(cfg.LogPath(), logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer closer.Close()

	client := api.NewClient(cfg.ServerURL).WithLogger(logger)
	session := notes.NewSession(client, notes.Options{
		Window: cfg.DebounceWindow(),
		Logger: logger,
	})
	// Flushes an edit typed just before quitting.
	defer session.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := ui.Options{Server: cfg.ServerURL, Username: cfg.Username}
	if withFeed {
		opts.Feed = ui.StartFeed(ctx, api.NewTreeFeed(cfg.Feed(), logger), logger)
	}

	logger.Info("session started", "server", cfg.ServerURL, "debounce", cfg.DebounceWindow())
	p := tea.NewProgram(ui.NewApp(session, client, opts),
		tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
