package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/treenotes/internal/notes"
)

// NotesCmd returns the `treenotes notes` command group.
func NotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "List, show and edit notes",
	}
	cmd.AddCommand(notesListCmd())
	cmd.AddCommand(notesShowCmd())
	cmd.AddCommand(notesEditCmd())
	return cmd
}

func notesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every note on the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := clientFromConfig()
			if err != nil {
				return err
			}
			list, err := client.ListNotes()
			if err != nil {
				return fmt.Errorf("list notes: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "no notes found")
				return nil
			}
			for _, n := range list {
				fmt.Fprintf(out, "  %-18s  %s\n", n.Course, n.URI)
			}
			return nil
		},
	}
}

func notesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <uri>",
		Short: "Print the body of one note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := clientFromConfig()
			if err != nil {
				return err
			}
			session := notes.NewSession(client, notes.Options{})
			defer session.Close()

			if err := session.EnsureLoaded(); err != nil {
				return err
			}
			note, ok := session.Store().Find(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", notes.ErrNoteNotFound, args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), note.Body)
			return nil
		},
	}
}

func notesEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <uri> <body...>",
		Short: "Replace the body of a note",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := clientFromConfig()
			if err != nil {
				return err
			}
			session := notes.NewSession(client, notes.Options{Window: cfg.DebounceWindow()})
			defer session.Close()

			if err := session.EnsureLoaded(); err != nil {
				return err
			}
			if err := session.SetBody(args[0], strings.Join(args[1:], " ")); err != nil {
				return err
			}
			session.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "note %s saved\n", args[0])
			return nil
		},
	}
}
