package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/treenotes/internal/api"
)

// TreeCmd returns the `treenotes tree` command.
func TreeCmd() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the content tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := clientFromConfig()
			if err != nil {
				return err
			}

			var root *api.TreeNode
			if refresh {
				res, err := client.RefreshTree()
				if err != nil {
					return fmt.Errorf("refresh tree: %w", err)
				}
				if res.NeedsCredentials() {
					return errors.New("backend needs credentials, run 'treenotes login'")
				}
				if res.Node == nil {
					return fmt.Errorf("refresh tree: %s", res.Status)
				}
				root = res.Node
			} else {
				root, err = client.GetTree()
				if err != nil {
					return fmt.Errorf("get tree: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			for _, row := range root.Flatten() {
				fmt.Fprintf(out, "%s%s %s", strings.Repeat("  ", row.Depth), row.Node.Breed.Glyph(), row.Node.Title)
				if row.Node.URI != "" {
					fmt.Fprintf(out, "  (%s)", row.Node.URI)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&refresh, "refresh", "r", false, "ask the backend to re-read its tree first")
	return cmd
}
