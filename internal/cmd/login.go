package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/treenotes/internal/api"
	"github.com/gravitrone/treenotes/internal/config"
)

// RunInteractiveLogin prompts for server and credentials, forwards them to
// the backend, and persists config.
func RunInteractiveLogin(in io.Reader, out io.Writer) error {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return err
	}
	reader := bufio.NewReader(in)

	fmt.Fprintf(out, "server [%s]: ", cfg.ServerURL)
	server := readLine(reader)
	if server != "" && server != cfg.ServerURL {
		cfg.ServerURL = server
		// Re-derive the feed from the new server.
		cfg.FeedURL = ""
	}

	fmt.Fprint(out, "username: ")
	username := readLine(reader)
	if username == "" {
		return fmt.Errorf("username is required")
	}

	fmt.Fprint(out, "password: ")
	password := readLine(reader)

	fmt.Fprint(out, "remember on server? [y/N]: ")
	persistent := strings.EqualFold(readLine(reader), "y")

	client := api.NewClient(cfg.ServerURL)
	creds := api.Credentials{Username: username, Password: password, Persistent: persistent}
	if err := client.SetCredentials(creds); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cfg.Username = username
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(out, "logged in as %s\n", username)
	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

func readLine(r *bufio.Reader) string {
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

// LoginCmd returns the `treenotes login` command.
func LoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Send content-source credentials to the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunInteractiveLogin(os.Stdin, cmd.OutOrStdout())
		},
	}
}

func clientFromConfig() (*api.Client, *config.Config, error) {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return nil, nil, err
	}
	return api.NewClient(cfg.ServerURL), cfg, nil
}
