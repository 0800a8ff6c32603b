package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/HaRin2806/nutribot-cli/internal/client"
	"github.com/HaRin2806/nutribot-cli/internal/config"
	"github.com/HaRin2806/nutribot-cli/internal/store"
	"github.com/HaRin2806/nutribot-cli/internal/ui"
)

var (
	loginEmail    string
	loginRemember bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "authenticate with the Nutribot server",
	Long: `Authenticate with the Nutribot server. With --remember the token is
stored locally and reused by later commands; without it the login only
lasts for this invocation and is mostly useful to check credentials.`,
	Example: `  # Login and keep the session
  $ nutribot login -e you@example.com --remember

  # Login against a different server and make it the default
  $ nutribot login https://nutribot.example.com/api`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	loginCmd.Flags().BoolVar(&loginRemember, "remember", false, "store the session token locally")
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	if len(args) > 0 {
		server := strings.TrimRight(args[0], "/")
		rt.api = client.New(server)
		rt.cfg.Server.URL = server
		// Make the server sticky for later commands.
		if path, err := config.ConfigPath(); err == nil {
			if err := config.Save(path, rt.cfg); err != nil {
				ui.PrintWarning("could not save server setting: %v", err)
			}
		}
	}

	if loginEmail == "" {
		prompt := &survey.Input{Message: "Email:"}
		if err := survey.AskOne(prompt, &loginEmail, survey.WithValidator(survey.Required)); err != nil {
			return fmt.Errorf("input failed: %w", err)
		}
	}
	var password string
	if err := survey.AskOne(&survey.Password{Message: "Password:"}, &password, survey.WithValidator(survey.Required)); err != nil {
		return fmt.Errorf("input failed: %w", err)
	}

	resp, err := rt.api.Login(ctx, loginEmail, password, loginRemember)
	if err != nil {
		ui.PrintError("login failed: %v", err)
		return fmt.Errorf("authentication failed")
	}

	creds := store.Credentials{
		Token:    rt.api.Token(),
		User:     resp.User,
		Remember: loginRemember,
		SavedAt:  time.Now(),
	}
	if err := rt.repo.Credentials().Save(ctx, creds); err != nil {
		ui.PrintWarning("could not store session: %v", err)
	}

	name := loginEmail
	if resp.User != nil && resp.User.Name != "" {
		name = resp.User.Name
	}
	ui.PrintSuccess("Logged in as %s", name)
	if !loginRemember {
		ui.PrintInfo("Session not stored; pass --remember to stay logged in")
	}
	return nil
}
