package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "nutribot",
	Short:   "Nutrition chatbot for children and teens",
	Version: version,
	Long: `Talk to Nutribot, a nutrition assistant that tailors its answers
to a learner's age (1-19). Chat interactively, manage conversations,
and review answer versions from your terminal.`,
	Example: `  # Log in and remember the session
  $ nutribot login -e you@example.com --remember

  # Open the chat interface
  $ nutribot chat

  # List your conversations
  $ nutribot conversations list`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	rootCmd.SetVersionTemplate(fmt.Sprintf("nutribot version %s\n", version))
	return rootCmd.Execute()
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(conversationsCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(configCmd)
}
