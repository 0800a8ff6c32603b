package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/HaRin2806/nutribot-cli/internal/app"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "open the interactive chat interface",
	Long: `Open the full-screen chat interface. The sidebar lists your
conversations; the first message of a new conversation asks for the
learner's age when no preference is stored yet.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	user, err := rt.requireAuth(ctx)
	if err != nil {
		return err
	}

	// The TUI collects ages through its own modal, so no prompter here.
	manager := rt.newManager(ctx, user, nil)
	defer manager.Teardown()

	// Open the requested conversation, or pick up where the last session
	// left off.
	openID := ""
	if len(args) > 0 {
		openID = args[0]
	} else if last, err := rt.repo.Preferences().LastConversation(ctx); err == nil {
		openID = last
	}
	if openID != "" {
		manager.Fetch.FetchConversationDetail(ctx, openID)
	}

	runErr := app.Run(manager, rt.log)

	if conv := manager.Store.ActiveConversation(); conv != nil && conv.ID != "" {
		saveCtx, saveCancel := context.WithTimeout(context.Background(), commandTimeout)
		defer saveCancel()
		if err := rt.repo.Preferences().SetLastConversation(saveCtx, conv.ID); err != nil {
			rt.log.Warn().Err(err).Msg("could not remember last conversation")
		}
	}
	return runErr
}
