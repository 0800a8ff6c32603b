package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/HaRin2806/nutribot-cli/internal/session"
	"github.com/HaRin2806/nutribot-cli/internal/types"
	"github.com/HaRin2806/nutribot-cli/internal/ui"
)

var (
	listIncludeArchived bool
	deleteYes           bool
)

var conversationsCmd = &cobra.Command{
	Use:     "conversations",
	Aliases: []string{"conv"},
	Short:   "manage your conversations",
}

var conversationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "list conversations",
	Args:  cobra.NoArgs,
	RunE:  runConversationsList,
}

var conversationsNewCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "start an empty conversation",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConversationsNew,
}

var conversationsRenameCmd = &cobra.Command{
	Use:   "rename <id> <title>",
	Short: "rename a conversation",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runConversationsRename,
}

var conversationsSetAgeCmd = &cobra.Command{
	Use:   "set-age <id> <age>",
	Short: "change a conversation's age-context",
	Long: `Change the age-context of a conversation. Only conversations with no
messages yet can change age; once the first message is sent the age is
locked in.`,
	Args: cobra.ExactArgs(2),
	RunE: runConversationsSetAge,
}

var conversationsArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "archive a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConversationsArchive(args[0], true)
	},
}

var conversationsUnarchiveCmd = &cobra.Command{
	Use:   "unarchive <id>",
	Short: "restore an archived conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConversationsArchive(args[0], false)
	},
}

var conversationsDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "delete one or more conversations",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runConversationsDelete,
}

func init() {
	conversationsListCmd.Flags().BoolVarP(&listIncludeArchived, "all", "a", false, "include archived conversations")
	conversationsDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")

	conversationsCmd.AddCommand(conversationsListCmd)
	conversationsCmd.AddCommand(conversationsNewCmd)
	conversationsCmd.AddCommand(conversationsRenameCmd)
	conversationsCmd.AddCommand(conversationsSetAgeCmd)
	conversationsCmd.AddCommand(conversationsArchiveCmd)
	conversationsCmd.AddCommand(conversationsUnarchiveCmd)
	conversationsCmd.AddCommand(conversationsDeleteCmd)
}

// withManager wires a verified session layer, runs fn, and tears it down.
func withManager(fn func(ctx context.Context, manager *session.Manager) error) error {
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
	manager := rt.newManager(ctx, user, surveyAgePrompter{})
	defer manager.Teardown()
	return fn(ctx, manager)
}

func runConversationsList(cmd *cobra.Command, args []string) error {
	return withManager(func(ctx context.Context, manager *session.Manager) error {
		var conversations []*types.Conversation
		var err error
		if listIncludeArchived {
			conversations, err = manager.Conversations.ListIncludingArchived(ctx)
		} else {
			conversations, err = manager.Fetch.FetchConversations(ctx, true)
		}
		if err != nil {
			return err
		}
		if len(conversations) == 0 {
			ui.PrintInfo("No conversations yet; start one with 'nutribot chat'")
			return nil
		}

		rows := make([][]string, 0, len(conversations))
		for _, conv := range conversations {
			title := conv.Title
			if title == "" {
				title = "(untitled)"
			}
			state := ""
			if conv.IsArchived {
				state = "archived"
			}
			rows = append(rows, []string{
				conv.ID,
				title,
				strconv.Itoa(conv.AgeContext),
				strconv.Itoa(conv.MessageCount),
				conv.UpdatedAt.Format("2006-01-02 15:04"),
				state,
			})
		}
		ui.PrintTable([]string{"ID", "TITLE", "AGE", "MSGS", "UPDATED", ""}, rows)
		return nil
	})
}

func runConversationsNew(cmd *cobra.Command, args []string) error {
	return withManager(func(ctx context.Context, manager *session.Manager) error {
		title := ""
		if len(args) > 0 {
			title = args[0]
		}
		id, err := manager.Pipeline.StartNewConversation(ctx, title)
		if err != nil {
			return err
		}
		ui.PrintSuccess("Created conversation %s", id)
		return nil
	})
}

func runConversationsRename(cmd *cobra.Command, args []string) error {
	return withManager(func(ctx context.Context, manager *session.Manager) error {
		id := args[0]
		title := strings.Join(args[1:], " ")
		if err := manager.Conversations.Rename(ctx, id, title); err != nil {
			return err
		}
		ui.PrintSuccess("Renamed %s to %q", id, title)
		return nil
	})
}

func runConversationsSetAge(cmd *cobra.Command, args []string) error {
	return withManager(func(ctx context.Context, manager *session.Manager) error {
		age, err := strconv.Atoi(args[1])
		if err != nil || !types.ValidAge(age) {
			return fmt.Errorf("age must be a whole number from %d to %d", types.MinAge, types.MaxAge)
		}
		manager.Fetch.FetchConversationDetail(ctx, args[0])
		if err := manager.Conversations.SetAgeContext(ctx, args[0], age); err != nil {
			return err
		}
		ui.PrintSuccess("Age-context set to %d", age)
		return nil
	})
}

func runConversationsArchive(id string, archived bool) error {
	return withManager(func(ctx context.Context, manager *session.Manager) error {
		if err := manager.Conversations.SetArchived(ctx, id, archived); err != nil {
			return err
		}
		if archived {
			ui.PrintSuccess("Archived %s", id)
		} else {
			ui.PrintSuccess("Restored %s", id)
		}
		return nil
	})
}

func runConversationsDelete(cmd *cobra.Command, args []string) error {
	return withManager(func(ctx context.Context, manager *session.Manager) error {
		if !deleteYes {
			confirmed := false
			prompt := &survey.Confirm{
				Message: fmt.Sprintf("Delete %d conversation(s) and all their messages?", len(args)),
			}
			if err := survey.AskOne(prompt, &confirmed); err != nil {
				return err
			}
			if !confirmed {
				ui.PrintInfo("Nothing deleted")
				return nil
			}
		}
		if len(args) == 1 {
			if err := manager.Conversations.Delete(ctx, args[0]); err != nil {
				return err
			}
		} else if err := manager.Conversations.DeleteMany(ctx, args); err != nil {
			return err
		}
		ui.PrintSuccess("Deleted %d conversation(s)", len(args))
		return nil
	})
}
