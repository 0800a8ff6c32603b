package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/HaRin2806/nutribot-cli/internal/client"
	"github.com/HaRin2806/nutribot-cli/internal/types"
	"github.com/HaRin2806/nutribot-cli/internal/ui"
)

var (
	adminUserSearch    string
	adminPage          int
	adminPerPage       int
	adminUploadTitle   string
	adminDeleteConfirm bool
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "administration commands",
	Long:  "Administration commands. The server rejects these for non-admin accounts.",
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "manage accounts",
}

var adminUsersListCmd = &cobra.Command{
	Use:   "list",
	Short: "list accounts",
	Args:  cobra.NoArgs,
	RunE:  runAdminUsersList,
}

var adminUsersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "delete an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminUsersDelete,
}

var adminUsersPromoteCmd = &cobra.Command{
	Use:   "promote <id>",
	Short: "grant admin rights",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdminSetRole(args[0], true)
	},
}

var adminUsersDemoteCmd = &cobra.Command{
	Use:   "demote <id>",
	Short: "revoke admin rights",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdminSetRole(args[0], false)
	},
}

var adminConversationsCmd = &cobra.Command{
	Use:   "conversations",
	Short: "inspect all conversations",
}

var adminConversationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "list conversations across all accounts",
	Args:  cobra.NoArgs,
	RunE:  runAdminConversationsList,
}

var adminConversationsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "delete any conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminConversationsDelete,
}

var adminDocumentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "manage knowledge-base documents",
}

var adminDocumentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "list documents",
	Args:  cobra.NoArgs,
	RunE:  runAdminDocumentsList,
}

var adminDocumentsUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "upload a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminDocumentsUpload,
}

var adminDocumentsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "delete a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminDocumentsDelete,
}

var adminFeedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "list feedback from all accounts",
	Args:  cobra.NoArgs,
	RunE:  runAdminFeedback,
}

var adminSettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "show or change service settings",
}

var adminSettingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "show service settings",
	Args:  cobra.NoArgs,
	RunE:  runAdminSettingsShow,
}

var adminSettingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "change one service setting",
	Long: `Change one service setting. Keys: allow-registration,
maintenance-mode (true/false), chat-model, max-upload-mb.`,
	Args: cobra.ExactArgs(2),
	RunE: runAdminSettingsSet,
}

func init() {
	adminUsersListCmd.Flags().StringVarP(&adminUserSearch, "search", "s", "", "filter by name or email")
	adminUsersListCmd.Flags().IntVar(&adminPage, "page", 1, "page number")
	adminUsersListCmd.Flags().IntVar(&adminPerPage, "per-page", 50, "results per page")
	adminConversationsListCmd.Flags().IntVar(&adminPage, "page", 1, "page number")
	adminConversationsListCmd.Flags().IntVar(&adminPerPage, "per-page", 50, "results per page")
	adminDocumentsUploadCmd.Flags().StringVarP(&adminUploadTitle, "title", "t", "", "document title (defaults to the file name)")
	adminUsersDeleteCmd.Flags().BoolVarP(&adminDeleteConfirm, "yes", "y", false, "skip the confirmation prompt")
	adminConversationsDeleteCmd.Flags().BoolVarP(&adminDeleteConfirm, "yes", "y", false, "skip the confirmation prompt")

	adminUsersCmd.AddCommand(adminUsersListCmd, adminUsersDeleteCmd, adminUsersPromoteCmd, adminUsersDemoteCmd)
	adminConversationsCmd.AddCommand(adminConversationsListCmd, adminConversationsDeleteCmd)
	adminDocumentsCmd.AddCommand(adminDocumentsListCmd, adminDocumentsUploadCmd, adminDocumentsDeleteCmd)
	adminSettingsCmd.AddCommand(adminSettingsShowCmd, adminSettingsSetCmd)
	adminCmd.AddCommand(adminUsersCmd, adminConversationsCmd, adminDocumentsCmd, adminFeedbackCmd, adminSettingsCmd)
}

// withAdmin verifies the session and checks the admin bit client-side before
// any request; the server enforces it again regardless.
func withAdmin(fn func(ctx context.Context, rt *runtime) error) error {
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
	if !user.IsAdmin {
		return fmt.Errorf("this command requires an admin account")
	}
	return fn(ctx, rt)
}

func confirmOrAbort(message string) (bool, error) {
	if adminDeleteConfirm {
		return true, nil
	}
	confirmed := false
	if err := survey.AskOne(&survey.Confirm{Message: message}, &confirmed); err != nil {
		return false, err
	}
	return confirmed, nil
}

func runAdminUsersList(cmd *cobra.Command, args []string) error {
	return withAdmin(func(ctx context.Context, rt *runtime) error {
		resp, err := rt.api.ListUsers(ctx, adminPage, adminPerPage, adminUserSearch)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(resp.Users))
		for _, u := range resp.Users {
			role := ""
			if u.IsAdmin {
				role = "admin"
			}
			rows = append(rows, []string{u.ID, u.Name, u.Email, role})
		}
		ui.PrintTable([]string{"ID", "NAME", "EMAIL", "ROLE"}, rows)
		if resp.Pagination.Pages > 1 {
			ui.PrintInfo("Page %d of %d", resp.Pagination.Page, resp.Pagination.Pages)
		}
		return nil
	})
}

func runAdminUsersDelete(cmd *cobra.Command, args []string) error {
	return withAdmin(func(ctx context.Context, rt *runtime) error {
		ok, err := confirmOrAbort(fmt.Sprintf("Delete account %s and all of its data?", args[0]))
		if err != nil || !ok {
			return err
		}
		if err := rt.api.DeleteUser(ctx, args[0]); err != nil {
			return err
		}
		ui.PrintSuccess("Account deleted")
		return nil
	})
}

func runAdminSetRole(id string, isAdmin bool) error {
	return withAdmin(func(ctx context.Context, rt *runtime) error {
		if err := rt.api.UpdateUser(ctx, id, client.UpdateUserRequest{IsAdmin: &isAdmin}); err != nil {
			return err
		}
		if isAdmin {
			ui.PrintSuccess("Granted admin rights to %s", id)
		} else {
			ui.PrintSuccess("Revoked admin rights from %s", id)
		}
		return nil
	})
}

func runAdminConversationsList(cmd *cobra.Command, args []string) error {
	return withAdmin(func(ctx context.Context, rt *runtime) error {
		resp, err := rt.api.ListAllConversations(ctx, adminPage, adminPerPage)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(resp.Conversations))
		for _, conv := range resp.Conversations {
			rows = append(rows, []string{
				conv.ID,
				conv.Title,
				strconv.Itoa(conv.AgeContext),
				strconv.Itoa(conv.MessageCount),
				conv.UpdatedAt.Format("2006-01-02"),
			})
		}
		ui.PrintTable([]string{"ID", "TITLE", "AGE", "MSGS", "UPDATED"}, rows)
		if resp.Pagination.Pages > 1 {
			ui.PrintInfo("Page %d of %d", resp.Pagination.Page, resp.Pagination.Pages)
		}
		return nil
	})
}

func runAdminConversationsDelete(cmd *cobra.Command, args []string) error {
	return withAdmin(func(ctx context.Context, rt *runtime) error {
		ok, err := confirmOrAbort(fmt.Sprintf("Delete conversation %s?", args[0]))
		if err != nil || !ok {
			return err
		}
		if err := rt.api.AdminDeleteConversation(ctx, args[0]); err != nil {
			return err
		}
		ui.PrintSuccess("Conversation deleted")
		return nil
	})
}

func runAdminDocumentsList(cmd *cobra.Command, args []string) error {
	return withAdmin(func(ctx context.Context, rt *runtime) error {
		resp, err := rt.api.ListDocuments(ctx)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(resp.Documents))
		for _, doc := range resp.Documents {
			rows = append(rows, []string{
				doc.ID,
				doc.Title,
				doc.Filename,
				doc.Status,
				fmt.Sprintf("%d KB", doc.SizeBytes/1024),
			})
		}
		ui.PrintTable([]string{"ID", "TITLE", "FILE", "STATUS", "SIZE"}, rows)
		return nil
	})
}

func runAdminDocumentsUpload(cmd *cobra.Command, args []string) error {
	return withAdmin(func(ctx context.Context, rt *runtime) error {
		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()

		title := adminUploadTitle
		if title == "" {
			title = filepath.Base(args[0])
		}
		doc, err := rt.api.UploadDocument(ctx, filepath.Base(args[0]), title, file)
		if err != nil {
			return err
		}
		ui.PrintSuccess("Uploaded %s as %s", doc.Title, doc.ID)
		return nil
	})
}

func runAdminDocumentsDelete(cmd *cobra.Command, args []string) error {
	return withAdmin(func(ctx context.Context, rt *runtime) error {
		if err := rt.api.DeleteDocument(ctx, args[0]); err != nil {
			return err
		}
		ui.PrintSuccess("Document deleted")
		return nil
	})
}

func runAdminFeedback(cmd *cobra.Command, args []string) error {
	return withAdmin(func(ctx context.Context, rt *runtime) error {
		resp, err := rt.api.ListFeedback(ctx)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(resp.Feedback))
		for _, fb := range resp.Feedback {
			rating := ""
			if fb.Rating > 0 {
				rating = strconv.Itoa(fb.Rating)
			}
			rows = append(rows, []string{
				fb.CreatedAt.Format("2006-01-02"),
				fb.UserName,
				rating,
				fb.Content,
			})
		}
		ui.PrintTable([]string{"DATE", "USER", "RATING", "FEEDBACK"}, rows)
		return nil
	})
}

func runAdminSettingsShow(cmd *cobra.Command, args []string) error {
	return withAdmin(func(ctx context.Context, rt *runtime) error {
		settings, err := rt.api.GetSystemSettings(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("allow-registration: %v\n", settings.AllowRegistration)
		fmt.Printf("maintenance-mode:   %v\n", settings.MaintenanceMode)
		if settings.ChatModel != "" {
			fmt.Printf("chat-model:         %s\n", settings.ChatModel)
		}
		if settings.MaxUploadSizeMB > 0 {
			fmt.Printf("max-upload-mb:      %d\n", settings.MaxUploadSizeMB)
		}
		return nil
	})
}

func runAdminSettingsSet(cmd *cobra.Command, args []string) error {
	return withAdmin(func(ctx context.Context, rt *runtime) error {
		settings, err := rt.api.GetSystemSettings(ctx)
		if err != nil {
			return err
		}
		if settings == nil {
			settings = &types.SystemSettings{}
		}
		key, value := args[0], args[1]
		switch key {
		case "allow-registration":
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%s expects true or false", key)
			}
			settings.AllowRegistration = enabled
		case "maintenance-mode":
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%s expects true or false", key)
			}
			settings.MaintenanceMode = enabled
		case "chat-model":
			settings.ChatModel = value
		case "max-upload-mb":
			size, err := strconv.Atoi(value)
			if err != nil || size <= 0 {
				return fmt.Errorf("%s expects a positive number", key)
			}
			settings.MaxUploadSizeMB = size
		default:
			return fmt.Errorf("unknown setting %q", key)
		}
		if err := rt.api.UpdateSystemSettings(ctx, settings); err != nil {
			return err
		}
		ui.PrintSuccess("Setting updated")
		return nil
	})
}
