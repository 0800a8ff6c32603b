package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HaRin2806/nutribot-cli/internal/client"
	"github.com/HaRin2806/nutribot-cli/internal/ui"
)

var feedbackRating int

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "send and review feedback",
}

var feedbackSendCmd = &cobra.Command{
	Use:   "send <text>...",
	Short: "send feedback about Nutribot",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFeedbackSend,
}

var feedbackListCmd = &cobra.Command{
	Use:   "list",
	Short: "list feedback you have sent",
	Args:  cobra.NoArgs,
	RunE:  runFeedbackList,
}

func init() {
	feedbackSendCmd.Flags().IntVarP(&feedbackRating, "rating", "r", 0, "rating from 1 to 5")

	feedbackCmd.AddCommand(feedbackSendCmd)
	feedbackCmd.AddCommand(feedbackListCmd)
}

func runFeedbackSend(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	if _, err := rt.requireAuth(ctx); err != nil {
		return err
	}
	if feedbackRating != 0 && (feedbackRating < 1 || feedbackRating > 5) {
		return fmt.Errorf("rating must be from 1 to 5")
	}

	content := strings.TrimSpace(strings.Join(args, " "))
	if content == "" {
		return fmt.Errorf("feedback text is empty")
	}
	if err := rt.api.SubmitFeedback(ctx, client.FeedbackRequest{
		Rating:  feedbackRating,
		Content: content,
	}); err != nil {
		return err
	}
	ui.PrintSuccess("Feedback sent, thank you")
	return nil
}

func runFeedbackList(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	if _, err := rt.requireAuth(ctx); err != nil {
		return err
	}
	resp, err := rt.api.ListMyFeedback(ctx)
	if err != nil {
		return err
	}
	if len(resp.Feedback) == 0 {
		ui.PrintInfo("No feedback sent yet")
		return nil
	}

	rows := make([][]string, 0, len(resp.Feedback))
	for _, fb := range resp.Feedback {
		rating := ""
		if fb.Rating > 0 {
			rating = strconv.Itoa(fb.Rating)
		}
		rows = append(rows, []string{
			fb.CreatedAt.Format("2006-01-02"),
			rating,
			fb.Content,
		})
	}
	ui.PrintTable([]string{"DATE", "RATING", "FEEDBACK"}, rows)
	return nil
}
