package app

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/HaRin2806/nutribot-cli/internal/session"
)

const (
	fetchTimeout  = 10 * time.Second
	sendTimeout   = 120 * time.Second
	mutateTimeout = 60 * time.Second
)

func fetchConversationsCmd(manager *session.Manager, force bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		conversations, err := manager.Fetch.FetchConversations(ctx, force)
		return conversationsMsg{conversations: conversations, err: err}
	}
}

func openConversationCmd(manager *session.Manager, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		conv := manager.Fetch.FetchConversationDetail(ctx, id)
		return conversationOpenedMsg{id: id, conversation: conv}
	}
}

func sendMessageCmd(manager *session.Manager, content, conversationID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		result, err := manager.Pipeline.Send(ctx, content, conversationID)
		return sendDoneMsg{result: result, err: err}
	}
}

func editMessageCmd(manager *session.Manager, messageID, conversationID, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mutateTimeout)
		defer cancel()
		err := manager.Versions.EditMessage(ctx, messageID, conversationID, content)
		return editDoneMsg{messageID: messageID, err: err}
	}
}

func switchVersionCmd(manager *session.Manager, messageID, conversationID string, version int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mutateTimeout)
		defer cancel()
		err := manager.Versions.SwitchVersion(ctx, messageID, conversationID, version)
		return versionSwitchedMsg{messageID: messageID, version: version, err: err}
	}
}

func regenerateCmd(manager *session.Manager, messageID, conversationID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		err := manager.Versions.Regenerate(ctx, messageID, conversationID)
		return regenerateDoneMsg{messageID: messageID, err: err}
	}
}

func deleteFollowingCmd(manager *session.Manager, messageID, conversationID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mutateTimeout)
		defer cancel()
		err := manager.Versions.DeleteMessageAndFollowing(ctx, messageID, conversationID)
		return deleteFollowingDoneMsg{messageID: messageID, err: err}
	}
}

func deleteConversationCmd(manager *session.Manager, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mutateTimeout)
		defer cancel()
		err := manager.Conversations.Delete(ctx, id)
		return conversationDeletedMsg{id: id, err: err}
	}
}

func archiveConversationCmd(manager *session.Manager, id string, archived bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mutateTimeout)
		defer cancel()
		err := manager.Conversations.SetArchived(ctx, id, archived)
		return conversationArchivedMsg{id: id, err: err}
	}
}

// submitAgeCmd persists the entered age and replays the held-back send.
func submitAgeCmd(manager *session.Manager, submission ageSubmission) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := manager.Ages.SetPreference(ctx, submission.Age); err != nil {
			return sendDoneMsg{err: err}
		}
		if submission.Send.Content == "" {
			return sendDoneMsg{}
		}
		result, err := manager.Pipeline.Send(ctx, submission.Send.Content, submission.Send.ConversationID)
		return sendDoneMsg{result: result, err: err}
	}
}

func copyToClipboardCmd(content string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{err: clipboard.WriteAll(content)}
	}
}
