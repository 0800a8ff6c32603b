package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/HaRin2806/nutribot-cli/internal/client"
	"github.com/HaRin2806/nutribot-cli/internal/session"
	"github.com/HaRin2806/nutribot-cli/internal/types"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.loader, cmd = m.loader.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case storeChangedMsg:
		m.syncFromStore()
		return m, m.waitForStore()

	case conversationsMsg:
		if msg.err != nil {
			m.errText = "Could not load conversations: " + msg.err.Error()
		}
		m.syncFromStore()
		return m, nil

	case conversationOpenedMsg:
		if msg.conversation == nil {
			m.errText = "Could not open conversation"
		} else {
			m.errText = ""
			m.selectedMessage = -1
		}
		m.syncFromStore()
		m.viewport.GotoBottom()
		return m, nil

	case sendDoneMsg:
		return m.handleSendDone(msg)

	case editDoneMsg:
		m.sending = false
		if msg.err != nil {
			m.errText = sendErrorText(msg.err)
		} else {
			m.errText = ""
			m.status = "Message updated"
		}
		m.syncFromStore()
		return m, nil

	case versionSwitchedMsg:
		m.sending = false
		if msg.err != nil {
			m.errText = sendErrorText(msg.err)
		} else {
			m.errText = ""
			m.status = fmt.Sprintf("Switched to version %d", msg.version)
		}
		m.syncFromStore()
		return m, nil

	case regenerateDoneMsg:
		m.sending = false
		if msg.err != nil {
			m.errText = sendErrorText(msg.err)
		} else {
			m.errText = ""
			m.status = "Answer regenerated"
		}
		m.syncFromStore()
		return m, nil

	case deleteFollowingDoneMsg:
		m.sending = false
		if msg.err != nil {
			m.errText = sendErrorText(msg.err)
		} else {
			m.errText = ""
			m.status = "Messages deleted"
			m.selectedMessage = -1
			m.mode = uiModeInput
			m.input.Focus()
		}
		m.syncFromStore()
		return m, nil

	case conversationDeletedMsg:
		if msg.err != nil {
			m.errText = "Delete failed: " + msg.err.Error()
		} else {
			m.errText = ""
			m.status = "Conversation deleted"
		}
		m.syncFromStore()
		return m, nil

	case conversationArchivedMsg:
		if msg.err != nil {
			m.errText = "Archive failed: " + msg.err.Error()
		} else {
			m.errText = ""
			m.status = "Conversation archived"
		}
		m.syncFromStore()
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.errText = "Clipboard unavailable: " + msg.err.Error()
		} else {
			m.status = "Copied to clipboard"
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleSendDone(msg sendDoneMsg) (tea.Model, tea.Cmd) {
	m.sending = false
	if errors.Is(msg.err, session.ErrAgeRequired) {
		if m.lastSend != nil {
			m.agePrompt.Open(m.lastSend.Content, m.lastSend.ConversationID)
		}
		m.syncFromStore()
		return m, nil
	}
	m.lastSend = nil
	if msg.err != nil {
		m.errText = sendErrorText(msg.err)
		m.syncFromStore()
		return m, nil
	}
	m.errText = ""
	m.status = ""
	m.syncFromStore()
	m.viewport.GotoBottom()
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, m.quit()
	}

	if m.agePrompt.IsOpen() {
		if handled, submission := m.agePrompt.HandleKey(msg); handled {
			if submission != nil {
				m.sending = true
				m.status = "Thinking..."
				return m, tea.Batch(m.loader.Tick, submitAgeCmd(m.manager, *submission))
			}
			return m, nil
		}
	}

	if m.confirm.IsOpen() {
		handled, choice, cmd := m.confirm.HandleKey(msg)
		if handled {
			if choice == confirmChoiceConfirm && cmd != nil {
				m.sending = true
				return m, tea.Batch(m.loader.Tick, cmd)
			}
			return m, nil
		}
	}

	switch m.mode {
	case uiModeEdit:
		return m.handleEditKey(msg)
	case uiModeBrowse:
		return m.handleBrowseKey(msg)
	default:
		return m.handleInputKey(msg)
	}
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.focus == focusChat {
			m.focus = focusSidebar
			m.input.Blur()
		} else {
			m.focus = focusChat
			m.input.Focus()
		}
		return m, nil
	case "ctrl+n":
		m.manager.Store.SetActiveConversation(nil)
		m.selectedMessage = -1
		m.focus = focusChat
		m.input.Focus()
		m.status = "New conversation"
		m.syncFromStore()
		return m, nil
	}

	if m.focus == focusSidebar {
		return m.handleSidebarKey(msg)
	}

	switch msg.String() {
	case "esc":
		if messages := m.activeMessages(); len(messages) > 0 {
			m.mode = uiModeBrowse
			m.selectedMessage = len(messages) - 1
			m.input.Blur()
			m.refreshTranscript()
		}
		return m, nil
	case "enter":
		content := strings.TrimSpace(m.input.Value())
		if content == "" || m.sending {
			return m, nil
		}
		return m, m.startSend(content)
	case "pgup":
		m.viewport.HalfViewUp()
		return m, nil
	case "pgdown":
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startSend runs the age gate before clearing the input: when an age is still
// needed the prompt opens with the content held back, and the textarea keeps
// its text only on other failures.
func (m *Model) startSend(content string) tea.Cmd {
	conversationID := ""
	if conv := m.activeConversation(); conv != nil {
		conversationID = conv.ID
	}
	if _, ok := m.manager.Ages.TryResolve(); !ok {
		m.agePrompt.Open(content, conversationID)
		return nil
	}
	m.input.Reset()
	m.sending = true
	m.errText = ""
	m.status = "Thinking..."
	m.lastSend = &pendingSend{Content: content, ConversationID: conversationID}
	return tea.Batch(m.loader.Tick, sendMessageCmd(m.manager, content, conversationID))
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.sidebarCursor > 0 {
			m.sidebarCursor--
		}
		return m, nil
	case "down", "j":
		if m.sidebarCursor < len(m.conversations)-1 {
			m.sidebarCursor++
		}
		return m, nil
	case "enter":
		if conv := m.cursorConversation(); conv != nil {
			m.focus = focusChat
			m.input.Focus()
			return m, openConversationCmd(m.manager, conv.ID)
		}
		return m, nil
	case "d":
		if conv := m.cursorConversation(); conv != nil {
			title := conv.Title
			if title == "" {
				title = "this conversation"
			}
			m.confirm.Open("Delete conversation",
				fmt.Sprintf("Delete %q and all of its messages?", title),
				deleteConversationCmd(m.manager, conv.ID))
		}
		return m, nil
	case "a":
		if conv := m.cursorConversation(); conv != nil {
			return m, archiveConversationCmd(m.manager, conv.ID, !conv.IsArchived)
		}
		return m, nil
	case "r":
		return m, fetchConversationsCmd(m.manager, true)
	case "q":
		return m, m.quit()
	}
	return m, nil
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	messages := m.activeMessages()
	selected := m.selectedMessageRef()
	conversationID := ""
	if conv := m.activeConversation(); conv != nil {
		conversationID = conv.ID
	}

	switch msg.String() {
	case "esc", "i":
		m.mode = uiModeInput
		m.selectedMessage = -1
		m.input.Focus()
		m.refreshTranscript()
		return m, textarea.Blink
	case "up", "k":
		if m.selectedMessage > 0 {
			m.selectedMessage--
			m.refreshTranscript()
		}
		return m, nil
	case "down", "j":
		if m.selectedMessage < len(messages)-1 {
			m.selectedMessage++
			m.refreshTranscript()
		}
		return m, nil
	case "g":
		m.viewport.GotoTop()
		return m, nil
	case "G":
		m.viewport.GotoBottom()
		return m, nil
	case "e":
		if selected == nil || selected.Role != types.RoleUser || selected.Pending() {
			return m, nil
		}
		if !m.manager.Versions.BeginEdit(selected.ID) {
			return m, nil
		}
		m.mode = uiModeEdit
		m.editingMessageID = selected.ID
		m.input.SetValue(selected.Content)
		m.input.Focus()
		return m, textarea.Blink
	case "v", "right", "l":
		return m, m.switchVersionRelative(selected, conversationID, 1)
	case "V", "left", "h":
		return m, m.switchVersionRelative(selected, conversationID, -1)
	case "r":
		if selected == nil || selected.Role != types.RoleBot || selected.Pending() {
			return m, nil
		}
		m.sending = true
		m.status = "Regenerating..."
		return m, tea.Batch(m.loader.Tick, regenerateCmd(m.manager, selected.ID, conversationID))
	case "x":
		if selected == nil || selected.Pending() {
			return m, nil
		}
		m.confirm.Open("Delete messages",
			"Delete this message and everything after it?",
			deleteFollowingCmd(m.manager, selected.ID, conversationID))
		return m, nil
	case "y":
		if selected == nil {
			return m, nil
		}
		return m, copyToClipboardCmd(selected.Content)
	case "q":
		return m, m.quit()
	}
	return m, nil
}

// switchVersionRelative moves the selected message one version forward or back,
// staying inside the valid range.
func (m *Model) switchVersionRelative(selected *types.Message, conversationID string, delta int) tea.Cmd {
	if selected == nil || selected.Pending() {
		return nil
	}
	total := selected.TotalVersions()
	if total <= 1 {
		return nil
	}
	target := selected.CurrentVersion + delta
	if target < 1 || target > total {
		return nil
	}
	m.sending = true
	m.status = "Switching version..."
	return tea.Batch(m.loader.Tick, switchVersionCmd(m.manager, selected.ID, conversationID, target))
}

func (m *Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.manager.Versions.CancelEdit(m.editingMessageID)
		m.mode = uiModeBrowse
		m.editingMessageID = ""
		m.input.Reset()
		m.input.Blur()
		m.refreshTranscript()
		return m, nil
	case "enter":
		content := strings.TrimSpace(m.input.Value())
		if content == "" || m.sending {
			return m, nil
		}
		conversationID := ""
		if conv := m.activeConversation(); conv != nil {
			conversationID = conv.ID
		}
		messageID := m.editingMessageID
		m.mode = uiModeInput
		m.editingMessageID = ""
		m.selectedMessage = -1
		m.input.Reset()
		m.input.Focus()
		m.sending = true
		m.status = "Updating message..."
		return m, tea.Batch(m.loader.Tick, editMessageCmd(m.manager, messageID, conversationID, content))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) quit() tea.Cmd {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	return tea.Quit
}

func (m *Model) cursorConversation() *types.Conversation {
	if m.sidebarCursor < 0 || m.sidebarCursor >= len(m.conversations) {
		return nil
	}
	return m.conversations[m.sidebarCursor]
}

func sendErrorText(err error) string {
	switch {
	case client.IsAuthError(err), errors.Is(err, session.ErrNotAuthenticated):
		return "Session expired; run 'nutribot login' again"
	case errors.Is(err, session.ErrAgeOutOfRange):
		return fmt.Sprintf("Age must be between %d and %d", types.MinAge, types.MaxAge)
	case errors.Is(err, session.ErrEmptyContent):
		return "Message is empty"
	default:
		return err.Error()
	}
}
