package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/HaRin2806/nutribot-cli/internal/session"
	"github.com/HaRin2806/nutribot-cli/internal/types"
)

const (
	minContentHeight = 6
	inputHeight      = 3
	statusLines      = 2
)

type uiMode int

const (
	uiModeInput uiMode = iota
	uiModeBrowse
	uiModeEdit
)

type focusArea int

const (
	focusSidebar focusArea = iota
	focusChat
)

type Model struct {
	manager *session.Manager
	log     zerolog.Logger

	width  int
	height int
	ready  bool

	mode  uiMode
	focus focusArea

	viewport viewport.Model
	input    textarea.Model
	loader   spinner.Model

	conversations []*types.Conversation
	sidebarCursor int

	// index into the active conversation's messages while browsing.
	selectedMessage  int
	editingMessageID string

	confirm   *ConfirmController
	agePrompt *AgePromptController

	// most recent send, kept so the age prompt can replay it.
	lastSend *pendingSend

	sending bool
	status  string
	errText string

	storeEvents chan struct{}
	unsubscribe func()
}

func NewModel(manager *session.Manager, log zerolog.Logger) *Model {
	input := textarea.New()
	input.Placeholder = "Ask about nutrition..."
	input.CharLimit = 4000
	input.SetHeight(inputHeight)
	input.ShowLineNumbers = false
	input.Focus()

	loader := spinner.New()
	loader.Spinner = spinner.Dot

	m := &Model{
		manager:         manager,
		log:             log,
		mode:            uiModeInput,
		focus:           focusChat,
		input:           input,
		loader:          loader,
		selectedMessage: -1,
		confirm:         NewConfirmController(),
		agePrompt:       NewAgePromptController(),
		storeEvents:     make(chan struct{}, 1),
	}
	m.unsubscribe = manager.Store.Subscribe(func() {
		select {
		case m.storeEvents <- struct{}{}:
		default:
		}
	})
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.loader.Tick,
		m.waitForStore(),
		fetchConversationsCmd(m.manager, false),
	)
}

// waitForStore blocks on the subscription channel and re-arms after every
// delivery.
func (m *Model) waitForStore() tea.Cmd {
	return func() tea.Msg {
		<-m.storeEvents
		return storeChangedMsg{}
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	chatWidth := width - sidebarWidth
	if chatWidth < 20 {
		chatWidth = 20
	}
	contentHeight := height - inputHeight - statusLines - 1
	if contentHeight < minContentHeight {
		contentHeight = minContentHeight
	}

	if !m.ready {
		m.viewport = viewport.New(chatWidth, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = chatWidth
		m.viewport.Height = contentHeight
	}
	m.input.SetWidth(chatWidth - 2)
	m.refreshTranscript()
}

func (m *Model) activeConversation() *types.Conversation {
	return m.manager.Store.ActiveConversation()
}

func (m *Model) activeMessages() []*types.Message {
	if conv := m.activeConversation(); conv != nil {
		return conv.Messages
	}
	return nil
}

func (m *Model) selectedMessageRef() *types.Message {
	messages := m.activeMessages()
	if m.selectedMessage < 0 || m.selectedMessage >= len(messages) {
		return nil
	}
	return messages[m.selectedMessage]
}

// refreshTranscript re-renders the viewport content from the store snapshot.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	selected := -1
	if m.mode == uiModeBrowse || m.mode == uiModeEdit {
		selected = m.selectedMessage
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(renderMessages(m.activeMessages(), m.viewport.Width, selected))
	if atBottom || m.sending {
		m.viewport.GotoBottom()
	}
}

func (m *Model) syncFromStore() {
	state := m.manager.Store.Snapshot()
	m.conversations = state.Conversations
	if m.sidebarCursor >= len(m.conversations) {
		m.sidebarCursor = len(m.conversations) - 1
	}
	if m.sidebarCursor < 0 {
		m.sidebarCursor = 0
	}
	if messages := m.activeMessages(); m.selectedMessage >= len(messages) {
		m.selectedMessage = len(messages) - 1
	}
	m.refreshTranscript()
}
