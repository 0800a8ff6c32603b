package app

import (
	"github.com/HaRin2806/nutribot-cli/internal/session"
	"github.com/HaRin2806/nutribot-cli/internal/types"
)

type conversationsMsg struct {
	conversations []*types.Conversation
	err           error
}

type conversationOpenedMsg struct {
	id           string
	conversation *types.Conversation
}

type sendDoneMsg struct {
	result *session.SendResult
	err    error
}

type editDoneMsg struct {
	messageID string
	err       error
}

type versionSwitchedMsg struct {
	messageID string
	version   int
	err       error
}

type regenerateDoneMsg struct {
	messageID string
	err       error
}

type deleteFollowingDoneMsg struct {
	messageID string
	err       error
}

type conversationDeletedMsg struct {
	id  string
	err error
}

type conversationArchivedMsg struct {
	id  string
	err error
}

type clipboardMsg struct {
	err error
}

// storeChangedMsg fires whenever session state changes outside the
// update loop, so optimistic writes render before their request finishes.
type storeChangedMsg struct{}
