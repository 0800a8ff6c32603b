package types

import "time"

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one chat turn. A persisted message has a server-assigned ID and
// an empty TempID; an optimistic placeholder has only a TempID and lives in
// local state until the send round-trip completes or fails. Reconciliation
// code branches on Pending(), never on id prefixes.
type Message struct {
	ID             string            `json:"id,omitempty"`
	TempID         string            `json:"-"`
	Role           Role              `json:"role"`
	Content        string            `json:"content"`
	Timestamp      time.Time         `json:"timestamp,omitempty"`
	Sources        []Source          `json:"sources,omitempty"`
	IsEdited       bool              `json:"is_edited,omitempty"`
	Versions       []*MessageVersion `json:"versions,omitempty"`
	CurrentVersion int               `json:"current_version,omitempty"`

	// IsRegenerating is client-side only: set while a bot answer is being
	// composed or regenerated, cleared by the next detail refetch.
	IsRegenerating bool `json:"-"`
}

// Pending reports whether the message is an optimistic placeholder that has
// not been confirmed by the server.
func (m *Message) Pending() bool {
	return m != nil && m.ID == "" && m.TempID != ""
}

// Key returns the identifier used to address the message in local state:
// the server id when persisted, the temp id while pending.
func (m *Message) Key() string {
	if m == nil {
		return ""
	}
	if m.ID != "" {
		return m.ID
	}
	return m.TempID
}

// TotalVersions returns the number of stored content variants. An unedited
// message has no version history and reports zero.
func (m *Message) TotalVersions() int {
	if m == nil {
		return 0
	}
	return len(m.Versions)
}

// MessageVersion is one historical content variant of an edited message,
// together with the downstream messages that existed under that variant.
type MessageVersion struct {
	Content           string     `json:"content"`
	EditedAt          time.Time  `json:"edited_at,omitempty"`
	FollowingMessages []*Message `json:"following_messages,omitempty"`
}

// Source is a retrieval reference attached to a bot answer.
type Source struct {
	Title    string `json:"title,omitempty"`
	Document string `json:"document,omitempty"`
	Page     int    `json:"page,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
}
