package types

import "time"

// AgeContext bounds. Every chat request carries an age in this range.
const (
	MinAge = 1
	MaxAge = 19
)

// ValidAge reports whether age is a usable age-context value.
func ValidAge(age int) bool {
	return age >= MinAge && age <= MaxAge
}

// Conversation is a chat thread. The list endpoint returns summaries
// (Messages nil, MessageCount set); the detail endpoint returns the full
// ordered message history.
type Conversation struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	AgeContext   int        `json:"age_context,omitempty"`
	IsArchived   bool       `json:"is_archived,omitempty"`
	CreatedAt    time.Time  `json:"created_at,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at,omitempty"`
	MessageCount int        `json:"message_count,omitempty"`
	Messages     []*Message `json:"messages,omitempty"`
}

// Pending reports whether the conversation exists only locally, as the
// placeholder created when the first message of a new thread is sent.
func (c *Conversation) Pending() bool {
	return c != nil && c.ID == ""
}

// MessageByID returns the message with the given stable server id, or nil.
func (c *Conversation) MessageByID(id string) *Message {
	if c == nil || id == "" {
		return nil
	}
	for _, m := range c.Messages {
		if m != nil && m.ID == id {
			return m
		}
	}
	return nil
}

// Pagination describes a page of the conversation list.
type Pagination struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	PerPage int `json:"per_page,omitempty"`
	Total   int `json:"total,omitempty"`
}
