package types

import "time"

// Feedback is a user-submitted service rating with an optional admin reply.
type Feedback struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	UserName   string    `json:"user_name,omitempty"`
	Rating     int       `json:"rating,omitempty"`
	Content    string    `json:"content"`
	Status     string    `json:"status,omitempty"`
	AdminReply string    `json:"admin_reply,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}
