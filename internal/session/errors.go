package session

import "errors"

var (
	// ErrNotAuthenticated is returned by operations that need a logged-in
	// user before any network I/O happens.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAgeRequired means no age-context could be resolved and the user
	// declined (or had no way) to supply one. The calling operation aborts
	// with no state mutation.
	ErrAgeRequired = errors.New("age required")

	ErrAgeOutOfRange = errors.New("age must be between 1 and 19")

	ErrEmptyContent = errors.New("content is empty")

	ErrMessageNotFound = errors.New("message not found")

	ErrNotBotMessage = errors.New("not a bot message")

	ErrVersionOutOfRange = errors.New("version out of range")

	ErrNoActiveConversation = errors.New("no active conversation")

	// ErrAgeLocked means the conversation already holds messages, so its
	// age-context can no longer be changed.
	ErrAgeLocked = errors.New("age-context is locked once messages exist")
)
