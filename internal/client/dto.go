package client

import "github.com/HaRin2806/nutribot-cli/internal/types"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember,omitempty"`
}

type LoginResponse struct {
	Envelope
	User        *types.User `json:"user"`
	AccessToken string      `json:"access_token"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Gender   string `json:"gender,omitempty"`
}

type RegisterResponse struct {
	Envelope
	User *types.User `json:"user"`
}

type VerifyResponse struct {
	Envelope
	User *types.User `json:"user"`
}

type ListConversationsOptions struct {
	IncludeArchived bool
	Page            int
	PerPage         int
}

type ConversationsResponse struct {
	Envelope
	Conversations []*types.Conversation `json:"conversations"`
	Pagination    types.Pagination      `json:"pagination"`
}

type ConversationResponse struct {
	Envelope
	Conversation *types.Conversation `json:"conversation"`
}

type CreateConversationRequest struct {
	Title      string `json:"title,omitempty"`
	AgeContext int    `json:"age_context"`
}

type CreateConversationResponse struct {
	Envelope
	ConversationID string `json:"conversation_id"`
}

// UpdateConversationRequest carries only the fields being changed; nil
// pointers are omitted from the payload.
type UpdateConversationRequest struct {
	Title      *string `json:"title,omitempty"`
	AgeContext *int    `json:"age_context,omitempty"`
	IsArchived *bool   `json:"is_archived,omitempty"`
}

type BulkDeleteRequest struct {
	ConversationIDs []string `json:"conversation_ids"`
}

type SendMessageRequest struct {
	Message        string `json:"message"`
	Age            int    `json:"age"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type SendMessageResponse struct {
	Envelope
	ConversationID string `json:"conversation_id"`
}

type EditMessageRequest struct {
	Content        string `json:"content"`
	ConversationID string `json:"conversation_id"`
	Age            int    `json:"age"`
}

type SwitchVersionRequest struct {
	ConversationID string `json:"conversation_id"`
}

type RegenerateRequest struct {
	ConversationID string `json:"conversation_id"`
	Age            int    `json:"age"`
}

type DeleteMessageRequest struct {
	ConversationID string `json:"conversation_id"`
}

type FeedbackRequest struct {
	Rating  int    `json:"rating,omitempty"`
	Content string `json:"content"`
}

type FeedbackListResponse struct {
	Envelope
	Feedback []*types.Feedback `json:"feedback"`
}

type UsersResponse struct {
	Envelope
	Users      []*types.User    `json:"users"`
	Pagination types.Pagination `json:"pagination"`
}

type UpdateUserRequest struct {
	Name    *string `json:"name,omitempty"`
	IsAdmin *bool   `json:"is_admin,omitempty"`
}

type DocumentsResponse struct {
	Envelope
	Documents []*types.Document `json:"documents"`
}

type DocumentResponse struct {
	Envelope
	Document *types.Document `json:"document"`
}

type SystemSettingsResponse struct {
	Envelope
	Settings *types.SystemSettings `json:"settings"`
}
