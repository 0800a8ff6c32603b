package session

import (
	"context"

	"github.com/HaRin2806/nutribot-cli/internal/client"
)

// API is the slice of the REST client the synchronization layer depends on.
// Tests substitute a fake; production wiring passes *client.Client, which
// satisfies this interface directly.
type API interface {
	ListConversations(ctx context.Context, opts client.ListConversationsOptions) (*client.ConversationsResponse, error)
	GetConversation(ctx context.Context, id string) (*client.ConversationResponse, error)
	CreateConversation(ctx context.Context, req client.CreateConversationRequest) (*client.CreateConversationResponse, error)
	UpdateConversation(ctx context.Context, id string, req client.UpdateConversationRequest) error
	DeleteConversation(ctx context.Context, id string) error
	DeleteConversations(ctx context.Context, ids []string) error
	SendMessage(ctx context.Context, req client.SendMessageRequest) (*client.SendMessageResponse, error)
	EditMessage(ctx context.Context, messageID string, req client.EditMessageRequest) error
	SwitchMessageVersion(ctx context.Context, messageID string, version int, req client.SwitchVersionRequest) error
	RegenerateResponse(ctx context.Context, messageID string, req client.RegenerateRequest) error
	DeleteMessageAndFollowing(ctx context.Context, messageID string, req client.DeleteMessageRequest) error
}
