package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

func (c *Client) ListConversations(ctx context.Context, opts ListConversationsOptions) (*ConversationsResponse, error) {
	query := url.Values{}
	query.Set("include_archived", strconv.FormatBool(opts.IncludeArchived))
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	var resp ConversationsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/conversations?"+query.Encode(), nil, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetConversation(ctx context.Context, id string) (*ConversationResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("conversation id is required")
	}
	var resp ConversationResponse
	if err := c.doJSON(ctx, http.MethodGet, "/conversations/"+url.PathEscape(id), nil, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateConversation(ctx context.Context, req CreateConversationRequest) (*CreateConversationResponse, error) {
	var resp CreateConversationResponse
	if err := c.doJSON(ctx, http.MethodPost, "/conversations", req, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateConversation(ctx context.Context, id string, req UpdateConversationRequest) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("conversation id is required")
	}
	return c.doJSON(ctx, http.MethodPut, "/conversations/"+url.PathEscape(id), req, true, nil)
}

func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("conversation id is required")
	}
	return c.doJSON(ctx, http.MethodDelete, "/conversations/"+url.PathEscape(id), nil, true, nil)
}

func (c *Client) DeleteConversations(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return c.doJSON(ctx, http.MethodPost, "/conversations/bulk-delete", BulkDeleteRequest{ConversationIDs: ids}, true, nil)
}

// SendMessage posts a chat turn. ConversationID is empty when the message
// starts a new thread; the response always carries the (possibly freshly
// created) conversation id.
func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (*SendMessageResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, errors.New("message is required")
	}
	var resp SendMessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/chat", req, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) EditMessage(ctx context.Context, messageID string, req EditMessageRequest) error {
	messageID = strings.TrimSpace(messageID)
	if messageID == "" {
		return errors.New("message id is required")
	}
	path := fmt.Sprintf("/messages/%s/edit", url.PathEscape(messageID))
	return c.doJSON(ctx, http.MethodPut, path, req, true, nil)
}

func (c *Client) SwitchMessageVersion(ctx context.Context, messageID string, version int, req SwitchVersionRequest) error {
	messageID = strings.TrimSpace(messageID)
	if messageID == "" {
		return errors.New("message id is required")
	}
	path := fmt.Sprintf("/messages/%s/versions/%d", url.PathEscape(messageID), version)
	return c.doJSON(ctx, http.MethodPut, path, req, true, nil)
}

func (c *Client) RegenerateResponse(ctx context.Context, messageID string, req RegenerateRequest) error {
	messageID = strings.TrimSpace(messageID)
	if messageID == "" {
		return errors.New("message id is required")
	}
	path := fmt.Sprintf("/messages/%s/regenerate", url.PathEscape(messageID))
	return c.doJSON(ctx, http.MethodPost, path, req, true, nil)
}

// DeleteMessageAndFollowing removes the message and every message after it.
// Destructive and non-reversible server-side.
func (c *Client) DeleteMessageAndFollowing(ctx context.Context, messageID string, req DeleteMessageRequest) error {
	messageID = strings.TrimSpace(messageID)
	if messageID == "" {
		return errors.New("message id is required")
	}
	return c.doJSON(ctx, http.MethodDelete, "/messages/"+url.PathEscape(messageID), req, true, nil)
}

func (c *Client) SubmitFeedback(ctx context.Context, req FeedbackRequest) error {
	if strings.TrimSpace(req.Content) == "" {
		return errors.New("feedback content is required")
	}
	return c.doJSON(ctx, http.MethodPost, "/feedback", req, true, nil)
}

func (c *Client) ListMyFeedback(ctx context.Context) (*FeedbackListResponse, error) {
	var resp FeedbackListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/feedback", nil, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
