package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/HaRin2806/nutribot-cli/internal/types"
)

// Admin console endpoints. The server enforces the admin flag; these fail
// with 403 for ordinary users.

func (c *Client) ListUsers(ctx context.Context, page, perPage int, search string) (*UsersResponse, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}
	if search = strings.TrimSpace(search); search != "" {
		query.Set("search", search)
	}
	path := "/admin/users"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var resp UsersResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("user id is required")
	}
	return c.doJSON(ctx, http.MethodPut, "/admin/users/"+url.PathEscape(id), req, true, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("user id is required")
	}
	return c.doJSON(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(id), nil, true, nil)
}

// ListAllConversations lists conversations across all users.
func (c *Client) ListAllConversations(ctx context.Context, page, perPage int) (*ConversationsResponse, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}
	path := "/admin/conversations"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var resp ConversationsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AdminDeleteConversation(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("conversation id is required")
	}
	return c.doJSON(ctx, http.MethodDelete, "/admin/conversations/"+url.PathEscape(id), nil, true, nil)
}

func (c *Client) ListDocuments(ctx context.Context) (*DocumentsResponse, error) {
	var resp DocumentsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/admin/documents", nil, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UploadDocument(ctx context.Context, filename, title string, content io.Reader) (*types.Document, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil, errors.New("filename is required")
	}
	fields := map[string]string{}
	if title = strings.TrimSpace(title); title != "" {
		fields["title"] = title
	}
	var resp DocumentResponse
	if err := c.doMultipart(ctx, "/admin/documents", "file", filename, content, fields, &resp); err != nil {
		return nil, err
	}
	return resp.Document, nil
}

func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("document id is required")
	}
	return c.doJSON(ctx, http.MethodDelete, "/admin/documents/"+url.PathEscape(id), nil, true, nil)
}

func (c *Client) ListFeedback(ctx context.Context) (*FeedbackListResponse, error) {
	var resp FeedbackListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/admin/feedback", nil, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetSystemSettings(ctx context.Context) (*types.SystemSettings, error) {
	var resp SystemSettingsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/admin/settings", nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Settings, nil
}

func (c *Client) UpdateSystemSettings(ctx context.Context, settings *types.SystemSettings) error {
	if settings == nil {
		return errors.New("settings are required")
	}
	return c.doJSON(ctx, http.MethodPut, "/admin/settings", settings, true, nil)
}
