package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListConversationsQuery(t *testing.T) {
	var gotQuery string
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"conversations": []map[string]any{
				{"id": "c1", "title": "Weaning advice", "message_count": 4},
			},
			"pagination": map[string]any{"page": 2, "pages": 5},
		})
	}))
	defer server.Close()

	c := NewWithToken(server.URL, "tok")
	resp, err := c.ListConversations(context.Background(), ListConversationsOptions{Page: 2, PerPage: 20})
	if err != nil {
		t.Fatalf("ListConversations error: %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotQuery != "include_archived=false&page=2&per_page=20" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if len(resp.Conversations) != 1 || resp.Conversations[0].ID != "c1" {
		t.Fatalf("unexpected conversations %+v", resp.Conversations)
	}
	if resp.Pagination.Page != 2 || resp.Pagination.Pages != 5 {
		t.Fatalf("unexpected pagination %+v", resp.Pagination)
	}
}

func TestSendMessagePayload(t *testing.T) {
	var got SendMessageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "conversation_id": "c9"})
	}))
	defer server.Close()

	c := NewWithToken(server.URL, "tok")
	resp, err := c.SendMessage(context.Background(), SendMessageRequest{Message: "What should a toddler eat?", Age: 3})
	if err != nil {
		t.Fatalf("SendMessage error: %v", err)
	}
	if got.Age != 3 || got.ConversationID != "" {
		t.Fatalf("unexpected payload %+v", got)
	}
	if resp.ConversationID != "c9" {
		t.Fatalf("unexpected conversation id %q", resp.ConversationID)
	}
}

func TestSwitchVersionPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()

	c := NewWithToken(server.URL, "tok")
	err := c.SwitchMessageVersion(context.Background(), "m1", 2, SwitchVersionRequest{ConversationID: "c1"})
	if err != nil {
		t.Fatalf("SwitchMessageVersion error: %v", err)
	}
	if gotPath != "/messages/m1/versions/2" {
		t.Fatalf("unexpected path %q", gotPath)
	}
}

func TestDeleteConversationErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "not yours"})
	}))
	defer server.Close()

	c := NewWithToken(server.URL, "tok")
	err := c.DeleteConversation(context.Background(), "c1")
	apiErr := AsAPIError(err)
	if apiErr == nil || apiErr.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 APIError, got %v", err)
	}
	if apiErr.Message != "not yours" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
}
