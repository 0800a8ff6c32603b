package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginStoresToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Email != "an@example.com" {
			t.Fatalf("unexpected email %q", req.Email)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":      true,
			"access_token": "tok-1",
			"user":         map[string]any{"id": "u1", "name": "An", "email": req.Email},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.Login(context.Background(), "an@example.com", "secret", true)
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if resp.User == nil || resp.User.ID != "u1" {
		t.Fatalf("unexpected user %+v", resp.User)
	}
	if c.Token() != "tok-1" {
		t.Fatalf("expected token stored, got %q", c.Token())
	}
}

func TestLoginFailureEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// HTTP 200 with success:false must still be treated as a failure.
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "invalid credentials",
		})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Login(context.Background(), "an@example.com", "wrong", false)
	apiErr := AsAPIError(err)
	if apiErr == nil {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "invalid credentials" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
}

func TestVerifyRequiresToken(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.VerifyToken(context.Background())
	if !IsAuthError(err) {
		t.Fatalf("expected auth error without token, got %v", err)
	}
}

func TestAuthErrorOn401(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "token expired"})
	}))
	defer server.Close()

	c := NewWithToken(server.URL, "stale")
	_, err := c.VerifyToken(context.Background())
	if !IsAuthError(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
}
