package client

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// Login authenticates and stores the returned token on the client for
// subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string, remember bool) (*LoginResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}
	var resp LoginResponse
	req := LoginRequest{Email: email, Password: password, Remember: remember}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", req, false, &resp); err != nil {
		return nil, err
	}
	c.token = resp.AccessToken
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}
	var resp RegisterResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the token server-side. The caller clears local
// credentials regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, true, nil)
}

// VerifyToken checks the stored token and returns the user it belongs to.
func (c *Client) VerifyToken(ctx context.Context) (*VerifyResponse, error) {
	var resp VerifyResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/verify", nil, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
