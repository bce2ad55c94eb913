package api

import (
	"context"
	"fmt"
	"net/http"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
}

func (t tokenResponse) value() string {
	if t.Token != "" {
		return t.Token
	}
	return t.AccessToken
}

// Login exchanges username and password for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	return c.exchange(ctx, "auth/login", username, password)
}

// Register creates an account and returns its bearer token.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	return c.exchange(ctx, "auth/register", username, password)
}

func (c *Client) exchange(ctx context.Context, path, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("username and password are required")
	}
	var resp tokenResponse
	body := credentialsRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, path, nil, body, &resp); err != nil {
		return "", err
	}
	if resp.value() == "" {
		return "", fmt.Errorf("%w: response carried no token", ErrInvalidPayload)
	}
	return resp.value(), nil
}
