package apiclient

import (
	"context"
	"net/http"

	"go-fraud-console/internal/models"
)

// Login posts credentials. A 2xx response is decoded as-is; the caller decides
// whether it means success. Non-2xx responses come back as *APIError.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.do(ctx, call{
		endpoint: "login",
		method:   http.MethodPost,
		path:     "/login",
		body:     models.LoginRequest{Username: username, Password: password},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, call{
		endpoint: "logout",
		method:   http.MethodPost,
		path:     "/logout",
		body:     struct{}{},
	}, nil)
}
