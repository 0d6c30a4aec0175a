package apiclient

import (
	"context"
	"net/http"

	"github.com/harentsoaR/medischedule-portal/internal/models"
)

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/register", body: req}, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: creds}, &out)
	return out, err
}

// CurrentUser validates token against /auth/me. The token is passed
// explicitly because it is checked before the session holds it.
func (c *Client) CurrentUser(ctx context.Context, token string) (models.User, error) {
	var out models.User
	if token == "" {
		return out, ErrNoToken
	}
	err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me", auth: true, token: token}, &out)
	return out, err
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (Ack, error) {
	var out Ack
	body := map[string]string{"email": email}
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/forgot-password", body: body}, &out)
	return out, err
}
