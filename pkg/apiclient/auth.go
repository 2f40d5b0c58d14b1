package apiclient

import (
	"context"
	"net/http"

	"github.com/athletichub/athletichub/internal/entity"
)

// ExchangeToken trades a bearer identity token for an application-issued
// session token via the remote API's auth/login endpoint.
func (c *Client) ExchangeToken(ctx context.Context, identityToken, email string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/login", identityToken,
		nil, map[string]string{"email": email}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &entity.NetworkError{
			Op:  "POST /auth/login",
			Err: entity.ErrUnauthorized,
		}
	}
	return resp.Token, nil
}
