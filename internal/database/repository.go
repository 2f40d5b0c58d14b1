package database

import (
	"context"
	"time"
)

// TokenRepository persists the application-issued session token, one key per
// session. It is the durable-storage slot the session store writes on every
// identity change and the request path reads when building bearer headers.
type TokenRepository interface {
	Save(ctx context.Context, sessionID, token string, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}
