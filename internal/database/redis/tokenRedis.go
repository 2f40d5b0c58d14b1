package redis

import (
	"context"
	"errors"
	"time"

	"github.com/athletichub/athletichub/internal/database"
	"github.com/athletichub/athletichub/internal/entity"

	"github.com/go-redis/redis/v8"
)

type tokenRepository struct {
	client    *redis.Client
	keyPrefix string
}

func NewTokenRepository(client *redis.Client, keyPrefix string) database.TokenRepository {
	return &tokenRepository{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (r *tokenRepository) Save(ctx context.Context, sessionID, token string, ttl time.Duration) error {
	return r.client.Set(ctx, r.keyPrefix+sessionID, token, ttl).Err()
}

func (r *tokenRepository) Get(ctx context.Context, sessionID string) (string, error) {
	token, err := r.client.Get(ctx, r.keyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", entity.ErrNoSession
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (r *tokenRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.keyPrefix+sessionID).Err()
}
