// internal/domain/user/denylist.go
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist remembers signed-out tokens until they would have expired
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redisDenylist struct {
	client *redis.Client
}

// NewRedisDenylist keeps revoked token IDs in Redis
func NewRedisDenylist(client *redis.Client) TokenDenylist {
	return &redisDenylist{client: client}
}

func (d *redisDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, revokedKey(tokenID), 1, ttl).Err()
}

func (d *redisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	count, err := d.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func revokedKey(tokenID string) string {
	return fmt.Sprintf("auth:revoked:%s", tokenID)
}
