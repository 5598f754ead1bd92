package cache

import (
	"context"
	"time"
)

const revokedTokenPrefix = "revoked:jti:"

// RevokeToken blacklists a token's jti until the token would have expired
// anyway. Used by logout.
func RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if client == nil || jti == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return client.Set(ctx, revokedTokenPrefix+jti, "1", ttl).Err()
}

// IsTokenRevoked reports whether the jti has been blacklisted. With no Redis
// the blacklist is disabled and every token is treated as live.
func IsTokenRevoked(ctx context.Context, jti string) bool {
	if client == nil || jti == "" {
		return false
	}
	n, err := client.Exists(ctx, revokedTokenPrefix+jti).Result()
	if err != nil {
		return false
	}
	return n > 0
}
