package redis

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/baechuer/skillmarket/internal/domain"
)

// SessionStore keeps opaque refresh tokens as rt:<token> -> <uid> with a TTL.
type SessionStore struct {
	rdb        *goredis.Client
	prefix     string
	tokenBytes int
}

func NewSessionStore(c *Client) *SessionStore {
	return &SessionStore{rdb: c.rdb, prefix: "rt:", tokenBytes: 32}
}

func (s *SessionStore) CreateRefreshToken(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", domain.ErrMissingField("user_id")
	}
	token, err := s.newOpaqueToken()
	if err != nil {
		return "", domain.ErrRandomFailed(err)
	}
	if err := s.rdb.Set(ctx, s.prefix+token, userID, ttl).Err(); err != nil {
		return "", domain.ErrRedisUnavailable(err)
	}
	return token, nil
}

func (s *SessionStore) GetUserIDByRefreshToken(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrRefreshTokenInvalid()
	}
	uid, err := s.rdb.Get(ctx, s.prefix+token).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", domain.ErrRefreshTokenInvalid()
		}
		return "", domain.ErrRedisUnavailable(err)
	}
	return uid, nil
}

// Atomic move: GET old, DEL old, SET new with TTL. Returns nil when old is gone,
// so a token can be rotated at most once.
const rotateLua = `
local v = redis.call("GET", KEYS[1])
if not v then
  return false
end
redis.call("DEL", KEYS[1])
redis.call("SET", KEYS[2], v, "PX", ARGV[1])
return v
`

func (s *SessionStore) RotateRefreshToken(ctx context.Context, oldToken string, ttl time.Duration) (string, error) {
	oldToken = strings.TrimSpace(oldToken)
	if oldToken == "" {
		return "", domain.ErrRefreshTokenInvalid()
	}
	newToken, err := s.newOpaqueToken()
	if err != nil {
		return "", domain.ErrRandomFailed(err)
	}

	ttlms := ttl.Milliseconds()
	if ttlms <= 0 {
		ttlms = (7 * 24 * time.Hour).Milliseconds()
	}

	res, err := s.rdb.Eval(ctx, rotateLua, []string{s.prefix + oldToken, s.prefix + newToken}, ttlms).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", domain.ErrRefreshTokenInvalid()
		}
		return "", domain.ErrRedisUnavailable(err)
	}
	if uid, ok := res.(string); !ok || uid == "" {
		return "", domain.ErrRefreshTokenInvalid()
	}
	return newToken, nil
}

// RevokeRefreshToken is idempotent.
func (s *SessionStore) RevokeRefreshToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if err := s.rdb.Del(ctx, s.prefix+token).Err(); err != nil {
		return domain.ErrRedisUnavailable(err)
	}
	return nil
}

func (s *SessionStore) newOpaqueToken() (string, error) {
	b := make([]byte, s.tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
