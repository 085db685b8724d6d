package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/baechuer/skillmarket/internal/domain"
)

// ProfileCache stores public profile views as JSON under profile:<uid>.
// The credential is never part of the cached value.
type ProfileCache struct {
	rdb    *goredis.Client
	ttl    time.Duration
	prefix string
}

func NewProfileCache(c *Client, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProfileCache{rdb: c.rdb, ttl: ttl, prefix: "profile:"}
}

type cachedProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Specialty string    `json:"specialty"`
	Location  string    `json:"location"`
	Phone     string    `json:"phone"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *ProfileCache) Get(ctx context.Context, userID string) (domain.PublicUser, bool, error) {
	b, err := c.rdb.Get(ctx, c.prefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.PublicUser{}, false, nil
		}
		return domain.PublicUser{}, false, domain.ErrRedisUnavailable(err)
	}

	var cp cachedProfile
	if err := json.Unmarshal(b, &cp); err != nil {
		// corrupt entry: drop it and report a miss
		_ = c.rdb.Del(ctx, c.prefix+userID).Err()
		return domain.PublicUser{}, false, nil
	}
	return domain.PublicUser(cp), true, nil
}

func (c *ProfileCache) Set(ctx context.Context, u domain.PublicUser) error {
	b, err := json.Marshal(cachedProfile(u))
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, c.prefix+u.ID, b, c.ttl).Err(); err != nil {
		return domain.ErrRedisUnavailable(err)
	}
	return nil
}
