package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bintangginanjar/Personal-Portfolio-API/internal/models"
)

const userKeyPrefix = "portfolio:user:"

// UserStore caches user records in front of the authentication gate, keyed by
// the bearer token string. Entries are invalidated whenever the stored token
// changes (login, logout), so a cached record can never outlive the token it
// belongs to. The server-side expiry check still runs against the cached
// record on every request.
type UserStore struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewUserStore(client *redis.Client, ttl time.Duration, log zerolog.Logger) *UserStore {
	return &UserStore{client: client, ttl: ttl, log: log}
}

func (s *UserStore) Get(ctx context.Context, token string) (models.User, bool) {
	payload, err := s.client.Get(ctx, userKeyPrefix+token).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn().Err(err).Msg("user cache get failed")
		}
		return models.User{}, false
	}

	var user models.User
	if err := json.Unmarshal(payload, &user); err != nil {
		s.log.Warn().Err(err).Msg("user cache decode failed")
		return models.User{}, false
	}
	return user, true
}

func (s *UserStore) Set(ctx context.Context, token string, user models.User) {
	payload, err := json.Marshal(user)
	if err != nil {
		s.log.Warn().Err(err).Msg("user cache encode failed")
		return
	}
	if err := s.client.Set(ctx, userKeyPrefix+token, payload, s.ttl).Err(); err != nil {
		s.log.Warn().Err(err).Msg("user cache set failed")
	}
}

func (s *UserStore) Invalidate(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.client.Del(ctx, userKeyPrefix+token).Err(); err != nil {
		s.log.Warn().Err(err).Msg("user cache invalidate failed")
	}
}
