package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/w4tchme/w4tchme/internal/wizard"
)

var Rdb *redis.Client

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// SessionStore keeps serialized wizard sessions in Redis so in-progress
// creations survive a server restart. Sessions carry a TTL; an expired
// wizard simply starts over.
type SessionStore struct {
	ttl time.Duration
}

var _ wizard.SessionStore = (*SessionStore)(nil)

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{ttl: ttl}
}

func sessionKey(id string) string {
	return "wizard:" + id
}

func (s *SessionStore) Save(ctx context.Context, id string, st *wizard.State) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := Rdb.Set(ctx, sessionKey(id), payload, s.ttl).Err(); err != nil {
		log.Error().Err(err).Str("session", id).Msg("failed to save wizard session")
		return err
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context, id string) (*wizard.State, error) {
	payload, err := Rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, wizard.ErrSessionNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("session", id).Msg("failed to load wizard session")
		return nil, err
	}
	var st wizard.State
	if err := json.Unmarshal(payload, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return Rdb.Del(ctx, sessionKey(id)).Err()
}
