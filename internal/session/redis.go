package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists the session in Redis. Keys are namespaced by profile
// so multiple operator profiles can share one Redis server:
//
//	scadmin:session:{profile}
//
// The session is stored as a hash with one field per session attribute;
// the permissions slice is JSON-encoded into a single field.
type RedisStore struct {
	rdb     *redis.Client
	profile string
}

// NewRedisStore creates a Redis-backed store for the given profile.
func NewRedisStore(opts *redis.Options, profile string) (*RedisStore, error) {
	if profile == "" {
		return nil, fmt.Errorf("profile cannot be empty")
	}
	return &RedisStore{
		rdb:     redis.NewClient(opts),
		profile: profile,
	}, nil
}

// Close closes the Redis connection. Implements io.Closer.
func (r *RedisStore) Close() error {
	return r.rdb.Close()
}

// Ping verifies Redis connectivity. Useful for surfacing a misconfigured
// backend before the first real operation.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *RedisStore) key() string {
	return fmt.Sprintf("scadmin:session:%s", r.profile)
}

// Load reads the persisted session. A missing key is the unauthenticated
// session, not an error.
func (r *RedisStore) Load() (Session, error) {
	hash, err := r.rdb.HGetAll(context.Background(), r.key()).Result()
	if err != nil {
		return Session{}, fmt.Errorf("read session from redis: %w", err)
	}
	if len(hash) == 0 {
		return Session{}, nil
	}
	return hashToSession(hash)
}

// Save writes the session, replacing any previous one for this profile.
func (r *RedisStore) Save(s Session) error {
	hash, err := sessionToHash(s)
	if err != nil {
		return err
	}

	ctx := context.Background()
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, r.key())
	pipe.HSet(ctx, r.key(), hash)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write session to redis: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an already-clear store is a
// no-op.
func (r *RedisStore) Clear() error {
	if err := r.rdb.Del(context.Background(), r.key()).Err(); err != nil {
		return fmt.Errorf("clear session in redis: %w", err)
	}
	return nil
}

func sessionToHash(s Session) (map[string]interface{}, error) {
	permissionsJSON, err := json.Marshal(s.Permissions)
	if err != nil {
		return nil, fmt.Errorf("encode permissions: %w", err)
	}

	loggedIn := "0"
	if s.LoggedIn {
		loggedIn = "1"
	}
	return map[string]interface{}{
		"token":       s.Token,
		"user_type":   string(s.UserType),
		"permissions": string(permissionsJSON),
		"logged_in":   loggedIn,
	}, nil
}

func hashToSession(hash map[string]string) (Session, error) {
	var permissions []string
	if raw := hash["permissions"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &permissions); err != nil {
			return Session{}, fmt.Errorf("decode permissions: %w", err)
		}
	}
	return Session{
		Token:       hash["token"],
		UserType:    UserType(hash["user_type"]),
		Permissions: permissions,
		LoggedIn:    hash["logged_in"] == "1",
	}, nil
}
