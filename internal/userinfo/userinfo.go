// Package userinfo persists the last known user profile of a browser session
// so pages can render it before the backend answers.
package userinfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"

	"github.com/terraincognita07/stride/internal/models"
)

// Store keeps at most one profile per session. Get reports false when none
// is stored.
type Store interface {
	Get(ctx context.Context, sessionID string) (models.UserProfile, bool, error)
	Set(ctx context.Context, sessionID string, profile models.UserProfile) error
	Clear(ctx context.Context, sessionID string) error
}

// Repository is the persistence used by SQLStore, satisfied by db.UserInfoRepository.
type Repository interface {
	Find(sessionID string) (datatypes.JSON, error)
	Upsert(sessionID string, payload datatypes.JSON) error
	Delete(sessionID string) error
}

// SQLStore keeps entries in the user_info_entries table.
type SQLStore struct {
	repo Repository
}

func NewSQLStore(repo Repository) *SQLStore {
	return &SQLStore{repo: repo}
}

func (store *SQLStore) Get(_ context.Context, sessionID string) (models.UserProfile, bool, error) {
	payload, err := store.repo.Find(sessionID)
	if err != nil {
		return models.UserProfile{}, false, fmt.Errorf("load user info: %w", err)
	}
	if payload == nil {
		return models.UserProfile{}, false, nil
	}
	return decode(payload)
}

func (store *SQLStore) Set(_ context.Context, sessionID string, profile models.UserProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode user info: %w", err)
	}
	if err := store.repo.Upsert(sessionID, datatypes.JSON(payload)); err != nil {
		return fmt.Errorf("store user info: %w", err)
	}
	return nil
}

func (store *SQLStore) Clear(_ context.Context, sessionID string) error {
	if err := store.repo.Delete(sessionID); err != nil {
		return fmt.Errorf("clear user info: %w", err)
	}
	return nil
}

// RedisStore keeps entries under "stride:userinfo:<session>" with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func Key(sessionID string) string {
	return "stride:userinfo:" + sessionID
}

func (store *RedisStore) Get(ctx context.Context, sessionID string) (models.UserProfile, bool, error) {
	payload, err := store.client.Get(ctx, Key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.UserProfile{}, false, nil
	}
	if err != nil {
		return models.UserProfile{}, false, fmt.Errorf("load user info: %w", err)
	}
	return decode(payload)
}

func (store *RedisStore) Set(ctx context.Context, sessionID string, profile models.UserProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode user info: %w", err)
	}
	if err := store.client.Set(ctx, Key(sessionID), payload, store.ttl).Err(); err != nil {
		return fmt.Errorf("store user info: %w", err)
	}
	return nil
}

func (store *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := store.client.Del(ctx, Key(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear user info: %w", err)
	}
	return nil
}

func decode(payload []byte) (models.UserProfile, bool, error) {
	var profile models.UserProfile
	if err := json.Unmarshal(payload, &profile); err != nil {
		return models.UserProfile{}, false, fmt.Errorf("decode user info: %w", err)
	}
	return profile, true, nil
}
