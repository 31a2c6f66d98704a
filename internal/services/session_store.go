package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/promotora-credito/app-cadastro/internal/logging"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/promotora-credito/app-cadastro/internal/utils"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SessionStore keeps wizard sessions between requests
type SessionStore interface {
	Save(ctx context.Context, session *models.WizardSession) error
	Load(ctx context.Context, id string) (*models.WizardSession, error)
	Delete(ctx context.Context, id string) error
}

// RedisSessionStore stores sessions as JSON with a sliding TTL
type RedisSessionStore struct {
	cache  Cache
	ttl    time.Duration
	logger *logging.SafeLogger
}

// NewRedisSessionStore creates a Redis backed session store
func NewRedisSessionStore(cache Cache, ttl time.Duration, logger *logging.SafeLogger) *RedisSessionStore {
	return &RedisSessionStore{cache: cache, ttl: ttl, logger: logger}
}

func sessionKey(id string) string {
	return "wizard:session:" + id
}

// Save writes the session and refreshes its TTL
func (s *RedisSessionStore) Save(ctx context.Context, session *models.WizardSession) error {
	key := sessionKey(session.ID)
	ctx, span := utils.TraceCache(ctx, "set", key, utils.CacheTTL(s.ttl))
	defer span.End()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.cache.Set(ctx, key, data, s.ttl).Err(); err != nil {
		utils.RecordErrorInSpan(span, err, attribute.String("wizard.id", session.ID))
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load reads a session. Expired or unknown ids yield models.ErrSessionNotFound.
func (s *RedisSessionStore) Load(ctx context.Context, id string) (*models.WizardSession, error) {
	key := sessionKey(id)
	ctx, span := utils.TraceCache(ctx, "get", key)
	defer span.End()

	raw, err := s.cache.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", models.ErrSessionNotFound, id)
	}
	if err != nil {
		utils.RecordErrorInSpan(span, err, attribute.String("wizard.id", id))
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session models.WizardSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		s.logger.Error("corrupt wizard session", zap.String("wizard_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

// Delete discards a session and its option generations
func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	key := sessionKey(id)
	ctx, span := utils.TraceCache(ctx, "delete", key)
	defer span.End()

	keys := []string{key}
	for list := range models.OptionListParents {
		keys = append(keys, generationKey(id, list))
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
