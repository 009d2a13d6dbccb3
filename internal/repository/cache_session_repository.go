package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pdf-quiz/internal/cache"
	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/logger"

	"go.uber.org/zap"
)

// CacheSessionRepository stores quiz sessions as JSON in a domain.Cache with a TTL.
// Entries expire on their own; nothing outlives the TTL.
type CacheSessionRepository struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewCacheSessionRepository creates a session repository backed by the given cache.
func NewCacheSessionRepository(c domain.Cache, ttl time.Duration) *CacheSessionRepository {
	return &CacheSessionRepository{cache: c, ttl: ttl}
}

func (r *CacheSessionRepository) generateKey(id string) string {
	return cache.GenerateCacheKey("quiz", "session", id)
}

func (r *CacheSessionRepository) Save(ctx context.Context, session *domain.QuizSession) error {
	if session == nil || session.ID == "" {
		return domain.NewInternalError("cannot save a session without an ID", nil)
	}

	key := r.generateKey(session.ID)
	data, err := json.Marshal(session)
	if err != nil {
		return domain.NewInternalError("failed to marshal quiz session", err)
	}
	if err := r.cache.Set(ctx, key, string(data), r.ttl); err != nil {
		logger.Get().Error("Failed to store quiz session", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to store quiz session %s", session.ID), err)
	}
	return nil
}

func (r *CacheSessionRepository) Get(ctx context.Context, id string) (*domain.QuizSession, error) {
	key := r.generateKey(id)
	data, err := r.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewSessionNotFoundError(id)
		}
		logger.Get().Error("Failed to load quiz session", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to load quiz session %s", id), err)
	}
	if data == "" {
		return nil, domain.NewSessionNotFoundError(id)
	}

	var session domain.QuizSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal quiz session %s", id), err)
	}
	return &session, nil
}

func (r *CacheSessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, r.generateKey(id)); err != nil {
		return domain.NewInternalError(fmt.Sprintf("failed to delete quiz session %s", id), err)
	}
	return nil
}

var _ domain.SessionRepository = (*CacheSessionRepository)(nil)
