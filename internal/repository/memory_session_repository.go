package repository

import (
	"context"
	"sync"

	"pdf-quiz/internal/domain"
)

// MemorySessionRepository keeps quiz sessions in process memory.
// Sessions are lost on restart.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.QuizSession
}

// NewMemorySessionRepository creates an empty in-memory session repository.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]*domain.QuizSession)}
}

func (r *MemorySessionRepository) Save(ctx context.Context, session *domain.QuizSession) error {
	if session == nil || session.ID == "" {
		return domain.NewInternalError("cannot save a session without an ID", nil)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session.Clone()
	return nil
}

func (r *MemorySessionRepository) Get(ctx context.Context, id string) (*domain.QuizSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, domain.NewSessionNotFoundError(id)
	}
	return session.Clone(), nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

var _ domain.SessionRepository = (*MemorySessionRepository)(nil)
