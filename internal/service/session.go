package service

import (
	"context"
	"sync"

	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/dto"
	"pdf-quiz/internal/logger"
	"pdf-quiz/internal/util"

	"go.uber.org/zap"
)

// SessionService moves a quiz session through answering and completion.
type SessionService interface {
	Get(ctx context.Context, id string) (*dto.QuizView, error)
	Select(ctx context.Context, id, option string) (*dto.QuizView, error)
	Submit(ctx context.Context, id string) (*dto.QuizView, error)
	// Reset discards the session; the returned view is the empty upload form.
	Reset(ctx context.Context, id string) (*dto.QuizView, error)
}

type sessionService struct {
	sessions domain.SessionRepository
	// serialises read-modify-write cycles on sessions
	mu sync.Mutex
}

// NewSessionService creates a new instance of sessionService
func NewSessionService(sessions domain.SessionRepository) SessionService {
	return &sessionService{sessions: sessions}
}

func (s *sessionService) load(ctx context.Context, id string) (*domain.QuizSession, error) {
	if !util.IsValidULID(id) {
		return nil, domain.NewSessionNotFoundError(id)
	}
	return s.sessions.Get(ctx, id)
}

// Get implements SessionService
func (s *sessionService) Get(ctx context.Context, id string) (*dto.QuizView, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewQuizView(session), nil
}

// Select implements SessionService
func (s *sessionService) Select(ctx context.Context, id, option string) (*dto.QuizView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := session.Select(option); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return dto.NewQuizView(session), nil
}

// Submit implements SessionService
func (s *sessionService) Submit(ctx context.Context, id string) (*dto.QuizView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	correct, err := session.Submit()
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	l := logger.Get()
	l.Debug("Answer submitted",
		zap.String("session_id", id),
		zap.Bool("correct", correct),
		zap.Int("score", session.Score),
	)
	if session.Finished {
		l.Info("Quiz completed",
			zap.String("session_id", id),
			zap.Int("score", session.Score),
			zap.Int("total", len(session.Questions)),
			zap.Int("percentage", session.Percentage()),
		)
	}
	return dto.NewQuizView(session), nil
}

// Reset implements SessionService
func (s *sessionService) Reset(ctx context.Context, id string) (*dto.QuizView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Reset()
	if err := s.sessions.Delete(ctx, id); err != nil {
		return nil, err
	}
	logger.Get().Info("Quiz session reset", zap.String("session_id", id))
	return dto.NewQuizView(session), nil
}
