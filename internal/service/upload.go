package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"pdf-quiz/internal/config"
	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/dto"
	"pdf-quiz/internal/logger"
	"pdf-quiz/internal/util"
	"pdf-quiz/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// MsgQuizGenerated is reported once a quiz session has been created from an upload.
const MsgQuizGenerated = "Quiz generated successfully!"

// UploadService drives an uploaded PDF through extraction and generation
// into a fresh quiz session.
type UploadService interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (*dto.UploadResponse, error)
}

type uploadService struct {
	validator *validation.Validator
	extractor ExtractorService
	generator QuizGeneratorService
	sessions  domain.SessionRepository
	cfg       config.UploadConfig
	// at most one generation runs at a time
	inFlight *semaphore.Weighted
	newID    func() string
}

// NewUploadService creates a new instance of uploadService
func NewUploadService(
	v *validation.Validator,
	extractor ExtractorService,
	generator QuizGeneratorService,
	sessions domain.SessionRepository,
	cfg config.UploadConfig,
) UploadService {
	return &uploadService{
		validator: v,
		extractor: extractor,
		generator: generator,
		sessions:  sessions,
		cfg:       cfg,
		inFlight:  semaphore.NewWeighted(1),
		newID:     util.NewULID,
	}
}

// Upload implements UploadService
func (s *uploadService) Upload(ctx context.Context, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	l := logger.Get()

	if errs := s.validator.ValidateUpload(file); len(errs) > 0 {
		l.Warn("Upload rejected", zap.String("reason", domain.FormatError(errs)))
		return nil, errs
	}

	if !s.inFlight.TryAcquire(1) {
		l.Warn("Upload refused while another quiz is being generated", zap.String("file", file.Filename))
		return nil, domain.NewGenerationInProgressError()
	}
	defer s.inFlight.Release(1)

	data, err := s.readFile(file)
	if err != nil {
		return nil, err
	}
	if s.cfg.SniffContent {
		if errs := s.validator.ValidateContent(data); len(errs) > 0 {
			l.Warn("Upload content is not a PDF", zap.String("file", file.Filename))
			return nil, errs
		}
	}

	// a generation that has started is never cancelled by the client going away
	ctx = context.WithoutCancel(ctx)

	extraction, err := s.extractor.Extract(ctx, data)
	if err != nil {
		return nil, err
	}
	if !extraction.Success {
		return nil, domain.NewPageLimitExceededError(extraction.Message, extraction.PageCount)
	}
	l.Info(extraction.Message, zap.String("file", file.Filename), zap.Int("page_count", extraction.PageCount))

	generation, err := s.generator.Generate(ctx, extraction.Content)
	if err != nil {
		return nil, err
	}

	session := domain.NewQuizSession(s.newID(), file.Filename, generation.Questions)
	if err := s.sessions.Save(ctx, session); err != nil {
		l.Error("Failed to store quiz session", zap.Error(err), zap.String("session_id", session.ID))
		return nil, err
	}

	l.Info(MsgQuizGenerated,
		zap.String("session_id", session.ID),
		zap.String("file", file.Filename),
		zap.Int("num_questions", len(session.Questions)),
	)
	return &dto.UploadResponse{
		Message: MsgQuizGenerated,
		Quiz:    dto.NewQuizView(session),
	}, nil
}

func (s *uploadService) readFile(file *multipart.FileHeader) ([]byte, error) {
	if s.cfg.MaxBytes > 0 && file.Size > int64(s.cfg.MaxBytes) {
		return nil, domain.NewValidationError(fmt.Sprintf("PDF exceeds the %d byte upload limit", s.cfg.MaxBytes))
	}

	f, err := file.Open()
	if err != nil {
		return nil, domain.NewInternalError("Failed to open uploaded file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.NewInternalError("Failed to read uploaded file", err)
	}
	return data, nil
}
