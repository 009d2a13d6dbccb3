package service

import (
	"context"
	"strings"

	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/logger"

	"go.uber.org/zap"
)

const (
	// MaxPages is the largest page count accepted for quiz generation.
	MaxPages = 9
	// pageReadCeiling bounds the page loop independently of MaxPages.
	pageReadCeiling = 10

	msgPageLimitExceeded = "PDF must have less than 10 pages"
	msgExtractionSuccess = "PDF uploaded successfully"
)

// ExtractorService pulls plain text out of an uploaded PDF.
type ExtractorService interface {
	// Extract returns a business failure result (Success=false) when the page
	// limit is exceeded, and an error when the document cannot be read.
	Extract(ctx context.Context, data []byte) (*domain.ExtractionResult, error)
}

type extractorService struct {
	opener domain.DocumentOpener
}

// NewExtractorService creates a new instance of extractorService
func NewExtractorService(opener domain.DocumentOpener) ExtractorService {
	return &extractorService{opener: opener}
}

// Extract implements ExtractorService
func (s *extractorService) Extract(ctx context.Context, data []byte) (*domain.ExtractionResult, error) {
	doc, err := s.opener.Open(data)
	if err != nil {
		logger.Get().Warn("Failed to open PDF", zap.Error(err), zap.Int("bytes", len(data)))
		return nil, domain.NewDocumentOpenError(err)
	}

	pageCount := doc.NumPages()
	if pageCount > MaxPages {
		logger.Get().Info("PDF rejected by page limit", zap.Int("page_count", pageCount))
		return &domain.ExtractionResult{
			Success:   false,
			Message:   msgPageLimitExceeded,
			PageCount: pageCount,
		}, nil
	}

	var sb strings.Builder
	last := min(pageCount, pageReadCeiling)
	for i := 1; i <= last; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fragments, err := doc.PageText(i)
		if err != nil {
			logger.Get().Warn("Failed to extract page text", zap.Error(err), zap.Int("page", i))
			return nil, domain.NewDocumentOpenError(err)
		}
		sb.WriteString(strings.Join(fragments, " "))
		sb.WriteString("\n\n")
	}

	logger.Get().Debug("Extracted PDF text", zap.Int("page_count", pageCount), zap.Int("chars", sb.Len()))
	return &domain.ExtractionResult{
		Success:   true,
		Message:   msgExtractionSuccess,
		Content:   sb.String(),
		PageCount: pageCount,
	}, nil
}
