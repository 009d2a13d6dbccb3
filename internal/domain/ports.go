package domain

import "context"

// Document is an opened PDF whose pages can be read in order.
type Document interface {
	// NumPages returns the total page count reported by the document.
	NumPages() int
	// PageText returns the text fragments of a 1-based page, in reading order.
	PageText(page int) ([]string, error)
}

// DocumentOpener parses raw file bytes into a Document.
type DocumentOpener interface {
	Open(data []byte) (Document, error)
}

// TextGenerator sends one system + user instruction pair to a generative
// model and returns its single text completion.
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// SessionRepository keeps quiz sessions for the lifetime of one quiz attempt.
type SessionRepository interface {
	Save(ctx context.Context, session *QuizSession) error
	// Get returns a *DomainError with CodeSessionNotFound when the session is unknown.
	Get(ctx context.Context, id string) (*QuizSession, error)
	Delete(ctx context.Context, id string) error
}

// ExtractionResult is the outcome of reading text out of a PDF.
// A business failure (page limit) is reported with Success=false and no Content.
type ExtractionResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Content   string `json:"content,omitempty"`
	PageCount int    `json:"page_count"`
}

// GenerationResult is the outcome of a quiz generation call.
type GenerationResult struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Questions []Question `json:"questions,omitempty"`
}
