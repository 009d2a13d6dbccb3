package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal   ErrorCode = "INTERNAL_ERROR"
	CodeValidation ErrorCode = "VALIDATION_ERROR"

	// Pipeline errors
	CodePageLimitExceeded    ErrorCode = "PAGE_LIMIT_EXCEEDED"
	CodeDocumentOpen         ErrorCode = "DOCUMENT_OPEN_ERROR"
	CodeMalformedResponse    ErrorCode = "MALFORMED_RESPONSE"
	CodeUpstreamService      ErrorCode = "UPSTREAM_SERVICE_ERROR"
	CodeGenerationInProgress ErrorCode = "GENERATION_IN_PROGRESS"

	// Quiz session errors
	CodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
	CodeInvalidState    ErrorCode = "INVALID_STATE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a detail entry that is surfaced in API error responses.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewPageLimitExceededError(message string, pageCount int) *DomainError {
	return NewError(CodePageLimitExceeded, message, nil).WithContext("page_count", pageCount)
}

func NewDocumentOpenError(cause error) *DomainError {
	return NewError(CodeDocumentOpen, "Failed to read PDF document", cause)
}

func NewMalformedResponseError(message string, cause error) *DomainError {
	return NewError(CodeMalformedResponse, message, cause)
}

func NewUpstreamServiceError(cause error) *DomainError {
	message := "Failed to generate quiz with LLM service"
	if cause != nil {
		message = fmt.Sprintf("%s: %s", message, FormatError(cause))
	}
	return NewError(CodeUpstreamService, message, cause)
}

func NewGenerationInProgressError() *DomainError {
	return NewError(CodeGenerationInProgress, "A quiz is already being generated, please wait", nil)
}

func NewSessionNotFoundError(sessionID string) *DomainError {
	return NewError(CodeSessionNotFound, fmt.Sprintf("Quiz session not found: %s", sessionID), nil)
}

func NewInvalidStateError(message string) *DomainError {
	return NewError(CodeInvalidState, message, nil)
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Message
}

// ValidationErrors is a set of field-level validation failures.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	return FormatError(v)
}

// NewFieldError creates a field-level validation failure.
func NewFieldError(field, message string) FieldError {
	return FieldError{Field: field, Message: message}
}

// NewValidationError wraps a single message as a validation failure without a field.
func NewValidationError(message string) ValidationErrors {
	return ValidationErrors{{Message: message}}
}
