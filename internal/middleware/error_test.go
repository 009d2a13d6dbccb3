package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdf-quiz/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appReturning(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/", func(c *fiber.Ctx) error { return err })
	return app
}

func decode(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"page limit", domain.NewPageLimitExceededError("PDF must have less than 10 pages", 12), http.StatusBadRequest, "PAGE_LIMIT_EXCEEDED", "PDF must have less than 10 pages"},
		{"invalid state", domain.NewInvalidStateError("select an option before submitting"), http.StatusBadRequest, "INVALID_STATE", "select an option before submitting"},
		{"not found", domain.NewSessionNotFoundError("x"), http.StatusNotFound, "SESSION_NOT_FOUND", "Quiz session not found: x"},
		{"in progress", domain.NewGenerationInProgressError(), http.StatusConflict, "GENERATION_IN_PROGRESS", "A quiz is already being generated, please wait"},
		{"document", domain.NewDocumentOpenError(errors.New("bad xref")), http.StatusUnprocessableEntity, "DOCUMENT_OPEN_ERROR", "Failed to read PDF document"},
		{"malformed", domain.NewMalformedResponseError("The model response was not a valid JSON question list", nil), http.StatusBadGateway, "MALFORMED_RESPONSE", "The model response was not a valid JSON question list"},
		{"upstream", domain.NewUpstreamServiceError(errors.New("timeout")), http.StatusServiceUnavailable, "UPSTREAM_SERVICE_ERROR", "Failed to generate quiz with LLM service: timeout"},
		{"internal", domain.NewInternalError("boom", nil), http.StatusInternalServerError, "INTERNAL_ERROR", "boom"},
		{"fiber", fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "HTTP_ERROR", "Method Not Allowed"},
		{"plain", errors.New("something broke"), http.StatusInternalServerError, "INTERNAL_ERROR", "something broke"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := appReturning(tt.err).Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body := decode(t, resp.Body)
			assert.Equal(t, tt.wantCode, body["code"])
			assert.Equal(t, tt.wantMsg, body["message"])
			assert.Equal(t, float64(tt.wantStatus), body["status"])
		})
	}
}

func TestErrorHandler_Details(t *testing.T) {
	resp, err := appReturning(domain.NewPageLimitExceededError("PDF must have less than 10 pages", 12)).
		Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body := decode(t, resp.Body)
	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(12), details["page_count"])
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	errs := domain.ValidationErrors{
		domain.NewFieldError("pdf", "Please select a PDF file"),
		domain.NewFieldError("option", "option is required"),
	}
	resp, err := appReturning(errs).Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp.Body)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Equal(t, "Please select a PDF file option is required", body["message"])
	assert.Len(t, body["errors"], 2)
}
