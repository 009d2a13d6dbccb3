package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pdf-quiz/internal/dto"
	"pdf-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidationApp() *fiber.App {
	vm := NewValidationMiddleware(validation.NewValidator())
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Put("/quizzes/:id/selection", vm.ValidateSessionID(), vm.ValidateSelectOption(), func(c *fiber.Ctx) error {
		req := c.Locals(LocalSelectOption).(*dto.SelectOptionRequest)
		return c.SendString(req.Option)
	})
	return app
}

func TestValidationMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"valid", "01HGZ8VNRYXS8QKNJV5GRWPWDQ", `{"option":"Paris"}`, http.StatusOK, "Paris"},
		{"bad id", "nope", `{"option":"Paris"}`, http.StatusNotFound, "SESSION_NOT_FOUND"},
		{"missing option", "01HGZ8VNRYXS8QKNJV5GRWPWDQ", `{}`, http.StatusBadRequest, "option is required"},
		{"not json", "01HGZ8VNRYXS8QKNJV5GRWPWDQ", `{"option":`, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	app := newValidationApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/quizzes/"+tt.id+"/selection", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), tt.wantBody)
		})
	}
}
