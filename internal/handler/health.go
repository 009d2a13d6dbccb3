package handler

import (
	"context"
	"time"

	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/dto"
	"pdf-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler reports whether the session store can be reached.
type HealthHandler struct {
	cache        domain.Cache // nil when sessions live in memory
	sessionStore string
	llmProvider  string
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(cache domain.Cache, sessionStore, llmProvider string) *HealthHandler {
	return &HealthHandler{cache: cache, sessionStore: sessionStore, llmProvider: llmProvider}
}

// Health godoc
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:       "ok",
		SessionStore: h.sessionStore,
		LLMProvider:  h.llmProvider,
	}

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthPingTimeout)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			logger.Get().Warn("Session store ping failed", zap.Error(err))
			resp.Status = "degraded"
			return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
		}
	}
	return c.JSON(resp)
}
