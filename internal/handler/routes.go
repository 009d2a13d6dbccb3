package handler

import (
	"pdf-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the quiz and health endpoints on the /api group.
func RegisterRoutes(api fiber.Router, quiz *QuizHandler, health *HealthHandler, vm *middleware.ValidationMiddleware) {
	api.Get("/health", health.Health)

	quizzes := api.Group("/quizzes")
	quizzes.Post("/", quiz.UploadQuiz)
	quizzes.Get("/:id", vm.ValidateSessionID(), quiz.GetQuiz)
	quizzes.Put("/:id/selection", vm.ValidateSessionID(), vm.ValidateSelectOption(), quiz.SelectOption)
	quizzes.Post("/:id/submit", vm.ValidateSessionID(), quiz.SubmitAnswer)
	quizzes.Delete("/:id", vm.ValidateSessionID(), quiz.ResetQuiz)
}
