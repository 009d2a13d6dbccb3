package handler

import (
	"mime/multipart"

	"pdf-quiz/internal/dto"
	"pdf-quiz/internal/logger"
	"pdf-quiz/internal/middleware"
	"pdf-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	uploads  service.UploadService
	sessions service.SessionService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(uploads service.UploadService, sessions service.SessionService) *QuizHandler {
	return &QuizHandler{
		uploads:  uploads,
		sessions: sessions,
	}
}

// UploadQuiz godoc
// @Summary Generate a quiz from a PDF
// @Description Extracts the text of a PDF with fewer than 10 pages and asks the model for multiple-choice questions
// @Tags quiz
// @Accept multipart/form-data
// @Produce json
// @Param pdf formData file true "PDF document"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) UploadQuiz(c *fiber.Ctx) error {
	var file *multipart.FileHeader
	if fh, err := c.FormFile("pdf"); err == nil {
		file = fh
	} else {
		logger.Get().Debug("No file in upload form", zap.Error(err))
	}

	resp, err := h.uploads.Upload(c.UserContext(), file)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetQuiz godoc
// @Summary Get a quiz session
// @Description Returns the current view of a quiz session
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.QuizView
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	view, err := h.sessions.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// SelectOption godoc
// @Summary Select an option
// @Description Records the option chosen for the current question; it can be changed until submitted
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SelectOptionRequest true "Selected option"
// @Success 200 {object} dto.QuizView
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/selection [put]
func (h *QuizHandler) SelectOption(c *fiber.Ctx) error {
	req, ok := c.Locals(middleware.LocalSelectOption).(*dto.SelectOptionRequest)
	if !ok {
		return fiber.ErrInternalServerError
	}

	view, err := h.sessions.Select(c.UserContext(), c.Params("id"), req.Option)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// SubmitAnswer godoc
// @Summary Submit the selected option
// @Description Scores the selected option and moves to the next question or to the result
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.QuizView
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/submit [post]
func (h *QuizHandler) SubmitAnswer(c *fiber.Ctx) error {
	view, err := h.sessions.Submit(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// ResetQuiz godoc
// @Summary Discard a quiz session
// @Description Clears the questions, score and file so a new PDF can be uploaded
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.QuizView
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [delete]
func (h *QuizHandler) ResetQuiz(c *fiber.Ctx) error {
	view, err := h.sessions.Reset(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(view)
}
