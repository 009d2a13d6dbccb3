package dto

import (
	"pdf-quiz/internal/domain"
)

const (
	SubmitLabelSelect = "Select an option"
	SubmitLabelSubmit = "Submit Answer"
	CompletedTitle    = "Quiz Completed!"
)

// QuestionView is the question shown while answering; the answer is never included.
// @Description Current question
type QuestionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// AnsweredQuestionView is a question reviewed after the quiz is finished.
type AnsweredQuestionView struct {
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	Answer    string   `json:"answer"`
	Selected  string   `json:"selected"`
	IsCorrect bool     `json:"is_correct"`
}

// QuizView represents everything a client needs to render a quiz session
// @Description Quiz session view
type QuizView struct {
	ID             string                 `json:"id,omitempty"`
	State          string                 `json:"state"`
	FileName       string                 `json:"file_name,omitempty"`
	QuestionNumber int                    `json:"question_number,omitempty"`
	TotalQuestions int                    `json:"total_questions"`
	Question       *QuestionView          `json:"question,omitempty"`
	SelectedOption *string                `json:"selected_option,omitempty"`
	SubmitEnabled  bool                   `json:"submit_enabled"`
	SubmitLabel    string                 `json:"submit_label,omitempty"`
	Score          int                    `json:"score"`
	Percentage     int                    `json:"percentage"`
	Title          string                 `json:"title,omitempty"`
	Review         []AnsweredQuestionView `json:"review,omitempty"`
}

// UploadResponse is returned after a quiz was generated from a PDF
// @Description Upload result
type UploadResponse struct {
	Message string    `json:"message"`
	Quiz    *QuizView `json:"quiz"`
}

// SelectOptionRequest represents the option picked for the current question
// @Description Request body for selecting an option
type SelectOptionRequest struct {
	Option string `json:"option" validate:"required,max=1000"`
}

// HealthResponse reports readiness of the service dependencies
type HealthResponse struct {
	Status       string `json:"status"`
	SessionStore string `json:"session_store"`
	LLMProvider  string `json:"llm_provider"`
}

// NewFormView is the view of a session-less client: no questions, upload form shown.
func NewFormView() *QuizView {
	return &QuizView{State: string(domain.StateForm)}
}

// NewQuizView renders a session according to its state.
func NewQuizView(s *domain.QuizSession) *QuizView {
	if s == nil || s.State() == domain.StateForm {
		return NewFormView()
	}

	view := &QuizView{
		ID:             s.ID,
		State:          string(s.State()),
		FileName:       s.FileName,
		TotalQuestions: len(s.Questions),
		Score:          s.Score,
		Percentage:     s.Percentage(),
	}

	switch s.State() {
	case domain.StateAnswering:
		q := s.CurrentQuestion()
		if q == nil {
			return NewFormView()
		}
		view.QuestionNumber = s.CurrentIndex + 1
		view.Question = &QuestionView{
			Question: q.Question,
			Options:  append([]string(nil), q.Options...),
		}
		if s.SelectedOption != nil {
			selected := *s.SelectedOption
			view.SelectedOption = &selected
		}
		view.SubmitEnabled = s.CanSubmit()
		view.SubmitLabel = SubmitLabelSelect
		if view.SubmitEnabled {
			view.SubmitLabel = SubmitLabelSubmit
		}
	case domain.StateCompleted:
		view.Title = CompletedTitle
		view.Review = make([]AnsweredQuestionView, 0, len(s.Questions))
		for _, q := range s.Questions {
			view.Review = append(view.Review, AnsweredQuestionView{
				Question:  q.Question,
				Options:   append([]string(nil), q.Options...),
				Answer:    q.Answer,
				Selected:  q.Selected,
				IsCorrect: q.IsCorrect != nil && *q.IsCorrect,
			})
		}
	}
	return view
}
