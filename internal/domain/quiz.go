package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/samber/lo"
)

// OptionsPerQuestion is the number of choices every generated question carries.
const OptionsPerQuestion = 4

// Question is a single multiple-choice question produced by the generator.
type Question struct {
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	Answer    string   `json:"answer"`
	Selected  string   `json:"selected,omitempty"`
	IsCorrect *bool    `json:"isCorrect,omitempty"`
}

// Validate checks the question shape before it is handed to a quiz session.
func (q *Question) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(q.Question) == "" {
		errs = append(errs, NewFieldError("question", "question text is required"))
	}
	if len(q.Options) != OptionsPerQuestion {
		errs = append(errs, NewFieldError("options", fmt.Sprintf("exactly %d options are required, got %d", OptionsPerQuestion, len(q.Options))))
	}
	if strings.TrimSpace(q.Answer) == "" {
		errs = append(errs, NewFieldError("answer", "answer is required"))
	} else if !lo.Contains(q.Options, q.Answer) {
		errs = append(errs, NewFieldError("answer", "answer must be one of the options"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SessionState is the coarse state of a quiz session as seen by the UI.
type SessionState string

const (
	StateForm      SessionState = "form"
	StateAnswering SessionState = "answering"
	StateCompleted SessionState = "completed"
)

// QuizSession holds the answering state for one generated quiz.
// Each question is visited exactly once; there is no way back.
type QuizSession struct {
	ID             string     `json:"id"`
	FileName       string     `json:"file_name,omitempty"`
	Questions      []Question `json:"questions"`
	CurrentIndex   int        `json:"current_index"`
	SelectedOption *string    `json:"selected_option,omitempty"`
	Score          int        `json:"score"`
	Finished       bool       `json:"finished"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NewQuizSession creates a session positioned on the first question.
func NewQuizSession(id, fileName string, questions []Question) *QuizSession {
	return &QuizSession{
		ID:        id,
		FileName:  fileName,
		Questions: questions,
		CreatedAt: time.Now(),
	}
}

// Clone returns a deep copy that shares no mutable state with s.
func (s *QuizSession) Clone() *QuizSession {
	c := *s
	c.Questions = make([]Question, len(s.Questions))
	for i, q := range s.Questions {
		q.Options = append([]string(nil), q.Options...)
		if q.IsCorrect != nil {
			v := *q.IsCorrect
			q.IsCorrect = &v
		}
		c.Questions[i] = q
	}
	if s.SelectedOption != nil {
		v := *s.SelectedOption
		c.SelectedOption = &v
	}
	return &c
}

// State reports which view the session should be rendered as.
func (s *QuizSession) State() SessionState {
	switch {
	case len(s.Questions) == 0:
		return StateForm
	case s.Finished:
		return StateCompleted
	default:
		return StateAnswering
	}
}

// CurrentQuestion returns the question being answered, or nil outside the answering state.
func (s *QuizSession) CurrentQuestion() *Question {
	if s.State() != StateAnswering || s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentIndex]
}

// IsLastQuestion reports whether the current question is the final one.
func (s *QuizSession) IsLastQuestion() bool {
	return s.CurrentIndex == len(s.Questions)-1
}

// CanSubmit reports whether the submit control is enabled.
func (s *QuizSession) CanSubmit() bool {
	return s.State() == StateAnswering && s.SelectedOption != nil
}

// Select records the user's choice for the current question.
func (s *QuizSession) Select(option string) error {
	q := s.CurrentQuestion()
	if q == nil {
		return NewInvalidStateError("no question is awaiting an answer")
	}
	if !lo.Contains(q.Options, option) {
		return ValidationErrors{NewFieldError("option", "option is not one of the current question's options")}
	}
	s.SelectedOption = &option
	return nil
}

// Submit scores the selected option against the current question and advances.
// It returns whether the selection was correct.
func (s *QuizSession) Submit() (bool, error) {
	q := s.CurrentQuestion()
	if q == nil {
		return false, NewInvalidStateError("no question is awaiting an answer")
	}
	if s.SelectedOption == nil {
		return false, NewInvalidStateError("select an option before submitting")
	}

	selected := *s.SelectedOption
	correct := selected == q.Answer
	q.Selected = selected
	q.IsCorrect = &correct
	if correct {
		s.Score++
	}
	s.SelectedOption = nil

	if s.IsLastQuestion() {
		s.Finished = true
	} else {
		s.CurrentIndex++
	}
	return correct, nil
}

// Reset discards every piece of quiz state, including the originating file.
func (s *QuizSession) Reset() {
	s.Questions = []Question{}
	s.FileName = ""
	s.CurrentIndex = 0
	s.SelectedOption = nil
	s.Score = 0
	s.Finished = false
}

// Percentage is the rounded share of correct answers.
func (s *QuizSession) Percentage() int {
	return ScorePercentage(s.Score, len(s.Questions))
}

// ScorePercentage returns round(score / total * 100), or 0 for an empty quiz.
func ScorePercentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}
