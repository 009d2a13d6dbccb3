package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/logger"

	"go.uber.org/zap"
)

const (
	// QuestionsPerQuiz is the number of questions requested from the model.
	QuestionsPerQuiz = 5

	// SystemPrompt is sent as the system instruction of every generation request.
	SystemPrompt = "You are a quiz generator."

	msgGenerationSuccess = "Generate questions successfully"
)

const quizPromptTemplate = `
Generate %d questions based on the following text:
%s

Each question should contain a question text and %d options with 1 correct answer and return the result as a JSON array with each question formatted like this:
[
  {
    "question": "...",
    "options": ["...", "...", "...", "..."],
    "answer": "..."
  }
]
Only output JSON.
`

var openingFence = regexp.MustCompile("(?i)^```(?:json)?\\s*")

// BuildQuizPrompt embeds the extracted text verbatim into the generation instruction.
func BuildQuizPrompt(text string) string {
	return fmt.Sprintf(quizPromptTemplate, QuestionsPerQuiz, text, domain.OptionsPerQuestion)
}

// StripCodeFence removes a leading ``` or ```json marker and a trailing ``` from a model response.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	s = openingFence.ReplaceAllString(s, "")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// QuizGeneratorService turns extracted document text into quiz questions.
type QuizGeneratorService interface {
	Generate(ctx context.Context, text string) (*domain.GenerationResult, error)
}

type quizGeneratorService struct {
	llm domain.TextGenerator
}

// NewQuizGeneratorService creates a new instance of quizGeneratorService
func NewQuizGeneratorService(llm domain.TextGenerator) QuizGeneratorService {
	return &quizGeneratorService{llm: llm}
}

// Generate implements QuizGeneratorService
func (s *quizGeneratorService) Generate(ctx context.Context, text string) (*domain.GenerationResult, error) {
	l := logger.Get()

	if strings.TrimSpace(text) == "" {
		return nil, domain.NewValidationError("The PDF does not contain any extractable text")
	}

	prompt := BuildQuizPrompt(text)
	l.Info("Requesting quiz generation", zap.Int("prompt_chars", len(prompt)))

	raw, err := s.llm.Generate(ctx, SystemPrompt, prompt)
	if err != nil {
		l.Error("LLM call failed during quiz generation", zap.Error(err))
		return nil, domain.NewUpstreamServiceError(err)
	}
	if strings.TrimSpace(raw) == "" {
		raw = "[]"
	}
	l.Debug("Raw LLM response received", zap.String("raw_response", raw))

	questions, err := ParseQuestions(raw)
	if err != nil {
		l.Error("LLM response did not match the quiz contract", zap.Error(err), zap.String("raw_response", raw))
		return nil, err
	}

	l.Info("Successfully generated quiz", zap.Int("num_questions", len(questions)))
	return &domain.GenerationResult{
		Success:   true,
		Message:   msgGenerationSuccess,
		Questions: questions,
	}, nil
}

// ParseQuestions decodes a (possibly fenced) JSON array of questions and checks each question's shape.
func ParseQuestions(raw string) ([]domain.Question, error) {
	cleaned := StripCodeFence(raw)

	var questions []domain.Question
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, domain.NewMalformedResponseError("The model response was not a valid JSON question list", err)
	}
	if len(questions) == 0 {
		return nil, domain.NewMalformedResponseError("The model response did not contain any questions", nil)
	}

	for i := range questions {
		// answer state is never accepted from the model
		questions[i].Selected = ""
		questions[i].IsCorrect = nil
		if err := questions[i].Validate(); err != nil {
			return nil, domain.NewMalformedResponseError(
				fmt.Sprintf("Question %d from the model is malformed: %s", i+1, domain.FormatError(err)), err,
			).WithContext("question_index", i)
		}
	}
	return questions, nil
}
