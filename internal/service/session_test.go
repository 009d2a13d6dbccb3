package service

import (
	"context"
	"testing"

	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededSessionService(t *testing.T, questions int) SessionService {
	t.Helper()
	repo := repository.NewMemorySessionRepository()
	require.NoError(t, repo.Save(context.Background(), domain.NewQuizSession(testSessionID, "a.pdf", sampleQuestions(questions))))
	return NewSessionService(repo)
}

func TestSessionService_Get(t *testing.T) {
	svc := seededSessionService(t, 5)

	view, err := svc.Get(context.Background(), testSessionID)
	require.NoError(t, err)
	assert.Equal(t, "answering", view.State)
	assert.Equal(t, 1, view.QuestionNumber)
	assert.Equal(t, 5, view.TotalQuestions)
	assert.Equal(t, "Select an option", view.SubmitLabel)

	t.Run("Unknown Session", func(t *testing.T) {
		_, err := svc.Get(context.Background(), "01HGZ8VNRYXS8QKNJV5GRWPWDR")
		requireDomainCode(t, err, domain.CodeSessionNotFound)
	})

	t.Run("Malformed ID", func(t *testing.T) {
		_, err := svc.Get(context.Background(), "../../etc/passwd")
		requireDomainCode(t, err, domain.CodeSessionNotFound)
	})
}

func TestSessionService_AnswerEveryQuestion(t *testing.T) {
	svc := seededSessionService(t, 5)
	ctx := context.Background()
	picks := []string{"A", "B", "A", "A", "C"}

	for i, pick := range picks {
		view, err := svc.Get(ctx, testSessionID)
		require.NoError(t, err)
		assert.Equal(t, i+1, view.QuestionNumber)

		view, err = svc.Select(ctx, testSessionID, pick)
		require.NoError(t, err)
		assert.Equal(t, "Submit Answer", view.SubmitLabel)

		view, err = svc.Submit(ctx, testSessionID)
		require.NoError(t, err)
		if i < len(picks)-1 {
			assert.Equal(t, "answering", view.State)
			assert.Nil(t, view.SelectedOption, "selection is cleared after submitting")
		}
	}

	view, err := svc.Get(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, "completed", view.State)
	assert.Equal(t, 3, view.Score)
	assert.Equal(t, 60, view.Percentage)
	require.Len(t, view.Review, 5)
	assert.Equal(t, "B", view.Review[1].Selected)

	_, err = svc.Select(ctx, testSessionID, "A")
	requireDomainCode(t, err, domain.CodeInvalidState)
	_, err = svc.Submit(ctx, testSessionID)
	requireDomainCode(t, err, domain.CodeInvalidState)
}

func TestSessionService_SubmitRequiresSelection(t *testing.T) {
	svc := seededSessionService(t, 2)

	_, err := svc.Submit(context.Background(), testSessionID)
	requireDomainCode(t, err, domain.CodeInvalidState)

	view, err := svc.Get(context.Background(), testSessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.QuestionNumber)
	assert.Zero(t, view.Score)
}

func TestSessionService_SelectUnknownOption(t *testing.T) {
	svc := seededSessionService(t, 2)

	_, err := svc.Select(context.Background(), testSessionID, "a")
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "option", verrs[0].Field)
}

func TestSessionService_ReselectKeepsLatest(t *testing.T) {
	svc := seededSessionService(t, 1)
	ctx := context.Background()

	_, err := svc.Select(ctx, testSessionID, "B")
	require.NoError(t, err)
	_, err = svc.Select(ctx, testSessionID, "A")
	require.NoError(t, err)

	view, err := svc.Submit(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Score)
	assert.Equal(t, 100, view.Percentage)
}

func TestSessionService_Reset(t *testing.T) {
	svc := seededSessionService(t, 5)
	ctx := context.Background()

	_, err := svc.Select(ctx, testSessionID, "A")
	require.NoError(t, err)

	view, err := svc.Reset(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, "form", view.State)
	assert.Zero(t, view.TotalQuestions)
	assert.Empty(t, view.ID)
	assert.Empty(t, view.FileName)

	_, err = svc.Get(ctx, testSessionID)
	requireDomainCode(t, err, domain.CodeSessionNotFound)

	_, err = svc.Reset(ctx, testSessionID)
	requireDomainCode(t, err, domain.CodeSessionNotFound)
}

func TestSessionService_ResetAfterCompletion(t *testing.T) {
	svc := seededSessionService(t, 1)
	ctx := context.Background()

	_, err := svc.Select(ctx, testSessionID, "A")
	require.NoError(t, err)
	view, err := svc.Submit(ctx, testSessionID)
	require.NoError(t, err)
	require.Equal(t, "completed", view.State)

	view, err = svc.Reset(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, "form", view.State)
	assert.Zero(t, view.Score)
	assert.Zero(t, view.Percentage)
	assert.Empty(t, view.Review)
}
