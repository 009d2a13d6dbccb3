package service

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"

	"pdf-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks for pipeline tests ---

// MockTextGenerator is a testify mock for domain.TextGenerator
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

// ManualMockDocumentOpener for domain.DocumentOpener
type ManualMockDocumentOpener struct {
	OpenFunc func(data []byte) (domain.Document, error)
}

func (m *ManualMockDocumentOpener) Open(data []byte) (domain.Document, error) {
	if m.OpenFunc != nil {
		return m.OpenFunc(data)
	}
	panic("ManualMockDocumentOpener.OpenFunc not implemented")
}

// fakeDocument serves fixed page fragments and records which pages were read.
type fakeDocument struct {
	numPages int
	pages    map[int][]string
	pageErr  map[int]error
	read     []int
}

func newFakeDocument(pages ...[]string) *fakeDocument {
	d := &fakeDocument{numPages: len(pages), pages: make(map[int][]string)}
	for i, p := range pages {
		d.pages[i+1] = p
	}
	return d
}

func (d *fakeDocument) NumPages() int { return d.numPages }

func (d *fakeDocument) PageText(page int) ([]string, error) {
	d.read = append(d.read, page)
	if err := d.pageErr[page]; err != nil {
		return nil, err
	}
	return d.pages[page], nil
}

func openerFor(doc domain.Document) *ManualMockDocumentOpener {
	return &ManualMockDocumentOpener{OpenFunc: func(data []byte) (domain.Document, error) { return doc, nil }}
}

// ManualMockQuizGenerator for QuizGeneratorService
type ManualMockQuizGenerator struct {
	GenerateFunc func(ctx context.Context, text string) (*domain.GenerationResult, error)
}

func (m *ManualMockQuizGenerator) Generate(ctx context.Context, text string) (*domain.GenerationResult, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, text)
	}
	panic("ManualMockQuizGenerator.GenerateFunc not implemented")
}

// countingSessionRepository wraps an in-memory map and counts writes.
type countingSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*domain.QuizSession
	saves    int
	SaveErr  error
}

func newCountingSessionRepository() *countingSessionRepository {
	return &countingSessionRepository{sessions: make(map[string]*domain.QuizSession)}
}

func (r *countingSessionRepository) Save(ctx context.Context, s *domain.QuizSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.saves++
	r.sessions[s.ID] = s.Clone()
	return nil
}

func (r *countingSessionRepository) Get(ctx context.Context, id string) (*domain.QuizSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.NewSessionNotFoundError(id)
	}
	return s.Clone(), nil
}

func (r *countingSessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *countingSessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// newFileHeader builds a real multipart file header the way a browser form upload would.
func newFileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="pdf"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["pdf"][0]
}

func sampleQuestions(n int) []domain.Question {
	qs := make([]domain.Question, n)
	for i := range qs {
		qs[i] = domain.Question{
			Question: fmt.Sprintf("Question %d?", i+1),
			Options:  []string{"A", "B", "C", "D"},
			Answer:   "A",
		}
	}
	return qs
}

func requireDomainCode(t *testing.T, err error, code domain.ErrorCode) *domain.DomainError {
	t.Helper()
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, code, domainErr.Code)
	return domainErr
}
