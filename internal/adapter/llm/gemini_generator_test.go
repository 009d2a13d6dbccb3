package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
)

func TestResponseText(t *testing.T) {
	t.Run("joins text parts of the first candidate", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("```json\n[]"), genai.Text("\n```")}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("ignored")}}},
		}}
		out, err := responseText(resp)
		assert.NoError(t, err)
		assert.Equal(t, "```json\n[]\n```", out)
	})

	t.Run("no candidates", func(t *testing.T) {
		_, err := responseText(&genai.GenerateContentResponse{})
		assert.EqualError(t, err, "Gemini returned no candidates")
	})

	t.Run("nil response", func(t *testing.T) {
		_, err := responseText(nil)
		assert.Error(t, err)
	})

	t.Run("candidate without content", func(t *testing.T) {
		_, err := responseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}}})
		assert.ErrorContains(t, err, "empty candidate")
	})
}
