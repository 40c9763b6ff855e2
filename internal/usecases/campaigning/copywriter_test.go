package campaigning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/autoads-api/internal/domain"
)

type fakeOpenAIClient struct {
	response   string
	err        error
	userPrompt string
}

func (f *fakeOpenAIClient) ChatCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.userPrompt = userPrompt
	return f.response, f.err
}

func TestAICopywriter_GenerateAdCopy(t *testing.T) {
	offer := &domain.Offer{
		ID:            10,
		Name:          "Travel Pillow",
		Brand:         stringPtr("ComfyGo"),
		PageTitle:     stringPtr("ComfyGo Travel Pillow - Official Store"),
		TargetCountry: "US",
	}

	t.Run("Resposta JSON pura é interpretada", func(t *testing.T) {
		client := &fakeOpenAIClient{
			response: `{"headlines": ["Sleep Anywhere", "Travel in Comfort"], "descriptions": ["Memory foam support."]}`,
		}
		copywriter := NewCopywriter(client)

		suggestion, err := copywriter.GenerateAdCopy(context.Background(), offer)

		assert.NoError(t, err)
		assert.Equal(t, []string{"Sleep Anywhere", "Travel in Comfort"}, suggestion.Headlines)
		assert.Equal(t, []string{"Memory foam support."}, suggestion.Descriptions)

		// O prompt leva os dados da oferta
		assert.Contains(t, client.userPrompt, "Travel Pillow")
		assert.Contains(t, client.userPrompt, "ComfyGo")
		assert.Contains(t, client.userPrompt, "US")
	})

	t.Run("Cerca de markdown na resposta é removida", func(t *testing.T) {
		client := &fakeOpenAIClient{
			response: "```json\n{\"headlines\": [\"Sleep Anywhere\"], \"descriptions\": [\"Memory foam support.\"]}\n```",
		}
		copywriter := NewCopywriter(client)

		suggestion, err := copywriter.GenerateAdCopy(context.Background(), offer)

		assert.NoError(t, err)
		assert.Equal(t, []string{"Sleep Anywhere"}, suggestion.Headlines)
	})

	t.Run("Resposta que não é JSON é erro", func(t *testing.T) {
		client := &fakeOpenAIClient{response: "Sorry, I can't help with that."}
		copywriter := NewCopywriter(client)

		suggestion, err := copywriter.GenerateAdCopy(context.Background(), offer)

		assert.Error(t, err)
		assert.Nil(t, suggestion)
	})

	t.Run("Resposta sem headlines é erro", func(t *testing.T) {
		client := &fakeOpenAIClient{response: `{"headlines": [], "descriptions": ["Memory foam support."]}`}
		copywriter := NewCopywriter(client)

		suggestion, err := copywriter.GenerateAdCopy(context.Background(), offer)

		assert.Error(t, err)
		assert.Nil(t, suggestion)
	})

	t.Run("Erro do cliente é propagado", func(t *testing.T) {
		client := &fakeOpenAIClient{err: assert.AnError}
		copywriter := NewCopywriter(client)

		suggestion, err := copywriter.GenerateAdCopy(context.Background(), offer)

		assert.Error(t, err)
		assert.Nil(t, suggestion)
	})
}

func stringPtr(s string) *string {
	return &s
}
