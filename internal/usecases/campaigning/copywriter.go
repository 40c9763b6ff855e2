package campaigning

import (
	"context"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/autoads-api/infrastructure/integrator/openai"
	"github.com/vfg2006/autoads-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Copywriter gera sugestões de textos de anúncio para uma oferta.
type Copywriter interface {
	GenerateAdCopy(ctx context.Context, offer *domain.Offer) (*domain.AdCopySuggestion, error)
}

type aiCopywriter struct {
	client openai.Client
}

func NewCopywriter(client openai.Client) Copywriter {
	return &aiCopywriter{client: client}
}

const copySystemPrompt = `You are a senior Google Ads copywriter. ` +
	`You write responsive search ad assets that maximize click-through rate while staying accurate to the product. ` +
	`Always answer with a single JSON object in the shape {"headlines": ["..."], "descriptions": ["..."]}. ` +
	`Headlines must have at most 30 characters each; descriptions at most 90 characters each. ` +
	`Produce 10 headlines mixing short punchy ones and longer informative ones, and 4 descriptions with a clear call to action.`

func (c *aiCopywriter) GenerateAdCopy(ctx context.Context, offer *domain.Offer) (*domain.AdCopySuggestion, error) {
	content, err := c.client.ChatCompletion(ctx, copySystemPrompt, buildOfferPrompt(offer))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao chamar o modelo de geração")
	}

	suggestion, err := parseSuggestion(content)
	if err != nil {
		return nil, err
	}

	return suggestion, nil
}

func buildOfferPrompt(offer *domain.Offer) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Product: %s\n", offer.Name)
	if offer.Brand != nil && *offer.Brand != "" {
		fmt.Fprintf(&b, "Brand: %s\n", *offer.Brand)
	}
	if offer.PageTitle != nil && *offer.PageTitle != "" {
		fmt.Fprintf(&b, "Landing page title: %s\n", *offer.PageTitle)
	}
	if offer.Description != nil && *offer.Description != "" {
		fmt.Fprintf(&b, "Landing page description: %s\n", *offer.Description)
	}
	if offer.IndustryCode != nil && *offer.IndustryCode != "" {
		fmt.Fprintf(&b, "Industry: %s\n", *offer.IndustryCode)
	}
	fmt.Fprintf(&b, "Target country: %s\n", offer.TargetCountry)

	return b.String()
}

// parseSuggestion aceita a resposta do modelo com ou sem cerca de markdown.
func parseSuggestion(content string) (*domain.AdCopySuggestion, error) {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var suggestion domain.AdCopySuggestion
	if err := json.UnmarshalFromString(trimmed, &suggestion); err != nil {
		return nil, errors.Wrap(err, "resposta do modelo não é um JSON válido")
	}

	if len(suggestion.Headlines) == 0 || len(suggestion.Descriptions) == 0 {
		return nil, errors.New("resposta do modelo sem headlines ou descriptions")
	}

	return &suggestion, nil
}
