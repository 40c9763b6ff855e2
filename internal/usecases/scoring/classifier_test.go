package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIndustry(t *testing.T) {
	tests := []struct {
		name         string
		texts        []string
		expectedCode string
		validate     func(t *testing.T, confidence float64)
	}{
		{
			name:         "Texto de moda classifica como ecom_fashion",
			texts:        []string{"Summer Dress Collection", "lightweight clothing and shoes for the beach"},
			expectedCode: "ecom_fashion",
			validate: func(t *testing.T, confidence float64) {
				assert.Greater(t, confidence, 0.5)
			},
		},
		{
			name:         "Texto de bagagem classifica como travel_luggage",
			texts:        []string{"Ultra-light carry-on suitcase", "the best travel bag for frequent flyers"},
			expectedCode: "travel_luggage",
			validate: func(t *testing.T, confidence float64) {
				// Palavras compostas ("carry-on", "travel bag") pesam mais
				assert.Greater(t, confidence, 0.5)
			},
		},
		{
			name:         "Texto de cripto classifica como finance_crypto",
			texts:        []string{"Bitcoin and DeFi portfolio tracker"},
			expectedCode: "finance_crypto",
			validate: func(t *testing.T, confidence float64) {
				assert.Greater(t, confidence, 0.5)
			},
		},
		{
			name:         "Sem correspondência cai no código padrão com confiança baixa",
			texts:        []string{"zzzz qqqq xxxx"},
			expectedCode: "ecom_fashion",
			validate: func(t *testing.T, confidence float64) {
				assert.Equal(t, 0.3, confidence)
			},
		},
		{
			name:         "Muitas correspondências saturam a confiança em 0.95",
			texts:        []string{"fashion clothing apparel dress shirt pants shoes jewelry accessories watch bag handbag"},
			expectedCode: "ecom_fashion",
			validate: func(t *testing.T, confidence float64) {
				assert.Equal(t, 0.95, confidence)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClassifyIndustry("ecom_fashion", tt.texts...)

			assert.NotNil(t, result)
			assert.Equal(t, tt.expectedCode, result.IndustryCode)
			tt.validate(t, result.Confidence)
		})
	}
}

func TestClassifyIndustry_EmptyText(t *testing.T) {
	assert.Nil(t, ClassifyIndustry("ecom_fashion"))
	assert.Nil(t, ClassifyIndustry("ecom_fashion", "   ", ""))
}
