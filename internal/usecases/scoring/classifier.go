package scoring

import (
	"sort"
	"strings"

	"github.com/vfg2006/autoads-api/internal/domain"
)

// keywordMappings associa palavras-chave a códigos de indústria. Palavras
// compostas valem mais pontos na classificação (são mais específicas).
var keywordMappings = map[string][]string{
	"ecom_fashion":           {"fashion", "clothing", "apparel", "dress", "shirt", "pants", "shoes", "jewelry", "accessories", "watch", "bag", "handbag"},
	"ecom_electronics":       {"electronics", "gadget", "phone", "laptop", "computer", "tablet", "headphone", "speaker", "camera", "tv", "monitor"},
	"ecom_home":              {"home", "garden", "furniture", "decor", "kitchen", "bed", "bath", "lighting", "storage", "outdoor"},
	"ecom_beauty":            {"beauty", "skincare", "makeup", "cosmetic", "haircare", "perfume", "nail", "spa"},
	"ecom_sports":            {"sports", "outdoor", "fitness", "gym", "yoga", "running", "cycling", "camping", "hiking"},
	"ecom_food":              {"food", "beverage", "snack", "coffee", "tea", "wine", "organic", "gourmet"},
	"travel_luggage":         {"luggage", "suitcase", "travel bag", "backpack", "carry-on", "travel gear", "packing"},
	"travel_hotels":          {"hotel", "resort", "accommodation", "booking", "stay", "vacation rental"},
	"travel_flights":         {"flight", "airline", "airfare", "ticket", "airport", "travel booking"},
	"travel_tours":           {"tour", "activity", "excursion", "adventure", "experience", "sightseeing"},
	"tech_saas":              {"software", "saas", "platform", "tool", "app", "solution", "service", "cloud", "subscription"},
	"tech_consumer":          {"consumer electronics", "smart home", "wearable", "iot"},
	"tech_b2b":               {"enterprise", "business", "b2b", "corporate", "professional service"},
	"tech_apps":              {"mobile app", "ios", "android", "download", "install"},
	"finance_banking":        {"bank", "credit", "loan", "mortgage", "savings", "account"},
	"finance_insurance":      {"insurance", "coverage", "policy", "claim", "protection"},
	"finance_investment":     {"investment", "trading", "stock", "fund", "portfolio", "wealth"},
	"finance_crypto":         {"crypto", "bitcoin", "blockchain", "defi", "nft", "token"},
	"edu_online":             {"online course", "e-learning", "tutorial", "certification", "skill"},
	"edu_academic":           {"university", "college", "degree", "academic", "school"},
	"edu_professional":       {"training", "workshop", "professional development", "career"},
	"health_medical":         {"medical", "doctor", "clinic", "hospital", "healthcare", "treatment"},
	"health_pharma":          {"pharmacy", "medicine", "drug", "prescription", "supplement"},
	"health_wellness":        {"wellness", "fitness", "nutrition", "diet", "mental health", "meditation"},
	"auto_sales":             {"car", "vehicle", "auto", "dealership", "new car", "used car"},
	"auto_parts":             {"auto parts", "car parts", "repair", "maintenance", "tire", "oil"},
	"realestate_residential": {"home", "house", "apartment", "condo", "residential", "rent", "buy home"},
	"realestate_commercial":  {"commercial", "office", "retail space", "warehouse", "industrial"},
	"entertainment_gaming":   {"game", "gaming", "esports", "console", "pc game", "mobile game"},
	"entertainment_media":    {"streaming", "video", "music", "podcast", "entertainment", "media"},
}

// ClassifyIndustry escolhe o código de indústria que melhor descreve os
// textos da oferta (marca, categoria, descrição). Sem nenhuma
// correspondência, cai no código padrão com confiança baixa. Retorna nil
// quando não há texto algum para analisar.
func ClassifyIndustry(defaultCode string, texts ...string) *domain.IndustryClassification {
	combined := strings.ToLower(strings.TrimSpace(strings.Join(texts, " ")))
	if combined == "" {
		return nil
	}

	scores := make(map[string]int)
	maxKeywords := 0
	for code, keywords := range keywordMappings {
		if len(keywords) > maxKeywords {
			maxKeywords = len(keywords)
		}
		total := 0
		for _, keyword := range keywords {
			if strings.Contains(combined, keyword) {
				total += len(strings.Fields(keyword))
			}
		}
		if total > 0 {
			scores[code] = total
		}
	}

	if len(scores) == 0 {
		return &domain.IndustryClassification{
			IndustryCode: defaultCode,
			Confidence:   0.3,
		}
	}

	codes := make([]string, 0, len(scores))
	for code := range scores {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		if scores[codes[i]] != scores[codes[j]] {
			return scores[codes[i]] > scores[codes[j]]
		}
		return codes[i] < codes[j]
	})

	best := codes[0]
	confidence := 0.5 + (float64(scores[best])/float64(maxKeywords))*0.5
	if confidence > 0.95 {
		confidence = 0.95
	}

	return &domain.IndustryClassification{
		IndustryCode: best,
		Confidence:   confidence,
	}
}
