package scoring

import (
	"sort"

	"github.com/vfg2006/autoads-api/internal/domain"
)

// defaultBenchmarks é a tabela embutida de benchmarks por indústria, usada
// como fallback quando a tabela industry_benchmarks ainda não foi populada.
// CTR e taxa de conversão são frações (0.02 = 2%), CPC em dólares.
var defaultBenchmarks = map[string]domain.IndustryBenchmark{
	"ecom_fashion":            {IndustryL1: "E-commerce", IndustryL2: "Fashion & Apparel", IndustryCode: "ecom_fashion", AvgCTR: 0.0255, AvgCPC: 0.89, AvgConversionRate: 0.0256},
	"ecom_electronics":        {IndustryL1: "E-commerce", IndustryL2: "Electronics", IndustryCode: "ecom_electronics", AvgCTR: 0.0218, AvgCPC: 1.16, AvgConversionRate: 0.0193},
	"ecom_home":               {IndustryL1: "E-commerce", IndustryL2: "Home & Garden", IndustryCode: "ecom_home", AvgCTR: 0.0242, AvgCPC: 1.03, AvgConversionRate: 0.0223},
	"ecom_beauty":             {IndustryL1: "E-commerce", IndustryL2: "Beauty & Personal Care", IndustryCode: "ecom_beauty", AvgCTR: 0.0283, AvgCPC: 0.95, AvgConversionRate: 0.0312},
	"ecom_sports":             {IndustryL1: "E-commerce", IndustryL2: "Sports & Outdoors", IndustryCode: "ecom_sports", AvgCTR: 0.0234, AvgCPC: 0.98, AvgConversionRate: 0.0214},
	"ecom_food":               {IndustryL1: "E-commerce", IndustryL2: "Food & Beverage", IndustryCode: "ecom_food", AvgCTR: 0.0271, AvgCPC: 0.82, AvgConversionRate: 0.0298},
	"travel_luggage":          {IndustryL1: "Travel", IndustryL2: "Luggage & Gear", IndustryCode: "travel_luggage", AvgCTR: 0.0247, AvgCPC: 1.12, AvgConversionRate: 0.0201},
	"travel_hotels":           {IndustryL1: "Travel", IndustryL2: "Hotels & Accommodation", IndustryCode: "travel_hotels", AvgCTR: 0.0318, AvgCPC: 1.53, AvgConversionRate: 0.0257},
	"travel_flights":          {IndustryL1: "Travel", IndustryL2: "Flights", IndustryCode: "travel_flights", AvgCTR: 0.0344, AvgCPC: 1.41, AvgConversionRate: 0.0231},
	"travel_tours":            {IndustryL1: "Travel", IndustryL2: "Tours & Activities", IndustryCode: "travel_tours", AvgCTR: 0.0292, AvgCPC: 1.27, AvgConversionRate: 0.0219},
	"tech_saas":               {IndustryL1: "Technology", IndustryL2: "SaaS", IndustryCode: "tech_saas", AvgCTR: 0.0224, AvgCPC: 3.33, AvgConversionRate: 0.0302},
	"tech_consumer":           {IndustryL1: "Technology", IndustryL2: "Consumer Tech", IndustryCode: "tech_consumer", AvgCTR: 0.0209, AvgCPC: 1.78, AvgConversionRate: 0.0187},
	"tech_b2b":                {IndustryL1: "Technology", IndustryL2: "B2B Services", IndustryCode: "tech_b2b", AvgCTR: 0.0199, AvgCPC: 3.12, AvgConversionRate: 0.0275},
	"tech_apps":               {IndustryL1: "Technology", IndustryL2: "Mobile Apps", IndustryCode: "tech_apps", AvgCTR: 0.0267, AvgCPC: 1.05, AvgConversionRate: 0.0341},
	"finance_banking":         {IndustryL1: "Finance", IndustryL2: "Banking & Credit", IndustryCode: "finance_banking", AvgCTR: 0.0261, AvgCPC: 3.44, AvgConversionRate: 0.0409},
	"finance_insurance":       {IndustryL1: "Finance", IndustryL2: "Insurance", IndustryCode: "finance_insurance", AvgCTR: 0.0234, AvgCPC: 3.79, AvgConversionRate: 0.0389},
	"finance_investment":      {IndustryL1: "Finance", IndustryL2: "Investment", IndustryCode: "finance_investment", AvgCTR: 0.0247, AvgCPC: 3.07, AvgConversionRate: 0.0326},
	"finance_crypto":          {IndustryL1: "Finance", IndustryL2: "Crypto", IndustryCode: "finance_crypto", AvgCTR: 0.0218, AvgCPC: 2.64, AvgConversionRate: 0.0243},
	"edu_online":              {IndustryL1: "Education", IndustryL2: "Online Courses", IndustryCode: "edu_online", AvgCTR: 0.0311, AvgCPC: 2.40, AvgConversionRate: 0.0313},
	"edu_academic":            {IndustryL1: "Education", IndustryL2: "Academic", IndustryCode: "edu_academic", AvgCTR: 0.0278, AvgCPC: 2.87, AvgConversionRate: 0.0284},
	"edu_professional":        {IndustryL1: "Education", IndustryL2: "Professional Training", IndustryCode: "edu_professional", AvgCTR: 0.0289, AvgCPC: 2.56, AvgConversionRate: 0.0297},
	"health_medical":          {IndustryL1: "Healthcare", IndustryL2: "Medical Services", IndustryCode: "health_medical", AvgCTR: 0.0317, AvgCPC: 2.62, AvgConversionRate: 0.0336},
	"health_pharma":           {IndustryL1: "Healthcare", IndustryL2: "Pharmacy & Supplements", IndustryCode: "health_pharma", AvgCTR: 0.0286, AvgCPC: 1.94, AvgConversionRate: 0.0271},
	"health_wellness":         {IndustryL1: "Healthcare", IndustryL2: "Wellness & Fitness", IndustryCode: "health_wellness", AvgCTR: 0.0301, AvgCPC: 1.68, AvgConversionRate: 0.0289},
	"auto_sales":              {IndustryL1: "Automotive", IndustryL2: "Vehicle Sales", IndustryCode: "auto_sales", AvgCTR: 0.0400, AvgCPC: 2.46, AvgConversionRate: 0.0602},
	"auto_parts":              {IndustryL1: "Automotive", IndustryL2: "Parts & Service", IndustryCode: "auto_parts", AvgCTR: 0.0352, AvgCPC: 1.87, AvgConversionRate: 0.0412},
	"realestate_residential":  {IndustryL1: "Real Estate", IndustryL2: "Residential", IndustryCode: "realestate_residential", AvgCTR: 0.0371, AvgCPC: 2.37, AvgConversionRate: 0.0249},
	"realestate_commercial":   {IndustryL1: "Real Estate", IndustryL2: "Commercial", IndustryCode: "realestate_commercial", AvgCTR: 0.0328, AvgCPC: 2.73, AvgConversionRate: 0.0218},
	"entertainment_gaming":    {IndustryL1: "Entertainment", IndustryL2: "Gaming", IndustryCode: "entertainment_gaming", AvgCTR: 0.0264, AvgCPC: 0.97, AvgConversionRate: 0.0223},
	"entertainment_media":     {IndustryL1: "Entertainment", IndustryL2: "Streaming & Media", IndustryCode: "entertainment_media", AvgCTR: 0.0287, AvgCPC: 1.12, AvgConversionRate: 0.0256},
}

// DefaultBenchmarkList retorna a tabela embutida em ordem estável, usada
// pelo script de migração para semear industry_benchmarks.
func DefaultBenchmarkList() []domain.IndustryBenchmark {
	codes := make([]string, 0, len(defaultBenchmarks))
	for code := range defaultBenchmarks {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	list := make([]domain.IndustryBenchmark, 0, len(codes))
	for _, code := range codes {
		list = append(list, defaultBenchmarks[code])
	}
	return list
}
