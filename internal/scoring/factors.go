package scoring

// Category names, also the keys of Result.CategoryScores.
const (
	CategoryFinancialStrength = "financial_strength"
	CategoryPaymentBehaviour  = "payment_behaviour"
	CategoryExternalChecks    = "external_checks"
	CategoryBusinessStability = "business_stability"
)

// FactorResult captures one rule's contribution to its category score.
// Reason is set only when the rule took an adverse branch.
type FactorResult struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason,omitempty"`
}

// CategoryResult is the output of one category scorer. Score is clamped to
// [0, Ceiling]; Reasons are in rule order.
type CategoryResult struct {
	Name    string         `json:"name"`
	Score   float64        `json:"score"`
	Ceiling float64        `json:"ceiling"`
	Factors []FactorResult `json:"factors"`
	Reasons []string       `json:"reasons"`
}

// categoryBuilder accumulates factors for a single category.
type categoryBuilder struct {
	name    string
	ceiling float64
	factors []FactorResult
}

func newCategory(name string, ceiling float64) *categoryBuilder {
	return &categoryBuilder{name: name, ceiling: ceiling}
}

func (b *categoryBuilder) add(name string, score float64, reason string) {
	b.factors = append(b.factors, FactorResult{Name: name, Score: score, Reason: reason})
}

func (b *categoryBuilder) result() CategoryResult {
	var raw float64
	reasons := []string{}
	for _, f := range b.factors {
		raw += f.Score
		if f.Reason != "" {
			reasons = append(reasons, f.Reason)
		}
	}
	return CategoryResult{
		Name:    b.name,
		Score:   clamp(raw, 0, b.ceiling),
		Ceiling: b.ceiling,
		Factors: b.factors,
		Reasons: reasons,
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
