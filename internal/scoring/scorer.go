package scoring

import (
	"io"
	"log/slog"

	"github.com/shopspring/decimal"
)

// Result is the complete assessment of one applicant record.
type Result struct {
	TotalScore     float64            `json:"total_score"`
	RiskBand       RiskBand           `json:"risk_band"`
	Decision       Decision           `json:"decision"`
	CategoryScores map[string]float64 `json:"category_scores"`
	Reasons        []string           `json:"reasons"`
	Breakdown      []CategoryResult   `json:"breakdown"`
}

// categoryScorer is one entry in the fixed evaluation order.
type categoryScorer func(in *Input) CategoryResult

// categoryOrder fixes both the evaluation order and the order reasons are
// reported in.
var categoryOrder = []categoryScorer{
	FinancialStrength,
	PaymentBehaviour,
	ExternalChecks,
	BusinessStability,
}

// Engine evaluates applicant records against the fixed rule table. It holds
// no mutable state and is safe for concurrent use.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates an Engine. A nil logger discards debug output.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{logger: logger}
}

// EvaluateRecord coerces a raw field mapping and evaluates it. On an input
// error no result is produced.
func (e *Engine) EvaluateRecord(raw map[string]any) (Result, error) {
	in, err := ParseInput(raw)
	if err != nil {
		return Result{}, err
	}
	return e.Evaluate(&in), nil
}

// Evaluate computes category scores, the clamped total, the risk band and
// the decision for in.
func (e *Engine) Evaluate(in *Input) Result {
	result := Result{
		CategoryScores: make(map[string]float64, len(categoryOrder)),
		Reasons:        []string{},
		Breakdown:      make([]CategoryResult, 0, len(categoryOrder)),
	}

	var total float64
	for _, score := range categoryOrder {
		cat := score(in)
		total += cat.Score

		result.CategoryScores[cat.Name] = round1(cat.Score)
		result.Reasons = append(result.Reasons, cat.Reasons...)
		result.Breakdown = append(result.Breakdown, cat)
	}

	// Band and decision are derived from the published (rounded) total.
	result.TotalScore = round1(clamp(total, 0, MaxTotalScore))
	result.RiskBand = ClassifyScore(result.TotalScore)
	result.Decision = DecisionFor(result.RiskBand)

	e.logger.Debug("applicant evaluated",
		"total_score", result.TotalScore,
		"risk_band", result.RiskBand,
		"decision", result.Decision,
		"reasons", len(result.Reasons),
	)
	return result
}

// round1 rounds half away from zero to one decimal place.
func round1(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}
