package scoring

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strongApplicant() map[string]any {
	return map[string]any{
		"net_profit_margin":         15.0,
		"current_ratio":             2.0,
		"debt_to_equity":            0.5,
		"banking_limit_utilisation": 60.0,
		"turnover_trend":            "improving",
		"avg_days_to_pay":           20,
		"bounced_cheques_last_12m":  0,
		"past_default_flag":         false,
		"gst_filing_timely":         true,
		"active_litigation":         false,
		"credit_rating":             "AAA",
		"years_in_business":         15.0,
		"industry_risk":             "low",
		"top_5_customer_share":      20.0,
		"management_risk_flag":      false,
	}
}

func weakApplicant() map[string]any {
	return map[string]any{
		"net_profit_margin":         -2.0,
		"current_ratio":             0.8,
		"debt_to_equity":            4.0,
		"banking_limit_utilisation": 95.0,
		"turnover_trend":            "declining",
		"avg_days_to_pay":           120,
		"bounced_cheques_last_12m":  7,
		"past_default_flag":         true,
		"gst_filing_timely":         false,
		"active_litigation":         true,
		"credit_rating":             "C",
		"years_in_business":         1.0,
		"industry_risk":             "high",
		"top_5_customer_share":      90.0,
		"management_risk_flag":      true,
	}
}

func TestCeilingsSumToMax(t *testing.T) {
	c := Ceilings()
	require.NoError(t, c.Validate())
	assert.InDelta(t, MaxTotalScore, c.Sum(), 0.001)
}

func TestCeilingsValidateRejectsBadSum(t *testing.T) {
	c := CeilingSet{FinancialStrength: 50, PaymentBehaviour: 30, ExternalChecks: 15, BusinessStability: 15}
	assert.Error(t, c.Validate())

	c = CeilingSet{FinancialStrength: 60, PaymentBehaviour: 30, ExternalChecks: 15, BusinessStability: -5}
	assert.Error(t, c.Validate())
}

func TestEvaluateEmptyRecord(t *testing.T) {
	e := NewEngine(discardLogger())
	r, err := e.EvaluateRecord(map[string]any{})
	require.NoError(t, err)

	assert.Equal(t, 19.0, r.CategoryScores[CategoryFinancialStrength])
	assert.Equal(t, 18.0, r.CategoryScores[CategoryPaymentBehaviour])
	assert.Equal(t, 7.0, r.CategoryScores[CategoryExternalChecks])
	assert.Equal(t, 7.0, r.CategoryScores[CategoryBusinessStability])
	assert.Equal(t, 51.0, r.TotalScore)
	assert.Equal(t, RiskMedium, r.RiskBand)
	assert.Equal(t, DecisionConditionalApproval, r.Decision)
	assert.Equal(t, []string{
		"Net profit margin is very low or negative.",
		"Current ratio below 1.0 indicates tight liquidity.",
		"Bank limit utilisation is low; could indicate underutilisation of facilities.",
		"Limited operating history.",
	}, r.Reasons)
}

func TestEvaluateStrongApplicant(t *testing.T) {
	e := NewEngine(discardLogger())
	r, err := e.EvaluateRecord(strongApplicant())
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{
		CategoryFinancialStrength: 40,
		CategoryPaymentBehaviour:  20,
		CategoryExternalChecks:    15,
		CategoryBusinessStability: 15,
	}, r.CategoryScores)
	assert.Equal(t, 90.0, r.TotalScore)
	assert.Equal(t, RiskLow, r.RiskBand)
	assert.Equal(t, DecisionApprove, r.Decision)
	assert.NotNil(t, r.Reasons)
	assert.Empty(t, r.Reasons)
}

func TestEvaluateWeakApplicant(t *testing.T) {
	e := NewEngine(discardLogger())
	r, err := e.EvaluateRecord(weakApplicant())
	require.NoError(t, err)

	assert.Equal(t, 4.0, r.CategoryScores[CategoryFinancialStrength])
	assert.Equal(t, 0.0, r.CategoryScores[CategoryPaymentBehaviour])
	assert.Equal(t, 2.0, r.CategoryScores[CategoryExternalChecks])
	assert.Equal(t, 0.0, r.CategoryScores[CategoryBusinessStability])
	assert.Equal(t, 6.0, r.TotalScore)
	assert.Equal(t, RiskHigh, r.RiskBand)
	assert.Equal(t, DecisionReject, r.Decision)
	assert.Equal(t, []string{
		"Net profit margin is very low or negative.",
		"Current ratio below 1.0 indicates tight liquidity.",
		"Debt-to-equity is very high.",
		"Bank limit utilisation consistently >90% indicates stress on working capital.",
		"Turnover trend is declining.",
		"Very high average payment days.",
		"Frequent cheque bounces in last 12 months.",
		"History of default / write-off reported.",
		"GST filing not timely.",
		"Active litigation / legal disputes reported.",
		"Weak external rating (C).",
		"Limited operating history.",
		"High-risk industry.",
		"Very high dependence on few customers.",
		"Concerns flagged on management integrity / governance.",
	}, r.Reasons)
}

func TestEvaluateUnrecognisedEnums(t *testing.T) {
	e := NewEngine(discardLogger())
	rec := strongApplicant()
	rec["industry_risk"] = "not sure"
	rec["credit_rating"] = "XYZ"

	r, err := e.EvaluateRecord(rec)
	require.NoError(t, err)

	// industry 5 -> 2, rating 5 -> 1
	assert.Equal(t, 12.0, r.CategoryScores[CategoryBusinessStability])
	assert.Equal(t, 11.0, r.CategoryScores[CategoryExternalChecks])
	assert.Empty(t, r.Reasons)
	assert.Equal(t, 83.0, r.TotalScore)
}

func TestEvaluateHugeCountsScoreWorst(t *testing.T) {
	e := NewEngine(discardLogger())
	r, err := e.EvaluateRecord(map[string]any{
		"avg_days_to_pay":          1e19,
		"bounced_cheques_last_12m": "1e19",
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, r.CategoryScores[CategoryPaymentBehaviour])
	assert.Equal(t, 33.0, r.TotalScore)
	assert.Equal(t, RiskHigh, r.RiskBand)
	assert.Equal(t, []string{
		"Net profit margin is very low or negative.",
		"Current ratio below 1.0 indicates tight liquidity.",
		"Bank limit utilisation is low; could indicate underutilisation of facilities.",
		"Very high average payment days.",
		"Frequent cheque bounces in last 12 months.",
		"Limited operating history.",
	}, r.Reasons)
}

func TestEvaluateBlankIndustryRisk(t *testing.T) {
	e := NewEngine(discardLogger())
	rec := strongApplicant()
	rec["industry_risk"] = " "

	r, err := e.EvaluateRecord(rec)
	require.NoError(t, err)

	// industry 5 -> 3
	assert.Equal(t, 13.0, r.CategoryScores[CategoryBusinessStability])
	assert.NotContains(t, r.Reasons, "High-risk industry.")
	assert.Equal(t, 88.0, r.TotalScore)
}

func TestEvaluateBoundaryTies(t *testing.T) {
	e := NewEngine(discardLogger())

	rec := strongApplicant()
	rec["current_ratio"] = 1.5
	rec["banking_limit_utilisation"] = 40
	rec["avg_days_to_pay"] = 90
	r, err := e.EvaluateRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, 40.0, r.CategoryScores[CategoryFinancialStrength])
	assert.Equal(t, 12.0, r.CategoryScores[CategoryPaymentBehaviour])
	assert.Equal(t, []string{"Average payment days are on the higher side."}, r.Reasons)

	rec["banking_limit_utilisation"] = 80
	r, err = e.EvaluateRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, 40.0, r.CategoryScores[CategoryFinancialStrength])
}

func TestEvaluateBandThresholds(t *testing.T) {
	tests := []struct {
		total    float64
		band     RiskBand
		decision Decision
	}{
		{100, RiskLow, DecisionApprove},
		{75, RiskLow, DecisionApprove},
		{74.9, RiskMedium, DecisionConditionalApproval},
		{50, RiskMedium, DecisionConditionalApproval},
		{49.9, RiskHigh, DecisionReject},
		{0, RiskHigh, DecisionReject},
	}
	for _, tt := range tests {
		band := ClassifyScore(tt.total)
		assert.Equal(t, tt.band, band, "total %.1f", tt.total)
		assert.Equal(t, tt.decision, DecisionFor(band), "total %.1f", tt.total)
		assert.True(t, band.Valid())
		assert.True(t, DecisionFor(band).Valid())
	}
}

func TestEvaluateInputError(t *testing.T) {
	e := NewEngine(discardLogger())
	rec := strongApplicant()
	rec["current_ratio"] = "lots"

	r, err := e.EvaluateRecord(rec)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, FieldCurrentRatio, inputErr.Field)
	assert.Zero(t, r.TotalScore)
	assert.Nil(t, r.CategoryScores)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	e := NewEngine(discardLogger())
	for _, rec := range []map[string]any{{}, strongApplicant(), weakApplicant()} {
		first, err := e.EvaluateRecord(rec)
		require.NoError(t, err)
		second, err := e.EvaluateRecord(rec)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestEvaluateConcurrentCallers(t *testing.T) {
	e := NewEngine(discardLogger())
	want, err := e.EvaluateRecord(weakApplicant())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Result, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = e.EvaluateRecord(weakApplicant())
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestEvaluateInvariants(t *testing.T) {
	e := NewEngine(nil)
	ceilings := Ceilings()

	records := []map[string]any{{}, strongApplicant(), weakApplicant()}
	for _, npm := range []float64{-5, 0, 1, 3, 6, 11} {
		for _, util := range []float64{10, 40, 85, 95} {
			for _, bounces := range []int{0, 2, 4, 9} {
				rec := weakApplicant()
				rec["net_profit_margin"] = npm
				rec["banking_limit_utilisation"] = util
				rec["bounced_cheques_last_12m"] = bounces
				rec["past_default_flag"] = bounces%2 == 0
				records = append(records, rec)
			}
		}
	}

	for _, rec := range records {
		r, err := e.EvaluateRecord(rec)
		require.NoError(t, err)

		var sum float64
		for name, score := range r.CategoryScores {
			assert.GreaterOrEqual(t, score, 0.0, name)
			assert.LessOrEqual(t, score, ceilings.For(name), name)
			sum += score
		}
		assert.Len(t, r.CategoryScores, 4)
		assert.GreaterOrEqual(t, r.TotalScore, 0.0)
		assert.LessOrEqual(t, r.TotalScore, MaxTotalScore)
		assert.Equal(t, round1(clamp(sum, 0, MaxTotalScore)), r.TotalScore)
		assert.Equal(t, ClassifyScore(r.TotalScore), r.RiskBand)
		assert.Equal(t, DecisionFor(r.RiskBand), r.Decision)

		seen := make(map[string]bool)
		for _, reason := range r.Reasons {
			assert.False(t, seen[reason], "duplicate reason %q", reason)
			seen[reason] = true
		}
	}
}

func TestEvaluateBreakdownMatchesCategoryOrder(t *testing.T) {
	r := NewEngine(nil).Evaluate(&Input{})
	require.Len(t, r.Breakdown, 4)
	assert.Equal(t, CategoryFinancialStrength, r.Breakdown[0].Name)
	assert.Equal(t, CategoryPaymentBehaviour, r.Breakdown[1].Name)
	assert.Equal(t, CategoryExternalChecks, r.Breakdown[2].Name)
	assert.Equal(t, CategoryBusinessStability, r.Breakdown[3].Name)
	for _, cat := range r.Breakdown {
		assert.Equal(t, r.CategoryScores[cat.Name], cat.Score)
	}
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 51.0, round1(51))
	assert.Equal(t, 12.3, round1(12.34))
	assert.Equal(t, 12.4, round1(12.35))
	assert.Equal(t, 0.0, round1(0))
}
