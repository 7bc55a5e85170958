package scoring

import (
	"fmt"
	"math"
)

// CeilingSet defines the maximum points each category can contribute.
// Ceilings must sum to MaxTotalScore.
type CeilingSet struct {
	FinancialStrength float64
	PaymentBehaviour  float64
	ExternalChecks    float64
	BusinessStability float64
}

// MaxTotalScore is the upper bound of the published total.
const MaxTotalScore = 100.0

// Ceilings returns the fixed category weighting.
func Ceilings() CeilingSet {
	return CeilingSet{
		FinancialStrength: 40,
		PaymentBehaviour:  30,
		ExternalChecks:    15,
		BusinessStability: 15,
	}
}

// Sum returns the total of all ceilings.
func (c CeilingSet) Sum() float64 {
	return c.FinancialStrength + c.PaymentBehaviour + c.ExternalChecks + c.BusinessStability
}

// Validate checks that ceilings sum to MaxTotalScore and none are negative.
func (c CeilingSet) Validate() error {
	if math.Abs(c.Sum()-MaxTotalScore) > 0.001 {
		return fmt.Errorf("ceilings sum to %.1f, must sum to %.0f", c.Sum(), MaxTotalScore)
	}
	for _, v := range c.asList() {
		if v < 0 {
			return fmt.Errorf("negative ceiling: %f", v)
		}
	}
	return nil
}

// For returns the ceiling of the named category, or 0 if unknown.
func (c CeilingSet) For(category string) float64 {
	switch category {
	case CategoryFinancialStrength:
		return c.FinancialStrength
	case CategoryPaymentBehaviour:
		return c.PaymentBehaviour
	case CategoryExternalChecks:
		return c.ExternalChecks
	case CategoryBusinessStability:
		return c.BusinessStability
	}
	return 0
}

func (c CeilingSet) asList() []float64 {
	return []float64{c.FinancialStrength, c.PaymentBehaviour, c.ExternalChecks, c.BusinessStability}
}
