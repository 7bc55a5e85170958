package scoring

// RiskBand is the coarse risk classification derived from the total score.
type RiskBand string

const (
	RiskLow    RiskBand = "LOW"
	RiskMedium RiskBand = "MEDIUM"
	RiskHigh   RiskBand = "HIGH"
)

// Decision is the lending action that follows from a risk band.
type Decision string

const (
	DecisionApprove             Decision = "APPROVE"
	DecisionConditionalApproval Decision = "CONDITIONAL_APPROVAL"
	DecisionReject              Decision = "REJECT"
)

// Band thresholds. Both are inclusive lower bounds.
const (
	LowRiskThreshold    = 75.0
	MediumRiskThreshold = 50.0
)

// ClassifyScore maps a total score to its risk band.
//
//	total >= 75       -> LOW
//	50 <= total < 75  -> MEDIUM
//	total < 50        -> HIGH
func ClassifyScore(total float64) RiskBand {
	switch {
	case total >= LowRiskThreshold:
		return RiskLow
	case total >= MediumRiskThreshold:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// DecisionFor maps a risk band one-to-one onto a lending decision.
func DecisionFor(band RiskBand) Decision {
	switch band {
	case RiskLow:
		return DecisionApprove
	case RiskMedium:
		return DecisionConditionalApproval
	default:
		return DecisionReject
	}
}

// Valid reports whether b is one of the defined bands.
func (b RiskBand) Valid() bool {
	return b == RiskLow || b == RiskMedium || b == RiskHigh
}

// Valid reports whether d is one of the defined decisions.
func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionConditionalApproval || d == DecisionReject
}
