package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/CreditScore/internal/scoring"
)

// Assessment is a persisted evaluation of one applicant record.
type Assessment struct {
	ID          uuid.UUID `json:"assessment_id"`
	ApplicantID string    `json:"applicant_id"`
	Reference   string    `json:"reference,omitempty"`
	Source      string    `json:"source"`

	// Input is the coerced record the engine scored.
	Input scoring.Input `json:"input"`

	// Result
	TotalScore     float64                  `json:"total_score"`
	RiskBand       scoring.RiskBand         `json:"risk_band"`
	Decision       scoring.Decision         `json:"decision"`
	CategoryScores map[string]float64       `json:"category_scores"`
	Reasons        []string                 `json:"reasons"`
	Breakdown      []scoring.CategoryResult `json:"breakdown,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewAssessment copies an engine result into an unsaved Assessment.
func NewAssessment(applicantID, reference, source string, in scoring.Input, r scoring.Result) *Assessment {
	return &Assessment{
		ApplicantID:    applicantID,
		Reference:      reference,
		Source:         source,
		Input:          in,
		TotalScore:     r.TotalScore,
		RiskBand:       r.RiskBand,
		Decision:       r.Decision,
		CategoryScores: r.CategoryScores,
		Reasons:        r.Reasons,
		Breakdown:      r.Breakdown,
	}
}

type AssessmentFilter struct {
	ApplicantID string
	RiskBand    *scoring.RiskBand
	Decision    *scoring.Decision
	Limit       int
	Offset      int
}

type AssessmentStats struct {
	Total          int                      `json:"total"`
	ByRiskBand     map[scoring.RiskBand]int `json:"by_risk_band"`
	ByDecision     map[scoring.Decision]int `json:"by_decision"`
	AvgTotalScore  float64                  `json:"avg_total_score"`
	LastAssessedAt *time.Time               `json:"last_assessed_at,omitempty"`
}

// NewAssessmentStats returns stats with every band and decision present at zero.
func NewAssessmentStats() *AssessmentStats {
	return &AssessmentStats{
		ByRiskBand: map[scoring.RiskBand]int{
			scoring.RiskLow: 0, scoring.RiskMedium: 0, scoring.RiskHigh: 0,
		},
		ByDecision: map[scoring.Decision]int{
			scoring.DecisionApprove: 0, scoring.DecisionConditionalApproval: 0, scoring.DecisionReject: 0,
		},
	}
}

type Store interface {
	CreateAssessment(ctx context.Context, a *Assessment) error
	// GetAssessment returns nil, nil when no assessment has the given id.
	GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error)
	ListAssessments(ctx context.Context, filter AssessmentFilter) ([]*Assessment, error)
	GetStats(ctx context.Context) (*AssessmentStats, error)
	Close() error
}
