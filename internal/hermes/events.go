package hermes

import "time"

// AssessmentRequestEvent asks the service to score an applicant record.
type AssessmentRequestEvent struct {
	ApplicantID string                 `json:"applicant_id"`
	Reference   string                 `json:"reference,omitempty"`
	Source      string                 `json:"source,omitempty"`
	Input       map[string]interface{} `json:"input"`
}

type AssessmentCompletedEvent struct {
	AssessmentID   string             `json:"assessment_id"`
	ApplicantID    string             `json:"applicant_id"`
	Reference      string             `json:"reference,omitempty"`
	TotalScore     float64            `json:"total_score"`
	RiskBand       string             `json:"risk_band"`
	Decision       string             `json:"decision"`
	CategoryScores map[string]float64 `json:"category_scores"`
	Reasons        []string           `json:"reasons"`
	AssessedAt     time.Time          `json:"assessed_at"`
}

type AssessmentRejectedEvent struct {
	ApplicantID string `json:"applicant_id"`
	Reference   string `json:"reference,omitempty"`
	Field       string `json:"field,omitempty"`
	Error       string `json:"error"`
}

type StatsEvent struct {
	Total         int            `json:"total"`
	ByRiskBand    map[string]int `json:"by_risk_band"`
	ByDecision    map[string]int `json:"by_decision"`
	AvgTotalScore float64        `json:"avg_total_score"`
	Timestamp     time.Time      `json:"timestamp"`
}
