package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/CreditScore/internal/scoring"
	"github.com/MikeSquared-Agency/CreditScore/internal/store"
)

type ExplainHandler struct {
	store store.Store
}

func NewExplainHandler(s store.Store) *ExplainHandler {
	return &ExplainHandler{store: s}
}

// Explain returns the per-factor scoring breakdown for an assessment.
// GET /api/v1/scoring/explain/{id}
func (h *ExplainHandler) Explain(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid assessment id")
		return
	}

	a, err := h.store.GetAssessment(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if a == nil {
		writeError(w, http.StatusNotFound, "assessment not found")
		return
	}

	resp := map[string]interface{}{
		"assessment_id":   a.ID,
		"applicant_id":    a.ApplicantID,
		"total_score":     a.TotalScore,
		"max_total_score": scoring.MaxTotalScore,
		"risk_band":       a.RiskBand,
		"decision":        a.Decision,
		"thresholds": map[string]float64{
			string(scoring.RiskLow):    scoring.LowRiskThreshold,
			string(scoring.RiskMedium): scoring.MediumRiskThreshold,
		},
		"reasons": a.Reasons,
	}
	if a.Breakdown != nil {
		resp["breakdown"] = a.Breakdown
	}

	writeJSON(w, http.StatusOK, resp)
}
