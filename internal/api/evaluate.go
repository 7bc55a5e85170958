package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/CreditScore/internal/assessment"
)

type ScoringHandler struct {
	svc *assessment.Service
}

func NewScoringHandler(svc *assessment.Service) *ScoringHandler {
	return &ScoringHandler{svc: svc}
}

// Evaluate scores a raw applicant record without storing it.
// POST /api/v1/scoring/evaluate
func (h *ScoringHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var raw map[string]interface{}
	if err := decodeBody(r, &raw); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if raw == nil {
		writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	result, err := h.svc.Evaluate(raw)
	if err != nil {
		writeInputError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
