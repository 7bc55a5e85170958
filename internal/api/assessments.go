package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/CreditScore/internal/assessment"
	"github.com/MikeSquared-Agency/CreditScore/internal/scoring"
	"github.com/MikeSquared-Agency/CreditScore/internal/store"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

type AssessmentsHandler struct {
	svc   *assessment.Service
	store store.Store
}

func NewAssessmentsHandler(svc *assessment.Service, s store.Store) *AssessmentsHandler {
	return &AssessmentsHandler{svc: svc, store: s}
}

type CreateAssessmentRequest struct {
	ApplicantID string                 `json:"applicant_id"`
	Reference   string                 `json:"reference,omitempty"`
	Source      string                 `json:"source,omitempty"`
	Input       map[string]interface{} `json:"input"`
}

func (h *AssessmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAssessmentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Input == nil {
		writeError(w, http.StatusBadRequest, "input required")
		return
	}

	a, err := h.svc.Assess(r.Context(), assessment.Request{
		ApplicantID: req.ApplicantID,
		Reference:   req.Reference,
		Source:      req.Source,
		Input:       req.Input,
	})
	switch {
	case errors.Is(err, assessment.ErrApplicantRequired), errors.Is(err, assessment.ErrInvalidApplicantID):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case isInputError(err):
		writeInputError(w, err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *AssessmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.AssessmentFilter{
		ApplicantID: q.Get("applicant_id"),
		Limit:       defaultListLimit,
	}
	if s := q.Get("risk_band"); s != "" {
		band := scoring.RiskBand(s)
		if !band.Valid() {
			writeError(w, http.StatusBadRequest, "invalid risk_band")
			return
		}
		filter.RiskBand = &band
	}
	if s := q.Get("decision"); s != "" {
		decision := scoring.Decision(s)
		if !decision.Valid() {
			writeError(w, http.StatusBadRequest, "invalid decision")
			return
		}
		filter.Decision = &decision
	}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = min(n, maxListLimit)
	}
	if s := q.Get("offset"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = n
	}

	assessments, err := h.store.ListAssessments(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if assessments == nil {
		assessments = []*store.Assessment{}
	}
	writeJSON(w, http.StatusOK, assessments)
}

func (h *AssessmentsHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, a)
}
