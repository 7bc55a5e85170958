package assessment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MikeSquared-Agency/CreditScore/internal/hermes"
	"github.com/MikeSquared-Agency/CreditScore/internal/metrics"
	"github.com/MikeSquared-Agency/CreditScore/internal/scoring"
	"github.com/MikeSquared-Agency/CreditScore/internal/store"
)

// ErrApplicantRequired is returned when a request carries no applicant id.
var ErrApplicantRequired = errors.New("applicant_id required")

// ErrInvalidApplicantID is returned when an applicant id cannot be used as a
// subject token.
var ErrInvalidApplicantID = errors.New("applicant_id must not contain whitespace, '.', '*' or '>'")

// Request is one applicant record to score and persist.
type Request struct {
	ApplicantID string
	Reference   string
	Source      string
	Input       map[string]interface{}
}

// Service scores applicant records, stores the outcome and announces it on
// the event bus. The event bus is optional.
type Service struct {
	store   store.Store
	hermes  hermes.Client
	engine  *scoring.Engine
	metrics *metrics.Recorder
	logger  *slog.Logger
}

func NewService(s store.Store, h hermes.Client, e *scoring.Engine, m *metrics.Recorder, logger *slog.Logger) *Service {
	return &Service{store: s, hermes: h, engine: e, metrics: m, logger: logger}
}

// Evaluate scores a raw record without persisting it.
func (s *Service) Evaluate(raw map[string]interface{}) (scoring.Result, error) {
	result, err := s.engine.EvaluateRecord(raw)
	if err != nil {
		s.observeError(err)
		return scoring.Result{}, err
	}
	s.observe(result)
	return result, nil
}

// Assess scores req.Input, persists the assessment and publishes the outcome.
// Input errors are announced as rejections and nothing is stored.
func (s *Service) Assess(ctx context.Context, req Request) (*store.Assessment, error) {
	req.ApplicantID = strings.TrimSpace(req.ApplicantID)
	if req.ApplicantID == "" {
		return nil, ErrApplicantRequired
	}
	if !hermes.ValidToken(req.ApplicantID) {
		return nil, ErrInvalidApplicantID
	}
	if req.Source == "" {
		req.Source = "api"
	}

	in, err := scoring.ParseInput(req.Input)
	if err != nil {
		s.observeError(err)
		s.publishRejected(ctx, req, err)
		return nil, err
	}

	result := s.engine.Evaluate(&in)
	s.observe(result)

	a := store.NewAssessment(req.ApplicantID, req.Reference, req.Source, in, result)
	if err := s.store.CreateAssessment(ctx, a); err != nil {
		return nil, fmt.Errorf("store assessment: %w", err)
	}

	s.logger.Info("assessment recorded",
		"assessment_id", a.ID,
		"applicant_id", a.ApplicantID,
		"source", a.Source,
		"total_score", a.TotalScore,
		"risk_band", a.RiskBand,
		"decision", a.Decision,
	)
	s.publishCompleted(ctx, a)
	return a, nil
}

func (s *Service) publishCompleted(ctx context.Context, a *store.Assessment) {
	if s.hermes == nil {
		return
	}
	evt := hermes.AssessmentCompletedEvent{
		AssessmentID:   a.ID.String(),
		ApplicantID:    a.ApplicantID,
		Reference:      a.Reference,
		TotalScore:     a.TotalScore,
		RiskBand:       string(a.RiskBand),
		Decision:       string(a.Decision),
		CategoryScores: a.CategoryScores,
		Reasons:        a.Reasons,
		AssessedAt:     a.CreatedAt,
	}
	if err := s.hermes.Publish(ctx, hermes.SubjectAssessmentCompleted(evt.AssessmentID), evt); err != nil {
		s.logger.Warn("failed to publish assessment", "assessment_id", a.ID, "error", err)
	}
	if err := s.hermes.Publish(ctx, hermes.SubjectApplicantAssessed(a.ApplicantID), evt); err != nil {
		s.logger.Warn("failed to publish applicant event", "applicant_id", a.ApplicantID, "error", err)
	}
}

func (s *Service) publishRejected(ctx context.Context, req Request, cause error) {
	s.logger.Warn("assessment rejected", "applicant_id", req.ApplicantID, "error", cause)
	if s.hermes == nil {
		return
	}
	evt := hermes.AssessmentRejectedEvent{
		ApplicantID: req.ApplicantID,
		Reference:   req.Reference,
		Field:       InvalidField(cause),
		Error:       cause.Error(),
	}
	if err := s.hermes.Publish(ctx, hermes.SubjectAssessmentRejected, evt); err != nil {
		s.logger.Warn("failed to publish rejection", "applicant_id", req.ApplicantID, "error", err)
	}
}

func (s *Service) observe(r scoring.Result) {
	if s.metrics != nil {
		s.metrics.ObserveEvaluation(string(r.RiskBand), string(r.Decision), r.TotalScore)
	}
}

func (s *Service) observeError(err error) {
	if s.metrics != nil {
		s.metrics.ObserveInputError(InvalidField(err))
	}
}

// InvalidField returns the offending field of an input error, or "".
func InvalidField(err error) string {
	var inputErr *scoring.InputError
	if errors.As(err, &inputErr) {
		return inputErr.Field
	}
	return ""
}
