package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeSquared-Agency/CreditScore/internal/scoring"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const assessmentColumns = `assessment_id, applicant_id, reference, source,
	input,
	total_score, risk_band, decision, category_scores, reasons, breakdown,
	created_at`

func (s *PostgresStore) CreateAssessment(ctx context.Context, a *Assessment) error {
	inputJSON, err := json.Marshal(a.Input)
	if err != nil {
		return fmt.Errorf("marshal input: %w", err)
	}
	categoryJSON, err := json.Marshal(a.CategoryScores)
	if err != nil {
		return fmt.Errorf("marshal category scores: %w", err)
	}
	breakdownJSON, err := json.Marshal(a.Breakdown)
	if err != nil {
		return fmt.Errorf("marshal breakdown: %w", err)
	}
	reasons := a.Reasons
	if reasons == nil {
		reasons = []string{}
	}

	return s.pool.QueryRow(ctx, `
		INSERT INTO credit_assessments (applicant_id, reference, source,
			input,
			total_score, risk_band, decision, category_scores, reasons, breakdown)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING assessment_id, created_at`,
		a.ApplicantID, a.Reference, a.Source,
		inputJSON,
		a.TotalScore, string(a.RiskBand), string(a.Decision), categoryJSON, reasons, breakdownJSON,
	).Scan(&a.ID, &a.CreatedAt)
}

func (s *PostgresStore) GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+assessmentColumns+`
		FROM credit_assessments WHERE assessment_id = $1`, id)
	a, err := scanAssessment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *PostgresStore) ListAssessments(ctx context.Context, filter AssessmentFilter) ([]*Assessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM credit_assessments WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.ApplicantID != "" {
		n++
		query += fmt.Sprintf(" AND applicant_id = $%d", n)
		args = append(args, filter.ApplicantID)
	}
	if filter.RiskBand != nil {
		n++
		query += fmt.Sprintf(" AND risk_band = $%d", n)
		args = append(args, string(*filter.RiskBand))
	}
	if filter.Decision != nil {
		n++
		query += fmt.Sprintf(" AND decision = $%d", n)
		args = append(args, string(*filter.Decision))
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetStats(ctx context.Context) (*AssessmentStats, error) {
	stats := NewAssessmentStats()

	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(AVG(total_score), 0), MAX(created_at)
		FROM credit_assessments`,
	).Scan(&stats.Total, &stats.AvgTotalScore, &stats.LastAssessedAt)
	if err != nil {
		return nil, fmt.Errorf("assessment totals: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT risk_band, decision, COUNT(*)
		FROM credit_assessments
		GROUP BY risk_band, decision`)
	if err != nil {
		return nil, fmt.Errorf("assessment breakdown: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var band, decision string
		var count int
		if err := rows.Scan(&band, &decision, &count); err != nil {
			return nil, err
		}
		stats.ByRiskBand[scoring.RiskBand(band)] += count
		stats.ByDecision[scoring.Decision(decision)] += count
	}
	return stats, rows.Err()
}

func scanAssessment(row pgx.Row) (*Assessment, error) {
	a := &Assessment{}
	var reference *string
	var band, decision string
	var inputJSON, categoryJSON, breakdownJSON []byte
	err := row.Scan(
		&a.ID, &a.ApplicantID, &reference, &a.Source,
		&inputJSON,
		&a.TotalScore, &band, &decision, &categoryJSON, &a.Reasons, &breakdownJSON,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if reference != nil {
		a.Reference = *reference
	}
	a.RiskBand = scoring.RiskBand(band)
	a.Decision = scoring.Decision(decision)
	if err := json.Unmarshal(inputJSON, &a.Input); err != nil {
		return nil, fmt.Errorf("decode input for %s: %w", a.ID, err)
	}
	if err := json.Unmarshal(categoryJSON, &a.CategoryScores); err != nil {
		return nil, fmt.Errorf("decode category scores for %s: %w", a.ID, err)
	}
	if breakdownJSON != nil {
		if err := json.Unmarshal(breakdownJSON, &a.Breakdown); err != nil {
			return nil, fmt.Errorf("decode breakdown for %s: %w", a.ID, err)
		}
	}
	if a.Reasons == nil {
		a.Reasons = []string{}
	}
	return a, nil
}
