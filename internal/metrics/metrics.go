package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the assessment collectors.
type Recorder struct {
	evaluations *prometheus.CounterVec
	errors      *prometheus.CounterVec
	totalScore  prometheus.Histogram
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "creditscore",
			Name:      "evaluations_total",
			Help:      "Applicant records evaluated, by risk band and decision.",
		}, []string{"risk_band", "decision"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "creditscore",
			Name:      "evaluation_errors_total",
			Help:      "Applicant records rejected for invalid input, by field.",
		}, []string{"field"}),
		totalScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "creditscore",
			Name:      "total_score",
			Help:      "Distribution of published total scores.",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}),
	}
	reg.MustRegister(r.evaluations, r.errors, r.totalScore)
	return r
}

func (r *Recorder) ObserveEvaluation(riskBand, decision string, totalScore float64) {
	r.evaluations.WithLabelValues(riskBand, decision).Inc()
	r.totalScore.Observe(totalScore)
}

// ObserveInputError counts a rejected record. field may be empty when the
// record itself could not be decoded.
func (r *Recorder) ObserveInputError(field string) {
	if field == "" {
		field = "record"
	}
	r.errors.WithLabelValues(field).Inc()
}
