package assessment

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/MikeSquared-Agency/CreditScore/internal/hermes"
	"github.com/MikeSquared-Agency/CreditScore/internal/store"
)

// Intake consumes assessment requests from the event bus and periodically
// publishes aggregate stats.
type Intake struct {
	service       *Service
	store         store.Store
	hermes        hermes.Client
	statsInterval time.Duration
	logger        *slog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewIntake(svc *Service, s store.Store, h hermes.Client, statsInterval time.Duration, logger *slog.Logger) *Intake {
	return &Intake{
		service:       svc,
		store:         s,
		hermes:        h,
		statsInterval: statsInterval,
		logger:        logger,
		stopCh:        make(chan struct{}),
	}
}

func (i *Intake) Start(ctx context.Context) {
	if i.hermes == nil {
		return
	}
	i.wg.Add(1)
	go i.statsLoop(ctx)
}

func (i *Intake) Stop() {
	i.stopOnce.Do(func() { close(i.stopCh) })
	i.wg.Wait()
}

func (i *Intake) SetupSubscriptions(ctx context.Context) error {
	if i.hermes == nil {
		return nil
	}
	return i.hermes.QueueSubscribe(hermes.SubjectAssessmentRequest, hermes.QueueGroup, func(_ string, data []byte) {
		i.handleRequest(ctx, data)
	})
}

func (i *Intake) handleRequest(ctx context.Context, data []byte) {
	var evt hermes.AssessmentRequestEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		i.logger.Warn("invalid assessment request event", "error", err)
		return
	}
	if evt.Source == "" {
		evt.Source = "nats"
	}
	a, err := i.service.Assess(ctx, Request{
		ApplicantID: evt.ApplicantID,
		Reference:   evt.Reference,
		Source:      evt.Source,
		Input:       evt.Input,
	})
	if err != nil {
		i.logger.Warn("assessment request failed", "applicant_id", evt.ApplicantID, "reference", evt.Reference, "error", err)
		return
	}
	i.logger.Info("assessment created from NATS request", "assessment_id", a.ID, "applicant_id", a.ApplicantID)
}

func (i *Intake) statsLoop(ctx context.Context) {
	defer i.wg.Done()
	ticker := time.NewTicker(i.statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-i.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			i.publishStats(ctx)
		}
	}
}

func (i *Intake) publishStats(ctx context.Context) {
	stats, err := i.store.GetStats(ctx)
	if err != nil {
		i.logger.Error("failed to load assessment stats", "error", err)
		return
	}
	evt := hermes.StatsEvent{
		Total:         stats.Total,
		ByRiskBand:    make(map[string]int, len(stats.ByRiskBand)),
		ByDecision:    make(map[string]int, len(stats.ByDecision)),
		AvgTotalScore: stats.AvgTotalScore,
		Timestamp:     time.Now().UTC(),
	}
	for band, n := range stats.ByRiskBand {
		evt.ByRiskBand[string(band)] = n
	}
	for decision, n := range stats.ByDecision {
		evt.ByDecision[string(decision)] = n
	}
	if err := i.hermes.Publish(ctx, hermes.SubjectAssessmentStats, evt); err != nil {
		i.logger.Warn("failed to publish stats", "error", err)
	}
}
