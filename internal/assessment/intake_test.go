package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/CreditScore/internal/hermes"
	"github.com/MikeSquared-Agency/CreditScore/internal/scoring"
	"github.com/MikeSquared-Agency/CreditScore/internal/store"
)

// statsHermes records stats events published by the intake loop.
type statsHermes struct {
	mu     sync.Mutex
	events []hermes.StatsEvent
}

func (h *statsHermes) Publish(_ context.Context, subject string, data interface{}) error {
	if subject != hermes.SubjectAssessmentStats {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, data.(hermes.StatsEvent))
	return nil
}
func (h *statsHermes) QueueSubscribe(_, _ string, _ func(string, []byte)) error { return nil }
func (h *statsHermes) Close()                                                   {}

func (h *statsHermes) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

func TestSetupSubscriptionsHandlesRequests(t *testing.T) {
	ms := &MockStore{}
	mh := &MockHermes{}
	svc, _ := newTestService(ms, mh)
	intake := NewIntake(svc, ms, mh, time.Minute, testLogger())

	var handler func(string, []byte)
	mh.On("QueueSubscribe", hermes.SubjectAssessmentRequest, hermes.QueueGroup, mock.Anything).Run(func(args mock.Arguments) {
		handler = args.Get(2).(func(string, []byte))
	}).Return(nil)
	mh.On("Publish", mock.Anything, mock.Anything).Return(nil)

	var stored *store.Assessment
	ms.On("CreateAssessment", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*store.Assessment)
	}).Return(nil)

	require.NoError(t, intake.SetupSubscriptions(context.Background()))
	require.NotNil(t, handler)

	payload, err := json.Marshal(hermes.AssessmentRequestEvent{
		ApplicantID: "acme-10",
		Reference:   "loan-10",
		Input:       strongRecord(),
	})
	require.NoError(t, err)
	handler(hermes.SubjectAssessmentRequest, payload)

	require.NotNil(t, stored)
	assert.Equal(t, "acme-10", stored.ApplicantID)
	assert.Equal(t, "nats", stored.Source)
	assert.Equal(t, scoring.DecisionApprove, stored.Decision)
	mh.AssertNumberOfCalls(t, "Publish", 2)
}

func TestHandleRequestIgnoresBadPayload(t *testing.T) {
	ms := &MockStore{}
	mh := &MockHermes{}
	svc, _ := newTestService(ms, mh)
	intake := NewIntake(svc, ms, mh, time.Minute, testLogger())

	intake.handleRequest(context.Background(), []byte("{not json"))

	ms.AssertNotCalled(t, "CreateAssessment", mock.Anything, mock.Anything)
	mh.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestHandleRequestRejectsInvalidInput(t *testing.T) {
	ms := &MockStore{}
	mh := &MockHermes{}
	svc, _ := newTestService(ms, mh)
	intake := NewIntake(svc, ms, mh, time.Minute, testLogger())

	mh.On("Publish", hermes.SubjectAssessmentRejected, mock.Anything).Return(nil).Once()

	payload := []byte(`{"applicant_id":"acme-11","input":{"past_default_flag":"sometimes"}}`)
	intake.handleRequest(context.Background(), payload)

	ms.AssertNotCalled(t, "CreateAssessment", mock.Anything, mock.Anything)
	mh.AssertExpectations(t)
}

func TestSetupSubscriptionsWithoutEventBus(t *testing.T) {
	ms := &MockStore{}
	svc, _ := newTestService(ms, nil)
	intake := NewIntake(svc, ms, nil, time.Minute, testLogger())

	assert.NoError(t, intake.SetupSubscriptions(context.Background()))
	intake.Start(context.Background())
	intake.Stop()
}

func TestSetupSubscriptionsError(t *testing.T) {
	ms := &MockStore{}
	mh := &MockHermes{}
	svc, _ := newTestService(ms, mh)
	intake := NewIntake(svc, ms, mh, time.Minute, testLogger())

	mh.On("QueueSubscribe", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("nats: connection closed"))
	assert.Error(t, intake.SetupSubscriptions(context.Background()))
}

func TestStatsLoopPublishes(t *testing.T) {
	ms := &MockStore{}
	stats := store.NewAssessmentStats()
	stats.Total = 3
	stats.ByRiskBand[scoring.RiskLow] = 2
	stats.ByRiskBand[scoring.RiskHigh] = 1
	stats.ByDecision[scoring.DecisionApprove] = 2
	stats.ByDecision[scoring.DecisionReject] = 1
	stats.AvgTotalScore = 66.7
	ms.On("GetStats", mock.Anything).Return(stats, nil)

	h := &statsHermes{}
	svc, _ := newTestService(ms, h)
	intake := NewIntake(svc, ms, h, 10*time.Millisecond, testLogger())

	intake.Start(context.Background())
	assert.Eventually(t, func() bool { return h.count() >= 2 }, time.Second, 5*time.Millisecond)
	intake.Stop()

	h.mu.Lock()
	evt := h.events[0]
	h.mu.Unlock()
	assert.Equal(t, 3, evt.Total)
	assert.Equal(t, 2, evt.ByRiskBand["LOW"])
	assert.Equal(t, 0, evt.ByRiskBand["MEDIUM"])
	assert.Equal(t, 1, evt.ByDecision["REJECT"])
	assert.Equal(t, 66.7, evt.AvgTotalScore)
	assert.False(t, evt.Timestamp.IsZero())
}

func TestStatsLoopSkipsOnStoreError(t *testing.T) {
	ms := &MockStore{}
	ms.On("GetStats", mock.Anything).Return(nil, errors.New("database unavailable"))

	h := &statsHermes{}
	svc, _ := newTestService(ms, h)
	intake := NewIntake(svc, ms, h, 5*time.Millisecond, testLogger())

	intake.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	intake.Stop()

	assert.Equal(t, 0, h.count())
}

func TestStopIsIdempotent(t *testing.T) {
	ms := &MockStore{}
	ms.On("GetStats", mock.Anything).Return(store.NewAssessmentStats(), nil)
	h := &statsHermes{}
	svc, _ := newTestService(ms, h)
	intake := NewIntake(svc, ms, h, time.Hour, testLogger())

	intake.Start(context.Background())
	intake.Stop()
	intake.Stop()
}

func TestStatsLoopStopsOnContextCancel(t *testing.T) {
	ms := &MockStore{}
	h := &statsHermes{}
	svc, _ := newTestService(ms, h)
	intake := NewIntake(svc, ms, h, time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	intake.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		intake.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("intake did not stop after context cancel")
	}
}
