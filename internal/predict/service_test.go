package predict

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MultiplierSentinel/internal/metrics"
	"MultiplierSentinel/internal/model"
	"MultiplierSentinel/internal/recorder"
	"MultiplierSentinel/internal/validator"
)

type memRecorder struct {
	recorder.NoopRecorder
	mu          sync.Mutex
	predictions []*recorder.PredictionEvent
	rejections  []*recorder.RejectionEvent
	failWrites  bool
}

func (m *memRecorder) RecordPrediction(evt *recorder.PredictionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errors.New("disk full")
	}
	m.predictions = append(m.predictions, evt)
	return nil
}

func (m *memRecorder) RecordRejection(evt *recorder.RejectionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errors.New("disk full")
	}
	m.rejections = append(m.rejections, evt)
	return nil
}

func newTestService(t *testing.T, delay time.Duration) (*Service, *memRecorder, *metrics.Metrics) {
	t.Helper()
	rec := &memRecorder{}
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	svc := NewService(Options{AllowedLengths: []int{6, 2, 3, 3}, DefaultLength: 6, Delay: delay}, rec, m)
	return svc, rec, m
}

func TestService_AllowedLengthsSortedAndUnique(t *testing.T) {
	svc, _, _ := newTestService(t, 0)
	assert.Equal(t, []int{2, 3, 6}, svc.AllowedLengths())
	assert.Equal(t, 6, svc.DefaultLength())
}

func TestService_Predict(t *testing.T) {
	svc, rec, m := newTestService(t, 0)

	res, err := svc.Predict(context.Background(), "api", "5.0, 2.5, 3.0", 3)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryLow, res.Category)

	res, err = svc.Predict(context.Background(), "api", "2.5, 3.0, 3.5", 3)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryStable, res.Category)
	assert.Equal(t, model.History{2.5, 3.0, 3.5}, res.History)

	require.Len(t, rec.predictions, 2)
	assert.Equal(t, "api", rec.predictions[1].Source)
	assert.Equal(t, model.CategoryStable, rec.predictions[1].Category)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Predictions.WithLabelValues("STABLE")))
}

func TestService_ValidationFailure(t *testing.T) {
	svc, rec, m := newTestService(t, 0)

	res, err := svc.Predict(context.Background(), "web", "1.0, abc", 2)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, validator.ErrNotANumber)

	require.Len(t, rec.rejections, 1)
	assert.Equal(t, "NOT_A_NUMBER", rec.rejections[0].Kind)
	assert.Empty(t, rec.predictions)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("NOT_A_NUMBER")))
}

func TestService_LengthNotAllowed(t *testing.T) {
	svc, rec, _ := newTestService(t, 0)

	_, err := svc.Predict(context.Background(), "web", "1,2,3,4", 4)
	assert.ErrorIs(t, err, ErrLengthNotAllowed)
	require.Len(t, rec.rejections, 1)
	assert.Equal(t, KindLengthNotAllowed, rec.rejections[0].Kind)
}

func TestService_RecorderFailureDoesNotFailPrediction(t *testing.T) {
	svc, rec, _ := newTestService(t, 0)
	rec.failWrites = true

	res, err := svc.Predict(context.Background(), "cli", "1.0, 1.0", 2)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryLow, res.Category)
}

func TestService_DelayHonoursCancellation(t *testing.T) {
	svc, rec, m := newTestService(t, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := svc.Predict(ctx, "web", "1.0, 1.0", 2)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, rec.predictions)
	assert.Zero(t, testutil.ToFloat64(m.Predictions.WithLabelValues(string(model.CategoryLow))))
}

func TestService_DelayElapses(t *testing.T) {
	svc, _, _ := newTestService(t, 10*time.Millisecond)

	start := time.Now()
	res, err := svc.Predict(context.Background(), "web", "1.0, 7.0", 2)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryCooldown, res.Category)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestService_ConcurrentUse(t *testing.T) {
	svc, rec, _ := newTestService(t, 0)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Predict(context.Background(), "api", "1.0,1.1,1.15,1.18,1.5,1.9", 6)
			assert.NoError(t, err)
			assert.Equal(t, model.CategoryBreakout, res.Category)
		}()
	}
	wg.Wait()
	assert.Len(t, rec.predictions, 32)
}

func TestNewService_NilRecorder(t *testing.T) {
	svc := NewService(Options{AllowedLengths: []int{2}, DefaultLength: 2}, nil, nil)
	res, err := svc.Predict(context.Background(), "cli", "1,1", 2)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryLow, res.Category)
}
