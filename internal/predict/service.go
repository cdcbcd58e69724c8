// Package predict runs the validate-then-classify flow shared by every front end.
package predict

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"MultiplierSentinel/internal/metrics"
	"MultiplierSentinel/internal/model"
	"MultiplierSentinel/internal/recorder"
	"MultiplierSentinel/internal/strategy"
	"MultiplierSentinel/internal/validator"
)

// KindLengthNotAllowed is recorded when the caller picks a length outside the allowed set.
const KindLengthNotAllowed = "LENGTH_NOT_ALLOWED"

// ErrLengthNotAllowed is returned for a required length outside the configured set.
var ErrLengthNotAllowed = errors.New("history length not allowed")

// Options configures a Service.
type Options struct {
	AllowedLengths []int
	DefaultLength  int
	// Delay simulates processing time before a result is returned. Zero disables it.
	Delay time.Duration
}

// Service validates raw input, classifies it and records the outcome.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	opts     Options
	recorder recorder.Recorder
	metrics  *metrics.Metrics
}

// NewService creates a Service. A nil recorder is replaced by a no-op one.
func NewService(opts Options, rec recorder.Recorder, m *metrics.Metrics) *Service {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	lengths := slices.Clone(opts.AllowedLengths)
	slices.Sort(lengths)
	opts.AllowedLengths = slices.Compact(lengths)
	return &Service{opts: opts, recorder: rec, metrics: m}
}

// AllowedLengths returns the sorted set of history lengths callers may request.
func (s *Service) AllowedLengths() []int {
	return slices.Clone(s.opts.AllowedLengths)
}

// DefaultLength is the length used when the caller does not pick one.
func (s *Service) DefaultLength() int {
	return s.opts.DefaultLength
}

// Predict validates raw against length and classifies the resulting history.
// Validation failures are returned as *validator.ValidationError.
func (s *Service) Predict(ctx context.Context, source, raw string, length int) (*model.PredictionResult, error) {
	if !slices.Contains(s.opts.AllowedLengths, length) {
		s.reject(source, raw, length, KindLengthNotAllowed)
		return nil, fmt.Errorf("%w: %d (allowed %v)", ErrLengthNotAllowed, length, s.opts.AllowedLengths)
	}

	start := time.Now()
	history, err := validator.Validate(raw, length)
	if err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			s.reject(source, raw, length, string(verr.Kind))
		}
		return nil, err
	}

	result, err := strategy.Classify(history)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	elapsed := time.Since(start)

	// A cancelled request is answered with an error, so nothing is counted or stored.
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ObservePrediction(string(result.Category), elapsed.Seconds())
	}
	if err := s.recorder.RecordPrediction(&recorder.PredictionEvent{
		Source:   source,
		Length:   length,
		Values:   result.History,
		Category: result.Category,
	}); err != nil {
		log.Error().Err(err).Msg("record prediction")
	}
	log.Debug().
		Str("source", source).
		Int("length", length).
		Str("category", string(result.Category)).
		Dur("elapsed", elapsed).
		Msg("history classified")
	return result, nil
}

func (s *Service) wait(ctx context.Context) error {
	if s.opts.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.opts.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Service) reject(source, raw string, length int, kind string) {
	if s.metrics != nil {
		s.metrics.ObserveRejection(kind)
	}
	if err := s.recorder.RecordRejection(&recorder.RejectionEvent{
		Source: source,
		Length: length,
		Kind:   kind,
		Input:  raw,
	}); err != nil {
		log.Error().Err(err).Msg("record rejection")
	}
	log.Debug().Str("source", source).Int("length", length).Str("kind", kind).Msg("input rejected")
}
