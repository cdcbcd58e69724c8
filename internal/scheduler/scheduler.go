package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"MultiplierSentinel/internal/notifier"
	"MultiplierSentinel/internal/predict"
	"MultiplierSentinel/internal/recorder"
	"MultiplierSentinel/internal/validator"
)

// Sender delivers text to the chat. *notifier.TelegramNotifier implements it.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages cron tasks and chat commands.
type Scheduler struct {
	Cron          *cron.Cron
	Service       *predict.Service
	Recorder      recorder.Recorder
	Sender        Sender // nil when Telegram is not configured
	RetentionDays int
	Ctx           context.Context

	now func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, svc *predict.Service, rec recorder.Recorder, sender Sender, retentionDays int) *Scheduler {
	return &Scheduler{
		Cron:          cron.New(cron.WithSeconds()),
		Service:       svc,
		Recorder:      rec,
		Sender:        sender,
		RetentionDays: retentionDays,
		Ctx:           ctx,
		now:           time.Now,
	}
}

// RegisterAll registers the summary and prune tasks.
func (s *Scheduler) RegisterAll(summaryCron, pruneCron string) error {
	if _, err := s.Cron.AddFunc(summaryCron, s.summaryTask); err != nil {
		return fmt.Errorf("register summary task: %w", err)
	}
	if _, err := s.Cron.AddFunc(pruneCron, s.pruneTask); err != nil {
		return fmt.Errorf("register prune task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("jobs", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) summaryTask() {
	log.Info().Msg("running summary task")
	report, err := s.summaryReport()
	if err != nil {
		log.Error().Err(err).Msg("summary")
		return
	}
	if s.Sender == nil {
		log.Info().Str("report", report).Msg("daily summary")
		return
	}
	s.trySend(report)
}

func (s *Scheduler) summaryReport() (string, error) {
	now := s.now()
	sum, err := s.Recorder.Summary(now.Add(-24 * time.Hour))
	if err != nil {
		return "", err
	}
	return notifier.FormatSummary(sum, now), nil
}

func (s *Scheduler) pruneTask() {
	if s.RetentionDays <= 0 {
		return
	}
	cutoff := s.now().AddDate(0, 0, -s.RetentionDays)
	n, err := s.Recorder.Prune(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("prune recorder")
		return
	}
	log.Info().Int64("rows", n).Time("cutoff", cutoff).Msg("pruned old events")
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, text string) string {
	cmd := notifier.ParseCommand(text)
	switch cmd.Name {
	case "predict":
		return s.handlePredict(ctx, cmd.Args)
	case "profiles":
		return notifier.FormatProfiles(s.Service.AllowedLengths())
	case "summary":
		report, err := s.summaryReport()
		if err != nil {
			log.Error().Err(err).Msg("summary command")
			return "❌ summary unavailable"
		}
		return report
	default:
		return notifier.HelpText
	}
}

func (s *Scheduler) handlePredict(ctx context.Context, args string) string {
	lengthArg, values, ok := strings.Cut(args, " ")
	length, err := strconv.Atoi(lengthArg)
	if !ok || err != nil {
		return notifier.FormatValidationError(fmt.Sprintf(
			"Usage: /predict <length> <values>, length one of %v", s.Service.AllowedLengths()))
	}

	res, err := s.Service.Predict(ctx, "telegram", values, length)
	if err != nil {
		var verr *validator.ValidationError
		switch {
		case errors.As(err, &verr):
			return notifier.FormatValidationError(verr.Message())
		case errors.Is(err, predict.ErrLengthNotAllowed):
			return notifier.FormatValidationError(fmt.Sprintf(
				"Length must be one of %v", s.Service.AllowedLengths()))
		default:
			log.Error().Err(err).Msg("predict command")
			return "❌ prediction failed"
		}
	}
	return notifier.FormatPrediction(res)
}

func (s *Scheduler) trySend(text string) {
	if err := s.Sender.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
