package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"MultiplierSentinel/internal/handler"
	"MultiplierSentinel/internal/httpserver"
	"MultiplierSentinel/internal/metrics"
	"MultiplierSentinel/internal/notifier"
	"MultiplierSentinel/internal/predict"
	"MultiplierSentinel/internal/recorder"
	"MultiplierSentinel/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web form, JSON API, scheduler and Telegram bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log.Info().Msg("MultiplierSentinel starting")

		rec := openRecorder(cfg.Database.SQLitePath)
		defer rec.Close()

		m := metrics.New()
		svc := predict.NewService(predict.Options{
			AllowedLengths: cfg.Predict.AllowedLengths,
			DefaultLength:  cfg.Predict.DefaultLength,
			Delay:          cfg.Predict.Delay,
		}, rec, m)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var sender scheduler.Sender
		var tn *notifier.TelegramNotifier
		if cfg.TelegramEnabled() {
			tn = notifier.NewTelegramNotifier(cfg.Telegram.APIURL, cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
			sender = tn
		} else {
			log.Warn().Msg("telegram not configured, summaries go to the log")
		}

		sched := scheduler.NewScheduler(ctx, svc, rec, sender, cfg.Database.RetentionDays)
		if err := sched.RegisterAll(cfg.Schedule.SummaryCron, cfg.Schedule.PruneCron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		if tn != nil {
			go tn.StartPolling(ctx, sched.HandleCommand)
			log.Info().Msg("telegram polling started")
		}

		srv := httpserver.NewServer(handler.NewPredictHandler(svc),
			httpserver.WithAddress(cfg.Server.Host, cfg.Server.Port),
			httpserver.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
			httpserver.WithMetrics(m),
		)
		srv.Start()

		log.Info().Ints("allowed_lengths", svc.AllowedLengths()).Msg("MultiplierSentinel is running, press Ctrl+C to stop")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Info().Msg("shutdown signal received, stopping")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
		log.Info().Msg("MultiplierSentinel stopped")
		return nil
	},
}

// openRecorder falls back to a no-op recorder when the database is disabled or unavailable.
func openRecorder(path string) recorder.Recorder {
	if path == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(path)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return sr
}
