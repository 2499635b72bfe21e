// Command athand runs the prayer-notification scheduling engine as a
// standalone daemon: it arms the notification chain, delivers due
// notifications, watches chain health, and serves a small debug surface.
//
// Usage:
//
//	ATHAN_DATA_PATH=./data/yearly_prayer_times.json athand
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/mizanlabs/athan"
	"github.com/mizanlabs/athan/batch"
	"github.com/mizanlabs/athan/chain"
	"github.com/mizanlabs/athan/config"
	"github.com/mizanlabs/athan/dispatch"
	"github.com/mizanlabs/athan/health"
	"github.com/mizanlabs/athan/metrics"
	"github.com/mizanlabs/athan/resolver"
	"github.com/mizanlabs/athan/store"
	badgerstore "github.com/mizanlabs/athan/store/badger"
	"github.com/mizanlabs/athan/store/memory"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	data, err := athan.LoadYearlyData(cfg.DataPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load yearly prayer data")
	}

	var st store.NotificationStore
	if cfg.StorePath == "" {
		log.Warn().Msg("no store path configured, using in-memory store")
		st = memory.New()
	} else {
		bs, err := badgerstore.Open(cfg.StorePath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open notification store")
		}
		st = bs
	}
	defer st.Close()

	col := metrics.NewInMemory()
	sched := batch.New(st, batch.Config{
		BatchSize: cfg.BatchSize,
		Pacing:    rate.Limit(cfg.BatchPacing),
	}, log)

	controller, err := chain.NewController(resolver.New(data), sched, st, chain.Config{
		LookaheadDays:         cfg.LookaheadDays,
		AdvanceWarningMinutes: cfg.AdvanceWarningMinutes,
		RefreshLead:           cfg.RefreshLead,
		FallbackSpec:          cfg.FallbackSpec,
	}, col, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build chain controller")
	}

	router := chain.NewRouter(controller, log)
	router.OnReminder(func(ctx context.Context, prayer athan.Prayer, date time.Time) {
		log.Info().Str("prayer", string(prayer)).Str("date", date.Format("2006-01-02")).Msg("prayer reminder delivered")
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	count, err := controller.SetupChain(ctx)
	if err != nil {
		// A store without permission still gets retried by the health
		// monitor, so this is not fatal.
		log.Error().Err(err).Msg("initial chain setup incomplete")
	} else {
		log.Info().Int("scheduled", count).Msg("notification chain started")
	}

	dispatcher := dispatch.New(st, router, cfg.DispatchInterval, log)
	dispatcher.Start(ctx)
	defer dispatcher.Stop()

	checker := health.NewChecker(st, controller, cfg.LowWaterMark, col, log)
	monitor := health.NewMonitor(checker, cfg.MonitorInterval)
	monitor.Start(ctx)
	defer monitor.Stop()

	srv := &http.Server{
		Addr:    cfg.DebugAddr,
		Handler: newDebugRouter(st, controller, col),
	}
	go func() {
		log.Info().Str("addr", cfg.DebugAddr).Msg("debug server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("debug server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("debug server shutdown failed")
	}
}
