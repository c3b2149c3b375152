package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"followup-srv/config"
	"followup-srv/internal/scheduler"
	"followup-srv/pkg/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	trigger, err := scheduler.New(logger, nil, scheduler.Config{
		TriggerURL: cfg.Scheduler.TriggerURL,
		Secret:     cfg.Cron.Secret,
		Timeout:    cfg.Scheduler.Timeout,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize scheduler: %v", err)
		return
	}

	c, err := trigger.Schedule(ctx, cfg.Scheduler.Spec)
	if err != nil {
		logger.Errorf(ctx, "Failed to schedule reminder cycle: %v", err)
		return
	}

	c.Start()
	logger.Infof(ctx, "Scheduler started: %q -> %s", cfg.Scheduler.Spec, cfg.Scheduler.TriggerURL)

	<-ctx.Done()
	logger.Info(ctx, "Shutdown signal received, stopping scheduler...")
	<-c.Stop().Done()
	logger.Info(ctx, "Scheduler stopped gracefully")
}
