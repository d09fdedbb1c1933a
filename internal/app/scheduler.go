package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"intern-watch/internal/config"
	"intern-watch/internal/observability"
)

// Scheduler drives the orchestrator in one of three modes. The production
// deployment is "oneshot" under an external cron trigger; "interval" and
// "cron" keep the process resident for local or container runs. Overlap
// prevention is the trigger's responsibility either way: ticks run
// sequentially here, never concurrently.
type Scheduler struct {
	cfg    *config.Config
	logger *observability.Logger
	orch   *Orchestrator
}

func NewScheduler(cfg *config.Config, logger *observability.Logger, orch *Orchestrator) *Scheduler {
	return &Scheduler{cfg: cfg, logger: logger, orch: orch}
}

func (s *Scheduler) Run(ctx context.Context) error {
	switch s.cfg.Scheduler.Mode {
	case "interval":
		return s.runInterval(ctx)
	case "cron":
		return s.runCron(ctx)
	default:
		_, err := s.orch.Run(ctx)
		return err
	}
}

func (s *Scheduler) runInterval(ctx context.Context) error {
	interval := s.cfg.GetSchedulerInterval()
	s.logger.Info("interval scheduler started", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-ctx.Done():
			s.logger.Info("interval scheduler stopped")
			return nil
		}
	}
}

func (s *Scheduler) runCron(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(s.cfg.Scheduler.CronExpr, func() { s.tick(ctx) }); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", s.cfg.Scheduler.CronExpr, err)
	}

	c.Start()
	s.logger.Info("cron scheduler started", "expr", s.cfg.Scheduler.CronExpr)

	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.Info("cron scheduler stopped")
	return nil
}

func (s *Scheduler) tick(ctx context.Context) {
	if _, err := s.orch.Run(ctx); err != nil {
		s.logger.Error("run failed", "error", err.Error())
	}
}
