// Package scheduler runs periodic maintenance jobs. Currently that is a
// nightly recompute of every saved calculation, which keeps cached
// results in sync after engine changes.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/roivest/return-calculator-backend/internal/config"
	"github.com/roivest/return-calculator-backend/internal/service"
)

// Scheduler owns the cron runner and its registered jobs.
type Scheduler struct {
	cron *cron.Cron
}

// New creates a scheduler with the nightly recompute job registered.
func New(calculationService *service.CalculationService, cfg config.SchedulerConfig) (*Scheduler, error) {
	runner := cron.New()

	_, err := runner.AddFunc(cfg.RecomputeSchedule, func() {
		summary, err := calculationService.RecomputeAll(context.Background(), cfg.RecomputeConcurrency)
		if err != nil {
			log.Printf("scheduled recompute failed: %v", err)
			return
		}
		log.Printf("scheduled recompute: %d calculations, %d updated", summary.Total, summary.Updated)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register recompute job: %w", err)
	}

	return &Scheduler{cron: runner}, nil
}

// Start begins running registered jobs in their own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
