package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"saldoku.backend/internal/domain/entities"
	"saldoku.backend/internal/domain/repositories"
	"saldoku.backend/pkg/logger"
)

// SavingsPlanCompletionJob periodically marks ACTIVE plans whose
// currentAmount has reached the goal as COMPLETED. Completion is a
// status flip only; the money stays in the backing wallet until the
// user redeems it.
type SavingsPlanCompletionJob struct {
	repo     repositories.SavingsPlanRepository
	interval time.Duration
	stop     chan struct{}
}

func NewSavingsPlanCompletionJob(repo repositories.SavingsPlanRepository, interval time.Duration) *SavingsPlanCompletionJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SavingsPlanCompletionJob{
		repo:     repo,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *SavingsPlanCompletionJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting savings plan completion job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "savings plan completion job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "savings plan completion job stopped")
			return
		case <-ticker.C:
			j.processCompletablePlans(ctx)
		}
	}
}

func (j *SavingsPlanCompletionJob) Stop() {
	close(j.stop)
}

func (j *SavingsPlanCompletionJob) processCompletablePlans(ctx context.Context) {
	plans, err := j.repo.ListCompletable(ctx)
	if err != nil {
		logger.Error(ctx, "failed to fetch completable savings plans", zap.Error(err))
		return
	}

	if len(plans) == 0 {
		return
	}

	completed := 0
	for _, plan := range plans {
		if err := j.repo.UpdateStatus(ctx, plan.ID, entities.SavingsPlanCompleted); err != nil {
			logger.Error(ctx, "failed to complete savings plan",
				zap.String("plan_id", plan.ID.String()),
				zap.Error(err),
			)
			continue
		}
		completed++
	}

	logger.Info(ctx, "completed savings plans", zap.Int("count", completed))
}
