package background

import (
	"context"
	"time"

	"tradeportal/internal/caching"
	"tradeportal/internal/repositories"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// JobScheduler runs the portal's periodic work: the daily call-back
// reminder scan and an hourly cache sweep.
type JobScheduler struct {
	scheduler  gocron.Scheduler
	traderRepo repositories.TraderRepository
	cache      caching.CacheService
	logger     *zap.Logger
}

func NewJobScheduler(traderRepo repositories.TraderRepository, cache caching.CacheService, logger *zap.Logger) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		traderRepo: traderRepo,
		cache:      cache,
		logger:     logger,
	}
	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	js.logger.Info("starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	js.logger.Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	if _, err := js.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(7, 0, 0))),
		gocron.NewTask(js.scanCallBacks, context.Background()),
		gocron.WithName("callback-reminders"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		js.logger.Error("failed to register callback reminder job", zap.Error(err))
	}

	if _, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.sweepCache, context.Background()),
		gocron.WithName("cache-sweep"),
	); err != nil {
		js.logger.Error("failed to register cache sweep job", zap.Error(err))
	}
}

// scanCallBacks logs every trader whose call-back date has arrived, per
// branch, so branch staff get a morning worklist in the ops log.
func (js *JobScheduler) scanCallBacks(ctx context.Context) {
	branches, err := js.traderRepo.ListBranches(ctx)
	if err != nil {
		js.logger.Error("callback scan: listing branches failed", zap.Error(err))
		return
	}
	now := time.Now().UTC()
	for _, branch := range branches {
		due, err := js.traderRepo.DueCallBacks(ctx, branch, now)
		if err != nil {
			js.logger.Error("callback scan failed", zap.String("branch", branch), zap.Error(err))
			continue
		}
		for _, t := range due {
			js.logger.Info("call-back due",
				zap.String("branch", branch),
				zap.String("trader", t.Name),
				zap.Timep("callBackDate", t.CallBackDate))
		}
	}
}

func (js *JobScheduler) sweepCache(ctx context.Context) {
	if err := js.cache.SweepExpired(ctx); err != nil {
		js.logger.Warn("cache sweep failed", zap.Error(err))
	}
}
