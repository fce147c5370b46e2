package refresh

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"wishlist/internal/logger"
)

// Scheduler runs the periodic price sweep on a cron spec.
type Scheduler struct {
	log     *logger.Logger
	cron    *cron.Cron
	service *Service
	spec    string
}

func NewScheduler(spec string, service *Service) *Scheduler {
	return &Scheduler{
		log:     logger.New("RefreshScheduler"),
		cron:    cron.New(),
		service: service,
		spec:    spec,
	}
}

func (sc *Scheduler) Start() error {
	if _, err := sc.cron.AddFunc(sc.spec, sc.sweep); err != nil {
		return err
	}
	sc.cron.Start()
	sc.log.LogInfof("price sweep scheduled with spec %q", sc.spec)
	return nil
}

func (sc *Scheduler) Stop() {
	if sc.cron != nil {
		sc.cron.Stop()
	}
}

func (sc *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if _, err := sc.service.EnqueueAll(ctx); err != nil {
		sc.log.LogErrorf("price sweep failed: %v", err)
	}
}
