package scheduler

import (
	"context"

	"fihealth/internal/providers"
	"fihealth/internal/scheduler/interfaces"
	"fihealth/internal/services"
	"fihealth/internal/structures"

	"github.com/google/uuid"
	"github.com/roylee0704/gron"
	"go.uber.org/atomic"
)

type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	service services.RegionServiceInterface
	cron    *gron.Cron
	busy    atomic.Bool
}

// Init starts the periodic context broker sync. A zero interval disables it.
func (s *Scheduler) Init() {
	interval := s.config.Cbroker.SyncInterval
	if interval <= 0 {
		s.logger.Infof(providers.TypeApp, "Periodic Context Broker sync disabled")
		return
	}
	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(interval), s.Sync)
	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Syncing regions from Context Broker every %s", interval)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Sync runs one refresh. A tick arriving while the previous refresh is still
// running is dropped.
func (s *Scheduler) Sync() {
	if !s.busy.CompareAndSwap(false, true) {
		s.logger.Debugf(providers.TypeApp, "Previous sync still running, tick skipped")
		return
	}
	defer s.busy.Store(false)

	txid := uuid.NewString()
	ctx := providers.WithTransactionID(context.Background(), txid)
	if err := s.service.Refresh(ctx); err != nil {
		s.logger.Errorf(providers.TypeApp, "[%s] Region sync failed: %s", txid, err)
		return
	}
	s.logger.Debugf(providers.TypeApp, "[%s] Region sync done", txid)
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.RegionServiceInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		service: service,
	}
}
