package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fihealth/internal/clients"
	"fihealth/internal/models"
	"fihealth/internal/providers"
)

var ErrServiceUnavailable = errors.New("region data unavailable")

type RegionServiceInterface interface {
	Refresh(ctx context.Context) error
	Regions(ctx context.Context, viewer *models.Viewer) ([]models.RegionRecord, error)
}

type RegionService struct {
	logger        providers.Logger
	metrics       providers.MetricsProviderInterface
	store         *models.RegionStore
	cbroker       clients.ContextBrokerClientInterface
	jenkins       clients.JenkinsClientInterface
	notifications NotificationServiceInterface
	subscriptions SubscriptionServiceInterface
	authorization AuthorizationServiceInterface
	renderMu      sync.Mutex
}

// Refresh pulls every region from the context broker into the store. On failure
// the store is left as it was.
func (rs *RegionService) Refresh(ctx context.Context) error {
	resp, err := rs.cbroker.QueryRegions(ctx)
	if err != nil {
		rs.metrics.IncUpstreamErrors("contextbroker")
		return err
	}
	applied := rs.notifications.ParseRegions(ctx, resp)
	rs.logger.Debugf(providers.TypeApp, "[%s] Refreshed %d regions from Context Broker", providers.TransactionID(ctx), len(applied))
	return nil
}

func (rs *RegionService) markJobsInProgress(ctx context.Context) {
	progress, err := rs.jenkins.JobsInProgress(ctx)
	if err != nil {
		rs.metrics.IncUpstreamErrors("jenkins")
		return
	}
	for region, building := range progress {
		if building {
			rs.store.SetStatus(region, models.StatusOther)
		}
	}
}

// Regions returns the listing for viewer. Identified viewers get their subscribed and
// authorized flags; one such render runs at a time since those flags live in the store.
func (rs *RegionService) Regions(ctx context.Context, viewer *models.Viewer) ([]models.RegionRecord, error) {
	refreshErr := rs.Refresh(ctx)
	rs.markJobsInProgress(ctx)

	if refreshErr != nil && rs.store.ObservedCount() == 0 {
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, refreshErr)
	}

	if !viewer.Identified() {
		regions := rs.store.List()
		for i := range regions {
			regions[i].Authorized = false
			regions[i].Subscribed = false
		}
		return regions, nil
	}

	rs.renderMu.Lock()
	defer rs.renderMu.Unlock()

	rs.subscriptions.SearchSubscription(ctx, viewer.Email, func() {
		rs.authorization.AddAuthorized(viewer.DisplayName)
	})
	return rs.store.List(), nil
}

func NewRegionService(logger providers.Logger, metrics providers.MetricsProviderInterface, store *models.RegionStore, cbroker clients.ContextBrokerClientInterface, jenkins clients.JenkinsClientInterface, notifications NotificationServiceInterface, subscriptions SubscriptionServiceInterface, authorization AuthorizationServiceInterface) RegionServiceInterface {
	return &RegionService{
		logger:        logger,
		metrics:       metrics,
		store:         store,
		cbroker:       cbroker,
		jenkins:       jenkins,
		notifications: notifications,
		subscriptions: subscriptions,
		authorization: authorization,
	}
}
