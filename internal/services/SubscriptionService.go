package services

import (
	"context"
	"strings"

	"fihealth/internal/clients"
	"fihealth/internal/models"
	"fihealth/internal/providers"
	"fihealth/internal/structures"

	"golang.org/x/sync/errgroup"
)

const defaultMaxParallel = 8

type SubscriptionServiceInterface interface {
	SearchSubscription(ctx context.Context, email string, onDone func())
	Subscribe(ctx context.Context, region string, email string) error
	Unsubscribe(ctx context.Context, region string, email string) error
}

type SubscriptionService struct {
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	store       *models.RegionStore
	client      clients.MailmanClientInterface
	maxParallel int
}

// SearchSubscription probes the mailing list of every region and stores whether email
// is a member. onDone runs once, after the last probe returned.
func (ss *SubscriptionService) SearchSubscription(ctx context.Context, email string, onDone func()) {
	txid := providers.TransactionID(ctx)
	var g errgroup.Group
	g.SetLimit(ss.maxParallel)

	for _, name := range ss.store.Keys() {
		g.Go(func() error {
			subscribed := false
			members, err := ss.client.Members(ctx, name)
			if err != nil {
				ss.metrics.IncUpstreamErrors("mailman")
				ss.logger.Warnf(providers.TypeApp, "[%s] Cannot read members of %s list: %s", txid, name, err)
			} else {
				subscribed = containsFold(members, email)
			}
			ss.store.SetSubscribed(name, subscribed)
			return nil
		})
	}
	_ = g.Wait()

	if onDone != nil {
		onDone()
	}
}

func containsFold(members []string, email string) bool {
	if email == "" {
		return false
	}
	for _, m := range members {
		if strings.EqualFold(m, email) {
			return true
		}
	}
	return false
}

func (ss *SubscriptionService) Subscribe(ctx context.Context, region string, email string) error {
	if !ss.store.Has(region) {
		return models.ErrRegionNotFound
	}
	if err := ss.client.Subscribe(ctx, region, email); err != nil {
		ss.logger.Errorf(providers.TypeApp, "[%s] Subscribe %s to %s failed: %s", providers.TransactionID(ctx), email, region, err)
		return err
	}
	ss.store.SetSubscribed(region, true)
	ss.logger.Infof(providers.TypeApp, "[%s] Subscribed %s to %s", providers.TransactionID(ctx), email, region)
	return nil
}

func (ss *SubscriptionService) Unsubscribe(ctx context.Context, region string, email string) error {
	if !ss.store.Has(region) {
		return models.ErrRegionNotFound
	}
	if err := ss.client.Unsubscribe(ctx, region, email); err != nil {
		ss.logger.Errorf(providers.TypeApp, "[%s] Unsubscribe %s from %s failed: %s", providers.TransactionID(ctx), email, region, err)
		return err
	}
	ss.store.SetSubscribed(region, false)
	ss.logger.Infof(providers.TypeApp, "[%s] Unsubscribed %s from %s", providers.TransactionID(ctx), email, region)
	return nil
}

func NewSubscriptionService(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, store *models.RegionStore, client clients.MailmanClientInterface) SubscriptionServiceInterface {
	maxParallel := conf.Mailman.MaxParallel
	if maxParallel <= 0 {
		maxParallel = defaultMaxParallel
	}
	return &SubscriptionService{
		logger:      logger,
		metrics:     metrics,
		store:       store,
		client:      client,
		maxParallel: maxParallel,
	}
}
