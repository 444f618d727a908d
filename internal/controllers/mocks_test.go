package controllers

import (
	"context"
	"sync"

	"fihealth/internal/fanout"
	"fihealth/internal/models"
)

type dispatched struct {
	kind   models.NotificationKind
	record models.RegionRecord
}

type mockDispatcher struct {
	mu    sync.Mutex
	calls []dispatched
}

func (m *mockDispatcher) Dispatch(_ context.Context, kind models.NotificationKind, record models.RegionRecord) (*fanout.Delivery, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if record.Status == models.StatusOther {
		return nil, false
	}
	m.calls = append(m.calls, dispatched{kind: kind, record: record})
	return nil, true
}

func (m *mockDispatcher) Drain(_ context.Context) error { return nil }

type mockRegionService struct {
	regions []models.RegionRecord
	err     error
	calls   int
	viewers []*models.Viewer
}

func (m *mockRegionService) Refresh(_ context.Context) error { return m.err }

func (m *mockRegionService) Regions(_ context.Context, viewer *models.Viewer) ([]models.RegionRecord, error) {
	m.calls++
	m.viewers = append(m.viewers, viewer)
	return m.regions, m.err
}

type mockSubscriptionService struct {
	err     error
	actions []string
}

func (m *mockSubscriptionService) SearchSubscription(_ context.Context, _ string, onDone func()) {
	onDone()
}

func (m *mockSubscriptionService) Subscribe(_ context.Context, region string, email string) error {
	m.actions = append(m.actions, "subscribe:"+region+":"+email)
	return m.err
}

func (m *mockSubscriptionService) Unsubscribe(_ context.Context, region string, email string) error {
	m.actions = append(m.actions, "unsubscribe:"+region+":"+email)
	return m.err
}
