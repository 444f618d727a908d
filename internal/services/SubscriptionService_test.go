package services

import (
	"context"
	"errors"
	"sort"
	"testing"

	"fihealth/internal/models"
	"fihealth/internal/structures"
	"fihealth/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func newSubscriptionService(mailman *mockMailman) (SubscriptionServiceInterface, *models.RegionStore, *testutil.MockMetrics) {
	store := models.NewRegionStore()
	store.Init([]string{"Spain2", "Trento", "Berlin2"})
	metrics := testutil.NewMockMetrics()
	conf := &structures.Config{Mailman: structures.MailmanConfig{MaxParallel: 2}}
	return NewSubscriptionService(conf, &testutil.MockLogger{}, metrics, store, mailman), store, metrics
}

func TestSubscriptionService_SearchSubscription(t *testing.T) {
	mailman := &mockMailman{
		members: map[string][]string{
			"Spain2":  {"other@example.com", "User@Example.com"},
			"Trento":  {"other@example.com"},
			"Berlin2": {"user@example.com"},
		},
		errs: map[string]error{"Berlin2": errors.New("boom")},
	}
	svc, store, metrics := newSubscriptionService(mailman)

	var done atomic.Int32
	svc.SearchSubscription(context.Background(), "user@example.com", func() {
		done.Inc()
	})

	assert.Equal(t, int32(1), done.Load())
	probes := append([]string(nil), mailman.probes...)
	sort.Strings(probes)
	assert.Equal(t, []string{"Berlin2", "Spain2", "Trento"}, probes)

	spain, _ := store.Get("Spain2")
	trento, _ := store.Get("Trento")
	berlin, _ := store.Get("Berlin2")
	assert.True(t, spain.Subscribed)
	assert.False(t, trento.Subscribed)
	assert.False(t, berlin.Subscribed, "probe error means not subscribed")
	assert.Equal(t, 1, metrics.Upstream["mailman"])
}

func TestSubscriptionService_OnDoneSeesEveryProbe(t *testing.T) {
	mailman := &mockMailman{members: map[string][]string{
		"Spain2": {"a@example.com"}, "Trento": {"a@example.com"}, "Berlin2": {"a@example.com"},
	}}
	svc, store, _ := newSubscriptionService(mailman)

	var subscribedAtDone int
	svc.SearchSubscription(context.Background(), "a@example.com", func() {
		for _, r := range store.List() {
			if r.Subscribed {
				subscribedAtDone++
			}
		}
	})
	assert.Equal(t, 3, subscribedAtDone)
}

func TestSubscriptionService_EmptyStoreStillCallsDone(t *testing.T) {
	store := models.NewRegionStore()
	svc := NewSubscriptionService(&structures.Config{}, &testutil.MockLogger{}, testutil.NewMockMetrics(), store, &mockMailman{})
	called := false
	svc.SearchSubscription(context.Background(), "a@example.com", func() { called = true })
	assert.True(t, called)
}

func TestSubscriptionService_SubscribeAndUnsubscribe(t *testing.T) {
	mailman := &mockMailman{}
	svc, store, _ := newSubscriptionService(mailman)

	require.NoError(t, svc.Subscribe(context.Background(), "Trento", "a@example.com"))
	r, _ := store.Get("Trento")
	assert.True(t, r.Subscribed)

	require.NoError(t, svc.Unsubscribe(context.Background(), "Trento", "a@example.com"))
	r, _ = store.Get("Trento")
	assert.False(t, r.Subscribed)
	assert.Equal(t, []string{"subscribe:Trento:a@example.com", "unsubscribe:Trento:a@example.com"}, mailman.actions)
}

func TestSubscriptionService_SubscribeUnknownRegion(t *testing.T) {
	mailman := &mockMailman{}
	svc, _, _ := newSubscriptionService(mailman)

	assert.ErrorIs(t, svc.Subscribe(context.Background(), "Atlantis", "a@example.com"), models.ErrRegionNotFound)
	assert.ErrorIs(t, svc.Unsubscribe(context.Background(), "Atlantis", "a@example.com"), models.ErrRegionNotFound)
	assert.Empty(t, mailman.actions)
}

func TestSubscriptionService_SubscribeFailure(t *testing.T) {
	mailman := &mockMailman{subErr: errors.New("list closed")}
	svc, store, _ := newSubscriptionService(mailman)

	assert.Error(t, svc.Subscribe(context.Background(), "Trento", "a@example.com"))
	r, _ := store.Get("Trento")
	assert.False(t, r.Subscribed)
}
