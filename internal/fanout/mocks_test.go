package fanout

import (
	"context"
	"sync"
	"time"

	"fihealth/internal/clients"
	"fihealth/internal/models"
)

type mockNotifier struct {
	mu      sync.Mutex
	channel string
	timeout time.Duration
	err     error
	block   bool
	calls   []models.RegionRecord
}

func (m *mockNotifier) Channel() string        { return m.channel }
func (m *mockNotifier) Timeout() time.Duration { return m.timeout }

func (m *mockNotifier) Notify(ctx context.Context, record *models.RegionRecord) error {
	m.mu.Lock()
	m.calls = append(m.calls, *record)
	m.mu.Unlock()
	if m.block {
		<-ctx.Done()
		return deliveryError(ctx.Err())
	}
	return m.err
}

func (m *mockNotifier) Calls() []models.RegionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.RegionRecord(nil), m.calls...)
}

type mockKeystone struct {
	token string
	err   error
	delay time.Duration
	calls int
}

func (m *mockKeystone) Token(ctx context.Context) (string, error) {
	m.calls++
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return m.token, m.err
}

type mockMonasca struct {
	err       error
	token     string
	remaining time.Duration
	metrics   []*clients.Metric
}

func (m *mockMonasca) PostMetric(ctx context.Context, token string, metric *clients.Metric) error {
	if deadline, ok := ctx.Deadline(); ok {
		m.remaining = time.Until(deadline)
	}
	m.token = token
	m.metrics = append(m.metrics, metric)
	return m.err
}

type mockMailman struct {
	err      error
	region   string
	messages []*clients.MailMessage
}

func (m *mockMailman) Members(_ context.Context, _ string) ([]string, error) { return nil, nil }
func (m *mockMailman) Subscribe(_ context.Context, _ string, _ string) error  { return nil }
func (m *mockMailman) Unsubscribe(_ context.Context, _ string, _ string) error {
	return nil
}
func (m *mockMailman) SendMail(_ context.Context, region string, msg *clients.MailMessage) error {
	m.region = region
	m.messages = append(m.messages, msg)
	return m.err
}
