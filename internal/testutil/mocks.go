package testutil

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"fihealth/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (e LogEntry) Message() string {
	return fmt.Sprintf(e.Format, e.Args...)
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Contains reports whether a message of the given level contains substr.
func (m *MockLogger) Contains(level string, substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level && strings.Contains(e.Message(), substr) {
			return true
		}
	}
	return false
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
	Dels int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Dels++
	delete(m.Data, key)
}

// MockMetrics implements providers.MetricsProviderInterface and counts labelled events.
type MockMetrics struct {
	mu            sync.Mutex
	Requests      map[string]int
	CacheHits     int
	CacheMisses   int
	Notifications map[string]int
	Deliveries    map[string]int
	Upstream      map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Requests:      map[string]int{},
		Notifications: map[string]int{},
		Deliveries:    map[string]int{},
		Upstream:      map[string]int{},
	}
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests[fmt.Sprintf("%s:%d", endpoint, status)]++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncNotificationsTotal(kind string, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications[kind+":"+outcome]++
}

func (m *MockMetrics) IncDeliveriesTotal(channel string, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deliveries[channel+":"+outcome]++
}

func (m *MockMetrics) ObserveDeliveryDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncUpstreamErrors(upstream string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Upstream[upstream]++
}

// Delivery returns the counter for channel:outcome.
func (m *MockMetrics) Delivery(channel string, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Deliveries[channel+":"+outcome]
}

func (m *MockMetrics) Notification(kind string, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Notifications[kind+":"+outcome]
}
