package services

import (
	"context"
	"sync"

	"fihealth/internal/clients"
	"fihealth/internal/models"
)

type mockBroker struct {
	resp *models.ContextResponse
	err  error
}

func (m *mockBroker) QueryRegions(_ context.Context) (*models.ContextResponse, error) {
	return m.resp, m.err
}

type mockJenkins struct {
	progress map[string]bool
	err      error
}

func (m *mockJenkins) JobsInProgress(_ context.Context) (map[string]bool, error) {
	return m.progress, m.err
}

type mockMailman struct {
	mu      sync.Mutex
	members map[string][]string
	errs    map[string]error
	probes  []string
	subErr  error
	actions []string
}

func (m *mockMailman) Members(_ context.Context, region string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.probes = append(m.probes, region)
	if err := m.errs[region]; err != nil {
		return nil, err
	}
	return m.members[region], nil
}

func (m *mockMailman) Subscribe(_ context.Context, region string, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, "subscribe:"+region+":"+email)
	return m.subErr
}

func (m *mockMailman) Unsubscribe(_ context.Context, region string, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, "unsubscribe:"+region+":"+email)
	return m.subErr
}

func (m *mockMailman) SendMail(_ context.Context, _ string, _ *clients.MailMessage) error {
	return nil
}

func element(id string, attrs ...models.ContextAttribute) models.ContextResponseItem {
	return models.ContextResponseItem{ContextElement: models.ContextElement{ID: id, Type: models.EntityTypeRegion, Attributes: attrs}}
}

func attr(name string, value string) models.ContextAttribute {
	return models.ContextAttribute{Name: name, Value: []byte(`"` + value + `"`)}
}
