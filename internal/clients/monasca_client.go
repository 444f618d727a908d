package clients

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"fihealth/internal/providers"
	"fihealth/internal/structures"

	json "github.com/goccy/go-json"
)

const AuthTokenHeader = "X-Auth-Token"

// Metric is a single Monasca measurement.
type Metric struct {
	Name       string            `json:"name"`
	Dimensions map[string]string `json:"dimensions"`
	Timestamp  int64             `json:"timestamp"`
	Value      float64           `json:"value"`
	ValueMeta  map[string]string `json:"value_meta"`
}

type MonascaClientInterface interface {
	PostMetric(ctx context.Context, token string, metric *Metric) error
}

type MonascaClient struct {
	client *http.Client
	url    string
}

func NewMonascaClient(conf *structures.Config) MonascaClientInterface {
	return &MonascaClient{
		client: &http.Client{},
		url:    structures.BaseURL(conf.Monasca.Host, conf.Monasca.Port) + "/v2.0/metrics",
	}
}

// PostMetric succeeds only on 204 No Content.
func (m *MonascaClient) PostMetric(ctx context.Context, token string, metric *Metric) error {
	body, err := json.Marshal(metric)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(AuthTokenHeader, token)
	req.Header.Set(providers.TransactionHeader, providers.TransactionID(ctx))

	resp, err := m.client.Do(req)
	if err != nil {
		return wrapTransportError(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusNoContent {
		return statusError(resp.StatusCode)
	}
	return nil
}
