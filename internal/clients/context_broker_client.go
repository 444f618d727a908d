package clients

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"fihealth/internal/models"
	"fihealth/internal/providers"
	"fihealth/internal/structures"

	json "github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
)

type ContextBrokerClientInterface interface {
	QueryRegions(ctx context.Context) (*models.ContextResponse, error)
}

type ContextBrokerClient struct {
	conf   *structures.ContextBrokerConfig
	logger providers.Logger
	client *retryablehttp.Client
	url    string
}

func NewContextBrokerClient(conf *structures.Config, logger providers.Logger) ContextBrokerClientInterface {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = conf.Cbroker.RetryMax
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &ContextBrokerClient{
		conf:   &conf.Cbroker,
		logger: logger,
		client: client,
		url:    structures.BaseURL(conf.Cbroker.Host, conf.Cbroker.Port) + conf.Cbroker.Path,
	}
}

// QueryRegions asks the context broker for every region entity. The call is
// bounded by cbroker.timeout, retries included.
func (c *ContextBrokerClient) QueryRegions(ctx context.Context) (*models.ContextResponse, error) {
	txid := providers.TransactionID(ctx)
	payload, err := json.Marshal(models.NewRegionQuery())
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.conf.Timeout)
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(providers.TransactionHeader, txid)

	resp, err := c.client.Do(req)
	if err != nil {
		err = wrapTransportError(err)
		c.logger.Errorf(providers.TypeApp, "[%s] Query to Context Broker failed: %s", txid, err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapTransportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Errorf(providers.TypeApp, "[%s] Context Broker answered %d: %s", txid, resp.StatusCode, body)
		return nil, statusError(resp.StatusCode)
	}

	var result models.ContextResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamMalformed, err)
	}
	c.logger.Debugf(providers.TypeApp, "[%s] Context Broker returned %d entities", txid, len(result.ContextResponses))
	return &result, nil
}
