package fanout

import (
	"context"
	"fmt"
	"time"

	"fihealth/internal/clients"
	"fihealth/internal/fanout/interfaces"
	"fihealth/internal/models"
	"fihealth/internal/structures"
)

const (
	ChannelMonasca = "Monasca"
	MetricName     = "region.sanity_status"
)

type MonascaNotifier struct {
	conf     *structures.Config
	keystone clients.KeystoneClientInterface
	client   clients.MonascaClientInterface
}

func NewMonascaNotifier(conf *structures.Config, keystone clients.KeystoneClientInterface, client clients.MonascaClientInterface) interfaces.NotifierInterface {
	return &MonascaNotifier{conf: conf, keystone: keystone, client: client}
}

func (n *MonascaNotifier) Channel() string {
	return ChannelMonasca
}

// Timeout covers the token request and the metric post, each bounded by its own setting.
func (n *MonascaNotifier) Timeout() time.Duration {
	return n.conf.Monasca.KeystoneTimeout + n.conf.Monasca.Timeout
}

// BuildMetric maps a record to a gauge whose value is the status index in [NOK, OK, POK].
func BuildMetric(record *models.RegionRecord) *clients.Metric {
	return &clients.Metric{
		Name: MetricName,
		Dimensions: map[string]string{
			"region":      record.Node,
			"unit":        "status",
			"resource_id": record.Node,
			"source":      "fihealth",
			"type":        "gauge",
		},
		Timestamp: record.TimestampMillis,
		Value:     float64(models.StatusOrdinal(record.Status)),
		ValueMeta: map[string]string{
			"status":       record.Status,
			"elapsed_time": record.ElapsedTimeMillis.String(),
		},
	}
}

// Notify fails with ErrAuthTokenUnavailable without calling Monasca when no token is issued.
func (n *MonascaNotifier) Notify(ctx context.Context, record *models.RegionRecord) error {
	token, err := n.keystone.Token(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAuthTokenUnavailable, err)
	}
	if n.conf.Monasca.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.conf.Monasca.Timeout)
		defer cancel()
	}
	return deliveryError(n.client.PostMetric(ctx, token, BuildMetric(record)))
}
