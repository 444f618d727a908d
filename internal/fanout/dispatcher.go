package fanout

import (
	"context"
	"sync"
	"time"

	"fihealth/internal/clients"
	"fihealth/internal/fanout/interfaces"
	"fihealth/internal/models"
	"fihealth/internal/providers"
	"fihealth/internal/structures"
)

const defaultDeliveryTimeout = 10 * time.Second

// Delivery is the pending outcome of one outbound notification.
type Delivery struct {
	Kind    models.NotificationKind
	Channel string
	Region  string
	done    chan struct{}
	err     error
}

func newDelivery(kind models.NotificationKind, channel string, region string) *Delivery {
	return &Delivery{Kind: kind, Channel: channel, Region: region, done: make(chan struct{})}
}

func (d *Delivery) finish(err error) {
	d.err = err
	close(d.done)
}

func (d *Delivery) Done() <-chan struct{} {
	return d.done
}

// Wait blocks until the delivery ended and returns its error.
func (d *Delivery) Wait() error {
	<-d.done
	return d.err
}

// Err is nil while the delivery is still running.
func (d *Delivery) Err() error {
	select {
	case <-d.done:
		return d.err
	default:
		return nil
	}
}

type DispatcherInterface interface {
	Dispatch(ctx context.Context, kind models.NotificationKind, record models.RegionRecord) (*Delivery, bool)
	Drain(ctx context.Context) error
}

type Dispatcher struct {
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	notifiers map[models.NotificationKind]interfaces.NotifierInterface
	wg        sync.WaitGroup
}

func NewDispatcher(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, keystone clients.KeystoneClientInterface, monasca clients.MonascaClientInterface, mailman clients.MailmanClientInterface) DispatcherInterface {
	return NewDispatcherWithNotifiers(logger, metrics,
		NewMonascaNotifier(conf, keystone, monasca),
		NewMailmanNotifier(conf, mailman),
	)
}

// NewDispatcherWithNotifiers routes value notifications to valueNotifier and change
// notifications to changeNotifier.
func NewDispatcherWithNotifiers(logger providers.Logger, metrics providers.MetricsProviderInterface, valueNotifier interfaces.NotifierInterface, changeNotifier interfaces.NotifierInterface) *Dispatcher {
	return &Dispatcher{
		logger:  logger,
		metrics: metrics,
		notifiers: map[models.NotificationKind]interfaces.NotifierInterface{
			models.KindValue:  valueNotifier,
			models.KindChange: changeNotifier,
		},
	}
}

// Dispatch starts the delivery of record to the channel bound to kind. It returns
// false when nothing was sent: unknown kind, or a record whose status is N/A or
// was never reported.
// The delivery outlives ctx; only its transaction id is carried over.
func (d *Dispatcher) Dispatch(ctx context.Context, kind models.NotificationKind, record models.RegionRecord) (*Delivery, bool) {
	txid := providers.TransactionID(ctx)
	if record.Status == "" || record.Status == models.StatusOther {
		d.logger.Debugf(providers.TypeFanout, "[%s] Region %s status %q is not definite, no %s notification", txid, record.Node, record.Status, kind)
		return nil, false
	}
	notifier, ok := d.notifiers[kind]
	if !ok || notifier == nil {
		d.logger.Warnf(providers.TypeFanout, "[%s] No channel for %q notifications", txid, kind)
		return nil, false
	}

	timeout := notifier.Timeout()
	if timeout <= 0 {
		timeout = defaultDeliveryTimeout
	}
	delivery := newDelivery(kind, notifier.Channel(), record.Node)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		dctx, cancel := context.WithTimeout(providers.WithTransactionID(context.Background(), txid), timeout)
		defer cancel()

		started := time.Now()
		err := notifier.Notify(dctx, &record)
		d.metrics.ObserveDeliveryDuration(delivery.Channel, time.Since(started))

		if err != nil {
			d.metrics.IncDeliveriesTotal(delivery.Channel, "error")
			d.logger.Errorf(providers.TypeFanout, "[%s] Could not notify %s of region %s status %s: %s", txid, delivery.Channel, record.Node, record.Status, err)
		} else {
			d.metrics.IncDeliveriesTotal(delivery.Channel, "ok")
			d.logger.Infof(providers.TypeFanout, "[%s] Notified %s of region %s status %s", txid, delivery.Channel, record.Node, record.Status)
		}
		delivery.finish(err)
	}()
	return delivery, true
}

// Drain waits for in-flight deliveries or until ctx is done.
func (d *Dispatcher) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
