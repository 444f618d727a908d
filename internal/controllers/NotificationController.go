package controllers

import (
	"errors"
	"io"
	"net/http"

	"fihealth/internal/fanout"
	"fihealth/internal/models"
	"fihealth/internal/providers"
	"fihealth/internal/services"
)

type NotificationController struct {
	logger     providers.Logger
	service    services.NotificationServiceInterface
	dispatcher fanout.DispatcherInterface
	cache      providers.CacheProviderInterface
	metrics    providers.MetricsProviderInterface
}

func NewNotificationController(logger providers.Logger, service services.NotificationServiceInterface, dispatcher fanout.DispatcherInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) *NotificationController {
	return &NotificationController{
		logger:     logger,
		service:    service,
		dispatcher: dispatcher,
		cache:      cache,
		metrics:    metrics,
	}
}

// SanityStatus receives every sanity check result.
func (nc *NotificationController) SanityStatus(w http.ResponseWriter, r *http.Request) {
	nc.receive(w, r, models.KindValue)
}

// ChangeSanityStatus receives a result only when the region status changed.
func (nc *NotificationController) ChangeSanityStatus(w http.ResponseWriter, r *http.Request) {
	nc.receive(w, r, models.KindChange)
}

func (nc *NotificationController) receive(w http.ResponseWriter, r *http.Request, kind models.NotificationKind) {
	ctx := r.Context()
	txid := providers.TransactionID(ctx)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err != nil {
		nc.metrics.IncNotificationsTotal(string(kind), "bad_request")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := nc.service.ExtractSingleEntity(ctx, body)
	switch {
	case errors.Is(err, services.ErrMalformedPayload):
		nc.metrics.IncNotificationsTotal(string(kind), "bad_request")
		nc.logger.Warnf(providers.TypePost, "[%s] Rejected %s notification: %s", txid, kind, err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		nc.metrics.IncNotificationsTotal(string(kind), "ignored")
		nc.logger.Infof(providers.TypePost, "[%s] Ignored %s notification: %s", txid, kind, err)
		w.WriteHeader(http.StatusOK)
		return
	}

	nc.cache.Del(listingCacheKey)
	nc.metrics.IncNotificationsTotal(string(kind), "ok")
	nc.logger.Infof(providers.TypePost, "[%s] Region %s is %s (%s)", txid, record.Node, record.Status, kind)
	w.WriteHeader(http.StatusOK)

	nc.dispatcher.Dispatch(ctx, kind, *record)
}
