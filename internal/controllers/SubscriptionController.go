package controllers

import (
	"errors"
	"net/http"

	"fihealth/internal/models"
	"fihealth/internal/providers"
	"fihealth/internal/services"
)

type SubscriptionController struct {
	logger  providers.Logger
	service services.SubscriptionServiceInterface
}

type subscriptionResponse struct {
	Region     string `json:"region"`
	Subscribed bool   `json:"subscribed"`
}

func NewSubscriptionController(logger providers.Logger, service services.SubscriptionServiceInterface) *SubscriptionController {
	return &SubscriptionController{
		logger:  logger,
		service: service,
	}
}

func (sc *SubscriptionController) Subscribe(w http.ResponseWriter, r *http.Request) {
	sc.handle(w, r, true)
}

func (sc *SubscriptionController) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	sc.handle(w, r, false)
}

func (sc *SubscriptionController) handle(w http.ResponseWriter, r *http.Request, subscribe bool) {
	viewer := viewerFromRequest(r)
	if !viewer.Identified() || viewer.Email == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	region := r.URL.Query().Get("region")
	if region == "" {
		writeError(w, http.StatusBadRequest, "missing region")
		return
	}

	var err error
	if subscribe {
		err = sc.service.Subscribe(r.Context(), region, viewer.Email)
	} else {
		err = sc.service.Unsubscribe(r.Context(), region, viewer.Email)
	}
	switch {
	case errors.Is(err, models.ErrRegionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		sc.logger.Errorf(providers.TypeGet, "[%s] Mailing list update failed: %s", providers.TransactionID(r.Context()), err)
		writeError(w, http.StatusBadGateway, "mailing list unavailable")
	default:
		writeJSON(w, http.StatusOK, subscriptionResponse{Region: region, Subscribed: subscribe})
	}
}
