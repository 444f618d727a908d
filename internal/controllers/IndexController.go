package controllers

import (
	"errors"
	"net/http"

	"fihealth/internal/models"
	"fihealth/internal/providers"
	"fihealth/internal/services"

	json "github.com/goccy/go-json"
)

const (
	listingCacheKey    = "regions:anonymous"
	unavailableMessage = "Page cannot be displayed due to a Context Broker error (connection timed out or service was down)."
)

type IndexController struct {
	logger        providers.Logger
	service       services.RegionServiceInterface
	authorization services.AuthorizationServiceInterface
	cache         providers.CacheProviderInterface
}

type indexResponse struct {
	Name    string          `json:"name"`
	Role    string          `json:"role"`
	Regions json.RawMessage `json:"regions"`
}

func NewIndexController(logger providers.Logger, service services.RegionServiceInterface, authorization services.AuthorizationServiceInterface, cache providers.CacheProviderInterface) *IndexController {
	return &IndexController{
		logger:        logger,
		service:       service,
		authorization: authorization,
		cache:         cache,
	}
}

// regions renders the listing for viewer. Only anonymous listings are cached.
func (ic *IndexController) regions(r *http.Request, viewer *models.Viewer) ([]byte, error) {
	anonymous := !viewer.Identified()
	if anonymous {
		if data, ok := ic.cache.Get(listingCacheKey); ok {
			return data, nil
		}
	}

	list, err := ic.service.Regions(r.Context(), viewer)
	if err != nil {
		return nil, err
	}
	gson, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	if anonymous {
		ic.cache.Set(listingCacheKey, gson)
	}
	return gson, nil
}

func (ic *IndexController) fail(w http.ResponseWriter, r *http.Request, err error) {
	txid := providers.TransactionID(r.Context())
	if errors.Is(err, services.ErrServiceUnavailable) {
		ic.logger.Errorf(providers.TypeGet, "[%s] %s", txid, err)
		writeError(w, http.StatusServiceUnavailable, unavailableMessage)
		return
	}
	ic.logger.Errorf(providers.TypeGet, "[%s] Listing failed: %s", txid, err)
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}

// Index returns the viewer and the region listing.
func (ic *IndexController) Index(w http.ResponseWriter, r *http.Request) {
	viewer := viewerFromRequest(r)
	gson, err := ic.regions(r, viewer)
	if err != nil {
		ic.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, indexResponse{
		Name:    viewer.DisplayName,
		Role:    ic.authorization.ParseRoles(viewer.Roles),
		Regions: gson,
	})
}

// Regions returns the region listing alone.
func (ic *IndexController) Regions(w http.ResponseWriter, r *http.Request) {
	gson, err := ic.regions(r, viewerFromRequest(r))
	if err != nil {
		ic.fail(w, r, err)
		return
	}
	writeRawJSON(w, http.StatusOK, gson)
}
