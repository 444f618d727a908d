package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fihealth/internal/clients"
	"fihealth/internal/models"
	"fihealth/internal/services"
	"fihealth/internal/structures"
	"fihealth/internal/testutil"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndexController(svc *mockRegionService) (*IndexController, *testutil.MockCache) {
	cache := testutil.NewMockCache()
	auth := services.NewAuthorizationService(&structures.Config{}, models.NewRegionStore())
	return NewIndexController(&testutil.MockLogger{}, svc, auth, cache), cache
}

func sampleRegions() []models.RegionRecord {
	spain := models.NewRegionRecord("Spain2")
	spain.Status = models.StatusOK
	trento := models.NewRegionRecord("Trento")
	return []models.RegionRecord{spain, trento}
}

func TestIndexController_AnonymousIndex(t *testing.T) {
	svc := &mockRegionService{regions: sampleRegions()}
	ic, _ := newIndexController(svc)

	rr := httptest.NewRecorder()
	ic.Index(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Name    string                   `json:"name"`
		Role    string                   `json:"role"`
		Regions []map[string]interface{} `json:"regions"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "", resp.Name)
	require.Len(t, resp.Regions, 2)
	assert.Equal(t, "Spain2", resp.Regions[0]["node"])
	assert.Equal(t, "OK", resp.Regions[0]["status"])
	assert.Nil(t, resp.Regions[1]["elapsedTimeMillis"])
	assert.Equal(t, "NaNh, NaNm, NaNs", resp.Regions[1]["elapsedTime"])
}

func TestIndexController_AnonymousListingIsCached(t *testing.T) {
	svc := &mockRegionService{regions: sampleRegions()}
	ic, cache := newIndexController(svc)

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		ic.Regions(rr, httptest.NewRequest(http.MethodGet, "/regions", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	}
	assert.Equal(t, 1, svc.calls)
	_, ok := cache.Get(listingCacheKey)
	assert.True(t, ok)
}

func TestIndexController_IdentifiedViewerBypassesCache(t *testing.T) {
	svc := &mockRegionService{regions: sampleRegions()}
	ic, cache := newIndexController(svc)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderUser, "admin-spain")
		req.Header.Set(HeaderEmail, "admin@example.com")
		req.Header.Set(HeaderRoles, "Member, Admin")
		rr := httptest.NewRecorder()
		ic.Index(rr, req)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "admin-spain", resp["name"])
		assert.Equal(t, "admin", resp["role"])
	}
	assert.Equal(t, 2, svc.calls)
	assert.Equal(t, "admin@example.com", svc.viewers[0].Email)
	assert.Equal(t, []string{"Member", "Admin"}, svc.viewers[0].Roles)
	_, ok := cache.Get(listingCacheKey)
	assert.False(t, ok)
}

func TestIndexController_ServiceUnavailable(t *testing.T) {
	svc := &mockRegionService{err: fmt.Errorf("%w: %w", services.ErrServiceUnavailable, clients.ErrUpstreamTimeout)}
	ic, _ := newIndexController(svc)

	rr := httptest.NewRecorder()
	ic.Index(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "Context Broker error")
}

func TestIndexController_InternalError(t *testing.T) {
	svc := &mockRegionService{err: errors.New("boom")}
	ic, _ := newIndexController(svc)

	rr := httptest.NewRecorder()
	ic.Regions(rr, httptest.NewRequest(http.MethodGet, "/regions", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
