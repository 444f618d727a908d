package services

import (
	"testing"

	"fihealth/internal/models"
	"fihealth/internal/structures"

	"github.com/stretchr/testify/assert"
)

func newAuthorizationService(allow ...map[string]string) (AuthorizationServiceInterface, *models.RegionStore) {
	store := models.NewRegionStore()
	store.Init([]string{"RegionOne", "RegionOne1", "RegionTwo", "Spain2"})
	conf := &structures.Config{IDM: structures.IDMConfig{RegionsAuthorized: allow}}
	return NewAuthorizationService(conf, store), store
}

func authorizedRegions(store *models.RegionStore) []string {
	var names []string
	for _, r := range store.List() {
		if r.Authorized {
			names = append(names, r.Node)
		}
	}
	return names
}

func TestNormalizeRegionName(t *testing.T) {
	assert.Equal(t, "regionone", NormalizeRegionName("RegionOne1"))
	assert.Equal(t, "spain", NormalizeRegionName("Spain2"))
	assert.Equal(t, "region", NormalizeRegionName("Re9gi0on"))
}

func TestAuthorizationService_NamingRule(t *testing.T) {
	svc, store := newAuthorizationService()
	svc.AddAuthorized("admin-regionone")
	assert.Equal(t, []string{"RegionOne", "RegionOne1"}, authorizedRegions(store))
}

func TestAuthorizationService_PlainAndSuperuserNames(t *testing.T) {
	svc, _ := newAuthorizationService()
	assert.True(t, svc.IsAuthorized("Spain2", "Spain"))
	assert.True(t, svc.IsAuthorized("Spain2", "superuser-spain"))
	assert.False(t, svc.IsAuthorized("Spain2", "admin-spainx"))
	assert.False(t, svc.IsAuthorized("Spain2", ""))
}

func TestAuthorizationService_AllowList(t *testing.T) {
	svc, store := newAuthorizationService(map[string]string{"Spain2": "jdoe"}, map[string]string{"RegionTwo": "someone"})
	svc.AddAuthorized("JDoe")
	assert.Equal(t, []string{"Spain2"}, authorizedRegions(store))
}

func TestAuthorizationService_RecomputedPerViewer(t *testing.T) {
	svc, store := newAuthorizationService()
	svc.AddAuthorized("admin-regionone")
	svc.AddAuthorized("admin-regiontwo")
	assert.Equal(t, []string{"RegionTwo"}, authorizedRegions(store))
}

func TestAuthorizationService_ParseRoles(t *testing.T) {
	svc, _ := newAuthorizationService()
	assert.Equal(t, "superuser", svc.ParseRoles([]string{"Admin", "Superuser"}))
	assert.Equal(t, "admin", svc.ParseRoles([]string{"Member", "Admin"}))
	assert.Equal(t, "", svc.ParseRoles([]string{"Member"}))
	assert.Equal(t, "", svc.ParseRoles(nil))
}
