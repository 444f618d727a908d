package services

import (
	"strings"
	"unicode"

	"fihealth/internal/models"
	"fihealth/internal/structures"
)

var rolePrefixes = []string{"admin-", "superuser-"}

type AuthorizationServiceInterface interface {
	AddAuthorized(displayName string)
	IsAuthorized(region string, displayName string) bool
	ParseRoles(roles []string) string
}

type allowEntry struct {
	region   string
	username string
}

type AuthorizationService struct {
	store     *models.RegionStore
	allowList []allowEntry
}

// NormalizeRegionName drops digits and lower-cases, so "RegionOne1" becomes "regionone".
func NormalizeRegionName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, name)
}

func viewerIdentity(displayName string) string {
	identity := strings.ToLower(displayName)
	for _, prefix := range rolePrefixes {
		if strings.HasPrefix(identity, prefix) {
			return strings.TrimPrefix(identity, prefix)
		}
	}
	return identity
}

// IsAuthorized applies the naming rule first and the configured allow-list second.
func (as *AuthorizationService) IsAuthorized(region string, displayName string) bool {
	if displayName == "" {
		return false
	}
	normalized := NormalizeRegionName(region)
	if normalized == viewerIdentity(displayName) {
		return true
	}
	username := strings.ToLower(displayName)
	for _, entry := range as.allowList {
		if entry.region == normalized && entry.username == username {
			return true
		}
	}
	return false
}

// AddAuthorized writes the authorized flag of every stored region for displayName.
func (as *AuthorizationService) AddAuthorized(displayName string) {
	for _, name := range as.store.Keys() {
		as.store.SetAuthorized(name, as.IsAuthorized(name, displayName))
	}
}

func (as *AuthorizationService) ParseRoles(roles []string) string {
	role := ""
	for _, r := range roles {
		switch strings.TrimSpace(r) {
		case "Superuser":
			return "superuser"
		case "Admin":
			role = "admin"
		}
	}
	return role
}

func NewAuthorizationService(conf *structures.Config, store *models.RegionStore) AuthorizationServiceInterface {
	allowList := make([]allowEntry, 0, len(conf.IDM.RegionsAuthorized))
	for _, pair := range conf.IDM.RegionsAuthorized {
		for region, username := range pair {
			allowList = append(allowList, allowEntry{
				region:   NormalizeRegionName(region),
				username: strings.ToLower(username),
			})
		}
	}
	return &AuthorizationService{store: store, allowList: allowList}
}
