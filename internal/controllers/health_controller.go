package controllers

import (
	"fmt"
	"net/http"
	"time"

	"fihealth/internal/models"
)

type HealthController struct {
	store     *models.RegionStore
	startTime time.Time
}

type healthResponse struct {
	Status          string  `json:"status"`
	Uptime          string  `json:"uptime"`
	UptimeSeconds   float64 `json:"uptime_seconds"`
	Regions         int     `json:"regions"`
	ObservedRegions int     `json:"observed_regions"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		Uptime:          formatDuration(uptime),
		UptimeSeconds:   uptime.Seconds(),
		Regions:         hc.store.Len(),
		ObservedRegions: hc.store.ObservedCount(),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(store *models.RegionStore) *HealthController {
	return &HealthController{
		store:     store,
		startTime: time.Now(),
	}
}
