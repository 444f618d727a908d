package controllers

import (
	"net/http"
	"strings"

	"fihealth/internal/models"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// Identity headers set by the authenticating proxy in front of the dashboard.
const (
	HeaderUser  = "X-Auth-User"
	HeaderEmail = "X-Auth-Email"
	HeaderRoles = "X-Auth-Roles"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeRawJSON(w, status, gson)
}

func writeRawJSON(w http.ResponseWriter, status int, gson []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func viewerFromRequest(r *http.Request) *models.Viewer {
	viewer := &models.Viewer{
		DisplayName: strings.TrimSpace(r.Header.Get(HeaderUser)),
		Email:       strings.TrimSpace(r.Header.Get(HeaderEmail)),
	}
	for _, role := range strings.Split(r.Header.Get(HeaderRoles), ",") {
		if role = strings.TrimSpace(role); role != "" {
			viewer.Roles = append(viewer.Roles, role)
		}
	}
	return viewer
}
