package handlers

import (
	"net/http"
	"time"

	"github.com/vannoorsab/FINAI/internal/api/middleware"
)

// Features reports which optional integrations are configured.
type Features struct {
	Store   string `json:"store"`
	Archive bool   `json:"archive"`
	AI      bool   `json:"ai"`
	Videos  bool   `json:"videos"`
	Notion  bool   `json:"notion"`
	Jobs    bool   `json:"jobs"`
	Cache   bool   `json:"cache"`
}

// Health handles GET /health
func Health(features Features) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"time":     time.Now().UTC().Format(time.RFC3339),
			"features": features,
		})
	}
}
