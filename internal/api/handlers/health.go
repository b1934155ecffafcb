// Package handlers provides HTTP request handlers for the API endpoints.
package handlers

import (
	"net/http"
	"time"

	"github.com/office-admin/dashboard/internal/adminapi"
	"github.com/office-admin/dashboard/internal/calendar"
	"github.com/office-admin/dashboard/internal/notify"
	"github.com/office-admin/dashboard/internal/storage"
	"github.com/office-admin/dashboard/internal/storage/models"
	"github.com/office-admin/dashboard/internal/websocket"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	DBConnected    bool   `json:"db_connected"`
	BackendEnabled bool   `json:"backend_enabled"`
}

// HealthCheck returns a handler that performs a health check.
func HealthCheck(db *storage.DB, version string, admin *adminapi.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dbConnected := db.PingContext(r.Context()) == nil

		status := "healthy"
		code := http.StatusOK
		if !dbConnected {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		writeJSON(w, code, HealthResponse{
			Status:         status,
			Version:        version,
			DBConnected:    dbConnected,
			BackendEnabled: admin.Enabled(),
		})
	}
}

// StatusResponse represents the system status response.
type StatusResponse struct {
	SchemaVersion    int            `json:"schema_version"`
	Collections      map[string]int `json:"collections"`
	Screens          []string       `json:"screens"`
	WebSocketClients int            `json:"websocket_clients"`
	ActiveToasts     int            `json:"active_toasts"`
	NextSyncAt       string         `json:"next_sync_at,omitempty"`
	LastSyncAt       string         `json:"last_sync_at,omitempty"`
}

// StatusDeps groups what the status endpoint reports on.
type StatusDeps struct {
	DB        *storage.DB
	Store     *storage.StoreRepository
	Hub       *websocket.Hub
	Registry  *calendar.Registry
	Queue     *notify.Queue
	Scheduler *calendar.Scheduler
}

// Status returns a handler that provides system status information.
func Status(deps StatusDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		version, _ := deps.DB.SchemaVersion(ctx)

		counts := make(map[string]int, len(models.Collections))
		for _, c := range models.Collections {
			items, err := deps.Store.List(ctx, c)
			if err != nil {
				continue
			}
			counts[c] = len(items)
		}

		response := StatusResponse{
			SchemaVersion:    version,
			Collections:      counts,
			Screens:          deps.Registry.Screens(),
			WebSocketClients: deps.Hub.ClientCount(),
			ActiveToasts:     deps.Queue.Len(),
		}
		if deps.Scheduler != nil {
			if next := deps.Scheduler.NextSync(); next != nil {
				response.NextSyncAt = next.Format(time.RFC3339)
			}
			if last := deps.Scheduler.LastSync(); last != nil {
				response.LastSyncAt = last.SyncedAt.Format(time.RFC3339)
			}
		}

		writeJSON(w, http.StatusOK, response)
	}
}
