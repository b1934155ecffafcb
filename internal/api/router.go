// Package api provides HTTP routing and handlers for the REST API.
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/office-admin/dashboard/internal/adminapi"
	"github.com/office-admin/dashboard/internal/api/handlers"
	"github.com/office-admin/dashboard/internal/api/middleware"
	"github.com/office-admin/dashboard/internal/calendar"
	"github.com/office-admin/dashboard/internal/notify"
	"github.com/office-admin/dashboard/internal/storage"
	"github.com/office-admin/dashboard/internal/websocket"
)

// Services are the long-lived components the handlers share.
type Services struct {
	DB        *storage.DB
	Store     *storage.StoreRepository
	Hub       *websocket.Hub
	Registry  *calendar.Registry
	Queue     *notify.Queue
	Admin     *adminapi.Client
	Scheduler *calendar.Scheduler

	Location   *time.Location
	BadgeLimit int
	PageSize   int
	StaticDir  string
	Version    string
}

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(s Services) *mux.Router {
	if s.Location == nil {
		s.Location = time.Local
	}

	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logging)
	r.Use(middleware.ErrorRecovery)

	// API subrouter
	api := r.PathPrefix("/api").Subrouter()

	// Health and status endpoints
	api.HandleFunc("/health", handlers.HealthCheck(s.DB, s.Version, s.Admin)).Methods("GET")
	api.HandleFunc("/status", handlers.Status(handlers.StatusDeps{
		DB:        s.DB,
		Store:     s.Store,
		Hub:       s.Hub,
		Registry:  s.Registry,
		Queue:     s.Queue,
		Scheduler: s.Scheduler,
	})).Methods("GET")

	// WebSocket endpoint
	api.HandleFunc("/ws", handlers.WebSocketUpgrade(s.Hub)).Methods("GET")

	// Calendar endpoints
	api.HandleFunc("/calendar/grid", handlers.CalendarGrid(s.Store, s.Registry, s.Location, s.BadgeLimit)).Methods("GET")
	api.HandleFunc("/calendar/year", handlers.CalendarYear(s.Store, s.Location, s.BadgeLimit)).Methods("GET")
	api.HandleFunc("/calendar/days/{date}", handlers.CalendarDay(s.Store)).Methods("GET")
	api.HandleFunc("/calendar/categories", handlers.CalendarCategories()).Methods("GET")
	api.HandleFunc("/calendar.ics", handlers.CalendarICS(s.Store, s.Location)).Methods("GET")
	api.HandleFunc("/calendar/sync", handlers.SyncCalendar(s.Scheduler, s.Queue)).Methods("POST")

	// Screen selection endpoints
	screens := handlers.ScreenDeps{
		Registry: s.Registry,
		Store:    s.Store,
		Queue:    s.Queue,
		Admin:    s.Admin,
		Location: s.Location,
	}
	api.HandleFunc("/screens/{screen}", handlers.GetScreen(s.Registry)).Methods("GET")
	api.HandleFunc("/screens/{screen}", handlers.UnmountScreen(s.Registry)).Methods("DELETE")
	api.HandleFunc("/screens/{screen}/{action}", handlers.ScreenAction(screens)).Methods("POST")

	// Store endpoints; the theme scalar must be matched before collections.
	api.HandleFunc("/store/theme", handlers.GetTheme(s.Store)).Methods("GET")
	api.HandleFunc("/store/theme", handlers.SetTheme(s.Store)).Methods("PUT")
	api.HandleFunc("/store/{collection}", handlers.ListCollection(s.Store)).Methods("GET")
	api.HandleFunc("/store/{collection}", handlers.AppendItem(s.Store, s.Queue)).Methods("POST")
	api.HandleFunc("/store/{collection}", handlers.ResetCollection(s.Store)).Methods("DELETE")
	api.HandleFunc("/store/{collection}/{id}", handlers.RemoveItem(s.Store)).Methods("DELETE")

	// Notification endpoints
	api.HandleFunc("/notifications", handlers.ListNotifications(s.Queue)).Methods("GET")
	api.HandleFunc("/notifications", handlers.CreateNotification(s.Queue)).Methods("POST")
	api.HandleFunc("/notifications/{id}", handlers.DismissNotification(s.Queue)).Methods("DELETE")

	// Table endpoints
	api.HandleFunc("/timesheets", handlers.ListTimesheets(s.Admin, s.Queue, s.PageSize)).Methods("GET")
	api.HandleFunc("/timesheets/export", handlers.ExportTimesheets(s.Admin, s.Queue)).Methods("GET")
	api.HandleFunc("/bank-details", handlers.ListBankDetails(s.Admin, s.Queue, s.PageSize)).Methods("GET")

	// Profile and password endpoints
	api.HandleFunc("/profile", handlers.GetProfile(s.Admin, s.Queue)).Methods("GET")
	api.HandleFunc("/profile", handlers.UpdateProfile(s.Admin, s.Queue)).Methods("PUT")
	api.HandleFunc("/profile/photo", handlers.UploadPhoto(s.Admin, s.Queue)).Methods("POST")
	api.HandleFunc("/profile/photo", handlers.RemovePhoto(s.Admin, s.Queue)).Methods("DELETE")
	api.HandleFunc("/password/otp", handlers.GenerateOTP(s.Admin, s.Queue)).Methods("POST")
	api.HandleFunc("/password/verify", handlers.VerifyOTP(s.Admin, s.Queue)).Methods("POST")

	// Company registration wizard
	api.HandleFunc("/company/register/validate", handlers.ValidateCompanyStep(s.Queue)).Methods("POST")
	api.HandleFunc("/company/register", handlers.RegisterCompany(s.Admin, s.Queue)).Methods("POST")

	// Serve static frontend files
	if s.StaticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(s.StaticDir)))
	}

	return r
}
