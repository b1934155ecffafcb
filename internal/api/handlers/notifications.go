package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/office-admin/dashboard/internal/api/middleware"
	"github.com/office-admin/dashboard/internal/notify"
)

type NotifyRequest struct {
	Kind    notify.Kind `json:"kind"`
	Message string      `json:"message"`
}

var kinds = map[notify.Kind]bool{
	notify.KindSuccess: true,
	notify.KindError:   true,
	notify.KindInfo:    true,
	notify.KindWarning: true,
}

// ListNotifications returns the live toasts, oldest first.
func ListNotifications(queue *notify.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, queue.Active())
	}
}

// CreateNotification lets any screen raise a toast through the shared queue.
func CreateNotification(queue *notify.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req NotifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if req.Kind == "" {
			req.Kind = notify.KindInfo
		}
		if !kinds[req.Kind] {
			middleware.WriteError(w, http.StatusUnprocessableEntity, middleware.ErrValidation, "Unknown notification kind")
			return
		}

		writeJSON(w, http.StatusCreated, queue.Notify(req.Kind, req.Message))
	}
}

// DismissNotification removes a toast before it expires.
func DismissNotification(queue *notify.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !queue.Dismiss(mux.Vars(r)["id"]) {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Notification not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
