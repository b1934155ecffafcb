package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/office-admin/dashboard/internal/api/middleware"
	"github.com/office-admin/dashboard/internal/calendar"
	"github.com/office-admin/dashboard/internal/notify"
	"github.com/office-admin/dashboard/internal/storage"
	"github.com/office-admin/dashboard/internal/storage/models"
)

// Store request/response types

type ThemeRequest struct {
	Theme string `json:"theme"`
}

type ThemeResponse struct {
	Theme string `json:"theme"`
}

type ResetResponse struct {
	Collection string `json:"collection"`
	Removed    int64  `json:"removed"`
}

var themes = map[string]bool{"light": true, "dark": true}

func collectionVar(w http.ResponseWriter, r *http.Request) (string, bool) {
	collection := mux.Vars(r)["collection"]
	if !models.IsCollection(collection) {
		middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Unknown collection")
		return "", false
	}
	return collection, true
}

// ListCollection returns every item of a store collection.
func ListCollection(store *storage.StoreRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collection, ok := collectionVar(w, r)
		if !ok {
			return
		}

		items, err := store.List(r.Context(), collection)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to list collection")
			return
		}
		if items == nil {
			items = []models.StoreItem{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// AppendItem adds a JSON object to a collection. Its "id" and "date" fields,
// when present, become the item ID and date key. Event collections only
// accept well-formed calendar events.
func AppendItem(store *storage.StoreRepository, queue *notify.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collection, ok := collectionVar(w, r)
		if !ok {
			return
		}

		var payload json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		var keys struct {
			ID   string `json:"id"`
			Date string `json:"date"`
		}
		if err := json.Unmarshal(payload, &keys); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Item must be a JSON object")
			return
		}
		if models.IsEventCollection(collection) {
			if msg := checkEvent(payload); msg != "" {
				queue.Error(msg)
				middleware.WriteError(w, http.StatusUnprocessableEntity, middleware.ErrValidation, msg)
				return
			}
		}

		item := &models.StoreItem{
			Collection: collection,
			ID:         keys.ID,
			DateKey:    keys.Date,
			Payload:    payload,
		}
		if err := store.Append(r.Context(), item); err != nil {
			middleware.WriteError(w, http.StatusConflict, middleware.ErrConflict, "Failed to append item")
			return
		}
		writeJSON(w, http.StatusCreated, item)
	}
}

// checkEvent returns the user-facing reason payload is not a storable event.
func checkEvent(payload json.RawMessage) string {
	var ev models.CalendarEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return "Item is not a valid calendar event"
	}
	if strings.TrimSpace(ev.Title) == "" {
		return "Please enter a title"
	}
	if _, err := calendar.ParseDateKey(ev.Date); err != nil {
		return "Please pick a valid date"
	}
	if ev.Recurrence != "" {
		if _, err := calendar.ParseRule(ev.Recurrence); err != nil {
			return "Please enter a valid repeat rule"
		}
	}
	return ""
}

// RemoveItem deletes one item by ID.
func RemoveItem(store *storage.StoreRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collection, ok := collectionVar(w, r)
		if !ok {
			return
		}

		err := store.Remove(r.Context(), collection, mux.Vars(r)["id"])
		if errors.Is(err, storage.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Item not found")
			return
		}
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to remove item")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ResetCollection empties a collection.
func ResetCollection(store *storage.StoreRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collection, ok := collectionVar(w, r)
		if !ok {
			return
		}

		n, err := store.Reset(r.Context(), collection)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to reset collection")
			return
		}
		writeJSON(w, http.StatusOK, ResetResponse{Collection: collection, Removed: n})
	}
}

// GetTheme returns the stored theme.
func GetTheme(store *storage.StoreRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		theme, err := store.GetSetting(r.Context(), models.SettingTheme)
		if errors.Is(err, storage.ErrNotFound) {
			theme = "light"
		} else if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to read theme")
			return
		}
		writeJSON(w, http.StatusOK, ThemeResponse{Theme: theme})
	}
}

// SetTheme stores the theme; last write wins.
func SetTheme(store *storage.StoreRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ThemeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if !themes[req.Theme] {
			middleware.WriteError(w, http.StatusUnprocessableEntity, middleware.ErrValidation, "Theme must be light or dark")
			return
		}

		if err := store.SetSetting(r.Context(), models.SettingTheme, req.Theme); err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to save theme")
			return
		}
		writeJSON(w, http.StatusOK, ThemeResponse{Theme: req.Theme})
	}
}
