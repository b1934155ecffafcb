package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/office-admin/dashboard/internal/adminapi"
	"github.com/office-admin/dashboard/internal/api/middleware"
	"github.com/office-admin/dashboard/internal/calendar"
	"github.com/office-admin/dashboard/internal/notify"
	"github.com/office-admin/dashboard/internal/storage"
	"github.com/office-admin/dashboard/internal/storage/models"
)

// Screen request/response types

type ScreenActionRequest struct {
	Date  string          `json:"date,omitempty"`
	Tab   string          `json:"tab,omitempty"`
	Draft *calendar.Draft `json:"draft,omitempty"`
}

type ScreenResponse struct {
	Screen string `json:"screen"`
	calendar.Snapshot
}

type SubmitResponse struct {
	Screen     string               `json:"screen"`
	Collection string               `json:"collection"`
	Event      models.CalendarEvent `json:"event"`
	State      calendar.Snapshot    `json:"state"`
	Conflicts  []calendar.Conflict  `json:"conflicts,omitempty"`
}

var submitMessages = map[calendar.Tab]string{
	calendar.TabTask:    "Task added successfully",
	calendar.TabEvent:   "Event added successfully",
	calendar.TabMeeting: "Meeting scheduled successfully",
}

// ScreenDeps groups what the selection endpoints need.
type ScreenDeps struct {
	Registry *calendar.Registry
	Store    *storage.StoreRepository
	Queue    *notify.Queue
	Admin    *adminapi.Client
	Location *time.Location
}

// GetScreen returns a screen's selection state, mounting it if needed.
func GetScreen(registry *calendar.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		screen := mux.Vars(r)["screen"]
		writeJSON(w, http.StatusOK, ScreenResponse{Screen: screen, Snapshot: registry.Get(screen).Snapshot()})
	}
}

// UnmountScreen discards a screen's state and cancels its timers.
func UnmountScreen(registry *calendar.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !registry.Remove(mux.Vars(r)["screen"]) {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Screen not mounted")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ScreenAction drives one screen's state machine. The action comes from the
// path: hover, leave, open, close, create, tab, add-event, draft, cancel, submit.
func ScreenAction(deps ScreenDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		screen, action := vars["screen"], vars["action"]
		sel := deps.Registry.Get(screen)

		var req ScreenActionRequest
		if err := decodeBody(r, &req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		var err error
		switch action {
		case "hover":
			err = sel.HoverEnter(req.Date)
		case "leave":
			err = sel.HoverLeave()
		case "open":
			var count int
			count, err = DayEventCount(r.Context(), deps.Store, req.Date)
			if err == nil {
				err = sel.OpenDay(req.Date, count)
			}
		case "close":
			err = sel.CloseDetail()
		case "create", "tab":
			var tab calendar.Tab
			tab, err = calendar.ParseTab(req.Tab)
			if err == nil && action == "create" {
				err = sel.OpenCreate(tab)
			} else if err == nil {
				err = sel.SwitchTab(tab)
			}
		case "add-event":
			err = sel.AddEvent()
		case "draft":
			if req.Draft == nil {
				err = errors.New("draft is required")
			} else {
				err = sel.UpdateDraft(*req.Draft)
			}
		case "cancel":
			err = sel.Cancel()
		case "submit":
			submit(w, r, deps, screen, sel, req.Draft)
			return
		default:
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, fmt.Sprintf("Unknown action %q", action))
			return
		}

		if err != nil {
			writeSelectionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ScreenResponse{Screen: screen, Snapshot: sel.Snapshot()})
	}
}

func writeSelectionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, calendar.ErrInvalidTransition):
		middleware.WriteError(w, http.StatusConflict, middleware.ErrConflict, err.Error())
	case errors.Is(err, calendar.ErrScreenClosed):
		middleware.WriteError(w, http.StatusGone, middleware.ErrConflict, err.Error())
	default:
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, err.Error())
	}
}

func submit(w http.ResponseWriter, r *http.Request, deps ScreenDeps, screen string, sel *calendar.Selection, draft *calendar.Draft) {
	// The form stays open until the event is saved so a failed save can be retried.
	ev, tab, err := sel.Prepare(draft, storage.GenerateID(), today(deps.Location), time.Now())
	var verr *calendar.ValidationError
	if errors.As(err, &verr) {
		deps.Queue.Error(verr.Message)
		middleware.WriteErrorWithDetails(w, http.StatusUnprocessableEntity, middleware.ErrValidation, verr.Message,
			map[string]string{"field": verr.Field})
		return
	}
	if err != nil {
		writeSelectionError(w, err)
		return
	}

	collection := calendar.CollectionFor(tab)
	if err := deps.Store.AppendEvent(r.Context(), collection, &ev); err != nil {
		log.Printf("Error saving %s to %s: %v", ev.ID, collection, err)
		deps.Queue.Error("Failed to save " + string(tab))
		middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to save event")
		return
	}
	if err := sel.Commit(ev.ID); err != nil {
		log.Printf("Screen %s changed while saving %s: %v", screen, ev.ID, err)
	}

	if deps.Admin != nil && deps.Admin.Enabled() {
		if _, err := deps.Admin.CreateCalendarItem(r.Context(), string(tab), ev); err != nil {
			log.Printf("Error posting %s to admin backend: %v", ev.ID, err)
			deps.Queue.Error(adminapi.UserMessage(err))
		}
	}

	deps.Queue.Success(submitMessages[tab])

	// Overlaps are reported but never block the save.
	var conflicts []calendar.Conflict
	if day, err := calendar.ParseDateKey(ev.Date); err == nil {
		if events, err := monthEvents(r.Context(), deps.Store, day.Year(), int(day.Month())-1); err == nil {
			conflicts = calendar.Conflicts(events, ev)
		}
	}
	for _, c := range conflicts {
		deps.Queue.Notify(notify.KindWarning, c.String())
	}

	writeJSON(w, http.StatusCreated, SubmitResponse{
		Screen:     screen,
		Collection: collection,
		Event:      ev,
		State:      sel.Snapshot(),
		Conflicts:  conflicts,
	})
}
