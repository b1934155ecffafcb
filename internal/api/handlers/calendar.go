package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/office-admin/dashboard/internal/api/middleware"
	"github.com/office-admin/dashboard/internal/calendar"
	"github.com/office-admin/dashboard/internal/notify"
	"github.com/office-admin/dashboard/internal/storage"
	"github.com/office-admin/dashboard/internal/storage/models"
)

// Calendar request/response types

type DaySummary struct {
	Counts []calendar.CategoryCount `json:"counts"`
	Badges []CategoryStyle          `json:"badges"`
}

type CategoryStyle struct {
	Category string `json:"category"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
}

type GridResponse struct {
	calendar.Grid
	Weeks [][]calendar.Cell     `json:"weeks"`
	Today string                `json:"today"`
	Days  map[string]DaySummary `json:"days"`
}

type YearResponse struct {
	Year   int            `json:"year"`
	Today  string         `json:"today"`
	Months []GridResponse `json:"months"`
}

type DayEvent struct {
	models.CalendarEvent
	Style calendar.Style `json:"style"`
}

type DayResponse struct {
	Date   string                   `json:"date"`
	Week   []string                 `json:"week"` // Sunday-first strip around Date
	Events []DayEvent               `json:"events"`
	Counts []calendar.CategoryCount `json:"counts"`
}

func styled(category string) CategoryStyle {
	s := calendar.StyleFor(category)
	return CategoryStyle{Category: category, Color: s.Color, Icon: s.Icon}
}

// monthEvents loads every stored event with recurrences expanded into the month.
func monthEvents(ctx context.Context, store *storage.StoreRepository, year, month int) ([]models.CalendarEvent, error) {
	events, err := store.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	return calendar.ExpandMonth(events, year, month), nil
}

// DayEventCount counts the events shown on dateKey, recurrences included.
func DayEventCount(ctx context.Context, store *storage.StoreRepository, dateKey string) (int, error) {
	t, err := calendar.ParseDateKey(dateKey)
	if err != nil {
		return 0, err
	}
	events, err := monthEvents(ctx, store, t.Year(), int(t.Month())-1)
	if err != nil {
		return 0, err
	}
	return len(calendar.EventsOn(events, dateKey)), nil
}

func gridResponse(g calendar.Grid, ambient calendar.Ambient, idx *calendar.Index, badgeLimit int) GridResponse {
	decorated := g.Decorate(ambient)
	return GridResponse{
		Grid:  decorated,
		Weeks: decorated.Weeks(),
		Today: ambient.Today,
		Days:  summarize(g, idx, badgeLimit),
	}
}

func summarize(g calendar.Grid, idx *calendar.Index, badgeLimit int) map[string]DaySummary {
	days := make(map[string]DaySummary)
	for _, key := range g.DateKeys() {
		counts := idx.Counts(key)
		if len(counts) == 0 {
			continue
		}
		badges := make([]CategoryStyle, 0, badgeLimit)
		for _, c := range calendar.TopCategories(counts, badgeLimit) {
			badges = append(badges, styled(c))
		}
		days[key] = DaySummary{Counts: counts, Badges: badges}
	}
	return days
}

// CalendarGrid returns a decorated month grid with per-day category badges.
// Query: year, month (0-based, rolls over), screen (selection/hover source).
func CalendarGrid(store *storage.StoreRepository, registry *calendar.Registry, loc *time.Location, badgeLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().In(loc)
		year, err := queryInt(r, "year", now.Year())
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid year")
			return
		}
		month, err := queryInt(r, "month", int(now.Month())-1)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid month")
			return
		}

		g := calendar.BuildGrid(year, month)
		events, err := monthEvents(r.Context(), store, g.Year, g.Month)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to load events")
			return
		}

		ambient := calendar.Ambient{Today: today(loc)}
		if screen := r.URL.Query().Get("screen"); screen != "" {
			if sel, ok := registry.Lookup(screen); ok {
				snap := sel.Snapshot()
				switch snap.State {
				case calendar.StateHovering:
					ambient.Hovered = snap.DateKey
				case calendar.StateDayDetailOpen, calendar.StateCreateFormOpen:
					ambient.Selected = snap.DateKey
				}
			}
		}

		writeJSON(w, http.StatusOK, gridResponse(g, ambient, calendar.NewIndex(events), badgeLimit))
	}
}

// CalendarYear returns the twelve grids of a year with their badges.
func CalendarYear(store *storage.StoreRepository, loc *time.Location, badgeLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := queryInt(r, "year", time.Now().In(loc).Year())
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid year")
			return
		}

		events, err := store.ListEvents(r.Context())
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to load events")
			return
		}
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		idx := calendar.NewIndex(calendar.ExpandRange(events, start, start.AddDate(1, 0, 0).Add(-time.Nanosecond)))

		ambient := calendar.Ambient{Today: today(loc)}
		resp := YearResponse{Year: year, Today: ambient.Today}
		for _, g := range calendar.BuildYear(year) {
			resp.Months = append(resp.Months, gridResponse(g, ambient, idx, badgeLimit))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// CalendarDay returns one day's events in category order with their styles.
func CalendarDay(store *storage.StoreRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := mux.Vars(r)["date"]
		t, err := calendar.ParseDateKey(date)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Date must be YYYY-MM-DD")
			return
		}

		events, err := monthEvents(r.Context(), store, t.Year(), int(t.Month())-1)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to load events")
			return
		}

		week, _ := calendar.WeekOf(date)
		resp := DayResponse{
			Date:   date,
			Week:   week,
			Events: []DayEvent{},
			Counts: calendar.CategoryCounts(events, date),
		}
		for _, ev := range calendar.EventsOn(events, date) {
			resp.Events = append(resp.Events, DayEvent{CalendarEvent: ev, Style: calendar.StyleFor(ev.Category)})
		}
		if resp.Counts == nil {
			resp.Counts = []calendar.CategoryCount{}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// CalendarCategories returns the category table of a screen variant.
func CalendarCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		variant := calendar.Variant(r.URL.Query().Get("variant"))
		var out []CategoryStyle
		for _, c := range calendar.CategoriesFor(variant) {
			out = append(out, styled(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// CalendarICS exports every stored event as an iCalendar feed.
func CalendarICS(store *storage.StoreRepository, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := store.ListEvents(r.Context())
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to load events")
			return
		}

		var buf bytes.Buffer
		if err := calendar.WriteICS(&buf, events, loc, time.Now()); err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to encode calendar")
			return
		}

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
		w.Write(buf.Bytes())
	}
}

// SyncCalendar pulls events from the admin backend now.
func SyncCalendar(scheduler *calendar.Scheduler, queue *notify.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := scheduler.TriggerSync(r.Context())
		if errors.Is(err, calendar.ErrNoSource) {
			queue.Error("Calendar backend is not configured")
			middleware.WriteError(w, http.StatusServiceUnavailable, middleware.ErrUpstream, "Calendar backend is not configured")
			return
		}
		if err != nil {
			writeBackendError(w, queue, err)
			return
		}

		queue.Success("Calendar synced")
		writeJSON(w, http.StatusOK, result)
	}
}
