// Package calendar provides the shared calendar logic every dashboard
// screen consumes: month grids, the per-day event index, the selection and
// modal state machine, draft validation, and ICS export.
package calendar

import (
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/office-admin/dashboard/internal/storage/models"
)

// ICSProductID identifies feeds produced by the dashboard.
const ICSProductID = "-//Office Admin//Dashboard Calendar//EN"

// WriteICS serializes events as an iCalendar feed. Events with a time of
// day become timed events in loc; the rest are all-day. Recurrence rules
// are carried over rather than expanded.
func WriteICS(w io.Writer, events []models.CalendarEvent, loc *time.Location, now time.Time) error {
	if loc == nil {
		loc = time.Local
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ICSProductID)

	for _, ev := range events {
		day, err := ParseDateKey(ev.Date)
		if err != nil {
			continue
		}

		vev := cal.AddEvent(ev.ID + "@dashboard")
		vev.SetDtStampTime(now.UTC())
		vev.SetSummary(ev.Title)
		if ev.Description != "" {
			vev.SetDescription(ev.Description)
		}
		if ev.Category != "" {
			vev.SetProperty(ics.ComponentPropertyCategories, ev.Category)
		}
		if ev.Recurrence != "" {
			vev.SetProperty(ics.ComponentPropertyRrule, strings.TrimPrefix(ev.Recurrence, "RRULE:"))
		}
		for _, p := range ev.Participants {
			vev.AddAttendee(p)
		}

		start, end, timed := eventSpan(ev, day, loc)
		if timed {
			vev.SetStartAt(start)
			vev.SetEndAt(end)
		} else {
			vev.SetAllDayStartAt(day)
			vev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

// eventSpan resolves an event's clock strings on day.
func eventSpan(ev models.CalendarEvent, day time.Time, loc *time.Location) (time.Time, time.Time, bool) {
	start, end, ok := ClockSpan(ev)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	at := func(minutes int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, loc)
	}
	return at(start), at(end), true
}
