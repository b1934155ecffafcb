package adminapi

import (
	"context"
	"net/http"

	"github.com/office-admin/dashboard/internal/bank"
	"github.com/office-admin/dashboard/internal/company"
	"github.com/office-admin/dashboard/internal/storage/models"
	"github.com/office-admin/dashboard/internal/timesheet"
)

// ListCalendarEvents fetches the user's calendar.
func (c *Client) ListCalendarEvents(ctx context.Context) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	if err := c.doJSON(ctx, http.MethodGet, "/admin/calendar/user", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// CreateCalendarItem posts a task, event or meeting.
func (c *Client) CreateCalendarItem(ctx context.Context, kind string, ev models.CalendarEvent) (*Ack, error) {
	body := struct {
		Type string `json:"type"`
		models.CalendarEvent
	}{Type: kind, CalendarEvent: ev}

	var ack Ack
	if err := c.doJSON(ctx, http.MethodPost, "/admin/calendar", body, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// ListTimesheets fetches every employee's timesheet rows.
func (c *Client) ListTimesheets(ctx context.Context) ([]timesheet.Row, error) {
	var rows []timesheet.Row
	if err := c.doJSON(ctx, http.MethodGet, "/timesheet/admin/timesheets", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListBankDetails fetches employee bank records.
func (c *Client) ListBankDetails(ctx context.Context) ([]bank.Detail, error) {
	var details []bank.Detail
	if err := c.doJSON(ctx, http.MethodGet, "/user/bank/getBankDetails", nil, &details); err != nil {
		return nil, err
	}
	return details, nil
}

// RegisterCompany validates every wizard page and submits the registration.
func (c *Client) RegisterCompany(ctx context.Context, r company.Registration) (*Ack, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var ack Ack
	if err := c.doJSON(ctx, http.MethodPost, "/compnayRegister/register", r.Payload(), &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}
