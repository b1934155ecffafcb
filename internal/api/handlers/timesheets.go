package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"

	"github.com/office-admin/dashboard/internal/adminapi"
	"github.com/office-admin/dashboard/internal/api/middleware"
	"github.com/office-admin/dashboard/internal/notify"
	"github.com/office-admin/dashboard/internal/timesheet"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func timesheetQuery(r *http.Request, pageSize int) (timesheet.Query, error) {
	q := r.URL.Query()
	page, err := queryInt(r, "page", 1)
	if err != nil {
		return timesheet.Query{}, fmt.Errorf("invalid page")
	}
	size, err := queryInt(r, "page_size", pageSize)
	if err != nil {
		return timesheet.Query{}, fmt.Errorf("invalid page_size")
	}
	return timesheet.Query{
		Employee: q.Get("employee"),
		Bucket:   q.Get("bucket"),
		Project:  q.Get("project"),
		From:     q.Get("from"),
		To:       q.Get("to"),
		Search:   q.Get("search"),
		Sort:     q.Get("sort"),
		Page:     page,
		PageSize: size,
	}, nil
}

// ListTimesheets returns filtered, sorted, paginated timesheet rows and
// the total duration of the filtered set.
func ListTimesheets(admin *adminapi.Client, queue *notify.Queue, pageSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := timesheetQuery(r, pageSize)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, err.Error())
			return
		}

		rows, err := admin.ListTimesheets(r.Context())
		if err != nil {
			log.Printf("Error fetching timesheets: %v", err)
			writeBackendError(w, queue, err)
			return
		}

		writeJSON(w, http.StatusOK, timesheet.Apply(rows, query))
	}
}

// ExportTimesheets downloads the filtered rows as an xlsx workbook.
func ExportTimesheets(admin *adminapi.Client, queue *notify.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := timesheetQuery(r, 0)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, err.Error())
			return
		}

		rows, err := admin.ListTimesheets(r.Context())
		if err != nil {
			log.Printf("Error fetching timesheets: %v", err)
			writeBackendError(w, queue, err)
			return
		}

		selected := timesheet.Select(rows, query)
		if len(selected) == 0 {
			queue.Error("No timesheet rows match the selected filters")
			middleware.WriteError(w, http.StatusUnprocessableEntity, middleware.ErrValidation, "No rows to export")
			return
		}

		var buf bytes.Buffer
		if err := timesheet.Export(&buf, selected); err != nil {
			log.Printf("Error exporting timesheets: %v", err)
			queue.Error("Failed to export timesheet")
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to export timesheet")
			return
		}

		name := timesheet.ExportFilename(query.Employee, query.From, query.To)
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		w.Write(buf.Bytes())
		queue.Success("Timesheet exported")
	}
}
