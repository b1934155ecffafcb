package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/office-admin/dashboard/internal/adminapi"
	"github.com/office-admin/dashboard/internal/api/middleware"
	"github.com/office-admin/dashboard/internal/calendar"
	"github.com/office-admin/dashboard/internal/company"
	"github.com/office-admin/dashboard/internal/notify"
)

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeBody decodes a JSON request body. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// queryInt parses an integer query parameter, returning def when absent.
func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

// today returns the current date key in loc.
func today(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return calendar.DateKey(time.Now().In(loc))
}

// writeBackendError maps an admin backend failure to a response and raises
// an error toast carrying the same message.
func writeBackendError(w http.ResponseWriter, queue *notify.Queue, err error) {
	var inputErr *adminapi.InputError
	var formErrs company.Errors
	var apiErr *adminapi.APIError

	switch {
	case errors.As(err, &formErrs):
		queue.Error(formErrs.Error())
		middleware.WriteErrorWithDetails(w, http.StatusUnprocessableEntity, middleware.ErrValidation, formErrs.Error(), formErrs)

	case errors.As(err, &inputErr):
		queue.Fail(inputErr)
		middleware.WriteError(w, http.StatusUnprocessableEntity, middleware.ErrValidation, inputErr.Message)

	case errors.Is(err, adminapi.ErrNotConfigured):
		queue.Error("Admin backend is not configured")
		middleware.WriteError(w, http.StatusServiceUnavailable, middleware.ErrUpstream, "Admin backend is not configured")

	case errors.As(err, &apiErr):
		queue.Error(apiErr.Message)
		middleware.WriteError(w, http.StatusBadGateway, middleware.ErrUpstream, apiErr.Message)

	default:
		queue.Error(adminapi.GenericError)
		middleware.WriteError(w, http.StatusBadGateway, middleware.ErrUpstream, adminapi.GenericError)
	}
}
