package handlers

import (
	"log"
	"net/http"

	"github.com/office-admin/dashboard/internal/adminapi"
	"github.com/office-admin/dashboard/internal/api/middleware"
	"github.com/office-admin/dashboard/internal/bank"
	"github.com/office-admin/dashboard/internal/notify"
)

// ListBankDetails returns the filtered, sorted, paginated bank table.
func ListBankDetails(admin *adminapi.Client, queue *notify.Queue, pageSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := queryInt(r, "page", 1)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid page")
			return
		}
		size, err := queryInt(r, "page_size", pageSize)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid page_size")
			return
		}

		details, err := admin.ListBankDetails(r.Context())
		if err != nil {
			log.Printf("Error fetching bank details: %v", err)
			writeBackendError(w, queue, err)
			return
		}

		q := r.URL.Query()
		writeJSON(w, http.StatusOK, bank.Apply(details, bank.Query{
			Search:   q.Get("search"),
			Status:   q.Get("status"),
			Sort:     q.Get("sort"),
			Page:     page,
			PageSize: size,
		}))
	}
}
