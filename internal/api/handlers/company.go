package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/office-admin/dashboard/internal/adminapi"
	"github.com/office-admin/dashboard/internal/api/middleware"
	"github.com/office-admin/dashboard/internal/company"
	"github.com/office-admin/dashboard/internal/notify"
)

type StepResponse struct {
	Step     int  `json:"step"`
	Valid    bool `json:"valid"`
	NextStep int  `json:"next_step,omitempty"`
}

// ValidateCompanyStep checks one wizard page (?step=1..3) before the user
// may advance. Failures are reported field by field.
func ValidateCompanyStep(queue *notify.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		step, err := queryInt(r, "step", int(company.StepCompany))
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid step")
			return
		}

		var reg company.Registration
		if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		if err := reg.ValidateStep(company.Step(step)); err != nil {
			writeBackendError(w, queue, err)
			return
		}

		resp := StepResponse{Step: step, Valid: true}
		if step < len(company.Steps) {
			resp.NextStep = step + 1
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// RegisterCompany validates every page and submits the registration.
func RegisterCompany(admin *adminapi.Client, queue *notify.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reg company.Registration
		if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		ack, err := admin.RegisterCompany(r.Context(), reg)
		if err != nil {
			writeBackendError(w, queue, err)
			return
		}

		queue.Success("Company registered successfully")
		writeJSON(w, http.StatusCreated, ack)
	}
}
