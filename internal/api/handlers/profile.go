package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/office-admin/dashboard/internal/adminapi"
	"github.com/office-admin/dashboard/internal/api/middleware"
	"github.com/office-admin/dashboard/internal/notify"
)

// Profile and password request types

type OTPRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// GetProfile proxies the admin profile.
func GetProfile(admin *adminapi.Client, queue *notify.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := admin.GetProfile(r.Context())
		if err != nil {
			writeBackendError(w, queue, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// UpdateProfile validates and saves profile fields.
func UpdateProfile(admin *adminapi.Client, queue *notify.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminapi.Profile
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		p, err := admin.UpdateProfile(r.Context(), req)
		if err != nil {
			writeBackendError(w, queue, err)
			return
		}
		queue.Success("Profile updated successfully")
		writeJSON(w, http.StatusOK, p)
	}
}

// RemovePhoto deletes the profile photo.
func RemovePhoto(admin *adminapi.Client, queue *notify.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ack, err := admin.RemovePhoto(r.Context())
		if err != nil {
			writeBackendError(w, queue, err)
			return
		}
		queue.Success("Profile photo removed")
		writeJSON(w, http.StatusOK, ack)
	}
}

// UploadPhoto forwards the multipart "file" field as the new profile photo.
func UploadPhoto(admin *adminapi.Client, queue *notify.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const limit = adminapi.MaxPhotoBytes + (1 << 20)
		if r.ContentLength > limit {
			writeBackendError(w, queue, adminapi.ErrFileTooLarge)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		file, header, err := r.FormFile("file")
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeBackendError(w, queue, adminapi.ErrFileTooLarge)
			return
		}
		if err != nil {
			writeBackendError(w, queue, adminapi.ErrNotImage)
			return
		}
		defer file.Close()

		if header.Size > adminapi.MaxPhotoBytes {
			writeBackendError(w, queue, adminapi.ErrFileTooLarge)
			return
		}

		up, err := admin.UploadPhoto(r.Context(), header.Filename, file)
		if err != nil {
			writeBackendError(w, queue, err)
			return
		}
		queue.Success("Profile photo updated")
		writeJSON(w, http.StatusOK, up)
	}
}

// GenerateOTP requests a password-reset code.
func GenerateOTP(admin *adminapi.Client, queue *notify.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req OTPRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		ack, err := admin.GenerateOTP(r.Context(), req.Email)
		if err != nil {
			writeBackendError(w, queue, err)
			return
		}
		queue.Success("OTP sent to your email")
		writeJSON(w, http.StatusOK, ack)
	}
}

// VerifyOTP checks the code and sets the new password.
func VerifyOTP(admin *adminapi.Client, queue *notify.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VerifyOTPRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		ack, err := admin.VerifyOTP(r.Context(), req.Email, req.OTP, req.NewPassword)
		if err != nil {
			writeBackendError(w, queue, err)
			return
		}
		queue.Success("Password reset successfully")
		writeJSON(w, http.StatusOK, ack)
	}
}
