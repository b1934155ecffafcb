package adminapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// GenericError is shown when the backend gives no usable message.
const GenericError = "Something went wrong. Please try again."

// ErrNotConfigured is returned by every call when no base URL is set.
var ErrNotConfigured = errors.New("admin backend not configured")

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.Status, e.Message)
}

// InputError is a rejection made before any request is sent.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// Client-side rejections.
var (
	ErrNotImage     = &InputError{Message: "Please select an image file"}
	ErrFileTooLarge = &InputError{Message: "Image must be 5 MB or smaller"}
	ErrInvalidEmail = &InputError{Message: "Please enter a valid email address"}
	ErrMissingOTP   = &InputError{Message: "Please enter the OTP"}
	ErrWeakPassword = &InputError{Message: "Password must be at least 8 characters"}
)

// newAPIError extracts a message from a `message` or `error` field of body.
func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Message any `json:"message"`
		Error   any `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = firstString(payload.Message, payload.Error)
	}
	if msg == "" {
		msg = GenericError
	}
	return &APIError{Status: status, Message: msg}
}

func firstString(values ...any) string {
	for _, v := range values {
		switch s := v.(type) {
		case string:
			if strings.TrimSpace(s) != "" {
				return s
			}
		case map[string]any:
			if m := firstString(s["message"]); m != "" {
				return m
			}
		}
	}
	return ""
}

// UserMessage turns any error from this package into toast text.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return inputErr.Message
	}
	return GenericError
}
