package adminapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/office-admin/dashboard/internal/validate"
)

// GenerateOTP asks the backend to mail a password-reset code.
func (c *Client) GenerateOTP(ctx context.Context, email string) (*Ack, error) {
	email = strings.TrimSpace(email)
	if !validate.Email(email) {
		return nil, ErrInvalidEmail
	}

	var ack Ack
	err := c.doJSON(ctx, http.MethodPost, "/forgotpassword/generate-otp-admin",
		map[string]string{"email": email}, &ack)
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// VerifyOTP checks the code and sets the new password.
func (c *Client) VerifyOTP(ctx context.Context, email, otp, newPassword string) (*Ack, error) {
	email = strings.TrimSpace(email)
	if !validate.Email(email) {
		return nil, ErrInvalidEmail
	}
	if !validate.Required(otp) {
		return nil, ErrMissingOTP
	}
	if len(newPassword) < 8 {
		return nil, ErrWeakPassword
	}

	var ack Ack
	err := c.doJSON(ctx, http.MethodPost, "/forgotpassword/verify-otp-admin", map[string]string{
		"email":       email,
		"otp":         strings.TrimSpace(otp),
		"newPassword": newPassword,
	}, &ack)
	if err != nil {
		return nil, err
	}
	return &ack, nil
}
