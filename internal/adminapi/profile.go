package adminapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/office-admin/dashboard/internal/validate"
)

// MaxPhotoBytes is the largest accepted profile image.
const MaxPhotoBytes = 5 << 20

// Profile is the admin's editable profile.
type Profile struct {
	ID          string `json:"_id,omitempty"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Designation string `json:"designation,omitempty"`
	Department  string `json:"department,omitempty"`
	Address     string `json:"address,omitempty"`
	Photo       string `json:"profilePhoto,omitempty"`
}

// Upload is the result of a photo upload.
type Upload struct {
	URL string `json:"url"`
}

// GetProfile fetches the current admin profile.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.doJSON(ctx, http.MethodGet, "/profile/getProfileAdmin", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile saves profile fields and returns the stored profile.
func (c *Client) UpdateProfile(ctx context.Context, p Profile) (*Profile, error) {
	if !validate.Email(p.Email) {
		return nil, ErrInvalidEmail
	}
	if p.Phone != "" && !validate.Phone(p.Phone) {
		return nil, &InputError{Message: "Please enter a valid phone number"}
	}

	var out Profile
	if err := c.doJSON(ctx, http.MethodPut, "/profile/updateProfileAdmin", p, &out); err != nil {
		return nil, err
	}
	if out.Email == "" {
		out = p
	}
	return &out, nil
}

// RemovePhoto deletes the profile photo.
func (c *Client) RemovePhoto(ctx context.Context) (*Ack, error) {
	var ack Ack
	if err := c.doJSON(ctx, http.MethodDelete, "/profile/removePhotoAdmin", nil, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// UploadPhoto sends an image as multipart form field "file". Non-image or
// oversized content is rejected before any request is made.
func (c *Client) UploadPhoto(ctx context.Context, filename string, r io.Reader) (*Upload, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxPhotoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if len(data) > MaxPhotoBytes {
		return nil, ErrFileTooLarge
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotImage
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(filename)))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("creating form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("writing form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var up Upload
	if err := c.do(req, &up); err != nil {
		return nil, err
	}
	return &up, nil
}
