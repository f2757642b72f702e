package services

import (
	"context"
	"io"

	"github.com/desertthunder/snapup/internal/models"
)

var _ Backend = (*Client)(nil)

// Backend is the HTTP API the forms submit to.
type Backend interface {
	// Signup creates an account from the signup form's fields.
	Signup(ctx context.Context, req models.SignupRequest) (*SignupResponse, error)

	// UploadImage sends a single image and returns the stored file's metadata.
	UploadImage(ctx context.Context, filename string, r io.Reader) (*models.UploadResponse, error)

	// ImageURL returns where a stored image can be fetched.
	ImageURL(storedFilename string) string
}
