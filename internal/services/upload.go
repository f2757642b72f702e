package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/desertthunder/snapup/internal/models"
	"github.com/desertthunder/snapup/internal/shared"
)

const (
	// UploadPath is the backend route images are posted to.
	UploadPath = "/post/upload/image"
	// UploadField is the multipart field carrying the file.
	UploadField = "file"
	// UploadsPrefix is where the backend serves stored images.
	UploadsPrefix = "/uploads/"
)

// UploadImage posts the contents of r as multipart field "file" with the given filename.
//
// The part's Content-Type comes from the filename extension, or from the first bytes of the content when the extension is unknown.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (*models.UploadResponse, error) {
	body, contentType, err := encodeUpload(filename, r)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, UploadPath, contentType, body)
	if err != nil {
		return nil, err
	}

	if !resp.OK() {
		return nil, newAPIError(resp.StatusCode, resp.Body, DefaultUploadError)
	}

	var result models.UploadResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("%w: invalid upload response: %v", shared.ErrAPIRequest, err)
	}

	return &result, nil
}

// ImageURL returns the URL the backend serves a stored image at.
func (c *Client) ImageURL(storedFilename string) string {
	return c.baseURL + UploadsPrefix + url.PathEscape(storedFilename)
}

func encodeUpload(filename string, r io.Reader) (*bytes.Buffer, string, error) {
	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, UploadField, filepath.Base(filename)))
	h.Set("Content-Type", DetectContentType(filename, head))

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}

	if _, err := io.Copy(part, br); err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish form: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

// DetectContentType resolves a MIME type from the filename extension, falling back to sniffing head.
func DetectContentType(filename string, head []byte) string {
	if ext := filepath.Ext(filename); ext != "" {
		if ct := mime.TypeByExtension(strings.ToLower(ext)); ct != "" {
			return ct
		}
	}
	return http.DetectContentType(head)
}
