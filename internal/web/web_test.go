package web

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/desertthunder/snapup/internal/models"
	"github.com/desertthunder/snapup/internal/server"
	"github.com/desertthunder/snapup/internal/services"
	"github.com/desertthunder/snapup/internal/shared"
)

type fakeBackend struct {
	signupErr  error
	uploadErr  error
	signups    []models.SignupRequest
	uploads    []string
	uploadData []byte
}

func (f *fakeBackend) Signup(_ context.Context, req models.SignupRequest) (*services.SignupResponse, error) {
	f.signups = append(f.signups, req)
	if f.signupErr != nil {
		return nil, f.signupErr
	}
	return &services.SignupResponse{StatusCode: http.StatusOK, Data: map[string]any{"email": req.Email}}, nil
}

func (f *fakeBackend) UploadImage(_ context.Context, filename string, r io.Reader) (*models.UploadResponse, error) {
	f.uploads = append(f.uploads, filename)
	f.uploadData, _ = io.ReadAll(r)
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return &models.UploadResponse{
		Message: "image uploaded",
		Result: models.UploadResult{
			StoredFilename:   "0b5c.png",
			OriginalFilename: filename,
			FileSize:         int64(len(f.uploadData)),
		},
	}, nil
}

func (f *fakeBackend) ImageURL(stored string) string {
	return "http://backend.test/uploads/" + stored
}

func setupApp(t *testing.T, backend *fakeBackend) http.Handler {
	t.Helper()
	app, err := New(Opts{Backend: backend, BaseURL: "http://backend.test", Logger: shared.NewLogger(io.Discard)})
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	router := server.NewBasicRouter()
	app.Register(router)
	return router
}

func uploadRequest(t *testing.T, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		part.Write(data)
	} else {
		mw.WriteField("note", "no file")
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestNew(t *testing.T) {
	if _, err := New(Opts{}); err == nil {
		t.Error("expected error without a backend")
	}
}

func TestPages(t *testing.T) {
	router := setupApp(t, &fakeBackend{})

	for _, path := range []string{"/", "/signup", "/upload"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "backend: http://backend.test") {
				t.Errorf("expected footer with base url in %s", path)
			}
		})
	}
}

func TestSignup(t *testing.T) {
	post := func(router http.Handler, values url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("Success", func(t *testing.T) {
		backend := &fakeBackend{}
		router := setupApp(t, backend)

		rec := post(router, url.Values{"name": {" Ada "}, "email": {"ada@example.com"}, "password": {"secret"}})

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if len(backend.signups) != 1 || backend.signups[0].Name != "Ada" {
			t.Fatalf("unexpected signups %+v", backend.signups)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "Signed up.") {
			t.Error("expected success message")
		}
		if strings.Contains(body, "secret") {
			t.Error("password must not be rendered back")
		}
	})

	t.Run("Validation Failure", func(t *testing.T) {
		backend := &fakeBackend{}
		router := setupApp(t, backend)

		rec := post(router, url.Values{"name": {"Ada"}, "email": {"nope"}, "password": {"x"}})

		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("expected 422, got %d", rec.Code)
		}
		if len(backend.signups) != 0 {
			t.Error("invalid form must not reach the backend")
		}
		if !strings.Contains(rec.Body.String(), "is not valid") {
			t.Errorf("expected validation message, got %s", rec.Body.String())
		}
	})

	t.Run("Backend Error", func(t *testing.T) {
		backend := &fakeBackend{signupErr: &services.APIError{StatusCode: http.StatusConflict, Detail: "email already registered"}}
		router := setupApp(t, backend)

		rec := post(router, url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "password": {"x"}})

		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("expected 422, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "email already registered") {
			t.Error("expected backend detail to be shown")
		}
	})
}

func TestUpload(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		backend := &fakeBackend{}
		router := setupApp(t, backend)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, uploadRequest(t, "cat.png", []byte("image bytes")))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if string(backend.uploadData) != "image bytes" {
			t.Errorf("unexpected forwarded data %q", backend.uploadData)
		}

		body := rec.Body.String()
		for _, want := range []string{"0b5c.png", "cat.png", "11 B", `src="http://backend.test/uploads/0b5c.png"`} {
			if !strings.Contains(body, want) {
				t.Errorf("expected %q in page", want)
			}
		}
	})

	t.Run("No File Selected", func(t *testing.T) {
		backend := &fakeBackend{}
		router := setupApp(t, backend)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, uploadRequest(t, "", nil))

		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("expected 422, got %d", rec.Code)
		}
		if len(backend.uploads) != 0 {
			t.Error("no request should be sent without a file")
		}
		if !strings.Contains(rec.Body.String(), "select a file") {
			t.Error("expected select a file message")
		}
	})

	t.Run("Oversized Body Is Cut Off", func(t *testing.T) {
		backend := &fakeBackend{}
		app, err := New(Opts{Backend: backend, Logger: shared.NewLogger(io.Discard), MaxUploadBytes: 1024})
		if err != nil {
			t.Fatalf("failed to create app: %v", err)
		}
		router := server.NewBasicRouter()
		app.Register(router)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, uploadRequest(t, "huge.png", bytes.Repeat([]byte{0x42}, 1024+formOverhead+1)))

		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("expected 413, got %d", rec.Code)
		}
		if len(backend.uploads) != 0 {
			t.Error("oversized upload must not reach the backend")
		}
		if !strings.Contains(rec.Body.String(), "file size must be 1.0 KiB or less") {
			t.Errorf("expected size message, got %s", rec.Body.String())
		}
	})

	t.Run("Backend Error", func(t *testing.T) {
		backend := &fakeBackend{uploadErr: &services.APIError{StatusCode: http.StatusBadRequest, Detail: "image must be in color"}}
		router := setupApp(t, backend)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, uploadRequest(t, "gray.png", []byte("x")))

		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("expected 422, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "image must be in color") {
			t.Error("expected backend detail to be shown")
		}
	})
}
