package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/snapup/internal/models"
	"github.com/desertthunder/snapup/internal/repositories"
	"github.com/desertthunder/snapup/internal/services"
	"github.com/desertthunder/snapup/internal/shared"
	"github.com/dustin/go-humanize"
	"golang.org/x/crypto/bcrypt"
)

// UploadedMessage is the "message" of a successful upload response.
const UploadedMessage = "image uploaded"

// BackendOpts configures a [Backend].
type BackendOpts struct {
	DB             *sql.DB
	UploadDir      string
	MaxUploadBytes int64
	MinImageSide   int
	Logger         *log.Logger
	// HashCost is the bcrypt cost; zero means [bcrypt.DefaultCost].
	HashCost int
}

// Backend implements the HTTP API the signup and upload forms submit to.
type Backend struct {
	users     *repositories.UserRepository
	images    *repositories.PostImageRepository
	uploadDir string
	maxBytes  int64
	minSide   int
	hashCost  int
	logger    *log.Logger
}

// NewBackend creates a Backend and its upload directory.
func NewBackend(opts BackendOpts) (*Backend, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("%w: database is required", shared.ErrInvalidConfig)
	}
	if opts.UploadDir == "" {
		opts.UploadDir = "uploads"
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 5 * 1024 * 1024
	}
	if opts.MinImageSide <= 0 {
		opts.MinImageSide = 100
	}
	if opts.HashCost == 0 {
		opts.HashCost = bcrypt.DefaultCost
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	if err := os.MkdirAll(opts.UploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &Backend{
		users:     repositories.NewUserRepository(opts.DB),
		images:    repositories.NewPostImageRepository(opts.DB),
		uploadDir: opts.UploadDir,
		maxBytes:  opts.MaxUploadBytes,
		minSide:   opts.MinImageSide,
		hashCost:  opts.HashCost,
		logger:    shared.WithLogger(opts.Logger, "component", "backend"),
	}, nil
}

// Register adds the backend's routes to r.
func (b *Backend) Register(r Router) {
	r.Handle(http.MethodGet, "/{$}", http.HandlerFunc(b.Home))
	r.Handle(http.MethodPost, "/users", http.HandlerFunc(b.CreateUser))
	r.Handle(http.MethodPost, services.UploadPath, http.HandlerFunc(b.UploadImage))
	r.Handle(http.MethodGet, "/post/images", http.HandlerFunc(b.ListImages))
	r.Handle(http.MethodGet, services.UploadsPrefix, b.Uploads())
}

// Home answers GET / so clients can check the backend is up.
func (b *Backend) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Post API Server"})
}

// CreateUser handles POST /users.
func (b *Backend) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "request body must be JSON")
		return
	}

	for _, f := range []struct{ name, value string }{{"name", req.Name}, {"email", req.Email}, {"password", req.Password}} {
		if strings.TrimSpace(f.value) == "" {
			writeMissingField(w, f.name)
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), b.hashCost)
	if err != nil {
		b.logger.Error("failed to hash password", "error", err)
		writeDetail(w, http.StatusInternalServerError, "could not create user")
		return
	}

	user := models.NewUser(0, strings.TrimSpace(req.Name), strings.TrimSpace(req.Email), string(hash))
	switch err := b.users.Create(user); {
	case errors.Is(err, shared.ErrDuplicateEmail):
		writeDetail(w, http.StatusConflict, "email already registered")
		return
	case errors.Is(err, shared.ErrInvalidInput):
		writeDetail(w, http.StatusUnprocessableEntity, strings.TrimPrefix(err.Error(), shared.ErrInvalidInput.Error()+": "))
		return
	case err != nil:
		b.logger.Error("failed to create user", "error", err)
		writeDetail(w, http.StatusInternalServerError, "could not create user")
		return
	}

	b.logger.Info("user created", "id", user.ID(), "email", user.Email())
	writeJSON(w, http.StatusOK, user.Response())
}

// UploadImage handles POST /post/upload/image.
//
// The "file" part must declare an image/* content type, fit within the size limit,
// decode as an image at least minSide pixels on each side, and not be grayscale.
// Accepted files are stored as {uuid}.{ext} under the upload directory.
func (b *Backend) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, b.maxBytes+1<<20)

	file, header, err := r.FormFile(services.UploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			writeDetail(w, http.StatusBadRequest, b.sizeMessage())
		case errors.Is(err, http.ErrMissingFile):
			writeMissingField(w, services.UploadField)
		default:
			writeDetail(w, http.StatusBadRequest, "request must be multipart/form-data")
		}
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		writeDetail(w, http.StatusBadRequest, "only image files can be uploaded")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, b.maxBytes+1))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "could not read uploaded file")
		return
	}
	if int64(len(data)) > b.maxBytes {
		writeDetail(w, http.StatusBadRequest, b.sizeMessage())
		return
	}

	if err := checkImage(data, b.minSide); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	stored := shared.GenerateID() + "." + storedExtension(header.Filename, contentType)
	path := filepath.Join(b.uploadDir, stored)

	if err := os.WriteFile(path, data, 0644); err != nil {
		b.logger.Error("failed to write upload", "path", path, "error", err)
		writeDetail(w, http.StatusInternalServerError, "could not store file")
		return
	}

	img := models.NewPostImage(0, path, stored, header.Filename, int64(len(data)))
	if err := b.images.Create(img); err != nil {
		os.Remove(path)
		b.logger.Error("failed to record upload", "path", path, "error", err)
		writeDetail(w, http.StatusInternalServerError, "could not store file")
		return
	}

	b.logger.Info("image stored", "stored", stored, "original", header.Filename, "size", humanize.IBytes(uint64(len(data))))
	writeJSON(w, http.StatusOK, models.UploadResponse{Message: UploadedMessage, Result: img.Result()})
}

// ListImages handles GET /post/images, newest uploads last.
func (b *Backend) ListImages(w http.ResponseWriter, r *http.Request) {
	images, err := b.images.List(map[string]any{})
	if err != nil {
		b.logger.Error("failed to list images", "error", err)
		writeDetail(w, http.StatusInternalServerError, "could not list images")
		return
	}

	results := make([]models.UploadResult, 0, len(images))
	for _, img := range images {
		results = append(results, img.Result())
	}
	writeJSON(w, http.StatusOK, results)
}

// Uploads serves GET /uploads/{stored_filename} for recorded images only.
func (b *Backend) Uploads() http.Handler {
	files := http.StripPrefix(services.UploadsPrefix, http.FileServer(http.Dir(b.uploadDir)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, services.UploadsPrefix)
		if name == "" || strings.ContainsAny(name, `/\`) {
			writeDetail(w, http.StatusNotFound, "Not Found")
			return
		}

		if _, err := b.images.GetByStoredFilename(name); err != nil {
			writeDetail(w, http.StatusNotFound, "Not Found")
			return
		}

		files.ServeHTTP(w, r)
	})
}

func (b *Backend) sizeMessage() string {
	return fmt.Sprintf("file size must be %s or less", humanize.IBytes(uint64(b.maxBytes)))
}
