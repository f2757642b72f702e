// Package web serves the signup and upload forms as server-rendered HTML pages.
//
// Routes
//
//	GET  /        → index with links to both forms
//	GET  /signup  → empty signup form
//	POST /signup  → submit the form to the backend and render the outcome
//	GET  /upload  → empty upload form
//	POST /upload  → forward the chosen file to the backend and render the stored image
//
// Each POST builds a fresh [forms.SignupForm] or [forms.UploadForm], so a request
// carries exactly one submission through Idle → Pending → Succeeded or Failed.
// The form's message is rendered verbatim; a failed submission responds 422.
//
// The uploaded image is displayed straight from the backend through [services.Backend.ImageURL].
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/snapup/internal/forms"
	"github.com/desertthunder/snapup/internal/server"
	"github.com/desertthunder/snapup/internal/services"
	"github.com/desertthunder/snapup/internal/shared"
	"github.com/dustin/go-humanize"
)

//go:embed templates/*.html
var templateFiles embed.FS

const (
	// maxFormMemory bounds how much of a multipart body is held in memory before spilling to disk.
	maxFormMemory = 10 << 20
	// formOverhead is the room left for multipart boundaries and part headers above the file limit.
	formOverhead = 64 << 10

	defaultMaxUploadBytes = 5 * 1024 * 1024
)

// Opts configures [New].
type Opts struct {
	Backend services.Backend
	BaseURL string
	Logger  *log.Logger
	// Timeout bounds each backend call; zero means the request's own context only.
	Timeout time.Duration
	// MaxUploadBytes caps the uploaded file; the request body may exceed it by formOverhead.
	MaxUploadBytes int64
}

// App renders the form pages.
type App struct {
	backend   services.Backend
	baseURL   string
	logger    *log.Logger
	timeout   time.Duration
	maxBytes  int64
	templates *template.Template
}

type page struct {
	Title   string
	BaseURL string
	Signup  *signupView
	Upload  *uploadView
}

type signupView struct {
	Name      string
	Email     string
	Error     string
	Succeeded bool
	Response  string
}

type uploadView struct {
	Error  string
	Result *resultView
}

type resultView struct {
	Message          string
	StoredFilename   string
	OriginalFilename string
	Size             string
	ImageURL         string
}

// New parses the embedded templates and returns an App.
func New(opts Opts) (*App, error) {
	if opts.Backend == nil {
		return nil, errors.New("web: backend is required")
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}

	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &App{
		backend:   opts.Backend,
		baseURL:   opts.BaseURL,
		logger:    shared.WithLogger(opts.Logger, "component", "web"),
		timeout:   opts.Timeout,
		maxBytes:  opts.MaxUploadBytes,
		templates: tmpl,
	}, nil
}

// Register adds the page routes to r.
func (a *App) Register(r server.Router) {
	r.Handle(http.MethodGet, "/{$}", http.HandlerFunc(a.Index))
	r.Handle(http.MethodGet, "/signup", http.HandlerFunc(a.SignupPage))
	r.Handle(http.MethodPost, "/signup", http.HandlerFunc(a.Signup))
	r.Handle(http.MethodGet, "/upload", http.HandlerFunc(a.UploadPage))
	r.Handle(http.MethodPost, "/upload", http.HandlerFunc(a.Upload))
}

func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	a.render(w, http.StatusOK, "index", page{Title: "snapup"})
}

func (a *App) SignupPage(w http.ResponseWriter, r *http.Request) {
	a.render(w, http.StatusOK, "signup", page{Title: "Sign up", Signup: &signupView{}})
}

// Signup handles a submitted signup form.
func (a *App) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.render(w, http.StatusBadRequest, "signup", page{Title: "Sign up", Signup: &signupView{Error: "could not read form"}})
		return
	}

	form := forms.NewSignupForm()
	form.Set(forms.NameField, r.PostFormValue("name"))
	form.Set(forms.EmailField, r.PostFormValue("email"))
	form.Set(forms.PasswordField, r.PostFormValue("password"))

	ctx, cancel := a.context(r)
	defer cancel()

	if err := form.Submit(ctx, a.backend); err != nil {
		a.logger.Warn("signup failed", "error", err)
	}

	view := &signupView{
		Name:      form.Value(forms.NameField),
		Email:     form.Value(forms.EmailField),
		Error:     form.Error(),
		Succeeded: form.Status() == forms.Succeeded,
	}
	if resp := form.Response(); resp != nil {
		a.logger.Info("signup response", "status", resp.StatusCode, "data", resp.Data)
		if b, err := json.MarshalIndent(resp.Data, "", "  "); err == nil {
			view.Response = string(b)
		}
	}

	a.render(w, statusFor(form.Status()), "signup", page{Title: "Sign up", Signup: view})
}

func (a *App) UploadPage(w http.ResponseWriter, r *http.Request) {
	a.render(w, http.StatusOK, "upload", page{Title: "Upload an image", Upload: &uploadView{}})
}

// Upload forwards the submitted file to the backend.
func (a *App) Upload(w http.ResponseWriter, r *http.Request) {
	form := forms.NewUploadForm()
	r.Body = http.MaxBytesReader(w, r.Body, a.maxBytes+formOverhead)

	err := r.ParseMultipartForm(maxFormMemory)
	if maxErr := (*http.MaxBytesError)(nil); errors.As(err, &maxErr) {
		msg := fmt.Sprintf("file size must be %s or less", humanize.IBytes(uint64(a.maxBytes)))
		a.render(w, http.StatusRequestEntityTooLarge, "upload", page{Title: "Upload an image", Upload: &uploadView{Error: msg}})
		return
	}
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		a.render(w, http.StatusBadRequest, "upload", page{Title: "Upload an image", Upload: &uploadView{Error: "could not read form"}})
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
		if headers := r.MultipartForm.File[services.UploadField]; len(headers) > 0 && headers[0].Filename != "" {
			form.Select(fileFromHeader(headers[0]))
		}
	}

	ctx, cancel := a.context(r)
	defer cancel()

	if err := form.Submit(ctx, a.backend); err != nil {
		a.logger.Warn("upload failed", "error", err)
	}

	view := &uploadView{Error: form.Error()}
	if resp := form.Result(); resp != nil {
		view.Result = &resultView{
			Message:          resp.Message,
			StoredFilename:   resp.Result.StoredFilename,
			OriginalFilename: resp.Result.OriginalFilename,
			Size:             humanize.Bytes(uint64(resp.Result.FileSize)),
			ImageURL:         a.backend.ImageURL(resp.Result.StoredFilename),
		}
	}

	a.render(w, statusFor(form.Status()), "upload", page{Title: "Upload an image", Upload: view})
}

func fileFromHeader(h *multipart.FileHeader) *forms.File {
	return &forms.File{
		Name: h.Filename,
		Size: h.Size,
		Open: func() (io.ReadCloser, error) { return h.Open() },
	}
}

func (a *App) context(r *http.Request) (context.Context, context.CancelFunc) {
	if a.timeout > 0 {
		return context.WithTimeout(r.Context(), a.timeout)
	}
	return context.WithCancel(r.Context())
}

func (a *App) render(w http.ResponseWriter, status int, name string, data page) {
	data.BaseURL = a.baseURL

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := a.templates.ExecuteTemplate(w, name, data); err != nil {
		a.logger.Error("failed to render template", "template", name, "error", err)
	}
}

func statusFor(s forms.Status) int {
	if s == forms.Failed || s == forms.Idle {
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}
