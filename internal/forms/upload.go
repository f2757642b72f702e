package forms

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/desertthunder/snapup/internal/models"
	"github.com/desertthunder/snapup/internal/shared"
)

// SelectFileMessage is shown when an upload is submitted with no file chosen.
const SelectFileMessage = "select a file"

// Uploader sends one image to the backend.
type Uploader interface {
	UploadImage(ctx context.Context, filename string, r io.Reader) (*models.UploadResponse, error)
}

// File is the image chosen in the upload form.
type File struct {
	Path string
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// FileFromPath stats path and returns a [File] that opens it on demand.
func FileFromPath(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", shared.ErrInvalidArgument, path)
	}

	return &File{
		Path: path,
		Name: filepath.Base(path),
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// UploadForm is the state of the single-image upload form.
type UploadForm struct {
	file   *File
	result *models.UploadResponse
	status Status
	err    string
}

// NewUploadForm returns an idle form with no file selected.
func NewUploadForm() *UploadForm {
	return &UploadForm{}
}

// Select replaces the chosen file and clears the previous outcome. Ignored while pending.
func (f *UploadForm) Select(file *File) {
	if f.status == Pending {
		return
	}
	f.file = file
	f.result = nil
	f.err = ""
	f.status = Idle
}

// Begin starts a submission.
//
// Without a selected file it records [SelectFileMessage] and returns [shared.ErrNoFileSelected]; the caller must not send a request.
// On success the form is pending and the error message is cleared.
func (f *UploadForm) Begin() error {
	if f.status == Pending {
		return ErrBusy
	}
	if f.file == nil {
		f.err = SelectFileMessage
		return shared.ErrNoFileSelected
	}
	f.status = Pending
	f.err = ""
	return nil
}

// Resolve ends a pending submission with the request's outcome.
func (f *UploadForm) Resolve(resp *models.UploadResponse, err error) {
	if err != nil {
		f.status = Failed
		f.err = err.Error()
		f.result = nil
		return
	}
	f.status = Succeeded
	f.result = resp
	f.err = ""
}

// Submit runs Begin, the upload, and Resolve in sequence.
//
// The returned error is the one recorded on the form; it is nil only on success.
func (f *UploadForm) Submit(ctx context.Context, up Uploader) error {
	if err := f.Begin(); err != nil {
		return err
	}

	resp, err := f.Send(ctx, up)
	f.Resolve(resp, err)
	return err
}

// Send uploads the selected file without touching the form's state.
//
// Callers that run the request elsewhere (e.g. in a tea.Cmd) pair it with Begin and Resolve.
func (f *UploadForm) Send(ctx context.Context, up Uploader) (*models.UploadResponse, error) {
	if f.file == nil {
		return nil, shared.ErrNoFileSelected
	}
	if f.file.Open == nil {
		return nil, fmt.Errorf("%w: file %s cannot be read", shared.ErrInvalidArgument, f.file.Name)
	}

	rc, err := f.file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return up.UploadImage(ctx, f.file.Name, rc)
}

// File returns the selected file, or nil.
func (f *UploadForm) File() *File { return f.file }

// Result returns the last successful response, or nil.
func (f *UploadForm) Result() *models.UploadResponse { return f.result }

// Status returns the current lifecycle state.
func (f *UploadForm) Status() Status { return f.status }

// Loading reports whether a request is in flight.
func (f *UploadForm) Loading() bool { return f.status == Pending }

// Error returns the message to display, or "".
func (f *UploadForm) Error() string { return f.err }
