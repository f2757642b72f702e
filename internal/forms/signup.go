package forms

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/desertthunder/snapup/internal/models"
	"github.com/desertthunder/snapup/internal/services"
	"github.com/desertthunder/snapup/internal/shared"
)

// Signer submits the signup form.
type Signer interface {
	Signup(ctx context.Context, req models.SignupRequest) (*services.SignupResponse, error)
}

// Field names a signup input.
type Field int

const (
	NameField Field = iota
	EmailField
	PasswordField
)

// Fields lists the signup inputs in display order.
var Fields = []Field{NameField, EmailField, PasswordField}

func (f Field) String() string {
	switch f {
	case NameField:
		return "Name"
	case EmailField:
		return "Email"
	case PasswordField:
		return "Password"
	default:
		return "unknown"
	}
}

// SignupForm is the state of the signup form.
type SignupForm struct {
	values   map[Field]string
	response *services.SignupResponse
	status   Status
	err      string
}

// NewSignupForm returns an empty, idle signup form.
func NewSignupForm() *SignupForm {
	return &SignupForm{values: make(map[Field]string, len(Fields))}
}

// Set stores a field value. Ignored while pending.
func (f *SignupForm) Set(field Field, value string) {
	if f.status == Pending {
		return
	}
	f.values[field] = value
}

// Value returns a field's current value.
func (f *SignupForm) Value(field Field) string { return f.values[field] }

// Request builds the POST /users body from the current values.
func (f *SignupForm) Request() models.SignupRequest {
	return models.SignupRequest{
		Name:     strings.TrimSpace(f.values[NameField]),
		Email:    strings.TrimSpace(f.values[EmailField]),
		Password: f.values[PasswordField],
	}
}

// Validate checks that every field is filled in and the email parses.
func (f *SignupForm) Validate() error {
	if problems := f.problems(); len(problems) > 0 {
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}

func (f *SignupForm) problems() []string {
	req := f.Request()
	var out []string
	if req.Name == "" {
		out = append(out, "name is required")
	}
	if req.Email == "" {
		out = append(out, "email is required")
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		out = append(out, fmt.Sprintf("email %q is not valid", req.Email))
	}
	if req.Password == "" {
		out = append(out, "password is required")
	}
	return out
}

// Begin validates the fields and marks the form pending.
//
// A validation failure is recorded as the form's message and no request should be sent.
func (f *SignupForm) Begin() error {
	if f.status == Pending {
		return ErrBusy
	}
	if problems := f.problems(); len(problems) > 0 {
		f.status = Failed
		f.err = strings.Join(problems, "; ")
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, f.err)
	}
	f.status = Pending
	f.err = ""
	return nil
}

// Resolve ends a pending submission.
func (f *SignupForm) Resolve(resp *services.SignupResponse, err error) {
	if err != nil {
		f.status = Failed
		f.err = err.Error()
		f.response = nil
		return
	}
	f.status = Succeeded
	f.response = resp
	f.err = ""
}

// Submit runs Begin, the signup request, and Resolve in sequence.
func (f *SignupForm) Submit(ctx context.Context, s Signer) error {
	if err := f.Begin(); err != nil {
		return err
	}

	resp, err := s.Signup(ctx, f.Request())
	f.Resolve(resp, err)
	return err
}

// Response returns the last successful response, or nil.
func (f *SignupForm) Response() *services.SignupResponse { return f.response }

// Status returns the current lifecycle state.
func (f *SignupForm) Status() Status { return f.status }

// Loading reports whether a request is in flight.
func (f *SignupForm) Loading() bool { return f.status == Pending }

// Error returns the message to display, or "".
func (f *SignupForm) Error() string { return f.err }
