package forms

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/snapup/internal/models"
	"github.com/desertthunder/snapup/internal/services"
	"github.com/desertthunder/snapup/internal/shared"
)

type fakeSigner struct {
	calls  int
	got    models.SignupRequest
	resp   *services.SignupResponse
	err    error
	during func()
}

func (s *fakeSigner) Signup(ctx context.Context, req models.SignupRequest) (*services.SignupResponse, error) {
	s.calls++
	s.got = req
	if s.during != nil {
		s.during()
	}
	return s.resp, s.err
}

func filledSignup() *SignupForm {
	form := NewSignupForm()
	form.Set(NameField, " Kim ")
	form.Set(EmailField, "kim@example.com")
	form.Set(PasswordField, " secret ")
	return form
}

func TestSignupForm(t *testing.T) {
	t.Run("Submits Trimmed Name And Raw Password", func(t *testing.T) {
		form := filledSignup()
		s := &fakeSigner{resp: &services.SignupResponse{StatusCode: 200}}

		if err := form.Submit(context.Background(), s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if s.got.Name != "Kim" || s.got.Email != "kim@example.com" || s.got.Password != " secret " {
			t.Errorf("unexpected request %+v", s.got)
		}
		if form.Status() != Succeeded || form.Response() == nil {
			t.Errorf("expected success with response, got %s", form.Status())
		}
	})

	t.Run("Validation Blocks Request", func(t *testing.T) {
		form := NewSignupForm()
		form.Set(EmailField, "nope")
		s := &fakeSigner{}

		err := form.Submit(context.Background(), s)

		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if s.calls != 0 {
			t.Error("expected no network call")
		}
		for _, want := range []string{"name is required", `email "nope" is not valid`, "password is required"} {
			if !strings.Contains(form.Error(), want) {
				t.Errorf("expected %q in %q", want, form.Error())
			}
		}
	})

	t.Run("Server Error Is Displayed Verbatim", func(t *testing.T) {
		form := filledSignup()
		s := &fakeSigner{err: &services.APIError{StatusCode: 409, Detail: "email already registered"}}

		form.Submit(context.Background(), s)

		if form.Error() != "email already registered" {
			t.Errorf("unexpected error message %q", form.Error())
		}
		if form.Status() != Failed {
			t.Errorf("expected failed, got %s", form.Status())
		}
	})

	t.Run("Loading Only While Pending", func(t *testing.T) {
		form := filledSignup()
		var during bool
		s := &fakeSigner{err: errors.New("offline")}
		s.during = func() { during = form.Loading() }

		form.Submit(context.Background(), s)

		if !during || form.Loading() {
			t.Errorf("expected loading during=%v after=%v", during, form.Loading())
		}
	})

	t.Run("Set Ignored While Pending", func(t *testing.T) {
		form := filledSignup()
		if err := form.Begin(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		form.Set(NameField, "Changed")
		if form.Value(NameField) != " Kim " {
			t.Error("expected value to stay while pending")
		}
		if err := form.Begin(); !errors.Is(err, ErrBusy) {
			t.Errorf("expected ErrBusy, got %v", err)
		}
	})
}

func TestStatusString(t *testing.T) {
	for s, want := range map[Status]string{Idle: "idle", Pending: "pending", Succeeded: "succeeded", Failed: "failed", Status(9): "unknown"} {
		if s.String() != want {
			t.Errorf("Status(%d).String() = %s, want %s", s, s.String(), want)
		}
	}
}
