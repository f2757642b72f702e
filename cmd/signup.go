package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/snapup/internal/forms"
	"github.com/urfave/cli/v3"
)

// Signup fills a signup form from flags and submits it to the backend.
func (r *Runner) Signup(ctx context.Context, cmd *cli.Command) error {
	form := forms.NewSignupForm()
	form.Set(forms.NameField, cmd.String("name"))
	form.Set(forms.EmailField, cmd.String("email"))
	form.Set(forms.PasswordField, cmd.String("password"))

	r.logger.Info("submitting signup", "email", form.Value(forms.EmailField))

	if err := form.Submit(ctx, r.backend); err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	resp := form.Response()
	r.logger.Info("signup succeeded", "status", resp.StatusCode, "response", resp.Data)

	if cmd.Bool("json") {
		return r.writeJSON(resp.Data, false)
	}

	r.writePlain("✓ Signed up as %s\n", form.Value(forms.EmailField))
	if resp.Data != nil {
		return r.writeJSON(resp.Data, true)
	}
	return nil
}
