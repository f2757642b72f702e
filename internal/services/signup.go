package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/snapup/internal/models"
)

// SignupResponse is whatever POST /users returned; the backend documents no fixed shape.
type SignupResponse struct {
	StatusCode int
	Data       any
}

// Signup submits name, email, and password as JSON to POST /users.
func (c *Client) Signup(ctx context.Context, req models.SignupRequest) (*SignupResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode signup request: %w", err)
	}

	resp, err := c.Post(ctx, "/users", body)
	if err != nil {
		return nil, err
	}

	if !resp.OK() {
		return nil, newAPIError(resp.StatusCode, resp.Body, DefaultSignupError)
	}

	return &SignupResponse{StatusCode: resp.StatusCode, Data: resp.JSONData}, nil
}
