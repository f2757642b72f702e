// Package services implements the HTTP client for the signup/upload backend.
//
// # Endpoints
//
//   - POST /users : JSON body {name, email, password}; the response has no fixed contract
//   - POST /post/upload/image : multipart field "file"; responds {message, result: {stored_filename, original_filename, file_size}}
//   - GET /uploads/{stored_filename} : the stored image
//
// # Error Handling
//
// A non-2xx response becomes an [*APIError] whose message is the body's "detail" string,
// or [DefaultUploadError] / [DefaultSignupError] when there is none.
// Transport failures wrap [shared.ErrAPIRequest]; so does [*APIError] via Unwrap.
//
// No request is retried.
package services
