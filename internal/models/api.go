package models

// SignupRequest is the JSON body of POST /users.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UploadResponse is the JSON body of a successful POST /post/upload/image.
type UploadResponse struct {
	Message string       `json:"message"`
	Result  UploadResult `json:"result"`
}

// MessageResponse is a bare {"message": ...} body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of a non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
