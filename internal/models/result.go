package models

import "fmt"

type LoginRequest struct {
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the envelope shared by /login and /api/signup.
type AuthResponse struct {
	Success     bool     `json:"success"`
	Message     *string  `json:"message,omitempty"`
	Username    *string  `json:"username,omitempty"`
	UploadCount *int     `json:"upload_count,omitempty"`
	Skills      []string `json:"skills,omitempty"`
}

// AuthProfile is the normalized success shape of either auth endpoint.
type AuthProfile struct {
	Username    string
	UploadCount int
	Skills      []string
}

// UploadErrorResponse is the body /upload sends with an error status.
type UploadErrorResponse struct {
	Error string `json:"error"`
}

// BackendError is an application failure reported by the backend, either
// through an error status or through success=false. Message is empty when
// the backend did not say why.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}
