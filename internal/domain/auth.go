package domain

import (
	"net/mail"
	"strings"
	"time"
)

// ============================================================
// Auth: Request / Response types (remote /auth/* contract)
// ============================================================

// User is the authenticated user returned by GET /auth/me.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RegisterRequest is the body for POST /v1/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	if err := validateEmail(&r.Email); err != nil {
		return err
	}
	if r.Password == "" {
		return &ErrValidation{Field: "password", Message: "required"}
	}
	return nil
}

// LoginRequest is the body for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if err := validateEmail(&r.Email); err != nil {
		return err
	}
	if r.Password == "" {
		return &ErrValidation{Field: "password", Message: "required"}
	}
	return nil
}

// LoginResponse is what the remote API answers on login.
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

// VerifyEmailRequest is the body for POST /v1/auth/verify-email.
type VerifyEmailRequest struct {
	AuthToken string `json:"authToken"`
}

func (r *VerifyEmailRequest) Validate() error {
	if strings.TrimSpace(r.AuthToken) == "" {
		return &ErrValidation{Field: "authToken", Message: "required"}
	}
	return nil
}

// ResendVerificationRequest is the body for POST /v1/auth/resend-verification.
type ResendVerificationRequest struct {
	Email string `json:"email"`
}

func (r *ResendVerificationRequest) Validate() error {
	return validateEmail(&r.Email)
}

// MessageResponse is the generic {message} answer of the auth endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// SessionInfo is returned to the UI after login and by GET /v1/auth/me.
type SessionInfo struct {
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func validateEmail(email *string) error {
	*email = strings.TrimSpace(*email)
	if *email == "" {
		return &ErrValidation{Field: "email", Message: "required"}
	}
	if _, err := mail.ParseAddress(*email); err != nil {
		return &ErrValidation{Field: "email", Message: "invalid address"}
	}
	return nil
}
