package client

import (
	"context"
	"net/http"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
)

// Register creates a user; the remote API then sends a verification e-mail.
func (c *GatewayClient) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.MessageResponse, error) {
	var out domain.MessageResponse
	err := c.do(ctx, call{
		method: http.MethodPost, path: "/auth/register",
		endpoint: "POST /auth/register", resource: "user", body: req, out: &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a token.
func (c *GatewayClient) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	var out domain.LoginResponse
	err := c.do(ctx, call{
		method: http.MethodPost, path: "/auth/login",
		endpoint: "POST /auth/login", resource: "credentials", body: req, out: &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the user owning the token of the session in ctx.
func (c *GatewayClient) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	err := c.do(ctx, call{
		method: http.MethodGet, path: "/auth/me",
		endpoint: "GET /auth/me", resource: "user", out: &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyEmail confirms an e-mail address with the token sent by mail.
func (c *GatewayClient) VerifyEmail(ctx context.Context, req *domain.VerifyEmailRequest) (*domain.MessageResponse, error) {
	var out domain.MessageResponse
	err := c.do(ctx, call{
		method: http.MethodPost, path: "/auth/verify-email",
		endpoint: "POST /auth/verify-email", resource: "verification", body: req, out: &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendVerification asks the remote API to send the verification e-mail again.
func (c *GatewayClient) ResendVerification(ctx context.Context, req *domain.ResendVerificationRequest) (*domain.MessageResponse, error) {
	var out domain.MessageResponse
	err := c.do(ctx, call{
		method: http.MethodPost, path: "/auth/resend-verification",
		endpoint: "POST /auth/resend-verification", resource: "verification", body: req, out: &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
