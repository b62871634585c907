package service

import (
	"context"
	"fmt"
	"time"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/port"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/session"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var authTracer = otel.Tracer("service/auth")

// AuthService orchestrates authentication flows against /auth/* and owns the
// session lifecycle: created on login, restored from the cookie, cleared on
// logout.
type AuthService struct {
	gateway  port.AuthGateway
	sessions port.SessionStore
	metrics  port.MetricsRecorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthService creates a new auth service.
func NewAuthService(gateway port.AuthGateway, sessions port.SessionStore, metrics port.MetricsRecorder, logger *zap.Logger) *AuthService {
	return &AuthService{
		gateway:  gateway,
		sessions: sessions,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// ============================================================
// Register: POST /v1/auth/register
// ============================================================

func (s *AuthService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.MessageResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Register")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	resp, err := s.gateway.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	s.logger.Info("user registered")
	return resp, nil
}

// ============================================================
// Login: POST /v1/auth/login
// ============================================================

// Login exchanges credentials for a token, loads the user behind it and opens
// a session. Nothing is stored unless every step succeeds.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*session.Session, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Login")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.gateway.Login(ctx, req)
	if err != nil {
		s.logger.Warn("login failed", zap.Error(err))
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return nil, &domain.ErrUnauthorized{Message: "login returned no token"}
	}

	user, err := s.gateway.Me(session.WithSession(ctx, &session.Session{Token: resp.Token}))
	if err != nil {
		s.logger.Warn("login: fetching user failed", zap.Error(err))
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	sess := s.sessions.Create(resp.Token, *user)
	if sess.Expired(s.now()) {
		s.sessions.Delete(sess)
		return nil, &domain.ErrUnauthorized{Message: "token already expired"}
	}
	s.metrics.IncrSessionOpened()

	s.logger.Info("session opened",
		zap.String("user_id", user.ID),
		zap.Time("expires_at", sess.ExpiresAt),
	)
	return sess, nil
}

// ============================================================
// Logout: POST /v1/auth/logout
// ============================================================

func (s *AuthService) Logout(ctx context.Context) {
	_, span := authTracer.Start(ctx, "AuthService.Logout")
	defer span.End()

	sess, ok := session.FromContext(ctx)
	if !ok {
		return
	}
	s.sessions.Delete(sess)
	s.metrics.IncrSessionClosed()
	s.logger.Info("session closed", zap.String("user_id", sess.User.ID))
}

// ============================================================
// Me: GET /v1/auth/me
// ============================================================

// Me asks the remote API who owns the session token.
func (s *AuthService) Me(ctx context.Context) (*domain.SessionInfo, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Me")
	defer span.End()

	sess, ok := session.FromContext(ctx)
	if !ok {
		return nil, &domain.ErrUnauthorized{Message: "no session"}
	}
	user, err := s.gateway.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	info := sess.Info()
	info.User = *user
	return info, nil
}

// ============================================================
// E-mail verification
// ============================================================

func (s *AuthService) VerifyEmail(ctx context.Context, req *domain.VerifyEmailRequest) (*domain.MessageResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.VerifyEmail")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	resp, err := s.gateway.VerifyEmail(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("verify email: %w", err)
	}
	return resp, nil
}

func (s *AuthService) ResendVerification(ctx context.Context, req *domain.ResendVerificationRequest) (*domain.MessageResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.ResendVerification")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	resp, err := s.gateway.ResendVerification(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("resend verification: %w", err)
	}
	return resp, nil
}

// ============================================================
// Restore: session init from the cookie
// ============================================================

// Restore resolves a session decoded from a cookie: the stored session when
// the BFA still knows it, otherwise the decoded one is put back (after a
// restart). Expired and logged-out sessions are refused.
func (s *AuthService) Restore(decoded *session.Session) (*session.Session, bool) {
	if decoded == nil {
		return nil, false
	}
	if sess, ok := s.sessions.Get(decoded.ID); ok {
		return sess, true
	}
	if !s.sessions.Restore(decoded) {
		return nil, false
	}
	s.logger.Debug("session restored from cookie", zap.String("user_id", decoded.User.ID))
	return decoded, true
}
