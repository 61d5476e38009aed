package service

import (
	"context"
	"fmt"

	"ai-tripmate-be/internal/dto"
	"ai-tripmate-be/internal/pkg/logger"
	"ai-tripmate-be/pkg/events"
	"ai-tripmate-be/pkg/identity"
	pktNats "ai-tripmate-be/pkg/nats"
	"ai-tripmate-be/pkg/session"
)

type IAuthService interface {
	// SignIn verifies the identity token and mints a session credential the
	// controller hands to the client as a cookie.
	SignIn(ctx context.Context, idToken string) (*dto.ProfileResponse, string, error)

	// GetProfile re-derives session validity, including a revocation check
	// at the identity provider.
	GetProfile(ctx context.Context, credential string) (*dto.ProfileResponse, error)

	// SignOut revokes the subject's refresh tokens best-effort. It never
	// fails from the caller's perspective.
	SignOut(ctx context.Context, credential string)
}

type authService struct {
	identityProvider identity.Provider
	sessions         *session.Manager
	eventPublisher   *pktNats.Publisher
	sysLogger        logger.ILogger
}

func NewAuthService(
	identityProvider identity.Provider,
	sessions *session.Manager,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IAuthService {
	return &authService{
		identityProvider: identityProvider,
		sessions:         sessions,
		eventPublisher:   eventPublisher,
		sysLogger:        sysLogger,
	}
}

func (s *authService) SignIn(ctx context.Context, idToken string) (*dto.ProfileResponse, string, error) {
	if idToken == "" {
		return nil, "", ErrMissingToken
	}

	verified, err := s.identityProvider.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.sysLogger.Warn("auth", "Identity token verification failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	credential, err := s.sessions.Issue(verified.Subject, verified.Name, verified.Picture)
	if err != nil {
		return nil, "", fmt.Errorf("issue session: %w", err)
	}

	s.sysLogger.Info("auth", "User signed in", map[string]interface{}{
		"subject": verified.Subject,
		"email":   verified.Email,
	})
	if err := s.eventPublisher.Publish(ctx, events.NewUserSignIn(verified.Subject)); err != nil {
		s.sysLogger.Warn("auth", "Failed to publish sign-in event", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return &dto.ProfileResponse{
		Name:    verified.Name,
		Picture: verified.Picture,
	}, credential, nil
}

func (s *authService) GetProfile(ctx context.Context, credential string) (*dto.ProfileResponse, error) {
	if credential == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := s.sessions.Parse(credential)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	// Signature and expiry alone are not enough: the subject may have
	// revoked its sessions since issuance.
	if err := s.identityProvider.CheckRevoked(ctx, claims.Subject, claims.IssuedAt); err != nil {
		s.sysLogger.Warn("auth", "Session rejected by revocation check", map[string]interface{}{
			"subject": claims.Subject,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	return &dto.ProfileResponse{
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}

func (s *authService) SignOut(ctx context.Context, credential string) {
	if credential == "" {
		return
	}

	claims, err := s.sessions.Parse(credential)
	if err != nil {
		// Nothing to revoke for a credential we cannot attribute.
		return
	}

	revoked := true
	if err := s.identityProvider.RevokeRefreshTokens(ctx, claims.Subject); err != nil {
		revoked = false
		s.sysLogger.Warn("auth", "Refresh token revocation failed during sign-out", map[string]interface{}{
			"subject": claims.Subject,
			"error":   err.Error(),
		})
	}

	s.sysLogger.Info("auth", "User signed out", map[string]interface{}{
		"subject": claims.Subject,
		"revoked": revoked,
	})
	if err := s.eventPublisher.Publish(ctx, events.NewUserSignOut(claims.Subject, revoked)); err != nil {
		s.sysLogger.Warn("auth", "Failed to publish sign-out event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
