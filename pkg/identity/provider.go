package identity

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidToken means the identity token failed verification.
	ErrInvalidToken = errors.New("invalid identity token")
	// ErrRevoked means the subject revoked its sessions after the
	// credential was issued.
	ErrRevoked = errors.New("session revoked by identity provider")
)

// Identity is the verified result of an identity-token check.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// Provider abstracts the external identity provider. Session validity is
// re-derived through it on every verification; the gateway stores nothing.
type Provider interface {
	// VerifyIDToken validates the raw identity token (signature, issuer,
	// audience) with the provider and returns the verified identity.
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)

	// CheckRevoked returns ErrRevoked when the subject invalidated its
	// sessions after issuedAt. This is a provider round trip, not a local
	// check.
	CheckRevoked(ctx context.Context, subject string, issuedAt time.Time) error

	// RevokeRefreshTokens invalidates every outstanding session of the
	// subject at the provider.
	RevokeRefreshTokens(ctx context.Context, subject string) error
}
