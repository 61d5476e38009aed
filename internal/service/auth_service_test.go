package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-tripmate-be/internal/dto"
	"ai-tripmate-be/pkg/identity"
	"ai-tripmate-be/pkg/session"

	"github.com/stretchr/testify/assert"
)

type fakeIdentityProvider struct {
	identity  *identity.Identity
	verifyErr error
	revokeErr error
	checkErr  error

	revokedSubjects []string
	checkedSubjects []string
	checkedIssuedAt time.Time
}

func (f *fakeIdentityProvider) VerifyIDToken(ctx context.Context, idToken string) (*identity.Identity, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.identity, nil
}

func (f *fakeIdentityProvider) CheckRevoked(ctx context.Context, subject string, issuedAt time.Time) error {
	f.checkedSubjects = append(f.checkedSubjects, subject)
	f.checkedIssuedAt = issuedAt
	return f.checkErr
}

func (f *fakeIdentityProvider) RevokeRefreshTokens(ctx context.Context, subject string) error {
	f.revokedSubjects = append(f.revokedSubjects, subject)
	return f.revokeErr
}

func newAuthFixture(provider *fakeIdentityProvider) (IAuthService, *session.Manager) {
	sessions := session.NewManager("test-secret")
	return NewAuthService(provider, sessions, nil, noopLogger{}), sessions
}

func TestSignInMintsParsableCredential(t *testing.T) {
	provider := &fakeIdentityProvider{
		identity: &identity.Identity{Subject: "uid-1", Email: "a@b.c", Name: "Ada", Picture: "p.png"},
	}
	svc, sessions := newAuthFixture(provider)

	profile, credential, err := svc.SignIn(context.Background(), "google-token")
	assert.NoError(t, err)
	assert.Equal(t, &dto.ProfileResponse{Name: "Ada", Picture: "p.png"}, profile)

	claims, err := sessions.Parse(credential)
	assert.NoError(t, err)
	assert.Equal(t, "uid-1", claims.Subject)
	assert.Equal(t, "Ada", claims.Name)
}

func TestSignInErrors(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		svc, _ := newAuthFixture(&fakeIdentityProvider{})
		_, _, err := svc.SignIn(context.Background(), "")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("provider rejects token", func(t *testing.T) {
		svc, _ := newAuthFixture(&fakeIdentityProvider{verifyErr: identity.ErrInvalidToken})
		_, _, err := svc.SignIn(context.Background(), "forged")
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})
}

func TestGetProfileChecksRevocation(t *testing.T) {
	provider := &fakeIdentityProvider{
		identity: &identity.Identity{Subject: "uid-1", Name: "Ada"},
	}
	svc, sessions := newAuthFixture(provider)

	credential, err := sessions.Issue("uid-1", "Ada", "p.png")
	assert.NoError(t, err)

	profile, err := svc.GetProfile(context.Background(), credential)
	assert.NoError(t, err)
	assert.Equal(t, "Ada", profile.Name)

	// The revocation round trip must carry subject and issue time.
	assert.Equal(t, []string{"uid-1"}, provider.checkedSubjects)
	assert.False(t, provider.checkedIssuedAt.IsZero())
}

func TestGetProfileErrors(t *testing.T) {
	t.Run("no credential", func(t *testing.T) {
		svc, _ := newAuthFixture(&fakeIdentityProvider{})
		_, err := svc.GetProfile(context.Background(), "")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("malformed credential", func(t *testing.T) {
		svc, _ := newAuthFixture(&fakeIdentityProvider{})
		_, err := svc.GetProfile(context.Background(), "garbage")
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("revoked session", func(t *testing.T) {
		provider := &fakeIdentityProvider{checkErr: identity.ErrRevoked}
		svc, sessions := newAuthFixture(provider)
		credential, _ := sessions.Issue("uid-1", "Ada", "")

		_, err := svc.GetProfile(context.Background(), credential)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})
}

func TestSignOutRevokesAttributableSessions(t *testing.T) {
	provider := &fakeIdentityProvider{}
	svc, sessions := newAuthFixture(provider)
	credential, _ := sessions.Issue("uid-1", "Ada", "")

	svc.SignOut(context.Background(), credential)
	assert.Equal(t, []string{"uid-1"}, provider.revokedSubjects)
}

func TestSignOutNeverFails(t *testing.T) {
	t.Run("empty credential", func(t *testing.T) {
		provider := &fakeIdentityProvider{}
		svc, _ := newAuthFixture(provider)
		svc.SignOut(context.Background(), "")
		assert.Empty(t, provider.revokedSubjects)
	})

	t.Run("unattributable credential", func(t *testing.T) {
		provider := &fakeIdentityProvider{}
		svc, _ := newAuthFixture(provider)
		svc.SignOut(context.Background(), "garbage")
		assert.Empty(t, provider.revokedSubjects)
	})

	t.Run("revocation failure is swallowed", func(t *testing.T) {
		provider := &fakeIdentityProvider{revokeErr: errors.New("toolkit down")}
		svc, sessions := newAuthFixture(provider)
		credential, _ := sessions.Issue("uid-1", "Ada", "")

		// Must not panic or surface the failure.
		svc.SignOut(context.Background(), credential)
		assert.Equal(t, []string{"uid-1"}, provider.revokedSubjects)
	})
}
