package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-tripmate-be/internal/dto"
	"ai-tripmate-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type fakeAuthService struct {
	signInProfile  *dto.ProfileResponse
	signInErr      error
	profile        *dto.ProfileResponse
	profileErr     error
	signOutCreds   []string
	lastSignInBody string
}

func (f *fakeAuthService) SignIn(ctx context.Context, idToken string) (*dto.ProfileResponse, string, error) {
	f.lastSignInBody = idToken
	if f.signInErr != nil {
		return nil, "", f.signInErr
	}
	return f.signInProfile, "minted-credential", nil
}

func (f *fakeAuthService) GetProfile(ctx context.Context, credential string) (*dto.ProfileResponse, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeAuthService) SignOut(ctx context.Context, credential string) {
	f.signOutCreds = append(f.signOutCreds, credential)
}

func newAuthApp(svc service.IAuthService, isProd bool) *fiber.App {
	app := fiber.New()
	NewAuthController(svc, isProd).RegisterRoutes(app)
	return app
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	return nil
}

func TestSignInSetsSessionCookie(t *testing.T) {
	svc := &fakeAuthService{signInProfile: &dto.ProfileResponse{Name: "Ada", Picture: "p.png"}}
	app := newAuthApp(svc, false)

	body, _ := json.Marshal(dto.SignInRequest{IDToken: "google-token"})
	req := httptest.NewRequest("POST", "/auth/signin", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "google-token", svc.lastSignInBody)

	cookie := sessionCookie(resp)
	if assert.NotNil(t, cookie, "session cookie missing") {
		assert.Equal(t, "minted-credential", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.False(t, cookie.Secure, "dev cookie must not require https")
		assert.Equal(t, 432000, cookie.MaxAge, "cookie lifetime must be 5 days")
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	}

	var profile dto.ProfileResponse
	json.NewDecoder(resp.Body).Decode(&profile)
	assert.Equal(t, "Ada", profile.Name)
}

func TestSignInProdCookieHardened(t *testing.T) {
	svc := &fakeAuthService{signInProfile: &dto.ProfileResponse{}}
	app := newAuthApp(svc, true)

	body, _ := json.Marshal(dto.SignInRequest{IDToken: "google-token"})
	req := httptest.NewRequest("POST", "/auth/signin", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)

	cookie := sessionCookie(resp)
	if assert.NotNil(t, cookie) {
		assert.True(t, cookie.Secure)
		assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	}
}

func TestSignInMissingToken(t *testing.T) {
	svc := &fakeAuthService{signInErr: service.ErrMissingToken}
	app := newAuthApp(svc, false)

	req := httptest.NewRequest("POST", "/auth/signin", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var errResp dto.AuthErrorResponse
	json.NewDecoder(resp.Body).Decode(&errResp)
	assert.Equal(t, "Missing idToken", errResp.Error)
	assert.Nil(t, sessionCookie(resp), "no cookie on failed sign-in")
}

func TestSignInInvalidToken(t *testing.T) {
	svc := &fakeAuthService{signInErr: service.ErrInvalidCredential}
	app := newAuthApp(svc, false)

	body, _ := json.Marshal(dto.SignInRequest{IDToken: "bad"})
	req := httptest.NewRequest("POST", "/auth/signin", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetProfile(t *testing.T) {
	tests := []struct {
		name       string
		cookie     string
		profileErr error
		wantStatus int
		wantError  string
	}{
		{
			name:       "valid session",
			cookie:     "good",
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "no cookie",
			profileErr: service.ErrUnauthenticated,
			wantStatus: fiber.StatusUnauthorized,
			wantError:  "Not authenticated",
		},
		{
			name:       "invalid session",
			cookie:     "tampered",
			profileErr: service.ErrInvalidSession,
			wantStatus: fiber.StatusBadRequest,
			wantError:  "Invalid session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAuthService{
				profile:    &dto.ProfileResponse{Name: "Ada"},
				profileErr: tt.profileErr,
			}
			app := newAuthApp(svc, false)

			req := httptest.NewRequest("GET", "/auth/profile", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "session", Value: tt.cookie})
			}

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantError != "" {
				var errResp dto.AuthErrorResponse
				json.NewDecoder(resp.Body).Decode(&errResp)
				assert.Equal(t, tt.wantError, errResp.Error)
			}
		})
	}
}

func TestSignOutAlwaysSucceeds(t *testing.T) {
	svc := &fakeAuthService{}
	app := newAuthApp(svc, false)

	// Even without a cookie, sign-out responds 200 and clears the cookie.
	req := httptest.NewRequest("POST", "/auth/signout", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.SignOutResponse
	json.NewDecoder(resp.Body).Decode(&out)
	assert.Equal(t, "Signed out", out.Message)

	cookie := sessionCookie(resp)
	if assert.NotNil(t, cookie, "clearing cookie expected") {
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
	}
}

func TestSignOutForwardsCredential(t *testing.T) {
	svc := &fakeAuthService{}
	app := newAuthApp(svc, false)

	req := httptest.NewRequest("POST", "/auth/signout", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "active-credential"})

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"active-credential"}, svc.signOutCreds)
}
