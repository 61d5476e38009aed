package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"ai-tripmate-be/internal/config"
	"ai-tripmate-be/internal/dto"
	"ai-tripmate-be/internal/pkg/logger"
	"ai-tripmate-be/pkg/session"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// IOAuthService covers the code-exchange sign-in path for clients that use
// the full OAuth redirect flow instead of posting an ID token.
type IOAuthService interface {
	GetLoginURL(provider string) (string, error)
	HandleCallback(ctx context.Context, provider string, code string) (*dto.ProfileResponse, string, error)
}

type oauthService struct {
	googleConf *oauth2.Config
	sessions   *session.Manager
	sysLogger  logger.ILogger
}

func NewOAuthService(cfg config.AuthConfig, sessions *session.Manager, sysLogger logger.ILogger) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &oauthService{
		googleConf: conf,
		sessions:   sessions,
		sysLogger:  sysLogger,
	}
}

func (s *oauthService) GetLoginURL(provider string) (string, error) {
	if provider != "google" {
		return "", errors.New("unsupported provider")
	}

	b := make([]byte, 16)
	rand.Read(b)
	state := base64.URLEncoding.EncodeToString(b)

	return s.googleConf.AuthCodeURL(state), nil
}

func (s *oauthService) HandleCallback(ctx context.Context, provider string, code string) (*dto.ProfileResponse, string, error) {
	if provider != "google" {
		return nil, "", errors.New("unsupported provider")
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("%w: code exchange failed: %v", ErrInvalidCredential, err)
	}

	userInfoURL := "https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken
	req, err := http.NewRequestWithContext(ctx, "GET", userInfoURL, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed reading user info: %w", err)
	}

	var googleUser struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.Unmarshal(content, &googleUser); err != nil {
		return nil, "", err
	}
	if googleUser.ID == "" {
		return nil, "", fmt.Errorf("%w: empty user info", ErrInvalidCredential)
	}

	credential, err := s.sessions.Issue(googleUser.ID, googleUser.Name, googleUser.Picture)
	if err != nil {
		return nil, "", fmt.Errorf("issue session: %w", err)
	}

	s.sysLogger.Info("oauth", "User signed in via code exchange", map[string]interface{}{
		"subject": googleUser.ID,
		"email":   googleUser.Email,
	})

	return &dto.ProfileResponse{
		Name:    googleUser.Name,
		Picture: googleUser.Picture,
	}, credential, nil
}
