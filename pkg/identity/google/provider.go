package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ai-tripmate-be/pkg/identity"
)

const (
	tokenInfoURL       = "https://oauth2.googleapis.com/tokeninfo"
	identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

	callTimeout = 10 * time.Second
)

// Provider verifies Google ID tokens via the tokeninfo endpoint and checks
// revocation through the Identity Toolkit accounts API (validSince), the
// same mechanism the Firebase SDKs use.
type Provider struct {
	clientID string
	apiKey   string
	client   *http.Client

	tokenInfoEndpoint string
	toolkitEndpoint   string
}

var _ identity.Provider = &Provider{}

func NewProvider(clientID, apiKey string) *Provider {
	return &Provider{
		clientID:          clientID,
		apiKey:            apiKey,
		client:            &http.Client{Timeout: callTimeout},
		tokenInfoEndpoint: tokenInfoURL,
		toolkitEndpoint:   identityToolkitURL,
	}
}

type tokenInfoResponse struct {
	Sub     string `json:"sub"`
	Aud     string `json:"aud"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Exp     string `json:"exp"`
}

func (p *Provider) VerifyIDToken(ctx context.Context, idToken string) (*identity.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	endpoint := p.tokenInfoEndpoint + "?" + url.Values{"id_token": {idToken}}.Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tokeninfo response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tokeninfo status %d", identity.ErrInvalidToken, resp.StatusCode)
	}

	var info tokenInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("decode tokeninfo response: %w", err)
	}

	if info.Sub == "" {
		return nil, fmt.Errorf("%w: missing subject", identity.ErrInvalidToken)
	}
	if p.clientID != "" && info.Aud != p.clientID {
		return nil, fmt.Errorf("%w: audience mismatch", identity.ErrInvalidToken)
	}

	return &identity.Identity{
		Subject: info.Sub,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}

type accountsLookupResponse struct {
	Users []struct {
		LocalID    string `json:"localId"`
		ValidSince string `json:"validSince"`
		Disabled   bool   `json:"disabled"`
	} `json:"users"`
}

func (p *Provider) CheckRevoked(ctx context.Context, subject string, issuedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	payload := map[string]any{"localId": []string{subject}}
	raw, err := p.toolkitPost(ctx, "accounts:lookup", payload)
	if err != nil {
		return err
	}

	var lookup accountsLookupResponse
	if err := json.Unmarshal(raw, &lookup); err != nil {
		return fmt.Errorf("decode accounts lookup: %w", err)
	}
	if len(lookup.Users) == 0 {
		return fmt.Errorf("%w: unknown subject", identity.ErrRevoked)
	}

	user := lookup.Users[0]
	if user.Disabled {
		return fmt.Errorf("%w: account disabled", identity.ErrRevoked)
	}
	if user.ValidSince != "" {
		validSince, err := strconv.ParseInt(user.ValidSince, 10, 64)
		if err == nil && issuedAt.Unix() < validSince {
			return identity.ErrRevoked
		}
	}
	return nil
}

func (p *Provider) RevokeRefreshTokens(ctx context.Context, subject string) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	payload := map[string]any{
		"localId":    subject,
		"validSince": strconv.FormatInt(time.Now().Unix(), 10),
	}
	_, err := p.toolkitPost(ctx, "accounts:update", payload)
	return err
}

func (p *Provider) toolkitPost(ctx context.Context, method string, payload map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s?key=%s", p.toolkitEndpoint, method, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity toolkit request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read identity toolkit response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity toolkit %s: status %d, body: %s", method, resp.StatusCode, string(respBytes))
	}

	return respBytes, nil
}
