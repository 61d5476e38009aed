package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-tripmate-be/pkg/identity"
)

func TestVerifyIDToken(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		clientID string
		wantErr  error
		wantSub  string
	}{
		{
			name:    "valid token",
			status:  http.StatusOK,
			body:    `{"sub":"uid-1","aud":"client-1","email":"a@b.c","name":"Ada","picture":"p.png"}`,
			wantSub: "uid-1",
		},
		{
			name:     "audience enforced when configured",
			status:   http.StatusOK,
			body:     `{"sub":"uid-1","aud":"someone-else"}`,
			clientID: "client-1",
			wantErr:  identity.ErrInvalidToken,
		},
		{
			name:     "matching audience passes",
			status:   http.StatusOK,
			body:     `{"sub":"uid-1","aud":"client-1"}`,
			clientID: "client-1",
			wantSub:  "uid-1",
		},
		{
			name:    "rejected token",
			status:  http.StatusBadRequest,
			body:    `{"error":"invalid_token"}`,
			wantErr: identity.ErrInvalidToken,
		},
		{
			name:    "missing subject",
			status:  http.StatusOK,
			body:    `{"aud":"client-1"}`,
			wantErr: identity.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("id_token"); got != "the-token" {
					t.Errorf("id_token = %q, want the-token", got)
				}
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			p := NewProvider(tt.clientID, "api-key")
			p.tokenInfoEndpoint = srv.URL

			got, err := p.VerifyIDToken(context.Background(), "the-token")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("VerifyIDToken failed: %v", err)
			}
			if got.Subject != tt.wantSub {
				t.Errorf("Subject = %q, want %q", got.Subject, tt.wantSub)
			}
		})
	}
}

func TestCheckRevoked(t *testing.T) {
	issued := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{
			name: "valid session",
			body: fmt.Sprintf(`{"users":[{"localId":"uid-1","validSince":"%d"}]}`, issued.Add(-time.Hour).Unix()),
		},
		{
			name:    "revoked after issue",
			body:    fmt.Sprintf(`{"users":[{"localId":"uid-1","validSince":"%d"}]}`, issued.Add(time.Hour).Unix()),
			wantErr: identity.ErrRevoked,
		},
		{
			name:    "disabled account",
			body:    `{"users":[{"localId":"uid-1","disabled":true}]}`,
			wantErr: identity.ErrRevoked,
		},
		{
			name:    "unknown subject",
			body:    `{"users":[]}`,
			wantErr: identity.ErrRevoked,
		},
		{
			name: "no validSince recorded",
			body: `{"users":[{"localId":"uid-1"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			p := NewProvider("client-1", "api-key")
			p.toolkitEndpoint = srv.URL

			err := p.CheckRevoked(context.Background(), "uid-1", issued)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CheckRevoked failed: %v", err)
			}
		})
	}
}

func TestRevokeRefreshTokens(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"localId":"uid-1"}`)
	}))
	defer srv.Close()

	p := NewProvider("client-1", "api-key")
	p.toolkitEndpoint = srv.URL

	if err := p.RevokeRefreshTokens(context.Background(), "uid-1"); err != nil {
		t.Fatalf("RevokeRefreshTokens failed: %v", err)
	}
	if gotPath != "/accounts:update" {
		t.Errorf("path = %q, want /accounts:update", gotPath)
	}
}
