package service

import "errors"

// Shared sentinels controllers map to HTTP statuses.
var (
	// ErrInvalidInput marks a malformed ingestion payload.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingToken means a sign-in request carried no identity token.
	ErrMissingToken = errors.New("missing idToken")

	// ErrInvalidCredential means the identity provider rejected the token.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrUnauthenticated means no session credential was presented.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrInvalidSession means the presented credential is malformed,
	// expired or revoked.
	ErrInvalidSession = errors.New("invalid session")
)
