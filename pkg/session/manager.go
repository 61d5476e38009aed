package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is fixed: the session cookie lives 5 days.
const TTL = 5 * 24 * time.Hour

var (
	ErrMalformed = errors.New("malformed session credential")
	ErrExpired   = errors.New("session credential expired")
)

// Claims is what a session credential proves: a verified subject and the
// display profile captured at sign-in.
type Claims struct {
	Subject  string
	Name     string
	Picture  string
	IssuedAt time.Time
	Expires  time.Time
}

// Manager mints and verifies opaque session credentials. The credential is
// client-held; the server keeps no session state.
type Manager struct {
	secret []byte
	now    func() time.Time
}

func NewManager(secret string) *Manager {
	return &Manager{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue mints a signed credential for a verified identity.
func (m *Manager) Issue(subject, name, picture string) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"sub":     subject,
		"name":    name,
		"picture": picture,
		"iat":     now.Unix(),
		"exp":     now.Add(TTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session credential: %w", err)
	}
	return signed, nil
}

// Parse verifies signature and expiry and returns the claims. It does not
// check revocation; that needs the identity provider.
func (m *Manager) Parse(credential string) (*Claims, error) {
	token, err := jwt.Parse(credential, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrMalformed
	}
	if !token.Valid {
		return nil, ErrMalformed
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformed
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return nil, ErrMalformed
	}
	name, _ := mapClaims["name"].(string)
	picture, _ := mapClaims["picture"].(string)

	claims := &Claims{
		Subject: sub,
		Name:    name,
		Picture: picture,
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.Expires = exp.Time
	}

	return claims, nil
}
