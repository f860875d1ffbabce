// Package auth verifies dashboard session tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/devportal/devportal/internal/model"
)

// Session errors.
var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrMissingEmail = errors.New("session token has no email")
)

// DefaultSessionTTL is the lifetime of tokens issued by Issue.
const DefaultSessionTTL = 24 * time.Hour

// Claims are the claims of a session token. The subject is the user id.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionVerifier issues and verifies HS256 session tokens.
type SessionVerifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewSessionVerifier creates a verifier for tokens signed with secret.
// An empty issuer accepts tokens from any issuer.
func NewSessionVerifier(secret, issuer string) *SessionVerifier {
	return &SessionVerifier{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

// Verify parses token and returns the user it was issued for.
func (v *SessionVerifier) Verify(token string) (*model.SessionUser, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" {
		return nil, ErrMissingEmail
	}

	return &model.SessionUser{ID: claims.Subject, Email: claims.Email}, nil
}

// Issue signs a token for user valid for ttl.
func (v *SessionVerifier) Issue(user model.SessionUser, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	now := v.now()

	claims := &Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}
