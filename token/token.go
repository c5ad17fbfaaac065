// Package token mints and verifies the signed bearer tokens that carry a
// user's identity between login and subsequent requests.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken covers malformed tokens, bad signatures and expired
	// tokens. The sub-check that failed is never exposed to the caller.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrMalformedSubject means the token verified cryptographically but its
	// subject is not a well-formed user ID. This indicates a bug on the
	// issuing side, not a forged credential.
	ErrMalformedSubject = errors.New("token subject is not a valid user id")
)

// defaultIssuer is stamped into the iss claim of minted tokens. It is not
// enforced on verification; the deployment has a single issuer per secret.
const defaultIssuer = "rolegate"

// Issuer mints HS256 tokens bound to the deployment signing secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer. The secret is constant for the process
// lifetime; ttl bounds the validity of every minted token.
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue creates a signed token whose subject is the given user ID.
func (i *Issuer) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    defaultIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verifier validates bearer tokens against the deployment signing secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier bound to the given secret.
func NewVerifier(secret []byte) *Verifier {
	return &Verifier{secret: secret}
}

// Verify checks signature and expiry and returns the embedded subject.
// Every verification failure collapses to ErrInvalidToken so callers cannot
// distinguish which check rejected the token. A token that verifies but
// carries a subject that does not parse as a user ID yields
// ErrMalformedSubject.
func (v *Verifier) Verify(tokenString string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	sub, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrMalformedSubject, claims.Subject)
	}

	return sub, nil
}
