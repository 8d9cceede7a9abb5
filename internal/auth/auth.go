// Package auth verifies session tokens issued by the hosted auth provider
// and carries the signed-in user through request contexts.
//
// The provider signs access tokens with HS256 using a shared secret. The
// server never issues tokens itself except in tests.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid session token")

// User is the signed-in user attached to a request.
type User struct {
	ID       string
	Email    string
	Name     string
	TenantID string
}

// DisplayName returns the full name, falling back to the e-mail address.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Claims is the provider's access token payload.
type Claims struct {
	jwt.RegisteredClaims

	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
	AppMetadata  AppMetadata  `json:"app_metadata"`
}

// UserMetadata holds profile fields the identity provider supplied.
type UserMetadata struct {
	FullName string `json:"full_name,omitempty"`
}

// AppMetadata holds fields only the server side of the provider can set.
type AppMetadata struct {
	TenantID string `json:"tenant_id,omitempty"`
}

// Verifier validates access tokens.
type Verifier struct {
	secret   []byte
	audience string
	issuer   string
	leeway   time.Duration
	now      func() time.Time
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithIssuer requires the iss claim to match.
func WithIssuer(iss string) Option {
	return func(v *Verifier) { v.issuer = iss }
}

// WithLeeway allows for clock skew on exp and nbf.
func WithLeeway(d time.Duration) Option {
	return func(v *Verifier) { v.leeway = d }
}

// WithClock replaces the verification clock.
func WithClock(now func() time.Time) Option {
	return func(v *Verifier) { v.now = now }
}

// NewVerifier returns a verifier for HS256 tokens signed with secret and
// issued for audience. An empty audience skips the aud check.
func NewVerifier(secret, audience string, opts ...Option) *Verifier {
	v := &Verifier{
		secret:   []byte(secret),
		audience: audience,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify parses and validates a token. Any failure wraps ErrInvalidToken.
func (v *Verifier) Verify(token string) (User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return User{}, ErrInvalidToken
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
		jwt.WithLeeway(v.leeway),
	}
	if v.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(v.audience))
	}
	if v.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, parserOpts...)
	if err != nil {
		return User{}, errors.Join(ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return User{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return User{
		ID:       claims.Subject,
		Email:    claims.Email,
		Name:     claims.UserMetadata.FullName,
		TenantID: claims.AppMetadata.TenantID,
	}, nil
}

// Sign issues an HS256 token for claims. The server uses it only for
// local development sign-in and tests.
func Sign(secret string, claims *Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

// AuthorizeURL is the provider's OAuth entry point for provider (e.g.
// "google"), redirecting back to redirectTo.
func AuthorizeURL(base, provider, redirectTo string) string {
	q := url.Values{}
	q.Set("provider", provider)
	q.Set("redirect_to", redirectTo)
	return strings.TrimRight(base, "/") + "/auth/v1/authorize?" + q.Encode()
}

type userKey struct{}

// WithUser attaches a user to ctx.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFromContext returns the signed-in user, if any.
func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userKey{}).(User)
	return u, ok
}
