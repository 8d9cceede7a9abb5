package auth

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

var now = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func claims(mutate func(*Claims)) *Claims {
	c := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email:        "coach@example.com",
		UserMetadata: UserMetadata{FullName: "Coach Lee"},
		AppMetadata:  AppMetadata{TenantID: "tenant-a"},
	}
	if mutate != nil {
		mutate(c)
	}
	return c
}

func verifier(opts ...Option) *Verifier {
	return NewVerifier(secret, "authenticated", append([]Option{WithClock(func() time.Time { return now })}, opts...)...)
}

func TestVerify(t *testing.T) {
	tok, err := Sign(secret, claims(nil))
	require.NoError(t, err)

	u, err := verifier().Verify(tok)
	require.NoError(t, err)
	require.Equal(t, User{ID: "user-1", Email: "coach@example.com", Name: "Coach Lee", TenantID: "tenant-a"}, u)
	require.Equal(t, "Coach Lee", u.DisplayName())
}

func TestVerifyRejects(t *testing.T) {
	signed := func(c *Claims) string {
		tok, err := Sign(secret, c)
		require.NoError(t, err)
		return tok
	}
	other, err := Sign("other-secret", claims(nil))
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims(nil)).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"empty":          "",
		"garbage":        "not.a.token",
		"wrong secret":   other,
		"alg none":       none,
		"expired":        signed(claims(func(c *Claims) { c.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute)) })),
		"no expiry":      signed(claims(func(c *Claims) { c.ExpiresAt = nil })),
		"wrong audience": signed(claims(func(c *Claims) { c.Audience = jwt.ClaimStrings{"anon"} })),
		"no subject":     signed(claims(func(c *Claims) { c.Subject = "" })),
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := verifier().Verify(tok)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)
			require.Contains(t, err.Error(), "invalid session token")
		})
	}
}

func TestVerifyIssuerAndLeeway(t *testing.T) {
	tok, err := Sign(secret, claims(func(c *Claims) {
		c.Issuer = "https://auth.example.com/auth/v1"
		c.ExpiresAt = jwt.NewNumericDate(now.Add(-10 * time.Second))
	}))
	require.NoError(t, err)

	_, err = verifier(WithIssuer("https://auth.example.com/auth/v1")).Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)

	u, err := verifier(WithIssuer("https://auth.example.com/auth/v1"), WithLeeway(time.Minute)).Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "user-1", u.ID)

	_, err = verifier(WithIssuer("https://elsewhere"), WithLeeway(time.Minute)).Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestDisplayNameFallsBackToEmail(t *testing.T) {
	require.Equal(t, "a@b.c", User{Email: "a@b.c"}.DisplayName())
}

func TestAuthorizeURL(t *testing.T) {
	raw := AuthorizeURL("https://auth.example.com/", "google", "http://localhost:8080/auth/callback")
	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "/auth/v1/authorize", u.Path)
	require.Equal(t, "google", u.Query().Get("provider"))
	require.Equal(t, "http://localhost:8080/auth/callback", u.Query().Get("redirect_to"))
}

func TestUserContext(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	require.False(t, ok)

	ctx := WithUser(context.Background(), User{ID: "u"})
	u, ok := UserFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "u", u.ID)
}
