package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "this-is-a-test-secret-that-is-long-enough"

func newTestAuthenticator(now time.Time) *JWTAuthenticator {
	a := NewJWTAuthenticator(testSecret, "gophis-posts", "gophis-posts", 30*time.Minute)
	a.now = func() time.Time { return now }
	return a
}

func signRaw(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func TestJWTAuthenticator_RoundTrip(t *testing.T) {
	now := time.Now()
	a := newTestAuthenticator(now)

	for _, tc := range []struct {
		id    int64
		email string
	}{
		{1, "a@example.com"},
		{42, "someone.else@example.org"},
		{9_007_199_254_740_993, "big@example.com"},
	} {
		token, err := a.Issue(tc.id, tc.email)
		require.NoError(t, err)

		claims, err := a.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, tc.id, claims.SubjectID)
		assert.Equal(t, tc.email, claims.Email)
		assert.WithinDuration(t, now.Add(30*time.Minute), claims.ExpiresAt, time.Second)
	}
}

func TestJWTAuthenticator_Expired(t *testing.T) {
	issuedAt := time.Now()
	a := newTestAuthenticator(issuedAt)

	token, err := a.Issue(1, "a@example.com")
	require.NoError(t, err)

	a.now = func() time.Time { return issuedAt.Add(29 * time.Minute) }
	_, err = a.Parse(token)
	assert.NoError(t, err, "still valid before expiry")

	a.now = func() time.Time { return issuedAt.Add(31 * time.Minute) }
	_, err = a.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestJWTAuthenticator_Rejects(t *testing.T) {
	now := time.Now()
	a := newTestAuthenticator(now)
	valid, err := a.Issue(1, "a@example.com")
	require.NoError(t, err)

	registered := func() jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    "gophis-posts",
			Audience:  jwt.ClaimStrings{"gophis-posts"},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		}
	}

	other := NewJWTAuthenticator("another-secret-that-is-also-long-enough", "gophis-posts", "gophis-posts", time.Minute)
	foreign, err := other.Issue(1, "a@example.com")
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	tamperedSig := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	noExpiry := registered()
	noExpiry.ExpiresAt = nil

	noSubject := registered()
	noSubject.Subject = ""

	badSubject := registered()
	badSubject.Subject = "alice"

	wrongIssuer := registered()
	wrongIssuer.Issuer = "somebody-else"

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, tokenClaims{Email: "a@example.com", RegisteredClaims: registered()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"signed with another secret", foreign},
		{"tampered signature", tamperedSig},
		{"none algorithm", noneToken},
		{"missing expiry", signRaw(t, tokenClaims{Email: "a@example.com", RegisteredClaims: noExpiry})},
		{"missing subject", signRaw(t, tokenClaims{Email: "a@example.com", RegisteredClaims: noSubject})},
		{"non numeric subject", signRaw(t, tokenClaims{Email: "a@example.com", RegisteredClaims: badSubject})},
		{"missing email", signRaw(t, tokenClaims{RegisteredClaims: registered()})},
		{"wrong issuer", signRaw(t, tokenClaims{Email: "a@example.com", RegisteredClaims: wrongIssuer})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := a.Parse(tt.token)
			assert.ErrorIs(t, err, ErrInvalidCredential)
			assert.Nil(t, claims)
		})
	}
}
