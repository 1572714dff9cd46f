package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidCredential = errors.New("invalid credential")

// Claims is what a credential proves once it was verified.
type Claims struct {
	SubjectID int64
	Email     string
	ExpiresAt time.Time
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type JWTAuthenticator struct {
	Secret         string
	Audience       string
	Issuer         string
	ExpirationTime time.Duration
	now            func() time.Time
}

func NewJWTAuthenticator(secret, audience, issuer string, expiration time.Duration) *JWTAuthenticator {
	return &JWTAuthenticator{
		Secret:         secret,
		Audience:       audience,
		Issuer:         issuer,
		ExpirationTime: expiration,
		now:            time.Now,
	}
}

// Issue signs a credential for subjectID valid for a.ExpirationTime.
func (a *JWTAuthenticator) Issue(subjectID int64, email string) (string, error) {
	now := a.now()
	claims := tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			Issuer:    a.Issuer,
			Audience:  jwt.ClaimStrings{a.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ExpirationTime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(a.Secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Parse verifies token and returns its claims. Any failure, whatever the
// cause, wraps ErrInvalidCredential.
func (a *JWTAuthenticator) Parse(token string) (*Claims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return []byte(a.Secret), nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithAudience(a.Audience),
		jwt.WithIssuer(a.Issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: subject (sub) not found in token claims", ErrInvalidCredential)
	}
	subjectID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || subjectID <= 0 {
		return nil, fmt.Errorf("%w: subject (sub) is not a valid user id", ErrInvalidCredential)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: email not found in token claims", ErrInvalidCredential)
	}

	return &Claims{
		SubjectID: subjectID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
