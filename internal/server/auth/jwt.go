// Package auth implements the signed-token primitives: the access/refresh
// token issuer and the purpose-scoped password-reset codec.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dcastano/authd/internal/common"
)

// Token types carried in the "typ" claim. An access token can never be used
// where a refresh token is required and vice versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims are the statements carried by access and refresh tokens. The jti
// (RegisteredClaims.ID) is a fresh uuid per token and is the unit of
// revocation granularity.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"typ"`
}

// Issuer mints and verifies HS256-signed access and refresh tokens.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewIssuer(secret []byte, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// IssueAccessToken signs a short-lived access token for the given subject.
func (i *Issuer) IssueAccessToken(subject string) (string, error) {
	return i.issue(subject, TokenTypeAccess, i.accessTTL)
}

// IssueRefreshToken signs a long-lived refresh token for the given subject.
func (i *Issuer) IssueRefreshToken(subject string) (string, error) {
	return i.issue(subject, TokenTypeRefresh, i.refreshTTL)
}

func (i *Issuer) issue(subject string, tokenType string, validity time.Duration) (string, error) {
	now := i.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		TokenType: tokenType,
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks signature, expiry and token type, in that order. It returns
// common.ErrTokenExpired, common.ErrTokenInvalid or common.ErrWrongTokenType;
// revocation is the caller's concern.
func (i *Issuer) Verify(tokenString string, wantType string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}

	if !token.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, common.ErrTokenInvalid
	}

	if claims.TokenType != wantType {
		return nil, common.ErrWrongTokenType
	}

	return claims, nil
}
