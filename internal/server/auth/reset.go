package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dcastano/authd/internal/common"
)

// resetPurpose scopes reset tokens. It participates in key derivation and is
// carried as a claim, so a reset token can never pass for an access or
// refresh token even when both codecs are configured with the same secret.
const resetPurpose = "password-reset"

type resetClaims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
}

// ResetCodec produces and validates self-contained password-reset tokens
// binding an email address to an issuance time. Tokens carry no expiry of
// their own; the validity window is enforced at decode time against iat.
type ResetCodec struct {
	key []byte
	now func() time.Time
}

func NewResetCodec(secret []byte) *ResetCodec {
	// Derive a purpose-bound signing key from the configured secret.
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(resetPurpose))
	return &ResetCodec{key: mac.Sum(nil), now: time.Now}
}

// Encode signs {email, issued_at} under the reset purpose tag.
func (c *ResetCodec) Encode(email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, resetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  email,
			IssuedAt: jwt.NewNumericDate(c.now()),
		},
		Purpose: resetPurpose,
	})

	return token.SignedString(c.key)
}

// Decode validates the token and returns the bound email address.
//
// A valid signature with an issuance time older than maxAge yields
// common.ErrTokenExpired; any signature or shape problem (including tokens
// minted for another purpose) yields common.ErrTokenInvalid. Callers rely on
// the distinction for user-facing messages.
func (c *ResetCodec) Decode(tokenString string, maxAge time.Duration) (string, error) {
	claims := &resetClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrTokenInvalid
	}

	if !token.Valid || claims.Purpose != resetPurpose || claims.Subject == "" || claims.IssuedAt == nil {
		return "", common.ErrTokenInvalid
	}

	if c.now().Sub(claims.IssuedAt.Time) > maxAge {
		return "", common.ErrTokenExpired
	}

	return claims.Subject, nil
}
