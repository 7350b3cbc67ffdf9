package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dcastano/authd/internal/common"
)

func newTestIssuer(secret string) *Issuer {
	return NewIssuer([]byte(secret), 15*time.Minute, 30*24*time.Hour)
}

func TestIssueAndVerify_Access(t *testing.T) {
	t.Parallel()

	i := newTestIssuer("super-secret")

	tok, err := i.IssueAccessToken("user-123")
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	claims, err := i.Verify(tok, TokenTypeAccess)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Fatalf("subject mismatch: got %q", claims.Subject)
	}
	if claims.ID == "" {
		t.Fatalf("expected a jti")
	}
	if claims.TokenType != TokenTypeAccess {
		t.Fatalf("typ mismatch: got %q", claims.TokenType)
	}
}

func TestIssue_DistinctJTIs(t *testing.T) {
	t.Parallel()

	i := newTestIssuer("k")

	access, err := i.IssueAccessToken("u1")
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}
	refresh, err := i.IssueRefreshToken("u1")
	if err != nil {
		t.Fatalf("IssueRefreshToken error: %v", err)
	}

	ac, err := i.Verify(access, TokenTypeAccess)
	if err != nil {
		t.Fatalf("Verify access error: %v", err)
	}
	rc, err := i.Verify(refresh, TokenTypeRefresh)
	if err != nil {
		t.Fatalf("Verify refresh error: %v", err)
	}
	if ac.ID == rc.ID {
		t.Fatalf("access and refresh tokens share jti %q", ac.ID)
	}
}

func TestVerify_ExpiryWindow(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	i := newTestIssuer("k")
	i.now = func() time.Time { return issued }

	tok, err := i.IssueAccessToken("u1")
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	// Accepted one minute before the 15-minute expiry.
	i.now = func() time.Time { return issued.Add(14 * time.Minute) }
	if _, err := i.Verify(tok, TokenTypeAccess); err != nil {
		t.Fatalf("Verify at iat+14m error: %v", err)
	}

	// Rejected one minute after.
	i.now = func() time.Time { return issued.Add(16 * time.Minute) }
	_, err = i.Verify(tok, TokenTypeAccess)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("want common.ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongType(t *testing.T) {
	t.Parallel()

	i := newTestIssuer("k")

	refresh, err := i.IssueRefreshToken("u1")
	if err != nil {
		t.Fatalf("IssueRefreshToken error: %v", err)
	}

	_, err = i.Verify(refresh, TokenTypeAccess)
	if !errors.Is(err, common.ErrWrongTokenType) {
		t.Fatalf("want common.ErrWrongTokenType, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := newTestIssuer("right-secret").IssueAccessToken("u1")
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	_, err = newTestIssuer("wrong-secret").Verify(tok, TokenTypeAccess)
	if !errors.Is(err, common.ErrTokenInvalid) {
		t.Fatalf("want common.ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_TamperedToken(t *testing.T) {
	t.Parallel()

	i := newTestIssuer("k")

	tok, err := i.IssueAccessToken("u1")
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	parts := strings.Split(tok, ".")
	parts[1] = parts[1][:len(parts[1])-2] + "xx"
	tampered := strings.Join(parts, ".")

	_, err = i.Verify(tampered, TokenTypeAccess)
	if !errors.Is(err, common.ErrTokenInvalid) {
		t.Fatalf("want common.ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := newTestIssuer("k").Verify("not.a.jwt", TokenTypeAccess)
	if !errors.Is(err, common.ErrTokenInvalid) {
		t.Fatalf("want common.ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_RejectsUnsignedAlg(t *testing.T) {
	t.Parallel()

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", ID: "j1"},
		TokenType:        TokenTypeAccess,
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing error: %v", err)
	}

	_, err = newTestIssuer("k").Verify(tok, TokenTypeAccess)
	if !errors.Is(err, common.ErrTokenInvalid) {
		t.Fatalf("want common.ErrTokenInvalid, got %v", err)
	}
}
