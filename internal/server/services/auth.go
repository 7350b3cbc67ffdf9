// Package services contains server-side business logic. This file implements
// AuthService, the orchestrator for registration, login, token refresh,
// logout, profile reads and the password-reset flow.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dcastano/authd/internal/common"
	"github.com/dcastano/authd/internal/dbx"
	"github.com/dcastano/authd/internal/logging"
	"github.com/dcastano/authd/internal/server/auth"
	"github.com/dcastano/authd/internal/server/config"
	"github.com/dcastano/authd/internal/server/models"
	"github.com/dcastano/authd/internal/server/password"
	"github.com/dcastano/authd/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Profile is the public view of an account.
type Profile struct {
	ID    string
	Email string
}

// AuthService ties the credential store, hasher, token issuer, revocation
// ledger and reset codec into the register/login/refresh/logout/reset flows.
// Sessions live entirely in client-held tokens; the only shared mutable
// state is the persistence layer.
type AuthService struct {
	db               *sql.DB
	repomanager      repomanager.RepositoryManager
	issuer           *auth.Issuer
	resetCodec       *auth.ResetCodec
	hasher           password.Hasher
	delivery         ResetDelivery
	resetTokenMaxAge time.Duration
	logger           logging.Logger
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, hasher password.Hasher, delivery ResetDelivery, logger logging.Logger) *AuthService {
	return &AuthService{
		db:               db,
		repomanager:      m,
		issuer:           auth.NewIssuer([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration, cfg.RefreshTokenValidityDuration),
		resetCodec:       auth.NewResetCodec([]byte(cfg.ResetSecretKey)),
		hasher:           hasher,
		delivery:         delivery,
		resetTokenMaxAge: cfg.ResetTokenMaxAge,
		logger:           logger.With("module", "auth_service"),
	}
}

// Register creates a new account. No tokens are issued; a registered user
// still has to log in.
func (s *AuthService) Register(ctx context.Context, email, plainPassword string) (*models.User, error) {
	if email == "" || plainPassword == "" {
		return nil, common.ErrorMissingFields
	}
	if len(plainPassword) < common.MinPasswordLength {
		return nil, common.ErrorWeakPassword
	}

	hash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateEmail) {
			return nil, common.ErrorDuplicateEmail
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies credentials and, on success, returns a fresh token pair with
// distinct jtis. Absent users and wrong passwords are indistinguishable to
// the caller.
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*TokenPair, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify(plainPassword, user.PasswordHash) {
		return nil, common.ErrorInvalidCredentials
	}

	access, err := s.issuer.IssueAccessToken(user.ID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.issuer.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Authenticate is the precondition check every protected operation runs:
// signature, expiry and type via the issuer, then the revocation ledger.
// A correctly signed, unexpired token whose jti is revoked is rejected.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string, wantType string) (*auth.Claims, error) {
	claims, err := s.issuer.Verify(tokenString, wantType)
	if err != nil {
		return nil, err
	}

	revoked, err := s.repomanager.RevokedTokens(s.db).IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if revoked {
		return nil, common.ErrTokenRevoked
	}

	return claims, nil
}

// Refresh mints a new access token for the subject of a valid, non-revoked
// refresh token. The refresh token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.Authenticate(ctx, refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return "", err
	}

	access, err := s.issuer.IssueAccessToken(claims.Subject)
	if err != nil {
		return "", common.ErrorInternal
	}

	return access, nil
}

// Logout revokes the access token's jti. Revoking an already-revoked jti is
// a no-op, so logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.Authenticate(ctx, accessToken, auth.TokenTypeAccess)
	if err != nil {
		return err
	}

	if err := s.repomanager.RevokedTokens(s.db).Revoke(ctx, claims.ID); err != nil {
		return common.ErrorInternal
	}

	s.logger.Info(ctx, "token revoked", "user_id", claims.Subject, "jti", claims.ID)
	return nil
}

// GetProfile returns the public profile for the subject of a valid,
// non-revoked access token.
func (s *AuthService) GetProfile(ctx context.Context, accessToken string) (*Profile, error) {
	claims, err := s.Authenticate(ctx, accessToken, auth.TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, common.ErrorInternal
	}

	return &Profile{ID: user.ID, Email: user.Email}, nil
}

// ForgotPassword generates a reset token for a known email and hands it to
// the delivery collaborator. It reports success either way so the caller's
// response cannot reveal whether the email is registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Debug(ctx, "reset requested for unknown email")
			return nil
		}
		return common.ErrorInternal
	}

	token, err := s.resetCodec.Encode(user.Email)
	if err != nil {
		return common.ErrorInternal
	}

	if err := s.delivery.SendResetToken(ctx, user.Email, token); err != nil {
		return common.ErrorInternal
	}

	return nil
}

// ResetPassword consumes a reset token and stores a new password hash for
// the bound account. Expired and tampered tokens fail with distinct errors.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return common.ErrorMissingFields
	}
	if len(newPassword) < common.MinPasswordLength {
		return common.ErrorWeakPassword
	}

	email, err := s.resetCodec.Decode(token, s.resetTokenMaxAge)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return common.ErrorInternal
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Users(tx)

		user, err := repoTx.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrUserNotFound
			}
			return common.ErrorInternal
		}

		return repoTx.UpdatePasswordHash(ctx, user.ID, hash)
	}); err != nil {
		return err
	}

	s.logger.Info(ctx, "password reset completed")
	return nil
}
