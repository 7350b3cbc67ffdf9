package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dcastano/authd/internal/common"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type profileResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type msgResponse struct {
	Msg string `json:"msg"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, msgResponse{Msg: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	_, err := s.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorMissingFields):
			writeMsg(w, http.StatusBadRequest, "email and password are required")
		case errors.Is(err, common.ErrorWeakPassword):
			writeMsg(w, http.StatusBadRequest, "password must be at least 8 characters")
		case errors.Is(err, common.ErrorDuplicateEmail):
			// Registration is the one place that reveals an email exists;
			// login and forgot-password must not.
			writeMsg(w, http.StatusConflict, "email is already registered")
		default:
			s.logger.Error(r.Context(), "register failed", "error", err.Error())
			writeMsg(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeMsg(w, http.StatusCreated, "user registered successfully")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	pair, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			writeMsg(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		writeMsg(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	token, errMsg := extractBearerToken(r.Header.Get("Authorization"))
	if errMsg != "" {
		writeMsg(w, http.StatusUnauthorized, errMsg)
		return
	}

	access, err := s.auth.Refresh(r.Context(), token)
	if err != nil {
		s.writeTokenError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, accessTokenResponse{AccessToken: access})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, errMsg := extractBearerToken(r.Header.Get("Authorization"))
	if errMsg != "" {
		writeMsg(w, http.StatusUnauthorized, errMsg)
		return
	}

	if err := s.auth.Logout(r.Context(), token); err != nil {
		s.writeTokenError(w, r, err)
		return
	}

	writeMsg(w, http.StatusOK, "logout successful, the token has been revoked")
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	token, errMsg := extractBearerToken(r.Header.Get("Authorization"))
	if errMsg != "" {
		writeMsg(w, http.StatusUnauthorized, errMsg)
		return
	}

	profile, err := s.auth.GetProfile(r.Context(), token)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			writeMsg(w, http.StatusNotFound, "user not found")
			return
		}
		s.writeTokenError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{ID: profile.ID, Email: profile.Email})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		s.logger.Error(r.Context(), "forgot-password failed", "error", err.Error())
		writeMsg(w, http.StatusInternalServerError, "internal error")
		return
	}

	// Identical response whether or not the email is registered.
	writeMsg(w, http.StatusOK, "if your email is in our database, you will receive a link to reset your password")
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := s.auth.ResetPassword(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorMissingFields):
			writeMsg(w, http.StatusBadRequest, "token and new password are required")
		case errors.Is(err, common.ErrorWeakPassword):
			writeMsg(w, http.StatusBadRequest, "password must be at least 8 characters")
		case errors.Is(err, common.ErrTokenExpired):
			writeMsg(w, http.StatusBadRequest, "token has expired")
		case errors.Is(err, common.ErrTokenInvalid):
			writeMsg(w, http.StatusBadRequest, "invalid token")
		case errors.Is(err, common.ErrUserNotFound):
			writeMsg(w, http.StatusNotFound, "user not found")
		default:
			s.logger.Error(r.Context(), "reset-password failed", "error", err.Error())
			writeMsg(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeMsg(w, http.StatusOK, "password updated successfully")
}

// writeTokenError maps authentication failures on protected endpoints.
func (s *Server) writeTokenError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrTokenExpired):
		writeMsg(w, http.StatusUnauthorized, "token has expired")
	case errors.Is(err, common.ErrTokenRevoked):
		writeMsg(w, http.StatusUnauthorized, "token has been revoked")
	case errors.Is(err, common.ErrWrongTokenType):
		writeMsg(w, http.StatusUnauthorized, "wrong token type")
	case errors.Is(err, common.ErrTokenInvalid):
		writeMsg(w, http.StatusUnauthorized, "invalid token")
	default:
		s.logger.Error(r.Context(), "request failed", "error", err.Error())
		writeMsg(w, http.StatusInternalServerError, "internal error")
	}
}
