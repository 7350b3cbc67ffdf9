// Package api implements the HTTP client for the auth server. It keeps the
// current token pair in memory and transparently refreshes an expired access
// token once before failing a request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnavailable reports that the server could not be reached at all, as
// opposed to the server answering with an error status.
var ErrUnavailable = errors.New("server unavailable")

// APIError carries the status code and message of a non-2xx response.
type APIError struct {
	StatusCode int
	Msg        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Msg)
}

const expiredTokenMsg = "token has expired"

// Client talks to the auth server's JSON API.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	accessToken  string
	refreshToken string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// IsLoggedIn reports whether the client holds an access token.
func (c *Client) IsLoggedIn() bool {
	return c.accessToken != ""
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Profile is the account view returned by the profile endpoint.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type msgResponse struct {
	Msg string `json:"msg"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, bearer string) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

func apiError(resp *http.Response) error {
	var m msgResponse
	body, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(body, &m)
	return &APIError{StatusCode: resp.StatusCode, Msg: m.Msg}
}

func decodeInto(resp *http.Response, v any) error {
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}
	if v == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// doAuthed performs a request with the current access token. When the server
// rejects it as expired and a refresh token is held, the token is refreshed
// once and the request retried.
func (c *Client) doAuthed(ctx context.Context, method, path string, body any) (*http.Response, error) {
	resp, err := c.do(ctx, method, path, body, c.accessToken)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized || c.refreshToken == "" {
		return resp, nil
	}

	var m msgResponse
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	_ = json.Unmarshal(raw, &m)
	if m.Msg != expiredTokenMsg {
		return nil, &APIError{StatusCode: http.StatusUnauthorized, Msg: m.Msg}
	}

	if err := c.refresh(ctx); err != nil {
		return nil, err
	}

	return c.do(ctx, method, path, body, c.accessToken)
}

func (c *Client) refresh(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/refresh", nil, c.refreshToken)
	if err != nil {
		return err
	}

	var tok accessTokenResponse
	if err := decodeInto(resp, &tok); err != nil {
		return err
	}

	c.accessToken = tok.AccessToken
	return nil
}

// Register creates an account. The user still has to log in afterwards.
func (c *Client) Register(ctx context.Context, email, password string) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/register", credentialsRequest{Email: email, Password: password}, "")
	if err != nil {
		return err
	}
	return decodeInto(resp, nil)
}

// Login authenticates and stores the returned token pair on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/login", credentialsRequest{Email: email, Password: password}, "")
	if err != nil {
		return err
	}

	var pair tokenPairResponse
	if err := decodeInto(resp, &pair); err != nil {
		return err
	}

	c.accessToken = pair.AccessToken
	c.refreshToken = pair.RefreshToken
	return nil
}

// Logout revokes the current access token and drops both tokens locally.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.doAuthed(ctx, http.MethodDelete, "/api/auth/logout", nil)
	if err != nil {
		return err
	}
	if err := decodeInto(resp, nil); err != nil {
		return err
	}

	c.accessToken = ""
	c.refreshToken = ""
	return nil
}

// GetProfile fetches the account bound to the current access token.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	resp, err := c.doAuthed(ctx, http.MethodGet, "/api/auth/profile", nil)
	if err != nil {
		return nil, err
	}

	var p Profile
	if err := decodeInto(resp, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ForgotPassword asks the server to issue a reset token for the email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": email}, "")
	if err != nil {
		return err
	}
	return decodeInto(resp, nil)
}

// ResetPassword redeems a reset token for a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/reset-password",
		map[string]string{"token": token, "new_password": newPassword}, "")
	if err != nil {
		return err
	}
	return decodeInto(resp, nil)
}
