package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/authd/internal/client/config"
)

func stubInput(t *testing.T, text string, password string) {
	t.Helper()

	origText := getSimpleText
	origPassword := getPassword
	origPrint := printlnFn
	t.Cleanup(func() {
		getSimpleText = origText
		getPassword = origPassword
		printlnFn = origPrint
	})

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		return text, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
	printlnFn = func(...any) (int, error) { return 0, nil }
}

func newAppForServer(t *testing.T, handler http.Handler) *App {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{ServerBaseURL: srv.URL, RequestTimeout: 2 * time.Second}
	app, err := NewApp(cfg)
	require.NoError(t, err)
	return app
}

func TestRegisterCommand(t *testing.T) {
	stubInput(t, "a@b.c", "password123")

	var gotEmail string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotEmail = body["email"]
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"msg": "user registered successfully"})
	})

	app := newAppForServer(t, mux)
	require.NoError(t, app.Register(context.Background()))
	assert.Equal(t, "a@b.c", gotEmail)
}

func TestLoginCommandSetsStatus(t *testing.T) {
	stubInput(t, "a@b.c", "password123")

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "at", "refresh_token": "rt"})
	})

	app := newAppForServer(t, mux)
	require.False(t, app.isLoggedIn())

	require.NoError(t, app.Login(context.Background()))
	assert.True(t, app.isLoggedIn())
	assert.Equal(t, "(a@b.c)", app.getStatus())
}

func TestLoginCommandFailure(t *testing.T) {
	stubInput(t, "a@b.c", "wrong-password")

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"msg": "invalid credentials"})
	})

	app := newAppForServer(t, mux)
	require.Error(t, app.Login(context.Background()))
	assert.False(t, app.isLoggedIn())
	assert.Empty(t, app.getStatus())
}

func TestLogoutCommandClearsStatus(t *testing.T) {
	stubInput(t, "a@b.c", "password123")

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "at", "refresh_token": "rt"})
	})
	mux.HandleFunc("DELETE /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"msg": "ok"})
	})

	app := newAppForServer(t, mux)
	require.NoError(t, app.Login(context.Background()))
	require.NoError(t, app.Logout(context.Background()))

	assert.False(t, app.isLoggedIn())
	assert.Empty(t, app.getStatus())
}
