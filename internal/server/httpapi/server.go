// Package httpapi exposes the auth orchestrator over a JSON HTTP API. The
// transport parses fields, calls the orchestrator, and maps its sentinel
// errors to status codes and messages; no business rules live here.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/dcastano/authd/internal/logging"
	"github.com/dcastano/authd/internal/server/models"
	"github.com/dcastano/authd/internal/server/services"
)

// AuthService is the orchestrator surface consumed by the transport.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, accessToken string) error
	GetProfile(ctx context.Context, accessToken string) (*services.Profile, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type Server struct {
	address       string
	auth          AuthService
	logger        logging.Logger
	loginLimiter  *ipLimiter
	forgotLimiter *ipLimiter
}

func NewServer(address string, l logging.Logger, svc AuthService) *Server {
	return &Server{
		address: address,
		auth:    svc,
		logger:  l.With("module", "http_server"),
		// 5 logins per minute, 3 reset requests per hour, per client address.
		loginLimiter:  newIPLimiter(rate.Every(time.Minute/5), 5),
		forgotLimiter: newIPLimiter(rate.Every(time.Hour/3), 3),
	}
}

// Handler builds the route table. Split out from Run so tests can drive the
// mux through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.loginLimiter.wrap(s.handleLogin))
	mux.HandleFunc("POST /api/auth/refresh", s.handleRefresh)
	mux.HandleFunc("DELETE /api/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/auth/profile", s.handleProfile)
	mux.HandleFunc("POST /api/auth/forgot-password", s.forgotLimiter.wrap(s.handleForgotPassword))
	mux.HandleFunc("POST /api/auth/reset-password", s.handleResetPassword)

	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug(r.Context(), "request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
