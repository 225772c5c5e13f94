// Package httpapi exposes the service over an HTTP JSON API and maps
// application errors onto status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avlasov/fileshare/internal/logging"
	"github.com/avlasov/fileshare/internal/server/auth"
	"github.com/avlasov/fileshare/internal/server/services"
)

type HTTPServer struct {
	address   string
	users     *services.UserService
	artifacts *services.ArtifactService
	tokens    *auth.TokenManager
	logger    logging.Logger
}

func NewHTTPServer(address string, l logging.Logger, us *services.UserService, as *services.ArtifactService, tm *auth.TokenManager) *HTTPServer {
	return &HTTPServer{
		address:   address,
		logger:    l.With("module", "http_server"),
		users:     us,
		artifacts: as,
		tokens:    tm,
	}
}

// Routes builds the request multiplexer. Protected routes sit behind the
// token guard; artifact content fetch accepts anonymous requests so public
// artifacts stay readable without an account.
func (s *HTTPServer) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/ping", s.ping)
	mux.HandleFunc("POST /api/user/register", s.register)
	mux.HandleFunc("POST /api/user/login", s.login)

	mux.Handle("POST /api/files", s.requireAuth(http.HandlerFunc(s.createFile)))
	mux.Handle("GET /api/files", s.requireAuth(http.HandlerFunc(s.listFiles)))
	mux.Handle("GET /api/files/{id}", s.optionalAuth(http.HandlerFunc(s.getFile)))
	mux.Handle("DELETE /api/files/{id}", s.requireAuth(http.HandlerFunc(s.deleteFile)))

	return mux
}

func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
