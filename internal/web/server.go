// Package web serves the shiftpay HTML interface.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"shiftpay/internal/api"
	"shiftpay/internal/config"
	"shiftpay/internal/logging"
)

// Server holds the HTTP handlers and their dependencies
type Server struct {
	api       api.BusinessAPI
	config    *config.Config
	templates map[string]*template.Template
	now       func() time.Time
}

// NewServer creates a server backed by the given business API
func NewServer(businessAPI api.BusinessAPI, cfg *config.Config) (*Server, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	s := &Server{
		api:    businessAPI,
		config: cfg,
		now:    time.Now,
	}

	templates, err := s.parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s.templates = templates

	return s, nil
}

// Handler returns the routed handler wrapped in the standard middleware
func (s *Server) Handler() http.Handler {
	return Chain(s.routes(), recoverPanic, accessLog, requestID)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.config.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.config.Server.ReadTimeout,
		WriteTimeout:      s.config.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Infof("listening on http://%s", s.config.Server.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
