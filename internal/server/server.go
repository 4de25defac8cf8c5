package server

import (
	"context"
	"fmt"

	"github.com/valyala/fasthttp"

	"github.com/rpgo/savings-projector/internal/calculation"
	"github.com/rpgo/savings-projector/internal/config"
)

// Server wraps a fasthttp server configured from ServerConfig.
type Server struct {
	cfg    config.ServerConfig
	srv    *fasthttp.Server
	logger calculation.Logger
}

// New builds a server for cfg.
func New(cfg config.ServerConfig, logger calculation.Logger) *Server {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	h := NewHandler(logger, cfg.AllowedOrigin)
	return &Server{
		cfg:    cfg,
		logger: logger,
		srv: &fasthttp.Server{
			Handler:            h.ServeHTTP,
			Name:               "rpgo",
			ReadTimeout:        cfg.ReadTimeout,
			WriteTimeout:       cfg.WriteTimeout,
			MaxRequestBodySize: cfg.MaxBodyBytes,
		},
	}
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("listening on %s", s.cfg.Addr)
		errCh <- s.srv.ListenAndServe(s.cfg.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Infof("shutting down")
		if err := s.srv.Shutdown(); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
