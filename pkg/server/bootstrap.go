package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"serverless-gin-api/internal/config"
)

const defaultShutdownTimeout = 30 * time.Second

// App is the application instance served by the bootstrap. The bootstrap owns it
// and closes it on shutdown.
type App interface {
	http.Handler
	Close() error
}

// Factory constructs the application instance
type Factory func(ctx context.Context) (App, error)

// ListenFunc binds a listener. net.Listen satisfies it.
type ListenFunc func(network, address string) (net.Listener, error)

// Option configures a Server
type Option func(*Server)

// WithLogger sets the logger used for lifecycle messages
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithListenFunc replaces net.Listen
func WithListenFunc(listen ListenFunc) Option {
	return func(s *Server) {
		if listen != nil {
			s.listen = listen
		}
	}
}

// Server runs one application instance behind a plain HTTP listener
type Server struct {
	cfg     config.ServerConfig
	factory Factory
	listen  ListenFunc
	logger  *logrus.Logger
}

// New creates a server bootstrap. Nothing is constructed or bound until Run.
func New(cfg config.ServerConfig, factory Factory, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		factory: factory,
		listen:  net.Listen,
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run constructs the application, binds the configured address and serves until
// ctx is cancelled. Construction and bind failures are returned without retry.
func (s *Server) Run(ctx context.Context) error {
	app, err := s.factory(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	if app == nil {
		return errors.New("failed to initialize application: factory returned no application")
	}

	addr := s.cfg.Address()
	ln, err := s.listen("tcp", addr)
	if err != nil {
		s.closeApp(app)
		return fmt.Errorf("bind %s: %w", addr, err)
	}

	port := s.cfg.Port
	if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
		port = tcp.Port
	}
	s.logger.WithFields(logrus.Fields{
		"host": s.cfg.Host,
		"port": port,
	}).Infof("Server listening on http://%s", net.JoinHostPort(s.cfg.Host, strconv.Itoa(port)))

	srv := &http.Server{
		Handler:           app,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		s.closeApp(app)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	shutdownErr := srv.Shutdown(shutdownCtx)
	closeErr := app.Close()

	if shutdownErr != nil {
		return fmt.Errorf("server forced to shutdown: %w", shutdownErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close application: %w", closeErr)
	}

	s.logger.Info("Server exited")
	return nil
}

func (s *Server) closeApp(app App) {
	if err := app.Close(); err != nil {
		s.logger.WithError(err).Warn("Failed to close application")
	}
}
