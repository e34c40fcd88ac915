// Package server binds the site router to a listener and runs it until shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/PuneetGOTO/business-website-sub000/internal/application/container"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
	"github.com/PuneetGOTO/business-website-sub000/internal/presentation/http/routes"
	"github.com/PuneetGOTO/business-website-sub000/pkg/config"
)

// Options are the listener address and http.Server limits.
type Options struct {
	Addr              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
}

// OptionsFromConfig builds Options from the environment-backed settings.
func OptionsFromConfig() Options {
	return Options{
		Addr:              ":" + config.Port,
		ReadTimeout:       config.ServerReadTimeout,
		ReadHeaderTimeout: config.ServerReadHeaderTimeout,
		WriteTimeout:      config.ServerWriteTimeout,
		IdleTimeout:       config.ServerIdleTimeout,
		MaxHeaderBytes:    config.ServerMaxHeaderBytes,
	}
}

// Header reads are bounded even when the caller leaves the limit unset.
func (o Options) withDefaults() Options {
	if o.Addr == "" {
		o.Addr = ":8080"
	}
	if o.ReadHeaderTimeout <= 0 {
		o.ReadHeaderTimeout = 5 * time.Second
		if o.ReadTimeout > 0 && o.ReadTimeout < o.ReadHeaderTimeout {
			o.ReadHeaderTimeout = o.ReadTimeout
		}
	}
	if o.MaxHeaderBytes <= 0 {
		o.MaxHeaderBytes = http.DefaultMaxHeaderBytes
	}
	return o
}

// Server serves the site and its API on one listener
type Server struct {
	httpServer *http.Server
	logger     *logging.ChanneledLogger
	listener   net.Listener
}

// New wires the container's routes into an http.Server
func New(opts Options, c *container.Container) *Server {
	opts = opts.withDefaults()
	return &Server{
		httpServer: &http.Server{
			Addr:              opts.Addr,
			Handler:           routes.SetupRoutes(c),
			ReadTimeout:       opts.ReadTimeout,
			ReadHeaderTimeout: opts.ReadHeaderTimeout,
			WriteTimeout:      opts.WriteTimeout,
			IdleTimeout:       opts.IdleTimeout,
			MaxHeaderBytes:    opts.MaxHeaderBytes,
		},
		logger: c.Logger,
	}
}

// Listen binds the configured address. Start calls it if needed; calling it
// first lets startup fail fast on a taken port.
func (s *Server) Listen() error {
	if s.listener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = ln
	return nil
}

// Addr is the bound address once Listen succeeded, else the configured one.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Start serves until Stop is called. A clean shutdown returns nil.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	s.logger.System().Info("Starting HTTP server", "address", s.Addr(),
		"readTimeout", s.httpServer.ReadTimeout, "writeTimeout", s.httpServer.WriteTimeout)

	if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

// Stop drains in-flight requests until ctx expires
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Shutdown().Info("Shutting down HTTP server...", "address", s.Addr())
	return s.httpServer.Shutdown(ctx)
}
