// Package http is the Gin adapter: the server lifecycle, the router and the
// middleware chain in front of the bookmark API.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/bookmark-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/bookmark-service/internal/platform/config"
)

// Server owns the Gin engine and the listener it is served on.
type Server struct {
	engine *gin.Engine
	http   *http.Server
	cfg    *config.ServerConfig
	logger *slog.Logger

	listener net.Listener
}

// New builds a server for cfg. Nothing listens until Start.
func New(cfg *config.ServerConfig, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(limitBody(cfg.MaxRequestSize))

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:           engine,
			ReadHeaderTimeout: cfg.ReadTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		cfg:    cfg,
		logger: logger,
	}
}

// Engine returns the Gin engine routes are registered on.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Config returns the server configuration.
func (s *Server) Config() *config.ServerConfig {
	return s.cfg
}

// Start binds the listen address and serves in the background. A bind
// failure is returned directly. Serve failures arrive on the channel, which
// is closed once the server has stopped.
func (s *Server) Start() (<-chan error, error) {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", s.http.Addr, err)
	}

	s.listener = ln
	s.logger.Info("serving HTTP",
		slog.String("addr", ln.Addr().String()),
		slog.Duration("read_timeout", s.cfg.ReadTimeout),
		slog.Duration("write_timeout", s.cfg.WriteTimeout),
		slog.Int64("max_request_size", s.cfg.MaxRequestSize),
	)

	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)

		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serving HTTP: %w", err)
		}
	}()

	return errCh, nil
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("draining HTTP connections")

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	s.logger.Info("HTTP server stopped")

	return nil
}

// Addr returns the bound address once started, the configured one before.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}

	return s.http.Addr
}

// limitBody rejects a declared Content-Length over limit with 413 and caps
// what a handler can read from chunked bodies.
func limitBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 || c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}

		if c.Request.ContentLength > limit {
			dto.AbortWithCode(c, dto.ErrorCodePayloadTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", limit))

			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
