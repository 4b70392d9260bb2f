// Package server exposes the calculators over a JSON HTTP API built on fasthttp.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/compme/internal/compare"
	"github.com/rgehrsitz/compme/internal/config"
	"github.com/rgehrsitz/compme/internal/offer"
	"github.com/rgehrsitz/compme/internal/scenariolog"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const (
	defaultRequestTimeout = 30 * time.Second
	shutdownTimeout       = 10 * time.Second
	maxBodySize           = 1 << 20

	requestIDHeader = "X-Request-ID"
)

// Options wires the server's collaborators
type Options struct {
	Engine      *compare.CompareEngine
	Parser      *offer.Parser
	ScenarioLog *scenariolog.Async
	Logger      *zap.Logger

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// RequestTimeout bounds calculation work per request
	RequestTimeout time.Duration
}

// Server serves the compensation API
type Server struct {
	engine      *compare.CompareEngine
	parser      *offer.Parser
	scenarioLog *scenariolog.Async
	validator   *config.InputParser
	logger      *zap.Logger

	readTimeout    time.Duration
	writeTimeout   time.Duration
	requestTimeout time.Duration
}

// New creates a server. Engine is required; a nil Parser uses pattern
// extraction and a nil ScenarioLog records nothing.
func New(opts Options) (*Server, error) {
	if opts.Engine == nil || opts.Engine.CalcEngine == nil {
		return nil, errors.New("server: a comparison engine is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	parser := opts.Parser
	if parser == nil {
		parser = offer.NewParser(nil, logger)
	}
	sl := opts.ScenarioLog
	if sl == nil {
		sl = scenariolog.NewAsync(scenariolog.Nop{}, 0, logger)
	}
	rt := opts.RequestTimeout
	if rt <= 0 {
		rt = defaultRequestTimeout
	}
	return &Server{
		engine:         opts.Engine,
		parser:         parser,
		scenarioLog:    sl,
		validator:      config.NewInputParser(),
		logger:         logger,
		readTimeout:    opts.ReadTimeout,
		writeTimeout:   opts.WriteTimeout,
		requestTimeout: rt,
	}, nil
}

// Handler returns the root request handler
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.handle
}

// ListenAndServe listens on addr and serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully and
// flushes pending scenario log writes.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &fasthttp.Server{
		Name:               "compme",
		Handler:            s.handle,
		ReadTimeout:        s.readTimeout,
		WriteTimeout:       s.writeTimeout,
		MaxRequestBodySize: maxBodySize,
	}

	s.logger.Info("server listening", zap.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	var serveErr error
	select {
	case serveErr = <-errCh:
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
			serveErr = fmt.Errorf("failed to shut down: %w", err)
		} else {
			serveErr = <-errCh
		}
	}

	if err := s.Close(); err != nil {
		s.logger.Warn("failed to close scenario log", zap.Error(err))
	}
	s.logger.Info("server stopped")
	return serveErr
}

// Close waits for pending scenario log writes
func (s *Server) Close() error {
	return s.scenarioLog.Close()
}

func (s *Server) handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	requestID := string(ctx.Request.Header.Peek(requestIDHeader))
	if _, err := uuid.Parse(requestID); err != nil {
		requestID = uuid.NewString()
	}
	ctx.Response.Header.Set(requestIDHeader, requestID)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panic",
				zap.String("request_id", requestID),
				zap.Any("panic", r))
			writeError(ctx, fasthttp.StatusInternalServerError, "internal error")
		}
		s.logger.Debug("request",
			zap.String("request_id", requestID),
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("path", ctx.Path()),
			zap.Int("status", ctx.Response.StatusCode()),
			zap.Duration("elapsed", time.Since(start)))
	}()

	s.route(ctx, requestID)
}
