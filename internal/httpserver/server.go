// Package httpserver exposes a Logger over HTTP so that processes that cannot
// link the library can still append records to the same file.
package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tinytelemetry/tinylog/internal/model"
)

// DefaultAddr is used when Config.Addr is empty.
const DefaultAddr = "127.0.0.1:3000"

// Writer is the narrow logger contract required by the HTTP API.
type Writer interface {
	WriteContext(ctx context.Context, value any, opts ...string) error
}

// Config holds the server settings. Metrics is mounted on GET /metrics when
// non-nil.
type Config struct {
	Addr    string
	Metrics http.Handler
	Logger  *slog.Logger
}

// Server provides the HTTP ingest API.
type Server struct {
	addr    string
	writer  Writer
	metrics http.Handler
	log     *slog.Logger

	mu        sync.Mutex
	server    *http.Server
	listener  net.Listener
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a new HTTP API server writing through w.
func NewServer(cfg Config, w Writer) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:      cfg.Addr,
		writer:    w,
		metrics:   cfg.Metrics,
		log:       cfg.Logger,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
}

// Handler returns the routed gin engine.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogging(s.log))

	r.GET("/api/health", s.handleHealth)
	r.POST("/api/log", s.handleLog)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics))
	}
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	s.mu.Lock()
	s.server = srv
	s.listener = listener
	s.startTime = time.Now()
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("httpserver: serve failed", slog.String("error", err.Error()))
		}
	}()
	return nil
}

// Addr returns the bound address once started, the configured one before.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	s.mu.Lock()
	started := s.startTime
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(started).String(),
	})
}

type logRequest struct {
	Value   any    `json:"value"`
	Options string `json:"options"`
}

func (s *Server) handleLog(c *gin.Context) {
	var req logRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	opts := []string{}
	if req.Options != "" {
		opts = append(opts, req.Options)
	}

	err := s.writer.WriteContext(c.Request.Context(), req.Value, opts...)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"status": "written", "request_id": c.GetString(requestIDKey)})
	case errors.Is(err, model.ErrConfiguration):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "log file path is not configured"})
	default:
		s.log.ErrorContext(c.Request.Context(), "httpserver: write failed",
			slog.String("request_id", c.GetString(requestIDKey)),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write log record"})
	}
}
