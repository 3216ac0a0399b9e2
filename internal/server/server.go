// Package server implements the connection lifecycle engine: the TCP
// listener, the bounded dispatch queue, the fixed worker pool and the
// per-connection keep-alive loop.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lowkeyarhan/Socket-P-assignment/internal/accesslog"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/handler"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/http1"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/metrics"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/respond"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/security"
)

// Config holds the engine's runtime parameters. Everything is immutable
// after Start; workers read it without locking.
type Config struct {
	Host           string
	Port           int
	Workers        int
	QueueCapacity  int
	ReadTimeout    time.Duration
	MaxRequests    int
	MaxHeaderBytes int
	MaxBodyBytes   int64
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Workers <= 0 {
		c.Workers = 10
	}
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = 4 * c.Workers
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 30 * time.Second
	}
	if c.MaxRequests <= 0 {
		c.MaxRequests = 100
	}
	if c.MaxHeaderBytes <= 0 {
		c.MaxHeaderBytes = http1.DefaultMaxHeaderBytes
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = http1.DefaultMaxBodyBytes
	}
}

// Deps are the collaborators the engine drives. Metrics, Recorder and Audit
// may be nil.
type Deps struct {
	Logger   *slog.Logger
	Handler  *handler.Handler
	Writer   *respond.Writer
	Metrics  *metrics.Metrics
	Recorder *accesslog.Recorder
	Audit    *security.Auditor
}

// Server owns the listener, the dispatcher and the worker pool.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	handler  *handler.Handler
	writer   *respond.Writer
	metrics  *metrics.Metrics
	recorder *accesslog.Recorder
	audit    *security.Auditor

	ln         net.Listener
	hosts      *security.HostValidator
	dispatcher *dispatcher

	active     atomic.Int64
	inShutdown atomic.Bool
	workers    sync.WaitGroup
	acceptDone chan struct{}
}

// New validates the configuration and assembles the engine.
func New(cfg Config, deps Deps) (*Server, error) {
	cfg.applyDefaults()
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if deps.Handler == nil {
		return nil, fmt.Errorf("handler is required")
	}
	if deps.Writer == nil {
		return nil, fmt.Errorf("response writer is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:      cfg,
		logger:   logger,
		handler:  deps.Handler,
		writer:   deps.Writer,
		metrics:  deps.Metrics,
		recorder: deps.Recorder,
		audit:    deps.Audit,
	}, nil
}

// Start binds the endpoint and launches the worker pool and accept loop.
// It does not block.
func (s *Server) Start() error {
	ln, err := listen(s.cfg.Host, s.cfg.Port)
	if err != nil {
		return fmt.Errorf("listen %s:%d: %w", s.cfg.Host, s.cfg.Port, err)
	}
	s.ln = ln

	boundPort := ln.Addr().(*net.TCPAddr).Port
	s.hosts = security.NewHostValidator(s.cfg.Host, boundPort)
	s.dispatcher = newDispatcher(s.cfg.QueueCapacity)
	s.acceptDone = make(chan struct{})

	for i := 0; i < s.cfg.Workers; i++ {
		s.workers.Add(1)
		go s.worker(i + 1)
	}

	go func() {
		defer close(s.acceptDone)
		s.acceptLoop()
	}()

	s.logger.Info("http server started",
		"addr", ln.Addr().String(),
		"workers", s.cfg.Workers,
		"queue_capacity", s.cfg.QueueCapacity,
	)
	return nil
}

// Addr returns the bound address, useful when Port was 0.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// ActiveConnections reports how many connections workers currently own.
func (s *Server) ActiveConnections() int64 { return s.active.Load() }

// Shutdown closes the listening socket, pushes one termination sentinel per
// worker and waits for in-flight connections to drain. In-flight requests
// are never cancelled.
func (s *Server) Shutdown() {
	if !s.inShutdown.CompareAndSwap(false, true) {
		return
	}
	if s.ln == nil {
		return
	}
	_ = s.ln.Close()
	<-s.acceptDone
	for i := 0; i < s.cfg.Workers; i++ {
		s.dispatcher.enqueueSentinel()
	}
	s.workers.Wait()
	s.logger.Info("server stopped")
}

// Run starts the server and blocks until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	s.Shutdown()
	return nil
}
