package server

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/lowkeyarhan/Socket-P-assignment/internal/http1"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/repository"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/respond"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/security"
)

const dequeueWait = time.Second

// worker pulls one connection at a time and runs its request loop to
// completion before pulling the next. It exits only on the termination
// sentinel; an unexpected panic is logged and the worker returns to the
// queue so the pool never shrinks.
func (s *Server) worker(id int) {
	defer s.workers.Done()
	logger := s.logger.With("worker", id)

	for {
		pc, ok := s.dispatcher.dequeue(dequeueWait)
		if !ok {
			continue
		}
		if pc.isSentinel() {
			return
		}
		s.metrics.SetQueueDepth(s.dispatcher.depth())
		s.runConn(pc, logger)
	}
}

func (s *Server) runConn(pc pendingConn, logger *slog.Logger) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("connection loop panic", "panic", rec)
			_ = pc.conn.Close()
		}
	}()
	s.serveConn(pc, logger)
}

// serveConn is the per-connection state machine: read, parse, security
// check, handle, respond, then either loop for the next request or close.
func (s *Server) serveConn(pc pendingConn, logger *slog.Logger) {
	connID := uuid.NewString()[:8]
	logger = logger.With("conn", connID, "peer", pc.peer)
	logger.Info("connection accepted")

	s.metrics.SetActive(s.active.Add(1))
	served := 0
	defer func() {
		_ = pc.conn.Close()
		s.metrics.SetActive(s.active.Add(-1))
		logger.Info("connection closed", "requests", served)
	}()

	br := bufio.NewReader(pc.conn)
	for served < s.cfg.MaxRequests {
		_ = pc.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))

		reader := &http1.Reader{
			BR:             br,
			MaxHeaderBytes: s.cfg.MaxHeaderBytes,
			MaxBodyBytes:   s.cfg.MaxBodyBytes,
		}
		req, err := reader.ReadRequest()
		if err != nil {
			s.respondReadError(pc.conn, err, logger)
			return
		}
		served++
		start := time.Now()
		logger.Info("request", "method", req.Method, "path", req.Path, "proto", req.Proto)

		resp := s.dispatch(req, pc.peer, logger)
		keepAlive := !resp.Close && served < s.cfg.MaxRequests && req.WantsKeepAlive()

		if err := s.writer.Write(pc.conn, resp, keepAlive); err != nil {
			logger.Warn("write response failed", "error", err)
			return
		}

		elapsed := time.Since(start)
		s.metrics.ObserveRequest(req.Method, strconv.Itoa(resp.Status), elapsed.Seconds(), len(resp.Body))
		s.recorder.Record(&repository.AccessLog{
			ConnID:     connID,
			Peer:       pc.peer,
			Method:     req.Method,
			Path:       req.Path,
			Status:     resp.Status,
			Bytes:      len(resp.Body),
			DurationMs: elapsed.Milliseconds(),
		})

		if !keepAlive {
			return
		}
	}
}

// dispatch runs the security gate and then the handler. The Host check
// happens before any routing; its failures are fail-closed (the page's
// Close flag ends the connection). Handler panics become a 500. Rejections
// from either gate land in the security audit trail.
func (s *Server) dispatch(req *http1.Request, peer string, logger *slog.Logger) (resp *respond.Response) {
	if err := s.hosts.Validate(req.HeaderValue("Host")); err != nil {
		logger.Warn("host validation failed", "error", err)
		if errors.Is(err, security.ErrMissingHost) {
			return s.writer.ErrorPage(400, "Missing Host header")
		}
		s.audit.Record(security.Event{Kind: security.EventHostRejected, Peer: peer, Path: req.Path, Detail: err.Error()})
		return s.writer.ErrorPage(403, "Invalid Host header")
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("handler panic", "panic", rec)
			resp = s.writer.ErrorPage(500, "")
		}
	}()
	resp = s.handler.Handle(req)
	// The handler's only 403 is a rejected path.
	if resp.Status == 403 {
		s.audit.Record(security.Event{Kind: security.EventPathTraversal, Peer: peer, Path: req.Path})
	}
	return resp
}

// respondReadError classifies a failed read. Framing and size violations
// get a best-effort 400; timeouts, resets and clean closes get nothing but
// a log line.
func (s *Server) respondReadError(conn net.Conn, err error, logger *slog.Logger) {
	switch {
	case err == io.EOF:
		// peer closed between requests
	case isTimeout(err):
		logger.Info("connection timeout")
	case errors.Is(err, http1.ErrMalformedRequest),
		errors.Is(err, http1.ErrDuplicateHeader),
		errors.Is(err, http1.ErrRequestTooLarge),
		errors.Is(err, http1.ErrTruncatedBody):
		logger.Warn("bad request", "error", err)
		_ = s.writer.Write(conn, s.writer.ErrorPage(400, ""), false)
	default:
		logger.Info("client disconnected", "error", err)
	}
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
