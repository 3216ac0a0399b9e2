package server

import (
	"context"
	"errors"
	"net"
	"strconv"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sys/unix"
)

// listen binds the serving endpoint with SO_REUSEADDR so restarts do not
// trip over sockets in TIME_WAIT. The listen backlog itself is
// kernel-controlled (net.somaxconn); Go does not expose it per listener.
func listen(host string, port int) (net.Listener, error) {
	lc := net.ListenConfig{Control: reuseAddr}
	return lc.Listen(context.Background(), "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
}

func reuseAddr(network, address string, c syscall.RawConn) error {
	var sockErr error
	if err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	}); err != nil {
		return err
	}
	return sockErr
}

// acceptLoop accepts until the listening socket is closed, which is the
// shutdown signal. Transient accept errors back off exponentially instead
// of spinning.
func (s *Server) acceptLoop() {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 5 * time.Millisecond
	bo.MaxInterval = time.Second
	bo.MaxElapsedTime = 0

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if s.inShutdown.Load() || errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Error("accept failed", "error", err)
			time.Sleep(bo.NextBackOff())
			continue
		}
		bo.Reset()
		s.admit(conn)
	}
}

// admit pushes an accepted connection onto the dispatch queue, warning on
// saturation and answering 503 when the queue is full.
func (s *Server) admit(conn net.Conn) {
	s.metrics.ConnAccepted()

	depth := s.dispatcher.depth()
	if depth >= 2*s.cfg.Workers {
		s.logger.Warn("worker pool saturated, queuing connection", "depth", depth)
	}

	pc := pendingConn{conn: conn, peer: conn.RemoteAddr().String()}
	if !s.dispatcher.tryEnqueue(pc) {
		s.metrics.ConnRejected()
		s.logger.Warn("dispatch queue full, rejecting connection", "peer", pc.peer)
		_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		_ = s.writer.WriteBusy(conn)
		_ = conn.Close()
		return
	}
	s.metrics.SetQueueDepth(s.dispatcher.depth())
}
