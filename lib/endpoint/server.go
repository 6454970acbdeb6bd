package endpoint

import (
	"errors"
	"fmt"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"net"
	"os"
	"sync"
	"sync/atomic"
)

var Logger = logger.GetLogger("endpoint")

// Handler is called for every accepted connection in its own goroutine.
// The connection is closed when the handler returns.
type Handler func(conn *net.UnixConn)

// Server accepts connections on a unix socket path.
type Server struct {
	path     string
	listener *net.UnixListener
	conns    *xsync.MapOf[uint64, *net.UnixConn]
	nextID   uint64 // Atomic counter for connection IDs
	closed   atomic.Bool
	mu       sync.Mutex // Guards wg.Add against Close
	wg       sync.WaitGroup
}

// Listen creates a listening socket at path. An existing socket file at path
// is removed first.
func Listen(path string) (*Server, error) {
	// Remove existing socket file if it exists
	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %v", err)
	}

	listener, err := net.ListenUnix("unix", &net.UnixAddr{Name: path, Net: "unix"})
	if err != nil {
		return nil, fmt.Errorf("failed to create Unix socket: %v", err)
	}

	return &Server{
		path:     path,
		listener: listener,
		conns:    xsync.NewMapOf[uint64, *net.UnixConn](),
	}, nil
}

// Path returns the socket path the server listens on
func (s *Server) Path() string {
	return s.path
}

// Active returns the number of connections whose handler is still running
func (s *Server) Active() int {
	return s.conns.Size()
}

// Serve accepts connections until Close is called. It returns nil after
// Close and the accept error otherwise.
func (s *Server) Serve(handler Handler) error {
	Logger.Infof("Listening on %s", s.path)

	for {
		conn, err := s.listener.AcceptUnix()
		if err != nil {
			if s.closed.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept failed: %w", err)
		}

		s.mu.Lock()
		if s.closed.Load() {
			s.mu.Unlock()
			conn.Close()
			return nil
		}
		id := atomic.AddUint64(&s.nextID, 1)
		s.conns.Store(id, conn)
		s.wg.Add(1)
		s.mu.Unlock()

		go func() {
			defer func() {
				s.conns.Delete(id)
				conn.Close()
				s.wg.Done()
			}()
			handler(conn)
		}()
	}
}

// Close stops accepting, closes all open connections and waits for their
// handlers to return. The socket file is removed.
func (s *Server) Close() error {
	s.mu.Lock()
	if !s.closed.CompareAndSwap(false, true) {
		s.mu.Unlock()
		return nil
	}
	err := s.listener.Close()

	s.conns.Range(func(_ uint64, conn *net.UnixConn) bool {
		conn.Close()
		return true
	})
	s.mu.Unlock()
	s.wg.Wait()

	return err
}
