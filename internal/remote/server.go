package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/notebook/internal/discovery"
	"github.com/muurk/notebook/internal/logging"
	"github.com/muurk/notebook/internal/notebook"
	"github.com/muurk/notebook/internal/version"
)

// Config holds the server configuration
type Config struct {
	Host string
	Port int // 0 picks a free port
	Path string

	// Advertise registers the server over mDNS under Name
	Advertise bool
	Name      string
}

// Server exposes one notebook over WebSocket
type Server struct {
	config   *Config
	session  *Session
	hub      *Hub
	upgrader websocket.Upgrader
	http     *http.Server
	listener net.Listener
	ad       *discovery.Advertisement
	wg       sync.WaitGroup

	// cmdMu keeps broadcasts in the order commands were applied
	cmdMu sync.Mutex
}

// New creates a server for nb. Missing config fields get defaults.
func New(config *Config, nb *notebook.Notebook) *Server {
	cfg := *config
	if cfg.Path == "" {
		cfg.Path = discovery.DefaultPath
	}
	if cfg.Name == "" {
		host, _ := os.Hostname()
		cfg.Name = nb.ID() + " on " + host
	}

	s := &Server{
		config:  &cfg,
		session: NewSession(nb),
		hub:     NewHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Any origin: the server is meant for local tooling
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP routes: the WebSocket endpoint, "/state" and
// "/healthz".
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.config.Path, s.serveWS)
	mux.HandleFunc("/state", s.serveState)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}

// Session returns the shared notebook session.
func (s *Server) Session() *Session { return s.session }

// Clients returns the number of connected clients.
func (s *Server) Clients() int { return s.hub.Len() }

// Listen binds the listening socket.
func (s *Server) Listen() error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = l
	logging.Info("Server listening for connections",
		zap.String("addr", l.Addr().String()),
		zap.String("path", s.config.Path),
	)
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Start listens, optionally advertises, and serves until SIGINT/SIGTERM or
// a serve error.
func (s *Server) Start() error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	if s.config.Advertise {
		port := s.listener.Addr().(*net.TCPAddr).Port
		ad, err := discovery.Advertise(s.config.Name, port, discovery.Info{
			NotebookID: s.session.ID(),
			Tabs:       s.session.Len(),
			Version:    version.Version,
			Path:       s.config.Path,
		})
		if err != nil {
			logging.Warn("mDNS advertisement failed, continuing without it", zap.Error(err))
		} else {
			s.ad = ad
		}
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Serve()
	}()

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Shutdown(ctx)
	case err := <-errChan:
		return err
	}
}

// Serve accepts connections on the bound listener until Shutdown.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}
	if err := s.http.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve failed: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections, closes the live ones and withdraws
// the mDNS advertisement.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if s.ad != nil {
		s.ad.Shutdown()
	}

	err := s.http.Shutdown(ctx)
	s.hub.CloseAll()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		logging.Info("All connections closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}

	s.session.Close()
	logging.Sync()
	return err
}

func (s *Server) serveState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.session.State()); err != nil {
		logging.Error("Failed to write state", zap.Error(err))
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error.
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	c := newConn(ws)
	logging.LogConnection(c.remoteAddr, "websocket_upgraded")

	info := version.Info()
	s.cmdMu.Lock()
	c.queue(
		Message{Type: MsgHello, Session: uuid.NewString(), Server: &info},
		stateMessage("", s.session.State()),
	)
	s.hub.add(c)
	s.cmdMu.Unlock()

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		c.writePump()
	}()
	go func() {
		defer s.wg.Done()
		c.readPump(s.handle)
		s.hub.remove(c)
		logging.LogConnection(c.remoteAddr, "websocket_closed")
	}()
}

// handle applies one client frame. Errors go back to the sender only;
// resulting signals and state go to everyone.
func (s *Server) handle(c *conn, data []byte) {
	cmd, err := ParseCommand(data)
	if err != nil {
		c.queue(errorMessage("", err))
		return
	}

	if cmd.Type == CmdState {
		c.queue(stateMessage(cmd.ID, s.session.State()))
		return
	}

	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()

	msgs, err := s.session.Apply(cmd)
	if err != nil {
		logging.Debug("Command rejected",
			zap.String("remote_addr", c.remoteAddr),
			zap.String("type", cmd.Type),
			zap.Error(err),
		)
		c.queue(errorMessage(cmd.ID, err))
		return
	}
	s.hub.Broadcast(msgs...)

	if s.ad != nil {
		s.ad.SetTabs(s.session.Len())
	}
}
