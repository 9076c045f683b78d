// Package relay forwards frames between the two players of a lobby. It
// never decodes game frames; it only pairs connections by join code.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/wildgrove/internal/lobby"
	"github.com/vovakirdan/wildgrove/internal/transport"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server is the websocket relay.
type Server struct {
	lobbies *lobby.Registry[*conn]
	logger  *log.Logger
	pairs   atomic.Int64
}

// New creates a relay server.
func New(cfg lobby.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		lobbies: lobby.NewRegistry[*conn](cfg, logger),
		logger:  logger,
	}
}

// Router returns the HTTP routes of the relay.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/host", s.handleHost)
	r.Get("/join/{code}", s.handleJoin)
	return r
}

// Start begins lobby expiry.
func (s *Server) Start() { s.lobbies.Start() }

// Stop ends lobby expiry.
func (s *Server) Stop() { s.lobbies.Stop() }

// ListenAndServe runs the relay on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.Start()
	defer s.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("relay listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("relay: listen: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("relay: shutdown: %w", err)
		}
		return nil
	}
}

type health struct {
	Status  string `json:"status"`
	Lobbies int    `json:"lobbies"`
	Pairs   int64  `json:"pairs"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(health{
		Status:  "ok",
		Lobbies: s.lobbies.Count(),
		Pairs:   s.pairs.Load(),
	})
}

func (s *Server) handleHost(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "err", err)
		return
	}
	host := newConn(ws)
	go host.readLoop()
	go host.pingLoop()
	defer host.close()

	l := s.lobbies.Create(host)
	defer s.lobbies.Cancel(l.Code)
	host.control(transport.Control{Relay: transport.ControlCode, Code: l.Code})
	s.logger.Info("lobby open", "code", l.Code, "remote", r.RemoteAddr)

	select {
	case joiner := <-l.Joined():
		s.pair(l.Code, host, joiner)
	case <-l.Closed():
		host.control(transport.Control{Relay: transport.ControlExpired})
	case <-host.gone:
		s.logger.Info("host left before pairing", "code", l.Code)
	}
}

// pair forwards frames between host and joiner until either disconnects.
func (s *Server) pair(code string, host, joiner *conn) {
	s.pairs.Add(1)
	defer s.pairs.Add(-1)

	host.peer.Store(joiner)
	joiner.peer.Store(host)
	host.control(transport.Control{Relay: transport.ControlPaired, Code: code})
	joiner.control(transport.Control{Relay: transport.ControlPaired, Code: code})
	s.logger.Info("lobby paired", "code", code)

	select {
	case <-host.gone:
		joiner.control(transport.Control{Relay: transport.ControlLeft})
	case <-joiner.gone:
		host.control(transport.Control{Relay: transport.ControlLeft})
	}
	joiner.close()
	s.logger.Info("pair ended", "code", code)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	code := lobby.NormalizeCode(chi.URLParam(r, "code"))
	if _, ok := s.lobbies.Get(code); !ok {
		http.Error(w, "lobby not found", http.StatusNotFound)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "err", err)
		return
	}
	joiner := newConn(ws)
	go joiner.readLoop()
	go joiner.pingLoop()
	defer joiner.close()

	l, err := s.lobbies.Join(code, joiner)
	if err != nil {
		joiner.control(transport.Control{Relay: transport.ControlError, Error: err.Error()})
		return
	}
	select {
	case <-joiner.gone:
	case <-l.Closed():
	}
}

// conn wraps a websocket with a write lock so the relay can write to it from
// the other player's goroutine.
type conn struct {
	ws   *websocket.Conn
	peer atomic.Pointer[conn]

	wmu       sync.Mutex
	gone      chan struct{}
	closeOnce sync.Once
}

func newConn(ws *websocket.Conn) *conn {
	return &conn{ws: ws, gone: make(chan struct{})}
}

func (c *conn) write(mt int, data []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(transport.WriteWait))
	return c.ws.WriteMessage(mt, data)
}

func (c *conn) control(ctl transport.Control) {
	_ = c.write(websocket.TextMessage, ctl.Marshal())
}

// readLoop forwards binary frames to the peer once paired.
func (c *conn) readLoop() {
	defer c.closeOnce.Do(func() { close(c.gone) })

	c.ws.SetReadLimit(transport.MaxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(transport.PongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(transport.PongWait))
	})

	for {
		mt, data, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.BinaryMessage {
			continue
		}
		if p := c.peer.Load(); p != nil {
			_ = p.write(websocket.BinaryMessage, data)
		}
	}
}

func (c *conn) pingLoop() {
	ticker := time.NewTicker(transport.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.wmu.Lock()
			err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(transport.WriteWait))
			c.wmu.Unlock()
			if err != nil {
				return
			}
		case <-c.gone:
			return
		}
	}
}

func (c *conn) close() {
	_ = c.ws.Close()
}
