package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Websocket timings shared by the client and the relay.
const (
	WriteWait      = 10 * time.Second
	PongWait       = 60 * time.Second
	PingPeriod     = (PongWait * 9) / 10
	MaxMessageSize = 64 * 1024
)

const sendBuffer = 256

// WSChannel is a connection to the relay. It becomes open once the relay
// reports that both players are present.
type WSChannel struct {
	conn   *websocket.Conn
	logger *log.Logger
	code   string

	send   chan []byte
	events chan Control

	mu      sync.RWMutex
	handler Handler

	open      atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

// DialHost connects to the relay at baseURL and creates a lobby.
// It returns once the relay has assigned a join code.
func DialHost(ctx context.Context, baseURL string, logger *log.Logger) (*WSChannel, error) {
	u, err := endpoint(baseURL, "/host")
	if err != nil {
		return nil, err
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", u, err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(WriteWait))
	mt, data, err := conn.ReadMessage()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("transport: read join code: %w", err)
	}
	ctl, err := ParseControl(data)
	if mt != websocket.TextMessage || err != nil || ctl.Relay != ControlCode {
		_ = conn.Close()
		return nil, fmt.Errorf("transport: unexpected first frame %q", data)
	}

	c := newWSChannel(conn, logger)
	c.code = ctl.Code
	c.start()
	return c, nil
}

// DialJoin connects to the relay and joins the lobby with code.
func DialJoin(ctx context.Context, baseURL, code string, logger *log.Logger) (*WSChannel, error) {
	u, err := endpoint(baseURL, "/join/"+url.PathEscape(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNoLobby, code)
		}
		return nil, fmt.Errorf("transport: dial %s: %w", u, err)
	}

	c := newWSChannel(conn, logger)
	c.code = strings.ToUpper(strings.TrimSpace(code))
	c.start()
	return c, nil
}

func newWSChannel(conn *websocket.Conn, logger *log.Logger) *WSChannel {
	if logger == nil {
		logger = log.Default()
	}
	return &WSChannel{
		conn:   conn,
		logger: logger,
		send:   make(chan []byte, sendBuffer),
		events: make(chan Control, 16),
		done:   make(chan struct{}),
	}
}

func (c *WSChannel) start() {
	go c.readPump()
	go c.writePump()
}

// Code returns the lobby join code.
func (c *WSChannel) Code() string { return c.code }

// Events delivers relay control frames (paired, left, expired, error).
func (c *WSChannel) Events() <-chan Control { return c.events }

// Done is closed when the connection ends.
func (c *WSChannel) Done() <-chan struct{} { return c.done }

// OnMessage sets the handler for game frames.
func (c *WSChannel) OnMessage(h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = h
}

// IsOpen reports whether the other player is connected.
func (c *WSChannel) IsOpen() bool {
	return c.open.Load()
}

// Send queues a game frame. When the write buffer is full the frame is dropped.
func (c *WSChannel) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.send <- data:
		return nil
	default:
		return errors.New("transport: send buffer full")
	}
}

// Close ends the connection. Safe to call multiple times.
func (c *WSChannel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.open.Store(false)
		close(c.done)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		err = c.conn.Close()
	})
	return err
}

func (c *WSChannel) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(PongWait))
	})

	for {
		mt, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("relay connection lost", "err", err)
			}
			return
		}

		if mt == websocket.TextMessage {
			c.handleControl(data)
			continue
		}
		c.mu.RLock()
		h := c.handler
		c.mu.RUnlock()
		if h != nil {
			h(data)
		}
	}
}

func (c *WSChannel) handleControl(data []byte) {
	ctl, err := ParseControl(data)
	if err != nil {
		c.logger.Debug("bad control frame", "err", err)
		return
	}
	switch ctl.Relay {
	case ControlPaired:
		c.open.Store(true)
	case ControlLeft, ControlExpired, ControlError:
		c.open.Store(false)
	}
	select {
	case c.events <- ctl:
	default:
	}
}

func (c *WSChannel) writePump() {
	ticker := time.NewTicker(PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				c.logger.Debug("write failed", "err", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("ping failed", "err", err)
				return
			}
		case <-c.done:
			return
		}
	}
}

// endpoint turns an http(s) or ws(s) base URL into a websocket URL for path.
func endpoint(base, path string) (string, error) {
	if !strings.Contains(base, "://") {
		base = "ws://" + base
	}
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", fmt.Errorf("transport: relay url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("transport: relay url: unsupported scheme %q", u.Scheme)
	}
	u.Path += path
	return u.String(), nil
}
