// Package lobby pairs a host with exactly one joiner through a short join
// code. It is transport neutral: the relay pairs websocket connections and
// the SSH server pairs in-process channels.
package lobby

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	ErrLobbyNotFound = errors.New("lobby: not found")
	ErrLobbyFull     = errors.New("lobby: already has two players")
)

// Config holds registry timing.
type Config struct {
	LobbyTimeout  time.Duration // how long an unjoined lobby lives
	CleanupPeriod time.Duration // how often expired lobbies are swept
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		LobbyTimeout:  2 * time.Minute,
		CleanupPeriod: 30 * time.Second,
	}
}

// Lobby is a waiting room created by a host.
type Lobby[T any] struct {
	Code      string
	Host      T
	CreatedAt time.Time

	joined    chan T
	closed    chan struct{}
	closeOnce sync.Once
	full      bool
}

// Joined delivers the joiner once someone joins.
func (l *Lobby[T]) Joined() <-chan T {
	return l.joined
}

// Closed is closed when the lobby is cancelled or expires.
func (l *Lobby[T]) Closed() <-chan struct{} {
	return l.closed
}

func (l *Lobby[T]) close() {
	l.closeOnce.Do(func() { close(l.closed) })
}

// Registry tracks open lobbies. Safe for concurrent use.
type Registry[T any] struct {
	config Config
	logger *log.Logger
	now    func() time.Time

	mu      sync.Mutex
	lobbies map[string]*Lobby[T]

	done     chan struct{}
	stopOnce sync.Once
}

// NewRegistry creates an empty registry.
func NewRegistry[T any](cfg Config, logger *log.Logger) *Registry[T] {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry[T]{
		config:  cfg,
		logger:  logger,
		now:     time.Now,
		lobbies: make(map[string]*Lobby[T]),
		done:    make(chan struct{}),
	}
}

// Start begins background expiry of unjoined lobbies.
func (r *Registry[T]) Start() {
	if r.config.CleanupPeriod <= 0 {
		return
	}
	go r.cleanupLoop()
}

// Stop ends background expiry. Safe to call multiple times.
func (r *Registry[T]) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

// Create opens a lobby for host under a fresh join code.
func (r *Registry[T]) Create(host T) *Lobby[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := &Lobby[T]{
		Code:      r.uniqueCode(),
		Host:      host,
		CreatedAt: r.now(),
		joined:    make(chan T, 1),
		closed:    make(chan struct{}),
	}
	r.lobbies[l.Code] = l
	r.logger.Debug("lobby created", "code", l.Code)
	return l
}

// Join adds joiner to the lobby with code and returns the lobby.
// Codes are case-insensitive.
func (r *Registry[T]) Join(code string, joiner T) (*Lobby[T], error) {
	code = NormalizeCode(code)

	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lobbies[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLobbyNotFound, code)
	}
	if l.full {
		return nil, fmt.Errorf("%w: %s", ErrLobbyFull, code)
	}
	l.full = true
	l.joined <- joiner
	r.logger.Debug("lobby joined", "code", code)
	return l, nil
}

// Cancel removes the lobby and closes it. It reports whether it existed.
func (r *Registry[T]) Cancel(code string) bool {
	code = NormalizeCode(code)

	r.mu.Lock()
	l, ok := r.lobbies[code]
	delete(r.lobbies, code)
	r.mu.Unlock()

	if ok {
		l.close()
	}
	return ok
}

// Get returns the lobby with code.
func (r *Registry[T]) Get(code string) (*Lobby[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lobbies[NormalizeCode(code)]
	return l, ok
}

// Count returns the number of open lobbies.
func (r *Registry[T]) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lobbies)
}

func (r *Registry[T]) cleanupLoop() {
	ticker := time.NewTicker(r.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanupExpired()
		case <-r.done:
			return
		}
	}
}

// cleanupExpired closes unjoined lobbies older than LobbyTimeout.
func (r *Registry[T]) cleanupExpired() int {
	now := r.now()

	r.mu.Lock()
	var expired []*Lobby[T]
	for code, l := range r.lobbies {
		if !l.full && now.Sub(l.CreatedAt) > r.config.LobbyTimeout {
			expired = append(expired, l)
			delete(r.lobbies, code)
		}
	}
	r.mu.Unlock()

	for _, l := range expired {
		r.logger.Info("lobby expired", "code", l.Code)
		l.close()
	}
	return len(expired)
}

func (r *Registry[T]) uniqueCode() string {
	for {
		code := generateJoinCode()
		if _, exists := r.lobbies[code]; !exists {
			return code
		}
	}
}

// NormalizeCode trims and upper-cases a user-typed code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// generateJoinCode creates a 6-character code from the base32 alphabet.
func generateJoinCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	return base32.StdEncoding.EncodeToString(b)[:6]
}
