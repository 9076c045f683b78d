package netsync

import (
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wildgrove/internal/core"
	"github.com/vovakirdan/wildgrove/internal/sim"
	"github.com/vovakirdan/wildgrove/internal/world"
	"github.com/vovakirdan/wildgrove/internal/worldgen"
)

// Role is a participant's part in a session.
type Role int

const (
	RoleSolo Role = iota // authority, no channel
	RoleHost             // authority, sends snapshots
	RolePeer             // mirrors the host's hostiles
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleSolo:
		return "solo"
	case RoleHost:
		return "host"
	case RolePeer:
		return "peer"
	default:
		return "unknown"
	}
}

// Authority reports whether the role runs hostile AI and respawning.
func (r Role) Authority() bool {
	return r != RolePeer
}

// Channel is the outbound half of the link to the other peer.
// Send must not block for long; a lossy send is fine.
type Channel interface {
	Send(data []byte) error
	IsOpen() bool
}

// PeerStatus describes the link as the player sees it.
type PeerStatus int

const (
	StatusSolo PeerStatus = iota
	StatusWaiting
	StatusConnected
	StatusLost
)

// String returns the status line shown to the player.
func (s PeerStatus) String() string {
	switch s {
	case StatusSolo:
		return "solo"
	case StatusWaiting:
		return "friend not yet connected"
	case StatusConnected:
		return "friend connected"
	case StatusLost:
		return "connection lost"
	default:
		return "unknown"
	}
}

// maxSwingsPerReport caps how many swings one avatar_state can resolve.
const maxSwingsPerReport = 4

// DefaultQueueSize bounds the inbound message queue.
const DefaultQueueSize = 256

// Options configures a Session.
type Options struct {
	Role      Role
	Seed      uint32 // host: the shared seed; peer: fallback until session_start arrives
	PlayerID  string
	GenParams worldgen.Params
	SimParams sim.Params
	Channel   Channel // nil for solo
	Codec     Codec   // nil selects msgpack
	Logger    *log.Logger
	QueueSize int
}

// Session owns one local simulation and its replication. Tick, Drain and
// the world accessors must be called from a single goroutine; Deliver may be
// called from any goroutine.
type Session struct {
	role   Role
	opts   Options
	engine *sim.Engine
	world  *world.World
	codec  Codec
	ch     Channel
	logger *log.Logger

	inbox   chan []byte
	dropped atomic.Int64

	started      bool // at least one tick has run
	sentStart    bool
	seedReceived bool
	heardRemote  bool
	wasOpen      bool
}

// NewSession creates the world for opts.Seed and, for authorities, spawns
// the opening hostiles.
func NewSession(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Codec == nil {
		opts.Codec = MsgpackCodec{}
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = DefaultQueueSize
	}
	if opts.Role == RoleSolo {
		opts.Channel = nil
	}

	s := &Session{
		role:   opts.Role,
		opts:   opts,
		codec:  opts.Codec,
		ch:     opts.Channel,
		logger: opts.Logger,
		inbox:  make(chan []byte, opts.QueueSize),
	}
	s.reset(opts.Seed)
	return s
}

func (s *Session) reset(seed uint32) {
	coop := s.role != RoleSolo
	s.engine = sim.NewEngine(seed, s.opts.SimParams, s.logger)
	s.world = sim.NewWorld(seed, s.opts.GenParams, s.opts.SimParams, s.opts.PlayerID, coop)
	if s.role.Authority() {
		s.engine.Populate(s.world)
	}
}

// Role returns the session role.
func (s *Session) Role() Role { return s.role }

// World returns the live world. Only the ticking goroutine may touch it.
func (s *Session) World() *world.World { return s.world }

// Snapshot returns a deep copy of the world for rendering.
func (s *Session) Snapshot() *world.World { return s.world.Snapshot() }

// Done reports whether the local player has died.
func (s *Session) Done() bool { return s.world.GameOver }

// SeedReceived reports whether a peer has applied the host's seed.
func (s *Session) SeedReceived() bool { return s.seedReceived }

// Started reports whether the first tick has run.
func (s *Session) Started() bool { return s.started }

// Dropped returns how many inbound messages were discarded on overflow.
func (s *Session) Dropped() int64 { return s.dropped.Load() }

// Status summarizes the link for the HUD.
func (s *Session) Status() PeerStatus {
	if s.role == RoleSolo || s.ch == nil {
		return StatusSolo
	}
	if s.ch.IsOpen() {
		if s.heardRemote {
			return StatusConnected
		}
		return StatusWaiting
	}
	if s.wasOpen {
		return StatusLost
	}
	return StatusWaiting
}

// Deliver queues a received frame. When the queue is full the oldest
// frame is dropped.
func (s *Session) Deliver(data []byte) {
	select {
	case s.inbox <- data:
	default:
		select {
		case <-s.inbox:
			s.dropped.Add(1)
		default:
		}
		select {
		case s.inbox <- data:
		default:
		}
	}
}

// Drain applies every queued frame. Tick calls it first; callers may also
// use it before the first tick to pick up the host's seed.
func (s *Session) Drain() {
	for {
		select {
		case data := <-s.inbox:
			s.apply(data)
		default:
			return
		}
	}
}

// Tick applies queued messages, advances the simulation one step and sends
// this tick's state when the channel is open.
func (s *Session) Tick(in core.InputFrame) {
	s.Drain()
	s.engine.Tick(s.world, in, s.role.Authority())
	s.started = true

	var bites []sim.Bite
	if s.role == RoleHost {
		bites = s.engine.TakeBites()
	}
	s.send(bites)
}

func (s *Session) send(bites []sim.Bite) {
	if s.ch == nil || !s.ch.IsOpen() {
		return
	}
	s.wasOpen = true

	if s.role == RoleHost && !s.sentStart {
		s.sentStart = true
		s.emit(NewSessionStart(s.world.Seed))
	}
	s.emit(NewAvatarState(&s.world.Player))
	if s.role == RoleHost {
		s.emit(NewWorldSnapshot(s.world, bites))
	}
}

func (s *Session) emit(m Message) {
	data, err := s.codec.Encode(m)
	if err != nil {
		s.logger.Warn("encode failed", "type", m.Type, "err", err)
		return
	}
	if err := s.ch.Send(data); err != nil {
		s.logger.Debug("send failed", "type", m.Type, "err", err)
	}
}

func (s *Session) apply(data []byte) {
	m, err := Decode(data)
	if err != nil {
		s.logger.Debug("dropping frame", "err", err)
		return
	}
	s.heardRemote = true

	switch m.Type {
	case TypeSessionStart:
		s.applyStart(m.Start)
	case TypeAvatarState:
		s.applyAvatar(m.Avatar)
	case TypeWorldSnapshot:
		s.applySnapshot(m.World)
	}
}

func (s *Session) applyStart(st *SessionStart) {
	switch {
	case s.role != RolePeer:
		s.logger.Warn("ignoring session_start", "role", s.role)
	case s.started:
		s.logger.Warn("late seed ignored", "seed", st.Seed, "current", s.world.Seed)
	default:
		s.seedReceived = true
		if st.Seed != s.world.Seed {
			s.logger.Info("adopting host seed", "seed", st.Seed)
			s.reset(st.Seed)
		}
	}
}

func (s *Session) applyAvatar(st *AvatarState) {
	remote := s.world.RemoteAvatar
	if remote == nil {
		return
	}
	applyAvatar(remote, st, s.world.Bounds)

	// Each swing the peer started since its last report is resolved once
	// against the authoritative hostiles. Stale reports move nothing.
	started := int32(st.Swing - remote.Swings)
	if started <= 0 {
		return
	}
	remote.Swings = st.Swing
	if s.role != RoleHost || s.world.GameOver || !remote.Alive() {
		return
	}
	for range min(int(started), maxSwingsPerReport) {
		s.engine.ResolveMelee(s.world, remote)
	}
}

func (s *Session) applySnapshot(ws *WorldSnapshot) {
	if s.role != RolePeer {
		s.logger.Warn("ignoring world_snapshot", "role", s.role)
		return
	}
	s.world.ReplaceHostiles(hostilesFromSnapshot(ws.Hostiles, s.world.Bounds, s.opts.SimParams.HostileRadius))
	s.world.Score = max(0, ws.Score)

	// Bites aimed at the host's placeholder id landed before it heard from us.
	for _, b := range ws.Bites {
		if b.TargetID != s.world.Player.ID && b.TargetID != world.RemoteAvatarID {
			continue
		}
		if b.Damage > 0 && !s.world.GameOver {
			s.world.Player.Damage(b.Damage)
		}
	}
	s.world.GameOver = s.world.GameOver || s.world.Player.HP <= 0
}
