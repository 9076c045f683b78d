package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wildgrove/internal/config"
	"github.com/vovakirdan/wildgrove/internal/netsync"
	"github.com/vovakirdan/wildgrove/internal/storage"
	"github.com/vovakirdan/wildgrove/internal/transport"
)

// Link is a peer channel as the front end sees it.
type Link interface {
	netsync.Channel
	OnMessage(h transport.Handler)
	Close() error
}

// Setup holds what every session built by the front end shares.
type Setup struct {
	Config config.Config
	Store  *storage.Store
	Codec  netsync.Codec
	Logger *log.Logger
}

// NewSession builds a session for role. link may be nil for solo play;
// otherwise inbound frames are delivered to the new session.
func (s Setup) NewSession(role netsync.Role, seed uint32, playerID string, link Link) *netsync.Session {
	opts := netsync.Options{
		Role:      role,
		Seed:      seed,
		PlayerID:  playerID,
		GenParams: s.Config.GenParams(),
		SimParams: s.Config.SimParams(),
		Codec:     s.Codec,
		Logger:    s.Logger,
		QueueSize: s.Config.Network.QueueSize,
	}
	if link != nil {
		opts.Channel = link
	}
	sess := netsync.NewSession(opts)
	if link != nil {
		link.OnMessage(sess.Deliver)
	}
	return sess
}

// GameOptions returns model options for sess.
func (s Setup) GameOptions(sess *netsync.Session, playerID string, link Link, width, height int) GameOptions {
	opts := GameOptions{
		Session:  sess,
		Store:    s.Store,
		PlayerID: playerID,
		TickRate: s.Config.Loop.TickRate,
		SeedWait: s.Config.Network.SeedWait,
		Width:    width,
		Height:   height,
		Logger:   s.Logger,
	}
	if link != nil {
		opts.Link = link
	}
	return opts
}

var (
	_ Link = (*transport.MemoryChannel)(nil)
	_ Link = (*transport.WSChannel)(nil)
)
