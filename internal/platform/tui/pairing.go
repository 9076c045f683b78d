package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wildgrove/internal/lobby"
	"github.com/vovakirdan/wildgrove/internal/transport"
)

// hostLink is where a host receives its end of the pipe once someone joins.
type hostLink chan *transport.MemoryChannel

// Pairing matches SSH sessions on the same server through join codes and
// links each pair with an in-process pipe.
type Pairing struct {
	reg *lobby.Registry[hostLink]
}

// NewPairing creates a pairing service.
func NewPairing(cfg lobby.Config, logger *log.Logger) *Pairing {
	return &Pairing{reg: lobby.NewRegistry[hostLink](cfg, logger)}
}

// Start begins expiring abandoned lobbies.
func (p *Pairing) Start() { p.reg.Start() }

// Stop ends lobby expiry.
func (p *Pairing) Stop() { p.reg.Stop() }

// Host opens a lobby. The host's end of the pipe arrives on the lobby's
// Host channel.
func (p *Pairing) Host() *lobby.Lobby[hostLink] {
	return p.reg.Create(make(hostLink, 1))
}

// Join pairs with the lobby under code and returns the joiner's end.
func (p *Pairing) Join(code string) (*transport.MemoryChannel, error) {
	l, err := p.reg.Join(code, nil)
	if err != nil {
		return nil, err
	}
	hostEnd, joinEnd := transport.Pipe()
	l.Host <- hostEnd
	return joinEnd, nil
}

// Cancel closes the lobby. A pipe end the host never picked up is closed
// so the joiner sees the connection drop.
func (p *Pairing) Cancel(code string) {
	if l, ok := p.reg.Get(code); ok {
		select {
		case ch := <-l.Host:
			ch.Close()
		default:
		}
	}
	p.reg.Cancel(code)
}

// Open returns the number of open lobbies.
func (p *Pairing) Open() int {
	return p.reg.Count()
}
