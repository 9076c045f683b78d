// Package netsync replicates a two-peer session over a best-effort message
// channel. The host owns hostiles and score; each peer owns its own avatar.
package netsync

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/wildgrove/internal/core"
	"github.com/vovakirdan/wildgrove/internal/sim"
	"github.com/vovakirdan/wildgrove/internal/world"
)

// MessageType discriminates the payload of a Message.
type MessageType string

const (
	TypeSessionStart  MessageType = "session_start"
	TypeAvatarState   MessageType = "avatar_state"
	TypeWorldSnapshot MessageType = "world_snapshot"
)

// Message is the envelope for everything sent between peers.
// Exactly one payload field matching Type is set.
type Message struct {
	Type   MessageType    `json:"type" msgpack:"type"`
	Start  *SessionStart  `json:"start,omitempty" msgpack:"start,omitempty"`
	Avatar *AvatarState   `json:"avatar,omitempty" msgpack:"avatar,omitempty"`
	World  *WorldSnapshot `json:"world,omitempty" msgpack:"world,omitempty"`
}

// SessionStart carries the environment seed from host to peer.
type SessionStart struct {
	Seed uint32 `json:"seed" msgpack:"seed"`
}

// Point is a wire-format 2D position.
type Point struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

func pointOf(v core.Vec2) Point { return Point{X: v.X, Y: v.Y} }

// Vec converts the point back to a vector.
func (p Point) Vec() core.Vec2 { return core.V(p.X, p.Y) }

// AvatarState is a peer's self-report of its own avatar.
type AvatarState struct {
	ID        string  `json:"id" msgpack:"id"`
	Position  Point   `json:"position" msgpack:"position"`
	Facing    float64 `json:"facing" msgpack:"facing"`
	GaitPhase float64 `json:"gaitPhase" msgpack:"gaitPhase"`
	Attacking bool    `json:"attacking" msgpack:"attacking"`
	Swing     uint32  `json:"swing" msgpack:"swing"` // attacks started so far
	Health    int     `json:"health" msgpack:"health"`
	MaxHealth int     `json:"maxHealth" msgpack:"maxHealth"`
	Level     int     `json:"level" msgpack:"level"`
}

// HostileState is one hostile inside a WorldSnapshot.
type HostileState struct {
	ID         string  `json:"id" msgpack:"id"`
	Position   Point   `json:"position" msgpack:"position"`
	Facing     float64 `json:"facing" msgpack:"facing"`
	GaitPhase  float64 `json:"gaitPhase" msgpack:"gaitPhase"`
	Radius     float64 `json:"radius" msgpack:"radius"`
	Health     int     `json:"health" msgpack:"health"`
	MaxHealth  int     `json:"maxHealth" msgpack:"maxHealth"`
	Attacking  bool    `json:"attacking" msgpack:"attacking"`
	AttackAnim int     `json:"attackAnim" msgpack:"attackAnim"`
}

// WorldSnapshot is the host's authoritative hostile set and score.
type WorldSnapshot struct {
	Tick     uint64         `json:"tick" msgpack:"tick"`
	Hostiles []HostileState `json:"hostiles" msgpack:"hostiles"`
	Score    int            `json:"score" msgpack:"score"`
	Bites    []sim.Bite     `json:"bites,omitempty" msgpack:"bites,omitempty"`
}

// ErrBadMessage is returned for envelopes whose payload does not match the type.
var ErrBadMessage = errors.New("netsync: malformed message")

// Validate checks that the payload matching Type is present.
func (m Message) Validate() error {
	switch m.Type {
	case TypeSessionStart:
		if m.Start == nil {
			return fmt.Errorf("%w: %s without payload", ErrBadMessage, m.Type)
		}
	case TypeAvatarState:
		if m.Avatar == nil {
			return fmt.Errorf("%w: %s without payload", ErrBadMessage, m.Type)
		}
	case TypeWorldSnapshot:
		if m.World == nil {
			return fmt.Errorf("%w: %s without payload", ErrBadMessage, m.Type)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrBadMessage, m.Type)
	}
	return nil
}

// NewSessionStart builds a session_start message.
func NewSessionStart(seed uint32) Message {
	return Message{Type: TypeSessionStart, Start: &SessionStart{Seed: seed}}
}

// NewAvatarState builds an avatar_state message from the local player.
func NewAvatarState(p *world.Entity) Message {
	return Message{Type: TypeAvatarState, Avatar: &AvatarState{
		ID:        p.ID,
		Position:  pointOf(p.Pos),
		Facing:    p.Facing,
		GaitPhase: p.GaitPhase,
		Attacking: p.Attacking,
		Swing:     p.Swings,
		Health:    p.HP,
		MaxHealth: p.MaxHP,
		Level:     p.Level(),
	}}
}

// NewWorldSnapshot builds a world_snapshot message from the host's world.
func NewWorldSnapshot(w *world.World, bites []sim.Bite) Message {
	hs := make([]HostileState, len(w.Hostiles))
	for i := range w.Hostiles {
		h := &w.Hostiles[i]
		hs[i] = HostileState{
			ID:         h.ID,
			Position:   pointOf(h.Pos),
			Facing:     h.Facing,
			GaitPhase:  h.GaitPhase,
			Radius:     h.Radius,
			Health:     h.HP,
			MaxHealth:  h.MaxHP,
			Attacking:  h.Attacking,
			AttackAnim: h.AttackAnim,
		}
	}
	return Message{Type: TypeWorldSnapshot, World: &WorldSnapshot{
		Tick:     w.Tick,
		Hostiles: hs,
		Score:    w.Score,
		Bites:    bites,
	}}
}
