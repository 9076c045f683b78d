package netsync

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec turns messages into wire frames.
type Codec interface {
	Name() string
	Encode(m Message) ([]byte, error)
}

// JSONCodec encodes messages as JSON text. Handy when watching the relay.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Encode(m Message) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("netsync: encode json: %w", err)
	}
	return data, nil
}

// MsgpackCodec encodes messages as msgpack. This is the default.
type MsgpackCodec struct{}

func (MsgpackCodec) Name() string { return "msgpack" }

func (MsgpackCodec) Encode(m Message) ([]byte, error) {
	data, err := msgpack.Marshal(&m)
	if err != nil {
		return nil, fmt.Errorf("netsync: encode msgpack: %w", err)
	}
	return data, nil
}

// CodecByName returns the codec called name ("json" or "msgpack").
// An empty name selects msgpack.
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", "msgpack":
		return MsgpackCodec{}, nil
	case "json":
		return JSONCodec{}, nil
	default:
		return nil, fmt.Errorf("netsync: unknown codec %q", name)
	}
}

// Decode parses a frame produced by either codec. A msgpack map never starts
// with '{', so the first byte picks the format.
func Decode(data []byte) (Message, error) {
	var m Message
	if len(data) == 0 {
		return m, fmt.Errorf("%w: empty frame", ErrBadMessage)
	}
	if data[0] == '{' {
		if err := json.Unmarshal(data, &m); err != nil {
			return m, fmt.Errorf("netsync: decode json: %w", err)
		}
	} else {
		if err := msgpack.Unmarshal(data, &m); err != nil {
			return m, fmt.Errorf("netsync: decode msgpack: %w", err)
		}
	}
	if err := m.Validate(); err != nil {
		return m, err
	}
	return m, nil
}
