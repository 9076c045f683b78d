package netsync

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/wildgrove/internal/core"
	"github.com/vovakirdan/wildgrove/internal/sim"
	"github.com/vovakirdan/wildgrove/internal/world"
)

func TestCodecsInteroperate(t *testing.T) {
	w := &world.World{Tick: 12, Score: 40}
	w.Hostiles = []world.Entity{world.NewHostile("hostile-3", core.V(1.5, 2.5), 18, 60)}
	msg := NewWorldSnapshot(w, []sim.Bite{{TargetID: "peer", Damage: 8}})

	for _, name := range []string{"json", "msgpack"} {
		t.Run(name, func(t *testing.T) {
			codec, err := CodecByName(name)
			if err != nil {
				t.Fatalf("CodecByName() error = %v", err)
			}
			data, err := codec.Encode(msg)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if (data[0] == '{') != (name == "json") {
				t.Errorf("first byte %q does not identify %s", data[0], name)
			}

			got, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !reflect.DeepEqual(got, msg) {
				t.Errorf("Decode() = %+v, expected %+v", got.World, msg.World)
			}
		})
	}
}

func TestCodecByNameUnknown(t *testing.T) {
	if _, err := CodecByName("xml"); err == nil {
		t.Error("expected error for unknown codec")
	}
	if c, _ := CodecByName(""); c.Name() != "msgpack" {
		t.Errorf("default codec = %s, expected msgpack", c.Name())
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad json", []byte(`{"type":`)},
		{"unknown type", []byte(`{"type":"chat"}`)},
		{"missing payload", []byte(`{"type":"session_start"}`)},
		{"garbage", []byte{0xc1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(tc.data); err == nil {
				t.Error("expected error")
			}
		})
	}

	_, err := Decode([]byte(`{"type":"world_snapshot"}`))
	if !errors.Is(err, ErrBadMessage) {
		t.Errorf("error = %v, expected ErrBadMessage", err)
	}
}
