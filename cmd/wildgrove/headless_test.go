package main

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wildgrove/internal/netsync"
	"github.com/vovakirdan/wildgrove/internal/sim"
	"github.com/vovakirdan/wildgrove/internal/storage"
	"github.com/vovakirdan/wildgrove/internal/transport"
	"github.com/vovakirdan/wildgrove/internal/worldgen"
)

func headlessSession(role netsync.Role, ch netsync.Channel) *netsync.Session {
	return netsync.NewSession(netsync.Options{
		Role:      role,
		Seed:      42,
		PlayerID:  "host",
		GenParams: worldgen.DefaultParams(),
		SimParams: sim.DefaultParams(),
		Channel:   ch,
		Logger:    log.New(io.Discard),
	})
}

func TestRunHeadlessStopsOnContext(t *testing.T) {
	sess := headlessSession(netsync.RoleSolo, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	reason, err := runHeadless(ctx, sess, 1000, log.New(io.Discard))
	if err != nil {
		t.Fatalf("runHeadless() error = %v", err)
	}
	if reason != storage.EndQuit {
		t.Errorf("reason = %q, expected %q", reason, storage.EndQuit)
	}
	if sess.World().Tick == 0 {
		t.Error("session never ticked")
	}
}

func TestRunHeadlessStopsWhenLinkDrops(t *testing.T) {
	hostEnd, peerEnd := transport.Pipe()
	sess := headlessSession(netsync.RoleHost, hostEnd)
	time.AfterFunc(30*time.Millisecond, func() { peerEnd.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reason, err := runHeadless(ctx, sess, 1000, log.New(io.Discard))
	if err != nil {
		t.Fatalf("runHeadless() error = %v", err)
	}
	if reason != storage.EndLost {
		t.Errorf("reason = %q, expected %q", reason, storage.EndLost)
	}
	if ctx.Err() != nil {
		t.Error("loop ran until the timeout instead of stopping on the lost link")
	}
}
