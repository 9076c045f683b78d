package main

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wildgrove/internal/loop"
	"github.com/vovakirdan/wildgrove/internal/netsync"
	"github.com/vovakirdan/wildgrove/internal/storage"
	"github.com/vovakirdan/wildgrove/internal/world"
)

// reportEvery is how many seconds pass between headless status lines.
const reportEvery = 30

// runHeadless drives sess at tickRate without a terminal until ctx is done,
// the link drops or the host dies. The host's avatar stays idle in the
// sanctuary. It returns the end reason for the results log.
func runHeadless(ctx context.Context, sess *netsync.Session, tickRate int, logger *log.Logger) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := loop.New(sess, nil, headlessReporter(sess, tickRate, logger, cancel), tickRate)
	err := sched.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return "", err
	}

	switch {
	case sess.Done():
		return storage.EndDefeated, nil
	case sess.Status() == netsync.StatusLost:
		return storage.EndLost, nil
	default:
		return storage.EndQuit, nil
	}
}

// headlessReporter logs peer status changes and a periodic summary, and
// stops the loop once the link is lost.
func headlessReporter(sess *netsync.Session, tickRate int, logger *log.Logger, stop func()) loop.RenderFunc {
	last := netsync.StatusSolo
	every := uint64(max(1, tickRate) * reportEvery)
	return func(w *world.World) {
		if status := sess.Status(); status != last {
			logger.Info("peer", "status", status.String(), "tick", w.Tick)
			last = status
			if status == netsync.StatusLost {
				stop()
			}
		}
		if w.Tick%every == 0 {
			logger.Info("grove", "tick", w.Tick, "score", w.Score, "hostiles", len(w.Hostiles))
		}
	}
}
