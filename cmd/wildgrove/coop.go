package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wildgrove/internal/netsync"
	"github.com/vovakirdan/wildgrove/internal/platform/tui"
	"github.com/vovakirdan/wildgrove/internal/storage"
	"github.com/vovakirdan/wildgrove/internal/transport"
)

var (
	flagRelayURL string
	flagHeadless bool
)

// dialTimeout bounds connecting to the relay.
const dialTimeout = 10 * time.Second

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Open a co-op lobby on the relay and play as host",
	Long: `Connect to a relay, create a lobby and start playing. The join code is
shown in the status line; your friend runs "wildgrove join <code>".

The host owns the hostiles: it runs their AI, respawns them and sends the
peer a snapshot every tick.

With --headless no terminal is used: the host's avatar idles in the
sanctuary and the grove runs until interrupted or the friend leaves.

Examples:
  wildgrove host
  wildgrove host --headless --log-level debug
  wildgrove host --relay ws://relay.example.com:8080
  WILDGROVE_RELAY=ws://relay.example.com:8080 wildgrove host`,
	Args: cobra.NoArgs,
	RunE: runHost,
}

var joinCmd = &cobra.Command{
	Use:   "join <code>",
	Short: "Join a friend's lobby",
	Long: `Connect to a relay and join the lobby with the given code. The grove is
generated from the host's seed once it arrives.

Examples:
  wildgrove join ABCDEF
  wildgrove join abcdef --relay ws://relay.example.com:8080`,
	Args: cobra.ExactArgs(1),
	RunE: runJoin,
}

func init() {
	for _, c := range []*cobra.Command{hostCmd, joinCmd} {
		c.Flags().StringVar(&flagRelayURL, "relay", "", "Relay URL (default from config or "+envRelay+")")
	}
	hostCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Run the grove without a terminal")
}

func relayURL(fe *frontEnd) string {
	if flagRelayURL != "" {
		return flagRelayURL
	}
	return fe.setup.Config.Network.RelayURL
}

func runHost(_ *cobra.Command, _ []string) error {
	fe, err := openFrontEnd()
	if err != nil {
		return err
	}
	defer fe.close()
	if flagHeadless {
		// No TUI; log to stderr.
		if fe.logger, err = newLogger(os.Stderr, "wildgrove-host"); err != nil {
			return err
		}
		fe.setup.Logger = fe.logger
	}

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	link, err := transport.DialHost(ctx, relayURL(fe), fe.logger)
	if err != nil {
		return err
	}
	defer link.Close()

	playerID := uuid.NewString()
	seed := sessionSeed()
	fe.logger.Info("hosting", "code", link.Code(), "seed", seed, "player", playerID)
	go logRelayEvents(fe, link)

	sess := fe.setup.NewSession(netsync.RoleHost, seed, playerID, link)
	if flagHeadless {
		return hostHeadless(fe, sess, playerID)
	}
	width, height := terminalSize()
	opts := fe.setup.GameOptions(sess, playerID, link, width, height)
	opts.Note = "join code " + link.Code()
	return tui.Run(opts)
}

func runJoin(_ *cobra.Command, args []string) error {
	fe, err := openFrontEnd()
	if err != nil {
		return err
	}
	defer fe.close()

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	link, err := transport.DialJoin(ctx, relayURL(fe), args[0], fe.logger)
	if errors.Is(err, transport.ErrNoLobby) {
		return fmt.Errorf("no lobby with code %q on %s", args[0], relayURL(fe))
	}
	if err != nil {
		return err
	}
	defer link.Close()

	playerID := uuid.NewString()
	fe.logger.Info("joining", "code", link.Code(), "player", playerID)
	go logRelayEvents(fe, link)

	// The seed is a fallback until the host's session_start arrives.
	sess := fe.setup.NewSession(netsync.RolePeer, sessionSeed(), playerID, link)
	width, height := terminalSize()
	return tui.Run(fe.setup.GameOptions(sess, playerID, link, width, height))
}

// logRelayEvents records relay control frames until the link closes.
func logRelayEvents(fe *frontEnd, link *transport.WSChannel) {
	for {
		select {
		case ev := <-link.Events():
			fe.logger.Info("relay event", "event", ev.Relay, "error", ev.Error)
		case <-link.Done():
			return
		}
	}
}

// hostHeadless runs the host session without a terminal and records the
// result when it ends.
func hostHeadless(fe *frontEnd, sess *netsync.Session, playerID string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reason, err := runHeadless(ctx, sess, fe.setup.Config.Loop.TickRate, fe.logger)
	if err != nil {
		return err
	}
	w := sess.World()
	fe.logger.Info("grove closed", "reason", reason, "ticks", w.Tick, "score", w.Score)

	if fe.setup.Store == nil || w.Tick == 0 {
		return nil
	}
	_, err = fe.setup.Store.SaveSession(storage.SessionResult{
		PlayerID:  playerID,
		Role:      sess.Role().String(),
		Seed:      int64(w.Seed),
		Score:     w.Score,
		Level:     w.Player.Level(),
		Ticks:     w.Tick,
		EndReason: reason,
	})
	return err
}
