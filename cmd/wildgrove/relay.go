package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wildgrove/internal/lobby"
	"github.com/vovakirdan/wildgrove/internal/relay"
)

var flagRelayAddr string

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Run the websocket relay server",
	Long: `Run the relay that pairs a host with one joiner and forwards game
frames between them. It never inspects or simulates the game.

Endpoints:
  GET /healthz        - liveness and open lobby count
  GET /host           - websocket; creates a lobby and sends its code
  GET /join/{code}    - websocket; joins the lobby

Examples:
  wildgrove relay
  wildgrove relay --addr :9000 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runRelay,
}

func init() {
	relayCmd.Flags().StringVar(&flagRelayAddr, "addr", "", "Listen address (default from config)")
}

func runRelay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, "wildgrove-relay")
	if err != nil {
		return err
	}

	addr := flagRelayAddr
	if addr == "" {
		addr = cfg.Network.RelayAddr
	}

	lcfg := lobby.DefaultConfig()
	lcfg.LobbyTimeout = cfg.Network.LobbyTimeout
	srv := relay.New(lcfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx, addr)
}
