package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wildgrove/internal/netsync"
	"github.com/vovakirdan/wildgrove/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Explore the grove alone",
	Long: `Start a solo session in the terminal.

Controls:
  WASD/Arrows  - Move (facing follows movement)
  Space/F      - Attack in a cone ahead
  ?            - Toggle help
  Esc/Q        - Leave

Difficulty options:
  easy   - Slower hostiles, softer bites, fewer respawns
  normal - The default tuning
  hard   - Faster hostiles, harder bites, more respawns

Examples:
  wildgrove play
  wildgrove play --seed 42
  wildgrove play --difficulty hard
  wildgrove play --config ./my-grove.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	fe, err := openFrontEnd()
	if err != nil {
		return err
	}
	defer fe.close()

	playerID := uuid.NewString()
	seed := sessionSeed()
	fe.logger.Info("solo session", "seed", seed, "player", playerID)

	sess := fe.setup.NewSession(netsync.RoleSolo, seed, playerID, nil)
	width, height := terminalSize()
	return tui.Run(fe.setup.GameOptions(sess, playerID, nil, width, height))
}
