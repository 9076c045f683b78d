// wildgrove is a two-player co-op top-down action game for the terminal.
//
// Usage:
//
//	wildgrove play           - Explore the grove alone
//	wildgrove host           - Open a co-op lobby on the relay
//	wildgrove join <code>    - Join a friend's lobby
//	wildgrove relay          - Run the websocket relay
//	wildgrove serve          - Serve the game over SSH
//	wildgrove scores         - Show the best recorded sessions
//	wildgrove layout <seed>  - Describe the grove generated from a seed
//
// Global flags:
//
//	--tps <rate>         - Simulation ticks per second (default: 60)
//	--seed <value>       - Environment seed (0 = random)
//	--db <path>          - Results database (default: ~/.wildgrove/sessions.db)
//	--config <path>      - Custom config YAML
//	--difficulty <name>  - easy, normal or hard
//	--log-level <level>  - debug, info, warn or error
//	--codec <name>       - Wire codec: msgpack or json
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wildgrove/internal/config"
	"github.com/vovakirdan/wildgrove/internal/core"
	"github.com/vovakirdan/wildgrove/internal/netsync"
	"github.com/vovakirdan/wildgrove/internal/platform/tui"
	"github.com/vovakirdan/wildgrove/internal/storage"
)

// Environment variables read after .env is loaded.
const (
	envRelay    = "WILDGROVE_RELAY"
	envDB       = "WILDGROVE_DB"
	envLogLevel = "WILDGROVE_LOG_LEVEL"
)

var (
	// Global flags
	flagTPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagCodec      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wildgrove",
	Short: "Wildgrove - co-op survival in a terminal forest",
	Long: `Wildgrove is a top-down action game for one or two players.
Explore a generated forest, fight off hostiles, heal in the stream and
retreat to the sanctuary at the center of the map.

Available commands:
  play     - Explore alone
  host     - Open a co-op lobby on the relay and play as host
  join     - Join a friend's lobby
  relay    - Run the websocket relay server
  serve    - Serve the game over SSH
  scores   - Show the best recorded sessions
  layout   - Describe the grove generated from a seed

Examples:
  wildgrove play --seed 42
  wildgrove host --relay ws://relay.example.com:8080
  wildgrove join ABCDEF
  wildgrove relay --addr :8080
  wildgrove serve --ssh :23234`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// A missing .env is fine.
		_ = godotenv.Load()
		if !cmd.Flags().Changed("db") {
			if v := os.Getenv(envDB); v != "" {
				flagDBPath = v
			}
		}
		if !cmd.Flags().Changed("log-level") {
			if v := os.Getenv(envLogLevel); v != "" {
				flagLogLevel = v
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagTPS, "tps", 0, "Simulation ticks per second (0 = config value)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Environment seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.wildgrove/sessions.db", "Path to the results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagCodec, "codec", "", "Wire codec: msgpack or json (default from config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(hostCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(relayCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(layoutCmd)
}

// loadConfig loads the config file and applies the flags that override it.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	if flagTPS > 0 {
		cfg.Loop.TickRate = flagTPS
	}
	if flagCodec != "" {
		cfg.Network.Codec = flagCodec
	}
	if v := os.Getenv(envRelay); v != "" {
		cfg.Network.RelayURL = v
	}
	return cfg, cfg.Validate()
}

// newLogger creates a logger writing to w at the configured level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, nil
}

// fileLogger logs to ~/.wildgrove/wildgrove.log so the TUI owns the
// terminal. The returned closer must be called on exit.
func fileLogger() (*log.Logger, io.Closer, error) {
	path := config.UserPath("wildgrove.log")
	if path == "" {
		logger, err := newLogger(io.Discard, "wildgrove")
		return logger, io.NopCloser(nil), err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f, "wildgrove")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

// sessionSeed returns the --seed value or a time-based one.
func sessionSeed() uint32 {
	if flagSeed != 0 {
		return core.SeedFrom(flagSeed)
	}
	return core.SeedFrom(time.Now().UnixNano())
}

// terminalSize returns the terminal size, falling back to 80x24.
func terminalSize() (int, int) {
	def := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return def.ScreenW, def.ScreenH
}

// frontEnd bundles what an interactive command needs.
type frontEnd struct {
	setup  tui.Setup
	logger *log.Logger
	close  func()
}

// openFrontEnd loads config, opens the results database and logs to file.
// A database that cannot be opened only disables result recording.
func openFrontEnd() (*frontEnd, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	codec, err := netsync.CodecByName(cfg.Network.Codec)
	if err != nil {
		return nil, err
	}
	logger, logFile, err := fileLogger()
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "path", flagDBPath, "err", err)
		store = nil
	}

	fe := &frontEnd{
		setup:  tui.Setup{Config: cfg, Store: store, Codec: codec, Logger: logger},
		logger: logger,
	}
	fe.close = func() {
		if store != nil {
			store.Close()
		}
		logFile.Close()
	}
	return fe, nil
}
