package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wildgrove/internal/platform/tui"
	"github.com/vovakirdan/wildgrove/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best recorded sessions",
	Long: `Display the best sessions from the results database. In a terminal the
list is interactive; when piped it prints a plain table.

Examples:
  wildgrove scores
  wildgrove scores --limit 5
  wildgrove scores --db ./sessions.db | less`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of sessions to print when not interactive")
}

func runScores(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := terminalSize()
		return tui.RunScoreboard(store, cfg.Loop.TickRate, width, height)
	}

	sessions, err := store.TopSessions(flagScoresLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSCORE\tLEVEL\tROLE\tTIME\tEND\tDATE")
	for _, row := range tui.SessionRows(sessions, cfg.Loop.TickRate) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", row[0], row[1], row[2], row[3], row[4], row[5], row[6])
	}
	return tw.Flush()
}
