package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/netbreach/internal/platform/tui"
	"github.com/vovakirdan/netbreach/internal/storage"
)

var (
	flagPlain bool
	flagClear bool
	flagLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past runs",
	Long: `Browse runs recorded in the run ledger. Runs are only kept when
the game is played with --db pointing at a file.

Examples:
  netbreach history --db ~/.netbreach/runs.db
  netbreach history --db ~/.netbreach/runs.db --plain
  netbreach history --db ~/.netbreach/runs.db --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print runs instead of opening the browser")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to print with --plain")
}

func runHistory(cmd *cobra.Command, args []string) {
	if flagDBPath == "" || flagDBPath == storage.MemoryDSN {
		fmt.Fprintln(os.Stderr, "Error: history needs a ledger file, pass --db <path>")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run ledger: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run history cleared.")
		return
	}

	if !flagPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunHistory(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printHistory(store)
}

func printHistory(store *storage.Store) {
	runs, err := store.RecentRuns(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Println("Recent runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'netbreach play --db %s' to record one!\n", flagDBPath)
		return
	}

	// Print header
	fmt.Printf("  %-16s  %-8s  %-8s  %7s  %6s  %15s\n", "Date", "Level", "Outcome", "Points", "Hacked", "Casualties")
	fmt.Printf("  %-16s  %-8s  %-8s  %7s  %6s  %15s\n", "----", "-----", "-------", "------", "------", "----------")

	for _, r := range runs {
		fmt.Printf("  %-16s  %-8s  %-8s  %7d  %6d  %15s\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Difficulty,
			r.Outcome,
			r.Points,
			r.Hacked,
			humanize.Comma(r.Casualties),
		)
	}

	// Show aggregate stats
	fmt.Println()
	if stats, err := store.GetStats(); err == nil {
		fmt.Printf("Runs: %d  Best: %d  Last played: %s\n",
			stats.Runs, stats.BestPoints, humanize.Time(stats.LastPlayed))
	}
}
