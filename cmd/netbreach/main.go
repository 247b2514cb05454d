// netbreach is a terminal hacker simulation: pick target countries, run
// scripted hacks, break through firewalls and stay below the detection
// threshold as long as you can.
//
// Usage:
//
//	netbreach                 - Start a run (same as play)
//	netbreach play            - Start a run
//	netbreach targets         - List target countries
//	netbreach upgrades        - List the upgrade catalog
//	netbreach history         - Browse past runs (needs --db)
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Keep a run ledger in a SQLite file (default: in-memory)
//	--config <path>       - Load a custom game config YAML
//	--difficulty <level>  - easy, medium, hard or extreme
//	--log-file <path>     - Log file (default: ~/.netbreach/netbreach.log)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "netbreach",
	Short: "NetBreach - a hacker simulation in your terminal",
	Long: `NetBreach is a terminal hacker simulation. Select a country on the
world map, run a hack, bypass its firewall in a breakout round, buy
upgrades and launch attacks. Every action raises the detection meter;
when it reaches 100% the game is over.

Available commands:
  play      - Start a run
  targets   - List target countries
  upgrades  - List the upgrade catalog
  history   - Browse past runs

Examples:
  netbreach
  netbreach play --difficulty hard
  netbreach play --seed 42 --db ~/.netbreach/runs.db
  netbreach history --db ~/.netbreach/runs.db`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run ledger database (empty = in-memory)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, medium, hard, extreme (empty = pick in menu)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.netbreach/netbreach.log", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(upgradesCmd)
	rootCmd.AddCommand(historyCmd)
}
