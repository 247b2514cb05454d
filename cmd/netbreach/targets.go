package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/netbreach/internal/config"
	"github.com/vovakirdan/netbreach/internal/world"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List target countries",
	Long: `Shows every country on the world map with its security level,
nuclear capability, hack detection cost and point reward.

Detection costs are scaled by the selected difficulty.

Examples:
  netbreach targets
  netbreach targets --difficulty extreme`,
	Args: cobra.NoArgs,
	Run:  runTargets,
}

func runTargets(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagDifficulty != "" {
		if cfg.Difficulty, err = config.ParseDifficulty(flagDifficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	mult := cfg.Multiplier.For(cfg.Difficulty)

	fmt.Printf("Targets (difficulty: %s)\n", cfg.Difficulty)
	fmt.Println()

	// Print header
	fmt.Printf("  %-4s  %-16s  %15s  %-8s  %-9s  %9s  %6s\n",
		"Code", "Country", "Population", "Security", "Nuclear", "Detection", "Points")
	fmt.Printf("  %-4s  %-16s  %15s  %-8s  %-9s  %9s  %6s\n",
		"----", "-------", "----------", "--------", "-------", "---------", "------")

	for _, c := range world.Countries() {
		fmt.Printf("  %-4s  %-16s  %15s  %-8s  %-9s  %8.1f%%  %6d\n",
			c.Code,
			c.Name,
			humanize.Comma(c.Population),
			c.Tier,
			c.Nuclear,
			cfg.Detection.HackCost.Get(c.Tier)*mult,
			cfg.Hack.Points.Get(c.Tier),
		)
	}

	fmt.Println()
	fmt.Println("Run 'netbreach play' to start hacking.")
}
