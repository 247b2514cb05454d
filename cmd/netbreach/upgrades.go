package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/netbreach/internal/upgrade"
)

var upgradesCmd = &cobra.Command{
	Use:   "upgrades",
	Short: "List the upgrade catalog",
	Long:  `Shows every upgrade that can be bought in the shop during a run.`,
	Args:  cobra.NoArgs,
	Run:   runUpgrades,
}

func runUpgrades(cmd *cobra.Command, args []string) {
	catalog := upgrade.Catalog()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, u := range catalog {
		if len(u.Name) > maxNameLen {
			maxNameLen = len(u.Name)
		}
	}

	fmt.Println("Upgrades:")
	fmt.Println()

	// Print header
	fmt.Printf("  %-8s  %-*s  %6s  %s\n", "ID", maxNameLen, "Name", "Cost", "Effect")
	fmt.Printf("  %-8s  %-*s  %6s  %s\n", "--", maxNameLen, "----", "----", "------")

	for _, u := range catalog {
		fmt.Printf("  %-8s  %-*s  %6s  %s\n", u.ID, maxNameLen, u.Name, humanize.Comma(int64(u.Cost)), u.Description)
	}

	fmt.Println()
	fmt.Println("Points are earned by hacking targets. Press U in a run to open the shop.")
}
