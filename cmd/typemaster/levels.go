package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/typemaster/internal/config"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the difficulty schedule",
	Long: `Shows the (fall interval, row modulus) pair installed at each typed
character milestone for every difficulty.

Fall interval is the number of frames between row advances. Row modulus
gates extra spawns: a new word appears whenever the lowest word reaches a
row divisible by it.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	fmt.Println("Difficulty schedule (fall frames, row modulus):")
	fmt.Println()

	// Print header
	fmt.Printf("  %-9s", "Typed")
	for _, level := range config.AllDifficulties {
		fmt.Printf("  %-8s", level)
	}
	fmt.Println()
	fmt.Printf("  %-9s", "-----")
	for range config.AllDifficulties {
		fmt.Printf("  %-8s", "------")
	}
	fmt.Println()

	for _, m := range config.Milestones {
		fmt.Printf("  %-9d", m)
		for _, level := range config.AllDifficulties {
			pair, _ := config.Schedule(level, m)
			fmt.Printf("  %-8s", pair)
		}
		fmt.Println()
	}

	fmt.Println()
	fmt.Printf("Beyond the table every level runs at %s.\n", config.FastestControl)
	fmt.Println("Run 'typemaster play' to start typing.")
}
