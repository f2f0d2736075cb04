package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/typemaster/internal/config"
	"github.com/vovakirdan/typemaster/internal/storage"
)

var (
	flagScoresDifficulty string
	flagScoresLimit      int
	flagScoresPlayer     string
	flagScoresClear      bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best recorded sessions",
	Long: `Display the best sessions per difficulty, ranked by typed characters.

Examples:
  typemaster scores
  typemaster scores --difficulty hard --limit 5
  typemaster scores --player alice
  typemaster scores --difficulty easy --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresDifficulty, "difficulty", "", "Only show one difficulty")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Sessions per difficulty")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Show one player's recent sessions instead")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete recorded sessions for --difficulty")
}

func runScores(_ *cobra.Command, _ []string) error {
	levels := config.AllDifficulties
	if flagScoresDifficulty != "" {
		level, err := config.ParseDifficulty(flagScoresDifficulty)
		if err != nil {
			return err
		}
		levels = []config.Difficulty{level}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening session database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if flagScoresDifficulty == "" {
			return fmt.Errorf("--clear requires --difficulty")
		}
		if err := store.ClearSessions(levels[0].Key()); err != nil {
			return err
		}
		fmt.Printf("Cleared %s sessions.\n", levels[0])
		return nil
	}

	if flagScoresPlayer != "" {
		return printPlayerSessions(store, flagScoresPlayer)
	}

	for i, level := range levels {
		if i > 0 {
			fmt.Println()
		}
		if err := printLevelScores(store, level); err != nil {
			return err
		}
	}
	return nil
}

func printLevelScores(store *storage.Store, level config.Difficulty) error {
	sessions, err := store.TopSessions(level.Key(), flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving sessions: %w", err)
	}

	fmt.Printf("Best Sessions - %s\n", level)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("  No sessions recorded yet.")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-6s  %-5s  %-5s  %-8s  %s\n", "Rank", "Player", "Typed", "CPM", "WPM", "Time", "Date")
	fmt.Printf("  %-4s  %-12s  %-6s  %-5s  %-5s  %-8s  %s\n", "----", "------", "-----", "---", "---", "----", "----")

	for i, s := range sessions {
		fmt.Printf("  %-4d  %-12s  %-6d  %-5d  %-5d  %-8s  %s\n",
			i+1, s.Player, s.TypedChars, s.CPM, s.WPM,
			s.Duration.Round(time.Second), s.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetDifficultyStats(level.Key())
	if err != nil {
		return fmt.Errorf("error retrieving stats: %w", err)
	}
	fmt.Println()
	fmt.Printf("  Sessions: %d  Best: %d chars / %d cpm  Average: %.0f chars\n",
		stats.SessionsCount, stats.BestChars, stats.BestCPM, stats.AvgChars)
	return nil
}

func printPlayerSessions(store *storage.Store, player string) error {
	sessions, err := store.RecentSessions(player, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving sessions: %w", err)
	}

	fmt.Printf("Recent Sessions - %s\n", player)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("  No sessions recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-8s  %-6s  %-5s  %-5s  %s\n", "Date", "Level", "Typed", "CPM", "WPM", "End")
	fmt.Printf("  %-16s  %-8s  %-6s  %-5s  %-5s  %s\n", "----", "-----", "-----", "---", "---", "---")
	for _, s := range sessions {
		fmt.Printf("  %-16s  %-8s  %-6d  %-5d  %-5d  %s\n",
			s.CreatedAt.Format("2006-01-02 15:04"), s.Difficulty, s.TypedChars, s.CPM, s.WPM, s.EndReason)
	}
	return nil
}
