package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/typemaster/internal/config"
	"github.com/vovakirdan/typemaster/internal/core"
	"github.com/vovakirdan/typemaster/internal/platform/tui"
	"github.com/vovakirdan/typemaster/internal/storage"
)

var (
	flagDifficulty string
	flagHighscore  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the menu and play",
	Long: `Open the TypeMaster menu in the current terminal.

Menu controls:
  Enter    - Start a session
  Tab      - Cycle difficulty: Easy -> Normal -> Hard
  F12      - Read the license
  Esc      - Quit

In game:
  Type the green letter of the lowest word.
  Esc      - End the session and return to the menu
  Ctrl+C   - Exit immediately

Your best score and cpm are kept in the highscore file under the user
config directory and every session is recorded in the database.

Examples:
  typemaster play
  typemaster play --difficulty hard
  typemaster play --words ./words.txt --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Initial difficulty: easy, normal, hard")
	playCmd.Flags().StringVar(&flagHighscore, "highscore", "", "Highscore file (default: <user config dir>/TypeMaster)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		level, parseErr := config.ParseDifficulty(flagDifficulty)
		if parseErr != nil {
			return parseErr
		}
		cfg.Difficulty = level
	}

	words, err := loadWords(cfg)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	// Get terminal size before the program takes over
	rt := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.TickRate = cfg.TickRate
	rt.Seed = flagSeed

	highscorePath := flagHighscore
	if highscorePath == "" {
		if highscorePath, err = storage.DefaultHighscorePath(); err != nil {
			return err
		}
	}

	highscores := storage.NewHighscoreFile(highscorePath)
	deps := tui.ShellDeps{
		Highscores: highscores,
		Logger:     logger,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open session database: %v\n", err)
		logger.Warn("could not open session database", "error", err)
		// Continue without storage - the game still works
	} else {
		deps.Sessions = store
		defer store.Close()
	}

	logger.Info("starting",
		"words", len(words),
		"difficulty", cfg.Difficulty,
		"fps", cfg.TickRate,
		"highscore", highscores.Path(),
		"first_run", !highscores.Exists(),
	)
	if err := tui.Run(cfg, rt, words, deps); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
