// typemaster is a falling-word typing trainer for the terminal.
//
// Usage:
//
//	typemaster play          - Open the menu and play
//	typemaster levels        - Show the difficulty schedule
//	typemaster scores        - Show the best recorded sessions
//	typemaster serve         - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default from config: 60)
//	--seed <value>      - Set RNG seed for reproducible sessions
//	--db <path>         - Set database path (default: ~/.typemaster/scores.db)
//	--config <path>     - Settings file (.yaml or .toml)
//	--words <path>      - Word list file, whitespace separated
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/typemaster/internal/config"
	"github.com/vovakirdan/typemaster/internal/wordlist"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagWords   string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "typemaster",
	Short: "TypeMaster - type falling words before they hit the floor",
	Long: `TypeMaster is a terminal typing trainer. Words fall from the top of the
screen; type each word's letters before it reaches the floor. The game speeds
up as your typed character count passes each milestone.

Available commands:
  play     - Open the menu and start typing
  levels   - Show the difficulty schedule per level
  scores   - View the best recorded sessions
  serve    - Start SSH server for remote play

Examples:
  typemaster play
  typemaster play --words ./german.txt
  typemaster levels
  typemaster scores --difficulty hard
  typemaster serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.typemaster/scores.db", "Path to session database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings file (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&flagWords, "words", "", "Path to a word list (default: built-in list)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadSettings reads the settings file and applies command-line overrides.
func loadSettings() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	if flagWords != "" {
		cfg.Words.Path = flagWords
	}
	return cfg, cfg.Validate()
}

// loadWords returns the configured word list or the built-in one.
func loadWords(cfg config.Config) ([]string, error) {
	path, err := config.ExpandHome(cfg.Words.Path)
	if err != nil {
		return nil, err
	}
	return wordlist.Load(path)
}

// newLogger builds the process logger. Interactive sessions own the
// terminal, so logs go to --log-file or nowhere.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeFn := func() {}

	switch {
	case flagLogFile != "":
		path, err := config.ExpandHome(flagLogFile)
		if err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "typemaster",
	})
	return logger, closeFn, nil
}
