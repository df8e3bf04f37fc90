package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/platform/tui"
	"github.com/vovakirdan/t2048/internal/storage"
)

var (
	flagFresh   bool
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048 in this terminal",
	Long: `Start a game in this terminal. An unfinished game is resumed
automatically; use --fresh to discard it.

Controls:
  Arrows/WASD/HJKL - Slide tiles
  U                - Undo the last move
  N                - New game
  Tab              - Leaderboard
  Q/Ctrl+C         - Quit (progress is saved)

Examples:
  t2048 play
  t2048 play --difficulty easy
  t2048 play --seed 42 --fresh
  t2048 play --config ./my-t2048.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagFresh, "fresh", false, "Discard the saved game and start a new one")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the screen is in use while playing)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := cfg.Log.NewLogger(logOut, "t2048")

	runtimeCfg := core.DefaultConfig()
	runtimeCfg.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtimeCfg.ScreenW = w
		runtimeCfg.ScreenH = h
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
		if flagFresh {
			if err := store.DeleteGame(tui.LocalSlot); err != nil {
				logger.Warn("could not discard saved game", "error", err)
			}
		}
	}

	opts := tui.Options{
		Config:  cfg,
		Runtime: runtimeCfg,
		Store:   store,
		Slot:    tui.LocalSlot,
		Player:  os.Getenv("USER"),
		Logger:  logger,
	}

	if err := tui.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
