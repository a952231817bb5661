package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/deadline-rush/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the main menu",
	Long: `Open the main menu to start a round, read the rules,
browse past results or change the sound settings.

Logs are written to ~/.deadline/deadline.log.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runTUI(tui.ChoiceNone)
	},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a round right away",
	Long: `Start a round without going through the menu.

Controls:
  Head movement  - Steer the avatar (nose position)
  S              - Start without a ready tracker (after 3 seconds)
  M              - Start the music by hand
  Esc/B          - Back to the menu
  R              - Play again (on the result screen)
  Q/Ctrl+C       - Quit

Examples:
  deadline play
  deadline play --sensor wander
  deadline play --bridge-addr 0.0.0.0:8765
  deadline play --config ./my-deadline.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runTUI(tui.ChoicePlay)
	},
}

func runTUI(start tui.Choice) error {
	logger, closeLog := fileLogger("deadline")
	defer closeLog()

	deps, cleanup, err := setupDeps(logger, true)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "sensor", flagSensor, "fps", flagFPS)
	return tui.Run(ctx, deps, playerName(), start)
}
