// deadline is a head-steered terminal game: catch study material, dodge
// distractions and finish the homework before the night is over.
//
// Usage:
//
//	deadline menu            - Start at the main menu
//	deadline play            - Start a round right away
//	deadline serve           - Start SSH server for remote play
//	deadline results         - Show past results
//	deadline sensor list     - List head tracker backends
//	deadline sensor watch    - Print nose readings from a backend
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 30)
//	--seed <value>         - Set RNG seed for the spawner
//	--db <path>            - Set database path (default: ~/.deadline/results.db)
//	--config <path>        - Game config YAML
//	--sensor <name>        - Head tracker backend (default: bridge)
//	--bridge-addr <addr>   - Listen address of the bridge backend
//	--log-level <level>    - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/deadline-rush/internal/config"
	"github.com/vovakirdan/deadline-rush/internal/sensor"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagSensor     string
	flagBridgeAddr string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "deadline",
	Short: "Deadline Rush - finish your homework with your head",
	Long: `Deadline Rush is a terminal game steered by head movement.

A face tracker (for example a browser page running a face mesh model)
streams landmarks to the game; your nose position moves the avatar.
Catch study material and snacks, avoid the phone, and reach 100%
homework before the deadline while keeping your vitality above zero.

Available commands:
  menu     - Main menu
  play     - Start a round directly
  serve    - Start SSH server for remote play
  results  - View past results
  sensor   - Inspect head tracker backends

Examples:
  deadline menu
  deadline play --sensor wander
  deadline serve --ssh :2222
  deadline results --limit 20`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return config.LoadDotEnv(config.DotEnvPaths()...)
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.deadline/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSensor, "sensor", "bridge",
		fmt.Sprintf("Head tracker backend %v", sensor.Names()))
	rootCmd.PersistentFlags().StringVar(&flagBridgeAddr, "bridge-addr", sensor.DefaultBridgeAddr, "Listen address of the bridge backend")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(sensorCmd)
}
