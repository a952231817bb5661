package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/deadline-rush/internal/sensor"
)

var flagInterval time.Duration

var sensorCmd = &cobra.Command{
	Use:   "sensor",
	Short: "Inspect head tracker backends",
}

var sensorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List head tracker backends",
	Args:  cobra.NoArgs,
	Run:   runSensorList,
}

var sensorWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print nose readings from the selected backend",
	Long: `Start the backend chosen with --sensor and print every new nose
reading until interrupted. Useful to check a tracker page before playing.

Examples:
  deadline sensor watch
  deadline sensor watch --sensor wander --interval 500ms
  deadline sensor watch --bridge-addr 0.0.0.0:8765`,
	Args: cobra.NoArgs,
	RunE: runSensorWatch,
}

func init() {
	sensorWatchCmd.Flags().DurationVar(&flagInterval, "interval", 100*time.Millisecond, "Polling interval")
	sensorCmd.AddCommand(sensorListCmd)
	sensorCmd.AddCommand(sensorWatchCmd)
}

func runSensorList(_ *cobra.Command, _ []string) {
	fmt.Println("Available backends:")
	fmt.Println()
	for _, name := range sensor.Names() {
		marker := " "
		if name == flagSensor {
			marker = "*"
		}
		fmt.Printf("  %s %s\n", marker, name)
	}
	fmt.Println()
	fmt.Println("Select one with --sensor <name>.")
}

func runSensorWatch(_ *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr, "deadline-sensor")

	backend, err := sensor.Open(flagSensor, sensor.Options{Addr: flagBridgeAddr, Logger: logger})
	if err != nil {
		return err
	}
	defer sensor.CloseAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	adapter, err := backend.NewAdapter(ctx)
	if err != nil {
		return err
	}
	defer adapter.Close()

	ticker := time.NewTicker(flagInterval)
	defer ticker.Stop()

	waiting := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if !adapter.Ready() {
			if err := backend.Landmarker.Err(); err != nil {
				return fmt.Errorf("tracker failed to load: %w", err)
			}
			if time.Since(waiting) > 2*time.Second {
				logger.Info("waiting for the tracker", "backend", backend.Name)
				waiting = time.Now()
			}
			continue
		}

		if r, ok := adapter.Sample(); ok {
			logger.Info("reading", "x", fmt.Sprintf("%.3f", r.X), "y", fmt.Sprintf("%.3f", r.Y))
		}
	}
}
