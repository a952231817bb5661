package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/deadline-rush/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show past results",
	Long: `Display the most recent finished rounds and overall stats.

Examples:
  deadline results
  deadline results --limit 50
  deadline results --clear`,
	Args: cobra.NoArgs,
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rounds to show")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every stored result")
}

func runResults(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("All results deleted.")
		return nil
	}

	results, err := store.RecentResults(flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving results: %w", err)
	}

	fmt.Println("Past results")
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Println("Play 'deadline play' to finish your first round!")
		return nil
	}

	// Print header
	fmt.Printf("  %-16s  %-9s  %8s  %8s  %6s  %s\n", "Date", "Outcome", "Homework", "Vitality", "Time", "Player")
	fmt.Printf("  %-16s  %-9s  %8s  %8s  %6s  %s\n", "----", "-------", "--------", "--------", "----", "------")

	for _, r := range results {
		player := r.Player
		if r.Skipped {
			player += " (no tracker)"
		}
		fmt.Printf("  %-16s  %-9s  %7.0f%%  %7.0f%%  %5.1fs  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Outcome, r.Progress, r.Vitality, r.Elapsed, player)
	}

	stats, err := store.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing stats: %v\n", err)
		return nil
	}
	fmt.Println()
	fmt.Printf("Rounds: %d  (done %d, exhausted %d, late %d)\n", stats.Games, stats.Succeeded, stats.Failed, stats.Expired)
	fmt.Printf("Best homework: %.0f%%  Average: %.0f%%\n", stats.BestProgress, stats.AvgProgress)
	return nil
}
