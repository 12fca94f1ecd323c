package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/unbolt/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [level]",
	Short: "Show recorded runs",
	Long: `Display recent runs and statistics for a level, or a per-level
summary when no level is given.

Examples:
  unbolt results
  unbolt results intro --limit 5
  unbolt results intro --clear`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runResults,
	SilenceUsage: true,
}

func init() {
	resultsCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of recent runs to show")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete recorded runs for the level")
}

func runResults(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	p := newPrinter()

	if len(args) == 0 {
		return showSummary(p, store)
	}

	levelID := args[0]
	if flagClear {
		if err := store.ClearRuns(levelID); err != nil {
			return err
		}
		fmt.Printf("Cleared runs for %s.\n", levelID)
		return nil
	}

	runs, err := store.RecentRuns(levelID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	p.header(fmt.Sprintf("Runs - %s", levelID))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'unbolt play %s' to record the first run!\n", levelID)
		return nil
	}

	fmt.Printf("  %-16s  %-7s  %-5s  %-6s  %s\n", "Date", "Result", "Swaps", "Ticks", "Moves")
	fmt.Printf("  %-16s  %-7s  %-5s  %-6s  %s\n", "----", "------", "-----", "-----", "-----")
	for _, r := range runs {
		result := "lost"
		if r.Won {
			result = "won"
		}
		fmt.Printf("  %-16s  %-7s  %-5d  %-6d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), result, r.Swaps, r.Ticks, r.Moves)
	}

	fmt.Println()
	stats, err := store.GetLevelStats(levelID)
	if err == nil {
		fmt.Printf("Runs: %d  Wins: %d (%.0f%%)\n", stats.Runs, stats.Wins, stats.WinRate()*100)
	}
	if best, err := store.BestRun(levelID); err == nil && best != nil {
		fmt.Printf("Best: %d swaps (%s)\n", best.Swaps, best.Moves)
	}
	return nil
}

func showSummary(p printer, store *storage.Store) error {
	all, err := store.GetAllLevelStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	p.header("Recorded levels")
	fmt.Println()
	fmt.Printf("  %-12s  %-5s  %-5s  %-5s  %s\n", "Level", "Runs", "Wins", "Best", "Last played")
	fmt.Printf("  %-12s  %-5s  %-5s  %-5s  %s\n", "-----", "----", "----", "----", "-----------")
	for _, id := range ids {
		st := all[id]
		best := "-"
		if st.Wins > 0 {
			best = fmt.Sprint(st.BestSwaps)
		}
		fmt.Printf("  %-12s  %-5d  %-5d  %-5s  %s\n",
			id, st.Runs, st.Wins, best, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
