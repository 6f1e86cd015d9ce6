package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagScoresLimit   int
	flagScoresCleared bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show saved runs",
	Long: `Without a game, summarize every game that has been played.
With a game, list its best runs.

Examples:
  arcade scores
  arcade scores vinebound
  arcade scores blitz --limit 25 --cleared`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresCleared, "cleared", false, "Only show runs that cleared the level")
}

func runScores(_ *cobra.Command, args []string) {
	if len(args) == 1 && !registry.Exists(args[0]) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		err = printSummary(os.Stdout, store)
	} else {
		err = printRuns(os.Stdout, store, args[0], flagScoresLimit, flagScoresCleared)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

// printSummary writes one line per registered game.
func printSummary(w io.Writer, store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Scores")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-12s  %-6s  %-7s  %-8s  %-7s  %s\n", "Game", "Runs", "Cleared", "Best", "Average", "Last played")
	fmt.Fprintf(w, "  %-12s  %-6s  %-7s  %-8s  %-7s  %s\n", "----", "----", "-------", "----", "-------", "-----------")
	for _, g := range registry.List() {
		st, ok := stats[g.ID]
		if !ok {
			fmt.Fprintf(w, "  %-12s  %-6d  %-7s  %-8s  %-7s  %s\n", g.ID, 0, "-", "-", "-", "never")
			continue
		}
		last := "-"
		if !st.LastPlayed.IsZero() {
			last = st.LastPlayed.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "  %-12s  %-6d  %-7d  %-8d  %-7.0f  %s\n",
			g.ID, st.GamesCount, st.Wins, st.HighScore, st.AvgScore, last)
	}
	return nil
}

// printRuns writes the best runs of one game.
func printRuns(w io.Writer, store *storage.Store, gameID string, limit int, clearedOnly bool) error {
	if limit <= 0 {
		limit = 10
	}
	fetch := limit
	if clearedOnly {
		fetch = 0
	}

	var runs []storage.ScoreEntry
	var err error
	if fetch > 0 {
		runs, err = store.TopScores(gameID, fetch)
	} else {
		runs, err = store.AllScores(gameID)
	}
	if err != nil {
		return err
	}

	title := gameID
	if game, err := registry.Create(gameID); err == nil {
		title = game.Title()
	}
	fmt.Fprintf(w, "High Scores - %s\n\n", title)

	shown := 0
	for _, e := range runs {
		if clearedOnly && !e.Won() {
			continue
		}
		if shown == 0 {
			fmt.Fprintf(w, "  %-4s  %-8s  %-26s  %-9s  %-7s  %s\n", "Rank", "Score", "Level", "Result", "Time", "Date")
			fmt.Fprintf(w, "  %-4s  %-8s  %-26s  %-9s  %-7s  %s\n", "----", "-----", "-----", "------", "----", "----")
		}
		shown++
		result := e.Outcome
		if e.Won() {
			result = "cleared"
		}
		fmt.Fprintf(w, "  %-4d  %-8d  %-26s  %-9s  %-7s  %s\n", shown, e.Score, e.Level, result,
			fmt.Sprintf("%.1fs", e.Elapsed), e.CreatedAt.Format("2006-01-02 15:04"))
		if shown == limit {
			break
		}
	}

	if shown == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintf(w, "\nPlay 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintln(w)
	if best, err := store.HighScore(gameID); err == nil {
		fmt.Fprintf(w, "Best: %d\n", best)
	}
	if st, err := store.GetGameStats(gameID); err == nil && st.GamesCount > 0 {
		fmt.Fprintf(w, "Runs: %d  Cleared: %d  Average: %.0f\n", st.GamesCount, st.Wins, st.AvgScore)
	}
	return nil
}
