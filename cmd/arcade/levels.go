package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List levels",
	Long: `Show the built-in levels, or the levels of a directory with --level-dir.
Every file is validated; the first broken one is reported.

Examples:
  arcade levels
  arcade levels --level-dir ./my-levels`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevelDir, "level-dir", "", "Directory of level JSON files")
}

func runLevels(_ *cobra.Command, _ []string) {
	loader := platformer.Levels()
	source := "built-in"
	if flagLevelDir != "" {
		loader = level.DirLoader(flagLevelDir)
		source = flagLevelDir
	}

	descs, err := loader.LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Levels (%s):\n\n", source)
	if len(descs) == 0 {
		fmt.Println("  none")
		return
	}

	fmt.Printf("  %-3s  %-28s  %-11s  %-6s  %s\n", "#", "Name", "Size", "Time", "Objectives")
	fmt.Printf("  %-3s  %-28s  %-11s  %-6s  %s\n", "-", "----", "----", "----", "----------")
	for _, d := range descs {
		limit := "-"
		if d.TimeLimit > 0 {
			limit = fmt.Sprintf("%.0fs", d.TimeLimit)
		}
		size := fmt.Sprintf("%.0fx%.0f", d.Size.Width, d.Size.Height)
		fmt.Printf("  %-3d  %-28s  %-11s  %-6s  %d\n", d.LevelNumber, d.Name, size, limit, len(d.Objectives))
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <game> --level <name>' to play one of them.")
}
