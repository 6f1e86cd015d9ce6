package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/audio"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/platform/desktop"
	"github.com/vovakirdan/tui-platformer/internal/platform/runner"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
	"github.com/vovakirdan/tui-platformer/internal/telemetry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevelDir   string
	flagLevel      string
	flagDesktop    bool
	flagAssets     string
	flagSound      bool
	flagTelemetry  string
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  A/D, Left/Right  - Run
  W/S, Up/Down     - Pump a swing
  Space            - Jump, let go of a vine
  E                - Grab or release a vine
  J/K/L/;          - Abilities in loadout order
  Enter            - Start
  P                - Pause
  R                - Restart (after the level ended)
  B/Esc            - Back to the menu
  Ctrl+S           - Screenshot (terminal only)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Longer timer, softer hits, faster stamina regen
  normal - Level as designed
  hard   - Shorter timer, harder hits, slower stamina regen

Examples:
  arcade play vinebound
  arcade play blitz --difficulty hard
  arcade play stompbound --config ./my-tuning.yaml
  arcade play vinebound --level-dir ./levels --level "My Level" --watch
  arcade play shellshock --desktop --sound
  arcade play blitz --telemetry ./runs/blitz.csv`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagLevelDir, "level-dir", "", "Directory of level JSON files replacing the built-in ones")
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level name or file to play instead of the game's own")
	playCmd.Flags().BoolVar(&flagDesktop, "desktop", false, "Play in a window instead of the terminal")
	playCmd.Flags().StringVar(&flagAssets, "assets", "assets", "Sprite directory for --desktop")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	playCmd.Flags().StringVar(&flagTelemetry, "telemetry", "", "Append gameplay events to this CSV file (created if missing)")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the level when a file in --level-dir changes")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	logger, closeLog := newLogger(), func() {}
	if !flagDesktop {
		logger, closeLog = fileLogger()
	}

	code := play(gameID, logger)
	closeLog()
	if code != 0 {
		os.Exit(code)
	}
}

// play runs one game and returns the process exit code.
func play(gameID string, logger *log.Logger) int {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   flagFPS,
		Seed:       flagSeed,
		Difficulty: flagDifficulty,
		LevelDir:   flagLevelDir,
		Level:      flagLevel,
		ConfigPath: flagConfig,
		Logger:     logger,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		return 1
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	sinks := runner.Options{Store: store, Logger: logger}

	if flagSound {
		sound := audio.NewManager()
		if err := sound.Initialize(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
		} else {
			defer sound.Close()
			sinks.Sound = sound
		}
	}

	if flagTelemetry != "" {
		rec, err := telemetry.NewRecorder(flagTelemetry)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening telemetry file: %v\n", err)
			return 1
		}
		defer func() {
			if err := rec.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: telemetry: %v\n", err)
			}
		}()
		sinks.Telemetry = rec
	}

	if flagDesktop {
		pg, ok := game.(*platformer.Game)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: %s cannot run in a window\n", gameID)
			return 1
		}
		if flagWatch {
			fmt.Fprintln(os.Stderr, "Warning: --watch is only supported in the terminal")
		}
		if err := desktop.Run(pg, cfg, desktop.Options{Options: sinks, AssetDir: flagAssets}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return 1
		}
		return 0
	}

	opts := tui.Options{
		Store:     sinks.Store,
		Sound:     sinks.Sound,
		Telemetry: sinks.Telemetry,
		Logger:    logger,
	}
	if flagWatch {
		if flagLevelDir == "" {
			fmt.Fprintln(os.Stderr, "Error: --watch needs --level-dir")
			return 1
		}
		watcher, err := level.NewWatcher(flagLevelDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", flagLevelDir, err)
			return 1
		}
		defer watcher.Close()
		opts.Watcher = watcher
	}

	if _, err := tui.Run(game, cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		return 1
	}
	return 0
}
