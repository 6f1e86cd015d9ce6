package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/audio"
	"github.com/vovakirdan/tui-platformer/internal/clock"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/platform/runner"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/state"
	"github.com/vovakirdan/tui-platformer/internal/storage"
	"github.com/vovakirdan/tui-platformer/internal/telemetry"
)

// Options are the optional collaborators of a game model. Every field may be nil.
type Options struct {
	Store     *storage.Store
	Sound     *audio.Manager
	Telemetry *telemetry.Recorder
	Watcher   *level.Watcher
	Logger    *log.Logger
}

// LevelChangedMsg reports that a watched level file was written.
type LevelChangedMsg struct {
	Path string
}

type watchErrMsg struct {
	err error
}

// Model is the Bubble Tea model for running one platformer game.
type Model struct {
	game       registry.Game
	run        *runner.Runner
	screen     *core.Screen
	config     core.RuntimeConfig
	watcher    *level.Watcher
	log        *log.Logger
	keys       *KeyMapper
	latch      *InputLatch
	clock      *clock.Clock
	gameState  core.GameState
	standalone bool // quit the program instead of returning to a session menu
	quitting   bool
	backToMenu bool
}

// NewModel resets the game and wraps it in a Bubble Tea model.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) (Model, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger
	}

	run := runner.New(game, runner.Options{
		Store:     opts.Store,
		Sound:     opts.Sound,
		Telemetry: opts.Telemetry,
		Logger:    logger,
	})
	if err := run.Reset(cfg); err != nil {
		return Model{}, fmt.Errorf("start %s: %w", game.ID(), err)
	}

	return Model{
		game:      game,
		run:       run,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		watcher:   opts.Watcher,
		log:       logger,
		keys:      NewKeyMapper(),
		latch:     NewInputLatch(HoldWindow),
		clock:     clock.New(cfg.TickRate, 0),
		gameState: run.State(),
	}, nil
}

// Init starts the tick loop and, when watching, the level watcher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.watcher != nil {
		cmds = append(cmds, waitForLevel(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case LevelChangedMsg:
		return m.handleLevelChanged(msg)

	case watchErrMsg:
		m.log.Warn("level watcher", "error", msg.err)
		return m, waitForLevel(m.watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Back on the title screen leaves the game; everywhere else the
	// simulation decides what it means.
	if action == core.ActionBack && m.gameState.Phase == string(state.Menu) {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	}

	m.latch.Press(action, time.Now())
	return m, nil
}

// handleTick advances the simulation by the wall-clock time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	dt := m.clock.Tick(now)
	m.gameState = m.run.Step(m.latch.Frame(now), dt).State
	return m, tickCmd(m.config.TickRate)
}

// handleLevelChanged reloads the game after its level file changed on disk.
func (m Model) handleLevelChanged(msg LevelChangedMsg) (tea.Model, tea.Cmd) {
	if err := m.run.Reset(m.config); err != nil {
		m.log.Error("level reload failed", "path", msg.Path, "error", err)
	} else {
		m.log.Info("level reloaded", "path", msg.Path)
		m.gameState = m.run.State()
		m.latch.Reset()
	}
	return m, waitForLevel(m.watcher)
}

// waitForLevel blocks until the watcher reports a change or an error.
func waitForLevel(w *level.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return LevelChangedMsg{Path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.log.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("screenshot failed", "error", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last state reported by the game.
func (m Model) State() core.GameState {
	return m.gameState
}

// Attempt returns how many attempts have started.
func (m Model) Attempt() int {
	return m.run.Attempt()
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for one game.
// It returns true when the player backed out to the menu rather than quitting.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	model, err := NewModel(game, cfg, opts)
	if err != nil {
		return false, err
	}
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
