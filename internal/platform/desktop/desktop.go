// Package desktop runs a platformer game in a window with ebiten.
// Entities are drawn as colored boxes unless a sprite named after their
// subtype is found in the asset directory.
package desktop

import (
	"errors"
	"fmt"
	_ "image/png" // sprite decoding for ebitenutil
	"io"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-platformer/internal/clock"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/platform/runner"
	"github.com/vovakirdan/tui-platformer/internal/sim"
	"github.com/vovakirdan/tui-platformer/internal/state"
)

// Window size in pixels. World units are pixels too.
const (
	ScreenW = 960
	ScreenH = 540
	hudH    = 36
)

// Options configure the desktop frontend.
type Options struct {
	runner.Options

	// AssetDir holds <subtype>.png sprites, e.g. crab.png. Empty or missing
	// files fall back to boxes.
	AssetDir string
}

// App is the ebiten game wrapping one platformer game.
type App struct {
	game    *platformer.Game
	run     *runner.Runner
	log     *log.Logger
	step    float64
	assets  string
	sprites map[string]*ebiten.Image // nil entries are known misses
}

// New resets the game and prepares the window frontend.
func New(game *platformer.Game, cfg core.RuntimeConfig, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = clock.DefaultTickRate
	}
	opts.Logger = logger

	run := runner.New(game, opts.Options)
	if err := run.Reset(cfg); err != nil {
		return nil, fmt.Errorf("start %s: %w", game.ID(), err)
	}
	return &App{
		game:    game,
		run:     run,
		log:     logger,
		step:    1.0 / float64(cfg.TickRate),
		assets:  opts.AssetDir,
		sprites: make(map[string]*ebiten.Image),
	}, nil
}

// Update advances the simulation by one fixed step.
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && a.run.State().Phase == string(state.Menu) {
		return ebiten.Termination
	}
	a.run.Step(frameFrom(ebiten.IsKeyPressed), a.step)
	return nil
}

// Layout keeps a fixed logical screen; ebiten scales it to the window.
func (a *App) Layout(_, _ int) (int, int) {
	return ScreenW, ScreenH
}

// Draw renders the world, the HUD and the phase overlay.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	world := a.game.World()
	if world == nil {
		return
	}
	ctx := world.Context()
	camX, camY := a.camera(ctx)

	vector.StrokeRect(screen, float32(ctx.Bounds.X-camX), float32(ctx.Bounds.Y-camY+hudH),
		float32(ctx.Bounds.W), float32(ctx.Bounds.H), 1, boundColor, false)

	if ctx.Goal.W > 0 && ctx.Goal.H > 0 {
		goal := rgba(core.ColorGray)
		if ctx.Keeper.ObjectivesMet() {
			goal = rgba(core.ColorBrightGreen)
		}
		vector.StrokeRect(screen, float32(ctx.Goal.X-camX), float32(ctx.Goal.Y-camY+hudH),
			float32(ctx.Goal.W), float32(ctx.Goal.H), 2, goal, false)
	}

	ctx.Store.ForEach(func(v entity.View) bool {
		if v.ID != ctx.Player {
			a.drawEntity(screen, ctx, v, camX, camY)
		}
		return true
	})
	a.drawPlayer(screen, ctx, camX, camY)

	status, objectives := a.game.HUD()
	ebitenutil.DebugPrintAt(screen, status, 4, 2)
	ebitenutil.DebugPrintAt(screen, objectives, 4, 18)

	if title, lines, ok := a.game.Overlay(); ok {
		drawOverlay(screen, title, lines)
	}
}

// camera returns the world position of the top-left corner of the view.
func (a *App) camera(ctx *sim.GameContext) (float64, float64) {
	focus := ctx.Bounds.Center()
	if pb := ctx.Store.Body(ctx.Player); pb != nil {
		focus = pb.Center()
	}
	b := ctx.Bounds
	x := b.X + cameraOffset(focus.X-b.X, ScreenW, b.W)
	y := b.Y + cameraOffset(focus.Y-b.Y, ScreenH-hudH, b.H)
	return x, y
}

func (a *App) drawEntity(screen *ebiten.Image, ctx *sim.GameContext, v entity.View, camX, camY float64) {
	glyph, visible := platformer.Appearance(ctx, v)
	if !visible {
		return
	}
	box := v.Body.Box()
	x, y := box.X-camX, box.Y-camY+hudH
	if x+box.W < 0 || x > ScreenW || y+box.H < hudH || y > ScreenH {
		return
	}
	if img := a.sprite(v.Tag.Type); img != nil {
		op := &ebiten.DrawImageOptions{}
		iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
		op.GeoM.Scale(box.W/float64(iw), box.H/float64(ih))
		op.GeoM.Translate(x, y)
		screen.DrawImage(img, op)
		return
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(box.W), float32(box.H), rgba(glyph.Color), false)
}

func (a *App) drawPlayer(screen *ebiten.Image, ctx *sim.GameContext, camX, camY float64) {
	pb := ctx.Store.Body(ctx.Player)
	pl := ctx.Store.Player(ctx.Player)
	if pb == nil || pl == nil {
		return
	}
	if pl.Motion == entity.Swinging {
		c := pb.Center()
		vector.StrokeLine(screen,
			float32(pl.Swing.Anchor.X-camX), float32(pl.Swing.Anchor.Y-camY+hudH),
			float32(c.X-camX), float32(c.Y-camY+hudH),
			2, rgba(core.ColorBrown), true)
	}
	box := pb.Box()
	vector.DrawFilledRect(screen, float32(box.X-camX), float32(box.Y-camY+hudH),
		float32(box.W), float32(box.H), rgba(platformer.PlayerColor(pl)), false)
}

// sprite loads <assets>/<name>.png once; misses are remembered.
func (a *App) sprite(name string) *ebiten.Image {
	if a.assets == "" || name == "" {
		return nil
	}
	if img, ok := a.sprites[name]; ok {
		return img
	}
	path := filepath.Join(a.assets, name+".png")
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			a.log.Warn("sprite unusable", "path", path, "error", err)
		}
		img = nil
	}
	a.sprites[name] = img
	return img
}

func drawOverlay(screen *ebiten.Image, title string, lines []string) {
	const boxW, lineH = 420, 16
	boxH := float32(lineH*(len(lines)+3) + 8)
	x := float32(ScreenW-boxW) / 2
	y := (float32(ScreenH) - boxH) / 2
	vector.DrawFilledRect(screen, x, y, boxW, boxH, shadeColor, false)
	vector.StrokeRect(screen, x, y, boxW, boxH, 2, rgba(core.ColorWhite), false)

	ebitenutil.DebugPrintAt(screen, title, int(x)+12, int(y)+8)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, int(x)+12, int(y)+8+lineH*(i+2))
	}
}

// Run opens a window and plays the game until it is closed or the player quits.
func Run(game *platformer.Game, cfg core.RuntimeConfig, opts Options) error {
	app, err := New(game, cfg, opts)
	if err != nil {
		return err
	}
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowSize(ScreenW, ScreenH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TickRate > 0 {
		ebiten.SetTPS(cfg.TickRate)
	}
	return ebiten.RunGame(app)
}
