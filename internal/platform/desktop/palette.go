package desktop

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

var (
	skyColor   = color.RGBA{R: 18, G: 22, B: 38, A: 255}
	boundColor = color.RGBA{R: 60, G: 66, B: 90, A: 255}
	shadeColor = color.RGBA{A: 170}
)

// palette maps terminal colors to window colors.
var palette = map[core.Color]color.RGBA{
	core.ColorDefault:       {R: 200, G: 200, B: 200, A: 255},
	core.ColorRed:           {R: 200, G: 50, B: 50, A: 255},
	core.ColorGreen:         {R: 60, G: 170, B: 70, A: 255},
	core.ColorYellow:        {R: 210, G: 180, B: 40, A: 255},
	core.ColorBlue:          {R: 50, G: 80, B: 200, A: 255},
	core.ColorMagenta:       {R: 170, G: 60, B: 170, A: 255},
	core.ColorCyan:          {R: 50, G: 170, B: 180, A: 255},
	core.ColorWhite:         {R: 210, G: 210, B: 210, A: 255},
	core.ColorBrightRed:     {R: 255, G: 90, B: 90, A: 255},
	core.ColorBrightGreen:   {R: 110, G: 240, B: 110, A: 255},
	core.ColorBrightYellow:  {R: 255, G: 240, B: 90, A: 255},
	core.ColorBrightBlue:    {R: 100, G: 140, B: 255, A: 255},
	core.ColorBrightMagenta: {R: 255, G: 110, B: 255, A: 255},
	core.ColorBrightCyan:    {R: 110, G: 240, B: 255, A: 255},
	core.ColorBrightWhite:   {R: 255, G: 255, B: 255, A: 255},
	core.ColorOrange:        {R: 255, G: 135, B: 0, A: 255},
	core.ColorGray:          {R: 138, G: 138, B: 138, A: 255},
	core.ColorBrown:         {R: 135, G: 90, B: 40, A: 255},
	core.ColorSand:          {R: 215, G: 175, B: 135, A: 255},
	core.ColorForest:        {R: 0, G: 135, B: 0, A: 255},
}

// rgba returns the window color of a terminal color.
func rgba(c core.Color) color.RGBA {
	if v, ok := palette[c]; ok {
		return v
	}
	return palette[core.ColorDefault]
}

// binding maps a key to the action it holds.
type binding struct {
	key    ebiten.Key
	action core.Action
}

var bindings = []binding{
	{ebiten.KeyA, core.ActionLeft},
	{ebiten.KeyArrowLeft, core.ActionLeft},
	{ebiten.KeyD, core.ActionRight},
	{ebiten.KeyArrowRight, core.ActionRight},
	{ebiten.KeyW, core.ActionUp},
	{ebiten.KeyArrowUp, core.ActionUp},
	{ebiten.KeyS, core.ActionDown},
	{ebiten.KeyArrowDown, core.ActionDown},
	{ebiten.KeySpace, core.ActionJump},
	{ebiten.KeyE, core.ActionAttach},
	{ebiten.KeyShiftLeft, core.ActionAttach},
	{ebiten.KeyJ, core.ActionPrimary},
	{ebiten.KeyK, core.ActionSecondary},
	{ebiten.KeyL, core.ActionTertiary},
	{ebiten.KeySemicolon, core.ActionQuaternary},
	{ebiten.KeyEnter, core.ActionConfirm},
	{ebiten.KeyB, core.ActionBack},
	{ebiten.KeyEscape, core.ActionBack},
	{ebiten.KeyP, core.ActionPause},
	{ebiten.KeyR, core.ActionRestart},
}

// frameFrom builds the input of one tick from the keys currently down.
// The simulation does its own edge detection, so held keys are reported as is.
func frameFrom(pressed func(ebiten.Key) bool) core.InputFrame {
	f := core.NewInputFrame()
	for _, b := range bindings {
		if pressed(b.key) {
			f.Set(b.action)
		}
	}
	return f
}

// cameraOffset returns the left (or top) edge of a view of size view that
// centers focus without leaving a world of size world. A world smaller than
// the view is centered.
func cameraOffset(focus, view, world float64) float64 {
	if world <= view {
		return (world - view) / 2
	}
	return core.Clamp(focus-view/2, 0, world-view)
}
