package platformer

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/clock"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/sim"
	"github.com/vovakirdan/tui-platformer/internal/state"
)

// hudRows is the number of screen rows above the playfield.
const hudRows = 2

// Glyph is how an entity subtype is drawn in the terminal.
type Glyph struct {
	Rune  rune
	Color core.Color
}

// glyphs maps level subtypes to glyphs. Subtypes missing here use the
// placeholder of their kind.
var glyphs = map[string]Glyph{
	"banana":         {')', core.ColorBrightYellow},
	"coin":           {'o', core.ColorYellow},
	"pearl":          {'°', core.ColorBrightWhite},
	"glow_bud":       {'*', core.ColorBrightCyan},
	"health":         {'♥', core.ColorBrightRed},
	"health_berry":   {'♥', core.ColorBrightRed},
	"kelp":           {'§', core.ColorGreen},
	"stamina":        {'+', core.ColorCyan},
	"speed":          {'»', core.ColorBrightGreen},
	"speed_leaf":     {'»', core.ColorBrightGreen},
	"sloth":          {'S', core.ColorOrange},
	"crab":           {'C', core.ColorRed},
	"linebacker":     {'L', core.ColorBrightBlue},
	"safety":         {'F', core.ColorBlue},
	"gloom_gub":      {'g', core.ColorMagenta},
	"spiny_shuffler": {'Ж', core.ColorBrightMagenta},
	"wave":           {'~', core.ColorBrightBlue},
	"thorn_pit":      {'^', core.ColorForest},
	"spikes":         {'^', core.ColorWhite},
	"mud":            {'≈', core.ColorBrown},
	"vine":           {'¥', core.ColorForest},
}

var placeholders = map[entity.Kind]Glyph{
	entity.KindEnemy:    {'E', core.ColorRed},
	entity.KindPickup:   {'?', core.ColorYellow},
	entity.KindHazard:   {'^', core.ColorRed},
	entity.KindPivot:    {'O', core.ColorForest},
	entity.KindObstacle: {'█', core.ColorWhite},
}

// GlyphFor returns the glyph of a subtype, falling back to the kind's placeholder.
func GlyphFor(kind entity.Kind, typ string) Glyph {
	if g, ok := glyphs[typ]; ok {
		return g
	}
	return placeholders[kind]
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}
	ctx := g.world.Context()
	area := core.NewRect(0, hudRows, dst.Width(), dst.Height()-hudRows)
	vp := core.NewViewport(ctx.Bounds, area)
	if pb := ctx.Store.Body(ctx.Player); pb != nil {
		vp.Follow(pb.Center(), ctx.Bounds)
	}

	g.drawGoal(dst, vp, ctx)
	ctx.Store.ForEach(func(v entity.View) bool {
		if v.ID != ctx.Player {
			g.drawEntity(dst, vp, ctx, v)
		}
		return true
	})
	g.drawPlayer(dst, vp, ctx)
	g.drawHUD(dst)

	if title, lines, ok := g.Overlay(); ok {
		g.drawCenteredMessage(dst, title, lines...)
	}
}

// Overlay returns the message box shown over the playfield outside of play.
func (g *Game) Overlay() (title string, lines []string, ok bool) {
	if g.world == nil {
		return "", nil, false
	}
	switch st := g.world.State(); st.Phase {
	case string(state.Menu):
		return g.variant.Title, []string{g.variant.Description, "Press Enter to start"}, true
	case string(state.Paused):
		return "PAUSED", []string{"Press P or B to resume"}, true
	case string(state.LevelComplete):
		return "LEVEL COMPLETE", []string{
			fmt.Sprintf("Score: %d  (bonus %d)", st.Score, g.world.Context().Bonus),
			"R to replay  |  B for menu",
		}, true
	case string(state.GameOver):
		return "GAME OVER", []string{
			fmt.Sprintf("%s  |  Score: %d", outcomeText(st.Outcome), st.Score),
			"R to restart  |  B for menu",
		}, true
	}
	return "", nil, false
}

func outcomeText(outcome string) string {
	switch state.Reason(outcome) {
	case state.ReasonHealth:
		return "Out of health"
	case state.ReasonTimeout:
		return "Out of time"
	case state.ReasonFell:
		return "Fell out of the level"
	}
	return outcome
}

// Appearance returns how an entity looks right now. Collapsed platforms are
// hidden; crumbling and bouncy platforms and resting hazards get their own look.
func Appearance(ctx *sim.GameContext, v entity.View) (Glyph, bool) {
	glyph := GlyphFor(v.Tag.Kind, v.Tag.Type)
	switch v.Tag.Kind {
	case entity.KindObstacle:
		if c := ctx.Store.Crumble(v.ID); c != nil {
			if c.Collapsed {
				return glyph, false
			}
			return Glyph{'▒', core.ColorSand}, true
		}
		if s := ctx.Store.Solid(v.ID); s != nil && s.Bounce > 0 {
			return Glyph{'▲', core.ColorBrightMagenta}, true
		}
	case entity.KindHazard:
		if p := ctx.Store.Periodic(v.ID); p != nil && !clock.Active(ctx.Elapsed+p.Offset, p.Period, p.Duty) {
			return Glyph{'.', core.ColorGray}, true
		}
	}
	return glyph, true
}

func (g *Game) drawEntity(dst *core.Screen, vp core.Viewport, ctx *sim.GameContext, v entity.View) {
	r, ok := vp.Clip(vp.Project(v.Body.Box()))
	if !ok {
		return
	}
	glyph, visible := Appearance(ctx, v)
	if !visible {
		return
	}
	switch v.Tag.Kind {
	case entity.KindObstacle, entity.KindHazard:
		dst.DrawRect(r, glyph.Rune, glyph.Color)
	default:
		x, y := vp.Point(v.Body.Center())
		if x >= vp.Area.X && x < vp.Area.Right() && y >= vp.Area.Y && y < vp.Area.Bottom() {
			dst.SetColor(x, y, glyph.Rune, glyph.Color)
		}
	}
}

func (g *Game) drawGoal(dst *core.Screen, vp core.Viewport, ctx *sim.GameContext) {
	if ctx.Goal.W <= 0 || ctx.Goal.H <= 0 {
		return
	}
	r := vp.Project(ctx.Goal)
	if _, ok := vp.Clip(r); !ok {
		return
	}
	color := core.ColorGray
	if ctx.Keeper.ObjectivesMet() {
		color = core.ColorBrightGreen
	}
	if r.W >= 2 && r.H >= 2 {
		dst.DrawBox(r, color)
		return
	}
	x, y := vp.Point(ctx.Goal.Center())
	dst.SetColor(x, y, '⚑', color)
}

func (g *Game) drawPlayer(dst *core.Screen, vp core.Viewport, ctx *sim.GameContext) {
	pb := ctx.Store.Body(ctx.Player)
	pl := ctx.Store.Player(ctx.Player)
	if pb == nil || pl == nil {
		return
	}
	px, py := vp.Point(pb.Center())
	if pl.Motion == entity.Swinging {
		ax, ay := vp.Point(pl.Swing.Anchor)
		dst.DrawLine(ax, ay, px, py, '·', core.ColorBrown)
	}

	r, ok := vp.Clip(vp.Project(pb.Box()))
	if !ok {
		return
	}
	dst.DrawRect(r, '@', PlayerColor(pl))
}

// PlayerColor tints the player by its strongest active status.
func PlayerColor(pl *entity.Player) core.Color {
	switch {
	case pl.Status.Has(entity.StatusShielded), pl.Status.Has(entity.StatusTucked):
		return core.ColorBrightCyan
	case pl.Status.Has(entity.StatusDashing), pl.Status.Has(entity.StatusBursting):
		return core.ColorBrightYellow
	case pl.Invulnerable > 0:
		return core.ColorGray
	}
	return core.ColorBrightWhite
}

func (g *Game) drawHUD(dst *core.Screen) {
	status, objectives := g.HUD()
	dst.DrawTextColor(0, 0, status, core.ColorBrightWhite)
	dst.DrawTextColor(0, 1, objectives, core.ColorGray)
}

// HUD returns the status line and the level/objectives line.
func (g *Game) HUD() (status, objectives string) {
	if g.world == nil {
		return "", ""
	}
	ctx := g.world.Context()

	var sb strings.Builder
	fmt.Fprintf(&sb, " Score: %d", ctx.Keeper.Score())
	if pl := ctx.Store.Player(ctx.Player); pl != nil {
		fmt.Fprintf(&sb, "  HP %.0f/%.0f  ST %.0f", pl.Health, pl.MaxHealth, pl.Stamina)
	}
	if ctx.Remaining >= 0 {
		fmt.Fprintf(&sb, "  Time %.0f", ctx.Remaining)
	}
	for _, a := range g.world.Abilities() {
		mark := "·"
		switch {
		case a.Active > 0:
			mark = "*"
		case a.Ready:
			mark = "✓"
		}
		fmt.Fprintf(&sb, "  [%s %s%s]", a.Slot, a.Kind, mark)
	}

	objs := ctx.Keeper.Objectives()
	parts := make([]string, 0, len(objs))
	for _, o := range objs {
		parts = append(parts, o.String())
	}
	return sb.String(), " " + ctx.Level + "  " + strings.Join(parts, "  ")
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextColor(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightYellow)
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-len([]rune(l)))/2, boxY+3+i, l)
	}
}
