package platformer

import (
	"github.com/vovakirdan/tui-platformer/internal/ability"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// Variants lists every registered game.
var Variants = []Variant{
	{
		ID:          "vinebound",
		Title:       "Vinebound Odyssey",
		Description: "Swing vine to vine across the canopy and gather every banana",
		Loadout:     []ability.Kind{ability.Dash},
		Swing:       true,
	},
	{
		ID:          "shellshock",
		Title:       "Shell Shocked Splashdown",
		Description: "Guide a hatchling past crabs and waves to the ocean",
		Loadout:     []ability.Kind{ability.Dash, ability.Tuck, ability.Shield},
	},
	{
		ID:          "blitz",
		Title:       "Touchdown Blitz",
		Description: "Sprint, juke and call the hut to break through the defense",
		Loadout:     []ability.Kind{ability.Dash, ability.Spin, ability.Freeze, ability.Burst},
	},
	{
		ID:          "stompbound",
		Title:       "Stompbound",
		Description: "Stomp the gloom gubs and bounce your way to the exit",
		Loadout:     []ability.Kind{ability.Shield},
	},
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}
