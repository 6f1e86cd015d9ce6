package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every registered game with the abilities it gives the player.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	kit := make(map[string]string, len(platformer.Variants))
	for _, v := range platformer.Variants {
		kit[v.ID] = loadoutText(v)
	}

	idW, titleW, kitW := len("ID"), len("Title"), len("Abilities")
	for _, g := range games {
		idW = max(idW, len(g.ID))
		titleW = max(titleW, len(g.Title))
		kitW = max(kitW, len(kit[g.ID]))
	}

	fmt.Println("Available games:")
	fmt.Println()
	row := func(id, title, abilities, desc string) {
		fmt.Printf("  %-*s  %-*s  %-*s  %s\n", idW, id, titleW, title, kitW, abilities, desc)
	}
	row("ID", "Title", "Abilities", "Description")
	row("--", "-----", "---------", "-----------")
	for _, g := range games {
		row(g.ID, g.Title, kit[g.ID], g.Description)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}

// loadoutText lists a variant's abilities with their keys, e.g. "J:dash K:tuck".
func loadoutText(v platformer.Variant) string {
	keys := []string{"J", "K", "L", ";"}
	var parts []string
	if v.Swing {
		parts = append(parts, "E:swing")
	}
	for i, k := range v.Loadout {
		if i >= len(keys) {
			break
		}
		parts = append(parts, keys[i]+":"+k.String())
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
