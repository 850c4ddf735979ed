// Package prompt turns a generation request into the natural-language
// instructions sent to the text generation service.
package prompt

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-loot/internal/engine"
	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
)

var tierGuidance = map[loot.Tier]string{
	loot.TierBronze:    "Bronze tier: common, serviceable gear made by village smiths and hedge mages. Keep any magic faint and practical.",
	loot.TierSilver:    "Silver tier: well-crafted gear a seasoned adventurer would be proud of. Light enchantments are appropriate.",
	loot.TierGold:      "Gold tier: notable gear with a reputation of its own. Give it a clear magical identity.",
	loot.TierPlatinum:  "Platinum tier: masterwork gear sought by champions. Enchantments should be strong and distinctive.",
	loot.TierLegendary: "Legendary tier: gear spoken of in ballads, tied to famous deeds or figures. Its magic should feel momentous.",
	loot.TierCelestial: "Celestial tier: gear touched by the divine or the stars themselves. Its power should feel world-shaping.",
}

// Build returns the prompt for one attempt. The request's item type must
// already be resolved; subType is the subtype chosen for this attempt.
func Build(req loot.GenerationRequest, subType string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create one %s %s item for a fantasy role-playing game: a %s.\n\n",
		req.Tier, req.ItemType, subType)

	if guidance, ok := tierGuidance[req.Tier]; ok {
		b.WriteString(guidance)
		b.WriteString("\n\n")
	}

	if req.SetName != "" {
		fmt.Fprintf(&b, "This item belongs to the %q set. Its name, description and lore should "+
			"make that membership clear and fit alongside the other pieces of the set.\n\n", req.SetName)
	}

	writeStatGuidance(&b, req.ItemType, req.Tier)

	b.WriteString("\nRespond with a single JSON object and nothing else. Use these fields:\n")
	b.WriteString("- name: a short evocative item name\n")
	fmt.Fprintf(&b, "- type: %q\n", req.ItemType.String())
	fmt.Fprintf(&b, "- subType: %q\n", subType)
	fmt.Fprintf(&b, "- tier: %q\n", req.Tier.String())
	b.WriteString("- description: one or two sentences describing the item\n")
	b.WriteString("- stats: a flat object mapping stat names to numbers; do not nest objects inside it\n")
	b.WriteString("- magicalProperties: a list of {name, description, magnitude} objects, magnitude optional\n")
	b.WriteString("- lore: a short piece of history or legend\n")
	if req.SetName != "" {
		fmt.Fprintf(&b, "- setName: %q\n", req.SetName)
	}
	band := engine.RarityRangeFor(req.Tier)
	fmt.Fprintf(&b, "- rarity: an integer from %d to %d\n", band.Min, band.Max)

	return b.String()
}

func writeStatGuidance(b *strings.Builder, itemType loot.ItemType, tier loot.Tier) {
	ranges := engine.RangesFor(itemType, tier)
	if len(ranges) == 0 {
		fmt.Fprintf(b, "Choose stats that suit this kind of %s. Scale their magnitude by %s "+
			"relative to a common item of the same kind.\n", itemType, formatNumber(tier.Multiplier()))
		return
	}

	names := make([]string, 0, len(ranges))
	for name := range ranges {
		names = append(names, name)
	}
	sort.Strings(names)

	required := map[string]bool{}
	for _, name := range loot.RequiredStats(itemType) {
		required[name] = true
	}

	b.WriteString("Keep stats within these inclusive ranges:\n")
	for _, name := range names {
		r := ranges[name]
		fmt.Fprintf(b, "- %s: %s to %s", name, formatNumber(r.Min), formatNumber(r.Max))
		if required[name] {
			b.WriteString(" (required)")
		}
		b.WriteString("\n")
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
