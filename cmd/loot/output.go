package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/orchestrators/collection"
)

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatStats renders stats as "name=value" pairs in name order
func formatStats(stats loot.StatBlock) string {
	parts := make([]string, 0, stats.Len())
	for _, name := range sortedKeys(stats.Values) {
		parts = append(parts, name+"="+formatNumber(stats.Values[name]))
	}
	if len(stats.ElementalResistance) > 0 {
		var res []string
		for _, element := range sortedKeys(stats.ElementalResistance) {
			res = append(res, element+"="+formatNumber(stats.ElementalResistance[element]))
		}
		parts = append(parts, "resist("+strings.Join(res, " ")+")")
	}
	return strings.Join(parts, " ")
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func printItem(w io.Writer, item *loot.LootItem) {
	fmt.Fprintf(w, "%s [%s %s, %s] rarity %d\n", item.Name, item.Tier, item.SubType, item.Type, item.Rarity)
	if item.SetName != "" {
		fmt.Fprintf(w, "   Set: %s\n", item.SetName)
	}
	fmt.Fprintf(w, "   %s\n", item.Description)
	if stats := formatStats(item.Stats); stats != "" {
		fmt.Fprintf(w, "   Stats: %s\n", stats)
	}
	for _, prop := range item.MagicalProperties {
		if prop.Magnitude != nil {
			fmt.Fprintf(w, "   * %s (%s): %s\n", prop.Name, formatNumber(*prop.Magnitude), prop.Description)
			continue
		}
		fmt.Fprintf(w, "   * %s: %s\n", prop.Name, prop.Description)
	}
	if item.Lore != "" {
		fmt.Fprintf(w, "   Lore: %s\n", item.Lore)
	}
}

func printStoredItem(w io.Writer, item *loot.StoredItem) {
	printItem(w, &item.LootItem)
	fmt.Fprintf(w, "   ID: %s\n", item.ID)
	fmt.Fprintf(w, "   Created: %s\n", item.CreatedAt.Format("2006-01-02 15:04:05 MST"))
}

func printBatch(w io.Writer, out *collection.BatchOutput) {
	for _, result := range out.Results {
		status := "new"
		if !result.Created {
			status = "duplicate"
		}
		fmt.Fprintf(w, "[%s] ", status)
		printStoredItem(w, result.Item)
		fmt.Fprintln(w)
	}
	printCounts(w, out.Counts)
}

func printCounts(w io.Writer, c collection.Counts) {
	fmt.Fprintf(w, "Requested %d, generated %d, saved %d new, %d duplicates, %d failed\n",
		c.Requested, c.Generated, c.Saved, c.Duplicates, c.Failed)
}

func printItemTable(w io.Writer, items []*loot.StoredItem) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTIER\tTYPE\tSUBTYPE\tRARITY\tSET")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			item.ID, item.Name, item.Tier, item.Type, item.SubType, item.Rarity, item.SetName)
	}
	return tw.Flush()
}
