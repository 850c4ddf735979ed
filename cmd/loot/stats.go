package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/orchestrators/collection"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection counts by tier",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.collection.Stats(ctx, &collection.StatsInput{})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total items: %d\n", result.Total)
	for _, tier := range loot.AllTiers() {
		fmt.Fprintf(out, "  %-10s %d\n", tier, result.ByTier[tier])
	}
	return nil
}
