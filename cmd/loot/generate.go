package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/orchestrators/collection"
	"github.com/KirkDiggler/rpg-loot/internal/orchestrators/generation"
)

var (
	genTier        string
	genCount       int
	genType        string
	genSubType     string
	genSetName     string
	genNoSave      bool
	genConcurrency int
	metricsFile    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate loot items",
	Long: `Generate one or more items of a tier. Item type and subtype are picked at
random per attempt when not given. Failed attempts are skipped, so fewer
items than requested may come back.`,
	Example: `  loot generate --tier gold --count 3 --type weapon
  loot generate --tier legendary --subtype amulet --set "Ashen Vigil"`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genTier, "tier", "", "item tier (Bronze, Silver, Gold, Platinum, Legendary, Celestial)")
	generateCmd.Flags().IntVar(&genCount, "count", 1, "number of attempts")
	generateCmd.Flags().StringVar(&genType, "type", "", "item type (random when empty)")
	generateCmd.Flags().StringVar(&genSubType, "subtype", "", "item subtype (random when empty)")
	generateCmd.Flags().StringVar(&genSetName, "set", "", "set the items belong to")
	generateCmd.Flags().BoolVar(&genNoSave, "no-save", false, "print items without storing them")
	generateCmd.Flags().IntVar(&genConcurrency, "concurrency", 0, "attempts in flight (overrides LOOT_CONCURRENCY)")
	generateCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write run metrics in Prometheus text format to this path")
	_ = generateCmd.MarkFlagRequired("tier")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	tier, err := parseTier(genTier)
	if err != nil {
		return err
	}
	itemType, err := parseItemType(genType)
	if err != nil {
		return err
	}

	req := loot.GenerationRequest{
		Tier:     tier,
		Count:    genCount,
		ItemType: itemType,
		SubType:  genSubType,
		SetName:  genSetName,
		Model:    cfg.Model,
	}
	// Reject a bad request before probing the service.
	if _, err := req.Normalize(); err != nil {
		return err
	}
	if genConcurrency > 0 {
		cfg.Concurrency = genConcurrency
	}

	a, err := newApp(ctx, cfg, !genNoSave)
	if err != nil {
		return err
	}
	defer a.Close()
	defer a.flushMetrics(ctx, metricsFile)

	if err := a.probe(ctx, cfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if genNoSave {
		result, err := a.generation.Generate(ctx, &generation.GenerateInput{Request: req})
		if err != nil {
			return err
		}
		for _, item := range result.Items {
			printItem(out, item)
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "Generated %d of %d\n", len(result.Items), req.Count)
		return nil
	}

	result, err := a.collection.GenerateAndSave(ctx, &collection.GenerateAndSaveInput{Request: req})
	if err != nil {
		return err
	}
	printBatch(out, result)

	return nil
}
