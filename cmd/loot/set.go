package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-loot/internal/orchestrators/collection"
	"github.com/KirkDiggler/rpg-loot/internal/orchestrators/generation"
)

var (
	setTier   string
	setTypes  []string
	setNoSave bool
)

var setCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Generate a themed set",
	Long: `Generate one item per type, all tagged with the set name. A piece whose
attempt fails is left out rather than retried.`,
	Example: `  loot set "Ashen Vigil" --tier legendary --types weapon,armor,accessory`,
	Args:    cobra.ExactArgs(1),
	RunE:    runSet,
}

func init() {
	setCmd.Flags().StringVar(&setTier, "tier", "", "tier for every piece")
	setCmd.Flags().StringSliceVar(&setTypes, "types", defaultSetTypes, "item types, one piece each, in order")
	setCmd.Flags().BoolVar(&setNoSave, "no-save", false, "print items without storing them")
	setCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write run metrics in Prometheus text format to this path")
	_ = setCmd.MarkFlagRequired("tier")
}

func runSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	tier, err := parseTier(setTier)
	if err != nil {
		return err
	}
	types, err := parseItemTypes(setTypes)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, !setNoSave)
	if err != nil {
		return err
	}
	defer a.Close()
	defer a.flushMetrics(ctx, metricsFile)

	if err := a.probe(ctx, cfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if setNoSave {
		result, err := a.generation.GenerateSet(ctx, &generation.GenerateSetInput{
			SetName:   args[0],
			Tier:      tier,
			ItemTypes: types,
			Model:     cfg.Model,
		})
		if err != nil {
			return err
		}
		for _, item := range result.Items {
			printItem(out, item)
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "Generated %d of %d pieces\n", len(result.Items), len(types))
		return nil
	}

	result, err := a.collection.GenerateSetAndSave(ctx, &collection.GenerateSetAndSaveInput{
		SetName:   args[0],
		Tier:      tier,
		ItemTypes: types,
		Model:     cfg.Model,
	})
	if err != nil {
		return err
	}
	printBatch(out, result)

	return nil
}
