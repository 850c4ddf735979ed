package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-loot/internal/orchestrators/collection"
)

var (
	listTier    string
	listSetName string
	listLimit   int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored items, newest first",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listTier, "tier", "", "only items of this tier")
	listCmd.Flags().StringVar(&listSetName, "set", "", "only items of this set")
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "maximum items to show (0 for all)")
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	tier, err := parseTier(listTier)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.collection.List(ctx, &collection.ListInput{
		Tier:    tier,
		SetName: listSetName,
		Limit:   listLimit,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(result.Items) == 0 {
		fmt.Fprintln(out, "No items found")
		return nil
	}
	return printItemTable(out, result.Items)
}
