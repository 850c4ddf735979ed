package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-loot/internal/orchestrators/collection"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one stored item",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.collection.Get(ctx, &collection.GetInput{ID: args[0]})
	if err != nil {
		return err
	}

	printStoredItem(cmd.OutOrStdout(), result.Item)
	return nil
}
