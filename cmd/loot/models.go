package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models installed on the text generation service",
	RunE:  runModels,
}

func runModels(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	models := a.textGen.ListModels(ctx)
	if len(models) == 0 {
		fmt.Fprintf(out, "No models available at %s\n", cfg.OllamaHost)
		return nil
	}
	for _, name := range models {
		marker := " "
		if name == cfg.Model {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s\n", marker, name)
	}
	return nil
}
