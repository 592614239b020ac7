package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillet-ai/skillet/pkg/llm"
	"github.com/skillet-ai/skillet/pkg/presenter"
)

var runCmd = &cobra.Command{
	Use:   "run [query]",
	Short: "Run a one-shot query with skill support",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		query := strings.Join(args, " ")

		a, cfg, err := newAgent(ctx)
		if err != nil {
			presenter.Error(err, "Failed to discover skills")
			os.Exit(1)
		}

		for _, name := range a.AutoActivate(ctx, query) {
			presenter.Success(fmt.Sprintf("Activated skill: %s", name))
		}

		client := llm.NewClient(llm.Config{Model: cfg.Model, MaxTokens: cfg.MaxTokens})
		if _, err := client.Ask(ctx, a.Toolkit(), a.SystemPrompt, query, chatEvents()); err != nil {
			presenter.Error(err, "Query failed")
			os.Exit(1)
		}
	},
}
