package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/skillet-ai/skillet/pkg/llm"
	"github.com/skillet-ai/skillet/pkg/presenter"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat with skill support",
	Long: `Start an interactive chat session. Skills relevant to each message are
activated automatically and their tools become available to the model.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		a, cfg, err := newAgent(ctx)
		if err != nil {
			presenter.Error(err, "Failed to discover skills")
			os.Exit(1)
		}

		client := llm.NewClient(llm.Config{Model: cfg.Model, MaxTokens: cfg.MaxTokens})
		conv := client.NewConversation(a.Toolkit(), a.SystemPrompt)

		presenter.Section("Skillet Chat")
		info := a.Info()
		presenter.Info(fmt.Sprintf("%d skills discovered. Type 'exit' to quit.", info.TotalDiscovered))
		presenter.Separator()

		prompt := color.New(color.FgCyan, color.Bold)
		scanner := bufio.NewScanner(os.Stdin)
		for {
			prompt.Print("you> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "exit" || line == "quit" {
				break
			}

			for _, name := range a.AutoActivate(ctx, line) {
				presenter.Success(fmt.Sprintf("Activated skill: %s", name))
			}

			if _, err := conv.Send(ctx, line, chatEvents()); err != nil {
				presenter.Error(err, "Chat turn failed")
			}
			fmt.Println()
		}
	},
}

func chatEvents() llm.Events {
	toolColor := color.New(color.FgYellow)
	return llm.Events{
		Text: func(text string) {
			fmt.Println(text)
		},
		ToolUse: func(name, input string) {
			toolColor.Printf("[%s] %s\n", name, input)
		},
		ToolResult: func(name, output string, isError bool) {
			if isError {
				presenter.Warning(output)
				return
			}
			toolColor.Printf("[%s] -> %s\n", name, output)
		},
	}
}
