package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/skillet-ai/skillet/pkg/logger"
	"github.com/skillet-ai/skillet/pkg/presenter"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up Skillet configuration",
	Long:  `Set up Skillet configuration with sensible defaults.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		override, _ := cmd.Flags().GetBool("override")

		presenter.Section("Skillet Configuration Setup")

		if os.Getenv("ANTHROPIC_API_KEY") != "" {
			presenter.Success("Found ANTHROPIC_API_KEY in environment")
		} else {
			presenter.Warning("ANTHROPIC_API_KEY is not set; chat and run will not work without it")
		}

		configDir := filepath.Join(os.Getenv("HOME"), ".skillet")
		if err := os.MkdirAll(configDir, 0755); err != nil {
			presenter.Error(err, "Failed to create config directory")
			logger.G(ctx).WithError(err).WithField("config_dir", configDir).Error("Config directory creation failed")
			return
		}

		configFile := filepath.Join(configDir, "config.yaml")
		if !override {
			if _, err := os.Stat(configFile); err == nil {
				presenter.Warning(fmt.Sprintf("Configuration file already exists at %s", configFile))
				presenter.Info("To overwrite, use the --override flag")
				return
			}
		}

		defaults := map[string]any{
			"model":      "claude-sonnet-4-20250514",
			"max_tokens": 8192,
			"log_level":  "info",
			"skills": map[string]any{
				"directory": "./skills",
			},
			"matching": map[string]any{
				"threshold": 0.7,
			},
			"cache": map[string]any{
				"max_entries": 50,
				"max_age":     "1h",
			},
		}

		content, err := yaml.Marshal(defaults)
		if err != nil {
			presenter.Error(err, "Failed to render config")
			return
		}
		if err := os.WriteFile(configFile, content, 0644); err != nil {
			presenter.Error(err, "Failed to write config file")
			logger.G(ctx).WithError(err).WithField("config_file", configFile).Error("Config file write failed")
			return
		}

		presenter.Success(fmt.Sprintf("Configuration saved to %s", configFile))
		presenter.Separator()
		presenter.Section("Getting Started")
		presenter.Info("  skillet skill list                  # List discovered skills")
		presenter.Info("  skillet skill recommend \"task\"      # See which skills match a task")
		presenter.Info("  skillet chat                        # Start interactive chat")
		presenter.Info("  skillet run \"your query\"            # Run one-shot query")
	},
}

func init() {
	initCmd.Flags().Bool("override", false, "Overwrite existing configuration file if it exists")
}
