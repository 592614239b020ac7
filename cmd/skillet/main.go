package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skillet-ai/skillet/pkg/agent"
	"github.com/skillet-ai/skillet/pkg/logger"
)

func init() {
	// Environment variables
	viper.SetEnvPrefix("SKILLET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.skillet")
	viper.AddConfigPath(".")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "skillet",
	Short: "Skillet gives a conversational agent dynamically loadable skills",
	Long: `Skillet discovers skills on disk, activates the ones relevant to a task,
and exposes their instructions and tools to a conversational agent.

A skill is a directory containing a SKILL.md manifest, optional resource
files, and Go code artifacts whose functions become callable tools.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if level := viper.GetString("log_level"); level != "" {
			if err := logger.SetLogLevel(level); err != nil {
				logger.G(cmd.Context()).WithError(err).Warn("invalid log level, keeping default")
			}
		}
	},
	// Default behavior is to show help if no arguments are provided
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			// If arguments are provided but no subcommand, forward to run command
			runCmd.Run(cmd, args)
		} else {
			cmd.Help()
			os.Exit(1)
		}
	},
}

// newAgent builds an agent from the current configuration and runs
// skill discovery.
func newAgent(ctx context.Context) (*agent.Agent, agent.Config, error) {
	cfg := agent.FromViper(viper.GetViper())
	a := agent.New(cfg)
	if err := a.DiscoverSkills(ctx); err != nil {
		return nil, cfg, err
	}
	return a, cfg, nil
}

func main() {
	// Add global flags
	rootCmd.PersistentFlags().String("skills-dir", "", "Skills directory (overrides config)")
	rootCmd.PersistentFlags().String("model", "", "Model to use (overrides config)")
	rootCmd.PersistentFlags().Int("max-tokens", 0, "Maximum tokens for response (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	// Bind flags to viper
	viper.BindPFlag("skills.directory", rootCmd.PersistentFlags().Lookup("skills-dir"))
	viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	viper.BindPFlag("max_tokens", rootCmd.PersistentFlags().Lookup("max-tokens"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	// Add subcommands
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Execute
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
