package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/skillet-ai/skillet/pkg/presenter"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Inspect and manage skills",
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered skills",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a, _, err := newAgent(ctx)
		if err != nil {
			presenter.Error(err, "Failed to discover skills")
			os.Exit(1)
		}

		descriptors := a.Registry().Descriptors()
		if len(descriptors) == 0 {
			presenter.Info("No skills discovered.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tVERSION\tDESCRIPTION")
		for _, desc := range descriptors {
			fmt.Fprintf(w, "%s\t%s\t%s\n", desc.Name, desc.Version, desc.Description)
		}
		w.Flush()
	},
}

var skillShowCmd = &cobra.Command{
	Use:   "show [skill-name]",
	Short: "Show a skill's content and tools",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		name := args[0]
		includeResources, _ := cmd.Flags().GetBool("resources")

		a, _, err := newAgent(ctx)
		if err != nil {
			presenter.Error(err, "Failed to discover skills")
			os.Exit(1)
		}

		loaded, err := a.Registry().Load(ctx, name)
		if err != nil {
			presenter.Error(err, "Failed to load skill")
			os.Exit(1)
		}

		presenter.Section(loaded.Descriptor.Name)
		presenter.Info(fmt.Sprintf("Description: %s", loaded.Descriptor.Description))
		presenter.Info(fmt.Sprintf("Version: %s", loaded.Descriptor.Version))
		if loaded.Descriptor.Author != "" {
			presenter.Info(fmt.Sprintf("Author: %s", loaded.Descriptor.Author))
		}
		if len(loaded.Descriptor.Dependencies) > 0 {
			presenter.Info(fmt.Sprintf("Dependencies: %s", strings.Join(loaded.Descriptor.Dependencies, ", ")))
		}
		if len(loaded.ToolNames) > 0 {
			presenter.Info(fmt.Sprintf("Tools: %s", strings.Join(loaded.ToolNames, ", ")))
		}

		content, err := a.Registry().Content(name, includeResources)
		if err != nil {
			presenter.Error(err, "Failed to render skill content")
			os.Exit(1)
		}
		presenter.Separator()
		fmt.Println(content)
	},
}

var skillRecommendCmd = &cobra.Command{
	Use:   "recommend [task description]",
	Short: "Show which skills match a task description",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		task := strings.Join(args, " ")

		a, _, err := newAgent(ctx)
		if err != nil {
			presenter.Error(err, "Failed to discover skills")
			os.Exit(1)
		}

		recommendations := a.Recommendations(task)
		if len(recommendations) == 0 {
			presenter.Info("No matching skills.")
			return
		}
		for _, name := range recommendations {
			presenter.Success(name)
		}
	},
}

func init() {
	skillShowCmd.Flags().Bool("resources", false, "Include resolved resource files in the output")

	skillCmd.AddCommand(skillListCmd)
	skillCmd.AddCommand(skillShowCmd)
	skillCmd.AddCommand(skillRecommendCmd)
}
