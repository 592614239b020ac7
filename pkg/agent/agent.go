// Package agent wires the skill subsystem together for a
// conversational loop: it owns the toolkit, registry, matcher, and
// context cache, auto-activates skills relevant to a task, and
// renders the live system prompt from cached skill content.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillet-ai/skillet/pkg/contextcache"
	"github.com/skillet-ai/skillet/pkg/logger"
	"github.com/skillet-ai/skillet/pkg/matcher"
	"github.com/skillet-ai/skillet/pkg/registry"
	"github.com/skillet-ai/skillet/pkg/toolkit"
)

const managementGroup = "skill-management"

// contentTruncateLimit caps how much of one skill's content reaches
// the system prompt.
const contentTruncateLimit = 2000

// Agent coordinates skill discovery, activation, and prompt assembly.
type Agent struct {
	cfg      Config
	toolkit  *toolkit.Toolkit
	registry *registry.Registry
	matcher  *matcher.Matcher
	cache    *contextcache.Cache
}

// New creates an Agent with the skill management tools registered and
// active.
func New(cfg Config) *Agent {
	tk := toolkit.New()
	a := &Agent{
		cfg:      cfg,
		toolkit:  tk,
		registry: registry.New(tk),
		matcher:  matcher.New(matcher.WithThreshold(cfg.MatchThreshold)),
		cache:    contextcache.New(cfg.CacheMaxEntries),
	}
	a.registerManagementTools()
	return a
}

// Toolkit exposes the shared toolkit for tool dispatch.
func (a *Agent) Toolkit() *toolkit.Toolkit { return a.toolkit }

// Registry exposes the skill registry.
func (a *Agent) Registry() *registry.Registry { return a.registry }

// DiscoverSkills scans the configured skills directory.
func (a *Agent) DiscoverSkills(ctx context.Context) error {
	return a.registry.Discover(ctx, a.cfg.SkillsDirectory)
}

// Activate loads and activates a skill and caches its content for the
// system prompt. Returns false when activation fails.
func (a *Agent) Activate(ctx context.Context, name string) bool {
	if !a.registry.Activate(ctx, name) {
		return false
	}

	content, err := a.registry.Content(name, false)
	if err != nil {
		logger.G(ctx).WithField("skill", name).WithError(err).Warn("failed to cache skill content")
		return true
	}
	a.cache.Put(name, content)
	return true
}

// Deactivate disables a skill and evicts its cached content. Returns
// false when the skill was never loaded.
func (a *Agent) Deactivate(name string) bool {
	if !a.registry.Deactivate(name) {
		return false
	}
	a.cache.Remove(name)
	return true
}

// AutoActivate matches the task against discovered skills and
// activates the relevant ones. Returns the names that were newly
// activated; skills that fail to activate are skipped.
func (a *Agent) AutoActivate(ctx context.Context, task string) []string {
	var activated []string
	for _, name := range a.matcher.Match(task, a.registry.Descriptors()) {
		if a.registry.Active(name) {
			continue
		}
		if !a.Activate(ctx, name) {
			continue
		}
		logger.G(ctx).WithField("skill", name).Info("auto-activated skill")
		activated = append(activated, name)
	}
	return activated
}

// Recommendations returns the skills relevant to a task without
// activating anything.
func (a *Agent) Recommendations(task string) []string {
	return a.matcher.Match(task, a.registry.Descriptors())
}

// SystemPrompt renders the live instructions: the base prompt, the
// discovered-skill summary, and the content of active skills from the
// cache, each truncated to a sane length. Stale cache entries are
// swept first.
func (a *Agent) SystemPrompt() string {
	a.cache.Sweep(a.cfg.CacheMaxAge)

	var sb strings.Builder
	sb.WriteString(a.cfg.SystemPrompt)

	descriptors := a.registry.Descriptors()
	if len(descriptors) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(a.registry.Summary())
		sb.WriteString("\nYou can use the skill management tools (list_skills, activate_skill, ")
		sb.WriteString("deactivate_skill, get_skill_content) to manage these skills. ")
		sb.WriteString("When a task requires specific expertise, consider activating relevant skills.")
	}

	snapshot := a.cache.Snapshot()
	var activeSection strings.Builder
	for _, desc := range descriptors {
		if !a.registry.Active(desc.Name) {
			continue
		}
		content, ok := snapshot[desc.Name]
		if !ok {
			continue
		}
		fmt.Fprintf(&activeSection, "\n--- %s ---\n%s\n", desc.Name, truncateContent(content))
	}
	if activeSection.Len() > 0 {
		sb.WriteString("\n\nCurrently Active Skills:\n")
		sb.WriteString(activeSection.String())
	}

	return sb.String()
}

// Info summarizes the skill state for status display.
type Info struct {
	ActiveSkills    []string
	TotalDiscovered int
	CachedContexts  int
}

// Info reports the active skills in discovery order plus counters.
func (a *Agent) Info() Info {
	info := Info{CachedContexts: a.cache.Len()}
	for _, desc := range a.registry.Descriptors() {
		info.TotalDiscovered++
		if a.registry.Active(desc.Name) {
			info.ActiveSkills = append(info.ActiveSkills, desc.Name)
		}
	}
	return info
}

func truncateContent(content string) string {
	if len(content) <= contentTruncateLimit {
		return content
	}
	return content[:contentTruncateLimit] + "...\n[Content truncated]"
}

type activateSkillInput struct {
	SkillName string `json:"skill_name" jsonschema:"description=Name of the skill to activate"`
}

type deactivateSkillInput struct {
	SkillName string `json:"skill_name" jsonschema:"description=Name of the skill to deactivate"`
}

type skillContentInput struct {
	SkillName        string `json:"skill_name" jsonschema:"description=Name of the skill"`
	IncludeResources bool   `json:"include_resources,omitempty" jsonschema:"description=Whether to include additional resources"`
}

type listSkillsInput struct{}

func (a *Agent) registerManagementTools() {
	a.toolkit.CreateGroup(managementGroup, "Built-in skill management", true)

	tools := []*toolkit.Tool{
		{
			Name:        "list_skills",
			GroupName:   managementGroup,
			Description: "List all available skills with their descriptions",
			InputSchema: toolkit.GenerateSchema[listSkillsInput](),
			Invoke: func(context.Context, map[string]any) (any, error) {
				return a.registry.Summary(), nil
			},
		},
		{
			Name:        "activate_skill",
			GroupName:   managementGroup,
			Description: "Activate a specific skill and its tools",
			InputSchema: toolkit.GenerateSchema[activateSkillInput](),
			Invoke: func(ctx context.Context, args map[string]any) (any, error) {
				name, _ := args["skill_name"].(string)
				if !a.Activate(ctx, name) {
					return toolkit.ErrorResponse("Failed to activate skill: %s", name), nil
				}
				return fmt.Sprintf("Successfully activated skill: %s", name), nil
			},
		},
		{
			Name:        "deactivate_skill",
			GroupName:   managementGroup,
			Description: "Deactivate a specific skill",
			InputSchema: toolkit.GenerateSchema[deactivateSkillInput](),
			Invoke: func(_ context.Context, args map[string]any) (any, error) {
				name, _ := args["skill_name"].(string)
				if !a.Deactivate(name) {
					return toolkit.ErrorResponse("Failed to deactivate skill: %s", name), nil
				}
				return fmt.Sprintf("Successfully deactivated skill: %s", name), nil
			},
		},
		{
			Name:        "get_skill_content",
			GroupName:   managementGroup,
			Description: "Get the instruction content of a specific skill",
			InputSchema: toolkit.GenerateSchema[skillContentInput](),
			Invoke: func(_ context.Context, args map[string]any) (any, error) {
				name, _ := args["skill_name"].(string)
				includeResources, _ := args["include_resources"].(bool)
				content, err := a.registry.Content(name, includeResources)
				if err != nil {
					return toolkit.ErrorResponse("Error getting skill content: %v", err), nil
				}
				return content, nil
			},
		},
	}

	for _, tool := range tools {
		if err := a.toolkit.Register(tool); err != nil {
			logger.G(context.Background()).WithField("tool", tool.Name).WithError(err).Warn("failed to register management tool")
		}
	}
}
