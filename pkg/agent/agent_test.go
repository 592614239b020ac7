package agent

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvManifest = `---
name: csv-wrangler
description: parse filter and summarize csv data
---

# CSV Wrangler

Work through csv files column by column.
`

const csvArtifact = `package csvtools

import "strings"

// ParseHeader splits the first line of a csv document.
func ParseHeader(content string) []string {
	line, _, _ := strings.Cut(content, "\n")
	return strings.Split(line, ",")
}
`

func newTestAgent(t *testing.T, manifests map[string]string) *Agent {
	t.Helper()
	root := t.TempDir()

	for name, manifest := range manifests {
		dir := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(manifest), 0o644))
		if name == "csv-wrangler" {
			require.NoError(t, os.WriteFile(filepath.Join(dir, "tools.go"), []byte(csvArtifact), 0o644))
		}
	}

	cfg := DefaultConfig()
	cfg.SkillsDirectory = root
	a := New(cfg)
	require.NoError(t, a.DiscoverSkills(context.Background()))
	return a
}

func TestAutoActivate(t *testing.T) {
	a := newTestAgent(t, map[string]string{"csv-wrangler": csvManifest})
	ctx := context.Background()

	activated := a.AutoActivate(ctx, "please run csv-wrangler on this export")
	assert.Equal(t, []string{"csv-wrangler"}, activated)
	assert.True(t, a.Registry().Active("csv-wrangler"))

	// Already active skills are not reported again.
	assert.Empty(t, a.AutoActivate(ctx, "csv-wrangler again"))
}

func TestAutoActivateNoMatch(t *testing.T) {
	a := newTestAgent(t, map[string]string{"csv-wrangler": csvManifest})
	assert.Empty(t, a.AutoActivate(context.Background(), "write a poem about rain"))
}

func TestRecommendationsDoNotActivate(t *testing.T) {
	a := newTestAgent(t, map[string]string{"csv-wrangler": csvManifest})

	recs := a.Recommendations("use csv-wrangler here")
	assert.Equal(t, []string{"csv-wrangler"}, recs)
	assert.False(t, a.Registry().Active("csv-wrangler"))
}

func TestSystemPromptSections(t *testing.T) {
	a := newTestAgent(t, map[string]string{"csv-wrangler": csvManifest})
	ctx := context.Background()

	prompt := a.SystemPrompt()
	assert.True(t, strings.HasPrefix(prompt, a.cfg.SystemPrompt))
	assert.Contains(t, prompt, "Available Skills:")
	assert.Contains(t, prompt, "- csv-wrangler: parse filter and summarize csv data")
	assert.NotContains(t, prompt, "Currently Active Skills:")

	require.True(t, a.Activate(ctx, "csv-wrangler"))
	prompt = a.SystemPrompt()
	assert.Contains(t, prompt, "Currently Active Skills:")
	assert.Contains(t, prompt, "--- csv-wrangler ---")
	assert.Contains(t, prompt, "# CSV Wrangler")

	require.True(t, a.Deactivate("csv-wrangler"))
	prompt = a.SystemPrompt()
	assert.NotContains(t, prompt, "Currently Active Skills:")
}

func TestSystemPromptTruncatesLongContent(t *testing.T) {
	longBody := strings.Repeat("column layouts and separators. ", 100)
	manifest := "---\nname: verbose\ndescription: very long instructions\n---\n\n" + longBody
	a := newTestAgent(t, map[string]string{"verbose": manifest})

	require.True(t, a.Activate(context.Background(), "verbose"))
	prompt := a.SystemPrompt()
	assert.Contains(t, prompt, "...\n[Content truncated]")
	assert.NotContains(t, prompt, strings.TrimSpace(longBody))
}

func TestManagementTools(t *testing.T) {
	a := newTestAgent(t, map[string]string{"csv-wrangler": csvManifest})
	ctx := context.Background()
	tk := a.Toolkit()

	resp := tk.Invoke(ctx, "list_skills", nil)
	require.False(t, resp.IsError)
	assert.Contains(t, resp.Content, "- csv-wrangler:")

	resp = tk.Invoke(ctx, "activate_skill", map[string]any{"skill_name": "csv-wrangler"})
	require.False(t, resp.IsError)
	assert.Equal(t, "Successfully activated skill: csv-wrangler", resp.Content)
	assert.True(t, a.Registry().Active("csv-wrangler"))

	// The skill's own tools are callable once activated.
	resp = tk.Invoke(ctx, "parse_header", map[string]any{"content": "a,b,c\n1,2,3"})
	require.False(t, resp.IsError)
	assert.Equal(t, "[a b c]", resp.Content)

	resp = tk.Invoke(ctx, "get_skill_content", map[string]any{"skill_name": "csv-wrangler"})
	require.False(t, resp.IsError)
	assert.Contains(t, resp.Content, "# CSV Wrangler")

	resp = tk.Invoke(ctx, "deactivate_skill", map[string]any{"skill_name": "csv-wrangler"})
	require.False(t, resp.IsError)
	assert.False(t, a.Registry().Active("csv-wrangler"))

	resp = tk.Invoke(ctx, "activate_skill", map[string]any{"skill_name": "ghost"})
	assert.True(t, resp.IsError)
	assert.Contains(t, resp.Content, "Failed to activate skill: ghost")
}

func TestInfo(t *testing.T) {
	a := newTestAgent(t, map[string]string{"csv-wrangler": csvManifest})

	info := a.Info()
	assert.Equal(t, 1, info.TotalDiscovered)
	assert.Empty(t, info.ActiveSkills)
	assert.Zero(t, info.CachedContexts)

	require.True(t, a.Activate(context.Background(), "csv-wrangler"))
	info = a.Info()
	assert.Equal(t, []string{"csv-wrangler"}, info.ActiveSkills)
	assert.Equal(t, 1, info.CachedContexts)
}
