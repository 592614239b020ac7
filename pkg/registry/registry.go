// Package registry owns the skill lifecycle: discovery scans a root
// directory for manifests, loading materializes a skill's body,
// resources, and tools, and activation toggles the skill's tool group.
// Loading is lazy and deduplicated; discovery alone reads nothing but
// the manifest.
package registry

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/skillet-ai/skillet/pkg/extract"
	"github.com/skillet-ai/skillet/pkg/logger"
	"github.com/skillet-ai/skillet/pkg/skills"
	"github.com/skillet-ai/skillet/pkg/toolkit"
)

// Registry tracks discovered descriptors and loaded skills, and
// registers extracted tools with the shared toolkit.
type Registry struct {
	mu         sync.RWMutex
	toolkit    *toolkit.Toolkit
	discovered map[string]*skills.Descriptor
	order      []string // discovery order
	loaded     map[string]*skills.LoadedSkill
	loadGroup  singleflight.Group
}

// New creates a Registry that registers tools with tk.
func New(tk *toolkit.Toolkit) *Registry {
	return &Registry{
		toolkit:    tk,
		discovered: make(map[string]*skills.Descriptor),
		loaded:     make(map[string]*skills.LoadedSkill),
	}
}

// Discover scans root for skill directories and replaces the
// discovered set wholesale. A directory qualifies when it contains a
// parseable SKILL.md; directories without one, and manifests that do
// not parse, are skipped with a log entry. Already loaded skills stay
// loaded. A missing root is not an error, it just discovers nothing.
func (r *Registry) Discover(ctx context.Context, root string) error {
	log := logger.G(ctx).WithField("root", root)

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("skills directory does not exist")
			r.replaceDiscovered(nil, nil)
			return nil
		}
		return errors.Wrapf(err, "failed to read skills directory %s", root)
	}

	discovered := make(map[string]*skills.Descriptor)
	var order []string
	for _, entry := range entries {
		dir := filepath.Join(root, entry.Name())
		// Stat follows symlinks, ReadDir entries do not.
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}

		manifestPath := filepath.Join(dir, skills.ManifestFileName)
		raw, err := os.ReadFile(manifestPath)
		if err != nil {
			log.WithField("dir", entry.Name()).Debug("no manifest, skipping")
			continue
		}

		desc, err := skills.ParseManifest(string(raw))
		if err != nil {
			log.WithField("dir", entry.Name()).WithError(err).Warn("invalid manifest, skipping")
			continue
		}
		desc.Directory = dir
		desc.ManifestPath = manifestPath

		if _, exists := discovered[desc.Name]; exists {
			log.WithField("skill", desc.Name).Warn("duplicate skill name, keeping the first")
			continue
		}
		discovered[desc.Name] = desc
		order = append(order, desc.Name)
	}

	log.WithField("count", len(order)).Info("discovered skills")
	r.replaceDiscovered(discovered, order)
	return nil
}

func (r *Registry) replaceDiscovered(discovered map[string]*skills.Descriptor, order []string) {
	if discovered == nil {
		discovered = make(map[string]*skills.Descriptor)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.discovered = discovered
	r.order = order
}

// Load materializes a discovered skill: manifest body, resolved
// resources, and tools extracted from its code artifacts. Loading is
// idempotent and concurrent loads of the same skill are deduplicated,
// so extraction runs once. The skill's tool group is created inactive.
func (r *Registry) Load(ctx context.Context, name string) (*skills.LoadedSkill, error) {
	r.mu.RLock()
	desc, found := r.discovered[name]
	loaded, isLoaded := r.loaded[name]
	r.mu.RUnlock()

	if isLoaded {
		return loaded, nil
	}
	if !found {
		return nil, &skills.NotFoundError{Name: name}
	}

	v, err, _ := r.loadGroup.Do(name, func() (any, error) {
		return r.load(ctx, desc)
	})
	if err != nil {
		return nil, err
	}
	return v.(*skills.LoadedSkill), nil
}

func (r *Registry) load(ctx context.Context, desc *skills.Descriptor) (*skills.LoadedSkill, error) {
	r.mu.RLock()
	if loaded, ok := r.loaded[desc.Name]; ok {
		r.mu.RUnlock()
		return loaded, nil
	}
	r.mu.RUnlock()

	raw, err := os.ReadFile(desc.ManifestPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest for skill %s", desc.Name)
	}

	body := skills.ExtractBody(string(raw))
	resources, resourceOrder := skills.ResolveResources(body, desc.Directory)

	r.toolkit.CreateGroup(desc.Name, desc.Description, false)

	log := logger.G(ctx).WithField("skill", desc.Name)
	var toolNames []string
	for _, artifact := range extract.Artifacts(desc.Directory) {
		tools, err := extract.Tools(ctx, artifact, desc.Name)
		if err != nil {
			log.WithField("artifact", filepath.Base(artifact)).WithError(err).Warn("skipping artifact")
			continue
		}
		for _, tool := range tools {
			if err := r.toolkit.Register(tool); err != nil {
				log.WithField("tool", tool.Name).WithError(err).Warn("skipping tool")
				continue
			}
			toolNames = append(toolNames, tool.Name)
		}
	}

	loaded := &skills.LoadedSkill{
		Descriptor:    desc,
		Body:          body,
		Resources:     resources,
		ResourceOrder: resourceOrder,
		ToolNames:     toolNames,
	}

	log.WithField("tools", len(toolNames)).Info("loaded skill")

	r.mu.Lock()
	r.loaded[desc.Name] = loaded
	r.mu.Unlock()
	return loaded, nil
}

// Activate loads the skill if needed and turns its tool group on.
// Returns false, without raising, when the skill was never discovered
// or fails to load; callers must check the boolean.
func (r *Registry) Activate(ctx context.Context, name string) bool {
	if _, err := r.Load(ctx, name); err != nil {
		logger.G(ctx).WithField("skill", name).WithError(err).Warn("failed to activate skill")
		return false
	}
	return r.toolkit.SetGroupActive(name, true)
}

// Deactivate turns a loaded skill's tool group off. The skill stays
// loaded, so reactivating it is cheap. Returns false when the skill
// was never loaded.
func (r *Registry) Deactivate(name string) bool {
	r.mu.RLock()
	_, isLoaded := r.loaded[name]
	r.mu.RUnlock()

	if !isLoaded {
		return false
	}
	return r.toolkit.SetGroupActive(name, false)
}

// Active reports whether a skill's tool group is currently active.
func (r *Registry) Active(name string) bool {
	return r.toolkit.GroupActive(name)
}

// Loaded returns a loaded skill by name.
func (r *Registry) Loaded(name string) (*skills.LoadedSkill, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	loaded, ok := r.loaded[name]
	return loaded, ok
}

// Content renders a loaded skill's instruction content: the manifest
// body, optionally followed by its resolved resources in reference
// order.
func (r *Registry) Content(name string, includeResources bool) (string, error) {
	r.mu.RLock()
	_, found := r.discovered[name]
	loaded, isLoaded := r.loaded[name]
	r.mu.RUnlock()

	if !found && !isLoaded {
		return "", &skills.NotFoundError{Name: name}
	}
	if !isLoaded {
		return "", &skills.NotLoadedError{Name: name}
	}

	var sb strings.Builder
	sb.WriteString(loaded.Body)
	if includeResources && len(loaded.ResourceOrder) > 0 {
		sb.WriteString("\n\nAdditional Resources:\n")
		for _, ref := range loaded.ResourceOrder {
			sb.WriteString("\n## ")
			sb.WriteString(ref)
			sb.WriteString("\n")
			sb.WriteString(loaded.Resources[ref])
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

// Descriptors returns the discovered descriptors in discovery order.
func (r *Registry) Descriptors() []*skills.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*skills.Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.discovered[name])
	}
	return out
}

// Summary renders a one-line-per-skill listing of everything
// discovered, for inclusion in a system prompt.
func (r *Registry) Summary() string {
	descriptors := r.Descriptors()
	if len(descriptors) == 0 {
		return "No skills discovered."
	}

	var sb strings.Builder
	sb.WriteString("Available Skills:\n")
	for _, desc := range descriptors {
		sb.WriteString("- ")
		sb.WriteString(desc.Name)
		sb.WriteString(": ")
		sb.WriteString(desc.Description)
		sb.WriteString("\n")
	}
	return sb.String()
}
