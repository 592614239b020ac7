package toolkit

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/skillet-ai/skillet/pkg/logger"
)

type group struct {
	name        string
	description string
	active      bool
	tools       []string // registration order
}

// Toolkit holds tool groups and a flat invocation namespace. All
// mutation happens under one lock so that collision checking and
// registration form a single critical section.
type Toolkit struct {
	mu         sync.RWMutex
	groups     map[string]*group
	groupOrder []string
	tools      map[string]*Tool
}

// New creates an empty Toolkit.
func New() *Toolkit {
	return &Toolkit{
		groups: make(map[string]*group),
		tools:  make(map[string]*Tool),
	}
}

// CreateGroup creates a tool group. Creating an existing group is a
// no-op so that idempotent skill loads stay cheap.
func (tk *Toolkit) CreateGroup(name, description string, active bool) {
	tk.mu.Lock()
	defer tk.mu.Unlock()

	if _, exists := tk.groups[name]; exists {
		return
	}

	tk.groups[name] = &group{
		name:        name,
		description: description,
		active:      active,
	}
	tk.groupOrder = append(tk.groupOrder, name)
}

// Register adds a tool to its group. The collision check and the
// insertion are one critical section; a tool name that already exists
// anywhere in the toolkit is rejected and the first registration
// stands.
func (tk *Toolkit) Register(tool *Tool) error {
	tk.mu.Lock()
	defer tk.mu.Unlock()

	g, exists := tk.groups[tool.GroupName]
	if !exists {
		return errors.Errorf("tool group %q does not exist", tool.GroupName)
	}

	if _, exists := tk.tools[tool.Name]; exists {
		return errors.Errorf("tool %q already registered", tool.Name)
	}

	tk.tools[tool.Name] = tool
	g.tools = append(g.tools, tool.Name)
	return nil
}

// SetGroupActive toggles a group's active state. Returns false when
// the group does not exist.
func (tk *Toolkit) SetGroupActive(name string, active bool) bool {
	tk.mu.Lock()
	defer tk.mu.Unlock()

	g, exists := tk.groups[name]
	if !exists {
		return false
	}

	g.active = active
	return true
}

// GroupActive reports whether a group exists and is active.
func (tk *Toolkit) GroupActive(name string) bool {
	tk.mu.RLock()
	defer tk.mu.RUnlock()

	g, exists := tk.groups[name]
	return exists && g.active
}

// GroupTools returns the tool names of a group in registration order.
func (tk *Toolkit) GroupTools(name string) []string {
	tk.mu.RLock()
	defer tk.mu.RUnlock()

	g, exists := tk.groups[name]
	if !exists {
		return nil
	}

	out := make([]string, len(g.tools))
	copy(out, g.tools)
	return out
}

// ActiveTools returns every tool belonging to an active group, in
// group creation order then registration order.
func (tk *Toolkit) ActiveTools() []*Tool {
	tk.mu.RLock()
	defer tk.mu.RUnlock()

	var out []*Tool
	for _, groupName := range tk.groupOrder {
		g := tk.groups[groupName]
		if !g.active {
			continue
		}
		for _, toolName := range g.tools {
			out = append(out, tk.tools[toolName])
		}
	}
	return out
}

// Tool looks up a registered tool by name.
func (tk *Toolkit) Tool(name string) (*Tool, bool) {
	tk.mu.RLock()
	defer tk.mu.RUnlock()

	tool, ok := tk.tools[name]
	return tool, ok
}

// Invoke runs a tool by name and normalizes the outcome. Unknown and
// inactive tools yield error responses; a tool that returns an error
// or panics yields a textual error response. Invocation never
// propagates a failure to the caller.
func (tk *Toolkit) Invoke(ctx context.Context, name string, args map[string]any) (resp *Response) {
	tk.mu.RLock()
	tool, ok := tk.tools[name]
	var active bool
	if ok {
		active = tk.groups[tool.GroupName].active
	}
	tk.mu.RUnlock()

	if !ok {
		return ErrorResponse("tool %q is not registered", name)
	}
	if !active {
		return ErrorResponse("tool %q belongs to inactive skill %q", name, tool.GroupName)
	}

	defer func() {
		if r := recover(); r != nil {
			logger.G(ctx).WithField("tool", name).Errorf("tool panicked: %v", r)
			resp = ErrorResponse("Error executing %s: %v", name, r)
		}
	}()

	result, err := tool.Invoke(ctx, args)
	if err != nil {
		logger.G(ctx).WithField("tool", name).WithError(err).Error("tool execution failed")
		return ErrorResponse("Error executing %s: %v", name, err)
	}

	return normalize(result)
}
