// Package skills defines the skill manifest format and its parsing.
// A skill is a directory containing a SKILL.md file with YAML
// frontmatter describing the skill, optional reference documents, and
// optional Go code artifacts exposing callable tools. Parsing is pure:
// directory and path context is attached by the caller.
package skills

// ManifestFileName is the fixed manifest filename inside a skill directory.
const ManifestFileName = "SKILL.md"

// Descriptor is the validated metadata of a discovered skill. It is
// immutable once parsed; re-discovery replaces the whole descriptor
// rather than mutating it.
type Descriptor struct {
	Name         string   // Unique name from frontmatter
	Description  string   // Brief description for matching and display
	Directory    string   // Full path to the skill directory
	ManifestPath string   // Full path to SKILL.md
	Dependencies []string // Names of skills this skill builds on
	Version      string   // Defaults to "1.0.0"
	Author       string   // May be empty
}

// LoadedSkill is the fully loaded form of a skill: manifest body,
// resolved reference documents, and the names of the tools registered
// under the skill's tool group. Created on first load and cached for
// the registry's lifetime; deactivation does not unload it.
type LoadedSkill struct {
	Descriptor    *Descriptor
	Body          string            // Manifest text with frontmatter stripped
	Resources     map[string]string // Resolved reference documents
	ResourceOrder []string          // Resource keys in resolution order
	ToolNames     []string          // Tools registered under the skill's group
}
