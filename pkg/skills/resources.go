package skills

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

var (
	// [link text](reference.md), keyed without the .md extension
	linkRefPattern = regexp.MustCompile(`\[[^\]]+\]\(([^)]+)\.md\)`)
	// @include(any-file.txt), an arbitrary filename relative to the skill dir
	includePattern = regexp.MustCompile(`@include\(([^)]+)\)`)
)

type resourceRef struct {
	key  string // resource identifier
	file string // filename relative to the skill directory
	pos  int    // byte offset of the reference in the body
}

// ResolveResources expands resource references in a skill body into
// their file contents, one level deep. Two forms are recognized:
// markdown links to local .md documents and @include directives naming
// arbitrary files relative to skillDir. Missing files are silently
// skipped since skill authors may reference optional documentation.
//
// The returned order slice lists resource keys by first appearance in
// the body; duplicate references collapse into a single entry.
func ResolveResources(body, skillDir string) (map[string]string, []string) {
	var refs []resourceRef

	for _, m := range linkRefPattern.FindAllStringSubmatchIndex(body, -1) {
		name := body[m[2]:m[3]]
		refs = append(refs, resourceRef{key: name, file: name + ".md", pos: m[0]})
	}
	for _, m := range includePattern.FindAllStringSubmatchIndex(body, -1) {
		name := body[m[2]:m[3]]
		refs = append(refs, resourceRef{key: name, file: name, pos: m[0]})
	}

	sort.SliceStable(refs, func(i, j int) bool { return refs[i].pos < refs[j].pos })

	resources := make(map[string]string)
	var order []string

	for _, ref := range refs {
		if _, seen := resources[ref.key]; seen {
			continue
		}

		content, err := os.ReadFile(filepath.Join(skillDir, ref.file))
		if err != nil {
			continue
		}

		resources[ref.key] = string(content)
		order = append(order, ref.key)
	}

	return resources, order
}
