package skills

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

const frontmatterDelimiter = "---"

// ParseManifest parses manifest text into a validated Descriptor.
// The text must begin with a YAML frontmatter block delimited by "---"
// on its own line. The caller attaches Directory and ManifestPath.
//
// Failure modes: *FormatError when the delimiters are missing or
// broken, *ParseError when the frontmatter is not valid YAML, and
// *ValidationError when name or description is missing.
func ParseManifest(text string) (*Descriptor, error) {
	if !strings.HasPrefix(text, frontmatterDelimiter) {
		return nil, &FormatError{Reason: "manifest must start with YAML frontmatter"}
	}
	if frontmatterEnd(text) == -1 {
		return nil, &FormatError{Reason: "malformed front matter: missing closing delimiter"}
	}

	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert([]byte(text), &buf, parser.WithContext(pctx)); err != nil {
		return nil, &ParseError{Cause: err}
	}

	metadata, err := meta.TryGet(pctx)
	if err != nil {
		return nil, &ParseError{Cause: err}
	}

	name, _ := metadata["name"].(string)
	if name == "" {
		return nil, &ValidationError{Field: "name"}
	}
	description, _ := metadata["description"].(string)
	if description == "" {
		return nil, &ValidationError{Field: "description"}
	}

	version, _ := metadata["version"].(string)
	if version == "" {
		version = "1.0.0"
	}
	author, _ := metadata["author"].(string)

	return &Descriptor{
		Name:         name,
		Description:  description,
		Dependencies: stringList(metadata["dependencies"]),
		Version:      version,
		Author:       author,
	}, nil
}

// ExtractBody returns everything after the closing frontmatter
// delimiter, trimmed. Text without frontmatter is returned unchanged,
// which keeps re-reading of already-loaded content tolerant.
func ExtractBody(text string) string {
	if !strings.HasPrefix(text, frontmatterDelimiter) {
		return text
	}

	end := frontmatterEnd(text)
	if end == -1 {
		return text
	}

	lines := strings.Split(text, "\n")
	return strings.TrimSpace(strings.Join(lines[end+1:], "\n"))
}

// frontmatterEnd returns the line index of the closing delimiter, or
// -1 when the frontmatter block is never closed.
func frontmatterEnd(text string) int {
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterDelimiter {
			return i
		}
	}
	return -1
}

func stringList(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
