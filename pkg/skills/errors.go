package skills

import "fmt"

// FormatError indicates a manifest that is structurally malformed:
// the frontmatter block is missing or its delimiters are broken.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return e.Reason
}

// ParseError indicates the frontmatter block is present but is not
// valid YAML. It wraps the underlying parser failure.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid YAML in frontmatter: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ValidationError indicates a required frontmatter field is missing
// or empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required frontmatter field %q", e.Field)
}

// NotFoundError indicates an operation referenced a skill name that
// was never discovered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("skill %q not found in discovered skills", e.Name)
}

// NotLoadedError indicates content was requested for a skill before
// it was loaded.
type NotLoadedError struct {
	Name string
}

func (e *NotLoadedError) Error() string {
	return fmt.Sprintf("skill %q not loaded", e.Name)
}
