// Package toolkit manages callable tools organized into named groups,
// one group per skill. Groups toggle between active and inactive;
// only tools of active groups are exposed to the model. Registration
// is first-wins: a name collision skips the later tool.
package toolkit

import (
	"context"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Invoker executes a tool with named arguments and returns a raw
// result. Results are normalized by the invocation wrapper; returning
// an error or panicking is safe.
type Invoker func(ctx context.Context, args map[string]any) (any, error)

// Tool describes one callable registered under a tool group.
type Tool struct {
	Name        string
	GroupName   string // owning skill name
	Description string
	Strategy    string // discovery strategy that produced it, diagnostics only
	InputSchema *jsonschema.Schema
	Invoke      Invoker
}

// Response is the normalized result of a tool invocation.
type Response struct {
	Content string
	IsError bool
}

// TextResponse wraps plain text in a Response.
func TextResponse(content string) *Response {
	return &Response{Content: content}
}

// ErrorResponse wraps an error message in a Response.
func ErrorResponse(format string, args ...any) *Response {
	return &Response{Content: fmt.Sprintf(format, args...), IsError: true}
}

// normalize converts an arbitrary tool result into a Response: text
// passes through, a Response passes through unchanged, anything else
// is coerced to its textual representation.
func normalize(result any) *Response {
	switch v := result.(type) {
	case string:
		return TextResponse(v)
	case *Response:
		return v
	case Response:
		return &v
	default:
		return TextResponse(fmt.Sprintf("%v", v))
	}
}

// GenerateSchema builds the JSON schema for a struct-typed tool input.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T

	return reflector.Reflect(v)
}
