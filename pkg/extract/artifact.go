// Package extract inspects a skill's Go code artifacts and yields
// callable tools. Discovery is static: the artifact is parsed with
// go/parser and a layered strategy chain decides which functions
// become tools. Invocation is dynamic: the artifact runs inside a
// yaegi interpreter, so skills ship plain Go source without being
// compiled into the host binary.
package extract

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// toolDirective marks a function as an explicitly declared tool:
//
//	//skillet:tool Count the words in a text
//	func CountWords(text string) int { ... }
//
// The description after the directive is optional.
const toolDirective = "skillet:tool"

// Param describes one parameter of a callable.
type Param struct {
	Name string
	Type string
}

// Callable is one top-level function declared in a code artifact.
type Callable struct {
	Name          string
	Doc           string // prose doc comment, directive lines excluded
	Directive     bool   // //skillet:tool present
	DirectiveDesc string
	Params        []Param
	Results       []string // declared result types, in order
}

// scanArtifact parses Go source and returns the package name and the
// top-level functions that are tool candidates. Methods, main, and
// init are never candidates.
func scanArtifact(src string) (string, []Callable, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "artifact.go", src, parser.ParseComments)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to parse artifact")
	}

	var callables []Callable
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil {
			continue
		}
		if fn.Name.Name == "main" || fn.Name.Name == "init" {
			continue
		}

		c := Callable{Name: fn.Name.Name}
		if fn.Doc != nil {
			for _, comment := range fn.Doc.List {
				text := strings.TrimSpace(strings.TrimPrefix(comment.Text, "//"))
				if strings.HasPrefix(text, toolDirective) {
					c.Directive = true
					c.DirectiveDesc = strings.TrimSpace(strings.TrimPrefix(text, toolDirective))
				}
			}
			// CommentGroup.Text drops directive lines, leaving the prose.
			c.Doc = strings.TrimSpace(fn.Doc.Text())
		}

		for _, field := range fn.Type.Params.List {
			typeName := types.ExprString(field.Type)
			if len(field.Names) == 0 {
				c.Params = append(c.Params, Param{
					Name: fmt.Sprintf("arg%d", len(c.Params)),
					Type: typeName,
				})
				continue
			}
			for _, name := range field.Names {
				c.Params = append(c.Params, Param{Name: snakeCase(name.Name), Type: typeName})
			}
		}

		if fn.Type.Results != nil {
			for _, field := range fn.Type.Results.List {
				typeName := types.ExprString(field.Type)
				n := len(field.Names)
				if n == 0 {
					n = 1
				}
				for i := 0; i < n; i++ {
					c.Results = append(c.Results, typeName)
				}
			}
		}

		callables = append(callables, c)
	}

	return file.Name.Name, callables, nil
}

// identifierWords splits a Go identifier into lower-cased words,
// handling both snake_case and CamelCase.
func identifierWords(name string) []string {
	var words []string
	for _, part := range strings.Split(name, "_") {
		var current strings.Builder
		for i, r := range part {
			if i > 0 && unicode.IsUpper(r) {
				words = append(words, strings.ToLower(current.String()))
				current.Reset()
			}
			current.WriteRune(r)
		}
		if current.Len() > 0 {
			words = append(words, strings.ToLower(current.String()))
		}
	}

	out := words[:0]
	for _, w := range words {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// snakeCase converts a Go identifier to its snake_case tool name.
func snakeCase(name string) string {
	return strings.Join(identifierWords(name), "_")
}
