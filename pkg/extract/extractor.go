package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/skillet-ai/skillet/pkg/logger"
	"github.com/skillet-ai/skillet/pkg/toolkit"
)

// Artifacts lists the Go code artifacts of a skill directory: .go
// files at the root and under scripts/, tests excluded.
func Artifacts(skillDir string) []string {
	var files []string
	for _, pattern := range []string{"*.go", filepath.Join("scripts", "*.go")} {
		matches, err := filepath.Glob(filepath.Join(skillDir, pattern))
		if err != nil {
			continue
		}
		for _, m := range matches {
			if strings.HasSuffix(m, "_test.go") {
				continue
			}
			files = append(files, m)
		}
	}
	return files
}

// Tools extracts the callable tools of one artifact. The artifact is
// parsed, evaluated in its own interpreter, and each top-level
// function runs through the strategy chain; unclaimed functions are
// skipped. Any parse or evaluation failure fails the whole artifact.
func Tools(ctx context.Context, artifactPath, groupName string) ([]*toolkit.Tool, error) {
	src, err := os.ReadFile(artifactPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read artifact %s", artifactPath)
	}

	pkgName, callables, err := scanArtifact(string(src))
	if err != nil {
		return nil, err
	}

	prog, err := loadProgram(pkgName, string(src))
	if err != nil {
		return nil, err
	}

	log := logger.G(ctx).WithField("artifact", filepath.Base(artifactPath))
	var tools []*toolkit.Tool
	for _, c := range callables {
		description, strategyName, ok := describe(&c)
		if !ok {
			continue
		}

		params := make([]Param, len(c.Params))
		copy(params, c.Params)
		funcName := c.Name

		log.WithFields(logrus.Fields{
			"tool":     snakeCase(funcName),
			"strategy": strategyName,
		}).Debug("discovered tool")

		tools = append(tools, &toolkit.Tool{
			Name:        snakeCase(funcName),
			GroupName:   groupName,
			Description: description,
			Strategy:    strategyName,
			InputSchema: inputSchema(params),
			Invoke: func(ctx context.Context, args map[string]any) (any, error) {
				return prog.call(funcName, params, args)
			},
		})
	}

	return tools, nil
}

// inputSchema builds the JSON schema for a callable's parameters. All
// parameters are required; their JSON types are derived from the Go
// parameter types.
func inputSchema(params []Param) *jsonschema.Schema {
	properties := jsonschema.NewProperties()
	required := make([]string, 0, len(params))
	for _, p := range params {
		properties.Set(p.Name, &jsonschema.Schema{Type: jsonType(p.Type)})
		required = append(required, p.Name)
	}

	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           properties,
		Required:             required,
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

func jsonType(goType string) string {
	switch {
	case goType == "string":
		return "string"
	case goType == "bool":
		return "boolean"
	case strings.HasPrefix(goType, "int") || strings.HasPrefix(goType, "uint"):
		return "integer"
	case strings.HasPrefix(goType, "float"):
		return "number"
	case strings.HasPrefix(goType, "[]"):
		return "array"
	case strings.HasPrefix(goType, "map["):
		return "object"
	default:
		return "string"
	}
}
