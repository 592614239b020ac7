package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillet-ai/skillet/pkg/toolkit"
)

const sampleArtifact = `package skilltools

import (
	"strconv"
	"strings"
)

//skillet:tool Count the words in a text
func CountWords(text string) int {
	return len(strings.Fields(text))
}

//skillet:tool Make a report
func GenerateReport() string {
	return "report"
}

// ExtractTitle returns the first line of the text.
func ExtractTitle(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return line
}

// Summarize is a tool: it keeps the first n characters of the text.
func Summarize(text string, n int) string {
	if n >= len(text) {
		return text
	}
	return text[:n]
}

func ReverseText(text string) string {
	runes := []rune(text)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// ParseNumber reads a decimal integer.
func ParseNumber(raw string) (int, error) {
	return strconv.Atoi(raw)
}

func helper(a int) {
	_ = a
}
`

func writeArtifact(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tools.go")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func extractSample(t *testing.T) map[string]*toolkit.Tool {
	t.Helper()
	tools, err := Tools(context.Background(), writeArtifact(t, sampleArtifact), "sample")
	require.NoError(t, err)

	byName := make(map[string]*toolkit.Tool, len(tools))
	for _, tool := range tools {
		byName[tool.Name] = tool
	}
	return byName
}

func TestToolsStrategySelection(t *testing.T) {
	byName := extractSample(t)

	require.Len(t, byName, 6)
	assert.NotContains(t, byName, "helper")

	assert.Equal(t, "explicit", byName["count_words"].Strategy)
	assert.Equal(t, "Count the words in a text", byName["count_words"].Description)

	assert.Equal(t, "explicit", byName["generate_report"].Strategy)
	assert.Equal(t, "Make a report", byName["generate_report"].Description)

	// The name verb claims before the doc comment does.
	assert.Equal(t, "naming", byName["extract_title"].Strategy)
	assert.Equal(t, "Extract title", byName["extract_title"].Description)

	assert.Equal(t, "naming", byName["parse_number"].Strategy)
	assert.Equal(t, "Parse number", byName["parse_number"].Description)

	assert.Equal(t, "doc", byName["summarize"].Strategy)
	assert.Equal(t, "Summarize is a tool: it keeps the first n characters of the text.", byName["summarize"].Description)

	assert.Equal(t, "signature", byName["reverse_text"].Strategy)
	assert.Equal(t, "Reverse Text(text: string) -> string", byName["reverse_text"].Description)
}

func TestToolsInputSchema(t *testing.T) {
	byName := extractSample(t)

	schema := byName["summarize"].InputSchema
	require.NotNil(t, schema)
	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"text", "n"}, schema.Required)

	text, ok := schema.Properties.Get("text")
	require.True(t, ok)
	assert.Equal(t, "string", text.Type)

	n, ok := schema.Properties.Get("n")
	require.True(t, ok)
	assert.Equal(t, "integer", n.Type)

	assert.Empty(t, byName["generate_report"].InputSchema.Required)
}

func TestToolsInvocation(t *testing.T) {
	byName := extractSample(t)
	ctx := context.Background()

	result, err := byName["count_words"].Invoke(ctx, map[string]any{"text": "one two three"})
	require.NoError(t, err)
	assert.Equal(t, 3, result)

	result, err = byName["generate_report"].Invoke(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "report", result)

	result, err = byName["reverse_text"].Invoke(ctx, map[string]any{"text": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "cba", result)

	// JSON numbers decode as float64 and must reach int parameters.
	result, err = byName["summarize"].Invoke(ctx, map[string]any{"text": "hello world", "n": float64(5)})
	require.NoError(t, err)
	assert.Equal(t, "hello", result)
}

func TestToolsInvocationError(t *testing.T) {
	byName := extractSample(t)
	ctx := context.Background()

	result, err := byName["parse_number"].Invoke(ctx, map[string]any{"raw": "41"})
	require.NoError(t, err)
	assert.Equal(t, 41, result)

	_, err = byName["parse_number"].Invoke(ctx, map[string]any{"raw": "not a number"})
	assert.Error(t, err)
}

func TestToolsRejectsInvalidSource(t *testing.T) {
	_, err := Tools(context.Background(), writeArtifact(t, "package broken\nfunc ("), "broken")
	assert.Error(t, err)
}

func TestArtifactsListing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	for _, name := range []string{"a.go", "a_test.go", "notes.md", filepath.Join("scripts", "b.go")} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("package x\n"), 0o644))
	}

	files := Artifacts(dir)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.go"),
		filepath.Join(dir, "scripts", "b.go"),
	}, files)
}

func TestIdentifierWords(t *testing.T) {
	assert.Equal(t, []string{"extract", "invoice", "total"}, identifierWords("ExtractInvoiceTotal"))
	assert.Equal(t, []string{"parse", "csv"}, identifierWords("parse_csv"))
	assert.Equal(t, "extract_invoice_total", snakeCase("ExtractInvoiceTotal"))
}
