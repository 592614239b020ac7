package extract

import (
	"fmt"
	"strings"
)

// toolVerbs are the action words the naming and doc strategies look
// for. A function whose name contains one of these is assumed to do
// something a model may want to call.
var toolVerbs = []string{
	"extract", "analyze", "process", "convert", "create", "generate",
	"check", "get", "parse", "transform", "validate", "search",
}

// docIndicators extend the verbs with phrases that mark a doc comment
// as describing a callable.
var docIndicators = append([]string{"tool:", "function:", "method:"}, toolVerbs...)

// primitiveReturns are the result types the signature strategy
// accepts. Slices and maps are handled by prefix.
var primitiveReturns = map[string]bool{
	"string": true, "bool": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"float32": true, "float64": true,
}

// strategy decides whether a callable becomes a tool and, if so,
// supplies its description.
type strategy interface {
	name() string
	claim(c *Callable) (description string, ok bool)
}

// strategies in precedence order. The first strategy to claim a
// callable wins; later strategies never see it.
var strategies = []strategy{
	explicitStrategy{},
	namingStrategy{},
	docStrategy{},
	signatureStrategy{},
}

// explicitStrategy claims callables carrying the //skillet:tool
// directive. Description preference: directive text, then the doc
// comment, then the title-cased function name.
type explicitStrategy struct{}

func (explicitStrategy) name() string { return "explicit" }

func (explicitStrategy) claim(c *Callable) (string, bool) {
	if !c.Directive {
		return "", false
	}
	if c.DirectiveDesc != "" {
		return c.DirectiveDesc, true
	}
	if c.Doc != "" {
		return c.Doc, true
	}
	return titleWords(identifierWords(c.Name)), true
}

// namingStrategy claims callables whose name contains a tool verb and
// generates a description from the name itself, so ExtractInvoiceTotal
// becomes "Extract invoice total".
type namingStrategy struct{}

func (namingStrategy) name() string { return "naming" }

func (namingStrategy) claim(c *Callable) (string, bool) {
	words := identifierWords(c.Name)
	if !containsVerb(words) {
		return "", false
	}
	if len(words) >= 2 && isVerb(words[0]) {
		return capitalize(words[0]) + " " + strings.Join(words[1:], " "), true
	}
	return titleWords(words), true
}

// docStrategy claims callables whose doc comment mentions a verb or an
// explicit indicator phrase, and uses the doc comment verbatim.
type docStrategy struct{}

func (docStrategy) name() string { return "doc" }

func (docStrategy) claim(c *Callable) (string, bool) {
	if c.Doc == "" {
		return "", false
	}
	lowered := strings.ToLower(c.Doc)
	for _, indicator := range docIndicators {
		if strings.Contains(lowered, indicator) {
			return c.Doc, true
		}
	}
	return "", false
}

// signatureStrategy is the fallback for undocumented callables that
// return a primitive, slice, or map. The description is synthesized
// from the signature, so ReverseText(text string) string becomes
// "Reverse Text(text: string) -> string".
type signatureStrategy struct{}

func (signatureStrategy) name() string { return "signature" }

func (signatureStrategy) claim(c *Callable) (string, bool) {
	if c.Doc != "" || len(c.Results) == 0 {
		return "", false
	}
	ret := c.Results[0]
	if !primitiveReturns[ret] && !strings.HasPrefix(ret, "[]") && !strings.HasPrefix(ret, "map[") {
		return "", false
	}

	params := make([]string, len(c.Params))
	for i, p := range c.Params {
		params[i] = p.Name + ": " + p.Type
	}
	return fmt.Sprintf("%s(%s) -> %s", titleWords(identifierWords(c.Name)), strings.Join(params, ", "), ret), true
}

// describe runs the strategy chain over one callable.
func describe(c *Callable) (description, strategyName string, ok bool) {
	for _, s := range strategies {
		if d, claimed := s.claim(c); claimed {
			return d, s.name(), true
		}
	}
	return "", "", false
}

func isVerb(word string) bool {
	for _, v := range toolVerbs {
		if word == v {
			return true
		}
	}
	return false
}

func containsVerb(words []string) bool {
	for _, w := range words {
		if isVerb(w) {
			return true
		}
	}
	return false
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

func titleWords(words []string) string {
	titled := make([]string, len(words))
	for i, w := range words {
		titled[i] = capitalize(w)
	}
	return strings.Join(titled, " ")
}
