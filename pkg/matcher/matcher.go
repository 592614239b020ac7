// Package matcher scores discovered skills against a free-text task
// description. The default scorer is keyword-based; semantic matching
// can be plugged in through the Scorer interface.
package matcher

import (
	"strings"

	"github.com/skillet-ai/skillet/pkg/skills"
)

// DefaultThreshold is the minimum score for a skill to be considered
// relevant to a task.
const DefaultThreshold = 0.7

// Scorer computes how relevant a skill is to a task description,
// returning a value in [0, 1].
type Scorer interface {
	Score(task string, desc *skills.Descriptor) float64
}

// Matcher selects relevant skills from a descriptor list. Output is
// deterministic: descriptor iteration order is preserved and ties are
// not broken further.
type Matcher struct {
	scorer    Scorer
	threshold float64
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithThreshold overrides the relevance threshold.
func WithThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.threshold = threshold
	}
}

// WithScorer replaces the default keyword scorer.
func WithScorer(scorer Scorer) Option {
	return func(m *Matcher) {
		m.scorer = scorer
	}
}

// New creates a Matcher with the keyword scorer and default threshold.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		scorer:    KeywordScorer{},
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match returns the names of skills relevant to the task, in
// descriptor order.
func (m *Matcher) Match(task string, descriptors []*skills.Descriptor) []string {
	var matched []string
	for _, desc := range descriptors {
		if m.scorer.Score(task, desc) >= m.threshold {
			matched = append(matched, desc.Name)
		}
	}
	return matched
}

// KeywordScorer matches by exact name mention or by word overlap
// between the task text and the skill description.
type KeywordScorer struct{}

// Score returns 1 when the skill name appears in the task text, the
// overlap ratio |descriptionWords ∩ taskWords| / |descriptionWords|
// otherwise, and 0 for an empty description (a skill with no
// description can only match by name).
func (KeywordScorer) Score(task string, desc *skills.Descriptor) float64 {
	taskLower := strings.ToLower(task)

	if strings.Contains(taskLower, strings.ToLower(desc.Name)) {
		return 1
	}

	descWords := wordSet(strings.ToLower(desc.Description))
	if len(descWords) == 0 {
		return 0
	}

	taskWords := wordSet(taskLower)
	overlap := 0
	for word := range descWords {
		if taskWords[word] {
			overlap++
		}
	}

	return float64(overlap) / float64(len(descWords))
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(text) {
		set[word] = true
	}
	return set
}
