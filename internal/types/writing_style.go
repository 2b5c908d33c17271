// Package types provides type definitions for structured data used throughout the style-transfer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// FewShotExample is an input/output pair demonstrating a style on a topic.
type FewShotExample struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// WritingStyle is an explicit style descriptor. StyleRules and
// FewShotExamples may start empty; the enrichment step is responsible for
// backfilling them from reference documents.
type WritingStyle struct {
	Tone              string           `json:"tone" validate:"required"`
	FormalityLevel    int              `json:"formality_level" validate:"min=1,max=10"`
	SentenceStructure string           `json:"sentence_structure"`
	VocabularyLevel   string           `json:"vocabulary_level"`
	PersonalityTraits []string         `json:"personality_traits,omitempty"`
	WritingPatterns   map[string]any   `json:"writing_patterns,omitempty"`
	StyleRules        []string         `json:"style_rules,omitempty"`
	FewShotExamples   []FewShotExample `json:"few_shot_examples,omitempty"`
}

// Validate checks the style's structural invariants.
func (w *WritingStyle) Validate() error {
	if err := validator.New().Struct(w); err != nil {
		return &InvalidInputError{
			Entity:  "WritingStyle",
			Message: "formality_level must be between 1 and 10 and tone is required",
			Cause:   err,
		}
	}
	return nil
}

// DefaultWritingStyle returns the neutral style used when a reference style
// has documents but no explicit definition.
func DefaultWritingStyle() *WritingStyle {
	return &WritingStyle{
		Tone:              "neutral",
		FormalityLevel:    5,
		SentenceStructure: "varied",
		VocabularyLevel:   "moderate",
		PersonalityTraits: []string{},
		WritingPatterns:   map[string]any{},
	}
}

// Clone returns a deep copy of the style.
func (w *WritingStyle) Clone() *WritingStyle {
	if w == nil {
		return nil
	}
	clone := *w
	clone.PersonalityTraits = append([]string(nil), w.PersonalityTraits...)
	clone.StyleRules = append([]string(nil), w.StyleRules...)
	clone.FewShotExamples = append([]FewShotExample(nil), w.FewShotExamples...)
	if w.WritingPatterns != nil {
		clone.WritingPatterns = make(map[string]any, len(w.WritingPatterns))
		for k, v := range w.WritingPatterns {
			clone.WritingPatterns[k] = v
		}
	}
	return &clone
}

// WithStyleRules returns a copy of the style with the given rules.
func (w *WritingStyle) WithStyleRules(rules []string) *WritingStyle {
	clone := w.Clone()
	clone.StyleRules = append([]string(nil), rules...)
	return clone
}

// WithFewShotExamples returns a copy of the style with the given examples.
func (w *WritingStyle) WithFewShotExamples(examples []FewShotExample) *WritingStyle {
	clone := w.Clone()
	clone.FewShotExamples = append([]FewShotExample(nil), examples...)
	return clone
}
