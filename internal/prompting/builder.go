// Package prompting linearizes a style transfer request into a single
// generation instruction. The builder is a pure function: identical inputs
// yield byte-identical prompts, and it performs no I/O.
package prompting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/style-transfer/internal/prompts"
	"github.com/jonathan/style-transfer/internal/schemas"
	"github.com/jonathan/style-transfer/internal/types"
)

// SystemInstruction returns the fixed system instruction sent with every
// generation call.
func SystemInstruction() string {
	return prompts.MustGet("generation.json", "system-instruction")
}

// BuildGenerationPrompt serializes already-enriched reference styles, target
// documents, intent/focus, and output-format guidance into one instruction
// string.
func BuildGenerationPrompt(outputSchema types.OutputSchema, referenceStyles []types.ReferenceStyle, intent, focus string, targetDocs []types.Document) string {
	intentText := intent
	if intentText == "" {
		intentText = "Not specified"
	}

	template := prompts.MustGet("generation.json", "style-transfer")
	return prompts.Format(template, map[string]string{
		"StyleInfo":  formatStyleInformation(referenceStyles),
		"TargetInfo": formatTargetInformation(targetDocs),
		"Intent":     intentText,
		"Focus":      focus,
		"Guidance":   formatGuidance(outputSchema),
	})
}

// formatStyleInformation renders the reference-style block.
func formatStyleInformation(referenceStyles []types.ReferenceStyle) string {
	var lines []string

	for i, ref := range referenceStyles {
		lines = append(lines, fmt.Sprintf("### Reference Style %d: %s", i+1, ref.Name))

		if ref.Description != "" {
			lines = append(lines, "Description: "+ref.Description)
		}

		if style := ref.StyleDefinition; style != nil {
			lines = append(lines, "Tone: "+style.Tone)
			lines = append(lines, fmt.Sprintf("Formality Level: %d/10", style.FormalityLevel))
			lines = append(lines, "Sentence Structure: "+style.SentenceStructure)
			lines = append(lines, "Vocabulary Level: "+style.VocabularyLevel)

			if len(style.PersonalityTraits) > 0 {
				lines = append(lines, "Personality Traits: "+strings.Join(style.PersonalityTraits, ", "))
			}

			if len(style.WritingPatterns) > 0 {
				lines = append(lines, "Writing Patterns:")
				for _, key := range sortedKeys(style.WritingPatterns) {
					lines = append(lines, fmt.Sprintf("  - %s: %v", key, style.WritingPatterns[key]))
				}
			}

			if len(style.StyleRules) > 0 {
				lines = append(lines, "Style Rules:")
				for _, rule := range style.StyleRules {
					lines = append(lines, "  - "+rule)
				}
			}

			if len(style.FewShotExamples) > 0 {
				lines = append(lines, "Examples:")
				for j, example := range style.FewShotExamples {
					lines = append(lines, fmt.Sprintf("  Example %d:", j+1))
					lines = append(lines, "    Input: "+example.Input)
					lines = append(lines, "    Output: "+example.Output)
					lines = append(lines, "")
				}
			}
		}

		if len(ref.Documents) > 0 {
			lines = append(lines, fmt.Sprintf("Reference Documents: %d documents", len(ref.Documents)))
			for _, doc := range ref.Documents {
				title := doc.Title
				if title == "" {
					title = "Untitled"
				}
				lines = append(lines, fmt.Sprintf("  - %s (%s)", title, doc.Type))
			}
		}

		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// formatTargetInformation renders the target-content block.
func formatTargetInformation(targetDocs []types.Document) string {
	var lines []string

	for i, doc := range targetDocs {
		title := doc.Title
		if title == "" {
			title = "Untitled"
		}
		author := doc.Author
		if author == "" {
			author = "Unknown"
		}

		lines = append(lines, fmt.Sprintf("### Target Document %d", i+1))
		lines = append(lines, "Title: "+title)
		lines = append(lines, "Type: "+string(doc.Type))
		lines = append(lines, "Category: "+string(doc.Category))
		lines = append(lines, "Author: "+author)

		if doc.DatePublished != nil {
			lines = append(lines, "Date: "+doc.DatePublished.Format("2006-01-02"))
		}

		if len(doc.Metadata) > 0 {
			lines = append(lines, "Metadata:")
			for _, key := range sortedKeys(doc.Metadata) {
				lines = append(lines, fmt.Sprintf("  - %s: %v", key, doc.Metadata[key]))
			}
		}

		if doc.Content != "" {
			lines = append(lines, "Content:")
			lines = append(lines, doc.Content)
		}

		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// formatGuidance renders the platform guidance plus any numeric length
// bounds from the schema.
func formatGuidance(outputSchema types.OutputSchema) string {
	guidance := schemas.Guidance(outputSchema.OutputType)

	var bounds []string
	if outputSchema.MaxLength > 0 {
		bounds = append(bounds, fmt.Sprintf("Maximum length: %d", outputSchema.MaxLength))
	}
	if outputSchema.MinLength > 0 {
		bounds = append(bounds, fmt.Sprintf("Minimum length: %d", outputSchema.MinLength))
	}
	if len(bounds) > 0 {
		guidance += "\n" + strings.Join(bounds, "\n")
	}
	return guidance
}

// sortedKeys returns map keys in a stable order so prompt output is
// deterministic.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
