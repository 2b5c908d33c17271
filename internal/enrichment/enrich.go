// Package enrichment backfills missing style attributes on reference styles
// by analyzing their attached documents with the LLM.
package enrichment

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/style-transfer/internal/llm"
	"github.com/jonathan/style-transfer/internal/prompts"
	"github.com/jonathan/style-transfer/internal/types"
)

const (
	// ruleExcerptChars is how much of each document feeds rule inference.
	ruleExcerptChars = 300
	// exampleExcerptChars is how much of each document feeds example inference.
	exampleExcerptChars = 500
	// fallbackOutputChars bounds the synthetic example output.
	fallbackOutputChars = 200
)

// EnrichReferenceStyles returns an equivalent list of reference styles where
// every style with documents carries a style definition with non-empty
// style_rules and few_shot_examples. The input styles are never mutated:
// enrichment operates on deep copies. Inference failures degrade to weaker
// output (empty rules, synthetic examples) rather than erroring.
func EnrichReferenceStyles(ctx context.Context, client llm.Client, referenceStyles []types.ReferenceStyle) []types.ReferenceStyle {
	enriched := make([]types.ReferenceStyle, 0, len(referenceStyles))

	for i := range referenceStyles {
		enriched = append(enriched, *enrichOne(ctx, client, &referenceStyles[i]))
	}

	return enriched
}

func enrichOne(ctx context.Context, client llm.Client, ref *types.ReferenceStyle) *types.ReferenceStyle {
	clone := ref.Clone()

	// Nothing to infer from without documents.
	if len(clone.Documents) == 0 {
		return clone
	}

	style := clone.StyleDefinition
	if style == nil {
		style = types.DefaultWritingStyle()
	}

	if len(style.StyleRules) == 0 {
		style = style.WithStyleRules(InferStyleRules(ctx, client, clone.Documents))
	}
	if len(style.FewShotExamples) == 0 {
		style = style.WithFewShotExamples(InferFewShotExamples(ctx, client, clone.Documents))
	}
	clone.StyleDefinition = style

	return clone
}

// InferStyleRules derives 3-5 actionable style rules from the documents.
// Documents lacking both title and content contribute nothing; if no
// document qualifies, or the inference call fails, the result is an empty
// list rather than an error.
func InferStyleRules(ctx context.Context, client llm.Client, documents []types.Document) []string {
	var blobs []string
	for _, doc := range documents {
		if doc.Title == "" || doc.Content == "" {
			continue
		}
		blobs = append(blobs, fmt.Sprintf("Title: %s\nContent: %s", doc.Title, excerpt(doc.Content, ruleExcerptChars)))
	}
	if len(blobs) == 0 {
		return []string{}
	}

	template := prompts.MustGet("enrichment.json", "infer-style-rules")
	prompt := prompts.Format(template, map[string]string{
		"Documents": strings.Join(blobs, "\n\n"),
	})

	response, err := client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return []string{}
	}

	return parseBulletedRules(response)
}

// InferFewShotExamples derives one input/output example per document. A
// per-document inference or parse failure falls back to a synthetic pair
// built from the document itself, so no document is dropped.
func InferFewShotExamples(ctx context.Context, client llm.Client, documents []types.Document) []types.FewShotExample {
	var examples []types.FewShotExample

	for _, doc := range documents {
		if doc.Title == "" || doc.Content == "" {
			continue
		}

		example, err := inferExampleFromDocument(ctx, client, doc)
		if err != nil {
			example = syntheticExample(doc)
		}
		examples = append(examples, example)
	}

	return examples
}

func inferExampleFromDocument(ctx context.Context, client llm.Client, doc types.Document) (types.FewShotExample, error) {
	template := prompts.MustGet("enrichment.json", "infer-few-shot-example")
	prompt := prompts.Format(template, map[string]string{
		"Title":   doc.Title,
		"Content": excerpt(doc.Content, exampleExcerptChars),
	})

	response, err := client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return types.FewShotExample{}, &APICallError{
			Message: fmt.Sprintf("example inference failed for document %q", doc.Title),
			Cause:   err,
		}
	}

	return parseExampleResponse(response)
}

// parseBulletedRules extracts lines beginning with a bullet marker.
func parseBulletedRules(response string) []string {
	rules := []string{}
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		var rule string
		switch {
		case strings.HasPrefix(line, "- "):
			rule = strings.TrimSpace(line[2:])
		case strings.HasPrefix(line, "-"):
			rule = strings.TrimSpace(line[1:])
		case strings.HasPrefix(line, "•"):
			rule = strings.TrimSpace(strings.TrimPrefix(line, "•"))
		}
		if rule != "" {
			rules = append(rules, rule)
		}
	}
	return rules
}

// parseExampleResponse extracts Input:/Output: prefixed lines into a pair.
func parseExampleResponse(response string) (types.FewShotExample, error) {
	var input, output string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Input:") {
			input = strings.TrimSpace(strings.TrimPrefix(line, "Input:"))
		} else if strings.HasPrefix(line, "Output:") {
			output = strings.TrimSpace(strings.TrimPrefix(line, "Output:"))
		}
	}

	if input == "" || output == "" {
		return types.FewShotExample{}, &ParseError{
			Message: "response missing Input/Output pair",
		}
	}
	return types.FewShotExample{Input: input, Output: output}, nil
}

// syntheticExample builds a deterministic fallback pair from the document.
func syntheticExample(doc types.Document) types.FewShotExample {
	return types.FewShotExample{
		Input:  "Content about " + strings.ToLower(doc.Title),
		Output: excerpt(doc.Content, fallbackOutputChars),
	}
}

// excerpt truncates content to at most limit bytes without splitting a
// multi-byte rune.
func excerpt(content string, limit int) string {
	if len(content) <= limit {
		return content
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut] + "..."
}
