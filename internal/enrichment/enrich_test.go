// Package enrichment backfills missing style attributes on reference styles
// by analyzing their attached documents with the LLM.
package enrichment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/style-transfer/internal/llm"
	"github.com/jonathan/style-transfer/internal/types"
)

// fakeClient implements llm.Client with canned responses per prompt match.
type fakeClient struct {
	generate func(prompt string) (string, error)
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	return f.generate(prompt)
}

func (f *fakeClient) GenerateStructured(_ context.Context, _, _ string, _ *genai.Schema, _ int, _ llm.ModelTier) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeClient) EmbedText(_ context.Context, _ string) ([]float32, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

func docWithContent(title, content string) types.Document {
	return types.Document{
		URL:      "https://example.com/" + strings.ToLower(title),
		Type:     types.ContentBlog,
		Category: types.CategoryTechnical,
		Title:    title,
		Content:  content,
	}
}

func respondingClient(t *testing.T) *fakeClient {
	t.Helper()
	return &fakeClient{generate: func(prompt string) (string, error) {
		if strings.Contains(prompt, "extract 3-5 specific writing style rules") {
			return "- Use short sentences\n- Prefer active voice\n- Open with a hook", nil
		}
		return "Input: a generic topic\nOutput: styled content here", nil
	}}
}

func TestEnrichReferenceStyles_NoDocumentsLeftUntouched(t *testing.T) {
	ref := types.ReferenceStyle{
		Name:            "defined",
		StyleDefinition: &types.WritingStyle{Tone: "formal", FormalityLevel: 8},
		Confidence:      1.0,
	}

	enriched := EnrichReferenceStyles(context.Background(), respondingClient(t), []types.ReferenceStyle{ref})
	require.Len(t, enriched, 1)
	assert.Empty(t, enriched[0].StyleDefinition.StyleRules)
	assert.Empty(t, enriched[0].StyleDefinition.FewShotExamples)
}

func TestEnrichReferenceStyles_SynthesizesDefaultDefinition(t *testing.T) {
	ref := types.ReferenceStyle{
		Name:       "docs_only",
		Documents:  []types.Document{docWithContent("Post", "Some content here.")},
		Confidence: 1.0,
	}

	enriched := EnrichReferenceStyles(context.Background(), respondingClient(t), []types.ReferenceStyle{ref})
	require.Len(t, enriched, 1)

	style := enriched[0].StyleDefinition
	require.NotNil(t, style)
	assert.Equal(t, "neutral", style.Tone)
	assert.Equal(t, 5, style.FormalityLevel)
	assert.NotEmpty(t, style.StyleRules)
	assert.NotEmpty(t, style.FewShotExamples)
}

func TestEnrichReferenceStyles_NeverMutatesInput(t *testing.T) {
	ref := types.ReferenceStyle{
		Name:       "docs_only",
		Documents:  []types.Document{docWithContent("Post", "Some content here.")},
		Confidence: 1.0,
	}
	input := []types.ReferenceStyle{ref}

	_ = EnrichReferenceStyles(context.Background(), respondingClient(t), input)

	assert.Nil(t, input[0].StyleDefinition, "caller's reference style must not be mutated")
}

func TestEnrichReferenceStyles_BackfillsPartialDefinition(t *testing.T) {
	ref := types.ReferenceStyle{
		Name:      "partial",
		Documents: []types.Document{docWithContent("Post", "Some content here.")},
		StyleDefinition: &types.WritingStyle{
			Tone:           "witty",
			FormalityLevel: 3,
			StyleRules:     []string{"keep it playful"},
		},
		Confidence: 1.0,
	}

	enriched := EnrichReferenceStyles(context.Background(), respondingClient(t), []types.ReferenceStyle{ref})
	style := enriched[0].StyleDefinition

	// Existing rules kept, missing examples inferred.
	assert.Equal(t, []string{"keep it playful"}, style.StyleRules)
	assert.NotEmpty(t, style.FewShotExamples)
	assert.Equal(t, "witty", style.Tone)
}

func TestInferStyleRules_ParsesBullets(t *testing.T) {
	client := &fakeClient{generate: func(string) (string, error) {
		return "Here are the rules:\n- Rule one\n• Rule two\n-Rule three\nnot a rule", nil
	}}

	rules := InferStyleRules(context.Background(), client, []types.Document{docWithContent("A", "content")})
	assert.Equal(t, []string{"Rule one", "Rule two", "Rule three"}, rules)
}

func TestInferStyleRules_EmptyInputYieldsEmptyList(t *testing.T) {
	client := &fakeClient{generate: func(string) (string, error) {
		t.Fatal("no LLM call expected for documents without title and content")
		return "", nil
	}}

	docs := []types.Document{
		{URL: "https://example.com", Type: types.ContentBlog, Category: types.CategoryCasual},
	}
	rules := InferStyleRules(context.Background(), client, docs)
	assert.Empty(t, rules)
}

func TestInferStyleRules_FailureDegradesToEmpty(t *testing.T) {
	client := &fakeClient{generate: func(string) (string, error) {
		return "", errors.New("provider unavailable")
	}}

	rules := InferStyleRules(context.Background(), client, []types.Document{docWithContent("A", "content")})
	assert.Empty(t, rules)
}

func TestInferFewShotExamples_FallsBackPerDocument(t *testing.T) {
	client := &fakeClient{generate: func(string) (string, error) {
		return "", errors.New("provider unavailable")
	}}

	content := strings.Repeat("x", 250)
	examples := InferFewShotExamples(context.Background(), client, []types.Document{docWithContent("My Post", content)})

	require.Len(t, examples, 1)
	assert.Equal(t, "Content about my post", examples[0].Input)
	assert.Equal(t, content[:200]+"...", examples[0].Output)
}

func TestExcerpt_TruncatesOnRuneBoundary(t *testing.T) {
	content := strings.Repeat("é", 200) // 2 bytes per rune

	out := excerpt(content, 301)

	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, strings.Repeat("é", 150)+"...", out)
}

func TestExcerpt_ShortContentUnchanged(t *testing.T) {
	assert.Equal(t, "short", excerpt("short", 300))
}

func TestInferFewShotExamples_FallbackKeepsValidUTF8(t *testing.T) {
	client := &fakeClient{generate: func(string) (string, error) {
		return "", errors.New("provider unavailable")
	}}

	content := strings.Repeat("日", 100) // 3 bytes per rune, over the fallback bound
	examples := InferFewShotExamples(context.Background(), client, []types.Document{docWithContent("Unicode Post", content)})

	require.Len(t, examples, 1)
	assert.True(t, utf8.ValidString(examples[0].Output))
	assert.Equal(t, strings.Repeat("日", 66)+"...", examples[0].Output)
}

func TestInferFewShotExamples_MalformedResponseFallsBack(t *testing.T) {
	client := &fakeClient{generate: func(string) (string, error) {
		return "no structured pair here", nil
	}}

	examples := InferFewShotExamples(context.Background(), client, []types.Document{docWithContent("My Post", "short content")})
	require.Len(t, examples, 1)
	assert.Equal(t, "short content", examples[0].Output)
}
