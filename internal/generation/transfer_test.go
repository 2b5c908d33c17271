// Package generation dispatches schema-constrained generation calls and
// assembles style transfer responses.
package generation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/style-transfer/internal/llm"
	"github.com/jonathan/style-transfer/internal/schemas"
	"github.com/jonathan/style-transfer/internal/types"
)

// fakeClient implements llm.Client, keying structured responses off the
// response schema's property set.
type fakeClient struct {
	structured func(system, prompt string, schema *genai.Schema) (string, error)

	mu           sync.Mutex
	contentCalls int
	maxTokens    []int
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.mu.Lock()
	f.contentCalls++
	f.mu.Unlock()
	// Enrichment calls land here; return parseable defaults.
	if strings.Contains(prompt, "style rules") {
		return "- Keep it short", nil
	}
	return "Input: a topic\nOutput: styled output", nil
}

func (f *fakeClient) GenerateStructured(_ context.Context, system, prompt string, schema *genai.Schema, maxTokens int, _ llm.ModelTier) (string, error) {
	f.mu.Lock()
	f.maxTokens = append(f.maxTokens, maxTokens)
	f.mu.Unlock()
	return f.structured(system, prompt, schema)
}

func (f *fakeClient) EmbedText(_ context.Context, _ string) ([]float32, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

func payloadForSchema(schema *genai.Schema) string {
	if _, ok := schema.Properties["tweets"]; ok {
		return `{"tweets": [{"text": "1/ a thread"}, {"text": "2/ done"}]}`
	}
	if _, ok := schema.Properties["markdown"]; ok {
		return `{"title": "Generated", "markdown": "## Section\n\nBody text."}`
	}
	return `{"text": "generated text"}`
}

func transferRequest(schemas ...types.OutputSchema) *types.StyleTransferRequest {
	return &types.StyleTransferRequest{
		ReferenceStyle: []types.ReferenceStyle{
			{
				Name: "tech_blogger",
				Documents: []types.Document{
					{URL: "https://example.com/a", Type: types.ContentBlog, Category: types.CategoryTechnical, Title: "A", Content: "content a"},
					{URL: "https://example.com/b", Type: types.ContentBlog, Category: types.CategoryTechnical, Title: "B", Content: "content b"},
				},
				Confidence: 1.0,
			},
		},
		Focus: "key insights",
		TargetContent: []types.Document{
			{URL: "https://example.com/t", Type: types.ContentBlog, Category: types.CategoryTechnical, Title: "Target", Content: "target content"},
		},
		TargetSchemas: schemas,
	}
}

func TestTransferStyle_OneResponsePerSchemaInOrder(t *testing.T) {
	client := &fakeClient{structured: func(_, _ string, schema *genai.Schema) (string, error) {
		return payloadForSchema(schema), nil
	}}

	request := transferRequest(
		types.OutputSchema{Name: "tweet", OutputType: types.OutputTweetSingle},
		types.OutputSchema{Name: "thread", OutputType: types.OutputTweetThread},
		types.OutputSchema{Name: "blog", OutputType: types.OutputBlogPost},
	)

	responses, err := TransferStyle(context.Background(), client, request)
	require.NoError(t, err)
	require.Len(t, responses, 3)

	assert.Equal(t, "tweet", responses[0].OutputSchema.Name)
	assert.Equal(t, "thread", responses[1].OutputSchema.Name)
	assert.Equal(t, "blog", responses[2].OutputSchema.Name)
	for _, response := range responses {
		assert.Equal(t, "tech_blogger", response.AppliedStyle)
		assert.Equal(t, 1, response.Metadata["reference_styles_used"])
		assert.Equal(t, "key insights", response.Metadata["focus"])
	}
}

func TestTransferStyle_DefaultGenericSchema(t *testing.T) {
	client := &fakeClient{structured: func(_, _ string, schema *genai.Schema) (string, error) {
		return payloadForSchema(schema), nil
	}}

	responses, err := TransferStyle(context.Background(), client, transferRequest())
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, types.OutputGenericText, responses[0].OutputSchema.OutputType)
}

func TestTransferStyle_InvalidRequestFailsFast(t *testing.T) {
	client := &fakeClient{structured: func(_, _ string, _ *genai.Schema) (string, error) {
		t.Fatal("no generation call expected for invalid request")
		return "", nil
	}}

	request := transferRequest()
	request.TargetContent = nil

	_, err := TransferStyle(context.Background(), client, request)
	require.Error(t, err)

	var invalid *types.InvalidInputError
	assert.True(t, errors.As(err, &invalid))
}

func TestTransferStyle_FailureCarriesSchemaName(t *testing.T) {
	client := &fakeClient{structured: func(_, _ string, schema *genai.Schema) (string, error) {
		if _, ok := schema.Properties["tweets"]; ok {
			return "", errors.New("provider timeout")
		}
		return payloadForSchema(schema), nil
	}}

	request := transferRequest(
		types.OutputSchema{Name: "tweet", OutputType: types.OutputTweetSingle},
		types.OutputSchema{Name: "thread", OutputType: types.OutputTweetThread},
	)

	_, err := TransferStyle(context.Background(), client, request)
	require.Error(t, err)

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "thread", genErr.Schema)
}

func TestTransferStyle_MalformedOutputFails(t *testing.T) {
	client := &fakeClient{structured: func(_, _ string, _ *genai.Schema) (string, error) {
		return "not json at all", nil
	}}

	request := transferRequest(types.OutputSchema{Name: "tweet", OutputType: types.OutputTweetSingle})

	_, err := TransferStyle(context.Background(), client, request)
	require.Error(t, err)

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "tweet", genErr.Schema)
}

func TestTransferStyle_EnforcesTweetLength(t *testing.T) {
	longText := strings.Repeat("a", 300)
	client := &fakeClient{structured: func(_, _ string, _ *genai.Schema) (string, error) {
		return `{"text": "` + longText + `"}`, nil
	}}

	request := transferRequest(types.OutputSchema{Name: "tweet", OutputType: types.OutputTweetSingle, MaxLength: 280})

	_, err := TransferStyle(context.Background(), client, request)
	require.Error(t, err)

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Contains(t, genErr.Message, "length constraint")
}

func TestTransferStyle_TweetWithinLimitRoundTrips(t *testing.T) {
	client := &fakeClient{structured: func(_, _ string, _ *genai.Schema) (string, error) {
		return `{"text": "Short and sweet. #golang", "url_allowed": true}`, nil
	}}

	request := transferRequest(types.OutputSchema{Name: "tweet", OutputType: types.OutputTweetSingle, MaxLength: 280})

	responses, err := TransferStyle(context.Background(), client, request)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, types.OutputTweetSingle, responses[0].OutputSchema.OutputType)

	var tweet types.TweetSingle
	require.NoError(t, json.Unmarshal([]byte(responses[0].ProcessedContent), &tweet))
	assert.LessOrEqual(t, len(tweet.Text), 280)
	assert.True(t, tweet.URLAllowed)
}

func TestTransferStyle_PassesOutputTokenBudget(t *testing.T) {
	client := &fakeClient{structured: func(_, _ string, schema *genai.Schema) (string, error) {
		return payloadForSchema(schema), nil
	}}

	request := transferRequest(types.OutputSchema{Name: "tweet", OutputType: types.OutputTweetSingle})

	_, err := TransferStyle(context.Background(), client, request)
	require.NoError(t, err)

	spec, err := schemas.Lookup(types.OutputTweetSingle)
	require.NoError(t, err)
	require.Positive(t, spec.MaxTokens)

	require.Len(t, client.maxTokens, 1)
	assert.Equal(t, spec.MaxTokens, client.maxTokens[0])
}

func TestTransferStyleEnriched_DoesNotReEnrich(t *testing.T) {
	client := &fakeClient{structured: func(_, _ string, schema *genai.Schema) (string, error) {
		return payloadForSchema(schema), nil
	}}

	request := transferRequest(types.OutputSchema{Name: "tweet", OutputType: types.OutputTweetSingle})

	responses, err := TransferStyleEnriched(context.Background(), client, request, request.ReferenceStyle)
	require.NoError(t, err)
	require.Len(t, responses, 1)

	assert.Zero(t, client.contentCalls, "pre-enriched styles must not trigger inference calls")
}

func TestTransferStyle_PromptCarriesEnrichedStyle(t *testing.T) {
	var capturedPrompt, capturedSystem string
	client := &fakeClient{structured: func(system, prompt string, schema *genai.Schema) (string, error) {
		capturedSystem = system
		capturedPrompt = prompt
		return payloadForSchema(schema), nil
	}}

	request := transferRequest(types.OutputSchema{Name: "tweet", OutputType: types.OutputTweetSingle})

	_, err := TransferStyle(context.Background(), client, request)
	require.NoError(t, err)

	assert.Contains(t, capturedSystem, "style transfer")
	assert.Contains(t, capturedPrompt, "tech_blogger")
	// Enrichment output must reach the prompt.
	assert.Contains(t, capturedPrompt, "Style Rules:")
	assert.Contains(t, capturedPrompt, "Keep it short")
}
