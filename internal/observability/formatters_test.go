package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/style-transfer/internal/evaluation"
	"github.com/jonathan/style-transfer/internal/types"
)

func TestPrintRequest(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	request := &types.StyleTransferRequest{
		ReferenceStyle: []types.ReferenceStyle{
			{
				Name: "tech_blogger",
				Documents: []types.Document{
					{URL: "https://example.com/a", Type: types.ContentBlog, Category: types.CategoryTechnical},
				},
			},
		},
		Intent: "summarize",
		Focus:  "key insights",
		TargetContent: []types.Document{
			{URL: "https://example.com/t", Type: types.ContentBlog, Category: types.CategoryTechnical},
		},
		TargetSchemas: []types.OutputSchema{
			{Name: "tweet", OutputType: types.OutputTweetSingle},
		},
	}

	p.PrintRequest(request)
	output := buf.String()

	assert.Contains(t, output, "STYLE TRANSFER REQUEST")
	assert.Contains(t, output, "tech_blogger")
	assert.Contains(t, output, "key insights")
	assert.Contains(t, output, "summarize")
	assert.Contains(t, output, "tweet")
}

func TestPrintRequest_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRequest(nil)

	assert.Empty(t, buf.String())
}

func TestPrintEnrichedStyles(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	styles := []types.ReferenceStyle{
		{
			Name: "casual_voice",
			StyleDefinition: &types.WritingStyle{
				Tone:           "playful",
				FormalityLevel: 3,
				StyleRules:     []string{"short sentences"},
			},
		},
	}

	p.PrintEnrichedStyles(styles)
	output := buf.String()

	assert.Contains(t, output, "ENRICHED REFERENCE STYLES")
	assert.Contains(t, output, "casual_voice")
	assert.Contains(t, output, "playful")
	assert.Contains(t, output, "3/10")
}

func TestPrintEnrichedStyles_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintEnrichedStyles(nil)

	assert.Empty(t, buf.String())
}

func TestPrintResponses(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	responses := []types.StyleTransferResponse{
		{
			ProcessedContent: `{"text":"hello world"}`,
			OutputSchema:     &types.OutputSchema{Name: "tweet", OutputType: types.OutputTweetSingle},
		},
	}

	p.PrintResponses(responses)
	output := buf.String()

	assert.Contains(t, output, "GENERATED OUTPUTS")
	assert.Contains(t, output, "tweet")
	assert.Contains(t, output, "hello world")
}

func TestPrintResponses_TruncatesLongContent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	long := make([]byte, 200)
	for i := range long {
		long[i] = 'x'
	}
	responses := []types.StyleTransferResponse{
		{
			ProcessedContent: string(long),
			OutputSchema:     &types.OutputSchema{Name: "post", OutputType: types.OutputLinkedInPost},
		},
	}

	p.PrintResponses(responses)

	assert.Contains(t, buf.String(), "...")
}

func TestPrintEvaluation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	results := []evaluation.Result{
		{Key: "style_fidelity", Score: 4, Comment: "close match"},
		{Key: "content_preservation", Score: 0.82, Comment: "Embedding similarity"},
	}

	p.PrintEvaluation("tweet", results)
	output := buf.String()

	assert.Contains(t, output, "EVALUATION: tweet")
	assert.Contains(t, output, "style_fidelity")
	assert.Contains(t, output, "4.00")
	assert.Contains(t, output, "close match")
}

func TestPrintEvaluation_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintEvaluation("tweet", nil)

	assert.Empty(t, buf.String())
}
