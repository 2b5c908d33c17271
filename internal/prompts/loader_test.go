// Package prompts provides a loader for externalized LLM prompt templates.
package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownPrompts(t *testing.T) {
	ClearCache()

	for _, tc := range []struct{ file, key string }{
		{"generation.json", "style-transfer"},
		{"generation.json", "system-instruction"},
		{"enrichment.json", "infer-style-rules"},
		{"enrichment.json", "infer-few-shot-example"},
		{"evaluation.json", "style-fidelity"},
		{"evaluation.json", "content-quality"},
		{"evaluation.json", "platform-appropriateness"},
	} {
		prompt, err := Get(tc.file, tc.key)
		require.NoError(t, err, "%s/%s", tc.file, tc.key)
		assert.NotEmpty(t, prompt)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("generation.json", "does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "style-transfer")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("generation.json", "nope")
	})
}

func TestFormat(t *testing.T) {
	template := "Intent: {{.Intent}}, Focus: {{.Focus}}"
	result := Format(template, map[string]string{
		"Intent": "punchy",
		"Focus":  "key insights",
	})
	assert.Equal(t, "Intent: punchy, Focus: key insights", result)
}

func TestFormat_MissingPlaceholderLeftIntact(t *testing.T) {
	template := "Focus: {{.Focus}}"
	result := Format(template, map[string]string{"Other": "x"})
	assert.Equal(t, "Focus: {{.Focus}}", result)
}
