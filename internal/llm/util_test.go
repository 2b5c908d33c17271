// Package llm - util_test.go tests shared LLM response processing utilities.
package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON untouched",
			input:    `{"text": "hello"}`,
			expected: `{"text": "hello"}`,
		},
		{
			name:     "json fenced block",
			input:    "```json\n{\"text\": \"hello\"}\n```",
			expected: `{"text": "hello"}`,
		},
		{
			name:     "generic fenced block",
			input:    "```\n{\"text\": \"hello\"}\n```",
			expected: `{"text": "hello"}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n{\"text\": \"hello\"}\n  ",
			expected: `{"text": "hello"}`,
		},
		{
			name:     "fenced block with language identifier",
			input:    "```javascript\n{\"text\": \"hello\"}\n```",
			expected: `{"text": "hello"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}
