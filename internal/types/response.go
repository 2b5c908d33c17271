// Package types provides type definitions for structured data used throughout the style-transfer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// StyleTransferResponse is one generation result, produced per requested
// output schema. Responses are never mutated after creation; evaluation
// consumes them read-only.
type StyleTransferResponse struct {
	ProcessedContent string         `json:"processed_content"`
	AppliedStyle     string         `json:"applied_style"`
	OutputSchema     *OutputSchema  `json:"output_schema,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}
