// Package types provides type definitions for structured data used throughout the style-transfer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// StyleTransferRequest is the full unit of work: reference styles to learn
// from, target content to carry through, and the output formats to produce.
type StyleTransferRequest struct {
	ReferenceStyle []ReferenceStyle `json:"reference_style"`
	Intent         string           `json:"intent,omitempty"`
	Focus          string           `json:"focus"`
	TargetContent  []Document       `json:"target_content"`
	TargetSchemas  []OutputSchema   `json:"target_schemas,omitempty"`
}

// Validate checks the request's structural invariants: at least one
// reference style and one target document, and every nested entity valid.
func (r *StyleTransferRequest) Validate() error {
	if len(r.ReferenceStyle) == 0 {
		return &InvalidInputError{
			Entity:  "StyleTransferRequest",
			Field:   "reference_style",
			Message: "at least one reference style is required",
		}
	}
	if len(r.TargetContent) == 0 {
		return &InvalidInputError{
			Entity:  "StyleTransferRequest",
			Field:   "target_content",
			Message: "at least one target document is required",
		}
	}
	if r.Focus == "" {
		return &InvalidInputError{
			Entity:  "StyleTransferRequest",
			Field:   "focus",
			Message: "focus is required",
		}
	}
	for i := range r.ReferenceStyle {
		if err := r.ReferenceStyle[i].Validate(); err != nil {
			return err
		}
	}
	for i := range r.TargetContent {
		if err := r.TargetContent[i].Validate(); err != nil {
			return err
		}
	}
	for i := range r.TargetSchemas {
		if err := r.TargetSchemas[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ResolveSchemas returns the target schemas, substituting a single generic
// text schema when none were requested.
func (r *StyleTransferRequest) ResolveSchemas() []OutputSchema {
	if len(r.TargetSchemas) > 0 {
		return r.TargetSchemas
	}
	return []OutputSchema{DefaultOutputSchema()}
}
