// Package types provides type definitions for structured data used throughout the style-transfer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ReferenceStyle is a named style source: raw example documents, an explicit
// style definition, or both. When both are present the definition is treated
// as possibly incomplete and enrichment backfills it from the documents.
type ReferenceStyle struct {
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Documents       []Document      `json:"documents,omitempty"`
	StyleDefinition *WritingStyle   `json:"style_definition,omitempty"`
	Categories      map[string]bool `json:"categories,omitempty"`
	Confidence      float64         `json:"confidence"`
}

// Validate checks the reference style's structural invariants. At least one
// of documents or style_definition must be present.
func (r *ReferenceStyle) Validate() error {
	if r.Name == "" {
		return &InvalidInputError{
			Entity:  "ReferenceStyle",
			Field:   "name",
			Message: "name is required",
		}
	}
	if len(r.Documents) == 0 && r.StyleDefinition == nil {
		return &InvalidInputError{
			Entity:  "ReferenceStyle",
			Message: "either documents or style_definition must be provided",
		}
	}
	if r.Confidence < 0.0 || r.Confidence > 1.0 {
		return &InvalidInputError{
			Entity:  "ReferenceStyle",
			Field:   "confidence",
			Message: "must be between 0.0 and 1.0",
		}
	}
	for i := range r.Documents {
		if err := r.Documents[i].Validate(); err != nil {
			return err
		}
	}
	if r.StyleDefinition != nil {
		if err := r.StyleDefinition.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// NewReferenceStyle constructs a validated ReferenceStyle with confidence 1.0.
func NewReferenceStyle(name string, documents []Document, definition *WritingStyle) (*ReferenceStyle, error) {
	ref := &ReferenceStyle{
		Name:            name,
		Documents:       documents,
		StyleDefinition: definition,
		Confidence:      1.0,
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return ref, nil
}

// Clone returns a deep copy of the reference style. Enrichment operates on
// clones so the caller's request is never mutated.
func (r *ReferenceStyle) Clone() *ReferenceStyle {
	clone := *r
	clone.Documents = append([]Document(nil), r.Documents...)
	clone.StyleDefinition = r.StyleDefinition.Clone()
	if r.Categories != nil {
		clone.Categories = make(map[string]bool, len(r.Categories))
		for k, v := range r.Categories {
			clone.Categories[k] = v
		}
	}
	return &clone
}

// WithStyleDefinition returns a copy of the reference style carrying the
// given definition.
func (r *ReferenceStyle) WithStyleDefinition(definition *WritingStyle) *ReferenceStyle {
	clone := r.Clone()
	clone.StyleDefinition = definition
	return clone
}
