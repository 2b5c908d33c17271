// Package types provides type definitions for structured data used throughout the style-transfer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// OutputType identifies the structured payload shape a generation must emit.
type OutputType string

// Supported output types. Each maps to a distinct payload shape.
const (
	OutputTweetSingle     OutputType = "tweet_single"
	OutputTweetThread     OutputType = "tweet_thread"
	OutputLinkedInPost    OutputType = "linkedin_post"
	OutputLinkedInComment OutputType = "linkedin_comment"
	OutputBlogPost        OutputType = "blog_post"
	OutputGenericText     OutputType = "generic_text"
)

// IsValid reports whether the output type is one of the supported values.
func (o OutputType) IsValid() bool {
	switch o {
	case OutputTweetSingle, OutputTweetThread, OutputLinkedInPost,
		OutputLinkedInComment, OutputBlogPost, OutputGenericText:
		return true
	}
	return false
}

// OutputSchema is a generation-format contract. The output type determines
// the structured payload shape; length bounds are counted in characters for
// tweet and comment types and in words for post, blog, and generic types.
type OutputSchema struct {
	Name        string     `json:"name"`
	OutputType  OutputType `json:"output_type"`
	MaxLength   int        `json:"max_length,omitempty"`
	MinLength   int        `json:"min_length,omitempty"`
	Format      string     `json:"format,omitempty"`
	Description string     `json:"description,omitempty"`
	Platform    string     `json:"platform,omitempty"`
}

// Validate checks the schema's structural invariants. Unknown output types
// are rejected here rather than falling back to a default shape.
func (s *OutputSchema) Validate() error {
	if s.Name == "" {
		return &InvalidInputError{
			Entity:  "OutputSchema",
			Field:   "name",
			Message: "name is required",
		}
	}
	if !s.OutputType.IsValid() {
		return &InvalidInputError{
			Entity:  "OutputSchema",
			Field:   "output_type",
			Message: "unknown output type " + string(s.OutputType),
		}
	}
	if s.MaxLength < 0 || s.MinLength < 0 {
		return &InvalidInputError{
			Entity:  "OutputSchema",
			Field:   "max_length",
			Message: "length bounds must be non-negative",
		}
	}
	if s.MaxLength > 0 && s.MinLength > s.MaxLength {
		return &InvalidInputError{
			Entity:  "OutputSchema",
			Field:   "min_length",
			Message: "min_length exceeds max_length",
		}
	}
	return nil
}

// NewOutputSchema constructs a validated OutputSchema with markdown format.
func NewOutputSchema(name string, outputType OutputType) (*OutputSchema, error) {
	schema := &OutputSchema{
		Name:       name,
		OutputType: outputType,
		Format:     "markdown",
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return schema, nil
}

// DefaultOutputSchema is the schema used when a request names no target
// schemas.
func DefaultOutputSchema() OutputSchema {
	return OutputSchema{
		Name:       "default",
		OutputType: OutputGenericText,
		Format:     "markdown",
	}
}
