package schemas

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/style-transfer/internal/types"
)

// charCountedTypes are output types whose length bounds are counted in
// characters; the remaining types count words.
var charCountedTypes = map[types.OutputType]bool{
	types.OutputTweetSingle:     true,
	types.OutputTweetThread:     true,
	types.OutputLinkedInComment: true,
}

// LengthViolationError reports a decoded payload that breaks its schema's
// length bounds.
type LengthViolationError struct {
	Schema string
	Unit   string
	Limit  int
	Actual int
}

func (e *LengthViolationError) Error() string {
	return fmt.Sprintf("schema %s: content is %d %s, limit is %d", e.Schema, e.Actual, e.Unit, e.Limit)
}

// EnforceLength validates a decoded payload against the schema's length
// bounds. Bounds are hard constraints, not advisory: a violation fails the
// generation for this schema.
func EnforceLength(schema types.OutputSchema, payload any) error {
	if schema.MaxLength == 0 && schema.MinLength == 0 {
		return nil
	}

	spec, err := Lookup(schema.OutputType)
	if err != nil {
		return err
	}
	text, err := spec.ExtractText(payload)
	if err != nil {
		return err
	}

	unit := "words"
	length := len(strings.Fields(text))
	if charCountedTypes[schema.OutputType] {
		unit = "characters"
		length = utf8.RuneCountInString(text)
	}

	if schema.MaxLength > 0 && length > schema.MaxLength {
		return &LengthViolationError{Schema: schema.Name, Unit: unit, Limit: schema.MaxLength, Actual: length}
	}
	if schema.MinLength > 0 && length < schema.MinLength {
		return &LengthViolationError{Schema: schema.Name, Unit: unit, Limit: schema.MinLength, Actual: length}
	}
	return nil
}
