// Package types provides type definitions for structured data used throughout the style-transfer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() StyleTransferRequest {
	return StyleTransferRequest{
		ReferenceStyle: []ReferenceStyle{
			{Name: "tech_blogger", Documents: []Document{testDocument()}, Confidence: 1.0},
		},
		Focus:         "key technical insights",
		TargetContent: []Document{testDocument()},
	}
}

func TestStyleTransferRequest_Validate_OK(t *testing.T) {
	req := testRequest()
	require.NoError(t, req.Validate())
}

func TestStyleTransferRequest_Validate_EmptyReferenceStyles(t *testing.T) {
	req := testRequest()
	req.ReferenceStyle = nil
	err := req.Validate()
	require.Error(t, err)

	var invalid *InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "reference_style", invalid.Field)
}

func TestStyleTransferRequest_Validate_EmptyTargetContent(t *testing.T) {
	req := testRequest()
	req.TargetContent = nil
	err := req.Validate()
	require.Error(t, err)

	var invalid *InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "target_content", invalid.Field)
}

func TestStyleTransferRequest_Validate_FocusRequired(t *testing.T) {
	req := testRequest()
	req.Focus = ""
	assert.Error(t, req.Validate())
}

func TestStyleTransferRequest_Validate_RejectsInvalidSchema(t *testing.T) {
	req := testRequest()
	req.TargetSchemas = []OutputSchema{{Name: "bad", OutputType: "fax"}}
	assert.Error(t, req.Validate())
}

func TestStyleTransferRequest_ResolveSchemas_Default(t *testing.T) {
	req := testRequest()
	schemas := req.ResolveSchemas()
	require.Len(t, schemas, 1)
	assert.Equal(t, OutputGenericText, schemas[0].OutputType)
}

func TestStyleTransferRequest_ResolveSchemas_Explicit(t *testing.T) {
	req := testRequest()
	req.TargetSchemas = []OutputSchema{
		{Name: "tweet", OutputType: OutputTweetSingle},
		{Name: "post", OutputType: OutputLinkedInPost},
	}
	schemas := req.ResolveSchemas()
	require.Len(t, schemas, 2)
	assert.Equal(t, "tweet", schemas[0].Name)
	assert.Equal(t, "post", schemas[1].Name)
}

func TestStyleTransferRequest_JSONRoundTrip(t *testing.T) {
	req := testRequest()
	req.Intent = "make it punchy"
	req.TargetSchemas = []OutputSchema{{Name: "tweet", OutputType: OutputTweetSingle, MaxLength: 280}}

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var decoded StyleTransferRequest
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NoError(t, decoded.Validate())
	assert.Equal(t, req, decoded)
}
