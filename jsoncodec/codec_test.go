package jsoncodec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	typeforge "github.com/typeforge/typeforge"
	"github.com/typeforge/typeforge/jsoncodec"
)

func TestCodec_DecodeValidates(t *testing.T) {
	c, err := jsoncodec.NewCodec(userDef())
	require.NoError(t, err)

	v, err := c.Decode([]byte(`{"id": 1, "name": "kay", "tags": ["a"]}`))
	require.NoError(t, err)
	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "kay", m["name"])

	_, err = c.Decode([]byte(`{"id": 1}`))
	iss, ok := typeforge.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, typeforge.CodeRequired, iss[0].Code)
	assert.Equal(t, "/name", iss[0].Path)
}

func TestCodec_DecodeRejectsMalformedJSON(t *testing.T) {
	c, err := jsoncodec.NewCodec(userDef())
	require.NoError(t, err)

	_, err = c.Decode([]byte(`{"id": `))
	iss, ok := typeforge.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, typeforge.CodeParseError, iss[0].Code)
	assert.Error(t, iss[0].Cause)
}

func TestCodec_EncodeValidatesFirst(t *testing.T) {
	c, err := jsoncodec.NewCodec(userDef())
	require.NoError(t, err)

	data, err := c.Encode(map[string]any{"id": float64(1), "name": "kay"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 1, "name": "kay"}`, string(data))

	data, err = c.Encode(map[string]any{"id": float64(1)})
	require.Error(t, err)
	assert.Nil(t, data, "no output on validation failure")
}

func TestCodec_RoundTrip(t *testing.T) {
	c, err := jsoncodec.NewCodec(userDef())
	require.NoError(t, err)

	in := map[string]any{"id": float64(7), "name": "rin", "tags": []any{"x", "y"}}
	data, err := c.Encode(in)
	require.NoError(t, err)
	out, err := c.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
