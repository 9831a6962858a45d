package jsoncodec

import (
	json "github.com/goccy/go-json"

	typeforge "github.com/typeforge/typeforge"
	"github.com/typeforge/typeforge/i18n"
	"github.com/typeforge/typeforge/ir"
)

// Codec couples the JSON engine with a generated validator. Decode never
// returns a value that failed validation; Encode never emits bytes for
// one.
type Codec struct {
	v *Validator
}

// NewCodec generates a JSON codec for def.
func NewCodec(def ir.TypeDefinition, opts ...Option) (*Codec, error) {
	v, err := NewValidator(def, opts...)
	if err != nil {
		return nil, err
	}
	return &Codec{v: v}, nil
}

// Validator returns the codec's underlying validator.
func (c *Codec) Validator() *Validator { return c.v }

// Decode unmarshals data and validates the result against the
// definition. Unparseable JSON is a single parse_error issue; structural
// problems come back accumulated.
func (c *Codec) Decode(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, typeforge.Issues{{
			Path:    "/",
			Code:    typeforge.CodeParseError,
			Message: i18n.T(typeforge.CodeParseError, nil),
			Cause:   err,
		}}
	}
	if err := c.v.Validate(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Encode validates value against the definition and marshals it. On any
// issue no bytes are returned.
func (c *Codec) Encode(value any) ([]byte, error) {
	if err := c.v.Validate(value); err != nil {
		return nil, err
	}
	return json.Marshal(value)
}
