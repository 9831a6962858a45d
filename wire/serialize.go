package wire

import (
	"io"

	typeforge "github.com/typeforge/typeforge"
	"github.com/typeforge/typeforge/i18n"
)

// Serialize encodes value (a map[string]any shaped like the definition)
// into a newly allocated byte sequence. Shape and missing-required
// problems are accumulated across the whole structure and returned
// together as typeforge.Issues; on any issue no bytes are returned.
func (c *Codec) Serialize(value any) ([]byte, error) {
	w := NewWriter()
	if err := c.serialize(value, w); err != nil {
		return nil, err
	}
	out := make([]byte, w.Len())
	copy(out, w.Bytes())
	return out, nil
}

// SerializeTo encodes value into the caller-supplied buffer and returns
// the number of bytes written. The codec never grows buf; when the
// encoding does not fit, it returns io.ErrShortBuffer and writes nothing.
func (c *Codec) SerializeTo(value any, buf []byte) (int, error) {
	w := NewWriter()
	if err := c.serialize(value, w); err != nil {
		return 0, err
	}
	if w.Len() > len(buf) {
		return 0, io.ErrShortBuffer
	}
	return copy(buf, w.Bytes()), nil
}

func (c *Codec) serialize(value any, w *Writer) error {
	m, ok := value.(map[string]any)
	if !ok {
		return typeforge.Issues{{
			Path:    "/",
			Code:    typeforge.CodeInvalidType,
			Message: i18n.T(typeforge.CodeInvalidType, nil),
			Hint:    "expected object",
			Params:  map[string]any{"expected": "object", "actual": valueKind(value)},
		}}
	}
	var iss typeforge.Issues
	scratch := NewWriter()
	serializeMessage(c.plan, m, "", scratch, &iss)
	if len(iss) > 0 {
		return iss
	}
	w.WriteRaw(scratch.Bytes())
	return nil
}

// serializeMessage walks the plan in definition order so the byte output
// is a pure function of the value and the captured definition.
func serializeMessage(p *messagePlan, m map[string]any, path string, w *Writer, iss *typeforge.Issues) {
	for i := range p.fields {
		f := &p.fields[i]
		val, present := m[f.name]
		if !present || val == nil {
			if f.required {
				*iss = typeforge.AppendIssues(*iss, typeforge.Issue{
					Path:    typeforge.ChildPath(path, f.name),
					Code:    typeforge.CodeRequired,
					Message: i18n.T(typeforge.CodeRequired, nil),
				})
			}
			continue
		}
		serializeField(f, val, typeforge.ChildPath(path, f.name), w, iss)
	}
}

func serializeField(f *planField, val any, path string, w *Writer, iss *typeforge.Issues) {
	switch f.enc {
	case encString:
		s, ok := val.(string)
		if !ok {
			shapeIssue(iss, path, "string", val)
			return
		}
		w.WriteTag(f.num, LengthDelimited)
		w.WriteString(s)
	case encInt, encNumber:
		u, ok := varintValue(val)
		if !ok {
			shapeIssue(iss, path, "number", val)
			return
		}
		w.WriteTag(f.num, Varint)
		w.WriteVarint(u)
	case encBool:
		b, ok := val.(bool)
		if !ok {
			shapeIssue(iss, path, "boolean", val)
			return
		}
		w.WriteTag(f.num, Varint)
		if b {
			w.WriteVarint(1)
		} else {
			w.WriteVarint(0)
		}
	case encMessage:
		m, ok := val.(map[string]any)
		if !ok {
			shapeIssue(iss, path, "object", val)
			return
		}
		scratch := NewWriter()
		serializeMessage(f.sub, m, path, scratch, iss)
		w.WriteTag(f.num, LengthDelimited)
		w.WriteLengthDelimited(scratch.Bytes())
	case encRepeated:
		elems, ok := sliceValue(val)
		if !ok {
			shapeIssue(iss, path, "array", val)
			return
		}
		serializeRepeated(f, elems, path, w, iss)
	}
}

func serializeRepeated(f *planField, elems []any, path string, w *Writer, iss *typeforge.Issues) {
	if f.packed {
		// one tag, one overall length, concatenated varints
		scratch := NewWriter()
		for i, el := range elems {
			switch f.elem {
			case encBool:
				b, ok := el.(bool)
				if !ok {
					shapeIssue(iss, typeforge.IndexPath(path, i), "boolean", el)
					continue
				}
				if b {
					scratch.WriteVarint(1)
				} else {
					scratch.WriteVarint(0)
				}
			default:
				u, ok := varintValue(el)
				if !ok {
					shapeIssue(iss, typeforge.IndexPath(path, i), "number", el)
					continue
				}
				scratch.WriteVarint(u)
			}
		}
		w.WriteTag(f.num, LengthDelimited)
		w.WriteLengthDelimited(scratch.Bytes())
		return
	}
	// unpacked: the field's tag repeated once per element
	for i, el := range elems {
		switch f.elem {
		case encString:
			s, ok := el.(string)
			if !ok {
				shapeIssue(iss, typeforge.IndexPath(path, i), "string", el)
				continue
			}
			w.WriteTag(f.num, LengthDelimited)
			w.WriteString(s)
		case encMessage:
			m, ok := el.(map[string]any)
			if !ok {
				shapeIssue(iss, typeforge.IndexPath(path, i), "object", el)
				continue
			}
			scratch := NewWriter()
			serializeMessage(f.sub, m, typeforge.IndexPath(path, i), scratch, iss)
			w.WriteTag(f.num, LengthDelimited)
			w.WriteLengthDelimited(scratch.Bytes())
		}
	}
}

func shapeIssue(iss *typeforge.Issues, path, expected string, actual any) {
	*iss = typeforge.AppendIssues(*iss, typeforge.Issue{
		Path:    path,
		Code:    typeforge.CodeInvalidType,
		Message: i18n.T(typeforge.CodeInvalidType, nil),
		Params:  map[string]any{"expected": expected, "actual": valueKind(actual)},
	})
}

// varintValue converts a runtime numeric value to its wire varint:
// unsigned 32-bit wraparound of the signed value, floats truncated.
func varintValue(v any) (uint64, bool) {
	switch n := v.(type) {
	case int:
		return uint64(uint32(int64(n))), true
	case int8:
		return uint64(uint32(int64(n))), true
	case int16:
		return uint64(uint32(int64(n))), true
	case int32:
		return uint64(uint32(int64(n))), true
	case int64:
		return uint64(uint32(n)), true
	case uint:
		return uint64(uint32(n)), true
	case uint8:
		return uint64(uint32(n)), true
	case uint16:
		return uint64(uint32(n)), true
	case uint32:
		return uint64(n), true
	case uint64:
		return uint64(uint32(n)), true
	case float32:
		return uint64(uint32(int64(n))), true
	case float64:
		return uint64(uint32(int64(n))), true
	}
	return 0, false
}

func sliceValue(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []int:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []int64:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []float64:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []bool:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	}
	return nil, false
}

func valueKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64:
		return "number"
	case map[string]any:
		return "object"
	case []any, []string, []int, []int64, []float64, []bool, []map[string]any:
		return "array"
	default:
		return "unknown"
	}
}
