package wire

import (
	"fmt"

	typeforge "github.com/typeforge/typeforge"
	"github.com/typeforge/typeforge/i18n"
)

// Parse decodes data into a map shaped like the definition. Unknown field
// numbers are skipped by wire type, which is what keeps old parsers
// forward compatible with definitions that grew new fields. Malformed
// input returns a *WireError immediately; missing required fields
// accumulate as typeforge.Issues. A non-nil result is always fully valid.
func (c *Codec) Parse(data []byte) (map[string]any, error) {
	r := &reader{buf: data}
	var iss typeforge.Issues
	out, err := parseMessage(c.plan, r, "", &iss)
	if err != nil {
		return nil, err
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func parseMessage(p *messagePlan, r *reader, path string, iss *typeforge.Issues) (map[string]any, error) {
	out := make(map[string]any, len(p.fields))
	// repeated fields start as empty sequences so unpacked elements can
	// be appended one tag at a time
	for i := range p.fields {
		if p.fields[i].enc == encRepeated {
			out[p.fields[i].name] = []any{}
		}
	}
	seen := make(map[int]bool, len(p.fields))

	for r.remaining() > 0 {
		tag, err := r.readVarint()
		if err != nil {
			return nil, err
		}
		num := int(tag >> 3)
		wt := WireType(tag & 0x7)
		if num == 0 {
			return nil, &WireError{Code: typeforge.CodeParseError, Offset: r.offset(), Detail: "field number 0 is never valid"}
		}
		f, known := p.byNum[num]
		if !known {
			if err := r.skip(wt); err != nil {
				return nil, err
			}
			continue
		}
		if wt != f.wire {
			return nil, &WireError{
				Code:   typeforge.CodeParseError,
				Offset: r.offset(),
				Detail: fmt.Sprintf("field %d: wire type %s does not match declared %s", num, wt, f.wire),
			}
		}
		if err := parseField(f, r, out, typeforge.ChildPath(path, f.name), iss); err != nil {
			return nil, err
		}
		seen[num] = true
	}

	for i := range p.fields {
		f := &p.fields[i]
		if f.required && !seen[f.num] {
			*iss = typeforge.AppendIssues(*iss, typeforge.Issue{
				Path:    typeforge.ChildPath(path, f.name),
				Code:    typeforge.CodeRequired,
				Message: i18n.T(typeforge.CodeRequired, nil),
			})
		}
	}
	return out, nil
}

func parseField(f *planField, r *reader, out map[string]any, path string, iss *typeforge.Issues) error {
	switch f.enc {
	case encString:
		b, err := r.readLengthDelimited()
		if err != nil {
			return err
		}
		out[f.name] = string(b)
	case encInt:
		v, err := r.readVarint()
		if err != nil {
			return err
		}
		out[f.name] = int64(uint32(v))
	case encNumber:
		v, err := r.readVarint()
		if err != nil {
			return err
		}
		out[f.name] = float64(uint32(v))
	case encBool:
		v, err := r.readVarint()
		if err != nil {
			return err
		}
		out[f.name] = v != 0
	case encMessage:
		n, err := r.readVarint()
		if err != nil {
			return err
		}
		sub, err := r.sub(int(n))
		if err != nil {
			return err
		}
		nested, err := parseMessage(f.sub, sub, path, iss)
		if err != nil {
			return err
		}
		out[f.name] = nested
	case encRepeated:
		return parseRepeated(f, r, out, path, iss)
	}
	return nil
}

func parseRepeated(f *planField, r *reader, out map[string]any, path string, iss *typeforge.Issues) error {
	seq := out[f.name].([]any)
	if f.packed {
		// one length-delimited block; decode until exactly its bytes are
		// consumed
		n, err := r.readVarint()
		if err != nil {
			return err
		}
		sub, err := r.sub(int(n))
		if err != nil {
			return err
		}
		for sub.remaining() > 0 {
			v, err := sub.readVarint()
			if err != nil {
				return err
			}
			switch f.elem {
			case encBool:
				seq = append(seq, v != 0)
			case encNumber:
				seq = append(seq, float64(uint32(v)))
			default:
				seq = append(seq, int64(uint32(v)))
			}
		}
		out[f.name] = seq
		return nil
	}
	// unpacked: one element per tag occurrence
	switch f.elem {
	case encString:
		b, err := r.readLengthDelimited()
		if err != nil {
			return err
		}
		seq = append(seq, string(b))
	case encMessage:
		n, err := r.readVarint()
		if err != nil {
			return err
		}
		sub, err := r.sub(int(n))
		if err != nil {
			return err
		}
		nested, err := parseMessage(f.sub, sub, typeforge.IndexPath(path, len(seq)), iss)
		if err != nil {
			return err
		}
		seq = append(seq, nested)
	}
	out[f.name] = seq
	return nil
}
