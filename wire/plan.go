package wire

import (
	"fmt"

	"github.com/typeforge/typeforge/ir"
)

// encKind classifies how a planned field's payload is encoded.
type encKind int

const (
	encString encKind = iota + 1
	encInt            // integer: unsigned varint, 32-bit wraparound
	encNumber         // number: same bytes as encInt, decodes to float64
	encBool
	encMessage
	encRepeated
)

// planField is the generation-time record for one property: its wire
// identity plus the decode dispatch data. The parser's fieldNumber lookup
// is built from these, never from the IR at parse time.
type planField struct {
	name     string
	num      int
	required bool
	enc      encKind
	elem     encKind      // element encoding, set when enc == encRepeated
	packed   bool         // scalar element arrays use packed encoding
	sub      *messagePlan // nested message plan for encMessage elements/fields
	wire     WireType     // wire type carried in this field's tag
}

type messagePlan struct {
	name   string
	fields []planField
	byNum  map[int]*planField
}

// planBuilder resolves references against the available-types set and
// memoizes per-definition plans by name, which is what keeps circular
// reference graphs from recursing forever.
type planBuilder struct {
	available map[string]ir.TypeDefinition
	memo      map[string]*messagePlan
}

func (b *planBuilder) object(name string, obj *ir.Object, numbers map[string]int) (*messagePlan, error) {
	p := &messagePlan{name: name}
	p.fields = make([]planField, 0, len(obj.Properties))
	used := make(map[int]bool, len(obj.Properties))
	for i, prop := range obj.Properties {
		num := i + 1
		if n, ok := numbers[prop.Name]; ok {
			num = n
		}
		if num <= 0 {
			return nil, fmt.Errorf("wire: %s.%s: field number %d is invalid (must be positive)", name, prop.Name, num)
		}
		if used[num] {
			return nil, fmt.Errorf("wire: %s: field number %d assigned twice", name, num)
		}
		used[num] = true
		f, err := b.field(name, prop, num)
		if err != nil {
			return nil, err
		}
		p.fields = append(p.fields, f)
	}
	p.byNum = make(map[int]*planField, len(p.fields))
	for i := range p.fields {
		p.byNum[p.fields[i].num] = &p.fields[i]
	}
	return p, nil
}

func (b *planBuilder) field(owner string, prop ir.Property, num int) (planField, error) {
	f := planField{name: prop.Name, num: num, required: prop.Required}
	t, err := b.unwrap(owner, prop.Name, prop.Type)
	if err != nil {
		return f, err
	}

	if arr, ok := t.(*ir.Array); ok {
		item, err := b.unwrap(owner, prop.Name, arr.Item)
		if err != nil {
			return f, err
		}
		elem, sub, err := b.element(owner, prop.Name, item)
		if err != nil {
			return f, err
		}
		if elem == encRepeated {
			return f, fmt.Errorf("wire: %s.%s: nested arrays are not supported by the wire format", owner, prop.Name)
		}
		f.enc = encRepeated
		f.elem = elem
		f.sub = sub
		f.packed = elem == encInt || elem == encNumber || elem == encBool
		f.wire = LengthDelimited
		return f, nil
	}

	f.enc, f.sub, err = b.element(owner, prop.Name, t)
	if err != nil {
		return f, err
	}
	switch f.enc {
	case encString, encMessage:
		f.wire = LengthDelimited
	default:
		f.wire = Varint
	}
	return f, nil
}

// element classifies one non-array node into its payload encoding,
// building nested message plans as needed.
func (b *planBuilder) element(owner, propName string, t ir.Type) (encKind, *messagePlan, error) {
	switch x := t.(type) {
	case *ir.Primitive:
		switch x.Name {
		case ir.PrimString:
			return encString, nil, nil
		case ir.PrimInteger:
			return encInt, nil, nil
		case ir.PrimNumber:
			return encNumber, nil, nil
		case ir.PrimBoolean:
			return encBool, nil, nil
		}
		return 0, nil, fmt.Errorf("wire: %s.%s: primitive %q has no wire encoding", owner, propName, x.Name)
	case *ir.Object:
		sub, err := b.object(owner+"."+propName, x, nil)
		if err != nil {
			return 0, nil, err
		}
		return encMessage, sub, nil
	case *ir.Reference:
		sub, err := b.reference(x)
		if err != nil {
			return 0, nil, fmt.Errorf("wire: %s.%s: %w", owner, propName, err)
		}
		return encMessage, sub, nil
	case *ir.Array:
		return encRepeated, nil, nil
	}
	return 0, nil, fmt.Errorf("wire: %s.%s: kind %q is not supported by the wire format", owner, propName, t.Kind())
}

// reference resolves a named definition to its memoized message plan. The
// memo entry is registered before the recursive build, so a type that
// refers back to an ancestor reuses the ancestor's (still filling) plan
// instead of recursing without end.
func (b *planBuilder) reference(ref *ir.Reference) (*messagePlan, error) {
	if p, ok := b.memo[ref.Name]; ok {
		return p, nil
	}
	def, ok := b.available[ref.Name]
	if !ok {
		return nil, fmt.Errorf("reference %q does not resolve in the available types", ref.Name)
	}
	obj, ok := def.Type.(*ir.Object)
	if !ok {
		return nil, fmt.Errorf("reference %q resolves to kind %q, not an object", ref.Name, def.Type.Kind())
	}
	p := &messagePlan{name: def.Name, byNum: make(map[int]*planField, len(obj.Properties))}
	b.memo[ref.Name] = p
	built, err := b.object(def.Name, obj, def.FieldNumbers)
	if err != nil {
		delete(b.memo, ref.Name)
		return nil, err
	}
	p.fields = built.fields
	p.byNum = built.byNum
	return p, nil
}

// unwrap normalizes a property type for wire classification: unions are
// simplified, null/void members stripped, and a single survivor replaces
// the union. Anything else that is still a union cannot be framed.
func (b *planBuilder) unwrap(owner, propName string, t ir.Type) (ir.Type, error) {
	u, ok := t.(*ir.Union)
	if !ok {
		return t, nil
	}
	members := ir.RemoveAbsentFromUnion(ir.SimplifyUnion(u.Types))
	switch len(members) {
	case 1:
		return members[0], nil
	case 0:
		return nil, fmt.Errorf("wire: %s.%s: union has no encodable member", owner, propName)
	default:
		return nil, fmt.Errorf("wire: %s.%s: union with %d non-null members has no wire framing", owner, propName, len(members))
	}
}
