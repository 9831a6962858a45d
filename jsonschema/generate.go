package jsonschema

import (
	"github.com/typeforge/typeforge/ir"
)

// FromType projects one IR node into a schema fragment. References become
// "#/$defs/<name>" pointers; pair the fragment with FromSchema (or attach
// Defs yourself) when the definition set travels with it.
func FromType(t ir.Type) *Schema {
	if t == nil {
		return &Schema{}
	}
	s := fromNode(t)
	applyAnnotation(s, t.Annotation())
	return s
}

// FromDefinition projects a named definition, folding definition-level
// metadata into the resulting schema.
func FromDefinition(def ir.TypeDefinition) *Schema {
	s := FromType(def.Type)
	applyMetadata(s, def.Metadata)
	return s
}

// FromSchema projects a whole IR schema: every definition lands under
// $defs and the root carries only the pointers.
func FromSchema(sc *ir.Schema) *Schema {
	out := &Schema{Defs: make(map[string]*Schema, len(sc.Types))}
	for _, def := range sc.Types {
		out.Defs[def.Name] = FromDefinition(def)
	}
	if sc.Metadata != nil {
		out.Description = sc.Metadata.Description
	}
	return out
}

func fromNode(t ir.Type) *Schema {
	switch x := t.(type) {
	case *ir.Primitive:
		return fromPrimitive(x)
	case *ir.Literal:
		return &Schema{Const: x.Value}
	case *ir.Array:
		return &Schema{Type: "array", Items: FromType(x.Item)}
	case *ir.Tuple:
		items := make([]*Schema, len(x.Items))
		for i, it := range x.Items {
			items[i] = FromType(it)
		}
		n := len(items)
		return &Schema{Type: "array", PrefixItems: items, MinItems: &n, MaxItems: &n}
	case *ir.Object:
		return fromObject(x)
	case *ir.Reference:
		return &Schema{Ref: "#/$defs/" + x.Name}
	case *ir.Union:
		members := make([]*Schema, len(x.Types))
		for i, m := range x.Types {
			members[i] = FromType(m)
		}
		return &Schema{OneOf: members}
	case *ir.Intersection:
		members := make([]*Schema, len(x.Types))
		for i, m := range x.Types {
			members[i] = FromType(m)
		}
		return &Schema{AllOf: members}
	case *ir.Map:
		return &Schema{Type: "object", AdditionalProperties: FromType(x.Value)}
	case *ir.Date:
		return &Schema{Type: "string", Format: "date-time"}
	case *ir.Enum:
		values := make([]any, len(x.Members))
		for i, m := range x.Members {
			values[i] = m.Value
		}
		return &Schema{Enum: values}
	case *ir.Function:
		// functions have no data representation
		return &Schema{}
	}
	return &Schema{}
}

func fromPrimitive(p *ir.Primitive) *Schema {
	switch p.Name {
	case ir.PrimString:
		return &Schema{Type: "string"}
	case ir.PrimNumber:
		return &Schema{Type: "number"}
	case ir.PrimInteger:
		return &Schema{Type: "integer"}
	case ir.PrimBoolean:
		return &Schema{Type: "boolean"}
	case ir.PrimNull, ir.PrimVoid:
		return &Schema{Type: "null"}
	case ir.PrimNever:
		return &Schema{Not: &Schema{}}
	default: // any, unknown, symbol: unconstrained
		return &Schema{}
	}
}

func fromObject(o *ir.Object) *Schema {
	s := &Schema{Type: "object"}
	if len(o.Properties) > 0 {
		s.Properties = make(map[string]*Schema, len(o.Properties))
	}
	for _, p := range o.Properties {
		ps := FromType(p.Type)
		applyConstraints(ps, p.Constraints)
		applyMetadata(ps, p.Metadata)
		if p.Readonly {
			ps.ReadOnly = true
		}
		s.Properties[p.Name] = ps
		if p.Required {
			s.Required = append(s.Required, p.Name)
		}
	}
	switch {
	case o.Additional != nil && o.Additional.Schema != nil:
		s.AdditionalProperties = FromType(o.Additional.Schema)
	case o.Additional != nil:
		s.AdditionalProperties = o.Additional.Allowed
	case o.Index != nil:
		s.AdditionalProperties = FromType(o.Index.Value)
	}
	return s
}

func applyAnnotation(s *Schema, ann *ir.Annotation) {
	if ann == nil {
		return
	}
	applyMetadata(s, ann.Metadata)
	applyConstraints(s, ann.Constraints)
	if ann.Format != nil && s.Format == "" {
		s.Format = ann.Format.Name
	}
}

func applyMetadata(s *Schema, m *ir.Metadata) {
	if m == nil {
		return
	}
	if m.Description != "" {
		s.Description = m.Description
	}
	if m.Deprecated {
		s.Deprecated = true
	}
	if m.Default != nil {
		s.Default = m.Default
	}
	if len(m.Examples) > 0 {
		s.Examples = m.Examples
	}
}

func applyConstraints(s *Schema, c *ir.Constraints) {
	if c == nil {
		return
	}
	s.Minimum = c.Minimum
	s.Maximum = c.Maximum
	s.ExclusiveMinimum = c.ExclusiveMinimum
	s.ExclusiveMaximum = c.ExclusiveMaximum
	s.MultipleOf = c.MultipleOf
	s.MinLength = c.MinLength
	s.MaxLength = c.MaxLength
	if c.Pattern != "" {
		s.Pattern = c.Pattern
	}
	s.MinItems = orKeep(s.MinItems, c.MinItems)
	s.MaxItems = orKeep(s.MaxItems, c.MaxItems)
	if c.UniqueItems {
		s.UniqueItems = true
	}
	s.MinProperties = c.MinProperties
	s.MaxProperties = c.MaxProperties
	if len(c.Enum) > 0 && len(s.Enum) == 0 {
		s.Enum = c.Enum
	}
}

func orKeep(current, next *int) *int {
	if next != nil {
		return next
	}
	return current
}
