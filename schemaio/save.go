package schemaio

import (
	"github.com/typeforge/typeforge/ir"
)

func toDoc(s *ir.Schema) map[string]any {
	doc := map[string]any{}
	if s.Version != "" {
		doc["version"] = s.Version
	}
	if s.Package != "" {
		doc["package"] = s.Package
	}
	types := make([]any, 0, len(s.Types))
	for _, def := range s.Types {
		types = append(types, definitionToDoc(def))
	}
	doc["types"] = types
	if len(s.Services) > 0 {
		services := make([]any, 0, len(s.Services))
		for _, svc := range s.Services {
			services = append(services, serviceToDoc(svc))
		}
		doc["services"] = services
	}
	return doc
}

func definitionToDoc(def ir.TypeDefinition) map[string]any {
	m := map[string]any{"name": def.Name, "type": typeToDoc(def.Type)}
	mergeMetadata(m, def.Metadata)
	if len(def.FieldNumbers) > 0 {
		fn := make(map[string]any, len(def.FieldNumbers))
		for k, v := range def.FieldNumbers {
			fn[k] = v
		}
		m["fieldNumbers"] = fn
	}
	return m
}

func serviceToDoc(svc ir.Service) map[string]any {
	m := map[string]any{"name": svc.Name}
	mergeMetadata(m, svc.Metadata)
	methods := make([]any, 0, len(svc.Methods))
	for _, method := range svc.Methods {
		mm := map[string]any{"name": method.Name}
		if method.Input != "" {
			mm["input"] = method.Input
		}
		if method.Output != "" {
			mm["output"] = method.Output
		}
		mergeMetadata(mm, method.Metadata)
		methods = append(methods, mm)
	}
	m["methods"] = methods
	return m
}

func typeToDoc(t ir.Type) map[string]any {
	if t == nil {
		return nil
	}
	var m map[string]any
	switch n := t.(type) {
	case *ir.Primitive:
		m = map[string]any{"kind": string(n.Name)}
	case *ir.Literal:
		m = map[string]any{"kind": "literal", "value": n.Value}
	case *ir.Array:
		m = map[string]any{"kind": "array", "items": typeToDoc(n.Item)}
	case *ir.Tuple:
		m = map[string]any{"kind": "tuple", "items": typeListToDoc(n.Items)}
	case *ir.Object:
		m = objectToDoc(n)
	case *ir.Reference:
		m = map[string]any{"kind": "reference", "name": n.Name}
	case *ir.Union:
		m = map[string]any{"kind": "union", "types": typeListToDoc(n.Types)}
		if n.Discriminator != nil {
			d := map[string]any{"property": n.Discriminator.Property}
			if len(n.Discriminator.Mapping) > 0 {
				mapping := make(map[string]any, len(n.Discriminator.Mapping))
				for k, v := range n.Discriminator.Mapping {
					mapping[k] = v
				}
				d["mapping"] = mapping
			}
			m["discriminator"] = d
		}
	case *ir.Intersection:
		m = map[string]any{"kind": "intersection", "types": typeListToDoc(n.Types)}
	case *ir.Map:
		m = map[string]any{"kind": "map", "key": typeToDoc(n.Key), "value": typeToDoc(n.Value)}
	case *ir.Date:
		m = map[string]any{"kind": "date"}
	case *ir.Enum:
		members := make([]any, 0, len(n.Members))
		for _, em := range n.Members {
			members = append(members, map[string]any{"name": em.Name, "value": em.Value})
		}
		m = map[string]any{"kind": "enum", "members": members}
	default:
		// Function types have no document form; emit an empty never so
		// Save output always loads back.
		m = map[string]any{"kind": "never"}
	}

	ann := t.Annotation()
	mergeMetadata(m, ann.Metadata)
	if c := constraintsToDoc(ann.Constraints); c != nil {
		m["constraints"] = c
	}
	if ann.Format != nil {
		m["format"] = map[string]any{
			"name":     ann.Format.Name,
			"category": string(ann.Format.Category),
		}
	}
	return m
}

func objectToDoc(o *ir.Object) map[string]any {
	m := map[string]any{"kind": "object"}
	props := make([]any, 0, len(o.Properties))
	for _, p := range o.Properties {
		pm := map[string]any{"name": p.Name, "type": typeToDoc(p.Type)}
		if p.Required {
			pm["required"] = true
		}
		if p.Readonly {
			pm["readonly"] = true
		}
		mergeMetadata(pm, p.Metadata)
		if c := constraintsToDoc(p.Constraints); c != nil {
			pm["constraints"] = c
		}
		props = append(props, pm)
	}
	m["properties"] = props
	if o.Additional != nil {
		if o.Additional.Schema != nil {
			m["additionalProperties"] = typeToDoc(o.Additional.Schema)
		} else {
			m["additionalProperties"] = o.Additional.Allowed
		}
	}
	if o.Index != nil {
		m["index"] = map[string]any{
			"key":   typeToDoc(o.Index.Key),
			"value": typeToDoc(o.Index.Value),
		}
	}
	return m
}

func typeListToDoc(types []ir.Type) []any {
	out := make([]any, 0, len(types))
	for _, t := range types {
		out = append(out, typeToDoc(t))
	}
	return out
}

func mergeMetadata(m map[string]any, md *ir.Metadata) {
	if md == nil {
		return
	}
	if md.Description != "" {
		m["description"] = md.Description
	}
	if md.Deprecated {
		m["deprecated"] = true
	}
	if md.Default != nil {
		m["default"] = md.Default
	}
	if len(md.Examples) > 0 {
		m["examples"] = md.Examples
	}
}

func constraintsToDoc(c *ir.Constraints) map[string]any {
	if c == nil {
		return nil
	}
	m := map[string]any{}
	putFloat(m, "minimum", c.Minimum)
	putFloat(m, "maximum", c.Maximum)
	putFloat(m, "exclusiveMinimum", c.ExclusiveMinimum)
	putFloat(m, "exclusiveMaximum", c.ExclusiveMaximum)
	putFloat(m, "multipleOf", c.MultipleOf)
	putInt(m, "minLength", c.MinLength)
	putInt(m, "maxLength", c.MaxLength)
	if c.Pattern != "" {
		m["pattern"] = c.Pattern
	}
	putInt(m, "minItems", c.MinItems)
	putInt(m, "maxItems", c.MaxItems)
	if c.UniqueItems {
		m["uniqueItems"] = true
	}
	putInt(m, "minProperties", c.MinProperties)
	putInt(m, "maxProperties", c.MaxProperties)
	if len(c.Enum) > 0 {
		m["enum"] = c.Enum
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

func putFloat(m map[string]any, key string, v *float64) {
	if v != nil {
		m[key] = *v
	}
}

func putInt(m map[string]any, key string, v *int) {
	if v != nil {
		m[key] = *v
	}
}
