// Package schemaio reads and writes ir.Schema documents — the unit
// source-extraction converters hand to generators — as YAML or JSON.
// Type expressions use a kind-tagged mapping form mirroring the IR;
// primitive kinds may be named directly ("kind: string").
package schemaio

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/typeforge/typeforge/ir"
)

// Load parses a schema document, sniffing JSON by its leading byte and
// falling back to YAML.
func Load(data []byte) (*ir.Schema, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return LoadJSON(data)
	}
	return LoadYAML(data)
}

// LoadYAML parses a YAML schema document.
func LoadYAML(data []byte) (*ir.Schema, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemaio: yaml: %w", err)
	}
	return fromDoc(doc)
}

// LoadJSON parses a JSON schema document.
func LoadJSON(data []byte) (*ir.Schema, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemaio: json: %w", err)
	}
	return fromDoc(doc)
}

// Save renders a schema in the default document form, YAML.
func Save(s *ir.Schema) ([]byte, error) {
	return SaveYAML(s)
}

// SaveYAML renders a schema as a YAML document.
func SaveYAML(s *ir.Schema) ([]byte, error) {
	return yaml.Marshal(toDoc(s))
}

// SaveJSON renders a schema as an indented JSON document.
func SaveJSON(s *ir.Schema) ([]byte, error) {
	return json.MarshalIndent(toDoc(s), "", "  ")
}

func fromDoc(doc map[string]any) (*ir.Schema, error) {
	s := &ir.Schema{}
	if v, ok := doc["version"]; ok {
		s.Version = fmt.Sprintf("%v", v)
	}
	if v, ok := doc["package"].(string); ok {
		s.Package = v
	}
	types, ok := doc["types"].([]any)
	if !ok {
		return nil, fmt.Errorf("schemaio: document has no types list")
	}
	for i, raw := range types {
		tm, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("schemaio: types[%d] is not a mapping", i)
		}
		def, err := definitionFromDoc(tm, fmt.Sprintf("types[%d]", i))
		if err != nil {
			return nil, err
		}
		s.Types = append(s.Types, def)
	}
	if services, ok := doc["services"].([]any); ok {
		for i, raw := range services {
			sm, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("schemaio: services[%d] is not a mapping", i)
			}
			svc, err := serviceFromDoc(sm, fmt.Sprintf("services[%d]", i))
			if err != nil {
				return nil, err
			}
			s.Services = append(s.Services, svc)
		}
	}
	return s, nil
}

func serviceFromDoc(m map[string]any, path string) (ir.Service, error) {
	var svc ir.Service
	name, ok := m["name"].(string)
	if !ok || name == "" {
		return svc, fmt.Errorf("schemaio: %s: missing name", path)
	}
	svc.Name = name
	svc.Metadata = metadataFromDoc(m)
	if methods, ok := m["methods"].([]any); ok {
		for i, raw := range methods {
			mm, ok := raw.(map[string]any)
			if !ok {
				return svc, fmt.Errorf("schemaio: %s.methods[%d] is not a mapping", path, i)
			}
			mname, _ := mm["name"].(string)
			if mname == "" {
				return svc, fmt.Errorf("schemaio: %s.methods[%d]: missing name", path, i)
			}
			input, _ := mm["input"].(string)
			output, _ := mm["output"].(string)
			svc.Methods = append(svc.Methods, ir.ServiceMethod{
				Name:     mname,
				Input:    input,
				Output:   output,
				Metadata: metadataFromDoc(mm),
			})
		}
	}
	return svc, nil
}

func definitionFromDoc(m map[string]any, path string) (ir.TypeDefinition, error) {
	var def ir.TypeDefinition
	name, ok := m["name"].(string)
	if !ok || name == "" {
		return def, fmt.Errorf("schemaio: %s: missing name", path)
	}
	def.Name = name
	def.Metadata = metadataFromDoc(m)

	if fn, ok := m["fieldNumbers"].(map[string]any); ok {
		def.FieldNumbers = make(map[string]int, len(fn))
		for k, v := range fn {
			n, ok := intValue(v)
			if !ok {
				return def, fmt.Errorf("schemaio: %s: fieldNumbers.%s is not an integer", path, k)
			}
			def.FieldNumbers[k] = n
		}
	}

	t, err := typeFromDoc(m["type"], path+".type")
	if err != nil {
		return def, err
	}
	def.Type = t
	return def, nil
}

func typeFromDoc(v any, path string) (ir.Type, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schemaio: %s: type expression must be a mapping", path)
	}
	kindName, _ := m["kind"].(string)
	if kindName == "" {
		return nil, fmt.Errorf("schemaio: %s: missing kind", path)
	}

	var t ir.Type
	var err error
	switch kindName {
	case "string", "number", "integer", "boolean", "null", "any", "unknown", "never", "void", "symbol":
		t = &ir.Primitive{Name: ir.PrimitiveType(kindName)}
	case "literal":
		t = &ir.Literal{Value: m["value"]}
	case "array":
		item, ierr := typeFromDoc(m["items"], path+".items")
		if ierr != nil {
			return nil, ierr
		}
		t = &ir.Array{Item: item}
	case "tuple":
		items, ierr := typeListFromDoc(m["items"], path+".items")
		if ierr != nil {
			return nil, ierr
		}
		t = &ir.Tuple{Items: items}
	case "object":
		t, err = objectFromDoc(m, path)
	case "reference":
		name, _ := m["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("schemaio: %s: reference needs a name", path)
		}
		t = &ir.Reference{Name: name}
	case "union":
		members, ierr := typeListFromDoc(m["types"], path+".types")
		if ierr != nil {
			return nil, ierr
		}
		u := &ir.Union{Types: ir.SimplifyUnion(members)}
		if d, ok := m["discriminator"].(map[string]any); ok {
			u.Discriminator = discriminatorFromDoc(d)
		}
		t = u
	case "intersection":
		members, ierr := typeListFromDoc(m["types"], path+".types")
		if ierr != nil {
			return nil, ierr
		}
		t = &ir.Intersection{Types: members}
	case "map":
		key, kerr := typeFromDoc(m["key"], path+".key")
		if kerr != nil {
			return nil, kerr
		}
		val, verr := typeFromDoc(m["value"], path+".value")
		if verr != nil {
			return nil, verr
		}
		t = &ir.Map{Key: key, Value: val}
	case "date":
		t = &ir.Date{}
	case "enum":
		t, err = enumFromDoc(m, path)
	default:
		return nil, fmt.Errorf("schemaio: %s: unknown kind %q", path, kindName)
	}
	if err != nil {
		return nil, err
	}

	ann := t.Annotation()
	ann.Metadata = metadataFromDoc(m)
	ann.Constraints = constraintsFromDoc(m["constraints"])
	if f, ok := m["format"].(map[string]any); ok {
		name, _ := f["name"].(string)
		category, _ := f["category"].(string)
		ann.Format = &ir.Format{Name: name, Category: ir.FormatCategory(category)}
	} else if f, ok := m["format"].(string); ok {
		ann.Format = &ir.Format{Name: f, Category: ir.FormatOther}
	}
	return t, nil
}

func objectFromDoc(m map[string]any, path string) (ir.Type, error) {
	o := &ir.Object{}
	if props, ok := m["properties"].([]any); ok {
		for i, raw := range props {
			pm, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("schemaio: %s.properties[%d] is not a mapping", path, i)
			}
			name, _ := pm["name"].(string)
			if name == "" {
				return nil, fmt.Errorf("schemaio: %s.properties[%d]: missing name", path, i)
			}
			pt, err := typeFromDoc(pm["type"], fmt.Sprintf("%s.properties[%d].type", path, i))
			if err != nil {
				return nil, err
			}
			required, _ := pm["required"].(bool)
			readonly, _ := pm["readonly"].(bool)
			o.Properties = append(o.Properties, ir.Property{
				Name:        name,
				Type:        pt,
				Required:    required,
				Readonly:    readonly,
				Metadata:    metadataFromDoc(pm),
				Constraints: constraintsFromDoc(pm["constraints"]),
			})
		}
	}
	switch ap := m["additionalProperties"].(type) {
	case bool:
		o.Additional = &ir.Additional{Allowed: ap}
	case map[string]any:
		sch, err := typeFromDoc(ap, path+".additionalProperties")
		if err != nil {
			return nil, err
		}
		o.Additional = &ir.Additional{Allowed: true, Schema: sch}
	}
	if idx, ok := m["index"].(map[string]any); ok {
		key, kerr := typeFromDoc(idx["key"], path+".index.key")
		if kerr != nil {
			return nil, kerr
		}
		val, verr := typeFromDoc(idx["value"], path+".index.value")
		if verr != nil {
			return nil, verr
		}
		o.Index = &ir.IndexSignature{Key: key, Value: val}
	}
	return o, nil
}

func enumFromDoc(m map[string]any, path string) (ir.Type, error) {
	raw, ok := m["members"].([]any)
	if !ok {
		return nil, fmt.Errorf("schemaio: %s: enum needs a members list", path)
	}
	e := &ir.Enum{}
	for i, rm := range raw {
		mm, ok := rm.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("schemaio: %s.members[%d] is not a mapping", path, i)
		}
		name, _ := mm["name"].(string)
		e.Members = append(e.Members, ir.EnumMember{Name: name, Value: mm["value"]})
	}
	return e, nil
}

func typeListFromDoc(v any, path string) ([]ir.Type, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("schemaio: %s: expected a list of type expressions", path)
	}
	out := make([]ir.Type, 0, len(raw))
	for i, rv := range raw {
		t, err := typeFromDoc(rv, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func discriminatorFromDoc(m map[string]any) *ir.Discriminator {
	d := &ir.Discriminator{}
	d.Property, _ = m["property"].(string)
	if raw, ok := m["mapping"].(map[string]any); ok {
		d.Mapping = make(map[string]int, len(raw))
		for k, v := range raw {
			if n, ok := intValue(v); ok {
				d.Mapping[k] = n
			}
		}
	}
	return d
}

func metadataFromDoc(m map[string]any) *ir.Metadata {
	md := &ir.Metadata{}
	used := false
	if d, ok := m["description"].(string); ok && d != "" {
		md.Description = d
		used = true
	}
	if dep, ok := m["deprecated"].(bool); ok && dep {
		md.Deprecated = true
		used = true
	}
	if def, ok := m["default"]; ok {
		md.Default = def
		used = true
	}
	if ex, ok := m["examples"].([]any); ok && len(ex) > 0 {
		md.Examples = ex
		used = true
	}
	if !used {
		return nil
	}
	return md
}

func constraintsFromDoc(v any) *ir.Constraints {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}
	c := &ir.Constraints{}
	c.Minimum = floatPtr(m, "minimum")
	c.Maximum = floatPtr(m, "maximum")
	c.ExclusiveMinimum = floatPtr(m, "exclusiveMinimum")
	c.ExclusiveMaximum = floatPtr(m, "exclusiveMaximum")
	c.MultipleOf = floatPtr(m, "multipleOf")
	c.MinLength = intPtr(m, "minLength")
	c.MaxLength = intPtr(m, "maxLength")
	c.Pattern, _ = m["pattern"].(string)
	c.MinItems = intPtr(m, "minItems")
	c.MaxItems = intPtr(m, "maxItems")
	c.UniqueItems, _ = m["uniqueItems"].(bool)
	c.MinProperties = intPtr(m, "minProperties")
	c.MaxProperties = intPtr(m, "maxProperties")
	if e, ok := m["enum"].([]any); ok {
		c.Enum = e
	}
	return c
}

func floatPtr(m map[string]any, key string) *float64 {
	if v, ok := m[key]; ok {
		switch n := v.(type) {
		case float64:
			return &n
		case int:
			f := float64(n)
			return &f
		}
	}
	return nil
}

func intPtr(m map[string]any, key string) *int {
	if v, ok := m[key]; ok {
		if n, ok := intValue(v); ok {
			return &n
		}
	}
	return nil
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	case uint64:
		return int(n), true
	}
	return 0, false
}
