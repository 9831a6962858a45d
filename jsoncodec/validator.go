// Package jsoncodec generates JSON codecs and structural validators from
// IR definitions: the JSON-side peers of the binary wire codec. A
// Validator walks a decoded value against the captured definition and
// accumulates every problem; a Codec couples that walk with the JSON
// engine for decode-then-validate / validate-then-encode.
package jsoncodec

import (
	"fmt"
	"math"
	"reflect"
	"regexp"

	typeforge "github.com/typeforge/typeforge"
	"github.com/typeforge/typeforge/format"
	"github.com/typeforge/typeforge/i18n"
	"github.com/typeforge/typeforge/ir"
)

// Option configures validator/codec generation.
type Option func(*config)

type config struct {
	available map[string]ir.TypeDefinition
}

// WithTypes adds named definitions to the available-types set that
// Reference nodes resolve against.
func WithTypes(defs ...ir.TypeDefinition) Option {
	return func(c *config) {
		for _, d := range defs {
			c.available[d.Name] = d
		}
	}
}

// WithSchema adds every definition of s to the available-types set.
func WithSchema(s *ir.Schema) Option {
	return func(c *config) {
		for _, d := range s.Types {
			c.available[d.Name] = d
		}
	}
}

// Validator checks decoded values against one definition. Patterns are
// compiled at generation time; Validate itself allocates only its issue
// list and is safe for concurrent use.
type Validator struct {
	def       ir.TypeDefinition
	available map[string]ir.TypeDefinition
	patterns  map[string]*regexp.Regexp
}

// NewValidator generates a validator for def. Unresolvable references and
// invalid constraint patterns are generation-time errors.
func NewValidator(def ir.TypeDefinition, opts ...Option) (*Validator, error) {
	cfg := &config{available: make(map[string]ir.TypeDefinition)}
	for _, opt := range opts {
		opt(cfg)
	}
	if def.Name != "" {
		cfg.available[def.Name] = def
	}
	v := &Validator{def: def, available: cfg.available, patterns: make(map[string]*regexp.Regexp)}
	if err := v.compile(def.Type, map[string]bool{def.Name: true}); err != nil {
		return nil, err
	}
	return v, nil
}

// compile walks the definition once, resolving references and compiling
// every pattern constraint. visited breaks reference cycles.
func (v *Validator) compile(t ir.Type, visited map[string]bool) error {
	if t == nil {
		return nil
	}
	if c := t.Annotation().Constraints; c != nil && c.Pattern != "" {
		if _, ok := v.patterns[c.Pattern]; !ok {
			re, err := regexp.Compile(c.Pattern)
			if err != nil {
				return fmt.Errorf("jsoncodec: invalid pattern %q: %w", c.Pattern, err)
			}
			v.patterns[c.Pattern] = re
		}
	}
	switch x := t.(type) {
	case *ir.Array:
		return v.compile(x.Item, visited)
	case *ir.Tuple:
		for _, it := range x.Items {
			if err := v.compile(it, visited); err != nil {
				return err
			}
		}
	case *ir.Object:
		for _, p := range x.Properties {
			if c := p.Constraints; c != nil && c.Pattern != "" {
				if _, ok := v.patterns[c.Pattern]; !ok {
					re, err := regexp.Compile(c.Pattern)
					if err != nil {
						return fmt.Errorf("jsoncodec: invalid pattern %q: %w", c.Pattern, err)
					}
					v.patterns[c.Pattern] = re
				}
			}
			if err := v.compile(p.Type, visited); err != nil {
				return err
			}
		}
		if x.Additional != nil && x.Additional.Schema != nil {
			return v.compile(x.Additional.Schema, visited)
		}
		if x.Index != nil {
			return v.compile(x.Index.Value, visited)
		}
	case *ir.Reference:
		if visited[x.Name] {
			return nil
		}
		def, ok := v.available[x.Name]
		if !ok {
			return fmt.Errorf("jsoncodec: reference %q does not resolve in the available types", x.Name)
		}
		visited[x.Name] = true
		return v.compile(def.Type, visited)
	case *ir.Union:
		for _, m := range x.Types {
			if err := v.compile(m, visited); err != nil {
				return err
			}
		}
	case *ir.Intersection:
		for _, m := range x.Types {
			if err := v.compile(m, visited); err != nil {
				return err
			}
		}
	case *ir.Map:
		if err := v.compile(x.Key, visited); err != nil {
			return err
		}
		return v.compile(x.Value, visited)
	}
	return nil
}

// Validate walks value against the definition and returns accumulated
// typeforge.Issues, or nil when the value conforms.
func (v *Validator) Validate(value any) error {
	var iss typeforge.Issues
	v.walk(value, v.def.Type, "/", &iss)
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (v *Validator) walk(val any, t ir.Type, path string, iss *typeforge.Issues) {
	switch x := t.(type) {
	case *ir.Primitive:
		v.walkPrimitive(val, x, path, iss)
	case *ir.Literal:
		if !reflect.DeepEqual(val, x.Value) {
			addIssue(iss, path, typeforge.CodeInvalidType, map[string]any{"expected": x.Value, "actual": val})
		}
	case *ir.Array:
		v.walkArray(val, x, path, iss)
	case *ir.Tuple:
		arr, ok := val.([]any)
		if !ok {
			addIssue(iss, path, typeforge.CodeInvalidType, map[string]any{"expected": "array"})
			return
		}
		if len(arr) != len(x.Items) {
			addIssue(iss, path, typeforge.CodeInvalidType, map[string]any{"expected": len(x.Items), "actual": len(arr)})
			return
		}
		for i, el := range arr {
			v.walk(el, x.Items[i], typeforge.IndexPath(path, i), iss)
		}
	case *ir.Object:
		v.walkObject(val, x, path, iss)
	case *ir.Reference:
		def, ok := v.available[x.Name]
		if !ok {
			addIssue(iss, path, typeforge.CodeParseError, map[string]any{"reference": x.Name})
			return
		}
		v.walk(val, def.Type, path, iss)
	case *ir.Union:
		v.walkUnion(val, x, path, iss)
	case *ir.Intersection:
		for _, m := range x.Types {
			v.walk(val, m, path, iss)
		}
	case *ir.Map:
		m, ok := val.(map[string]any)
		if !ok {
			addIssue(iss, path, typeforge.CodeInvalidType, map[string]any{"expected": "object"})
			return
		}
		for k, el := range m {
			v.walk(el, x.Value, typeforge.ChildPath(path, k), iss)
		}
	case *ir.Date:
		s, ok := val.(string)
		if !ok {
			addIssue(iss, path, typeforge.CodeInvalidType, map[string]any{"expected": "date-time string"})
			return
		}
		if _, err := format.ParseDateTime(s); err != nil {
			addIssue(iss, path, typeforge.CodeInvalidFormat, map[string]any{"format": "date-time"})
		}
	case *ir.Enum:
		for _, m := range x.Members {
			if reflect.DeepEqual(val, m.Value) {
				v.checkConstraints(val, t, path, iss)
				return
			}
		}
		addIssue(iss, path, typeforge.CodeInvalidEnum, map[string]any{"actual": val})
		return
	case *ir.Function:
		addIssue(iss, path, typeforge.CodeInvalidType, map[string]any{"expected": "data value"})
		return
	}
	v.checkConstraints(val, t, path, iss)
}

func (v *Validator) walkPrimitive(val any, p *ir.Primitive, path string, iss *typeforge.Issues) {
	switch p.Name {
	case ir.PrimString:
		s, ok := val.(string)
		if !ok {
			addIssue(iss, path, typeforge.CodeInvalidType, map[string]any{"expected": "string", "actual": jsonKind(val)})
			return
		}
		if f := p.Annotation().Format; f != nil {
			if check, known := format.Lookup(f.Name); known {
				if err := check(s); err != nil {
					addIssue(iss, path, typeforge.CodeInvalidFormat, map[string]any{"format": f.Name})
				}
			}
		}
	case ir.PrimNumber:
		if _, ok := numberValue(val); !ok {
			addIssue(iss, path, typeforge.CodeInvalidType, map[string]any{"expected": "number", "actual": jsonKind(val)})
		}
	case ir.PrimInteger:
		n, ok := numberValue(val)
		if !ok || n != math.Trunc(n) {
			addIssue(iss, path, typeforge.CodeInvalidType, map[string]any{"expected": "integer", "actual": jsonKind(val)})
		}
	case ir.PrimBoolean:
		if _, ok := val.(bool); !ok {
			addIssue(iss, path, typeforge.CodeInvalidType, map[string]any{"expected": "boolean", "actual": jsonKind(val)})
		}
	case ir.PrimNull, ir.PrimVoid:
		if val != nil {
			addIssue(iss, path, typeforge.CodeInvalidType, map[string]any{"expected": "null", "actual": jsonKind(val)})
		}
	case ir.PrimNever:
		addIssue(iss, path, typeforge.CodeInvalidType, map[string]any{"expected": "never"})
	}
	// any, unknown, symbol accept everything
}

func (v *Validator) walkArray(val any, a *ir.Array, path string, iss *typeforge.Issues) {
	arr, ok := val.([]any)
	if !ok {
		addIssue(iss, path, typeforge.CodeInvalidType, map[string]any{"expected": "array", "actual": jsonKind(val)})
		return
	}
	for i, el := range arr {
		v.walk(el, a.Item, typeforge.IndexPath(path, i), iss)
	}
	if c := a.Annotation().Constraints; c != nil && c.UniqueItems {
		for i := 1; i < len(arr); i++ {
			for j := 0; j < i; j++ {
				if reflect.DeepEqual(arr[i], arr[j]) {
					addIssue(iss, typeforge.IndexPath(path, i), typeforge.CodeUniqueness, nil)
				}
			}
		}
	}
}

func (v *Validator) walkObject(val any, o *ir.Object, path string, iss *typeforge.Issues) {
	m, ok := val.(map[string]any)
	if !ok {
		addIssue(iss, path, typeforge.CodeInvalidType, map[string]any{"expected": "object", "actual": jsonKind(val)})
		return
	}
	names := make(map[string]bool, len(o.Properties))
	for _, p := range o.Properties {
		names[p.Name] = true
		pv, present := m[p.Name]
		if !present {
			if p.Required {
				addIssue(iss, typeforge.ChildPath(path, p.Name), typeforge.CodeRequired, nil)
			}
			continue
		}
		ppath := typeforge.ChildPath(path, p.Name)
		v.walk(pv, p.Type, ppath, iss)
		v.applyConstraints(pv, p.Constraints, ppath, iss)
	}
	for k, extra := range m {
		if names[k] {
			continue
		}
		switch {
		case o.Additional != nil && o.Additional.Schema != nil:
			v.walk(extra, o.Additional.Schema, typeforge.ChildPath(path, k), iss)
		case o.Additional != nil && !o.Additional.Allowed:
			addIssue(iss, typeforge.ChildPath(path, k), typeforge.CodeUnknownKey, nil)
		case o.Index != nil:
			v.walk(extra, o.Index.Value, typeforge.ChildPath(path, k), iss)
		}
	}
}

func (v *Validator) walkUnion(val any, u *ir.Union, path string, iss *typeforge.Issues) {
	if d := u.Discriminator; d != nil {
		m, ok := val.(map[string]any)
		if ok {
			tag, _ := m[d.Property].(string)
			if tag == "" {
				addIssue(iss, typeforge.ChildPath(path, d.Property), typeforge.CodeDiscriminatorMissing, nil)
				return
			}
			idx, known := d.Mapping[tag]
			if !known || idx < 0 || idx >= len(u.Types) {
				addIssue(iss, typeforge.ChildPath(path, d.Property), typeforge.CodeDiscriminatorUnknown, map[string]any{"tag": tag})
				return
			}
			v.walk(val, u.Types[idx], path, iss)
			return
		}
	}
	// untagged: the first member that accepts the value wins
	for _, m := range u.Types {
		var probe typeforge.Issues
		v.walk(val, m, path, &probe)
		if len(probe) == 0 {
			return
		}
	}
	addIssue(iss, path, typeforge.CodeInvalidType, map[string]any{"expected": "one of the union members", "actual": jsonKind(val)})
}

func (v *Validator) checkConstraints(val any, t ir.Type, path string, iss *typeforge.Issues) {
	v.applyConstraints(val, t.Annotation().Constraints, path, iss)
}

func (v *Validator) applyConstraints(val any, c *ir.Constraints, path string, iss *typeforge.Issues) {
	if c == nil {
		return
	}
	if n, ok := numberValue(val); ok {
		if c.Minimum != nil && n < *c.Minimum {
			addIssue(iss, path, typeforge.CodeTooSmall, map[string]any{"min": *c.Minimum, "got": n})
		}
		if c.Maximum != nil && n > *c.Maximum {
			addIssue(iss, path, typeforge.CodeTooBig, map[string]any{"max": *c.Maximum, "got": n})
		}
		if c.ExclusiveMinimum != nil && n <= *c.ExclusiveMinimum {
			addIssue(iss, path, typeforge.CodeTooSmall, map[string]any{"exclusiveMin": *c.ExclusiveMinimum, "got": n})
		}
		if c.ExclusiveMaximum != nil && n >= *c.ExclusiveMaximum {
			addIssue(iss, path, typeforge.CodeTooBig, map[string]any{"exclusiveMax": *c.ExclusiveMaximum, "got": n})
		}
		if c.MultipleOf != nil && *c.MultipleOf != 0 && math.Mod(n, *c.MultipleOf) != 0 {
			addIssue(iss, path, typeforge.CodeInvalidFormat, map[string]any{"multipleOf": *c.MultipleOf, "got": n})
		}
	}
	if s, ok := val.(string); ok {
		length := len([]rune(s))
		if c.MinLength != nil && length < *c.MinLength {
			addIssue(iss, path, typeforge.CodeTooShort, map[string]any{"min": *c.MinLength, "got": length})
		}
		if c.MaxLength != nil && length > *c.MaxLength {
			addIssue(iss, path, typeforge.CodeTooLong, map[string]any{"max": *c.MaxLength, "got": length})
		}
		if c.Pattern != "" {
			if re := v.patterns[c.Pattern]; re != nil && !re.MatchString(s) {
				addIssue(iss, path, typeforge.CodePattern, map[string]any{"pattern": c.Pattern})
			}
		}
	}
	if arr, ok := val.([]any); ok {
		if c.MinItems != nil && len(arr) < *c.MinItems {
			addIssue(iss, path, typeforge.CodeTooShort, map[string]any{"minItems": *c.MinItems, "got": len(arr)})
		}
		if c.MaxItems != nil && len(arr) > *c.MaxItems {
			addIssue(iss, path, typeforge.CodeTooLong, map[string]any{"maxItems": *c.MaxItems, "got": len(arr)})
		}
	}
	if m, ok := val.(map[string]any); ok {
		if c.MinProperties != nil && len(m) < *c.MinProperties {
			addIssue(iss, path, typeforge.CodeTooShort, map[string]any{"minProperties": *c.MinProperties, "got": len(m)})
		}
		if c.MaxProperties != nil && len(m) > *c.MaxProperties {
			addIssue(iss, path, typeforge.CodeTooLong, map[string]any{"maxProperties": *c.MaxProperties, "got": len(m)})
		}
	}
	if len(c.Enum) > 0 {
		found := false
		for _, e := range c.Enum {
			if reflect.DeepEqual(val, e) {
				found = true
				break
			}
		}
		if !found {
			addIssue(iss, path, typeforge.CodeInvalidEnum, map[string]any{"actual": val})
		}
	}
}

func addIssue(iss *typeforge.Issues, path, code string, params map[string]any) {
	*iss = typeforge.AppendIssues(*iss, typeforge.Issue{
		Path:    path,
		Code:    code,
		Message: i18n.T(code, nil),
		Params:  params,
	})
}

func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int32, int64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return "unknown"
	}
}
