package ir

// TypeDefinition is one named type in a Schema. Name is the stable handle
// Reference nodes resolve against. FieldNumbers, when present, overrides
// the positional field numbering the wire codec generator would otherwise
// derive from property order; it is required when numbers must stay stable
// across schema evolution.
type TypeDefinition struct {
	Name         string
	Type         Type
	Metadata     *Metadata
	FieldNumbers map[string]int
}

// ServiceMethod is one operation of a Service, referencing named types for
// its input and output.
type ServiceMethod struct {
	Name     string
	Input    string // type name, resolved against Schema.Types
	Output   string // type name, resolved against Schema.Types
	Metadata *Metadata
}

// Service is a named group of methods. Carried for converters that emit
// interface-schema documents; the codec generators ignore it.
type Service struct {
	Name     string
	Methods  []ServiceMethod
	Metadata *Metadata
}

// Schema is the unit exchanged between converters and generators: the
// arena that owns every definition. Reference nodes hold only a name into
// Types, never a structural pointer, which is what keeps circular type
// graphs representable without ownership cycles.
type Schema struct {
	Version  string
	Package  string
	Types    []TypeDefinition
	Services []Service
	Metadata *Metadata
}

// Lookup returns the definition with the given name.
func (s *Schema) Lookup(name string) (TypeDefinition, bool) {
	for _, d := range s.Types {
		if d.Name == name {
			return d, true
		}
	}
	return TypeDefinition{}, false
}

// TypeIndex returns a name-keyed view of Types, the shape generators take
// as their available-types set.
func (s *Schema) TypeIndex() map[string]TypeDefinition {
	idx := make(map[string]TypeDefinition, len(s.Types))
	for _, d := range s.Types {
		idx[d.Name] = d
	}
	return idx
}
