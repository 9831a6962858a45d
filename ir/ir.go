// Package ir defines the intermediate representation shared by every
// converter and generator in typeforge. The model is a closed tagged union:
// one concrete node struct per Kind, all implementing Type. Generators
// branch on Kind (or a type switch over the concrete structs) and never
// probe fields without checking the kind first.
//
// IR nodes are immutable value structures: they are constructed once per
// conversion pass, owned by the Schema that contains them, and only read
// afterwards. Cycles exist solely at the Reference level; inline nodes
// never form a literal cycle.
package ir

// Kind identifies an IR node variant.
type Kind int

const (
	KindPrimitive Kind = iota
	KindLiteral
	KindArray
	KindTuple
	KindObject
	KindReference
	KindUnion
	KindIntersection
	KindMap
	KindDate
	KindEnum
	KindFunction
)

var kindNames = map[Kind]string{
	KindPrimitive:    "primitive",
	KindLiteral:      "literal",
	KindArray:        "array",
	KindTuple:        "tuple",
	KindObject:       "object",
	KindReference:    "reference",
	KindUnion:        "union",
	KindIntersection: "intersection",
	KindMap:          "map",
	KindDate:         "date",
	KindEnum:         "enum",
	KindFunction:     "function",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// KindFromName maps a kind name (as used in schema documents) back to a
// Kind. The second result is false for unrecognized names.
func KindFromName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Type is the root IR node interface. It is sealed: the only
// implementations are the node structs in this package.
type Type interface {
	Kind() Kind
	// Annotation exposes the optional metadata/constraints/format carried
	// by every node variant.
	Annotation() *Annotation
}

// Annotation is the optional decoration every node variant may carry.
type Annotation struct {
	Metadata    *Metadata
	Constraints *Constraints
	Format      *Format
}

// annotated is embedded by every node variant to satisfy Annotation().
type annotated struct {
	Ann Annotation
}

func (a *annotated) Annotation() *Annotation { return &a.Ann }

// PrimitiveType names the scalar carried by a Primitive node.
type PrimitiveType string

const (
	PrimString  PrimitiveType = "string"
	PrimNumber  PrimitiveType = "number"
	PrimInteger PrimitiveType = "integer"
	PrimBoolean PrimitiveType = "boolean"
	PrimNull    PrimitiveType = "null"
	PrimAny     PrimitiveType = "any"
	PrimUnknown PrimitiveType = "unknown"
	PrimNever   PrimitiveType = "never"
	PrimVoid    PrimitiveType = "void"
	PrimSymbol  PrimitiveType = "symbol"
)

// Primitive is a scalar leaf node.
type Primitive struct {
	annotated
	Name PrimitiveType
}

func (p *Primitive) Kind() Kind { return KindPrimitive }

// Literal is a single-value type. Value is a string, a float64, a bool, or
// nil (the null literal).
type Literal struct {
	annotated
	Value any
}

func (l *Literal) Kind() Kind { return KindLiteral }

// Array is a homogeneous sequence of Item.
type Array struct {
	annotated
	Item Type
}

func (a *Array) Kind() Kind { return KindArray }

// Tuple is a fixed-length heterogeneous sequence.
type Tuple struct {
	annotated
	Items []Type
}

func (t *Tuple) Kind() Kind { return KindTuple }

// Additional controls unknown object keys. A nil *Additional on Object
// leaves the policy unspecified; Allowed=false closes the object; a
// non-nil Schema types the extra values.
type Additional struct {
	Allowed bool
	Schema  Type
}

// IndexSignature describes dynamic keys declared alongside fixed
// properties ([key: K]: V).
type IndexSignature struct {
	Key   Type
	Value Type
}

// Object is a structural record. Property order is significant: it is the
// default source of wire field numbering.
type Object struct {
	annotated
	Properties []Property
	Additional *Additional
	Index      *IndexSignature
}

func (o *Object) Kind() Kind { return KindObject }

// Property is one named member of an Object. Required=false is the sole
// carrier of optionality once a type is normalized for codec generation.
type Property struct {
	Name        string
	Type        Type
	Required    bool
	Readonly    bool
	Metadata    *Metadata
	Constraints *Constraints
}

// Reference names another definition. It resolves against the
// available-types set the caller supplies to a generator; the model never
// fabricates the referenced structure.
type Reference struct {
	annotated
	Name     string
	TypeArgs []Type
}

func (r *Reference) Kind() Kind { return KindReference }

// Discriminator identifies which union member a value represents: the
// value of Property selects the member at Mapping[value].
type Discriminator struct {
	Property string
	Mapping  map[string]int
}

// Union is a sum type. Converters receive it flattened and deduplicated
// (see SimplifyUnion); no member is itself a Union.
type Union struct {
	annotated
	Types         []Type
	Discriminator *Discriminator
}

func (u *Union) Kind() Kind { return KindUnion }

// Intersection is a structural merge of its members.
type Intersection struct {
	annotated
	Types []Type
}

func (i *Intersection) Kind() Kind { return KindIntersection }

// Map is a dynamic-key dictionary.
type Map struct {
	annotated
	Key   Type
	Value Type
}

func (m *Map) Kind() Kind { return KindMap }

// Date is distinguished from Primitive so generators can special-case
// temporal encoding.
type Date struct {
	annotated
}

func (d *Date) Kind() Kind { return KindDate }

// EnumMember is one named value in a closed value set.
type EnumMember struct {
	Name     string
	Value    any // string or float64
	Metadata *Metadata
}

// Enum is a closed value set.
type Enum struct {
	annotated
	Members []EnumMember
}

func (e *Enum) Kind() Kind { return KindEnum }

// Parameter is one function parameter.
type Parameter struct {
	Name     string
	Type     Type
	Optional bool
}

// Function is included for completeness of the shared model; the binary
// codec generator does not consume it.
type Function struct {
	annotated
	Parameters []Parameter
	Return     Type
}

func (f *Function) Kind() Kind { return KindFunction }
