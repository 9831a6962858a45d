package ir

// Construction helpers. These are conveniences for converters and tests;
// building the node structs directly is equally valid.

// String returns a string primitive node.
func String() *Primitive { return &Primitive{Name: PrimString} }

// Number returns a number primitive node.
func Number() *Primitive { return &Primitive{Name: PrimNumber} }

// Integer returns an integer primitive node.
func Integer() *Primitive { return &Primitive{Name: PrimInteger} }

// Bool returns a boolean primitive node.
func Bool() *Primitive { return &Primitive{Name: PrimBoolean} }

// Null returns the null primitive node.
func Null() *Primitive { return &Primitive{Name: PrimNull} }

// Void returns the void primitive node.
func Void() *Primitive { return &Primitive{Name: PrimVoid} }

// Any returns the any primitive node.
func Any() *Primitive { return &Primitive{Name: PrimAny} }

// LiteralOf returns a literal node holding v.
func LiteralOf(v any) *Literal { return &Literal{Value: v} }

// ArrayOf returns an array node over item.
func ArrayOf(item Type) *Array { return &Array{Item: item} }

// TupleOf returns a tuple node over items.
func TupleOf(items ...Type) *Tuple { return &Tuple{Items: items} }

// ObjectOf returns an object node over props in the given order.
func ObjectOf(props ...Property) *Object { return &Object{Properties: props} }

// Prop returns a required property.
func Prop(name string, t Type) Property { return Property{Name: name, Type: t, Required: true} }

// OptProp returns an optional property.
func OptProp(name string, t Type) Property { return Property{Name: name, Type: t} }

// Ref returns a reference node to a named definition.
func Ref(name string) *Reference { return &Reference{Name: name} }

// UnionOf returns a union node over the simplified member list. A single
// surviving member is returned directly instead of a one-member union.
func UnionOf(types ...Type) Type {
	members := SimplifyUnion(types)
	if len(members) == 1 {
		return members[0]
	}
	return &Union{Types: members}
}

// MapOf returns a map node.
func MapOf(key, value Type) *Map { return &Map{Key: key, Value: value} }

// DateOf returns a date node.
func DateOf() *Date { return &Date{} }

// Nullable wraps t in a union with null unless t already admits null.
func Nullable(t Type) Type {
	if u, ok := t.(*Union); ok {
		if UnionContainsNull(u.Types) {
			return t
		}
		return UnionOf(append(append([]Type{}, u.Types...), Null())...)
	}
	if IsNull(t) {
		return t
	}
	return UnionOf(t, Null())
}

// Definition returns a named definition over t.
func Definition(name string, t Type) TypeDefinition {
	return TypeDefinition{Name: name, Type: t}
}
