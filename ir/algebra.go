package ir

// Type algebra: pure predicate and normalization functions over IR nodes.
// None of these mutate their inputs; absence is an empty result, never an
// error.

// IsPrimitive reports whether t is a primitive node.
func IsPrimitive(t Type) bool { return t != nil && t.Kind() == KindPrimitive }

// IsPrimitiveOf reports whether t is the given primitive.
func IsPrimitiveOf(t Type, name PrimitiveType) bool {
	p, ok := t.(*Primitive)
	return ok && p.Name == name
}

// IsNull reports whether t is the null primitive.
func IsNull(t Type) bool { return IsPrimitiveOf(t, PrimNull) }

// IsVoid reports whether t is the void primitive.
func IsVoid(t Type) bool { return IsPrimitiveOf(t, PrimVoid) }

// IsLiteral reports whether t is a literal node.
func IsLiteral(t Type) bool { return t != nil && t.Kind() == KindLiteral }

// IsArray reports whether t is an array node.
func IsArray(t Type) bool { return t != nil && t.Kind() == KindArray }

// IsTuple reports whether t is a tuple node.
func IsTuple(t Type) bool { return t != nil && t.Kind() == KindTuple }

// IsObject reports whether t is an object node.
func IsObject(t Type) bool { return t != nil && t.Kind() == KindObject }

// IsReference reports whether t is a reference node.
func IsReference(t Type) bool { return t != nil && t.Kind() == KindReference }

// IsUnion reports whether t is a union node.
func IsUnion(t Type) bool { return t != nil && t.Kind() == KindUnion }

// IsIntersection reports whether t is an intersection node.
func IsIntersection(t Type) bool { return t != nil && t.Kind() == KindIntersection }

// IsMap reports whether t is a map node.
func IsMap(t Type) bool { return t != nil && t.Kind() == KindMap }

// IsDate reports whether t is a date node.
func IsDate(t Type) bool { return t != nil && t.Kind() == KindDate }

// IsEnum reports whether t is an enum node.
func IsEnum(t Type) bool { return t != nil && t.Kind() == KindEnum }

// IsFunction reports whether t is a function node.
func IsFunction(t Type) bool { return t != nil && t.Kind() == KindFunction }

// SimplifyUnion flattens nested unions and removes structural duplicates,
// preserving first-occurrence order. Callers collapse a single-element
// result to that element.
func SimplifyUnion(types []Type) []Type {
	flat := make([]Type, 0, len(types))
	var walk func(ts []Type)
	walk = func(ts []Type) {
		for _, t := range ts {
			if u, ok := t.(*Union); ok {
				walk(u.Types)
				continue
			}
			if t == nil {
				continue
			}
			flat = append(flat, t)
		}
	}
	walk(types)

	out := make([]Type, 0, len(flat))
	for _, t := range flat {
		dup := false
		for _, seen := range out {
			if Equal(seen, t) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	return out
}

// UnionContainsNull reports whether any member is the null primitive.
func UnionContainsNull(types []Type) bool {
	for _, t := range types {
		if IsNull(t) {
			return true
		}
	}
	return false
}

// RemoveNullFromUnion returns the member list without null primitives.
func RemoveNullFromUnion(types []Type) []Type {
	out := make([]Type, 0, len(types))
	for _, t := range types {
		if IsNull(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// RemoveAbsentFromUnion returns the member list without null and void
// primitives. Codec generation unwraps optional properties with it: when
// exactly one member survives, that member drives wire-type selection.
func RemoveAbsentFromUnion(types []Type) []Type {
	out := make([]Type, 0, len(types))
	for _, t := range types {
		if IsNull(t) || IsVoid(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
