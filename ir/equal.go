package ir

import "reflect"

// Equal reports deep structural equality of two IR nodes. Annotations
// (metadata, constraints, format) participate: a string with a pattern is
// not a duplicate of a bare string.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if !reflect.DeepEqual(*a.Annotation(), *b.Annotation()) {
		return false
	}
	switch x := a.(type) {
	case *Primitive:
		return x.Name == b.(*Primitive).Name
	case *Literal:
		return reflect.DeepEqual(x.Value, b.(*Literal).Value)
	case *Array:
		return Equal(x.Item, b.(*Array).Item)
	case *Tuple:
		return equalSlice(x.Items, b.(*Tuple).Items)
	case *Object:
		return equalObject(x, b.(*Object))
	case *Reference:
		y := b.(*Reference)
		return x.Name == y.Name && equalSlice(x.TypeArgs, y.TypeArgs)
	case *Union:
		y := b.(*Union)
		return equalSlice(x.Types, y.Types) &&
			reflect.DeepEqual(x.Discriminator, y.Discriminator)
	case *Intersection:
		return equalSlice(x.Types, b.(*Intersection).Types)
	case *Map:
		y := b.(*Map)
		return Equal(x.Key, y.Key) && Equal(x.Value, y.Value)
	case *Date:
		return true
	case *Enum:
		y := b.(*Enum)
		if len(x.Members) != len(y.Members) {
			return false
		}
		for i := range x.Members {
			if x.Members[i].Name != y.Members[i].Name ||
				!reflect.DeepEqual(x.Members[i].Value, y.Members[i].Value) {
				return false
			}
		}
		return true
	case *Function:
		y := b.(*Function)
		if len(x.Parameters) != len(y.Parameters) || !Equal(x.Return, y.Return) {
			return false
		}
		for i := range x.Parameters {
			if x.Parameters[i].Name != y.Parameters[i].Name ||
				x.Parameters[i].Optional != y.Parameters[i].Optional ||
				!Equal(x.Parameters[i].Type, y.Parameters[i].Type) {
				return false
			}
		}
		return true
	}
	return false
}

func equalSlice(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalObject(a, b *Object) bool {
	if len(a.Properties) != len(b.Properties) {
		return false
	}
	for i := range a.Properties {
		pa, pb := a.Properties[i], b.Properties[i]
		if pa.Name != pb.Name || pa.Required != pb.Required || pa.Readonly != pb.Readonly {
			return false
		}
		if !Equal(pa.Type, pb.Type) {
			return false
		}
		if !reflect.DeepEqual(pa.Metadata, pb.Metadata) ||
			!reflect.DeepEqual(pa.Constraints, pb.Constraints) {
			return false
		}
	}
	if (a.Additional == nil) != (b.Additional == nil) {
		return false
	}
	if a.Additional != nil {
		if a.Additional.Allowed != b.Additional.Allowed || !Equal(a.Additional.Schema, b.Additional.Schema) {
			return false
		}
	}
	if (a.Index == nil) != (b.Index == nil) {
		return false
	}
	if a.Index != nil {
		if !Equal(a.Index.Key, b.Index.Key) || !Equal(a.Index.Value, b.Index.Value) {
			return false
		}
	}
	return true
}
