package ir

import "testing"

func TestEqual_Primitives(t *testing.T) {
	if !Equal(String(), String()) {
		t.Fatalf("identical primitives must be equal")
	}
	if Equal(String(), Integer()) {
		t.Fatalf("different primitives must not be equal")
	}
	if Equal(String(), nil) || !Equal(nil, nil) {
		t.Fatalf("nil handling broken")
	}
}

func TestEqual_Objects(t *testing.T) {
	a := ObjectOf(Prop("id", Integer()), OptProp("name", String()))
	b := ObjectOf(Prop("id", Integer()), OptProp("name", String()))
	if !Equal(a, b) {
		t.Fatalf("structurally identical objects must be equal")
	}
	c := ObjectOf(Prop("id", Integer()), Prop("name", String()))
	if Equal(a, c) {
		t.Fatalf("required flag participates in structural equality")
	}
	// property order is identity
	d := ObjectOf(OptProp("name", String()), Prop("id", Integer()))
	if Equal(a, d) {
		t.Fatalf("property order participates in structural equality")
	}
}

func TestEqual_ReferencesAndMaps(t *testing.T) {
	if !Equal(Ref("User"), Ref("User")) || Equal(Ref("User"), Ref("Order")) {
		t.Fatalf("reference equality is by name")
	}
	if !Equal(MapOf(String(), Integer()), MapOf(String(), Integer())) {
		t.Fatalf("map equality is componentwise")
	}
	if Equal(MapOf(String(), Integer()), MapOf(String(), String())) {
		t.Fatalf("map value types must match")
	}
}

func TestEqual_Literals(t *testing.T) {
	if !Equal(LiteralOf("on"), LiteralOf("on")) {
		t.Fatalf("identical literals must be equal")
	}
	if Equal(LiteralOf("on"), LiteralOf("off")) || Equal(LiteralOf("1"), LiteralOf(float64(1))) {
		t.Fatalf("literal value (and its type) participates in equality")
	}
}

func TestSchemaLookup(t *testing.T) {
	s := &Schema{Types: []TypeDefinition{
		Definition("User", ObjectOf(Prop("id", Integer()))),
		Definition("Order", ObjectOf(Prop("total", Number()))),
	}}
	if _, ok := s.Lookup("Order"); !ok {
		t.Fatalf("expected Order to resolve")
	}
	if _, ok := s.Lookup("Missing"); ok {
		t.Fatalf("unknown names must not resolve")
	}
	idx := s.TypeIndex()
	if len(idx) != 2 {
		t.Fatalf("expected 2 indexed definitions, got %d", len(idx))
	}
}
