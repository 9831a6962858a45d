package wire_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	typeforge "github.com/typeforge/typeforge"
	"github.com/typeforge/typeforge/ir"
	"github.com/typeforge/typeforge/wire"
)

func mustCodec(t *testing.T, def ir.TypeDefinition, opts ...wire.Option) *wire.Codec {
	t.Helper()
	c, err := wire.NewCodec(def, opts...)
	require.NoError(t, err)
	return c
}

func TestSerialize_ScalarAndUnpackedStrings(t *testing.T) {
	// {id: integer (required), tags: array<string> (required)}
	def := ir.Definition("Item", ir.ObjectOf(
		ir.Prop("id", ir.Integer()),
		ir.Prop("tags", ir.ArrayOf(ir.String())),
	))
	c := mustCodec(t, def)

	data, err := c.Serialize(map[string]any{"id": int64(7), "tags": []any{"a", "bb"}})
	require.NoError(t, err)
	want := []byte{
		0x08, 0x07, // field 1, varint, 7
		0x12, 0x01, 'a', // field 2, length-delimited, "a"
		0x12, 0x02, 'b', 'b', // field 2 again (unpacked), "bb"
	}
	assert.Equal(t, want, data)

	back, err := c.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": int64(7), "tags": []any{"a", "bb"}}, back)
}

func TestSerialize_PackedIntegers(t *testing.T) {
	// {scores: array<integer> (required)}
	def := ir.Definition("Scores", ir.ObjectOf(
		ir.Prop("scores", ir.ArrayOf(ir.Integer())),
	))
	c := mustCodec(t, def)

	data, err := c.Serialize(map[string]any{"scores": []any{int64(1), int64(2), int64(300)}})
	require.NoError(t, err)
	want := []byte{
		0x0a, 0x04, // field 1, length-delimited, 4 payload bytes
		0x01, 0x02, 0xac, 0x02, // 1, 2, 300 (two bytes) with no per-element tags
	}
	assert.Equal(t, want, data)

	back, err := c.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"scores": []any{int64(1), int64(2), int64(300)}}, back)
}

func TestRoundTrip_AllFieldShapes(t *testing.T) {
	def := ir.Definition("Event", ir.ObjectOf(
		ir.Prop("name", ir.String()),
		ir.Prop("count", ir.Integer()),
		ir.Prop("ratio", ir.Number()),
		ir.Prop("active", ir.Bool()),
		ir.Prop("flags", ir.ArrayOf(ir.Bool())),
		ir.Prop("labels", ir.ArrayOf(ir.String())),
		ir.Prop("origin", ir.ObjectOf(
			ir.Prop("host", ir.String()),
			ir.OptProp("port", ir.Integer()),
		)),
		ir.OptProp("note", ir.String()),
	))
	c := mustCodec(t, def)

	value := map[string]any{
		"name":   "deploy",
		"count":  int64(3),
		"ratio":  float64(2),
		"active": true,
		"flags":  []any{true, false, true},
		"labels": []any{"x", "yz"},
		"origin": map[string]any{"host": "api", "port": int64(443)},
		// note omitted: optional-and-absent writes nothing
	}
	data, err := c.Serialize(value)
	require.NoError(t, err)

	back, err := c.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, value, back)
}

func TestRoundTrip_ExplicitFieldNumbers(t *testing.T) {
	def := ir.TypeDefinition{
		Name: "Stable",
		Type: ir.ObjectOf(
			ir.Prop("kept", ir.String()),
			ir.Prop("id", ir.Integer()),
		),
		FieldNumbers: map[string]int{"kept": 9, "id": 4},
	}
	c := mustCodec(t, def)

	data, err := c.Serialize(map[string]any{"kept": "v", "id": int64(1)})
	require.NoError(t, err)
	// field 9 tag = (9<<3)|2 = 0x4a; field 4 tag = (4<<3)|0 = 0x20
	assert.Equal(t, []byte{0x4a, 0x01, 'v', 0x20, 0x01}, data)

	back, err := c.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"kept": "v", "id": int64(1)}, back)
}

func TestRoundTrip_OptionalUnionUnwrap(t *testing.T) {
	// "string | null" optional collapses to a plain string field
	def := ir.Definition("Profile", ir.ObjectOf(
		ir.Prop("id", ir.Integer()),
		ir.OptProp("nick", ir.Nullable(ir.String())),
	))
	c := mustCodec(t, def)

	withNick := map[string]any{"id": int64(1), "nick": "kay"}
	data, err := c.Serialize(withNick)
	require.NoError(t, err)
	back, err := c.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, withNick, back)

	// nil value is treated as absent
	data, err = c.Serialize(map[string]any{"id": int64(1), "nick": nil})
	require.NoError(t, err)
	back, err = c.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": int64(1)}, back)
}

func TestRoundTrip_RecursiveReference(t *testing.T) {
	node := ir.Definition("Node", ir.ObjectOf(
		ir.Prop("name", ir.String()),
		ir.OptProp("children", ir.ArrayOf(ir.Ref("Node"))),
	))
	c := mustCodec(t, node)

	tree := map[string]any{
		"name": "root",
		"children": []any{
			map[string]any{"name": "left", "children": []any{}},
			map[string]any{
				"name": "right",
				"children": []any{
					map[string]any{"name": "leaf", "children": []any{}},
				},
			},
		},
	}
	data, err := c.Serialize(tree)
	require.NoError(t, err)
	back, err := c.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, tree, back)
}

func TestRoundTrip_CrossReference(t *testing.T) {
	address := ir.Definition("Address", ir.ObjectOf(
		ir.Prop("city", ir.String()),
	))
	user := ir.Definition("User", ir.ObjectOf(
		ir.Prop("id", ir.Integer()),
		ir.Prop("home", ir.Ref("Address")),
	))
	c := mustCodec(t, user, wire.WithTypes(address))

	v := map[string]any{"id": int64(5), "home": map[string]any{"city": "Kyoto"}}
	data, err := c.Serialize(v)
	require.NoError(t, err)
	back, err := c.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, v, back)
}

func TestSerialize_IntegerWraparound(t *testing.T) {
	def := ir.Definition("N", ir.ObjectOf(ir.Prop("v", ir.Integer())))
	c := mustCodec(t, def)

	data, err := c.Serialize(map[string]any{"v": int64(-1)})
	require.NoError(t, err)
	back, err := c.Parse(data)
	require.NoError(t, err)
	// unsigned 32-bit wraparound, no zig-zag: -1 comes back as 2^32-1
	assert.Equal(t, map[string]any{"v": int64(4294967295)}, back)
}

func TestSerialize_MissingRequired(t *testing.T) {
	def := ir.Definition("Item", ir.ObjectOf(
		ir.Prop("id", ir.Integer()),
		ir.Prop("name", ir.String()),
	))
	c := mustCodec(t, def)

	data, err := c.Serialize(map[string]any{"id": int64(1)})
	require.Error(t, err)
	assert.Nil(t, data, "no partial output on failure")
	iss, ok := typeforge.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, typeforge.CodeRequired, iss[0].Code)
	assert.Equal(t, "/name", iss[0].Path)
}

func TestSerialize_AccumulatesAllIssues(t *testing.T) {
	def := ir.Definition("Item", ir.ObjectOf(
		ir.Prop("id", ir.Integer()),
		ir.Prop("name", ir.String()),
		ir.Prop("tags", ir.ArrayOf(ir.String())),
	))
	c := mustCodec(t, def)

	// two shape errors plus one missing-required, reported together
	_, err := c.Serialize(map[string]any{
		"id":   "seven",
		"tags": []any{"ok", int64(3)},
	})
	iss, ok := typeforge.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 3, "one full walk reports every problem at once")

	paths := []string{iss[0].Path, iss[1].Path, iss[2].Path}
	assert.Contains(t, paths, "/id")
	assert.Contains(t, paths, "/name")
	assert.Contains(t, paths, "/tags/1")
}

func TestSerialize_TopLevelNotObject(t *testing.T) {
	def := ir.Definition("Item", ir.ObjectOf(ir.Prop("id", ir.Integer())))
	c := mustCodec(t, def)

	_, err := c.Serialize("nope")
	iss, ok := typeforge.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, typeforge.CodeInvalidType, iss[0].Code)
	assert.Equal(t, "/", iss[0].Path)
}

func TestSerializeTo_CallerBuffer(t *testing.T) {
	def := ir.Definition("Item", ir.ObjectOf(ir.Prop("id", ir.Integer())))
	c := mustCodec(t, def)
	value := map[string]any{"id": int64(7)}

	want, err := c.Serialize(value)
	require.NoError(t, err)

	buf := make([]byte, 16)
	n, err := c.SerializeTo(value, buf)
	require.NoError(t, err)
	assert.Equal(t, want, buf[:n])

	short := make([]byte, 1)
	_, err = c.SerializeTo(value, short)
	assert.ErrorIs(t, err, io.ErrShortBuffer)
}

func TestParse_MissingRequired(t *testing.T) {
	def := ir.Definition("Item", ir.ObjectOf(
		ir.Prop("id", ir.Integer()),
		ir.Prop("name", ir.String()),
	))
	c := mustCodec(t, def)

	// only field 1 present
	out, err := c.Parse([]byte{0x08, 0x07})
	require.Error(t, err)
	assert.Nil(t, out)
	iss, ok := typeforge.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, typeforge.CodeRequired, iss[0].Code)
	assert.Equal(t, "/name", iss[0].Path)
}

func TestParse_UnknownFieldForwardCompat(t *testing.T) {
	v1 := ir.Definition("ItemV1", ir.ObjectOf(
		ir.Prop("id", ir.Integer()),
	))
	v2 := ir.Definition("ItemV2", ir.ObjectOf(
		ir.Prop("id", ir.Integer()),
		ir.Prop("note", ir.String()),
		ir.Prop("weights", ir.ArrayOf(ir.Integer())),
	))
	old := mustCodec(t, v1)
	neu := mustCodec(t, v2)

	data, err := neu.Serialize(map[string]any{
		"id":      int64(9),
		"note":    "added later",
		"weights": []any{int64(10), int64(20)},
	})
	require.NoError(t, err)

	out, err := old.Parse(data)
	require.NoError(t, err, "unknown fields are skipped by wire type")
	assert.Equal(t, map[string]any{"id": int64(9)}, out)
}

func TestParse_TruncationRejected_Packed(t *testing.T) {
	def := ir.Definition("Scores", ir.ObjectOf(
		ir.Prop("scores", ir.ArrayOf(ir.Integer())),
	))
	c := mustCodec(t, def)

	data, err := c.Serialize(map[string]any{"scores": []any{int64(1), int64(2), int64(300)}})
	require.NoError(t, err)

	for i := 0; i < len(data); i++ {
		out, err := c.Parse(data[:i])
		assert.Errorf(t, err, "truncation at byte %d must fail", i)
		assert.Nilf(t, out, "truncation at byte %d must not return a partial object", i)
	}
}

func TestParse_TruncationRejected_Unpacked(t *testing.T) {
	// the trailing required scalar makes every truncation observable:
	// mid-field cuts are malformed input, field-boundary cuts drop "done"
	def := ir.Definition("Item", ir.ObjectOf(
		ir.Prop("id", ir.Integer()),
		ir.Prop("tags", ir.ArrayOf(ir.String())),
		ir.Prop("done", ir.Bool()),
	))
	c := mustCodec(t, def)

	data, err := c.Serialize(map[string]any{
		"id":   int64(7),
		"tags": []any{"a", "bb"},
		"done": true,
	})
	require.NoError(t, err)

	for i := 0; i < len(data); i++ {
		out, err := c.Parse(data[:i])
		assert.Errorf(t, err, "truncation at byte %d must fail", i)
		assert.Nilf(t, out, "truncation at byte %d must not return a partial object", i)
	}
}

func TestParse_UnsupportedWireType(t *testing.T) {
	def := ir.Definition("Item", ir.ObjectOf(ir.OptProp("id", ir.Integer())))
	c := mustCodec(t, def)

	// unknown field 3 carrying wire type 3 (group start)
	_, err := c.Parse([]byte{0x1b})
	var we *wire.WireError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, typeforge.CodeUnsupportedWire, we.Code)
}

func TestParse_FieldNumberZero(t *testing.T) {
	def := ir.Definition("Item", ir.ObjectOf(ir.OptProp("id", ir.Integer())))
	c := mustCodec(t, def)

	_, err := c.Parse([]byte{0x00, 0x00}) // tag with field number 0
	var we *wire.WireError
	require.ErrorAs(t, err, &we)
}

func TestParse_NestedLengthIsExact(t *testing.T) {
	def := ir.Definition("Outer", ir.ObjectOf(
		ir.Prop("inner", ir.ObjectOf(ir.OptProp("v", ir.Integer()))),
	))
	c := mustCodec(t, def)

	// inner declares 2 payload bytes but only 1 remains
	_, err := c.Parse([]byte{0x0a, 0x02, 0x08})
	var we *wire.WireError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, typeforge.CodeTruncated, we.Code)
}

func TestParse_OverlongVarintIsFatal(t *testing.T) {
	def := ir.Definition("Item", ir.ObjectOf(ir.OptProp("id", ir.Integer())))
	c := mustCodec(t, def)

	buf := []byte{0x08}
	for i := 0; i < 10; i++ {
		buf = append(buf, 0x80)
	}
	buf = append(buf, 0x01)
	_, err := c.Parse(buf)
	var we *wire.WireError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, typeforge.CodeOverflow, we.Code)
}

func TestParse_EmptyBufferChecksRequired(t *testing.T) {
	def := ir.Definition("Item", ir.ObjectOf(ir.Prop("id", ir.Integer())))
	c := mustCodec(t, def)

	_, err := c.Parse(nil)
	iss, ok := typeforge.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, typeforge.CodeRequired, iss[0].Code)
}

func TestNewCodec_GenerationErrors(t *testing.T) {
	_, err := wire.NewCodec(ir.Definition("S", ir.String()))
	require.Error(t, err, "non-object root is a generation-time contract violation")

	_, err = wire.NewCodec(ir.Definition("U", ir.ObjectOf(
		ir.Prop("v", ir.UnionOf(ir.String(), ir.Integer())),
	)))
	require.Error(t, err, "a union with two non-null members has no wire framing")

	_, err = wire.NewCodec(ir.Definition("R", ir.ObjectOf(
		ir.Prop("other", ir.Ref("Missing")),
	)))
	require.Error(t, err, "unresolved references are never fabricated")

	_, err = wire.NewCodec(ir.Definition("M", ir.ObjectOf(
		ir.Prop("kv", ir.MapOf(ir.String(), ir.String())),
	)))
	require.Error(t, err, "map kinds have no wire encoding")

	_, err = wire.NewCodec(ir.TypeDefinition{
		Name:         "Bad",
		Type:         ir.ObjectOf(ir.Prop("a", ir.Integer()), ir.Prop("b", ir.Integer())),
		FieldNumbers: map[string]int{"a": 2},
	})
	require.Error(t, err, "explicit and positional numbers must not collide")

	_, err = wire.NewCodec(ir.TypeDefinition{
		Name:         "Zero",
		Type:         ir.ObjectOf(ir.Prop("a", ir.Integer())),
		FieldNumbers: map[string]int{"a": 0},
	})
	require.Error(t, err, "field number 0 is never valid")
}

func TestCodec_ConcurrentUse(t *testing.T) {
	def := ir.Definition("Item", ir.ObjectOf(
		ir.Prop("id", ir.Integer()),
		ir.Prop("tags", ir.ArrayOf(ir.String())),
	))
	c := mustCodec(t, def)
	value := map[string]any{"id": int64(7), "tags": []any{"a", "bb"}}

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			for j := 0; j < 200; j++ {
				data, err := c.Serialize(value)
				if err != nil {
					done <- err
					return
				}
				if _, err := c.Parse(data); err != nil {
					done <- err
					return
				}
			}
			done <- nil
		}()
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, <-done)
	}
}
