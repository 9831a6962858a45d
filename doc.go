// Package typeforge compiles structural type definitions into multiple
// target representations through a single intermediate representation (IR):
//
//   - A normalized, closed type model shared by every converter (ir)
//   - A tagged varint binary wire-format codec generator (wire)
//   - Interface-schema (JSON Schema) document generation (jsonschema)
//   - JSON codecs and structural validators (jsoncodec)
//   - Named string-format verification (format)
//   - Schema-unit documents in YAML/JSON (schemaio)
//
// Design policy:
//
//   - Keep only the shared error model in the root package; each target
//     representation lives in its own subpackage and depends on ir alone.
//   - Converters never mutate IR nodes; they read one ir.Schema and allocate
//     new output artifacts.
//   - Validation problems accumulate as Issues (JSON Pointer, code, message);
//     malformed binary input fails fast with a wire.WireError instead.
//
// Typical usage:
//
//	c, err := wire.NewCodec(def)
//	data, err := c.Serialize(value)
//	back, err := c.Parse(data)
package typeforge
