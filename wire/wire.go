// Package wire generates binary codecs from IR object definitions. A Codec
// captures one ir.TypeDefinition at construction and produces byte-exact
// serialization and parsing for a tagged, varint-based wire protocol:
// every field is preceded by a varint tag (fieldNumber<<3 | wireType),
// scalar repeated fields are packed into one length-delimited block, and
// nested messages are framed by a varint length prefix.
//
// Codecs are immutable after NewCodec; each Serialize/Parse call owns its
// scratch buffers and issue list, so one Codec is safe for concurrent use.
package wire

import "fmt"

// WireType is the 3-bit framing code carried in every field tag.
type WireType int

const (
	Varint          WireType = 0
	Fixed64         WireType = 1 // reserved in the tag space, never emitted
	LengthDelimited WireType = 2
	startGroup      WireType = 3 // unsupported
	endGroup        WireType = 4 // unsupported
	Fixed32         WireType = 5 // reserved in the tag space, never emitted
)

func (w WireType) String() string {
	switch w {
	case Varint:
		return "varint"
	case Fixed64:
		return "fixed64"
	case LengthDelimited:
		return "length-delimited"
	case Fixed32:
		return "fixed32"
	default:
		return fmt.Sprintf("wiretype(%d)", int(w))
	}
}
