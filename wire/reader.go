package wire

import (
	"fmt"

	typeforge "github.com/typeforge/typeforge"
	"github.com/typeforge/typeforge/i18n"
)

// WireError reports malformed binary input: a truncated buffer, an
// over-long varint, or an unsupported wire type. Unlike accumulated
// typeforge.Issues, a WireError aborts decoding immediately; once the byte
// cursor is desynchronized, continued parsing cannot be trusted.
type WireError struct {
	Code   string // typeforge.CodeTruncated, CodeOverflow, CodeUnsupportedWire, or CodeParseError
	Offset int    // absolute byte offset in the input buffer
	Detail string
}

func (e *WireError) Error() string {
	msg := i18n.T(e.Code, nil)
	if e.Detail != "" {
		msg = e.Detail
	}
	return fmt.Sprintf("wire: %s at offset %d", msg, e.Offset)
}

// reader is a bounded, strictly forward cursor over an input buffer.
// Sub-readers share the backing array but are bounded to a nested
// message's declared length; base keeps error offsets absolute.
type reader struct {
	buf  []byte
	pos  int
	base int
}

func (r *reader) remaining() int { return len(r.buf) - r.pos }

func (r *reader) offset() int { return r.base + r.pos }

func (r *reader) truncated(detail string) *WireError {
	return &WireError{Code: typeforge.CodeTruncated, Offset: r.offset(), Detail: detail}
}

// readVarint decodes one little-endian base-128 varint. More than nine
// continuation bytes (an accumulated shift past 63 bits) is malformed,
// never silently truncated.
func (r *reader) readVarint() (uint64, error) {
	var v uint64
	var shift uint
	start := r.offset()
	for {
		if r.pos >= len(r.buf) {
			return 0, r.truncated("varint runs past end of buffer")
		}
		if shift > 63 {
			return 0, &WireError{Code: typeforge.CodeOverflow, Offset: start, Detail: "varint exceeds 64 bits"}
		}
		b := r.buf[r.pos]
		r.pos++
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, nil
		}
		shift += 7
	}
}

// readBytes consumes exactly n raw bytes.
func (r *reader) readBytes(n int) ([]byte, error) {
	if n < 0 || n > r.remaining() {
		return nil, r.truncated(fmt.Sprintf("need %d bytes, have %d", n, r.remaining()))
	}
	p := r.buf[r.pos : r.pos+n]
	r.pos += n
	return p, nil
}

// readLengthDelimited consumes a varint length and that many bytes.
func (r *reader) readLengthDelimited() ([]byte, error) {
	n, err := r.readVarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(r.remaining()) {
		return nil, r.truncated(fmt.Sprintf("declared length %d exceeds remaining %d", n, r.remaining()))
	}
	return r.readBytes(int(n))
}

// sub carves out a bounded sub-reader over the next n bytes, advancing
// this reader past them. The sub-reader cannot read beyond the declared
// nested length even if its own field loop would otherwise continue.
func (r *reader) sub(n int) (*reader, error) {
	if n < 0 || n > r.remaining() {
		return nil, r.truncated(fmt.Sprintf("nested length %d exceeds remaining %d", n, r.remaining()))
	}
	s := &reader{buf: r.buf[r.pos : r.pos+n], base: r.offset()}
	r.pos += n
	return s, nil
}

// skip advances past one unknown field's payload based on the wire type
// alone. Unrecognized wire types (including the group markers 3 and 4)
// are fatal.
func (r *reader) skip(wt WireType) error {
	switch wt {
	case Varint:
		_, err := r.readVarint()
		return err
	case Fixed64:
		_, err := r.readBytes(8)
		return err
	case LengthDelimited:
		_, err := r.readLengthDelimited()
		return err
	case Fixed32:
		_, err := r.readBytes(4)
		return err
	default:
		return &WireError{Code: typeforge.CodeUnsupportedWire, Offset: r.offset(), Detail: fmt.Sprintf("unsupported wire type %d", int(wt))}
	}
}
