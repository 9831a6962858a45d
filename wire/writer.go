package wire

// Writer is an append-only byte accumulator. The "serialize into a scratch
// writer, then prefix with its length" pattern behind nested messages and
// packed arrays is built entirely on it.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Len returns the number of accumulated bytes.
func (w *Writer) Len() int { return len(w.buf) }

// Bytes returns the accumulated bytes. The slice aliases the Writer's
// internal buffer; callers must copy it before reusing the Writer.
func (w *Writer) Bytes() []byte { return w.buf }

// Reset discards the accumulated bytes, keeping the capacity.
func (w *Writer) Reset() { w.buf = w.buf[:0] }

// WriteRaw appends p verbatim.
func (w *Writer) WriteRaw(p []byte) { w.buf = append(w.buf, p...) }

// WriteVarint appends v in little-endian base-128 encoding: 7 payload bits
// per byte, high bit set on every byte but the last.
func (w *Writer) WriteVarint(v uint64) {
	for v >= 0x80 {
		w.buf = append(w.buf, byte(v)|0x80)
		v >>= 7
	}
	w.buf = append(w.buf, byte(v))
}

// WriteTag appends the varint-encoded tag (fieldNumber<<3 | wireType).
func (w *Writer) WriteTag(fieldNumber int, wt WireType) {
	w.WriteVarint(uint64(fieldNumber)<<3 | uint64(wt))
}

// WriteLengthDelimited appends a varint length followed by exactly that
// many raw bytes.
func (w *Writer) WriteLengthDelimited(p []byte) {
	w.WriteVarint(uint64(len(p)))
	w.buf = append(w.buf, p...)
}

// WriteString appends s as a length-prefixed UTF-8 payload.
func (w *Writer) WriteString(s string) {
	w.WriteVarint(uint64(len(s)))
	w.buf = append(w.buf, s...)
}
