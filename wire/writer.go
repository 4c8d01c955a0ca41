package wire

import (
	"fmt"
	"slices"
)

const initialWriterCap = 16

// Writer appends encoded fields to a growable buffer. Fields are emitted in
// call order; nothing is sorted or deduplicated.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, initialWriterCap)}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Bytes returns the encoded message. The result has no spare capacity, so
// appending to it never writes into the Writer's buffer.
func (w *Writer) Bytes() []byte {
	return slices.Clip(w.buf)
}

// WriteVarintField writes a Varint field.
func (w *Writer) WriteVarintField(num Number, v uint64) {
	w.writeTag(num, VarintType)
	w.writeVarint(v)
}

// WriteUint32Field writes a Varint field holding a 32-bit value.
func (w *Writer) WriteUint32Field(num Number, v uint32) {
	w.WriteVarintField(num, uint64(v))
}

// WriteBytesField writes a length-delimited field.
func (w *Writer) WriteBytesField(num Number, b []byte) {
	w.writeTag(num, BytesType)
	w.writeVarint(uint64(len(b)))
	w.writeBytes(b)
}

// WriteStringField writes a length-delimited field holding s.
func (w *Writer) WriteStringField(num Number, s string) {
	w.writeTag(num, BytesType)
	w.writeVarint(uint64(len(s)))
	w.grow(len(s))
	w.buf = append(w.buf, s...)
}

// WriteMessageField writes a length-delimited field whose payload is the
// message produced by fn.
func (w *Writer) WriteMessageField(num Number, fn func(*Writer)) {
	sub := NewWriter()
	fn(sub)
	w.WriteBytesField(num, sub.buf)
}

// WriteGroup writes a start-group marker, the fields produced by fn and the
// matching end-group marker.
func (w *Writer) WriteGroup(num Number, fn func(*Writer)) {
	w.writeTag(num, StartGroupType)
	fn(w)
	w.writeTag(num, EndGroupType)
}

// WriteFixed32Field writes an I32 field. b must be exactly 4 bytes.
func (w *Writer) WriteFixed32Field(num Number, b []byte) error {
	if len(b) != 4 {
		return &LengthError{Type: Fixed32Type, Want: 4, Got: len(b)}
	}

	w.writeTag(num, Fixed32Type)
	w.writeBytes(b)

	return nil
}

// WriteFixed64Field writes an I64 field. b must be exactly 8 bytes.
func (w *Writer) WriteFixed64Field(num Number, b []byte) error {
	if len(b) != 8 {
		return &LengthError{Type: Fixed64Type, Want: 8, Got: len(b)}
	}

	w.writeTag(num, Fixed64Type)
	w.writeBytes(b)

	return nil
}

// WriteField writes an already decoded field, recursing into groups.
func (w *Writer) WriteField(f Field) error {
	switch f.Type {
	case VarintType:
		w.WriteVarintField(f.Number, f.Varint)
	case BytesType:
		w.WriteBytesField(f.Number, f.Bytes)
	case Fixed32Type:
		return w.WriteFixed32Field(f.Number, f.Bytes)
	case Fixed64Type:
		return w.WriteFixed64Field(f.Number, f.Bytes)
	case StartGroupType:
		var err error

		w.WriteGroup(f.Number, func(w *Writer) {
			for _, g := range f.Group {
				if err = w.WriteField(g); err != nil {
					return
				}
			}
		})

		return err
	default:
		return fmt.Errorf("wire: cannot write %s field %d: %w", f.Type, f.Number, ErrInvalidWireType)
	}

	return nil
}

func (w *Writer) writeTag(num Number, typ Type) {
	w.writeVarint(makeTag(num, typ))
}

func (w *Writer) writeVarint(v uint64) {
	w.grow(SizeVarint(v))
	w.buf = AppendVarint(w.buf, v)
}

func (w *Writer) writeBytes(b []byte) {
	w.grow(len(b))
	w.buf = append(w.buf, b...)
}

// grow makes room for n more bytes, doubling the capacity until it fits.
func (w *Writer) grow(n int) {
	need := len(w.buf) + n
	if need <= cap(w.buf) {
		return
	}

	c := max(cap(w.buf), initialWriterCap)
	for c < need {
		c *= 2
	}

	buf := make([]byte, len(w.buf), c)
	copy(buf, w.buf)
	w.buf = buf
}
