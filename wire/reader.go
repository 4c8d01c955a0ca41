package wire

// Reader iterates the top-level fields of an encoded message.
type Reader struct {
	buf   []byte
	off   int
	field Field
	err   error
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Next decodes the next field. It returns false at the end of the buffer or
// on the first decode error, which is then available from Err.
func (r *Reader) Next() bool {
	if r.err != nil || r.off >= len(r.buf) {
		return false
	}

	f, n, err := readField(r.buf, r.off)
	if err != nil {
		r.err = err
		return false
	}

	if f.Type == EndGroupType {
		r.err = decodeErr(r.off, ErrUnexpectedEndGroup)
		return false
	}

	r.off = n
	r.field = f

	return true
}

// Field returns the field decoded by the last successful call to Next.
func (r *Reader) Field() Field { return r.field }

// Err returns the first decode error, if any.
func (r *Reader) Err() error { return r.err }

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.off }

// ReadAll decodes every top-level field of buf.
func ReadAll(buf []byte) ([]Field, error) {
	var out []Field

	r := NewReader(buf)
	for r.Next() {
		out = append(out, r.Field())
	}

	if err := r.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// readField decodes the field at off and returns it with the offset just
// past it. End-group markers are returned as fields of type EndGroupType.
func readField(buf []byte, off int) (Field, int, error) {
	tag, n, err := ConsumeVarint32(buf[off:])
	if err != nil {
		return Field{}, 0, decodeErr(off, err)
	}

	num := Number(tag >> 3)
	if num == 0 {
		return Field{}, 0, decodeErr(off, ErrInvalidFieldNumber)
	}

	typ := Type(tag & 7)
	start := off
	off += n

	switch typ {
	case VarintType:
		v, n, err := ConsumeVarint(buf[off:])
		if err != nil {
			return Field{}, 0, decodeErr(off, err)
		}

		return VarintField(num, v), off + n, nil
	case BytesType:
		length, n, err := ConsumeVarint32(buf[off:])
		if err != nil {
			return Field{}, 0, decodeErr(off, err)
		}

		off += n

		b, err := readBytes(buf, off, uint64(length))
		if err != nil {
			return Field{}, 0, err
		}

		return BytesField(num, b), off + len(b), nil
	case StartGroupType:
		var group []Field

		for {
			if off >= len(buf) {
				return Field{}, 0, decodeErrf(off, ErrTruncated, "group %d not closed", num)
			}

			f, next, err := readField(buf, off)
			if err != nil {
				return Field{}, 0, err
			}

			if f.Type == EndGroupType {
				if f.Number != num {
					return Field{}, 0, decodeErrf(off, ErrGroupMismatch, "opened %d, closed %d", num, f.Number)
				}

				return GroupField(num, group...), next, nil
			}

			group = append(group, f)
			off = next
		}
	case EndGroupType:
		return Field{Number: num, Type: EndGroupType}, off, nil
	case Fixed32Type:
		b, err := readBytes(buf, off, 4)
		if err != nil {
			return Field{}, 0, err
		}

		return Fixed32Field(num, b), off + 4, nil
	case Fixed64Type:
		b, err := readBytes(buf, off, 8)
		if err != nil {
			return Field{}, 0, err
		}

		return Fixed64Field(num, b), off + 8, nil
	default:
		return Field{}, 0, decodeErrf(start, ErrInvalidWireType, "wire type %d", uint8(typ))
	}
}

// readBytes returns a capacity-clipped view of buf[off:off+n].
func readBytes(buf []byte, off int, n uint64) ([]byte, error) {
	if n > uint64(len(buf)-off) {
		return nil, decodeErrf(off, ErrTruncated, "need %d bytes, have %d", n, len(buf)-off)
	}

	end := off + int(n)

	return buf[off:end:end], nil
}
