// Package wire implements the Protocol Buffers binary wire format on raw
// byte slices, without generated code or reflection.
//
// # Reading
//
// A Reader is a forward-only cursor over one encoded message:
//
//	r := wire.NewReader(buf)
//	for r.Next() {
//	    f := r.Field()
//	    switch f.Number {
//	    case 1:
//	        v, err := wire.FieldAsUint32(f)
//	        ...
//	    }
//	}
//	if err := r.Err(); err != nil { ... }
//
// Payloads of length-delimited and fixed-width fields alias the input
// buffer. Re-reading a message requires a fresh Reader.
//
// # Writing
//
// A Writer appends fields in call order to a growable buffer:
//
//	w := wire.NewWriter()
//	w.WriteUint32Field(1, 150)
//	w.WriteStringField(2, "foo")
//	out := w.Bytes()
//
// # Strictness
//
// Decoding rejects everything the reference implementation would reject and
// also non-canonical varints (a multi-byte varint whose last byte is zero).
// Every failure is reported as a *DecodeError wrapping one of the sentinel
// errors of this package, so callers can match with errors.Is.
package wire
