package ucd

import "errors"

var (
	// ErrInvalidCodePoint is returned for code point text that is not hexadecimal.
	ErrInvalidCodePoint = errors.New("ucd: invalid code point")
	// ErrCodePointRange is returned for code points at or above 0x110000.
	ErrCodePointRange = errors.New("ucd: code point out of range")
	// ErrInvalidCategory is returned for unknown or unspecified general categories.
	ErrInvalidCategory = errors.New("ucd: invalid general category")
	// ErrInvalidLine is returned for malformed UnicodeData.txt lines.
	ErrInvalidLine = errors.New("ucd: invalid UnicodeData line")
	// ErrUnpairedRange is returned when a <X, First> line is not followed by its <X, Last> line.
	ErrUnpairedRange = errors.New("ucd: unpaired range")
	// ErrUnordered is returned when rows are overlapping or out of order.
	ErrUnordered = errors.New("ucd: rows out of order")
	// ErrUnknownLabel is returned for an unrecognized <label> name.
	ErrUnknownLabel = errors.New("ucd: unrecognized special name")
)
