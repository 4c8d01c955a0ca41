package ucd

import (
	"fmt"
	"strconv"
	"strings"
)

// CodePointLimit is one past the largest code point.
const CodePointLimit uint32 = 0x110000

// FormatCodePoint returns the hexadecimal part of U+XXXX notation: upper
// case, at least four digits.
func FormatCodePoint(cp uint32) (string, error) {
	if cp >= CodePointLimit {
		return "", fmt.Errorf("%w: 0x%x", ErrCodePointRange, cp)
	}
	return hex4(cp), nil
}

// FormatCodePointName returns U+XXXX notation.
func FormatCodePointName(cp uint32) (string, error) {
	s, err := FormatCodePoint(cp)
	if err != nil {
		return "", err
	}
	return "U+" + s, nil
}

// ParseCodePoint parses hexadecimal code point text with an optional U+
// prefix. Only hex digits are accepted and the value must be below
// CodePointLimit.
func ParseCodePoint(s string) (uint32, error) {
	text := s
	if len(text) >= 2 && (text[0] == 'U' || text[0] == 'u') && text[1] == '+' {
		text = text[2:]
	}

	if text == "" || strings.TrimLeft(text, "0123456789abcdefABCDEF") != "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCodePoint, s)
	}

	text = strings.TrimLeft(text, "0")
	if len(text) > 6 {
		return 0, fmt.Errorf("%w: %q", ErrCodePointRange, s)
	}

	if text == "" {
		return 0, nil
	}

	v, err := strconv.ParseUint(text, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCodePoint, s)
	}

	if uint32(v) >= CodePointLimit {
		return 0, fmt.Errorf("%w: %q", ErrCodePointRange, s)
	}

	return uint32(v), nil
}

func hex4(cp uint32) string {
	s := strings.ToUpper(strconv.FormatUint(uint64(cp), 16))
	if len(s) < 4 {
		s = strings.Repeat("0", 4-len(s)) + s
	}
	return s
}
