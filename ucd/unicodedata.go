package ucd

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Row is one entry of UnicodeData.txt after range folding: the code points
// [Start, End] share Name and Category.
type Row struct {
	Start    uint32
	End      uint32
	Name     string
	Category GeneralCategory
}

// Line is one parsed line of UnicodeData.txt.
type Line struct {
	CodePoint uint32
	Name      string
	Category  GeneralCategory
}

var codePointText = regexp.MustCompile(`^([1-9A-F]|10)?[0-9A-F]{4}$`)

// ParseLine parses the first three fields of a UnicodeData.txt line.
func ParseLine(line string) (Line, error) {
	fields := strings.Split(strings.TrimSpace(line), ";")
	if len(fields) < 3 {
		return Line{}, fmt.Errorf("%w: %q", ErrInvalidLine, line)
	}

	if !codePointText.MatchString(fields[0]) {
		return Line{}, fmt.Errorf("%w: %q", ErrInvalidCodePoint, fields[0])
	}

	cp, err := strconv.ParseUint(fields[0], 16, 32)
	if err != nil {
		return Line{}, fmt.Errorf("%w: %q", ErrInvalidCodePoint, fields[0])
	}

	gc, ok := CategoryFromShorthand(fields[2])
	if !ok {
		return Line{}, fmt.Errorf("%w: %q", ErrInvalidCategory, fields[2])
	}

	return Line{CodePoint: uint32(cp), Name: fields[1], Category: gc}, nil
}

// Scanner reads Rows from UnicodeData.txt, folding <X, First>/<X, Last>
// line pairs into one Row named <X>. Rows must be ascending and disjoint.
type Scanner struct {
	lines  *bufio.Scanner
	lineNo int
	row    Row
	next   uint32 // lowest code point allowed for the next row
	err    error
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{lines: bufio.NewScanner(r)}
}

// Scan advances to the next Row. It returns false at the end of input or on
// the first error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}

	line, ok := s.readLine()
	if !ok {
		return false
	}

	row := Row{Start: line.CodePoint, End: line.CodePoint, Name: line.Name, Category: line.Category}

	if base, ok := strings.CutSuffix(line.Name, ", First>"); ok && strings.HasPrefix(base, "<") {
		last, ok := s.readLine()
		if !ok {
			if s.err == nil {
				s.err = fmt.Errorf("%w: %s without Last line", ErrUnpairedRange, line.Name)
			}
			return false
		}

		if last.Name != base+", Last>" || last.Category != line.Category || last.CodePoint < line.CodePoint {
			s.err = fmt.Errorf("%w: line %d: %s after %s", ErrUnpairedRange, s.lineNo, last.Name, line.Name)
			return false
		}

		row.End = last.CodePoint
		row.Name = base + ">"
	} else if strings.HasSuffix(line.Name, ", Last>") {
		s.err = fmt.Errorf("%w: line %d: %s without First line", ErrUnpairedRange, s.lineNo, line.Name)
		return false
	}

	if row.Start < s.next {
		s.err = fmt.Errorf("%w: line %d: U+%s", ErrUnordered, s.lineNo, hex4(row.Start))
		return false
	}

	s.next = row.End + 1
	s.row = row

	return true
}

// Row returns the Row read by the last successful Scan.
func (s *Scanner) Row() Row { return s.row }

// Err returns the first error, if any.
func (s *Scanner) Err() error { return s.err }

func (s *Scanner) readLine() (Line, bool) {
	for s.lines.Scan() {
		s.lineNo++

		text := s.lines.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		line, err := ParseLine(text)
		if err != nil {
			s.err = fmt.Errorf("line %d: %w", s.lineNo, err)
			return Line{}, false
		}

		return line, true
	}

	if err := s.lines.Err(); err != nil {
		s.err = err
	}

	return Line{}, false
}

// ScanUnicodeData reads every Row from r.
func ScanUnicodeData(r io.Reader) ([]Row, error) {
	var rows []Row

	s := NewScanner(r)
	for s.Scan() {
		rows = append(rows, s.Row())
	}

	if err := s.Err(); err != nil {
		return nil, err
	}

	return rows, nil
}

var labelDerivations = map[string]NameDerivation{
	"<control>":                        NameDerivationControl,
	"<CJK Ideograph Extension A>":      NameDerivationCJKUnifiedIdeograph,
	"<CJK Ideograph>":                  NameDerivationCJKUnifiedIdeograph,
	"<Hangul Syllable>":                NameDerivationHangulSyllable,
	"<Non Private Use High Surrogate>": NameDerivationSurrogate,
	"<Private Use High Surrogate>":     NameDerivationSurrogate,
	"<Low Surrogate>":                  NameDerivationSurrogate,
	"<Private Use>":                    NameDerivationPrivateUse,
	"<Tangut Ideograph>":               NameDerivationTangutIdeograph,
	"<Tangut Ideograph Supplement>":    NameDerivationTangutIdeograph,
	"<CJK Ideograph Extension B>":      NameDerivationCJKUnifiedIdeograph,
	"<CJK Ideograph Extension C>":      NameDerivationCJKUnifiedIdeograph,
	"<CJK Ideograph Extension D>":      NameDerivationCJKUnifiedIdeograph,
	"<CJK Ideograph Extension E>":      NameDerivationCJKUnifiedIdeograph,
	"<CJK Ideograph Extension F>":      NameDerivationCJKUnifiedIdeograph,
	"<CJK Ideograph Extension G>":      NameDerivationCJKUnifiedIdeograph,
	"<CJK Ideograph Extension H>":      NameDerivationCJKUnifiedIdeograph,
	"<CJK Ideograph Extension I>":      NameDerivationCJKUnifiedIdeograph,
	"<CJK Ideograph Extension J>":      NameDerivationCJKUnifiedIdeograph,
	"<Plane 15 Private Use>":           NameDerivationPrivateUse,
	"<Plane 16 Private Use>":           NameDerivationPrivateUse,
}

// InferNameDerivation decides how the name of cp is derived from its
// declared name in UnicodeData.txt. For NameDerivationUnspecified the
// declared name is kept; otherwise it is dropped from storage.
func InferNameDerivation(cp uint32, declared string) (NameDerivation, error) {
	if d, ok := labelDerivations[declared]; ok {
		return d, nil
	}
	if strings.HasPrefix(declared, "<") {
		return 0, fmt.Errorf("%w: %s", ErrUnknownLabel, declared)
	}

	if base, ok := strings.CutSuffix(declared, "-"+hex4(cp)); ok {
		for d, prefix := range ideographPrefixes {
			if base == prefix {
				return d, nil
			}
		}
	}

	return NameDerivationUnspecified, nil
}
