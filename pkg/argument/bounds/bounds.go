// Package bounds implements the optionally bounded range grammar
// `[min]..[max]` used by Minecraft commands, and range argument parsers
// delegating to it.
package bounds

import (
	"fmt"
	"strconv"
	"strings"

	"go.minekube.com/brigodier"
)

// Number is a numeric type a range can be bounded by.
type Number interface{ ~int | ~float64 }

// Bounds is an interval where a nil end is unbounded.
// A parsed Bounds always has at least one end set and Min <= Max.
type Bounds[N Number] struct {
	Min, Max *N
}

type (
	// Floats are float64 bounds, e.g. distance=..5.5
	Floats = Bounds[float64]
	// Ints are int bounds, e.g. level=10..
	Ints = Bounds[int]
)

// Exactly returns bounds matching only v.
func Exactly[N Number](v N) Bounds[N] { return Bounds[N]{Min: &v, Max: &v} }

// Between returns the closed bounds min..max.
func Between[N Number](min, max N) Bounds[N] { return Bounds[N]{Min: &min, Max: &max} }

// AtLeast returns min..
func AtLeast[N Number](min N) Bounds[N] { return Bounds[N]{Min: &min} }

// AtMost returns ..max
func AtMost[N Number](max N) Bounds[N] { return Bounds[N]{Max: &max} }

// Contains reports whether v lies within b.
func (b Bounds[N]) Contains(v N) bool {
	if b.Min != nil && v < *b.Min {
		return false
	}
	if b.Max != nil && v > *b.Max {
		return false
	}
	return true
}

// Exact returns the value if both ends are equal.
func (b Bounds[N]) Exact() (N, bool) {
	if b.Min != nil && b.Max != nil && *b.Min == *b.Max {
		return *b.Min, true
	}
	var zero N
	return zero, false
}

func (b Bounds[N]) String() string {
	if v, ok := b.Exact(); ok {
		return format(v)
	}
	s := new(strings.Builder)
	if b.Min != nil {
		s.WriteString(format(*b.Min))
	}
	s.WriteString("..")
	if b.Max != nil {
		s.WriteString(format(*b.Max))
	}
	return s.String()
}

func format[N Number](v N) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 64)
}

// ParseFloats reads float bounds starting at the reader's cursor.
// On error the cursor is left where the bounds started.
func ParseFloats(rd *brigodier.StringReader) (Floats, error) {
	return parse(rd, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// ParseInts reads int bounds starting at the reader's cursor.
// On error the cursor is left where the bounds started.
func ParseInts(rd *brigodier.StringReader) (Ints, error) {
	return parse(rd, strconv.Atoi)
}

func parse[N Number](rd *brigodier.StringReader, conv func(string) (N, error)) (b Bounds[N], err error) {
	start := rd.Cursor
	if !canRead(rd, 1) {
		return b, syntaxErr(rd, start, ReasonEmpty, nil)
	}
	b.Min, err = readNumber(rd, conv)
	if err != nil {
		rd.Cursor = start
		return b, err
	}
	if canRead(rd, 2) && peek(rd, 0) == '.' && peek(rd, 1) == '.' {
		rd.Cursor += 2
		b.Max, err = readNumber(rd, conv)
		if err != nil {
			rd.Cursor = start
			return b, err
		}
	} else {
		b.Max = b.Min
	}
	if b.Min == nil && b.Max == nil {
		err = syntaxErr(rd, start, ReasonEmpty, nil)
		rd.Cursor = start
		return Bounds[N]{}, err
	}
	if b.Min != nil && b.Max != nil && *b.Min > *b.Max {
		err = syntaxErr(rd, start, ReasonSwapped, nil)
		rd.Cursor = start
		return Bounds[N]{}, err
	}
	return b, nil
}

func readNumber[N Number](rd *brigodier.StringReader, conv func(string) (N, error)) (*N, error) {
	start := rd.Cursor
	for canRead(rd, 1) && isNumberChar(rd) {
		rd.Cursor++
	}
	s := rd.String[start:rd.Cursor]
	if s == "" {
		return nil, nil
	}
	v, err := conv(s)
	if err != nil {
		return nil, syntaxErr(rd, start, ReasonInvalidNumber, err)
	}
	return &v, nil
}

// A '.' only belongs to a number if it does not start the ".." separator.
func isNumberChar(rd *brigodier.StringReader) bool {
	c := peek(rd, 0)
	switch {
	case c >= '0' && c <= '9', c == '-':
		return true
	case c == '.':
		return !(canRead(rd, 2) && peek(rd, 1) == '.')
	}
	return false
}

func canRead(rd *brigodier.StringReader, n int) bool {
	return rd.Cursor+n <= len(rd.String)
}

func peek(rd *brigodier.StringReader, offset int) byte {
	return rd.String[rd.Cursor+offset]
}

// Reason classifies a range syntax error.
type Reason string

const (
	ReasonEmpty         Reason = "expected value or range of values"
	ReasonInvalidNumber Reason = "invalid number"
	ReasonSwapped       Reason = "min cannot be bigger than max"
	ReasonTrailing      Reason = "unexpected trailing input"
)

// SyntaxError is returned by the range grammar.
type SyntaxError struct {
	Input  string
	Cursor int
	Reason Reason
	Err    error // e.g. *strconv.NumError
}

func syntaxErr(rd *brigodier.StringReader, cursor int, reason Reason, err error) *SyntaxError {
	return &SyntaxError{Input: rd.String, Cursor: cursor, Reason: reason, Err: err}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at position %d: %s<--[HERE]", e.Reason, e.Cursor, e.Input[:min(e.Cursor, len(e.Input))])
}

func (e *SyntaxError) Unwrap() error { return e.Err }
