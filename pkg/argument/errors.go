package argument

import (
	"fmt"
	"strings"
)

// Kind classifies why an argument failed to parse.
//
// Kind implements error so callers can match a failure with
// errors.Is(err, argument.UnknownEnumValue).
type Kind uint8

const (
	_ Kind = iota
	// NoInputProvided means the input stream was empty.
	NoInputProvided
	// UnknownEnumValue means the token is not a member of the enumeration.
	UnknownEnumValue
	// MalformedRange means the token does not match the [min]..[max] grammar.
	MalformedRange
	// UnsupportedPlatformVersion means the host platform predates the argument's grammar.
	UnsupportedPlatformVersion
	// AmbiguousSelectorResult means a single-result selector allows or resolved to more than one entity.
	AmbiguousSelectorResult
	// MalformedSelector means the token does not match the entity selector grammar.
	MalformedSelector
	// NoEntityFound means a selector resolved to no entity.
	NoEntityFound
	// SelectorResolution means the host failed to resolve a selector.
	SelectorResolution
)

var kindNames = map[Kind]string{
	NoInputProvided:            "no input provided",
	UnknownEnumValue:           "unknown enum value",
	MalformedRange:             "malformed range",
	UnsupportedPlatformVersion: "unsupported platform version",
	AmbiguousSelectorResult:    "ambiguous selector result",
	MalformedSelector:          "malformed selector",
	NoEntityFound:              "no entity found",
	SelectorResolution:         "selector resolution failed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func (k Kind) Error() string { return k.String() }

// ParseError is the structured failure of an argument parser.
//
// It carries data, not a user message. Rendering is left to the caller.
// A ParseError is never mutated after creation.
type ParseError struct {
	Parser string // Identity of the failing parser.
	Kind   Kind   // Cause classification.
	Input  string // Offending raw input, empty if there was none.
	Cause  error  // Optional underlying error, e.g. from a delegated grammar.
}

// NewError returns a ParseError without an underlying cause.
func NewError(parser string, kind Kind, input string) *ParseError {
	return &ParseError{Parser: parser, Kind: kind, Input: input}
}

// WrapError returns a ParseError wrapping cause.
func WrapError(parser string, kind Kind, input string, cause error) *ParseError {
	return &ParseError{Parser: parser, Kind: kind, Input: input, Cause: cause}
}

// WithParser returns a copy of e attributed to another parser identity.
func (e *ParseError) WithParser(parser string) *ParseError {
	c := *e
	c.Parser = parser
	return &c
}

func (e *ParseError) Error() string {
	b := new(strings.Builder)
	if e.Parser != "" {
		b.WriteString(e.Parser)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Input != "" {
		fmt.Fprintf(b, " %q", e.Input)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Cause }

// Is matches a Kind target.
func (e *ParseError) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}
