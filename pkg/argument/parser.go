package argument

import "iter"

// Parser converts tokens from the front of an Input into a T.
//
// On success it removes exactly the tokens it consumed. On failure it
// must leave the Input unchanged and return a *ParseError.
// Parsers hold no per-call state and are safe for concurrent use.
type Parser[T any] interface {
	Parse(c *Context, in *Input) Result[T]
	// Suggestions returns completion candidates for the partial input.
	// Filtering against partial is the caller's responsibility.
	Suggestions(c *Context, partial string) iter.Seq[string]
}

// SuggestionProvider overrides the suggestions of a Parser.
type SuggestionProvider func(c *Context, partial string) iter.Seq[string]

// Funcs builds a Parser from plain functions.
// A nil SuggestFunc offers no suggestions.
type Funcs[T any] struct {
	ParseFunc   func(c *Context, in *Input) Result[T]
	SuggestFunc SuggestionProvider
}

var _ Parser[int] = Funcs[int]{}

func (f Funcs[T]) Parse(c *Context, in *Input) Result[T] {
	return f.ParseFunc(c, in)
}

func (f Funcs[T]) Suggestions(c *Context, partial string) iter.Seq[string] {
	if f.SuggestFunc == nil {
		return None
	}
	return f.SuggestFunc(c, partial)
}

// None is the empty suggestion sequence.
func None(func(string) bool) {}

