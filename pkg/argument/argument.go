package argument

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"regexp"

	"github.com/go-logr/logr"

	"go.minekube.com/cmdarg/pkg/platform"
)

// NameMaxLength is the maximum length of an argument name.
const NameMaxLength = 32

var namePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Argument is a named, typed command argument composed of a Parser
// and an optional suggestion override.
type Argument[T any] struct {
	name         string
	description  string
	parser       Parser[T]
	suggestions  SuggestionProvider
	defaultInput *string
}

// Option configures an Argument.
type Option[T any] func(*Argument[T])

// WithDescription sets the help text of an argument.
func WithDescription[T any](description string) Option[T] {
	return func(a *Argument[T]) { a.description = description }
}

// WithSuggestions replaces the suggestions of the parser.
func WithSuggestions[T any](p SuggestionProvider) Option[T] {
	return func(a *Argument[T]) { a.suggestions = p }
}

// WithDefault makes the argument optional. When the input is empty
// the default input is parsed instead and nothing is consumed.
func WithDefault[T any](input string) Option[T] {
	return func(a *Argument[T]) { a.defaultInput = &input }
}

// New returns a validated Argument.
//
// It replaces the per-type builders of older APIs: builder(name),
// newBuilder(name) and of(name) all map to New(name, parser).
func New[T any](name string, parser Parser[T], opts ...Option[T]) (*Argument[T], error) {
	if name == "" {
		return nil, errors.New("argument name must not be empty")
	}
	if len(name) > NameMaxLength || !namePattern.MatchString(name) {
		return nil, fmt.Errorf("invalid argument name %q: must consist of "+
			"lower-case alphanumeric characters, '-' or '_' and be 1-%d long", name, NameMaxLength)
	}
	if parser == nil {
		return nil, fmt.Errorf("argument %q: parser must not be nil", name)
	}
	a := &Argument[T]{name: name, parser: parser}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Must panics if err is not nil and returns a otherwise.
func Must[T any](a *Argument[T], err error) *Argument[T] {
	if err != nil {
		panic(err)
	}
	return a
}

// Name returns the argument name.
func (a *Argument[T]) Name() string { return a.name }

// Description returns the help text.
func (a *Argument[T]) Description() string { return a.description }

// Optional reports whether the argument has a default input.
func (a *Argument[T]) Optional() bool { return a.defaultInput != nil }

// Parser returns the underlying parser.
func (a *Argument[T]) Parser() Parser[T] { return a.parser }

// Parse parses the next tokens of in.
//
// If the parser fails, every token it consumed is put back so the
// input is left exactly as it was before the call.
func (a *Argument[T]) Parse(c *Context, in *Input) Result[T] {
	if c == nil {
		c = NewContext(context.Background(), nil, platform.Latest())
	}
	if in == nil {
		in = NewInput()
	}
	if in.Empty() && a.defaultInput != nil {
		return a.logged(c, a.parser.Parse(c, Tokenize(*a.defaultInput)))
	}
	mark := in.Mark()
	r := a.parser.Parse(c, in)
	if !r.Ok() {
		in.Reset(mark)
	}
	return a.logged(c, r)
}

func (a *Argument[T]) logged(c *Context, r Result[T]) Result[T] {
	if err := r.Err(); err != nil {
		logr.FromContextOrDiscard(c).V(1).Info("argument failed to parse",
			"argument", a.name, "parser", err.Parser, "kind", err.Kind.String(), "input", err.Input)
	}
	return r
}

// Suggestions returns the completion candidates for partial.
func (a *Argument[T]) Suggestions(c *Context, partial string) iter.Seq[string] {
	if c == nil {
		c = NewContext(context.Background(), nil, platform.Latest())
	}
	if a.suggestions != nil {
		return a.suggestions(c, partial)
	}
	return a.parser.Suggestions(c, partial)
}

// ParseAny implements Untyped.
func (a *Argument[T]) ParseAny(c *Context, in *Input) (any, error) {
	return a.Parse(c, in).Get()
}

// Untyped is an Argument with its value type erased,
// for registries holding arguments of different types.
type Untyped interface {
	Name() string
	Description() string
	ParseAny(c *Context, in *Input) (any, error)
	Suggestions(c *Context, partial string) iter.Seq[string]
}

var _ Untyped = (*Argument[int])(nil)
