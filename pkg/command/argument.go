package command

import (
	"errors"
	"slices"
	"strings"

	"go.minekube.com/brigodier"

	"go.minekube.com/cmdarg/pkg/argument"
	"go.minekube.com/cmdarg/pkg/command/suggest"
)

// Token is a brigodier.ArgumentType that captures one raw
// whitespace delimited token. The typed argument parses it
// when the command executes, see Value:
//
//	brigodier.Argument(target.Name(), command.Token).Suggests(command.Suggests(target))
var Token brigodier.ArgumentType = tokenType{}

type tokenType struct{}

var errExpectedToken = errors.New("expected argument")

func (tokenType) Parse(rd *brigodier.StringReader) (any, error) {
	start := rd.Cursor
	for rd.Cursor < len(rd.String) && rd.String[rd.Cursor] != ' ' {
		rd.Cursor++
	}
	if rd.Cursor == start {
		return nil, errExpectedToken
	}
	return rd.String[start:rd.Cursor], nil
}

func (tokenType) String() string { return "token" }

// Value parses the token captured for a using the invoker of c as
// sender. An argument missing from the command line parses its default
// or fails with argument.NoInputProvided.
func Value[T any](c *Context, a *argument.Argument[T]) (T, error) {
	in := argument.NewInput()
	if token := c.String(a.Name()); token != "" {
		in = argument.NewInput(token)
	}
	return a.Parse(argumentContext(c.CommandContext, c.Source), in).Get()
}

// Default parses a with empty input for command nodes the argument is
// absent from, so an argument.WithDefault applies.
func Default[T any](c *Context, a *argument.Argument[T]) (T, error) {
	return a.Parse(argumentContext(c.CommandContext, c.Source), argument.NewInput()).Get()
}

func argumentContext(c *brigodier.CommandContext, src Source) *argument.Context {
	return argument.NewContext(c, src, PlatformFromContext(c))
}

// Suggests returns a brigodier.SuggestionProvider offering the
// candidates of a, ranked by similarity to the current input.
func Suggests[T any](a *argument.Argument[T]) brigodier.SuggestionProvider {
	return SuggestFunc(func(c *Context, b *brigodier.SuggestionsBuilder) *brigodier.Suggestions {
		partial := b.Input[strings.LastIndex(b.Input, " ")+1:]
		candidates := slices.Collect(a.Suggestions(argumentContext(c.CommandContext, c.Source), partial))
		return suggest.SimilarScore(b, candidates, envFromContext(c).minScore).Build()
	})
}

// SuggestFunc is a function type implementing brigodier.SuggestionProvider
// that receives the command Context with its Source.
type SuggestFunc func(c *Context, b *brigodier.SuggestionsBuilder) *brigodier.Suggestions

var _ brigodier.SuggestionProvider = SuggestFunc(nil)

func (s SuggestFunc) Suggestions(c *brigodier.CommandContext, b *brigodier.SuggestionsBuilder) *brigodier.Suggestions {
	return s(createContext(c), b)
}
