package argument

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EnumParser parses a token into a member of a fixed enumeration by
// case-insensitive name.
//
// The lookup map is built once by NewEnum and only read afterwards.
type EnumParser[T comparable] struct {
	id     string
	values []T
	names  []string     // lower-cased, in enumeration order
	byName map[string]T // case-folded name -> member
}

// NewEnum returns an EnumParser identified by id for values,
// using nameOf to obtain the name of each member.
func NewEnum[T comparable](id string, values []T, nameOf func(T) string) (*EnumParser[T], error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("enum %q: no values", id)
	}
	if nameOf == nil {
		return nil, errors.New("enum: nameOf must not be nil")
	}
	p := &EnumParser[T]{
		id:     id,
		values: slices.Clone(values),
		names:  make([]string, 0, len(values)),
		byName: make(map[string]T, len(values)),
	}
	lower := cases.Lower(language.Und)
	for _, v := range values {
		name := nameOf(v)
		if name == "" {
			return nil, fmt.Errorf("enum %q: member %v has an empty name", id, v)
		}
		key := fold(name)
		if prev, ok := p.byName[key]; ok {
			return nil, fmt.Errorf("enum %q: %q collides with %v", id, name, prev)
		}
		p.byName[key] = v
		p.names = append(p.names, lower.String(name))
	}
	return p, nil
}

// fold returns the case-folded form of s.
// Casers are stateful, so a new one is used per call.
func fold(s string) string { return cases.Fold().String(s) }

// ID returns the parser identity used in errors.
func (p *EnumParser[T]) ID() string { return p.id }

// Values returns the enumeration members in order.
func (p *EnumParser[T]) Values() []T { return slices.Clone(p.values) }

// Names returns the lower-cased member names in order.
func (p *EnumParser[T]) Names() []string { return slices.Clone(p.names) }

// Lookup returns the member named s, ignoring case.
func (p *EnumParser[T]) Lookup(s string) (T, bool) {
	v, ok := p.byName[fold(s)]
	return v, ok
}

func (p *EnumParser[T]) Parse(_ *Context, in *Input) Result[T] {
	token, ok := in.Peek()
	if !ok {
		return Failure[T](NewError(p.id, NoInputProvided, ""))
	}
	v, ok := p.Lookup(token)
	if !ok {
		return Failure[T](NewError(p.id, UnknownEnumValue, token))
	}
	in.Pop()
	return Success(v)
}

// Suggestions returns every member name lower-cased; partial is ignored.
func (p *EnumParser[T]) Suggestions(*Context, string) iter.Seq[string] {
	return slices.Values(p.names)
}
