package argument

import (
	"iter"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// pair consumes two integer tokens and fails after consuming the first
// one if the second is not an integer.
var pair = Funcs[[2]int]{
	ParseFunc: func(_ *Context, in *Input) Result[[2]int] {
		var v [2]int
		for i := range v {
			tok, ok := in.Pop()
			if !ok {
				return Failure[[2]int](NewError("pair", NoInputProvided, ""))
			}
			n, err := strconv.Atoi(tok)
			if err != nil {
				return Failure[[2]int](WrapError("pair", MalformedRange, tok, err))
			}
			v[i] = n
		}
		return Success(v)
	},
}

func TestNew_Validation(t *testing.T) {
	_, err := New[[2]int]("", pair)
	require.Error(t, err)
	_, err = New[[2]int]("Has Space", pair)
	require.Error(t, err)
	_, err = New[[2]int]("this-name-is-way-too-long-for-an-argument", pair)
	require.Error(t, err)
	_, err = New[[2]int]("ok", nil)
	require.Error(t, err)

	a, err := New("pos", pair, WithDescription[[2]int]("a position"))
	require.NoError(t, err)
	require.Equal(t, "pos", a.Name())
	require.Equal(t, "a position", a.Description())
	require.False(t, a.Optional())

	require.Panics(t, func() { Must(New[[2]int]("", pair)) })
}

func TestArgument_ResetsOnFailure(t *testing.T) {
	a := Must(New("pos", Parser[[2]int](pair)))

	in := NewInput("1", "x", "rest")
	r := a.Parse(testContext(), in)
	require.ErrorIs(t, r.Err(), MalformedRange)
	require.Equal(t, []string{"1", "x", "rest"}, in.Tokens())

	in = NewInput("1", "2", "rest")
	r = a.Parse(testContext(), in)
	require.True(t, r.Ok())
	require.Equal(t, [2]int{1, 2}, r.Value())
	require.Equal(t, []string{"rest"}, in.Tokens())
}

func TestArgument_Default(t *testing.T) {
	a := Must(New("block", Parser[block](blocks(t)), WithDefault[block]("air")))
	require.True(t, a.Optional())

	in := NewInput()
	r := a.Parse(testContext(), in)
	require.True(t, r.Ok())
	require.Equal(t, air, r.Value())

	r = a.Parse(testContext(), NewInput("stone"))
	require.Equal(t, stone, r.Value())
}

func TestArgument_Suggestions(t *testing.T) {
	a := Must(New("block", Parser[block](blocks(t))))
	require.Equal(t, []string{"stone", "dirt", "air"}, slices.Collect(a.Suggestions(nil, "")))

	a = Must(New("block", Parser[block](blocks(t)),
		WithSuggestions[block](func(*Context, string) iter.Seq[string] {
			return slices.Values([]string{"dirt"})
		})))
	require.Equal(t, []string{"dirt"}, slices.Collect(a.Suggestions(testContext(), "")))

	require.Empty(t, slices.Collect(Must(New("pos", Parser[[2]int](pair))).Suggestions(testContext(), "")))
}

func TestArgument_ParseAny(t *testing.T) {
	var u Untyped = Must(New("block", Parser[block](blocks(t))))
	v, err := u.ParseAny(testContext(), NewInput("DIRT"))
	require.NoError(t, err)
	require.Equal(t, dirt, v)

	_, err = u.ParseAny(nil, nil)
	require.ErrorIs(t, err, NoInputProvided)
}

func TestResult(t *testing.T) {
	r := Success(3)
	require.True(t, r.Ok())
	require.Nil(t, r.Err())
	v, err := r.Get()
	require.NoError(t, err)
	require.Equal(t, 3, v)

	f := Failure[int](NewError("x", NoInputProvided, ""))
	require.False(t, f.Ok())
	require.Zero(t, f.Value())
	_, err = f.Get()
	require.ErrorIs(t, err, NoInputProvided)

	require.Panics(t, func() { Failure[int](nil) })
}
