package bounds

import (
	"iter"

	"go.minekube.com/brigodier"

	"go.minekube.com/cmdarg/pkg/argument"
)

// Parser is a range argument parser that delegates to the range grammar.
// The whole token must be a range.
type Parser[N Number] struct {
	id      string
	grammar func(*brigodier.StringReader) (Bounds[N], error)
}

var (
	_ argument.Parser[Floats] = (*Parser[float64])(nil)
	_ argument.Parser[Ints]   = (*Parser[int])(nil)
)

// NewFloatRange returns a float range parser identified by id.
// An empty id defaults to "float_range".
func NewFloatRange(id string) *Parser[float64] {
	if id == "" {
		id = FloatRange.String()
	}
	return &Parser[float64]{id: id, grammar: ParseFloats}
}

// NewIntRange returns an int range parser identified by id.
// An empty id defaults to "int_range".
func NewIntRange(id string) *Parser[int] {
	if id == "" {
		id = IntRange.String()
	}
	return &Parser[int]{id: id, grammar: ParseInts}
}

func (p *Parser[N]) Parse(_ *argument.Context, in *argument.Input) argument.Result[Bounds[N]] {
	token, ok := in.Peek()
	if !ok {
		return argument.Failure[Bounds[N]](argument.NewError(p.id, argument.NoInputProvided, ""))
	}
	rd := &brigodier.StringReader{String: token}
	b, err := p.grammar(rd)
	if err == nil && canRead(rd, 1) {
		err = syntaxErr(rd, rd.Cursor, ReasonTrailing, nil)
	}
	if err != nil {
		return argument.Failure[Bounds[N]](argument.WrapError(p.id, argument.MalformedRange, token, err))
	}
	in.Pop()
	return argument.Success(b)
}

// Suggestions is always empty, the range grammar offers none.
func (p *Parser[N]) Suggestions(*argument.Context, string) iter.Seq[string] {
	return argument.None
}

// FloatRange and IntRange are brigodier argument types for use in command trees.
var (
	FloatRange brigodier.ArgumentType = floatRangeType{}
	IntRange   brigodier.ArgumentType = intRangeType{}
)

type floatRangeType struct{}

func (floatRangeType) Parse(rd *brigodier.StringReader) (any, error) { return ParseFloats(rd) }
func (floatRangeType) String() string                                { return "float_range" }

type intRangeType struct{}

func (intRangeType) Parse(rd *brigodier.StringReader) (any, error) { return ParseInts(rd) }
func (intRangeType) String() string                                { return "int_range" }
