package argument

import (
	"strings"

	"github.com/gammazero/deque"
)

// Input is the ordered queue of command tokens that have not been consumed yet.
//
// Parsers peek at the front and only pop what they successfully parsed.
// An Input is owned by a single parse invocation and is not safe for
// concurrent use.
type Input struct {
	tokens   deque.Deque[string]
	consumed []string // popped tokens, oldest first, for Reset
}

// NewInput returns an Input holding tokens in order.
func NewInput(tokens ...string) *Input {
	in := new(Input)
	for _, t := range tokens {
		in.tokens.PushBack(t)
	}
	return in
}

// Tokenize splits a command line on whitespace into an Input.
func Tokenize(line string) *Input {
	return NewInput(strings.Fields(line)...)
}

// Peek returns the next token without removing it.
func (in *Input) Peek() (string, bool) {
	if in.tokens.Len() == 0 {
		return "", false
	}
	return in.tokens.Front(), true
}

// Pop removes and returns the next token.
func (in *Input) Pop() (string, bool) {
	if in.tokens.Len() == 0 {
		return "", false
	}
	t := in.tokens.PopFront()
	in.consumed = append(in.consumed, t)
	return t, true
}

// Len returns the number of remaining tokens.
func (in *Input) Len() int { return in.tokens.Len() }

// Empty reports whether no tokens remain.
func (in *Input) Empty() bool { return in.tokens.Len() == 0 }

// Tokens returns a copy of the remaining tokens.
func (in *Input) Tokens() []string {
	t := make([]string, in.tokens.Len())
	for i := range t {
		t[i] = in.tokens.At(i)
	}
	return t
}

// String returns the remaining tokens joined by a space.
func (in *Input) String() string {
	return strings.Join(in.Tokens(), " ")
}

// Mark is a position in the consumption history of an Input.
type Mark int

// Mark returns the current position so that a failed parse can Reset to it.
func (in *Input) Mark() Mark { return Mark(len(in.consumed)) }

// Reset pushes every token popped since m back to the front, in the original order.
func (in *Input) Reset(m Mark) {
	if int(m) < 0 || int(m) > len(in.consumed) {
		return
	}
	for i := len(in.consumed) - 1; i >= int(m); i-- {
		in.tokens.PushFront(in.consumed[i])
	}
	in.consumed = in.consumed[:m]
}
