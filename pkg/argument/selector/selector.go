// Package selector implements the entity selector grammar
// (@p, @a, @r, @e, @s with [key=value] options, player names and UUIDs)
// and argument parsers that resolve selectors through a host Resolver.
package selector

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.minekube.com/brigodier"

	"go.minekube.com/cmdarg/pkg/argument/bounds"
)

// Target is what a selector selects from.
type Target uint8

const (
	NearestPlayer Target = iota + 1 // @p
	AllPlayers                      // @a
	RandomPlayer                    // @r
	AllEntities                     // @e
	Self                            // @s
	Player                          // a player by name
	UUID                            // an entity by UUID
)

var targetByChar = map[byte]Target{
	'p': NearestPlayer,
	'a': AllPlayers,
	'r': RandomPlayer,
	'e': AllEntities,
	's': Self,
}

func (t Target) String() string {
	for c, target := range targetByChar {
		if target == t {
			return "@" + string(c)
		}
	}
	switch t {
	case Player:
		return "player"
	case UUID:
		return "uuid"
	}
	return "unknown"
}

// Sort is the order in which matched entities are returned.
type Sort string

const (
	SortArbitrary Sort = "arbitrary"
	SortNearest   Sort = "nearest"
	SortFurthest  Sort = "furthest"
	SortRandom    Sort = "random"
)

// Filter is a possibly negated option value, e.g. type=!cow.
type Filter struct {
	Value   string
	Negated bool
}

// Match reports whether s satisfies the filter.
func (f Filter) Match(s string) bool { return (s == f.Value) != f.Negated }

func (f Filter) String() string {
	if f.Negated {
		return "!" + f.Value
	}
	return f.Value
}

// PlayerType is the entity type of players.
const PlayerType = "minecraft:player"

// Selector is a parsed entity selector.
type Selector struct {
	Input  string
	Target Target
	Name   string    // Player target
	ID     uuid.UUID // UUID target

	Limit    int  // 0 if unset
	Sort     Sort // empty if unset
	Types    []Filter
	Names    []Filter
	Tags     []Filter
	Distance *bounds.Floats
}

// MaxResults returns the maximum number of entities the selector may
// select, or 0 if unlimited.
func (s *Selector) MaxResults() int {
	if s.Limit > 0 {
		return s.Limit
	}
	switch s.Target {
	case NearestPlayer, RandomPlayer, Self, Player, UUID:
		return 1
	}
	return 0
}

// Single reports whether the selector can select at most one entity.
func (s *Selector) Single() bool { return s.MaxResults() == 1 }

// PlayersOnly reports whether the selector can only select players.
func (s *Selector) PlayersOnly() bool {
	switch s.Target {
	case NearestPlayer, AllPlayers, RandomPlayer, Player:
		return true
	}
	for _, t := range s.Types {
		if !t.Negated && NamespacedType(t.Value) == PlayerType {
			return true
		}
	}
	return false
}

// EffectiveSort returns the sort order, applying the target's default.
func (s *Selector) EffectiveSort() Sort {
	if s.Sort != "" {
		return s.Sort
	}
	switch s.Target {
	case NearestPlayer:
		return SortNearest
	case RandomPlayer:
		return SortRandom
	}
	return SortArbitrary
}

func (s *Selector) String() string { return s.Input }

// NamespacedType adds the default "minecraft:" namespace to an entity type.
func NamespacedType(t string) string {
	if strings.HasPrefix(t, "#") || strings.Contains(t, ":") {
		return t
	}
	return "minecraft:" + t
}

var playerName = regexp.MustCompile(`^[A-Za-z0-9_]{1,16}$`)

// ValidPlayerName reports whether s is a valid player name.
func ValidPlayerName(s string) bool { return playerName.MatchString(s) }

// Reason classifies a selector syntax error.
type Reason string

const (
	ReasonEmpty              Reason = "expected a selector, player name or UUID"
	ReasonMissingType        Reason = "missing selector type"
	ReasonUnknownType        Reason = "unknown selector type"
	ReasonInvalidName        Reason = "invalid player name or UUID"
	ReasonExpectedKey        Reason = "expected option key"
	ReasonExpectedEquals     Reason = "expected '=' after option key"
	ReasonExpectedValue      Reason = "expected option value"
	ReasonExpectedEnd        Reason = "expected ',' or ']' to end option"
	ReasonUnknownOption      Reason = "unknown option"
	ReasonDuplicateOption    Reason = "option may only be given once"
	ReasonNegationNotAllowed Reason = "option cannot be negated"
	ReasonInapplicable       Reason = "option is inapplicable to this selector type"
	ReasonInvalidLimit       Reason = "limit must be at least 1"
	ReasonInvalidSort        Reason = "invalid sort type"
	ReasonNegativeDistance   Reason = "distance cannot be negative"
	ReasonUnterminatedQuote  Reason = "unterminated quoted string"
	ReasonTrailing           Reason = "unexpected trailing input"
)

// SyntaxError is returned by the selector grammar.
type SyntaxError struct {
	Input  string
	Cursor int
	Reason Reason
	Err    error
}

func (e *SyntaxError) Error() string {
	s := fmt.Sprintf("%s at position %d: %s<--[HERE]", e.Reason, e.Cursor, e.Input[:min(e.Cursor, len(e.Input))])
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Option keys in suggestion order.
var optionKeys = []string{"distance", "limit", "name", "sort", "tag", "type"}

// Parse parses input as a selector. The whole input must match.
func Parse(input string) (*Selector, error) {
	p := &parser{rd: &brigodier.StringReader{String: input}}
	s, err := p.parse()
	if err != nil {
		return nil, err
	}
	if p.canRead(1) {
		return nil, p.errAt(p.rd.Cursor, ReasonTrailing, nil)
	}
	return s, nil
}

type parser struct {
	rd *brigodier.StringReader
}

func (p *parser) canRead(n int) bool { return p.rd.Cursor+n <= len(p.rd.String) }
func (p *parser) peek() byte         { return p.rd.String[p.rd.Cursor] }
func (p *parser) skip()              { p.rd.Cursor++ }

func (p *parser) skipWhitespace() {
	for p.canRead(1) && (p.peek() == ' ' || p.peek() == '\t') {
		p.skip()
	}
}

func (p *parser) errAt(cursor int, reason Reason, err error) *SyntaxError {
	return &SyntaxError{Input: p.rd.String, Cursor: cursor, Reason: reason, Err: err}
}

func (p *parser) parse() (*Selector, error) {
	s := &Selector{Input: p.rd.String}
	if !p.canRead(1) {
		return nil, p.errAt(0, ReasonEmpty, nil)
	}
	if p.peek() != '@' {
		return p.parseNameOrUUID(s)
	}
	p.skip()
	if !p.canRead(1) {
		return nil, p.errAt(p.rd.Cursor, ReasonMissingType, nil)
	}
	target, ok := targetByChar[p.peek()]
	if !ok {
		return nil, p.errAt(p.rd.Cursor, ReasonUnknownType, nil)
	}
	p.skip()
	s.Target = target
	if p.canRead(1) && p.peek() == '[' {
		p.skip()
		if err := p.parseOptions(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (p *parser) parseNameOrUUID(s *Selector) (*Selector, error) {
	start := p.rd.Cursor
	rest := p.rd.String[start:]
	if len(rest) == 36 {
		if id, err := uuid.Parse(rest); err == nil {
			p.rd.Cursor = len(p.rd.String)
			s.Target, s.ID = UUID, id
			return s, nil
		}
	}
	if !ValidPlayerName(rest) {
		return nil, p.errAt(start, ReasonInvalidName, nil)
	}
	p.rd.Cursor = len(p.rd.String)
	s.Target, s.Name = Player, rest
	return s, nil
}

func (p *parser) parseOptions(s *Selector) error {
	p.skipWhitespace()
	for p.canRead(1) && p.peek() != ']' {
		keyStart := p.rd.Cursor
		key := p.readKey()
		if key == "" {
			return p.errAt(keyStart, ReasonExpectedKey, nil)
		}
		p.skipWhitespace()
		if !p.canRead(1) || p.peek() != '=' {
			return p.errAt(p.rd.Cursor, ReasonExpectedEquals, nil)
		}
		p.skip()
		p.skipWhitespace()
		if err := p.parseOption(s, key, keyStart); err != nil {
			return err
		}
		p.skipWhitespace()
		if !p.canRead(1) {
			break
		}
		switch p.peek() {
		case ',':
			p.skip()
			p.skipWhitespace()
		case ']':
		default:
			return p.errAt(p.rd.Cursor, ReasonExpectedEnd, nil)
		}
	}
	if !p.canRead(1) {
		return p.errAt(p.rd.Cursor, ReasonExpectedEnd, nil)
	}
	p.skip() // ']'
	return nil
}

func (p *parser) parseOption(s *Selector, key string, keyStart int) error {
	negated := false
	if p.canRead(1) && p.peek() == '!' {
		switch key {
		case "type", "name", "tag":
			p.skip()
			negated = true
		default:
			return p.errAt(p.rd.Cursor, ReasonNegationNotAllowed, nil)
		}
	}
	valueStart := p.rd.Cursor
	switch key {
	case "limit":
		if s.Limit != 0 {
			return p.errAt(keyStart, ReasonDuplicateOption, nil)
		}
		v, err := p.readValue()
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return p.errAt(valueStart, ReasonExpectedValue, err)
		}
		if n < 1 {
			return p.errAt(valueStart, ReasonInvalidLimit, nil)
		}
		s.Limit = n
	case "sort":
		if s.Sort != "" {
			return p.errAt(keyStart, ReasonDuplicateOption, nil)
		}
		v, err := p.readValue()
		if err != nil {
			return err
		}
		switch sort := Sort(v); sort {
		case SortArbitrary, SortNearest, SortFurthest, SortRandom:
			s.Sort = sort
		default:
			return p.errAt(valueStart, ReasonInvalidSort, nil)
		}
	case "distance":
		if s.Distance != nil {
			return p.errAt(keyStart, ReasonDuplicateOption, nil)
		}
		d, err := bounds.ParseFloats(p.rd)
		if err != nil {
			return p.errAt(valueStart, ReasonExpectedValue, err)
		}
		if (d.Min != nil && *d.Min < 0) || (d.Max != nil && *d.Max < 0) {
			return p.errAt(valueStart, ReasonNegativeDistance, nil)
		}
		s.Distance = &d
	case "type":
		if s.Target == NearestPlayer || s.Target == AllPlayers || s.Target == RandomPlayer {
			return p.errAt(keyStart, ReasonInapplicable, nil)
		}
		if !negated && hasPositive(s.Types) {
			return p.errAt(keyStart, ReasonDuplicateOption, nil)
		}
		v, err := p.readValue()
		if err != nil {
			return err
		}
		if v == "" {
			return p.errAt(valueStart, ReasonExpectedValue, nil)
		}
		s.Types = append(s.Types, Filter{Value: NamespacedType(v), Negated: negated})
	case "name":
		if !negated && hasPositive(s.Names) {
			return p.errAt(keyStart, ReasonDuplicateOption, nil)
		}
		v, err := p.readValue()
		if err != nil {
			return err
		}
		s.Names = append(s.Names, Filter{Value: v, Negated: negated})
	case "tag":
		// An empty tag matches entities without any tag.
		v, err := p.readValue()
		if err != nil {
			return err
		}
		s.Tags = append(s.Tags, Filter{Value: v, Negated: negated})
	default:
		return p.errAt(keyStart, ReasonUnknownOption, fmt.Errorf("option %q", key))
	}
	return nil
}

func hasPositive(filters []Filter) bool {
	for _, f := range filters {
		if !f.Negated {
			return true
		}
	}
	return false
}

func (p *parser) readKey() string {
	start := p.rd.Cursor
	for p.canRead(1) {
		c := p.peek()
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			break
		}
		p.skip()
	}
	return p.rd.String[start:p.rd.Cursor]
}

// readValue reads a quoted or unquoted option value.
func (p *parser) readValue() (string, error) {
	if !p.canRead(1) {
		return "", nil
	}
	if q := p.peek(); q == '"' || q == '\'' {
		return p.readQuoted(q)
	}
	start := p.rd.Cursor
	for p.canRead(1) {
		c := p.peek()
		if c == ',' || c == ']' || c == ' ' || c == '\t' {
			break
		}
		p.skip()
	}
	return p.rd.String[start:p.rd.Cursor], nil
}

func (p *parser) readQuoted(quote byte) (string, error) {
	start := p.rd.Cursor
	p.skip()
	b := new(strings.Builder)
	escaped := false
	for p.canRead(1) {
		c := p.peek()
		p.skip()
		switch {
		case escaped:
			b.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == quote:
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
	}
	return "", p.errAt(start, ReasonUnterminatedQuote, nil)
}
