package selector

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"

	"go.minekube.com/cmdarg/pkg/argument"
	"go.minekube.com/cmdarg/pkg/edition/java/proto/version"
	"go.minekube.com/cmdarg/pkg/internal/cachutil"
	"go.minekube.com/cmdarg/pkg/platform"
	"go.minekube.com/cmdarg/pkg/util/permission"
)

// Entity is an entity of the host world.
type Entity interface {
	UniqueID() uuid.UUID
	Name() string
	Type() string // namespaced entity type, e.g. "minecraft:cow"
}

// Resolver resolves selectors against the host world.
type Resolver interface {
	// Select returns the entities matched by s, as seen from sender.
	Select(ctx context.Context, sender permission.Subject, s *Selector) ([]Entity, error)
	// PlayerNames returns the names of the online players.
	PlayerNames(ctx context.Context) []string
}

// SingleEntity is the result of a single entity parser.
type SingleEntity struct {
	Input  string
	Entity Entity
}

// MultipleEntities is the result of a multiple entities parser.
type MultipleEntities struct {
	Input    string
	Entities []Entity
}

// DefaultCacheTTL is how long a compiled selector is cached by default.
const DefaultCacheTTL = 5 * time.Minute

type options struct {
	id       string
	cacheTTL time.Duration
}

// Option configures a selector parser.
type Option func(*options)

// WithID sets the parser identity reported in parse errors.
func WithID(id string) Option {
	return func(o *options) { o.id = id }
}

// WithCacheTTL sets how long compiled selectors are cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.cacheTTL = ttl
		}
	}
}

// compiled is a cached grammar result.
type compiled struct {
	sel *Selector
	err error
}

// Parser parses a token as an entity selector and resolves it.
//
// It is gated on the platform: without selector support every parse
// fails with UnsupportedPlatformVersion and no suggestions are offered.
type Parser[T any] struct {
	id       string
	single   bool
	resolver Resolver
	cache    *ttlcache.Cache[string, compiled]
	result   func(input string, entities []Entity) T
}

var (
	_ argument.Parser[SingleEntity]     = (*Parser[SingleEntity])(nil)
	_ argument.Parser[MultipleEntities] = (*Parser[MultipleEntities])(nil)
)

// NewSingleEntity returns a parser that requires a selector resolving to exactly one entity.
func NewSingleEntity(resolver Resolver, opts ...Option) *Parser[SingleEntity] {
	return newParser(resolver, "single_entity", true, func(input string, entities []Entity) SingleEntity {
		return SingleEntity{Input: input, Entity: entities[0]}
	}, opts)
}

// NewMultipleEntities returns a parser that accepts a selector resolving to one or more entities.
func NewMultipleEntities(resolver Resolver, opts ...Option) *Parser[MultipleEntities] {
	return newParser(resolver, "multiple_entities", false, func(input string, entities []Entity) MultipleEntities {
		return MultipleEntities{Input: input, Entities: entities}
	}, opts)
}

func newParser[T any](resolver Resolver, id string, single bool, result func(string, []Entity) T, opts []Option) *Parser[T] {
	o := &options{id: id, cacheTTL: DefaultCacheTTL}
	for _, opt := range opts {
		opt(o)
	}
	return &Parser[T]{
		id:       o.id,
		single:   single,
		resolver: resolver,
		result:   result,
		cache: cachutil.NewLoadingCache[string, compiled](o.cacheTTL, 1024, func(input string) compiled {
			sel, err := Parse(input)
			return compiled{sel: sel, err: err}
		}),
	}
}

// ID returns the parser identity.
func (p *Parser[T]) ID() string { return p.id }

// Single reports whether the parser requires exactly one entity.
func (p *Parser[T]) Single() bool { return p.single }

func (p *Parser[T]) compile(input string) (*Selector, error) {
	if c, ok := cachutil.Load(p.cache, input); ok {
		return c.sel, c.err
	}
	return Parse(input)
}

func (p *Parser[T]) Parse(c *argument.Context, in *argument.Input) argument.Result[T] {
	token, ok := in.Peek()
	if !c.Platform.Selectors {
		return argument.Failure[T](argument.WrapError(p.id, argument.UnsupportedPlatformVersion, token,
			fmt.Errorf("entity selectors require %s or newer, platform is %s",
				platform.SelectorSupport, version.Protocol(c.Platform.Protocol))))
	}
	if !ok {
		return argument.Failure[T](argument.NewError(p.id, argument.NoInputProvided, ""))
	}

	sel, err := p.compile(token)
	if err != nil {
		return argument.Failure[T](argument.WrapError(p.id, argument.MalformedSelector, token, err))
	}
	if p.single && !sel.Single() {
		return argument.Failure[T](argument.WrapError(p.id, argument.AmbiguousSelectorResult, token,
			fmt.Errorf("selector %s may select more than one entity", token)))
	}

	entities, err := p.resolver.Select(c, c.Sender, sel)
	if err != nil {
		return argument.Failure[T](argument.WrapError(p.id, argument.SelectorResolution, token, err))
	}
	switch {
	case len(entities) == 0:
		return argument.Failure[T](argument.NewError(p.id, argument.NoEntityFound, token))
	case p.single && len(entities) > 1:
		return argument.Failure[T](argument.WrapError(p.id, argument.AmbiguousSelectorResult, token,
			fmt.Errorf("selector %s resolved to %d entities", token, len(entities))))
	}

	in.Pop()
	return argument.Success(p.result(token, entities))
}

// Suggestions yields selector heads, option completions and online
// player names. Player names are only fetched once the sequence is
// iterated past the heads.
func (p *Parser[T]) Suggestions(c *argument.Context, partial string) iter.Seq[string] {
	if !c.Platform.Selectors {
		return argument.None
	}
	names := func(yield func(string) bool) {
		for n := range slices.Values(p.resolver.PlayerNames(c)) {
			if !yield(n) {
				return
			}
		}
	}
	return Suggest(partial, names)
}
