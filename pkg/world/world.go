// Package world is an in-memory entity world that resolves entity
// selectors. It stands in for the host game world in the CLI and tests.
package world

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"go.minekube.com/cmdarg/pkg/argument/selector"
	"go.minekube.com/cmdarg/pkg/util/permission"
	uuidutil "go.minekube.com/cmdarg/pkg/util/uuid"
)

// Position is a point in the world.
type Position struct {
	X, Y, Z float64
}

// Distance returns the euclidean distance between p and o.
func (p Position) Distance(o Position) float64 {
	dx, dy, dz := p.X-o.X, p.Y-o.Y, p.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func (p Position) String() string {
	return fmt.Sprintf("%.1f %.1f %.1f", p.X, p.Y, p.Z)
}

// Entity is an entity in the world. Players are entities of
// selector.PlayerType and are also permission subjects.
type Entity struct {
	id    uuid.UUID
	name  string
	typ   string
	tags  []string
	pos   Position
	perms permission.Func
}

var (
	_ selector.Entity    = (*Entity)(nil)
	_ permission.Subject = (*Entity)(nil)
)

// EntityOption configures an Entity.
type EntityOption func(*Entity)

// WithID sets the unique id, a random one is used otherwise.
func WithID(id uuid.UUID) EntityOption { return func(e *Entity) { e.id = id } }

// WithTags sets the scoreboard tags.
func WithTags(tags ...string) EntityOption { return func(e *Entity) { e.tags = tags } }

// WithPosition sets the position.
func WithPosition(p Position) EntityOption { return func(e *Entity) { e.pos = p } }

// WithPermissions sets the permission function.
func WithPermissions(f permission.Func) EntityOption { return func(e *Entity) { e.perms = f } }

// NewEntity returns an entity of the given type. The type defaults to
// the "minecraft:" namespace. Without WithID players get their offline
// mode id and other entities a random one.
func NewEntity(name, typ string, opts ...EntityOption) *Entity {
	e := &Entity{name: name, typ: selector.NamespacedType(typ)}
	for _, o := range opts {
		o(e)
	}
	switch {
	case e.id != uuid.Nil:
	case e.IsPlayer():
		e.id = uuidutil.OfflinePlayer(name)
	default:
		e.id = uuid.New()
	}
	return e
}

// NewPlayer returns a player entity.
func NewPlayer(name string, opts ...EntityOption) *Entity {
	return NewEntity(name, selector.PlayerType, opts...)
}

func (e *Entity) UniqueID() uuid.UUID    { return e.id }
func (e *Entity) Name() string           { return e.name }
func (e *Entity) Type() string           { return e.typ }
func (e *Entity) Tags() []string         { return slices.Clone(e.tags) }
func (e *Entity) Position() Position     { return e.pos }
func (e *Entity) IsPlayer() bool         { return e.typ == selector.PlayerType }
func (e *Entity) HasTag(tag string) bool { return slices.Contains(e.tags, tag) }

func (e *Entity) PermissionValue(perm string) permission.TriState {
	return e.perms.Subject().PermissionValue(perm)
}

func (e *Entity) HasPermission(perm string) bool {
	return e.PermissionValue(perm).Bool()
}

// WorldEntity returns e. Senders embedding an *Entity are resolved
// as that entity, see EntityOf.
func (e *Entity) WorldEntity() *Entity { return e }

// EntityOf returns the entity behind sender, or nil if the sender is
// not an entity, like the console.
func EntityOf(sender permission.Subject) *Entity {
	if s, ok := sender.(interface{ WorldEntity() *Entity }); ok {
		return s.WorldEntity()
	}
	return nil
}

func (e *Entity) String() string {
	return fmt.Sprintf("%s[%s, %s at %s]", e.typ, e.name, e.id, e.pos)
}

// World holds entities and resolves selectors against them.
// It is safe for concurrent use.
type World struct {
	mu       sync.RWMutex
	entities []*Entity
}

var _ selector.Resolver = (*World)(nil)

// New returns a world with the given entities.
func New(entities ...*Entity) *World {
	w := &World{}
	w.Add(entities...)
	return w
}

// Add adds entities to the world.
func (w *World) Add(entities ...*Entity) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entities = append(w.entities, entities...)
}

// Remove removes the entity with id and reports whether it was found.
func (w *World) Remove(id uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := slices.IndexFunc(w.entities, func(e *Entity) bool { return e.id == id })
	if i < 0 {
		return false
	}
	w.entities = slices.Delete(w.entities, i, i+1)
	return true
}

// Entities returns all entities in insertion order.
func (w *World) Entities() []*Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.entities)
}

// Player returns the player with the given name, ignoring case.
func (w *World) Player(name string) (*Entity, bool) {
	return lo.Find(w.Entities(), func(e *Entity) bool {
		return e.IsPlayer() && strings.EqualFold(e.name, name)
	})
}

// PlayerNames returns the names of all players.
func (w *World) PlayerNames(context.Context) []string {
	players := lo.Filter(w.Entities(), func(e *Entity, _ int) bool { return e.IsPlayer() })
	return lo.Map(players, func(e *Entity, _ int) string { return e.name })
}

// Select returns the entities matched by s as seen from sender.
// A sender that is an entity of this world is the origin for distance
// and sorting, any other sender is at the world origin.
func (w *World) Select(ctx context.Context, sender permission.Subject, s *selector.Selector) ([]selector.Entity, error) {
	all := w.Entities()
	self := EntityOf(sender)
	if self != nil && !slices.Contains(all, self) {
		return nil, fmt.Errorf("sender %s is not in this world", self.name)
	}
	var origin Position
	if self != nil {
		origin = self.pos
	}

	var candidates []*Entity
	switch s.Target {
	case selector.Self:
		if self != nil {
			candidates = []*Entity{self}
		}
	case selector.Player:
		candidates = lo.Filter(all, func(e *Entity, _ int) bool {
			return e.IsPlayer() && strings.EqualFold(e.name, s.Name)
		})
	case selector.UUID:
		candidates = lo.Filter(all, func(e *Entity, _ int) bool { return e.id == s.ID })
	case selector.NearestPlayer, selector.AllPlayers, selector.RandomPlayer:
		candidates = lo.Filter(all, func(e *Entity, _ int) bool { return e.IsPlayer() })
	case selector.AllEntities:
		candidates = all
	default:
		return nil, fmt.Errorf("unsupported selector target %s", s.Target)
	}

	matched := lo.Filter(candidates, func(e *Entity, _ int) bool { return matches(e, s, origin) })
	sortEntities(matched, s.EffectiveSort(), origin)
	if n := s.MaxResults(); n > 0 && len(matched) > n {
		matched = matched[:n]
	}

	logr.FromContextOrDiscard(ctx).V(1).Info("resolved selector",
		"selector", s.Input, "candidates", len(candidates), "matched", len(matched))
	return lo.Map(matched, func(e *Entity, _ int) selector.Entity { return e }), nil
}

func matches(e *Entity, s *selector.Selector, origin Position) bool {
	if !lo.EveryBy(s.Types, func(f selector.Filter) bool { return f.Match(e.typ) }) {
		return false
	}
	if !lo.EveryBy(s.Names, func(f selector.Filter) bool { return f.Match(e.name) }) {
		return false
	}
	if !lo.EveryBy(s.Tags, func(f selector.Filter) bool { return matchTag(e, f) }) {
		return false
	}
	if s.Distance != nil && !s.Distance.Contains(e.pos.Distance(origin)) {
		return false
	}
	return true
}

// matchTag matches a tag filter. An empty tag matches entities
// without tags, negated it matches entities with any tag.
func matchTag(e *Entity, f selector.Filter) bool {
	if f.Value == "" {
		return (len(e.tags) == 0) != f.Negated
	}
	return e.HasTag(f.Value) != f.Negated
}

func sortEntities(entities []*Entity, sort selector.Sort, origin Position) {
	switch sort {
	case selector.SortNearest:
		slices.SortStableFunc(entities, func(a, b *Entity) int {
			return cmp.Compare(a.pos.Distance(origin), b.pos.Distance(origin))
		})
	case selector.SortFurthest:
		slices.SortStableFunc(entities, func(a, b *Entity) int {
			return cmp.Compare(b.pos.Distance(origin), a.pos.Distance(origin))
		})
	case selector.SortRandom:
		lo.Shuffle(entities)
	}
}

