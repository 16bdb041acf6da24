package world

import (
	"context"
	"testing"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.minekube.com/cmdarg/pkg/argument"
	"go.minekube.com/cmdarg/pkg/argument/selector"
	"go.minekube.com/cmdarg/pkg/platform"
	"go.minekube.com/cmdarg/pkg/util/permission"
	uuidutil "go.minekube.com/cmdarg/pkg/util/uuid"
)

type fixture struct {
	w                 *World
	alice, bob, carol *Entity
	cow, pig          *Entity
}

func newFixture() *fixture {
	f := &fixture{
		alice: NewPlayer("Alice", WithPosition(Position{}), WithTags("admin")),
		bob:   NewPlayer("Bob", WithPosition(Position{X: 10})),
		carol: NewPlayer("Carol", WithPosition(Position{X: 3, Y: 4})), // distance 5 from origin
		cow:   NewEntity("Bessie", "cow", WithPosition(Position{Z: 2}), WithTags("farm")),
		pig:   NewEntity("Wilbur", "minecraft:pig", WithPosition(Position{Z: 20}), WithTags("farm", "pink")),
	}
	f.w = New(f.alice, f.bob, f.carol, f.cow, f.pig)
	return f
}

func (f *fixture) selectNames(t *testing.T, sender permission.Subject, input string) []string {
	t.Helper()
	s, err := selector.Parse(input)
	require.NoError(t, err)
	entities, err := f.w.Select(context.Background(), sender, s)
	require.NoError(t, err)
	return lo.Map(entities, func(e selector.Entity, _ int) string { return e.Name() })
}

func TestSelect(t *testing.T) {
	f := newFixture()
	tests := []struct {
		in     string
		sender permission.Subject
		want   []string
	}{
		{"@a", permission.All, []string{"Alice", "Bob", "Carol"}},
		{"@e", permission.All, []string{"Alice", "Bob", "Carol", "Bessie", "Wilbur"}},
		{"@p", f.bob, []string{"Bob"}},
		{"@p", permission.All, []string{"Alice"}},
		{"@a[sort=furthest]", permission.All, []string{"Bob", "Carol", "Alice"}},
		{"@a[sort=nearest,limit=2]", f.bob, []string{"Bob", "Carol"}},
		{"@s", f.carol, []string{"Carol"}},
		{"@s", permission.All, nil},
		{"bob", permission.All, []string{"Bob"}},
		{"Dave", permission.All, nil},
		{"@e[type=cow]", permission.All, []string{"Bessie"}},
		{"@e[type=!player]", permission.All, []string{"Bessie", "Wilbur"}},
		{"@e[type=!player,type=!cow]", permission.All, []string{"Wilbur"}},
		{"@e[tag=farm]", permission.All, []string{"Bessie", "Wilbur"}},
		{"@e[tag=farm,tag=!pink]", permission.All, []string{"Bessie"}},
		{"@e[tag=]", permission.All, []string{"Bob", "Carol"}},
		{"@a[tag=!]", permission.All, []string{"Alice"}},
		{"@e[name=Wilbur]", permission.All, []string{"Wilbur"}},
		{"@e[name=!Wilbur,type=!player]", permission.All, []string{"Bessie"}},
		{"@e[distance=..5]", permission.All, []string{"Alice", "Carol", "Bessie"}},
		{"@e[distance=5..,sort=nearest]", permission.All, []string{"Carol", "Bob", "Wilbur"}},
		{"@e[distance=..2]", f.cow, []string{"Alice", "Bessie"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := f.selectNames(t, tt.sender, tt.in)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelect_ByUUID(t *testing.T) {
	f := newFixture()
	assert.Equal(t, []string{"Wilbur"}, f.selectNames(t, permission.All, f.pig.UniqueID().String()))
	assert.Empty(t, f.selectNames(t, permission.All, uuid.NewString()))
}

func TestSelect_Random(t *testing.T) {
	f := newFixture()
	for range 10 {
		got := f.selectNames(t, permission.All, "@r")
		require.Len(t, got, 1)
		assert.Contains(t, []string{"Alice", "Bob", "Carol"}, got[0])
	}
	assert.ElementsMatch(t, []string{"Alice", "Bob", "Carol"}, f.selectNames(t, permission.All, "@a[sort=random]"))
}

func TestSelect_ForeignSender(t *testing.T) {
	f := newFixture()
	s, err := selector.Parse("@s")
	require.NoError(t, err)
	_, err = f.w.Select(context.Background(), NewPlayer("Stranger"), s)
	require.Error(t, err)
}

func TestWorld_Players(t *testing.T) {
	f := newFixture()
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, f.w.PlayerNames(context.Background()))

	p, ok := f.w.Player("cArOl")
	require.True(t, ok)
	assert.Same(t, f.carol, p)
	_, ok = f.w.Player("Bessie")
	assert.False(t, ok, "not a player")

	require.True(t, f.w.Remove(f.carol.UniqueID()))
	require.False(t, f.w.Remove(f.carol.UniqueID()))
	assert.Equal(t, []string{"Alice", "Bob"}, f.w.PlayerNames(context.Background()))
}

func TestEntity(t *testing.T) {
	name := faker.Username()
	id := uuid.New()
	e := NewPlayer(name, WithID(id), WithTags("a", "b"),
		WithPermissions(func(perm string) permission.TriState {
			if perm == "cmd.use" {
				return permission.True
			}
			return permission.Undefined
		}))
	assert.Equal(t, id, e.UniqueID())
	assert.Equal(t, name, e.Name())
	assert.True(t, e.IsPlayer())
	assert.True(t, e.HasTag("b"))
	assert.True(t, e.HasPermission("cmd.use"))
	assert.False(t, e.HasPermission("cmd.admin"))
	assert.Contains(t, e.String(), name)

	cow := NewEntity(faker.Word(), "cow")
	assert.Equal(t, "minecraft:cow", cow.Type())
	assert.NotEqual(t, uuid.Nil, cow.UniqueID())
	assert.False(t, cow.HasPermission("cmd.use"))

	assert.Equal(t, uuidutil.OfflinePlayer(name), NewPlayer(name).UniqueID(), "offline mode id")
}

func TestWorld_SelectorParsers(t *testing.T) {
	f := newFixture()
	c := argument.NewContext(context.Background(), f.alice, platform.Latest())

	single := selector.NewSingleEntity(f.w)
	r := single.Parse(c, argument.NewInput("@p"))
	require.True(t, r.Ok())
	require.Same(t, f.alice, r.Value().Entity)

	r = single.Parse(c, argument.NewInput("@e[type=cow,limit=1]"))
	require.True(t, r.Ok())
	require.Same(t, f.cow, r.Value().Entity)

	require.ErrorIs(t, single.Parse(c, argument.NewInput("@e")).Err(), argument.AmbiguousSelectorResult)
	require.ErrorIs(t, single.Parse(c, argument.NewInput("@e[type=sheep,limit=1]")).Err(), argument.NoEntityFound)

	multi := selector.NewMultipleEntities(f.w)
	m := multi.Parse(c, argument.NewInput("@e[tag=farm]"))
	require.True(t, m.Ok())
	require.Len(t, m.Value().Entities, 2)
}
