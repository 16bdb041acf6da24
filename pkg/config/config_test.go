package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"go.minekube.com/cmdarg/pkg/argument/selector"
	"go.minekube.com/cmdarg/pkg/command/suggest"
	"go.minekube.com/cmdarg/pkg/edition/java/proto/version"
)

func TestLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	err := os.WriteFile(configPath, []byte(`
platform:
  version: 1.12.2
selector:
  cacheTTL: 10m
world:
  sender: Steve
  entities:
    - name: Steve
      type: player
      tags: [admin]
      position: {x: 1, y: 64, z: -3}
      permissions: [cmdarg.command.*]
    - name: Bessie
      type: minecraft:cow
      uuid: 5c4b0a0e-4a53-4e0b-8f39-3c1f5c3c9d1a
`), 0644)
	require.NoError(t, err)

	v := viper.New()
	v.SetConfigFile(configPath)
	f, err := Load(v)
	require.NoError(t, err)

	require.Equal(t, "1.12.2", f.Platform.Version)
	require.Equal(t, 10*time.Minute, f.Selector.CacheTTL)
	require.Equal(t, suggest.DefaultMinimumSimilarityScore, f.Suggestions.MinScore, "default applies")
	require.Equal(t, "Steve", f.World.Sender)
	require.Len(t, f.World.Entities, 2)
	require.Equal(t, Position{X: 1, Y: 64, Z: -3}, f.World.Entities[0].Position)
	require.Equal(t, []string{"cmdarg.command.*"}, f.World.Entities[0].Permissions)
	require.Equal(t, "5c4b0a0e-4a53-4e0b-8f39-3c1f5c3c9d1a", f.World.Entities[1].UUID)

	c, warns, err := NewValid(f)
	require.NoError(t, err)
	require.Len(t, warns, 1, "1.12.2 predates selectors")
	require.False(t, c.Capabilities.Selectors)
	require.Equal(t, version.Minecraft_1_12_2, c.Capabilities.Version)
}

func TestLoad_NoFile(t *testing.T) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(t.TempDir(), "missing.yml"))
	f, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, Default.Platform.Version, f.Platform.Version)
	require.Equal(t, selector.DefaultCacheTTL, f.Selector.CacheTTL)
	require.Equal(t, ConsoleSender, f.World.Sender)
	require.Empty(t, f.World.Entities)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CMDARG_PLATFORM_VERSION", "1.8.9")
	v := viper.New()
	v.SetEnvPrefix("cmdarg")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	f, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, "1.8.9", f.Platform.Version)
}

func TestLoad_Malformed(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("world: [\n"), 0644))
	v := viper.New()
	v.SetConfigFile(configPath)
	_, err := Load(v)
	require.ErrorContains(t, err, "error reading config file")
}

func TestDefault_Valid(t *testing.T) {
	f := Default
	c, warns, err := NewValid(&f)
	require.NoError(t, err)
	require.Empty(t, warns)
	require.True(t, c.Capabilities.Selectors)
}

func TestDefault_Marshal(t *testing.T) {
	b, err := yaml.Marshal(Default)
	require.NoError(t, err)
	require.Contains(t, string(b), "cacheTTL: 5m0s")
	require.Contains(t, string(b), "sender: Steve")
}

func TestValidate(t *testing.T) {
	f := &File{
		Platform:    Platform{Version: "0.1"},
		Suggestions: Suggestions{MinScore: 2},
		Selector:    Selector{CacheTTL: 0},
		Materials:   Materials{File: filepath.Join(t.TempDir(), "missing.yml")},
		World: World{
			Sender: "Herobrine",
			Entities: []Entity{
				{Name: "Steve", Type: selector.PlayerType, UUID: "5c4b0a0e-4a53-4e0b-8f39-3c1f5c3c9d1a"},
				{Name: "Steve", Type: "player"},
				{Name: "not a name!", Type: "player"},
				{Name: "Bessie", Type: "cow", UUID: "5c4b0a0e-4a53-4e0b-8f39-3c1f5c3c9d1a"},
				{Name: "Wilbur", UUID: "nope"},
				{Type: "pig"},
				{Name: "Zed", Type: "Zombie", Tags: []string{"bad tag"}},
			},
		},
	}
	warns, errs := f.Validate()
	require.Empty(t, warns)
	require.Len(t, errs, 13)

	_, _, err := NewValid(f)
	require.ErrorContains(t, err, "there are 13 config validation errors")

	_, _, err = NewValid(nil)
	require.Error(t, err)
}

func TestValidate_EmptyWorld(t *testing.T) {
	f := Default
	f.World = World{Sender: ConsoleSender}
	warns, errs := f.Validate()
	require.Empty(t, errs)
	require.Len(t, warns, 1)
}
