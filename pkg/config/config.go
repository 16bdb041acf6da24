// Package config is the configuration of the cmdarg tool read with Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"go.minekube.com/cmdarg/pkg/argument/selector"
	"go.minekube.com/cmdarg/pkg/command/suggest"
	"go.minekube.com/cmdarg/pkg/edition/java/proto/version"
	"go.minekube.com/cmdarg/pkg/platform"
	"go.minekube.com/cmdarg/pkg/util/configutil"
	"go.minekube.com/cmdarg/pkg/util/validation"
)

// ConsoleSender is the World.Sender name of the console.
const ConsoleSender = "console"

// File is for reading a config file into this struct.
type File struct {
	Debug       bool        `yaml:"debug"`
	Platform    Platform    `yaml:"platform"`
	Suggestions Suggestions `yaml:"suggestions"`
	Selector    Selector    `yaml:"selector"`
	Materials   Materials   `yaml:"materials"`
	World       World       `yaml:"world"`
}

type (
	// Platform is the simulated host platform.
	Platform struct {
		Version string `yaml:"version"` // e.g. 1.20.4
	}
	Suggestions struct {
		MinScore float64 `yaml:"minScore"` // 0..1, see suggest.SimilarScore
	}
	Selector struct {
		CacheTTL time.Duration `yaml:"cacheTTL"` // How long compiled selectors are cached.
	}
	Materials struct {
		File string `yaml:"file,omitempty"` // Empty uses the embedded registry.
	}
	// World is the in-memory world selectors resolve against.
	World struct {
		Sender   string   `yaml:"sender"` // Player name or "console".
		Entities []Entity `yaml:"entities"`
	}
	Entity struct {
		Name        string   `yaml:"name"`
		Type        string   `yaml:"type"`
		UUID        string   `yaml:"uuid,omitempty"`
		Tags        []string `yaml:"tags,omitempty"`
		Position    Position `yaml:"position"`
		Permissions []string `yaml:"permissions,omitempty"` // Granted permissions.
	}
	Position struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
		Z float64 `yaml:"z"`
	}
)

// Default is a default File with an example world.
var Default = File{
	Platform:    Platform{Version: version.MaximumVersion.LastName()},
	Suggestions: Suggestions{MinScore: suggest.DefaultMinimumSimilarityScore},
	Selector:    Selector{CacheTTL: selector.DefaultCacheTTL},
	World: World{
		Sender: "Steve",
		Entities: []Entity{
			{Name: "Steve", Type: selector.PlayerType, Position: Position{Y: 64}, Tags: []string{"admin"},
				Permissions: []string{"cmdarg.command.*"}},
			{Name: "Alex", Type: selector.PlayerType, Position: Position{X: 10, Y: 64}},
			{Name: "Bessie", Type: "minecraft:cow", Position: Position{X: 3, Y: 64, Z: 4}, Tags: []string{"farm"}},
		},
	},
}

// MarshalYAML writes the cache TTL as a duration string, e.g. 5m0s.
func (s Selector) MarshalYAML() (any, error) {
	return map[string]string{"cacheTTL": s.CacheTTL.String()}, nil
}

// SetDefaults sets File defaults to use with Viper.
func SetDefaults(i configutil.SetDefault) {
	i.SetDefault("debug", false)
	configutil.Section("platform", i).SetDefault("version", Default.Platform.Version)
	configutil.Section("suggestions", i).SetDefault("minScore", Default.Suggestions.MinScore)
	configutil.Section("selector", i).SetDefault("cacheTTL", Default.Selector.CacheTTL)
	configutil.Section("world", i).SetDefault("sender", ConsoleSender)
}

// Load reads the config file of v, if any, and environment variables
// into a File with defaults applied.
func Load(v *viper.Viper) (*File, error) {
	SetDefaults(v)
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("error reading config file %q: %w", v.ConfigFileUsed(), err)
			}
		}
	}
	f := new(File)
	if err := v.Unmarshal(f); err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return f, nil
}

// Config is a validated File.
type Config struct {
	*File
	// Capabilities resolved from Platform.Version.
	Capabilities platform.Capabilities
}

// NewValid validates f and returns the Config with the warnings
// that should be logged. It fails if there is any validation error.
func NewValid(f *File) (c *Config, warns []error, err error) {
	if f == nil {
		return nil, nil, errors.New("file must not be nil-pointer")
	}
	warns, errs := f.Validate()
	if len(errs) != 0 {
		a, s := "are", "s"
		if len(errs) == 1 {
			a, s = "is", ""
		}
		return nil, warns, fmt.Errorf("there %s %d config validation error%s: %w",
			a, len(errs), s, errors.Join(errs...))
	}
	caps, err := platform.ResolveName(f.Platform.Version)
	if err != nil {
		return nil, warns, err
	}
	return &Config{File: f, Capabilities: caps}, warns, nil
}

// Validate validates a File.
func (f *File) Validate() (warns []error, errs []error) {
	e := func(m string, args ...any) { errs = append(errs, fmt.Errorf(m, args...)) }
	w := func(m string, args ...any) { warns = append(warns, fmt.Errorf(m, args...)) }
	if f == nil {
		e("config must not be nil")
		return
	}

	if caps, err := platform.ResolveName(f.Platform.Version); err != nil {
		e("Invalid platform version: %v", err)
	} else if !caps.Selectors {
		w("Platform %s predates entity selectors (%s), selector arguments will always fail.",
			f.Platform.Version, platform.SelectorSupport)
	}

	if f.Suggestions.MinScore < 0 || f.Suggestions.MinScore > 1 {
		e("Invalid suggestions minScore %v: must be 0..1", f.Suggestions.MinScore)
	}
	if f.Selector.CacheTTL <= 0 {
		e("Invalid selector cacheTTL %s: must be positive", f.Selector.CacheTTL)
	}
	if f.Materials.File != "" {
		if _, err := os.Stat(f.Materials.File); err != nil {
			e("Invalid materials file: %v", err)
		}
	}

	f.World.validate(w, e)
	return
}

func (wd *World) validate(w, e func(m string, args ...any)) {
	if len(wd.Entities) == 0 {
		w("The world has no entities, every selector will find nothing.")
	}
	ids := make(map[uuid.UUID]string, len(wd.Entities))
	players := map[string]bool{}
	for i, ent := range wd.Entities {
		if ent.Name == "" {
			e("World entity #%d has no name", i+1)
			continue
		}
		if ent.Type == "" {
			e("World entity %q has no type", ent.Name)
		} else if !validation.ValidNamespacedID(ent.Type) {
			e("Invalid type %q of world entity %q: %s", ent.Type, ent.Name, validation.NamespacedIDErrMsg)
		}
		for _, tag := range ent.Tags {
			if !validation.ValidTag(tag) {
				e("Invalid tag %q of world entity %q: %s", tag, ent.Name, validation.TagErrMsg)
			}
		}
		if selector.NamespacedType(ent.Type) == selector.PlayerType {
			if !selector.ValidPlayerName(ent.Name) {
				e("Invalid player name %q: must be 1-16 letters, digits or underscores", ent.Name)
			}
			if players[ent.Name] {
				e("Duplicate player name %q", ent.Name)
			}
			players[ent.Name] = true
		}
		if ent.UUID != "" {
			id, err := uuid.Parse(ent.UUID)
			if err != nil {
				e("Invalid uuid %q of world entity %q: %v", ent.UUID, ent.Name, err)
				continue
			}
			if other, ok := ids[id]; ok {
				e("World entities %q and %q have the same uuid %s", other, ent.Name, id)
			}
			ids[id] = ent.Name
		}
	}
	if wd.Sender != "" && wd.Sender != ConsoleSender && !players[wd.Sender] {
		e("World sender %q must be %q or the name of a player in the world", wd.Sender, ConsoleSender)
	}
}
