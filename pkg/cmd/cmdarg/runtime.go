package cmdarg

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/go-logr/logr"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"go.minekube.com/common/minecraft/component"

	"go.minekube.com/cmdarg/internal/util/console"
	"go.minekube.com/cmdarg/pkg/argument"
	"go.minekube.com/cmdarg/pkg/argument/bounds"
	"go.minekube.com/cmdarg/pkg/argument/material"
	"go.minekube.com/cmdarg/pkg/argument/selector"
	"go.minekube.com/cmdarg/pkg/command"
	"go.minekube.com/cmdarg/pkg/config"
	"go.minekube.com/cmdarg/pkg/util/permission"
	"go.minekube.com/cmdarg/pkg/world"
)

// runtime is the state shared by the commands of an App.
type runtime struct {
	v    *viper.Viper
	file *config.File
	log  logr.Logger
	out  io.Writer

	// set by setup
	cfg       *config.Config
	world     *world.World
	sender    permission.Subject
	arguments []argument.Untyped // sorted by name
	manager   *command.Manager
}

// setup validates the loaded config and builds the simulated server.
func (r *runtime) setup() error {
	if r.cfg != nil {
		return nil
	}
	cfg, warns, err := config.NewValid(r.file)
	for _, w := range warns {
		r.log.Info("config validation warning", "warn", w.Error())
	}
	if err != nil {
		return fmt.Errorf("error validating config: %w", err)
	}

	w, sender, err := world.FromConfig(cfg.World)
	if err != nil {
		return err
	}
	registry := material.Default()
	if cfg.Materials.File != "" {
		if registry, err = material.LoadFile(cfg.Materials.File); err != nil {
			return err
		}
	}
	args, err := newArguments(cfg, w, registry)
	if err != nil {
		return err
	}

	r.cfg, r.world, r.sender, r.arguments = cfg, w, sender, args.list()
	r.manager = command.NewManager(cfg.Capabilities, cfg.Suggestions.MinScore)
	registerCommands(r.manager, w, args)
	r.log.V(1).Info("loaded simulated server",
		"platform", cfg.Capabilities.String(),
		"entities", len(w.Entities()),
		"sender", senderName(sender),
		"materials", len(registry.Entries()))
	return nil
}

// argument returns the argument type with name.
func (r *runtime) argument(name string) (argument.Untyped, error) {
	a, ok := lo.Find(r.arguments, func(a argument.Untyped) bool {
		return strings.EqualFold(a.Name(), name)
	})
	if !ok {
		return nil, fmt.Errorf("unknown argument type %q, see %q for the available types", name, "cmdarg types")
	}
	return a, nil
}

// argumentContext returns the context arguments are parsed with.
func (r *runtime) argumentContext(ctx context.Context) *argument.Context {
	return argument.NewContext(ctx, r.sender, r.cfg.Capabilities)
}

// source returns the command source writing to out.
func (r *runtime) source() *consoleSource {
	return &consoleSource{Subject: r.sender, out: r.out}
}

func senderName(s permission.Subject) string {
	if e := world.EntityOf(s); e != nil {
		return e.Name()
	}
	return config.ConsoleSender
}

// arguments are the argument types of the CLI.
type arguments struct {
	material   *argument.Argument[material.Material]
	gameMode   *argument.Argument[GameMode]
	floatRange *argument.Argument[bounds.Floats]
	intRange   *argument.Argument[bounds.Ints]
	single     *argument.Argument[selector.SingleEntity]
	multiple   *argument.Argument[selector.MultipleEntities]
}

func newArguments(cfg *config.Config, w *world.World, registry *material.Registry) (*arguments, error) {
	blocks, err := material.NewParser(registry, cfg.Capabilities.Protocol)
	if err != nil {
		return nil, err
	}
	modes, err := argument.NewEnum("gamemode", gameModes, GameMode.String)
	if err != nil {
		return nil, err
	}
	selectorOpts := []selector.Option{selector.WithCacheTTL(cfg.Selector.CacheTTL)}

	return &arguments{
		material: argument.Must(argument.New(material.ID, argument.Parser[material.Material](blocks),
			argument.WithDescription[material.Material](
				fmt.Sprintf("A material that exists in %s.", cfg.Capabilities.Version)))),
		gameMode: argument.Must(argument.New("gamemode", argument.Parser[GameMode](modes),
			argument.WithDescription[GameMode]("A game mode."))),
		floatRange: argument.Must(argument.New("float_range", argument.Parser[bounds.Floats](bounds.NewFloatRange("")),
			argument.WithDescription[bounds.Floats]("A range of decimals like 1.5..3, ..5 or 2."))),
		intRange: argument.Must(argument.New("int_range", argument.Parser[bounds.Ints](bounds.NewIntRange("")),
			argument.WithDescription[bounds.Ints]("A range of integers like 1..5, 3.. or 7."))),
		single: argument.Must(argument.New("single_entity",
			argument.Parser[selector.SingleEntity](selector.NewSingleEntity(w, selectorOpts...)),
			argument.WithDescription[selector.SingleEntity]("A player name, uuid or selector matching exactly one entity."),
			argument.WithDefault[selector.SingleEntity]("@s"))),
		multiple: argument.Must(argument.New("multiple_entities",
			argument.Parser[selector.MultipleEntities](selector.NewMultipleEntities(w, selectorOpts...)),
			argument.WithDescription[selector.MultipleEntities]("A player name, uuid or selector matching any entities."))),
	}, nil
}

// list returns the arguments sorted by name.
func (a *arguments) list() []argument.Untyped {
	l := []argument.Untyped{a.material, a.gameMode, a.floatRange, a.intRange, a.single, a.multiple}
	slices.SortFunc(l, func(x, y argument.Untyped) int { return strings.Compare(x.Name(), y.Name()) })
	return l
}

// consoleSource is the command.Source of the terminal.
type consoleSource struct {
	permission.Subject
	out io.Writer
}

var _ command.Source = (*consoleSource)(nil)

func (s *consoleSource) SendMessage(msg component.Component) error {
	text, err := console.Ansi(msg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.out, text)
	return err
}

// WorldEntity makes selectors like @s resolve to the configured sender.
func (s *consoleSource) WorldEntity() *world.Entity {
	return world.EntityOf(s.Subject)
}
