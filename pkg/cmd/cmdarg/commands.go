package cmdarg

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"go.minekube.com/brigodier"
	"go.minekube.com/common/minecraft/color"
	. "go.minekube.com/common/minecraft/component"

	"go.minekube.com/cmdarg/pkg/argument"
	"go.minekube.com/cmdarg/pkg/argument/selector"
	"go.minekube.com/cmdarg/pkg/command"
	"go.minekube.com/cmdarg/pkg/world"
)

// GameMode is a player game mode.
type GameMode uint8

const (
	Survival GameMode = iota
	Creative
	Adventure
	Spectator
)

var gameModes = []GameMode{Survival, Creative, Adventure, Spectator}

func (m GameMode) String() string {
	switch m {
	case Survival:
		return "Survival"
	case Creative:
		return "Creative"
	case Adventure:
		return "Adventure"
	case Spectator:
		return "Spectator"
	}
	return fmt.Sprintf("GameMode(%d)", uint8(m))
}

const commandPermissionPrefix = "cmdarg.command."

func hasCmdPerm(name string) func(c *command.RequiresContext) bool {
	return func(c *command.RequiresContext) bool {
		return c.Source.HasPermission(commandPermissionPrefix + name)
	}
}

// registerCommands registers the simulated server commands
// exercising the argument types.
func registerCommands(m *command.Manager, w *world.World, args *arguments) {
	m.Register(brigodier.Literal("give").
		Requires(command.Requires(hasCmdPerm("give"))).
		Then(brigodier.Argument(args.multiple.Name(), command.Token).Suggests(command.Suggests(args.multiple)).
			Then(brigodier.Argument(args.material.Name(), command.Token).Suggests(command.Suggests(args.material)).
				Executes(command.Command(func(c *command.Context) error {
					targets, err := command.Value(c, args.multiple)
					if err != nil {
						return c.SendMessage(command.ErrorMessage(err))
					}
					item, err := command.Value(c, args.material)
					if err != nil {
						return c.SendMessage(command.ErrorMessage(err))
					}
					return c.SendMessage(&Text{
						Content: fmt.Sprintf("Gave 1 [%s] to %s", item, entityNames(targets.Entities)),
					})
				})))),
	)

	setGameMode := func(resolve func(*command.Context, *argument.Argument[selector.SingleEntity]) (selector.SingleEntity, error)) brigodier.Command {
		return command.Command(func(c *command.Context) error {
			mode, err := command.Value(c, args.gameMode)
			if err != nil {
				return c.SendMessage(command.ErrorMessage(err))
			}
			target, err := resolve(c, args.single)
			if err != nil {
				return c.SendMessage(command.ErrorMessage(err))
			}
			if target.Entity.Type() != selector.PlayerType {
				return c.SendMessage(&Text{S: Style{Color: color.Red},
					Content: fmt.Sprintf("%s is not a player.", target.Entity.Name())})
			}
			return c.SendMessage(&Text{
				Content: fmt.Sprintf("Set %s's game mode to %s", target.Entity.Name(), mode),
			})
		})
	}
	m.Register(brigodier.Literal("gamemode").
		Requires(command.Requires(hasCmdPerm("gamemode"))).
		Then(brigodier.Argument(args.gameMode.Name(), command.Token).Suggests(command.Suggests(args.gameMode)).
			Executes(setGameMode(command.Default[selector.SingleEntity])).
			Then(brigodier.Argument(args.single.Name(), command.Token).Suggests(command.Suggests(args.single)).
				Executes(setGameMode(command.Value[selector.SingleEntity])))),
	)

	m.Register(brigodier.Literal("near").
		Requires(command.Requires(hasCmdPerm("near"))).
		Then(brigodier.Argument(args.floatRange.Name(), command.Token).
			Executes(command.Command(func(c *command.Context) error {
				distance, err := command.Value(c, args.floatRange)
				if err != nil {
					return c.SendMessage(command.ErrorMessage(err))
				}
				var origin world.Position
				if self := world.EntityOf(c.Source); self != nil {
					origin = self.Position()
				}
				near := lo.FilterMap(w.Entities(), func(e *world.Entity, _ int) (selector.Entity, bool) {
					return e, distance.Contains(e.Position().Distance(origin))
				})
				if len(near) == 0 {
					return c.SendMessage(&Text{S: Style{Color: color.Yellow},
						Content: fmt.Sprintf("No entities within %s blocks.", distance)})
				}
				return c.SendMessage(&Text{
					Content: fmt.Sprintf("%d entities within %s blocks: %s", len(near), distance, entityNames(near)),
				})
			}))),
	)
}

func entityNames(entities []selector.Entity) string {
	return strings.Join(lo.Map(entities, func(e selector.Entity, _ int) string {
		return e.Name()
	}), ", ")
}
