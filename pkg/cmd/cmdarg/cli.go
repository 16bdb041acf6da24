package cmdarg

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/gookit/color"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"go.minekube.com/cmdarg/pkg/argument"
	"go.minekube.com/cmdarg/pkg/command"
	"go.minekube.com/cmdarg/pkg/command/suggest"
)

// errFailed is returned after a failure was already reported to the user.
var errFailed = errors.New("failed")

var errMissingType = errors.New(`missing argument type, see "cmdarg types"`)

func typesCommand(r *runtime) *cli.Command {
	return &cli.Command{
		Name:  "types",
		Usage: "List the argument types",
		Action: func(c *cli.Context) error {
			if err := r.setup(); err != nil {
				return err
			}
			color.Fprintf(r.out, "Argument types on <cyan>%s</>:\n", r.cfg.Capabilities)
			width := lo.Max(lo.Map(r.arguments, func(a argument.Untyped, _ int) int { return len(a.Name()) }))
			for _, a := range r.arguments {
				color.Fprintf(r.out, "  <green>%-*s</>  %s\n", width, a.Name(), a.Description())
			}
			return nil
		},
	}
}

func parseCommand(r *runtime) *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse tokens with an argument type",
		ArgsUsage: "<type> <token>...",
		Description: `Parse the tokens with the argument type and print the value
and the tokens left over. A single argument is split at spaces:

	cmdarg parse material "stone extra"
	cmdarg parse single_entity @p
	cmdarg parse --dump multiple_entities "@e[type=!player]"`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dump",
				Usage: "Print the parsed value with all its fields",
			},
		},
		Action: func(c *cli.Context) error {
			if err := r.setup(); err != nil {
				return err
			}
			if c.NArg() == 0 {
				return errMissingType
			}
			a, err := r.argument(c.Args().First())
			if err != nil {
				return err
			}
			in := tokenize(c.Args().Tail())

			v, err := a.ParseAny(r.argumentContext(c.Context), in)
			if err != nil {
				if sendErr := r.source().SendMessage(command.ErrorMessage(err)); sendErr != nil {
					return sendErr
				}
				r.log.V(1).Info("parse failed", "type", a.Name(), "error", err.Error())
				return errFailed
			}
			if c.Bool("dump") {
				_, _ = fmt.Fprint(r.out, spew.Sdump(v))
			} else {
				color.Fprintf(r.out, "<green>%s</>\n", v)
			}
			if !in.Empty() {
				color.Fprintf(r.out, "<gray>remaining:</> %s\n", strings.Join(in.Tokens(), " "))
			}
			return nil
		},
	}
}

func suggestCommand(r *runtime) *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "Suggest completions of an argument type",
		ArgsUsage: "<type> [partial]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Print the unfiltered suggestions of the argument type",
			},
		},
		Action: func(c *cli.Context) error {
			if err := r.setup(); err != nil {
				return err
			}
			if c.NArg() == 0 {
				return errMissingType
			}
			a, err := r.argument(c.Args().First())
			if err != nil {
				return err
			}
			partial := strings.Join(c.Args().Tail(), " ")

			candidates := lo.Uniq(slices.Collect(a.Suggestions(r.argumentContext(c.Context), partial)))
			if !c.Bool("all") {
				candidates = suggest.Rank(partial, candidates, r.cfg.Suggestions.MinScore)
			}
			for _, s := range candidates {
				_, _ = fmt.Fprintln(r.out, s)
			}
			return nil
		},
	}
}

func execCommand(r *runtime) *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "Execute a simulated server command as the configured sender",
		ArgsUsage: "<command line>",
		Description: `Execute a command line on the simulated server:

	cmdarg exec give @a[distance=..5] stone
	cmdarg exec gamemode creative Alex
	cmdarg exec near 2..10`,
		Action: func(c *cli.Context) error {
			if err := r.setup(); err != nil {
				return err
			}
			line := strings.Join(c.Args().Slice(), " ")
			if err := r.manager.Do(c.Context, r.source(), line); err != nil {
				if sendErr := r.source().SendMessage(command.ErrorMessage(err)); sendErr != nil {
					return sendErr
				}
				return errFailed
			}
			return nil
		},
	}
}

func completeCommand(r *runtime) *cli.Command {
	return &cli.Command{
		Name:      "complete",
		Usage:     "Complete a simulated server command line",
		ArgsUsage: "<command line>",
		Description: `Print the completions of the last word of a command line.
Quote the line to complete an empty word:

	cmdarg complete "give "
	cmdarg complete give @e[ty`,
		Action: func(c *cli.Context) error {
			if err := r.setup(); err != nil {
				return err
			}
			line := strings.Join(c.Args().Slice(), " ")
			suggestions, err := r.manager.OfferSuggestions(c.Context, r.source(), line)
			if err != nil {
				return err
			}
			for _, s := range suggestions {
				_, _ = fmt.Fprintln(r.out, s)
			}
			return nil
		},
	}
}

// tokenize splits a single argument at spaces and keeps several
// arguments as the tokens.
func tokenize(args []string) *argument.Input {
	if len(args) == 1 {
		return argument.Tokenize(args[0])
	}
	return argument.NewInput(args...)
}

// isFailure reports whether err was already reported.
func isFailure(err error) bool {
	return errors.Is(err, errFailed)
}
