// Package cmdarg is the command line interface of cmdarg.
package cmdarg

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go.minekube.com/cmdarg/pkg/config"
	"go.minekube.com/cmdarg/pkg/version"
)

// Execute runs App() with os.Args and exits on error.
func Execute() {
	if err := App().Run(os.Args); err != nil {
		if !isFailure(err) {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// App returns the cmdarg cli app.
func App() *cli.App {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}

	r := new(runtime)
	app := cli.NewApp()
	app.Name = "cmdarg"
	app.Usage = "Parse and complete typed Minecraft command arguments."
	app.Description = `Try the argument parsers of cmdarg against a simulated server.

The platform version, the entities that selectors resolve against
and the command sender are read from the config file:

	cmdarg config --write
	cmdarg types
	cmdarg parse material stone
	cmdarg parse multiple_entities "@e[type=cow,distance=..10]"
	cmdarg suggest single_entity "@e[ty"
	cmdarg exec give @a obsidian`
	app.Version = version.String()
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "config file (default: ./config.yml)",
			EnvVars: []string{"CMDARG_CONFIG"},
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "Enable debug mode and highest log verbosity",
			EnvVars: []string{"CMDARG_DEBUG"},
		},
		&cli.IntFlag{
			Name:    "verbosity",
			Aliases: []string{"v"},
			Usage:   "The higher the verbosity the more logs are shown",
			EnvVars: []string{"CMDARG_VERBOSITY"},
		},
		cli.VersionFlag,
	}
	app.Before = func(c *cli.Context) error {
		return r.init(c)
	}
	app.Commands = []*cli.Command{
		typesCommand(r),
		parseCommand(r),
		suggestCommand(r),
		execCommand(r),
		completeCommand(r),
		configCommand(),
	}
	return app
}

// init loads the config file and sets up logging.
func (r *runtime) init(c *cli.Context) error {
	r.v = viper.New()
	if c.IsSet("config") {
		r.v.SetConfigFile(c.String("config"))
	} else {
		r.v.SetConfigFile("config.yml")
	}
	r.v.SetEnvPrefix("CMDARG")
	r.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	r.v.AutomaticEnv()
	if c.Bool("debug") {
		r.v.Set("debug", true)
	}

	file, err := config.Load(r.v)
	if err != nil {
		return err
	}
	r.file = file

	verbosity := c.Int("verbosity")
	if file.Debug {
		verbosity = max(verbosity, 127)
	}
	zl, err := newZapLogger(file.Debug, verbosity)
	if err != nil {
		return fmt.Errorf("error initializing logger: %w", err)
	}
	r.log = zapr.NewLogger(zl)
	if c.Context == nil {
		c.Context = context.Background()
	}
	c.Context = logr.NewContext(c.Context, r.log)
	r.out = c.App.Writer
	return nil
}

func newZapLogger(dev bool, verbosity int) (*zap.Logger, error) {
	var cfg zap.Config
	if dev {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-min(verbosity, 127)))
	cfg.OutputPaths = []string{"stderr"}
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
