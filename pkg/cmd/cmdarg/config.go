package cmdarg

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"go.minekube.com/cmdarg/pkg/config"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Output default configuration file",
		Description: `Output the default configuration file to stdout or a file.
You can redirect to a file or use the --write flag:

	cmdarg config > config.yml
	cmdarg config --write              # Writes to config.yml

Available config types:
  - full (default): Configuration with an example world
  - minimal: Empty world with the console as sender`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Config type: full or minimal",
				Value:   "full",
			},
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write config to config.yml instead of stdout",
			},
		},
		Action: func(c *cli.Context) error {
			f := config.Default
			switch configType := c.String("type"); configType {
			case "full":
			case "minimal":
				f.World = config.World{Sender: config.ConsoleSender}
			default:
				return fmt.Errorf("unknown config type: %s (valid types: full, minimal)", configType)
			}
			configBytes, err := yaml.Marshal(f)
			if err != nil {
				return fmt.Errorf("error encoding config: %w", err)
			}

			if c.Bool("write") {
				outputFile := "config.yml"
				if err := os.WriteFile(outputFile, configBytes, 0644); err != nil {
					return fmt.Errorf("error writing config to %q: %w", outputFile, err)
				}
				_, _ = fmt.Fprintf(c.App.Writer, "Configuration written to %s\n", outputFile)
				return nil
			}

			if _, err := c.App.Writer.Write(configBytes); err != nil {
				return fmt.Errorf("error writing config: %w", err)
			}
			return nil
		},
	}
}
