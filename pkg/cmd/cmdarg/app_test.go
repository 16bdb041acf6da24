package cmdarg

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"go.minekube.com/cmdarg/pkg/config"
)

func TestMain(m *testing.M) {
	color.Disable()
	os.Exit(m.Run())
}

// run runs the app with the default config and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yml")
	b, err := yaml.Marshal(config.Default)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(configPath, b, 0644))

	out := new(bytes.Buffer)
	app := App()
	app.Writer = out
	app.ErrWriter = out
	err = app.Run(append([]string{"cmdarg", "--config", configPath}, args...))
	return out.String(), err
}

func TestTypes(t *testing.T) {
	out, err := run(t, "types")
	require.NoError(t, err)
	for _, name := range []string{"float_range", "gamemode", "int_range", "material", "multiple_entities", "single_entity"} {
		assert.Contains(t, out, name)
	}
	assert.Less(t, strings.Index(out, "float_range"), strings.Index(out, "single_entity"), "sorted by name")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
		fail bool
	}{
		{name: "material", args: []string{"material", "stone extra"}, want: "STONE\nremaining: extra\n"},
		{name: "tokens", args: []string{"material", "Dirt", "a", "b"}, want: "DIRT\nremaining: a b\n"},
		{name: "unknown material", args: []string{"material", "lava_cake"}, want: "Unknown material lava_cake.\n", fail: true},
		{name: "missing input", args: []string{"material"}, want: "Missing argument for material.\n", fail: true},
		{name: "gamemode", args: []string{"gamemode", "CREATIVE"}, want: "Creative\n"},
		{name: "range", args: []string{"int_range", "1..5"}, want: "1..5\n"},
		{name: "malformed range", args: []string{"float_range", "5..1"}, fail: true},
		{name: "ambiguous", args: []string{"single_entity", "@a"},
			want: "Only one entity is allowed, but @a allows more than one.\n", fail: true},
		{name: "no entity", args: []string{"single_entity", "Herobrine"},
			want: "No entity was found for Herobrine.\n", fail: true},
		{name: "default self", args: []string{"single_entity"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"parse"}, tt.args...)...)
			if tt.fail {
				require.ErrorIs(t, err, errFailed)
			} else {
				require.NoError(t, err)
			}
			if tt.want != "" {
				assert.Equal(t, tt.want, out)
			}
		})
	}
}

func TestParse_Entities(t *testing.T) {
	out, err := run(t, "parse", "multiple_entities", "@e[type=cow]")
	require.NoError(t, err)
	assert.Contains(t, out, "Bessie")
	assert.NotContains(t, out, "Steve")

	out, err = run(t, "parse", "single_entity", "@s")
	require.NoError(t, err)
	assert.Contains(t, out, "Steve")

	out, err = run(t, "parse", "--dump", "int_range", "3..")
	require.NoError(t, err)
	assert.Contains(t, out, "Min")
}

func TestParse_Errors(t *testing.T) {
	_, err := run(t, "parse")
	require.ErrorIs(t, err, errMissingType)

	_, err = run(t, "parse", "color", "red")
	require.ErrorContains(t, err, "unknown argument type")
}

func TestParse_UnsupportedPlatform(t *testing.T) {
	t.Setenv("CMDARG_PLATFORM_VERSION", "1.12.2")
	out, err := run(t, "parse", "single_entity", "Steve")
	require.ErrorIs(t, err, errFailed)
	assert.Equal(t, "Entity selectors are not supported on this server version.\n", out)

	out, err = run(t, "suggest", "single_entity")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSuggest(t *testing.T) {
	out, err := run(t, "suggest", "material", "sto")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "stone", lines[0])
	assert.NotContains(t, lines, "air")

	out, err = run(t, "suggest", "--all", "material", "sto")
	require.NoError(t, err)
	assert.Contains(t, strings.Split(out, "\n"), "air")

	out, err = run(t, "suggest", "single_entity")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{"@p", "@a", "@r", "@e", "@s", "Steve", "Alex"}, lines)
}

func TestExec(t *testing.T) {
	tests := []struct {
		line string
		want string
		fail bool
	}{
		{line: "give @a stone", want: "Gave 1 [STONE] to Steve, Alex\n"},
		{line: "give @e[tag=farm] lava_cake", want: "Unknown material lava_cake.\n"},
		{line: "gamemode creative", want: "Set Steve's game mode to Creative\n"},
		{line: "gamemode spectator Alex", want: "Set Alex's game mode to Spectator\n"},
		{line: "gamemode adventure @e[type=cow,limit=1]", want: "Bessie is not a player.\n"},
		{line: "gamemode hardcore", want: "Unknown gamemode hardcore.\n"},
		{line: "near ..5", want: "2 entities within ..5 blocks: Steve, Bessie\n"},
		{line: "near 100..", want: "No entities within 100.. blocks.\n"},
		{line: "teleport Alex", fail: true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			out, err := run(t, "exec", tt.line)
			if tt.fail {
				require.ErrorIs(t, err, errFailed)
				require.NotEmpty(t, out)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestComplete(t *testing.T) {
	out, err := run(t, "complete", "give ")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines, "@a")
	assert.Contains(t, lines, "Alex")

	out, err = run(t, "complete", "gamemode cre")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "creative", lines[0])
	assert.NotContains(t, lines, "survival")
}

func TestConfigCommand(t *testing.T) {
	out, err := run(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "cacheTTL: 5m0s")
	assert.Contains(t, out, "Bessie")

	out, err = run(t, "config", "--type", "minimal")
	require.NoError(t, err)
	assert.Contains(t, out, "sender: console")
	assert.NotContains(t, out, "Bessie")

	_, err = run(t, "config", "-t", "huge")
	require.ErrorContains(t, err, "unknown config type")
}
