package cmdarg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.minekube.com/cmdarg/pkg/version"
)

func TestVersionCommand(t *testing.T) {
	app := App()
	assert.Equal(t, version.String(), app.Version, "App version should match version package")

	help, err := app.ToMarkdown()
	require.NoError(t, err, "Should be able to generate help text")
	assert.Contains(t, help, "version", "Help should mention version command")

	flags := make(map[string]bool)
	for _, flag := range app.Flags {
		for _, name := range flag.Names() {
			if flags[name] {
				t.Errorf("Flag conflict detected: %s", name)
			}
			flags[name] = true
		}
	}

	assert.True(t, flags["verbosity"], "Verbosity flag should exist")
	assert.True(t, flags["v"], "Verbose -v alias should exist")
	assert.True(t, flags["config"], "Config flag should exist")
	assert.True(t, flags["c"], "Config alias should exist")
	assert.True(t, flags["debug"], "Debug flag should exist")
	assert.True(t, flags["d"], "Debug alias should exist")
	assert.True(t, flags["version"], "Version flag should exist")
	assert.True(t, flags["V"], "Version -V alias should exist (Unix convention)")
}

func TestCustomVersionFlag(t *testing.T) {
	app := App()
	assert.NotEmpty(t, app.Version, "App should have version set")

	help, err := app.ToMarkdown()
	require.NoError(t, err)
	assert.Contains(t, help, "-V", "Help should show -V for version")
	assert.Contains(t, help, "--version", "Help should show --version flag")
	assert.Contains(t, help, "-v", "Help should show -v for verbosity")
}

func TestUserAgentIncludesVersion(t *testing.T) {
	userAgent := version.UserAgent()
	assert.Contains(t, userAgent, "Minekube-Cmdarg")
	assert.Contains(t, userAgent, version.String())
}
