package console

import (
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/require"
	c "go.minekube.com/common/minecraft/color"
	"go.minekube.com/common/minecraft/component"
)

func TestStripLegacy(t *testing.T) {
	require.Equal(t, "red bold plain", StripLegacy("§cred §lbold§r plain"))
	require.Equal(t, "no codes", StripLegacy("no codes"))
}

func TestAnsiFromLegacy(t *testing.T) {
	defer func(enable bool) { color.Enable = enable }(color.Enable)
	color.Enable = false
	require.Equal(t, "red", AnsiFromLegacy("§cred"))
}

func TestPlain(t *testing.T) {
	s, err := Plain(&component.Text{
		Content: "Unknown material ",
		S:       component.Style{Color: c.Red},
		Extra: []component.Component{
			&component.Text{Content: "lava", S: component.Style{Color: c.Yellow}},
			&component.Text{Content: ".", S: component.Style{Color: c.Red}},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Unknown material lava.", s)
}
