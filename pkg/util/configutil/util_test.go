package configutil

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestSection(t *testing.T) {
	v := viper.New()
	world := Section("world", v)
	world.SetDefault("sender", "Steve")
	Section("entities", world).SetDefault("limit", 3)

	require.Equal(t, "Steve", v.GetString("world.sender"))
	require.Equal(t, 3, v.GetInt("world.entities.limit"))
}

func TestSetDefaultFunc_Nil(t *testing.T) {
	var f SetDefaultFunc
	require.NotPanics(t, func() { f.SetDefault("k", "v") })
}
