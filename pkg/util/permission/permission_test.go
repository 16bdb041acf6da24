package permission

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFuncSubject(t *testing.T) {
	s := Func(func(p string) TriState {
		switch p {
		case "cmd.give":
			return True
		case "cmd.kill":
			return False
		}
		return Undefined
	}).Subject()

	require.True(t, s.HasPermission("cmd.give"))
	require.False(t, s.HasPermission("cmd.kill"))
	require.False(t, s.HasPermission("cmd.other"))
	require.Equal(t, Undefined, s.PermissionValue("cmd.other"))

	require.Equal(t, Undefined, Func(nil).Subject().PermissionValue("x"))
	require.True(t, All.HasPermission("anything"))
}
