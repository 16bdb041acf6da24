// The permission utility package defines primitives that allow to
// check a command sender for a permission.
//
// Argument parsers only pass the sender through. Command trees use it in
// requirement checks before an argument is ever parsed.
package permission

// Func is the permission function to obtain the TriState for a permission.
type Func func(permission string) TriState

// Subject is a permission holder like a player or the console.
type Subject interface {
	HasPermission(permission string) bool // Equal to PermissionValue(...).Bool()
	PermissionValue(permission string) TriState
}

// TriState can be in three states (True, False, Undefined), used for a setting.
type TriState uint8

const (
	Undefined TriState = iota // A permission is undefined.
	True                      // A permission is allowed.
	False                     // A permission is explicitly denied.
)

// Bool returns the bool value of a TriState where
// Undefined is converted to false.
func (t TriState) Bool() bool {
	return t == True
}

func (t TriState) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	}
	return "undefined"
}

// Subject returns a Subject backed by f.
// A nil Func leaves every permission Undefined.
func (f Func) Subject() Subject { return funcSubject(f) }

type funcSubject Func

func (s funcSubject) PermissionValue(permission string) TriState {
	if s == nil {
		return Undefined
	}
	return s(permission)
}

func (s funcSubject) HasPermission(permission string) bool {
	return s.PermissionValue(permission).Bool()
}

// All is a Subject that is granted every permission, like the console.
var All Subject = Func(func(string) TriState { return True }).Subject()
