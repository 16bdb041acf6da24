package world

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"go.minekube.com/cmdarg/pkg/config"
	"go.minekube.com/cmdarg/pkg/util/permission"
)

// FromConfig builds a world from cfg and returns it with the configured
// sender. The console sender is granted every permission.
func FromConfig(cfg config.World) (*World, permission.Subject, error) {
	w := New()
	var sender permission.Subject
	for _, ec := range cfg.Entities {
		opts := []EntityOption{
			WithTags(ec.Tags...),
			WithPosition(Position{X: ec.Position.X, Y: ec.Position.Y, Z: ec.Position.Z}),
			WithPermissions(Granted(ec.Permissions...)),
		}
		if ec.UUID != "" {
			id, err := uuid.Parse(ec.UUID)
			if err != nil {
				return nil, nil, fmt.Errorf("entity %q: %w", ec.Name, err)
			}
			opts = append(opts, WithID(id))
		}
		e := NewEntity(ec.Name, ec.Type, opts...)
		w.Add(e)
		if sender == nil && e.IsPlayer() && cfg.Sender == e.name {
			sender = e
		}
	}
	if sender == nil {
		if cfg.Sender != "" && cfg.Sender != config.ConsoleSender {
			return nil, nil, fmt.Errorf("sender %q is not a player in the world", cfg.Sender)
		}
		sender = permission.All
	}
	return w, sender, nil
}

// Granted returns a permission.Func that grants the given permissions and
// leaves every other permission undefined. A permission ending in ".*"
// grants everything below it.
func Granted(perms ...string) permission.Func {
	if len(perms) == 0 {
		return nil
	}
	return func(perm string) permission.TriState {
		if slices.ContainsFunc(perms, func(p string) bool {
			return p == perm || p == "*" ||
				(strings.HasSuffix(p, ".*") && strings.HasPrefix(perm, strings.TrimSuffix(p, "*")))
		}) {
			return permission.True
		}
		return permission.Undefined
	}
}
