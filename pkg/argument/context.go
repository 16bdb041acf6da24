package argument

import (
	"context"

	"go.minekube.com/cmdarg/pkg/platform"
	"go.minekube.com/cmdarg/pkg/util/permission"
)

// Context is passed to every parse and suggestion call.
//
// Parsers treat it as opaque apart from the platform capabilities
// (version gated grammars) and the sender (delegated resolvers).
// The embedded context.Context carries the logger.
type Context struct {
	context.Context
	Sender   permission.Subject
	Platform platform.Capabilities
}

// NewContext returns a Context for sender on a platform with caps.
// A nil ctx defaults to context.Background.
func NewContext(ctx context.Context, sender permission.Subject, caps platform.Capabilities) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{Context: ctx, Sender: sender, Platform: caps}
}
