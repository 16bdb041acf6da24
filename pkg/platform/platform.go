// Package platform resolves what the host game platform is capable of.
//
// Capabilities are resolved once at startup from the platform's protocol
// version and then branched on per parse call.
package platform

import (
	"fmt"

	"go.minekube.com/cmdarg/pkg/edition/java/proto/version"
	"go.minekube.com/cmdarg/pkg/gate/proto"
)

// SelectorSupport is the first version with a native entity selector grammar.
var SelectorSupport = version.Minecraft_1_13

// Capabilities of a host platform.
type Capabilities struct {
	Protocol proto.Protocol
	Version  *proto.Version
	// Selectors is true when the platform can parse and resolve entity selectors.
	Selectors bool
}

// Resolve returns the Capabilities of a platform running protocol p.
func Resolve(p proto.Protocol) Capabilities {
	return Capabilities{
		Protocol:  p,
		Version:   version.Protocol(p).Version(),
		Selectors: p.GreaterEqual(SelectorSupport),
	}
}

// ResolveName returns the Capabilities of a platform by its version name, e.g. "1.20.4".
func ResolveName(name string) (Capabilities, error) {
	v := version.FromName(name)
	if v == version.Unknown {
		return Capabilities{}, fmt.Errorf("unknown platform version %q (supported %s)",
			name, version.SupportedVersionsString)
	}
	return Resolve(v.Protocol), nil
}

// Latest returns the Capabilities of the newest known version.
func Latest() Capabilities {
	return Resolve(version.MaximumVersion.Protocol)
}

func (c Capabilities) String() string {
	return fmt.Sprintf("%s selectors=%t", version.Protocol(c.Protocol), c.Selectors)
}
