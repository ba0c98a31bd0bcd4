package suma

import (
	"github.com/dxbtools/admintools/internal/config"
	"github.com/dxbtools/admintools/internal/validate"
)

const hostNameLen = 13

// ValidateHost checks a short host name against the site naming scheme and
// returns the server responsible for it.
func ValidateHost(name string, cfg config.SUMA) validate.Result[config.Server] {
	if len(name) != hostNameLen {
		return validate.Invalid[config.Server]("%s is not a valid hostname (length)", name)
	}
	dc, ok := cfg.Prefixes[name[0:2]]
	if !ok {
		return validate.Invalid[config.Server]("%s is not a valid hostname (%s)", name, name[0:2])
	}
	if name[4:6] != "sn" {
		return validate.Invalid[config.Server]("%s is not a valid hostname (%s)", name, name[4:6])
	}
	if name[6:8] != "m0" {
		return validate.Invalid[config.Server]("%s is not a valid hostname (%s)", name, name[6:8])
	}
	server, ok := cfg.Server(dc)
	if !ok {
		return validate.Invalid[config.Server]("%s: no server configured for %s", name, dc)
	}
	return validate.Valid(server)
}
