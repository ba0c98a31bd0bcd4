package dell

import (
	"strconv"
	"strings"

	"github.com/dxbtools/admintools/internal/config"
	"github.com/dxbtools/admintools/internal/validate"
)

// ResolveSite accepts either a numeric site index or a site name and returns
// the matching entry of the site table.
func ResolveSite(arg string, cfg config.Dell) validate.Result[config.Site] {
	arg = strings.TrimSpace(arg)
	if isDigits(arg) {
		index, err := strconv.Atoi(arg)
		if err == nil && index >= cfg.MinIndex && index <= cfg.MaxIndex {
			if site, ok := cfg.SiteByIndex(index); ok {
				return validate.Valid(site)
			}
		}
		return invalidSite(cfg)
	}
	if n := len(arg); n >= cfg.MinNameLen && n <= cfg.MaxNameLen {
		if site, ok := cfg.SiteByName(strings.ToUpper(arg)); ok {
			site.Name = strings.ToUpper(site.Name)
			return validate.Valid(site)
		}
	}
	return invalidSite(cfg)
}

func invalidSite(cfg config.Dell) validate.Result[config.Site] {
	return validate.Invalid[config.Site](
		"the -s parameter is invalid (must be a positive integer between %d and %d, inclusive; or a string of %d to %d characters)",
		cfg.MinIndex, cfg.MaxIndex, cfg.MinNameLen, cfg.MaxNameLen,
	)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// TargetURL is the management controller address for site.
func TargetURL(site config.Site, cfg config.Dell) string {
	return "https://" + cfg.NetworkBase + strconv.Itoa(site.Index) + cfg.ControllerSuffix
}
