package nagios

import (
	"strconv"
	"strings"

	"github.com/dxbtools/admintools/internal/validate"
)

const (
	minFixedMinutes = 5
	maxFixedMinutes = 998
)

// Duration is a floating downtime length.
type Duration struct {
	Hours   int
	Minutes int
}

// Seconds is the length of d in seconds.
func (d Duration) Seconds() int {
	return d.Hours*3600 + d.Minutes*60
}

// ParseFloating accepts HH:MM with hours up to 23 and minutes up to 59.
// A zero duration is rejected.
func ParseFloating(s string) validate.Result[Duration] {
	if n := len(s); n < 3 || n > 5 {
		return validate.Invalid[Duration]("the -d parameter has an invalid length (%d)", len(s))
	}
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return validate.Invalid[Duration]("the -d parameter is invalid (missing :)")
	}
	if !isDigits(hh) || !isDigits(mm) {
		return validate.Invalid[Duration]("the -d parameter is invalid (expected HH:MM)")
	}
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	if h > 23 || m > 59 || (h == 0 && m == 0) {
		return validate.Invalid[Duration]("-d %s is invalid", s)
	}
	return validate.Valid(Duration{Hours: h, Minutes: m})
}

// ValidateFixed accepts a fixed downtime length in minutes.
func ValidateFixed(minutes int) validate.Result[int] {
	if minutes < minFixedMinutes || minutes > maxFixedMinutes {
		return validate.Invalid[int]("-f %d is invalid (must be between %d and %d minutes)", minutes, minFixedMinutes, maxFixedMinutes)
	}
	return validate.Valid(minutes)
}

// CheckCaller admits members of the required group, except root.
func CheckCaller(uid int, groups []int, required string) validate.Result[struct{}] {
	member := false
	for _, g := range groups {
		if strconv.Itoa(g) == required {
			member = true
			break
		}
	}
	if !member {
		return validate.Invalid[struct{}]("this tool must be executed by a user who has access to Nagios (group %s)", required)
	}
	if uid == 0 {
		return validate.Invalid[struct{}]("this tool must be executed by an UNPRIVILEGED user ID")
	}
	return validate.Valid(struct{}{})
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
