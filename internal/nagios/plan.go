package nagios

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Spec is the requested downtime: fixed for a number of minutes, or
// floating for a duration.
type Spec struct {
	Fixed        bool
	FixedMinutes int
	Duration     Duration
}

// Plan is a downtime ready to submit.
type Plan struct {
	Fixed   bool
	Hours   int
	Minutes int
	Start   time.Time
	End     time.Time
}

// Duration fields sent with a fixed downtime.
const (
	fixedHours   = 2
	fixedMinutes = 0
)

// NewPlan schedules spec to start one minute after now. Times are UTC with
// seconds dropped.
func NewPlan(now time.Time, spec Spec) Plan {
	start := now.UTC().Add(time.Minute).Truncate(time.Minute)
	if spec.Fixed {
		return Plan{
			Fixed:   true,
			Hours:   fixedHours,
			Minutes: fixedMinutes,
			Start:   start,
			End:     start.Add(time.Duration(spec.FixedMinutes) * time.Minute),
		}
	}
	return Plan{
		Hours:   spec.Duration.Hours,
		Minutes: spec.Duration.Minutes,
		Start:   start,
		End:     start.Add(time.Duration(spec.Duration.Seconds()) * time.Second),
	}
}

// FormatTime renders t the way the CGI parses it: M-D-YYYY H:M:00 without
// zero padding.
func FormatTime(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d %d:%d:00", int(t.Month()), t.Day(), t.Year(), t.Hour(), t.Minute())
}

// Kind is "Fixed" or "Floating".
func (p Plan) Kind() string {
	if p.Fixed {
		return "Fixed"
	}
	return "Floating"
}

// Form builds the schedule-host-downtime command submission.
func (p Plan) Form(host, author, comment string) url.Values {
	fixed := "0"
	if p.Fixed {
		fixed = "1"
	}
	return url.Values{
		"cmd_mod":      {"2"},
		"cmd_typ":      {"55"},
		"trigger":      {"0"},
		"childoptions": {"0"},
		"btnSubmit":    {"Commit"},
		"fixed":        {fixed},
		"hours":        {strconv.Itoa(p.Hours)},
		"minutes":      {strconv.Itoa(p.Minutes)},
		"start_time":   {FormatTime(p.Start)},
		"end_time":     {FormatTime(p.End)},
		"com_data":     {"Auto-scheduled for " + comment},
		"host":         {host},
		"com_author":   {author},
	}
}

// MonitoredHost maps a host's own name to the name it is monitored under:
// a 'd' in the seventh position becomes 'm'.
func MonitoredHost(hostname string) string {
	if len(hostname) > 6 && hostname[6] == 'd' {
		return hostname[:6] + "m" + hostname[7:]
	}
	return hostname
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
