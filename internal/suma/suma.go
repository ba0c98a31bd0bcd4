// Package suma reports on hosts registered with SUSE Manager servers.
package suma

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dxbtools/admintools/internal/config"
	"github.com/dxbtools/admintools/internal/format/table"
	"github.com/dxbtools/admintools/internal/hosts"
	"github.com/dxbtools/admintools/internal/logging"
	"github.com/dxbtools/admintools/internal/logging/events"
	"github.com/dxbtools/admintools/internal/theme"
	"github.com/dxbtools/admintools/internal/validate"
	"go.uber.org/zap"
)

const toolName = "suma-report"

// Description names the tool in banners and help.
const Description = "SUSE Manager Host Report Tool"

const (
	displayLayout  = "01-02-2006 15:04"
	indent         = "\t\t"
	suggestionSize = 3
)

var header = []string{"_Server_Name_", "__Last_Checkin__", "___Last_Boot____", "___System_Kernel______"}

// Options are the parsed command line choices.
type Options struct {
	// Host switches to check-in mode for a single short host name.
	Host      string
	NamesOnly bool
	Debug     bool
}

// Runner produces one report.
type Runner struct {
	Config config.SUMA
	Out    io.Writer
	Err    io.Writer

	Now func() time.Time
	// Location is the zone check-in timestamps are read in. Defaults to
	// time.Local.
	Location *time.Location
	// Dial opens the API for one server URL. Defaults to Dial over HTTP.
	Dial func(url string) (API, error)
}

// Run prints the report selected by opts. In check-in mode only an invalid
// host name is reported as an error.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	if opts.Host != "" && opts.NamesOnly {
		return &validate.Error{Reason: "the -c and -n options cannot be used together", Code: 1}
	}
	if opts.Host != "" {
		res := ValidateHost(opts.Host, r.Config)
		server, ok := res.Value()
		if !ok {
			events.Tool.Invalid(toolName, res.Reason())
			return res.Err()
		}
		r.checkin(server, opts)
		return nil
	}
	for _, server := range r.Config.Servers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.list(server, opts); err != nil {
			return err
		}
	}
	return nil
}

// checkin prints the seconds since the host last checked in, or 0.
func (r *Runner) checkin(server config.Server, opts Options) {
	seconds, err := r.secondsSinceCheckin(server, opts)
	if err != nil {
		logging.Error(err)
		r.debugf(opts, "%v\n", err)
		seconds = 0
	}
	fmt.Fprintln(r.Out, strconv.FormatInt(seconds, 10))
}

func (r *Runner) secondsSinceCheckin(server config.Server, opts Options) (int64, error) {
	var systems []System
	err := r.session(server, func(api API, key string) error {
		var err error
		systems, err = api.ListSystems(key)
		return err
	})
	if err != nil {
		return 0, err
	}
	names := make([]string, len(systems))
	for i, sys := range systems {
		names[i] = hosts.ShortName(sys.Name)
		if names[i] != opts.Host {
			continue
		}
		events.Tool.Found(toolName, opts.Host, true)
		return int64(r.now().Sub(r.local(sys.LastCheckin)) / time.Second), nil
	}
	events.Tool.Found(toolName, opts.Host, false)
	if near := hosts.Suggest(opts.Host, names, suggestionSize); len(near) > 0 {
		logging.Info("host not registered; similar names found", zap.String("host", opts.Host), zap.String("server", server.Name), zap.Strings("suggestions", near))
		r.debugf(opts, "%s not found on %s; did you mean %s?\n", opts.Host, server.Name, theme.Render(theme.Default().Suggestion, fmt.Sprint(near)))
	} else {
		logging.Info("host not registered", zap.String("host", opts.Host), zap.String("server", server.Name))
	}
	return 0, nil
}

// list prints either the full listing or the bare names for one server.
func (r *Runner) list(server config.Server, opts Options) error {
	styles := theme.Default()
	return r.session(server, func(api API, key string) error {
		systems, err := api.ListSystems(key)
		if err != nil {
			return err
		}
		if opts.NamesOnly {
			for _, sys := range systems {
				fmt.Fprintln(r.Out, hosts.ShortName(sys.Name))
			}
			return nil
		}

		rows := make([][]string, 0, len(systems)+1)
		rows = append(rows, header)
		for _, sys := range systems {
			kernel, err := api.RunningKernel(key, sys.ID)
			if err != nil {
				return err
			}
			r.debugf(opts, "%s: id %d checkin %s kernel %s\n", sys.Name, sys.ID, sys.LastCheckin.Format(time.RFC3339), kernel)
			checkin := r.local(sys.LastCheckin)
			checkinText := checkin.Format(displayLayout)
			if r.now().Sub(checkin) > r.Config.CheckinLimit {
				checkinText = theme.Render(styles.Warn, checkinText)
			}
			if kernel != r.Config.LatestKernel {
				kernel = theme.Render(styles.Warn, kernel)
			}
			rows = append(rows, []string{
				hosts.ShortName(sys.Name),
				checkinText,
				r.local(sys.LastBoot).Format(displayLayout),
				kernel,
			})
		}

		lines := table.Format(rows, nil)
		sep := theme.Render(styles.Separator, table.Rule(lines))
		lines[0] = theme.Render(styles.TableHead, lines[0])
		fmt.Fprintln(r.Out)
		for _, line := range table.Grouped(lines, sep) {
			fmt.Fprintln(r.Out, indent+line)
		}
		fmt.Fprintf(r.Out, "\n%s%s%d\n\n", indent, theme.Render(styles.Banner, "Server Count: "), len(systems))
		return nil
	})
}

// session logs in to server, runs fn and logs out exactly once.
func (r *Runner) session(server config.Server, fn func(api API, key string) error) error {
	url := "http://" + server.Address + r.Config.Path
	events.Tool.Request(toolName, "auth.login", url)
	dial := r.Dial
	if dial == nil {
		dial = func(url string) (API, error) { return Dial(url, nil) }
	}
	api, err := dial(url)
	if err != nil {
		return err
	}
	defer api.Close()

	key, err := api.Login(r.Config.Login, r.Config.Password)
	if err != nil {
		return fmt.Errorf("%s: %w", server.Name, err)
	}
	defer func() {
		if lerr := api.Logout(key); lerr != nil {
			logging.Error(fmt.Errorf("%s: %w", server.Name, lerr))
		}
	}()
	if err := fn(api, key); err != nil {
		return fmt.Errorf("%s: %w", server.Name, err)
	}
	return nil
}

// local reinterprets the wall clock of t in the configured zone. The server
// reports check-in times without an offset.
func (r *Runner) local(t time.Time) time.Time {
	loc := r.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Runner) debugf(opts Options, format string, args ...interface{}) {
	if !opts.Debug || r.Err == nil {
		return
	}
	fmt.Fprintf(r.Err, format, args...)
}
