// Package nagios schedules host downtime through the Nagios command CGI.
package nagios

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/user"
	"strings"
	"time"

	"github.com/dxbtools/admintools/internal/config"
	"github.com/dxbtools/admintools/internal/credentials"
	"github.com/dxbtools/admintools/internal/httpclient"
	"github.com/dxbtools/admintools/internal/logging"
	"github.com/dxbtools/admintools/internal/logging/events"
	"github.com/dxbtools/admintools/internal/theme"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// ErrRejected is returned when the CGI answers with a non-2xx status.
var ErrRejected = errors.New("nagios: downtime request rejected")

const toolName = "nagios-downtime"

// Description names the tool in banners and help.
const Description = "Host-based Nagios Downtime Scheduling Tool"

// Options are the parsed command line choices. Floating selects Duration,
// even when it is empty; otherwise FixedMinutes applies.
type Options struct {
	Comment      string
	Floating     bool
	Duration     string
	FixedMinutes int
	UseFile      bool
	Verbose      bool
}

// Passwords supplies the web interface password.
type Passwords interface {
	Password(ctx context.Context, req credentials.Request) (string, error)
}

// Caller describes the invoking user.
type Caller struct {
	UID    int
	Groups []int
	Name   string
}

// CurrentCaller reads the process credentials.
func CurrentCaller() (Caller, error) {
	groups, err := os.Getgroups()
	if err != nil {
		return Caller{}, fmt.Errorf("read groups: %w", err)
	}
	u, err := user.Current()
	if err != nil {
		return Caller{}, fmt.Errorf("look up current user: %w", err)
	}
	return Caller{UID: os.Geteuid(), Groups: groups, Name: u.Username}, nil
}

// Runner submits one downtime request.
type Runner struct {
	Config    config.Nagios
	Passwords Passwords
	HTTP      *retryablehttp.Client
	Out       io.Writer

	Now      func() time.Time
	Hostname func() (string, error)
	Caller   func() (Caller, error)
}

// Run validates the request, prompts for credentials and posts the command.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	logging.Info(toolName + " Started execution")

	caller, err := r.caller()
	if err != nil {
		return err
	}
	if res := CheckCaller(caller.UID, caller.Groups, r.Config.RequiredGroup); !res.OK() {
		events.Tool.Invalid(toolName, res.Reason())
		return res.Err()
	}

	spec, err := buildSpec(opts)
	if err != nil {
		return err
	}

	password, err := r.Passwords.Password(ctx, credentials.Request{
		Tool:    "nagios",
		UseFile: opts.UseFile,
		File:    r.Config.PasswordFile,
		Label:   "\n\tNagios Web UI Password: ",
		Quiet:   !opts.Verbose,
	})
	if err != nil {
		return err
	}

	hostname, err := r.hostname()
	if err != nil {
		return fmt.Errorf("read hostname: %w", err)
	}
	host := MonitoredHost(hostname)
	plan := NewPlan(r.now(), spec)

	if opts.Verbose {
		r.describe(host, plan)
	}

	logging.Info("Preparing command", zap.String("host", host), zap.String("type", plan.Kind()),
		zap.String("start", FormatTime(plan.Start)), zap.String("end", FormatTime(plan.End)))
	form := plan.Form(host, caller.Name, opts.Comment)
	if err := r.submit(ctx, caller.Name, password, form.Encode()); err != nil {
		return err
	}
	logging.Info(toolName + " Execution completed")
	return nil
}

func buildSpec(opts Options) (Spec, error) {
	if opts.Floating {
		res := ParseFloating(opts.Duration)
		d, ok := res.Value()
		if !ok {
			events.Tool.Invalid(toolName, res.Reason())
			return Spec{}, res.Err()
		}
		return Spec{Duration: d}, nil
	}
	res := ValidateFixed(opts.FixedMinutes)
	minutes, ok := res.Value()
	if !ok {
		events.Tool.Invalid(toolName, res.Reason())
		return Spec{}, res.Err()
	}
	return Spec{Fixed: true, FixedMinutes: minutes}, nil
}

func (r *Runner) describe(host string, plan Plan) {
	styles := theme.Default()
	fmt.Fprintln(r.Out)
	fmt.Fprintln(r.Out, theme.Render(styles.Banner, toolName+" - "+Description))
	fmt.Fprintf(r.Out, "\n\tScheduling %s downtime for %s\n\n",
		theme.Render(styles.Banner, plan.Kind()), theme.Render(styles.Banner, host))
	if plan.Fixed {
		fmt.Fprintf(r.Out, "\t\t%s%s\n", theme.Render(styles.Banner, "Start Time: "), FormatTime(plan.Start))
		fmt.Fprintf(r.Out, "\t\t%s%s\n", theme.Render(styles.Banner, "  End Time: "), FormatTime(plan.End))
	} else {
		fmt.Fprintf(r.Out, "\t\t%s%d %s %d %s\n", theme.Render(styles.Banner, "  Duration: "),
			plan.Hours, plural(plan.Hours, "hour", "hours"),
			plan.Minutes, plural(plan.Minutes, "minute", "minutes"))
	}
	fmt.Fprintln(r.Out)
}

func (r *Runner) submit(ctx context.Context, username, password, body string) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, r.Config.URL, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(username, password)

	events.Tool.Request(toolName, http.MethodPost, r.Config.URL)
	resp, err := r.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRejected, err)
	}
	defer httpclient.EmptyAndCloseBody(resp)
	events.Tool.Response(toolName, r.Config.URL, resp.StatusCode)
	if err := httpclient.CheckStatus(resp); err != nil {
		logging.L().Error("downtime request rejected", zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: %v", ErrRejected, err)
	}
	return nil
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Runner) hostname() (string, error) {
	if r.Hostname != nil {
		return r.Hostname()
	}
	return os.Hostname()
}

func (r *Runner) caller() (Caller, error) {
	if r.Caller != nil {
		return r.Caller()
	}
	return CurrentCaller()
}
