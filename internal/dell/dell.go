// Package dell queries Dell PowerVault storage array management controllers
// over their REST interface.
package dell

import (
	"context"
	"fmt"
	"io"

	"github.com/dxbtools/admintools/internal/config"
	"github.com/dxbtools/admintools/internal/credentials"
	"github.com/dxbtools/admintools/internal/logging"
	"github.com/dxbtools/admintools/internal/logging/events"
	"github.com/dxbtools/admintools/internal/theme"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// Description names the tool in banners and help.
const Description = "Dell PowerVault Storage Array Query Tool"

// Options are the parsed command line choices.
type Options struct {
	Site    string
	UseFile bool
	JSON    bool
	Quiet   bool
	// Report limits the query to one entry of Reports; empty runs them all.
	Report string
}

// Passwords supplies the array password.
type Passwords interface {
	Password(ctx context.Context, req credentials.Request) (string, error)
}

// Runner executes a query.
type Runner struct {
	Config    config.Dell
	Passwords Passwords
	HTTP      *retryablehttp.Client
	Out       io.Writer
	// BaseURL overrides the controller address derived from the site.
	BaseURL string
}

// Run resolves the site, authenticates and prints each requested report.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	res := ResolveSite(opts.Site, r.Config)
	site, ok := res.Value()
	if !ok {
		events.Tool.Invalid(toolName, res.Reason())
		return res.Err()
	}
	reports := Reports
	if opts.Report != "" {
		reports = []string{opts.Report}
	}

	password, err := r.Passwords.Password(ctx, credentials.Request{
		Tool:         "dell",
		UseFile:      opts.UseFile,
		File:         r.Config.PasswordFile,
		EmptyIsFatal: true,
		Label:        fmt.Sprintf("\n\tDell PowerVault in %s Storage Array Password: ", site.Name),
		Quiet:        opts.Quiet,
	})
	if err != nil {
		return err
	}

	styles := theme.Default()
	if !opts.Quiet {
		fmt.Fprintln(r.Out)
		fmt.Fprintln(r.Out, theme.Render(styles.Banner, toolName+" - "+Description))
	}

	target := r.BaseURL
	if target == "" {
		target = TargetURL(site, r.Config)
	}
	if !opts.Quiet {
		fmt.Fprintf(r.Out, "\n\tQuerying %s Storage Array at %s\n", theme.Render(styles.Banner, site.Name), theme.Render(styles.Banner, target))
	}
	logging.Info("querying storage array", zap.String("site", site.Name), zap.String("target", target), zap.Strings("reports", reports))

	client := NewClient(target, r.HTTP)
	if err := client.Login(ctx, r.Config.DeviceUser, password); err != nil {
		return err
	}
	for _, report := range reports {
		if !opts.Quiet {
			fmt.Fprintf(r.Out, "\n\t\tQuerying %s\n", theme.Render(styles.Banner, report))
		}
		body, err := client.Show(ctx, report, opts.JSON)
		if err != nil {
			return fmt.Errorf("show %s: %w", report, err)
		}
		if opts.JSON {
			fmt.Fprintln(r.Out, string(body))
		} else {
			fmt.Fprintf(r.Out, "\n%s\n\n", body)
		}
	}
	return nil
}
