package cli

import (
	"strings"

	"github.com/dxbtools/admintools/internal/dell"
	"github.com/dxbtools/admintools/internal/httpclient"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// reportFlags pairs each single report switch with the report it selects.
var reportFlags = []struct {
	name, short, report string
}{
	{"controllers", "c", "controllers"},
	{"enclosures", "e", "enclosures"},
	{"fan-modules", "f", "fan-modules"},
	{"power-supplies", "p", "power-supplies"},
	{"sensor-status", "t", "sensor-status"},
}

func addReportFlags(fs *pflag.FlagSet) {
	for _, f := range reportFlags {
		fs.BoolP(f.name, f.short, false, "only show "+f.report)
	}
}

// selectedReport returns the one report chosen on the command line, or "".
func selectedReport(fs *pflag.FlagSet) (string, error) {
	var chosen []string
	report := ""
	for _, f := range reportFlags {
		if on, _ := fs.GetBool(f.name); on {
			chosen = append(chosen, "-"+f.short)
			report = f.report
		}
	}
	if len(chosen) > 1 {
		return "", usageError("%s cannot be used together", strings.Join(chosen, ", "))
	}
	return report, nil
}

func newDellCmd(e *env) *cobra.Command {
	var opts dell.Options
	cmd := &cobra.Command{
		Use:   "dell-query -s SITE",
		Short: dell.Description,
		Long: dell.Description + `

Logs in to the management controller of the storage array at SITE and prints
its controllers, enclosures, fan modules, power supplies and sensor status.
SITE is either the site index or its name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Site == "" {
				return usageError("the -s parameter is required")
			}
			report, err := selectedReport(cmd.Flags())
			if err != nil {
				return err
			}
			opts.Report = report

			passwords, err := e.passwords()
			if err != nil {
				return err
			}
			r := &dell.Runner{
				Config:    e.cfg.Dell,
				Passwords: passwords,
				HTTP:      httpclient.New(httpclient.Options{Timeout: e.cfg.Dell.Timeout, Insecure: true, RedactPath: dell.RedactPath}),
				Out:       e.opts.Stdout,
			}
			return r.Run(cmd.Context(), opts)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&opts.Site, "site", "s", "", "storage array site index or name")
	fs.BoolVarP(&opts.UseFile, "password-file", "a", false, "read the password from the password file in your home directory")
	fs.BoolVarP(&opts.JSON, "json", "j", false, "print the raw JSON responses")
	fs.BoolVarP(&opts.Quiet, "quiet", "q", false, "only print the responses")
	addReportFlags(fs)
	return cmd
}
