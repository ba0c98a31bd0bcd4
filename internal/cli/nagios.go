package cli

import (
	"github.com/dxbtools/admintools/internal/httpclient"
	"github.com/dxbtools/admintools/internal/nagios"
	"github.com/spf13/cobra"
)

func newNagiosCmd(e *env) *cobra.Command {
	var opts nagios.Options
	cmd := &cobra.Command{
		Use:   "nagios-downtime -c COMMENT (-d HH:MM | -f MINUTES)",
		Short: nagios.Description,
		Long: nagios.Description + `

Schedules downtime for this host in Nagios. -d schedules flexible downtime
that starts when the host next goes down and lasts HH:MM; -f schedules
fixed downtime starting in one minute and lasting MINUTES.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			if !fs.Changed("comment") {
				return usageError("the -c parameter is required")
			}
			switch {
			case fs.Changed("duration") && fs.Changed("fixed"):
				return usageError("-d and -f cannot be used together")
			case !fs.Changed("duration") && !fs.Changed("fixed"):
				return usageError("one of -d or -f is required")
			}
			opts.Floating = fs.Changed("duration")

			// Every run is recorded in syslog under the tool's own tag.
			e.configureLogging(true, e.cfg.Nagios.SyslogTag)

			passwords, err := e.passwords()
			if err != nil {
				return err
			}
			r := &nagios.Runner{
				Config:    e.cfg.Nagios,
				Passwords: passwords,
				HTTP:      httpclient.New(httpclient.Options{Timeout: e.cfg.Nagios.Timeout, Insecure: true}),
				Out:       e.opts.Stdout,
			}
			return r.Run(cmd.Context(), opts)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&opts.Comment, "comment", "c", "", "reason for the downtime")
	fs.StringVarP(&opts.Duration, "duration", "d", "", "flexible downtime length as HH:MM")
	fs.IntVarP(&opts.FixedMinutes, "fixed", "f", 0, "fixed downtime length in minutes (5 to 998)")
	fs.BoolVarP(&opts.UseFile, "password-file", "p", false, "read the password from the password file in your home directory")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "describe the scheduled downtime")
	return cmd
}
