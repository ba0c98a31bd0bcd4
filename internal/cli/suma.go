package cli

import (
	"github.com/dxbtools/admintools/internal/suma"
	"github.com/spf13/cobra"
)

func newSUMACmd(e *env) *cobra.Command {
	var opts suma.Options
	cmd := &cobra.Command{
		Use:   "suma-report [-c HOST | -n]",
		Short: suma.Description,
		Long: suma.Description + `

Lists every host registered with the configured SUSE Manager servers with its
last check-in, last boot and running kernel. -n prints only the host names.
-c prints the seconds since HOST last checked in, or 0 when that is unknown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &suma.Runner{
				Config: e.cfg.SUMA,
				Out:    e.opts.Stdout,
				Err:    e.opts.Stderr,
			}
			return r.Run(cmd.Context(), opts)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&opts.Host, "host", "c", "", "print seconds since HOST last checked in")
	fs.BoolVarP(&opts.NamesOnly, "names", "n", false, "print host names only")
	fs.BoolVarP(&opts.Debug, "debug", "d", false, "print debugging messages to stderr")
	return cmd
}
