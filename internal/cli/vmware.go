package cli

import (
	"github.com/dxbtools/admintools/internal/vmware"
	"github.com/spf13/cobra"
)

func newVMCmd(e *env) *cobra.Command {
	var opts vmware.Options
	cmd := &cobra.Command{
		Use:   "vm-report [-c HOST | -e | -w]",
		Short: vmware.Description,
		Long: vmware.Description + `

Lists the virtual machines of both data centers, or only DC1 (-e) or DC2 (-w).
-c exits with status 1 when a VM named HOST exists and 0 otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &vmware.Runner{
				Config: e.cfg.VMware,
				Out:    e.opts.Stdout,
				Err:    e.opts.Stderr,
			}
			code, err := r.Run(cmd.Context(), opts)
			if err != nil || code != ExitOK {
				return &ExitError{Code: code, Err: err}
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&opts.Host, "host", "c", "", "exit 1 if a VM named HOST exists")
	fs.BoolVarP(&opts.Debug, "debug", "d", false, "print debugging messages to stderr")
	fs.BoolVarP(&opts.DC1, "dc1", "e", false, "only list DC1")
	fs.BoolVarP(&opts.DC2, "dc2", "w", false, "only list DC2")
	return cmd
}
