// Package vmware reports on virtual machines managed by vCenter or ESXi.
package vmware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dxbtools/admintools/internal/config"
	"github.com/dxbtools/admintools/internal/format/table"
	"github.com/dxbtools/admintools/internal/logging"
	"github.com/dxbtools/admintools/internal/logging/events"
	"github.com/dxbtools/admintools/internal/theme"
	"github.com/dxbtools/admintools/internal/validate"
	"go.uber.org/zap"
)

const toolName = "vm-report"

// Description names the tool in banners and help.
const Description = "Virtual Machine Information Reporting Tool"

const indent = "\t\t"

var (
	header     = []string{"___VM_Name___", "__State__", "__Tools__", "__RAM(GB)__", "__CPU__", "__FT?__"}
	alignments = []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignRight, table.AlignLeft}
	// Only names carrying a site prefix are listed; the rest are fault
	// tolerance secondaries of the other site.
	sitePrefixes = []string{"dc1", "dc2"}
)

// Options are the parsed command line choices.
type Options struct {
	// Host switches to existence check mode for one VM name.
	Host  string
	DC1   bool
	DC2   bool
	Debug bool
}

// Runner produces one report.
type Runner struct {
	Config config.VMware
	Out    io.Writer
	Err    io.Writer
	// Connect opens an inventory session. Defaults to Connect.
	Connect func(ctx context.Context, server config.Server) (Inventory, error)
}

// Run executes opts and returns the process exit status. In check mode the
// status is CodeHostFound when the VM exists and 0 otherwise; CodeFailure
// means the inventory could not be read.
func (r *Runner) Run(ctx context.Context, opts Options) (int, error) {
	if opts.DC1 && opts.DC2 {
		return CodeConflict, &validate.Error{Reason: "-e conflicts with -w", Code: CodeConflict}
	}
	if opts.Host != "" && (opts.DC1 || opts.DC2) {
		return CodeConflict, &validate.Error{Reason: "-c conflicts with -e and -w", Code: CodeConflict}
	}

	if opts.Host != "" {
		res := ValidateHost(opts.Host)
		dc, ok := res.Value()
		if !ok {
			events.Tool.Invalid(toolName, res.Reason())
			return res.Code(), res.Err()
		}
		server, ok := r.Config.Server(dc)
		if !ok {
			return CodeFailure, fmt.Errorf("no server configured for %s", dc)
		}
		found, err := r.exists(ctx, server, opts)
		if err != nil {
			return CodeFailure, err
		}
		if found {
			return CodeHostFound, nil
		}
		return 0, nil
	}

	servers, err := r.pick(opts)
	if err != nil {
		return CodeFailure, err
	}
	styles := theme.Default()
	fmt.Fprintln(r.Out)
	fmt.Fprintln(r.Out, theme.Render(styles.Banner, toolName+" - "+Description))
	for _, server := range servers {
		if err := r.list(ctx, server, opts); err != nil {
			return CodeFailure, err
		}
	}
	return 0, nil
}

// pick returns the servers a listing covers: one site for -e or -w, all of
// them otherwise.
func (r *Runner) pick(opts Options) ([]config.Server, error) {
	name := ""
	switch {
	case opts.DC1:
		name = "DC1"
	case opts.DC2:
		name = "DC2"
	default:
		if len(r.Config.Servers) == 0 {
			return nil, errors.New("no vCenter servers configured")
		}
		return r.Config.Servers, nil
	}
	s, ok := r.Config.Server(name)
	if !ok {
		return nil, fmt.Errorf("no server configured for %s", name)
	}
	return []config.Server{s}, nil
}

func (r *Runner) exists(ctx context.Context, server config.Server, opts Options) (bool, error) {
	var found bool
	err := r.session(ctx, server, func(vms []VM) {
		for _, vm := range vms {
			r.debugf(opts, "\t%s\n", vm.Name)
			if vm.Name == opts.Host {
				found = true
				break
			}
		}
	})
	if err != nil {
		return false, err
	}
	events.Tool.Found(toolName, opts.Host, found)
	return found, nil
}

func (r *Runner) list(ctx context.Context, server config.Server, opts Options) error {
	styles := theme.Default()
	return r.session(ctx, server, func(vms []VM) {
		rows := [][]string{header}
		skipped := 0
		for _, vm := range vms {
			if !hasSitePrefix(vm.Name) {
				skipped++
				r.debugf(opts, "\tskipping %s (%d skipped)\n", vm.Name, skipped)
				continue
			}
			rows = append(rows, r.row(vm, styles))
		}
		listed := len(rows) - 1

		lines := table.Format(rows, alignments)
		sep := theme.Render(styles.Separator, table.Rule(lines))
		lines[0] = theme.Render(styles.TableHead, lines[0])
		fmt.Fprintf(r.Out, "\n\t%s (%s)\n\n", theme.Render(styles.Subtitle, server.Name), server.Address)
		for _, line := range table.Grouped(lines, sep) {
			fmt.Fprintln(r.Out, indent+line)
		}
		fmt.Fprintf(r.Out, "\n%s%s (%d skipped)\n\n", indent, theme.Render(styles.Banner, fmt.Sprintf("%d VMs in this DC", listed)), skipped)
		logging.Info("listed virtual machines", zap.String("server", server.Name), zap.Int("listed", listed), zap.Int("skipped", skipped))
	})
}

func (r *Runner) row(vm VM, styles *theme.Styles) []string {
	state, tools := "On", "NO"
	switch {
	case !vm.PoweredOn:
		state = theme.Render(styles.PowerOff, "Off")
		tools = "---"
	case vm.ToolsOK:
		tools = "YES"
	}
	ft := "NO"
	if vm.FaultTolerant {
		ft = theme.Render(styles.Banner, "YES")
	}
	return []string{
		vm.Name,
		state,
		tools,
		strconv.Itoa(vm.MemoryGB()),
		strconv.Itoa(int(vm.CPUs)),
		ft,
	}
}

// session connects to server, hands the VM list to fn and logs out.
func (r *Runner) session(ctx context.Context, server config.Server, fn func([]VM)) error {
	connect := r.Connect
	if connect == nil {
		connect = func(ctx context.Context, server config.Server) (Inventory, error) {
			return Connect(ctx, server, r.Config)
		}
	}
	events.Tool.Request(toolName, "RetrieveVirtualMachines", server.Address)
	inv, err := connect(ctx, server)
	if err != nil {
		return err
	}
	defer func() {
		if err := inv.Logout(context.WithoutCancel(ctx)); err != nil {
			logging.Error(fmt.Errorf("%s logout: %w", server.Name, err))
		}
	}()
	vms, err := inv.VirtualMachines(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", server.Name, err)
	}
	fn(vms)
	return nil
}

func hasSitePrefix(name string) bool {
	for _, p := range sitePrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func (r *Runner) debugf(opts Options, format string, args ...interface{}) {
	if !opts.Debug || r.Err == nil {
		return
	}
	fmt.Fprintf(r.Err, format, args...)
}
