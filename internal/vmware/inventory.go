package vmware

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dxbtools/admintools/internal/config"
	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/session"
	"github.com/vmware/govmomi/view"
	"github.com/vmware/govmomi/vim25"
	"github.com/vmware/govmomi/vim25/mo"
	"github.com/vmware/govmomi/vim25/soap"
	"github.com/vmware/govmomi/vim25/types"
)

// VM holds the summary fields shown in the report.
type VM struct {
	Name          string
	PoweredOn     bool
	ToolsOK       bool
	MemoryMB      int32
	CPUs          int32
	FaultTolerant bool
}

// MemoryGB is the configured memory in whole gigabytes.
func (v VM) MemoryGB() int {
	return int(v.MemoryMB) / 1024
}

// Inventory lists the virtual machines visible to one session.
type Inventory interface {
	VirtualMachines(ctx context.Context) ([]VM, error)
	Logout(ctx context.Context) error
}

// Connect logs in to the vCenter or ESXi host at server.Address.
func Connect(ctx context.Context, server config.Server, cfg config.VMware) (Inventory, error) {
	u, err := soap.ParseURL(server.Address)
	if err != nil {
		return nil, fmt.Errorf("parse %s address: %w", server.Name, err)
	}
	u.User = url.UserPassword(cfg.User, cfg.Password)
	c, err := govmomi.NewClient(ctx, u, cfg.Insecure)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", server.Name, err)
	}
	return &vsphere{c: c.Client, sm: c.SessionManager}, nil
}

type vsphere struct {
	c  *vim25.Client
	sm *session.Manager
}

func (v *vsphere) VirtualMachines(ctx context.Context) ([]VM, error) {
	m := view.NewManager(v.c)
	cv, err := m.CreateContainerView(ctx, v.c.ServiceContent.RootFolder, []string{"VirtualMachine"}, true)
	if err != nil {
		return nil, fmt.Errorf("create container view: %w", err)
	}
	defer cv.Destroy(ctx)

	var vms []mo.VirtualMachine
	if err := cv.Retrieve(ctx, []string{"VirtualMachine"}, []string{"summary"}, &vms); err != nil {
		return nil, fmt.Errorf("retrieve virtual machines: %w", err)
	}
	out := make([]VM, 0, len(vms))
	for _, vm := range vms {
		out = append(out, fromSummary(vm.Summary))
	}
	return out, nil
}

func (v *vsphere) Logout(ctx context.Context) error {
	return v.sm.Logout(ctx)
}

func fromSummary(s types.VirtualMachineSummary) VM {
	vm := VM{
		Name:          s.Config.Name,
		PoweredOn:     s.Runtime.PowerState == types.VirtualMachinePowerStatePoweredOn,
		MemoryMB:      s.Config.MemorySizeMB,
		CPUs:          s.Config.NumCpu,
		FaultTolerant: s.Runtime.FaultToleranceState == types.VirtualMachineFaultToleranceStateRunning,
	}
	if s.Guest != nil {
		vm.ToolsOK = s.Guest.ToolsStatus == types.VirtualMachineToolsStatusToolsOk
	}
	return vm
}
