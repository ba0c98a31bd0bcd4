package suma

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kolo/xmlrpc"
)

// System is one entry of system.listSystems.
type System struct {
	ID          int       `xmlrpc:"id"`
	Name        string    `xmlrpc:"name"`
	LastCheckin time.Time `xmlrpc:"last_checkin"`
	LastBoot    time.Time `xmlrpc:"last_boot"`
}

// API is the subset of the SUSE Manager XML-RPC interface the report uses.
type API interface {
	Login(user, password string) (string, error)
	ListSystems(key string) ([]System, error)
	RunningKernel(key string, id int) (string, error)
	Logout(key string) error
	Close() error
}

// Dial connects to the XML-RPC endpoint at url.
func Dial(url string, transport http.RoundTripper) (API, error) {
	c, err := xmlrpc.NewClient(url, transport)
	if err != nil {
		return nil, fmt.Errorf("xmlrpc client for %s: %w", url, err)
	}
	return &rpcAPI{c: c}, nil
}

type rpcAPI struct {
	c *xmlrpc.Client
}

func (a *rpcAPI) Login(user, password string) (string, error) {
	var key string
	if err := a.c.Call("auth.login", []interface{}{user, password}, &key); err != nil {
		return "", fmt.Errorf("auth.login: %w", err)
	}
	return key, nil
}

func (a *rpcAPI) ListSystems(key string) ([]System, error) {
	var systems []System
	if err := a.c.Call("system.listSystems", []interface{}{key}, &systems); err != nil {
		return nil, fmt.Errorf("system.listSystems: %w", err)
	}
	return systems, nil
}

func (a *rpcAPI) RunningKernel(key string, id int) (string, error) {
	var kernel string
	if err := a.c.Call("system.getRunningKernel", []interface{}{key, id}, &kernel); err != nil {
		return "", fmt.Errorf("system.getRunningKernel: %w", err)
	}
	return kernel, nil
}

func (a *rpcAPI) Logout(key string) error {
	var status int
	if err := a.c.Call("auth.logout", []interface{}{key}, &status); err != nil {
		return fmt.Errorf("auth.logout: %w", err)
	}
	return nil
}

func (a *rpcAPI) Close() error {
	return a.c.Close()
}
