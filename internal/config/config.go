package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configName = "admintools"
	envPrefix  = "admintools"
)

// Config captures runtime configuration for every tool.
type Config struct {
	Logging Logging `mapstructure:"logging"`
	Vault   Vault   `mapstructure:"vault"`
	Menu    Menu    `mapstructure:"menu"`
	Dell    Dell    `mapstructure:"dell"`
	Nagios  Nagios  `mapstructure:"nagios"`
	SUMA    SUMA    `mapstructure:"suma"`
	VMware  VMware  `mapstructure:"vmware"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

type Logging struct {
	File   string `mapstructure:"file"`
	Level  string `mapstructure:"level"`
	Trace  bool   `mapstructure:"trace"`
	Syslog bool   `mapstructure:"syslog"`
}

// Vault points at a KV v2 secret holding one password field per tool.
type Vault struct {
	Address  string `mapstructure:"address"`
	RoleID   string `mapstructure:"role_id"`
	SecretID string `mapstructure:"secret_id"`
	Mount    string `mapstructure:"mount"`
	Path     string `mapstructure:"path"`
}

// Enabled reports whether enough is configured to attempt a login.
func (v Vault) Enabled() bool {
	return v.Address != "" && v.Path != ""
}

type Menu struct {
	File string `mapstructure:"file"`
}

// Site names one storage array location. Index is the third octet of the
// management controller address.
type Site struct {
	Index int    `mapstructure:"index"`
	Name  string `mapstructure:"name"`
}

type Dell struct {
	Sites            []Site        `mapstructure:"sites"`
	NetworkBase      string        `mapstructure:"network_base"`
	ControllerSuffix string        `mapstructure:"controller_suffix"`
	MinIndex         int           `mapstructure:"min_index"`
	MaxIndex         int           `mapstructure:"max_index"`
	MinNameLen       int           `mapstructure:"min_name_len"`
	MaxNameLen       int           `mapstructure:"max_name_len"`
	DeviceUser       string        `mapstructure:"device_user"`
	PasswordFile     string        `mapstructure:"password_file"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

type Nagios struct {
	URL           string        `mapstructure:"url"`
	RequiredGroup string        `mapstructure:"required_group"`
	PasswordFile  string        `mapstructure:"password_file"`
	SyslogTag     string        `mapstructure:"syslog_tag"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// Server is a named management endpoint.
type Server struct {
	Name    string `mapstructure:"name"`
	Address string `mapstructure:"address"`
}

type SUMA struct {
	Servers []Server `mapstructure:"servers"`
	// Prefixes maps the first two characters of a host name to a server name.
	Prefixes     map[string]string `mapstructure:"prefixes"`
	Login        string            `mapstructure:"login"`
	Password     string            `mapstructure:"password"`
	LatestKernel string            `mapstructure:"latest_kernel"`
	CheckinLimit time.Duration     `mapstructure:"checkin_limit"`
	Path         string            `mapstructure:"path"`
}

type VMware struct {
	Servers  []Server `mapstructure:"servers"`
	User     string   `mapstructure:"user"`
	Password string   `mapstructure:"password"`
	Insecure bool     `mapstructure:"insecure"`
}

// Defaults returns the built-in settings used when no file or environment
// override is present.
func Defaults() map[string]any {
	return map[string]any{
		"logging.file":   "",
		"logging.level":  "info",
		"logging.trace":  false,
		"logging.syslog": false,

		"vault.address":   "",
		"vault.role_id":   "",
		"vault.secret_id": "",
		"vault.mount":     "secret",
		"vault.path":      "",

		"menu.file": "",

		"dell.sites": []map[string]any{
			{"index": 11, "name": "DEV"},
			{"index": 12, "name": "TST"},
			{"index": 13, "name": "PRD"},
			{"index": 14, "name": "HQ"},
			{"index": 15, "name": "DR"},
			{"index": 16, "name": "BACKUP1"},
			{"index": 17, "name": "BACKUP2"},
		},
		"dell.network_base":      "192.168.",
		"dell.controller_suffix": ".110",
		"dell.min_index":         11,
		"dell.max_index":         17,
		"dell.min_name_len":      2,
		"dell.max_name_len":      6,
		"dell.device_user":       "manage",
		"dell.password_file":     ".dell-query-array",
		"dell.timeout":           "30s",

		"nagios.url":            "https://nagios.example.com/nagios/cgi-bin/cmd.cgi",
		"nagios.required_group": "12345",
		"nagios.password_file":  ".nagios_downtime",
		"nagios.syslog_tag":     "nagios-downtime",
		"nagios.timeout":        "30s",

		"suma.servers": []map[string]any{
			{"name": "ADC", "address": "10.0.1.79"},
			{"name": "BDC", "address": "10.0.2.79"},
		},
		"suma.prefixes":      map[string]any{"at": "ADC", "bt": "BDC"},
		"suma.login":         "",
		"suma.password":      "",
		"suma.latest_kernel": "4.12.14-150.47-default",
		"suma.checkin_limit": "2h",
		"suma.path":          "/rpc/api",

		"vmware.servers": []map[string]any{
			{"name": "DC1", "address": "10.2.4.30"},
			{"name": "DC2", "address": "10.2.4.60"},
		},
		"vmware.user":     "",
		"vmware.password": "",
		"vmware.insecure": true,
	}
}

// Path returns the per-user or system-wide location of the config file.
func Path(system bool) (string, error) {
	var dir string
	if system {
		switch runtime.GOOS {
		case "windows":
			dir = filepath.Join(os.Getenv("ProgramData"), "admintools")
		default:
			dir = "/etc/admintools"
		}
	} else {
		userDir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		dir = filepath.Join(userDir, "admintools")
	}
	return filepath.Join(dir, configName+".yaml"), nil
}

// flagKeys maps persistent command line flags onto config keys.
var flagKeys = map[string]string{
	"log-file":  "logging.file",
	"log-level": "logging.level",
	"trace":     "logging.trace",
	"syslog":    "logging.syslog",
	"menu":      "menu.file",
}

// Load builds the configuration from defaults, the first config file found,
// ADMINTOOLS_* environment variables and the flags of cmd, in increasing
// order of precedence. An explicit file that does not exist is an error.
func Load(cmd *cobra.Command, file string) (Config, error) {
	var cfg Config
	v := viper.New()
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
	}
	if userPath, err := Path(false); err == nil {
		v.AddConfigPath(filepath.Dir(userPath))
	}
	if systemPath, err := Path(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for name, key := range flagKeys {
			flag := cmd.Flags().Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return cfg, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	return cfg, nil
}

// Validate checks that the tables each tool depends on make sense.
func Validate(cfg Config) error {
	var errs []error
	d := cfg.Dell
	if len(d.Sites) == 0 {
		errs = append(errs, errors.New("dell: site table is empty"))
	}
	if d.MinIndex > d.MaxIndex {
		errs = append(errs, fmt.Errorf("dell: min_index %d exceeds max_index %d", d.MinIndex, d.MaxIndex))
	}
	if d.MinNameLen > d.MaxNameLen || d.MinNameLen < 1 {
		errs = append(errs, fmt.Errorf("dell: name length bounds %d..%d are invalid", d.MinNameLen, d.MaxNameLen))
	}
	seen := map[int]bool{}
	for _, s := range d.Sites {
		if seen[s.Index] {
			errs = append(errs, fmt.Errorf("dell: site index %d listed twice", s.Index))
		}
		seen[s.Index] = true
	}
	if _, err := url.ParseRequestURI(cfg.Nagios.URL); err != nil {
		errs = append(errs, fmt.Errorf("nagios: url: %w", err))
	}
	if len(cfg.SUMA.Servers) == 0 {
		errs = append(errs, errors.New("suma: no servers configured"))
	}
	for prefix, name := range cfg.SUMA.Prefixes {
		if len(prefix) != 2 {
			errs = append(errs, fmt.Errorf("suma: prefix %q must be two characters", prefix))
		}
		if _, ok := cfg.SUMA.Server(name); !ok {
			errs = append(errs, fmt.Errorf("suma: prefix %q names unknown server %q", prefix, name))
		}
	}
	if len(cfg.VMware.Servers) == 0 {
		errs = append(errs, errors.New("vmware: no servers configured"))
	}
	return errors.Join(errs...)
}

// Server looks up a SUMA server by name, ignoring case.
func (s SUMA) Server(name string) (Server, bool) {
	return findServer(s.Servers, name)
}

// Server looks up a vSphere endpoint by name, ignoring case.
func (v VMware) Server(name string) (Server, bool) {
	return findServer(v.Servers, name)
}

func findServer(servers []Server, name string) (Server, bool) {
	for _, s := range servers {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Server{}, false
}

// SiteByIndex returns the site with the given index.
func (d Dell) SiteByIndex(index int) (Site, bool) {
	for _, s := range d.Sites {
		if s.Index == index {
			return s, true
		}
	}
	return Site{}, false
}

// SiteByName returns the site with the given name, ignoring case.
func (d Dell) SiteByName(name string) (Site, bool) {
	for _, s := range d.Sites {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Site{}, false
}
