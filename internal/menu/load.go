package menu

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyMenu is returned for definitions without any options.
var ErrEmptyMenu = errors.New("menu has no options")

type fileMenu struct {
	Title    string       `yaml:"title"`
	Subtitle string       `yaml:"subtitle"`
	Options  []fileOption `yaml:"options"`
}

type fileOption struct {
	Title    string       `yaml:"title"`
	Command  string       `yaml:"command"`
	Subtitle string       `yaml:"subtitle"`
	Options  []fileOption `yaml:"options"`
}

// Load reads a YAML menu definition from path.
func Load(path string) (*Menu, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML menu definition. Each option carries either a command
// or a nested list of options, which becomes a submenu payload.
func Parse(data []byte) (*Menu, error) {
	var def fileMenu
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	return build(def.Title, def.Subtitle, def.Options, def.Title)
}

func build(title, subtitle string, defs []fileOption, path string) (*Menu, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyMenu)
	}
	m := &Menu{Title: title, Subtitle: subtitle, Options: make([]Option, 0, len(defs))}
	for i, def := range defs {
		label := strings.TrimSpace(def.Title)
		if label == "" {
			return nil, fmt.Errorf("%s: option %d has no title", path, i+1)
		}
		hasCommand := strings.TrimSpace(def.Command) != ""
		hasChildren := len(def.Options) > 0
		switch {
		case hasCommand && hasChildren:
			return nil, fmt.Errorf("%s: option %q has both a command and options", path, label)
		case hasCommand:
			m.Options = append(m.Options, Option{Title: label, Payload: Command{Line: def.Command}})
		case hasChildren:
			sub, err := build(label, def.Subtitle, def.Options, path+" > "+label)
			if err != nil {
				return nil, err
			}
			m.Options = append(m.Options, Option{Title: label, Payload: sub})
		default:
			return nil, fmt.Errorf("%s: option %q has neither a command nor options", path, label)
		}
	}
	return m, nil
}
