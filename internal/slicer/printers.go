package slicer

import (
	"os"
	"path"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/filasync/pkg/constants"
	"github.com/agentstation/filasync/pkg/errors"
	"github.com/agentstation/filasync/pkg/remote"
)

// Printer is one entry of the printer registry.
type Printer struct {
	Name     string `yaml:"name"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port,omitempty"`
	User     string `yaml:"user"`
	Password string `yaml:"password,omitempty"`
	KeyFile  string `yaml:"key_file,omitempty"`

	// MaterialDir overrides where the firmware keeps the catalog documents.
	MaterialDir string `yaml:"material_dir,omitempty"`
}

// DatabasePath is the printer-side path of the material database document.
func (p Printer) DatabasePath() string {
	return path.Join(p.materialDir(), constants.DatabaseFileName)
}

// OptionsPath is the printer-side path of the material options document.
func (p Printer) OptionsPath() string {
	return path.Join(p.materialDir(), constants.OptionsFileName)
}

func (p Printer) materialDir() string {
	if p.MaterialDir != "" {
		return p.MaterialDir
	}
	return constants.DefaultRemoteMaterialDir
}

// SSHConfig converts the registry entry into transport configuration.
func (p Printer) SSHConfig() remote.SSHConfig {
	return remote.SSHConfig{
		Host:     p.Host,
		Port:     p.Port,
		User:     p.User,
		Password: p.Password,
		KeyFile:  p.KeyFile,
		Timeout:  time.Duration(0),
	}
}

// Registry is the printers.yaml document.
type Registry struct {
	Printers []Printer `yaml:"printers"`
}

// LoadRegistry reads and parses a printers.yaml file.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, errors.NewParseError("yaml", path, err.Error(), err)
	}
	for _, p := range reg.Printers {
		if p.Name == "" || p.Host == "" || p.User == "" {
			return nil, errors.NewConfigError("printers", "each printer needs name, host, and user", nil)
		}
	}
	return &reg, nil
}

// Find returns the named printer, or the sole entry when name is empty.
func (r *Registry) Find(name string) (Printer, error) {
	if name == "" {
		if len(r.Printers) == 1 {
			return r.Printers[0], nil
		}
		return Printer{}, errors.NewConfigError("printers", "multiple printers configured; pick one with --printer", nil)
	}
	for _, p := range r.Printers {
		if p.Name == name {
			return p, nil
		}
	}
	return Printer{}, errors.NewNotFoundError("printer", name)
}
