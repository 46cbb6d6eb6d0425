package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultProbeTimeout bounds a single probe execution when the config sets no timeout.
const DefaultProbeTimeout = 30 * time.Second

// ProbeConfig describes a command that reports the state of an operation on stdout.
type ProbeConfig struct {
	Name        string            `yaml:"name" json:"name"`
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	Environment map[string]string `yaml:"env" json:"env"`
	Description string            `yaml:"description" json:"description"`
	// Timeout is a Go duration ("5s", "1m"); "0" disables the limit.
	Timeout string `yaml:"timeout" json:"timeout"`
}

// timeout parses Timeout, defaulting to DefaultProbeTimeout.
func (p ProbeConfig) timeout() (time.Duration, error) {
	if p.Timeout == "" {
		return DefaultProbeTimeout, nil
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0, fmt.Errorf("probe %q: invalid timeout: %w", p.Name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("probe %q: timeout must not be negative", p.Name)
	}
	return d, nil
}

// ConfigFile represents the structure of probes.yaml.
type ConfigFile struct {
	Probes []ProbeConfig `yaml:"probes" json:"probes"`
}

// LoadProbes reads a configuration file (YAML or JSON) and returns the probes by name.
// A missing file yields no probes. Entries without a name are skipped; a probe without
// a command, with a malformed timeout or declared twice is an error.
func LoadProbes(path string) (map[string]ProbeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]ProbeConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read probes config: %w", err)
	}

	var cfg ConfigFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	probes := make(map[string]ProbeConfig)
	for _, p := range cfg.Probes {
		if p.Name == "" {
			continue
		}
		if strings.TrimSpace(p.Command) == "" {
			return nil, fmt.Errorf("probe %q: command is required", p.Name)
		}
		if _, err := p.timeout(); err != nil {
			return nil, err
		}
		if _, dup := probes[p.Name]; dup {
			return nil, fmt.Errorf("probe %q: declared more than once", p.Name)
		}
		probes[p.Name] = p
	}
	return probes, nil
}
