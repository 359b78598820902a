package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProcessConfig describes an external command the renderer may run.
type ProcessConfig struct {
	Name        string            `yaml:"name" json:"name"`
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	Environment map[string]string `yaml:"env" json:"env"`
	Description string            `yaml:"description" json:"description"`
}

// ConfigFile is the structure of a standalone commands file.
type ConfigFile struct {
	Commands []ProcessConfig `yaml:"commands" json:"commands"`
}

// CommandMap indexes configs by name, skipping unnamed entries.
func CommandMap(cmds []ProcessConfig) map[string]ProcessConfig {
	out := make(map[string]ProcessConfig, len(cmds))
	for _, c := range cmds {
		if c.Name == "" {
			continue
		}
		out[c.Name] = c
	}
	return out
}

// LoadCommands reads a configuration file (YAML or JSON) and returns the
// commands it declares by name. A missing file yields an empty map.
func LoadCommands(path string) (map[string]ProcessConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]ProcessConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read commands config: %w", err)
	}

	var cfg ConfigFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	return CommandMap(cfg.Commands), nil
}
