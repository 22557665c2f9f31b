// Package lint runs the deterministic static-analysis stage against the
// website workspace and assembles the text report the reviewer consumes.
package lint

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Command is one configured linter invocation, run through the shell
// from the workspace root.
type Command struct {
	Name     string `yaml:"name" json:"name"`
	Command  string `yaml:"command" json:"command"`
	Disabled bool   `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// Config is the linter stage configuration, loadable from the `lint`
// section of webcraft.yaml.
type Config struct {
	Commands []Command `yaml:"commands" json:"commands"`
}

// DefaultConfig returns the stock web linter set: JS lint, HTML
// conformance, unused CSS detection, and dead link checking.
func DefaultConfig() Config {
	return Config{
		Commands: []Command{
			{Name: "oxlint", Command: `npx --yes oxlint .`},
			{Name: "markuplint", Command: `npx --yes markuplint "**/*.html"`},
			{Name: "purgecss", Command: `npx --yes purgecss --css "*.css" --content "*.html"`},
			{Name: "linkinator", Command: `npx --yes linkinator . --recurse`},
		},
	}
}

// Enabled filters out disabled commands.
func (c Config) Enabled() []Command {
	var out []Command
	for _, cmd := range c.Commands {
		if !cmd.Disabled {
			out = append(out, cmd)
		}
	}
	return out
}

// LoadConfig reads a YAML file holding a Config. A missing path yields
// the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read lint config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse lint config: %w", err)
	}
	if len(cfg.Commands) == 0 {
		return DefaultConfig(), nil
	}
	return cfg, nil
}
