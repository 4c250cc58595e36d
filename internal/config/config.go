/*
Package config provides campaign configuration loading and validation.
*/
package config

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// DefaultTemplatesDir is used when no templates directory is configured
const DefaultTemplatesDir = "templates"

// FindFile looks for a campaign file in the working directory
func FindFile() string {
	candidates := []string{
		"campaigns.yaml",
		"campaigns.yml",
		"campaigns.json",
		"email_lists.json",
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}

	return "campaigns.yaml"
}

// Load loads configuration from a campaign file. The file is YAML (JSON
// parses as a subset). Two shapes are accepted: a full config with a
// top-level campaigns key, or the bare form mapping campaign names directly
// to campaign definitions.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read campaign file: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse campaign file: %w", err)
	}

	root := &doc
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root = doc.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("campaign file %s must contain a mapping", path)
	}

	var cfg Config
	if hasKey(root, "campaigns") {
		if err := root.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to decode campaign file: %w", err)
		}
	} else {
		if err := root.Decode(&cfg.Campaigns); err != nil {
			return nil, fmt.Errorf("failed to decode campaign file: %w", err)
		}
	}

	if cfg.TemplatesDir == "" {
		cfg.TemplatesDir = DefaultTemplatesDir
	}

	return &cfg, nil
}

// Merge layers the non-zero fields of override on top of c. Used to apply
// command-line flags over file settings.
func (c *Config) Merge(override *Config) error {
	if override == nil {
		return nil
	}
	if err := mergo.Merge(c, override, mergo.WithOverride); err != nil {
		return fmt.Errorf("failed to merge config overrides: %w", err)
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Campaigns.Len() == 0 {
		return fmt.Errorf("no campaigns defined")
	}

	for _, campaign := range c.Campaigns.All() {
		if err := campaign.validate(); err != nil {
			return err
		}
	}

	return nil
}

// hasKey reports whether a mapping node contains the given key
func hasKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

// DefaultTemplate returns a starter campaign file
func DefaultTemplate() string {
	return `# Campaign configuration
# Each campaign names a subject, a template file (in templates/), and a
# recipient list. Templates use {} as a positional placeholder, replaced
# left to right by each recipient's fill_items.

sender: you@example.com
templates_dir: templates

campaigns:
  welcome:
    subject: "Welcome aboard"
    template: welcome.txt
    recipients:
      - email: alice@example.com
        title: "Ms. Liddell"
        fill_items: ["Alice", "42"]
      - email: bob@example.com
        fill_items: ["Bob", "17"]
`
}
