package config

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrCampaignNotFound is returned when a requested campaign name is not
// present in the campaign set.
var ErrCampaignNotFound = errors.New("campaign not found")

// Config represents the complete sender configuration
type Config struct {
	// Sender is the From address used for every message
	Sender string `yaml:"sender,omitempty"`

	// TemplatesDir is the directory holding template files
	TemplatesDir string `yaml:"templates_dir,omitempty"`

	// SendLog is the path of the append-only log of sent mail
	SendLog string `yaml:"send_log,omitempty"`

	// Campaigns maps campaign names to their definitions
	Campaigns CampaignSet `yaml:"campaigns,omitempty"`
}

// Campaign is a named sending job: subject + template + recipients
type Campaign struct {
	// Name is the key the campaign was declared under
	Name string `yaml:"-"`

	// Subject line for every message in the campaign
	Subject string `yaml:"subject"`

	// Template is the template filename, resolved inside the templates
	// directory only
	Template string `yaml:"template"`

	// Recipients to send to, in order
	Recipients []Recipient `yaml:"recipients"`
}

// Recipient is one addressee plus its personalization data
type Recipient struct {
	// Email address of the recipient
	Email string `yaml:"email"`

	// Title, when set, produces a "Dear <title>," greeting line
	Title string `yaml:"title,omitempty"`

	// FillItems replace the template's {} markers left to right
	FillItems []string `yaml:"fill_items,omitempty"`
}

// CampaignSet holds campaigns keyed by name, preserving the order they were
// declared in the campaign file.
type CampaignSet struct {
	byName map[string]*Campaign
	order  []string
}

// UnmarshalYAML decodes a mapping of campaign name to campaign definition,
// keeping declaration order.
func (s *CampaignSet) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("campaigns must be a mapping of name to campaign")
	}

	s.byName = make(map[string]*Campaign, len(value.Content)/2)
	s.order = nil

	for i := 0; i+1 < len(value.Content); i += 2 {
		var name string
		if err := value.Content[i].Decode(&name); err != nil {
			return fmt.Errorf("invalid campaign name: %w", err)
		}

		var c Campaign
		if err := value.Content[i+1].Decode(&c); err != nil {
			return fmt.Errorf("campaign %s: %w", name, err)
		}
		c.Name = name

		if _, ok := s.byName[name]; ok {
			return fmt.Errorf("duplicate campaign: %s", name)
		}
		s.byName[name] = &c
		s.order = append(s.order, name)
	}

	return nil
}

// Len returns the number of campaigns in the set
func (s *CampaignSet) Len() int {
	return len(s.order)
}

// Names returns the campaign names in declaration order
func (s *CampaignSet) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// All returns every campaign in declaration order
func (s *CampaignSet) All() []*Campaign {
	campaigns := make([]*Campaign, 0, len(s.order))
	for _, name := range s.order {
		campaigns = append(campaigns, s.byName[name])
	}
	return campaigns
}

// Get looks up a single campaign by name
func (s *CampaignSet) Get(name string) (*Campaign, error) {
	c, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCampaignNotFound, name)
	}
	return c, nil
}

// Resolve returns the campaigns selected by name. An empty name selects
// every campaign in declaration order.
func (s *CampaignSet) Resolve(name string) ([]*Campaign, error) {
	if name == "" {
		return s.All(), nil
	}
	c, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	return []*Campaign{c}, nil
}

// validate checks the shape of a single campaign
func (c *Campaign) validate() error {
	if strings.TrimSpace(c.Subject) == "" {
		return fmt.Errorf("campaign %s: subject is required", c.Name)
	}

	if c.Template == "" {
		return fmt.Errorf("campaign %s: template is required", c.Name)
	}
	if err := ValidateTemplateRef(c.Template); err != nil {
		return fmt.Errorf("campaign %s: %w", c.Name, err)
	}

	// nil means the key was absent; an explicit empty list is a valid
	// no-op campaign
	if c.Recipients == nil {
		return fmt.Errorf("campaign %s: recipients is required", c.Name)
	}

	for i, r := range c.Recipients {
		if r.Email == "" {
			return fmt.Errorf("campaign %s: recipients[%d]: email is required", c.Name, i)
		}
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return fmt.Errorf("campaign %s: recipients[%d]: invalid email %q: %w", c.Name, i, r.Email, err)
		}
	}

	return nil
}

// ValidateTemplateRef rejects template references that could escape the
// templates directory.
func ValidateTemplateRef(ref string) error {
	if strings.ContainsAny(ref, `/\`) || strings.Contains(ref, "..") {
		return fmt.Errorf("template %q must be a plain filename", ref)
	}
	return nil
}
