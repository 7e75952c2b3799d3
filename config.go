package esthetic

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/agiangrant/esthetic/render"
)

// ClassNames are the class tokens that identify the widget's elements.
type ClassNames struct {
	Trigger  string `toml:"trigger" yaml:"trigger"`
	Item     string `toml:"item" yaml:"item"`
	Selected string `toml:"selected" yaml:"selected"`
	List     string `toml:"list" yaml:"list"`
	Input    string `toml:"input" yaml:"input"`

	// Host marks the elements a Controller enhances.
	Host string `toml:"host" yaml:"host"`
}

// Config lists every recognized widget option.
type Config struct {
	Classes ClassNames `toml:"classes" yaml:"classes"`

	// Events are the interaction event names the widget responds to.
	Events []string `toml:"events" yaml:"events"`

	// Hidden is the attribute written on a closed list.
	Hidden string `toml:"hidden" yaml:"hidden"`

	// Locale selects the language of generated trigger text.
	Locale string `toml:"locale" yaml:"locale"`

	// Placeholder overrides the localized trigger text shown when nothing
	// is selected.
	Placeholder string `toml:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// DefaultConfig returns the configuration used when no option is given.
func DefaultConfig() Config {
	return Config{
		Classes: ClassNames{
			Trigger:  "esthetic-trigger",
			Item:     "esthetic-item",
			Selected: "esthetic-item-selected",
			List:     "esthetic-list",
			Input:    "esthetic-input",
			Host:     "esthetic",
		},
		Events: []string{"touchstart", "mousedown", "focusin"},
		Hidden: "hidden",
		Locale: "en",
	}
}

// withDefaults fills every empty option from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&c.Classes.Trigger, d.Classes.Trigger)
	fill(&c.Classes.Item, d.Classes.Item)
	fill(&c.Classes.Selected, d.Classes.Selected)
	fill(&c.Classes.List, d.Classes.List)
	fill(&c.Classes.Input, d.Classes.Input)
	fill(&c.Classes.Host, d.Classes.Host)
	fill(&c.Hidden, d.Hidden)
	fill(&c.Locale, d.Locale)
	if len(c.Events) == 0 {
		c.Events = d.Events
	}
	c.Events = slices.Clone(c.Events)
	return c
}

// Validate reports the first option that cannot be used as written.
func (c Config) Validate() error {
	tokens := []struct {
		name, val string
	}{
		{"classes.trigger", c.Classes.Trigger},
		{"classes.item", c.Classes.Item},
		{"classes.selected", c.Classes.Selected},
		{"classes.list", c.Classes.List},
		{"classes.input", c.Classes.Input},
		{"classes.host", c.Classes.Host},
		{"hidden", c.Hidden},
	}
	for _, tok := range tokens {
		if tok.val == "" || strings.ContainsFunc(tok.val, isSpace) {
			return fmt.Errorf("%w: %s must be a single token, got %q", ErrInvalidConfig, tok.name, tok.val)
		}
	}

	if len(c.Events) == 0 {
		return fmt.Errorf("%w: events must not be empty", ErrInvalidConfig)
	}
	for _, ev := range c.Events {
		if ev == "" || strings.ContainsFunc(ev, isSpace) {
			return fmt.Errorf("%w: invalid event name %q", ErrInvalidConfig, ev)
		}
	}
	return nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

// Listens reports whether eventType is one of the configured events.
func (c Config) Listens(eventType string) bool {
	return slices.Contains(c.Events, eventType)
}

// Tokens converts the configuration into renderer tokens.
func (c Config) Tokens() render.Tokens {
	return render.Tokens{
		Trigger:  c.Classes.Trigger,
		Item:     c.Classes.Item,
		Selected: c.Classes.Selected,
		List:     c.Classes.List,
		Input:    c.Classes.Input,
		Hidden:   c.Hidden,
	}
}

// LoadConfig reads a TOML file, or YAML when the extension is .yaml or .yml.
// Options missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var loaded Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &loaded)
	default:
		err = toml.Unmarshal(data, &loaded)
	}
	if err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	config = loaded.withDefaults()
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// SaveConfig writes the configuration as TOML.
func SaveConfig(path string, config Config) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
