package config

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/sigcomplete/internal/completion"
	"github.com/dshills/sigcomplete/internal/renderer/theme"
)

// Config is the complete sigcomplete configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" yaml:"log_level"`

	// Completion configures the signal provider and popup rendering.
	Completion CompletionConfig `toml:"completion" yaml:"completion"`

	// Theme maps colour role names to "#rrggbb" values.
	Theme map[string]string `toml:"theme" yaml:"theme"`

	// Scripts lists Lua completion provider scripts.
	Scripts []string `toml:"scripts" yaml:"scripts"`
}

// CompletionConfig configures completion behaviour.
type CompletionConfig struct {
	// Trigger is the character that opens the signal popup.
	Trigger string `toml:"trigger" yaml:"trigger"`

	// ReplaceTrigger removes the trigger character when a candidate is accepted.
	ReplaceTrigger bool `toml:"replace_trigger" yaml:"replace_trigger"`

	SelectedPrefix       string `toml:"selected_prefix" yaml:"selected_prefix"`
	UnselectedPrefix     string `toml:"unselected_prefix" yaml:"unselected_prefix"`
	DescriptionSeparator string `toml:"description_separator" yaml:"description_separator"`
	LineSeparator        string `toml:"line_separator" yaml:"line_separator"`

	// Signals is the catalogue offered after the trigger.
	Signals []Signal `toml:"signals" yaml:"signals"`
}

// Signal is one catalogue entry.
type Signal struct {
	Name        string `toml:"name" yaml:"name"`
	Description string `toml:"description" yaml:"description"`
}

// Default returns the built-in configuration.
func Default() *Config {
	style := completion.DefaultRenderStyle()
	return &Config{
		LogLevel: "info",
		Completion: CompletionConfig{
			Trigger:              string(completion.DefaultTrigger),
			SelectedPrefix:       style.SelectedPrefix,
			UnselectedPrefix:     style.UnselectedPrefix,
			DescriptionSeparator: style.DescriptionSeparator,
			LineSeparator:        style.LineSeparator,
		},
	}
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return &ValidationError{
			Path:    "log_level",
			Message: fmt.Sprintf("must be one of %s", strings.Join(validLogLevels, ", ")),
			Value:   c.LogLevel,
		}
	}

	if _, err := ParseTrigger(c.Completion.Trigger); err != nil {
		return &ValidationError{Path: "completion.trigger", Message: err.Error(), Value: c.Completion.Trigger, Err: err}
	}

	if c.Completion.LineSeparator == "" {
		return &ValidationError{Path: "completion.line_separator", Message: "must not be empty", Value: ""}
	}

	for i, s := range c.Completion.Signals {
		if strings.TrimSpace(s.Name) == "" {
			return &ValidationError{
				Path:    fmt.Sprintf("completion.signals[%d].name", i),
				Message: "must not be empty",
				Value:   s.Name,
			}
		}
	}

	if err := theme.Default().SetAll(c.Theme); err != nil {
		return &ValidationError{Path: "theme", Message: err.Error(), Value: c.Theme, Err: err}
	}

	for i, path := range c.Scripts {
		if strings.TrimSpace(path) == "" {
			return &ValidationError{Path: fmt.Sprintf("scripts[%d]", i), Message: "must not be empty", Value: path}
		}
	}

	return nil
}

// ParseTrigger converts a trigger setting to its rune.
func ParseTrigger(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, ErrInvalidTrigger
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsSpace(r) || !unicode.IsPrint(r) {
		return 0, ErrInvalidTrigger
	}
	return r, nil
}

// TriggerRune returns the configured trigger, or the default if invalid.
func (c *Config) TriggerRune() rune {
	r, err := ParseTrigger(c.Completion.Trigger)
	if err != nil {
		return completion.DefaultTrigger
	}
	return r
}

// RenderStyle returns the popup rendering settings.
func (c *Config) RenderStyle() completion.RenderStyle {
	return completion.RenderStyle{
		SelectedPrefix:       c.Completion.SelectedPrefix,
		UnselectedPrefix:     c.Completion.UnselectedPrefix,
		DescriptionSeparator: c.Completion.DescriptionSeparator,
		LineSeparator:        c.Completion.LineSeparator,
	}
}

// ApplySignals sets p's trigger and replaces its catalogue with the
// configured signals.
func (c *Config) ApplySignals(p *completion.PrefixProvider) {
	p.SetTriggerCharacter(c.TriggerRune())
	p.ClearSignals()
	for _, s := range c.Completion.Signals {
		p.AddSignal(s.Name, s.Description)
	}
}

// BuildTheme returns the default theme with the configured overrides.
func (c *Config) BuildTheme() (*theme.Theme, error) {
	t := theme.Default()
	if err := t.SetAll(c.Theme); err != nil {
		return nil, err
	}
	return t, nil
}
