package config

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/sigcomplete/internal/completion"
	"github.com/dshills/sigcomplete/internal/renderer/theme"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "$", cfg.Completion.Trigger)
	assert.Equal(t, '$', cfg.TriggerRune())
	assert.Equal(t, completion.DefaultRenderStyle(), cfg.RenderStyle())
	assert.False(t, cfg.Completion.ReplaceTrigger)
}

func TestParseTrigger(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{"$", '$', false},
		{"@", '@', false},
		{"λ", 'λ', false},
		{"", 0, true},
		{"$$", 0, true},
		{" ", 0, true},
		{"\t", 0, true},
		{"\x01", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTrigger(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTrigger)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"bad trigger", func(c *Config) { c.Completion.Trigger = "ab" }, "completion.trigger"},
		{"empty line separator", func(c *Config) { c.Completion.LineSeparator = "" }, "completion.line_separator"},
		{"empty signal", func(c *Config) {
			c.Completion.Signals = []Signal{{Name: "clk"}, {Name: " "}}
		}, "completion.signals[1].name"},
		{"unknown theme role", func(c *Config) { c.Theme = map[string]string{"sparkle": "#ffffff"} }, "theme"},
		{"bad theme hex", func(c *Config) { c.Theme = map[string]string{"info": "blue"} }, "theme"},
		{"empty script", func(c *Config) { c.Scripts = []string{""} }, "scripts[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidationFailed)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.path, ve.Path)
		})
	}
}

func TestValidateTriggerUnwrap(t *testing.T) {
	cfg := Default()
	cfg.Completion.Trigger = ""

	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalidTrigger)
}

func TestTriggerRuneFallsBack(t *testing.T) {
	cfg := Default()
	cfg.Completion.Trigger = "nope"
	assert.Equal(t, completion.DefaultTrigger, cfg.TriggerRune())
}

func TestApplySignals(t *testing.T) {
	cfg := Default()
	cfg.Completion.Trigger = "@"
	cfg.Completion.Signals = []Signal{
		{Name: "clk", Description: "system clock"},
		{Name: "rst"},
	}

	p := completion.NewPrefixProvider(0)
	p.SetSignalList([]string{"old"})
	cfg.ApplySignals(p)

	assert.Equal(t, '@', p.Trigger())
	assert.Equal(t, []completion.Item{
		completion.NewDetailedItem("clk", "clk", "system clock", completion.KindSignal),
		completion.NewDetailedItem("rst", "rst", "", completion.KindSignal),
	}, p.Signals())
}

func TestBuildTheme(t *testing.T) {
	cfg := Default()
	cfg.Theme = map[string]string{"info": "#112233"}

	th, err := cfg.BuildTheme()
	require.NoError(t, err)
	assert.Equal(t, "#112233", th.Hex(theme.Info))
	assert.Equal(t, theme.Default().Hex(theme.Background), th.Hex(theme.Background))

	cfg.Theme = map[string]string{"info": "zz"}
	_, err = cfg.BuildTheme()
	assert.Error(t, err)
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		name string
		want Format
		err  bool
	}{
		{"sig.toml", FormatTOML, false},
		{"dir/sig.TOML", FormatTOML, false},
		{"sig.yaml", FormatYAML, false},
		{"sig.yml", FormatYAML, false},
		{"sig.json", "", true},
		{"sig", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatFor(tt.name)
			if tt.err {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFS_TOML(t *testing.T) {
	fsys := fstest.MapFS{
		"sig.toml": {Data: []byte(`
log_level = "debug"
scripts = ["macros.lua"]

[completion]
trigger = "@"
replace_trigger = true

[[completion.signals]]
name = "clk"
description = "system clock"

[[completion.signals]]
name = "rst"

[theme]
info = "#89b4fa"
`)},
	}

	cfg, err := LoadFS(fsys, "sig.toml")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"macros.lua"}, cfg.Scripts)
	assert.Equal(t, '@', cfg.TriggerRune())
	assert.True(t, cfg.Completion.ReplaceTrigger)
	assert.Equal(t, []Signal{{Name: "clk", Description: "system clock"}, {Name: "rst"}}, cfg.Completion.Signals)
	assert.Equal(t, "#89b4fa", cfg.Theme["info"])

	// Unset keys keep their defaults.
	assert.Equal(t, "> ", cfg.Completion.SelectedPrefix)
	assert.Equal(t, "\n", cfg.Completion.LineSeparator)
}

func TestLoadFS_YAML(t *testing.T) {
	fsys := fstest.MapFS{
		"sig.yml": {Data: []byte(`
log_level: warn
completion:
  trigger: "#"
  selected_prefix: "* "
  signals:
    - name: clk
      description: system clock
`)},
	}

	cfg, err := LoadFS(fsys, "sig.yml")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, '#', cfg.TriggerRune())
	assert.Equal(t, "* ", cfg.RenderStyle().SelectedPrefix)
	assert.Equal(t, "  ", cfg.RenderStyle().UnselectedPrefix)
	assert.Equal(t, []Signal{{Name: "clk", Description: "system clock"}}, cfg.Completion.Signals)
}

func TestLoadFS_EmptyYAML(t *testing.T) {
	fsys := fstest.MapFS{"sig.yaml": {Data: []byte("")}}

	cfg, err := LoadFS(fsys, "sig.yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFS_Missing(t *testing.T) {
	cfg, err := LoadFS(fstest.MapFS{}, "sig.toml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFS_UnknownFormat(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{}, "sig.ini")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadFS_TOMLSyntaxError(t *testing.T) {
	fsys := fstest.MapFS{
		"sig.toml": {Data: []byte("log_level = \"debug\"\n[completion\n")},
	}

	_, err := LoadFS(fsys, "sig.toml")
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "sig.toml", pe.Path)
	assert.Positive(t, pe.Line)
	assert.Contains(t, pe.Error(), "at line")
}

func TestLoadFS_TOMLUnknownKey(t *testing.T) {
	fsys := fstest.MapFS{
		"sig.toml": {Data: []byte("[completion]\ntriger = \"$\"\n")},
	}

	_, err := LoadFS(fsys, "sig.toml")

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Message, "triger")
}

func TestLoadFS_YAMLUnknownKey(t *testing.T) {
	fsys := fstest.MapFS{
		"sig.yaml": {Data: []byte("completion:\n  triger: \"$\"\n")},
	}

	_, err := LoadFS(fsys, "sig.yaml")

	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestLoadFS_Invalid(t *testing.T) {
	fsys := fstest.MapFS{
		"sig.toml": {Data: []byte("[completion]\ntrigger = \"ab\"\n")},
	}

	_, err := LoadFS(fsys, "sig.toml")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := t.TempDir() + "/sig.toml"
	require.NoError(t, writeFile(path, "log_level = \"error\"\n"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestParseErrorMessages(t *testing.T) {
	assert.Equal(t, "parse error in a.toml: bad", (&ParseError{Path: "a.toml", Message: "bad"}).Error())
	assert.Equal(t, "parse error in a.toml at line 3: bad", (&ParseError{Path: "a.toml", Line: 3, Message: "bad"}).Error())
	assert.Equal(t, "parse error in a.toml at line 3, column 4: bad",
		(&ParseError{Path: "a.toml", Line: 3, Column: 4, Message: "bad"}).Error())
}
