package config

import (
	"strings"

	"github.com/arthur-debert/logpeek/pkg/errors"
)

// ColorMode controls styling of emitted lines
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Settings holds the tool settings
type Settings struct {
	Output OutputSettings `koanf:"output"`
	Rules  RulesSettings  `koanf:"rules"`
	Input  InputSettings  `koanf:"input"`
}

// OutputSettings configures the sink and `show`
type OutputSettings struct {
	Color  ColorMode `koanf:"color"`
	Format string    `koanf:"format"`
	Pretty bool      `koanf:"pretty"`
}

// RulesSettings configures where rules come from and how they are checked
type RulesSettings struct {
	DefaultFile string `koanf:"default_file"`
	Strict      bool   `koanf:"strict"`
}

// InputSettings configures line reading
type InputSettings struct {
	MaxLineBytes int `koanf:"max_line_bytes"`
}

var showFormats = []string{"json", "yaml", "toml", "tree"}

// Validate checks enumerated values and limits
func (s *Settings) Validate() error {
	switch s.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Newf(errors.ErrConfigLoad, "invalid output.color %q (want auto, always or never)", s.Output.Color).
			WithDetail("key", "output.color")
	}

	valid := false
	for _, f := range showFormats {
		if s.Output.Format == f {
			valid = true
			break
		}
	}
	if !valid {
		return errors.Newf(errors.ErrConfigLoad, "invalid output.format %q (want %s)", s.Output.Format, strings.Join(showFormats, ", ")).
			WithDetail("key", "output.format")
	}

	if s.Input.MaxLineBytes <= 0 {
		return errors.Newf(errors.ErrConfigLoad, "input.max_line_bytes must be positive, got %d", s.Input.MaxLineBytes).
			WithDetail("key", "input.max_line_bytes")
	}
	return nil
}
