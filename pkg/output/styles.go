package output

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// Style names used by the Writer
const (
	StyleMatch   = "match"
	StyleError   = "error"
	StyleSummary = "summary"
	StyleRule    = "rule"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// StyleSheet represents the complete styles configuration
type StyleSheet struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// ParseStyleSheet parses a YAML style sheet
func ParseStyleSheet(data []byte) (*StyleSheet, error) {
	var sheet StyleSheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("failed to parse style sheet: %w", err)
	}
	for name, def := range sheet.Styles {
		for _, ref := range []string{def.Foreground, def.Background} {
			if ref == "" {
				continue
			}
			if _, ok := sheet.Colors[ref]; !ok {
				return nil, fmt.Errorf("style %q uses undefined color %q", name, ref)
			}
		}
	}
	return &sheet, nil
}

// DefaultStyleSheet returns the embedded style sheet
func DefaultStyleSheet() *StyleSheet {
	sheet, err := ParseStyleSheet(defaultStyles)
	if err != nil {
		panic(fmt.Sprintf("embedded styles.yaml: %v", err))
	}
	return sheet
}

// Build turns the sheet into lipgloss styles bound to r
func (s *StyleSheet) Build(r *lipgloss.Renderer) map[string]lipgloss.Style {
	registry := make(map[string]lipgloss.Style, len(s.Styles))
	for name, def := range s.Styles {
		registry[name] = s.buildStyle(r, def)
	}
	return registry
}

func (s *StyleSheet) buildStyle(r *lipgloss.Renderer, def StyleDef) lipgloss.Style {
	style := r.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}

	if c, ok := s.Colors[def.Foreground]; ok {
		style = style.Foreground(lipgloss.AdaptiveColor{Light: c.Light, Dark: c.Dark})
	}
	if c, ok := s.Colors[def.Background]; ok {
		style = style.Background(lipgloss.AdaptiveColor{Light: c.Light, Dark: c.Dark})
	}

	return style
}
