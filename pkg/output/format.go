package output

import (
	"os"
	"strings"

	"github.com/arthur-debert/logpeek/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the output format type
type Format int

const (
	// FormatAuto detects the format from the terminal capabilities
	FormatAuto Format = iota
	// FormatTerminal styles emitted lines with colors
	FormatTerminal
	// FormatText emits the rule output bytes unchanged
	FormatText
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s)
	}
}

// DetectFormat determines the output format from the environment and the
// terminal behind output
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	// piped or redirected
	if output == nil || (!isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd())) {
		return FormatText
	}

	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}

	return FormatTerminal
}

// ForColor maps a --color value (auto, always, never) to a Format
func ForColor(mode string, output *os.File) (Format, error) {
	switch strings.ToLower(mode) {
	case "auto", "":
		return DetectFormat(output), nil
	case "always":
		return FormatTerminal, nil
	case "never":
		return FormatText, nil
	default:
		return FormatText, errors.Newf(errors.ErrInvalidInput, "invalid color mode %q (want auto, always or never)", mode)
	}
}
