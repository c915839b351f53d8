package output

import (
	"io"
	"strings"

	"github.com/arthur-debert/logpeek/pkg/errors"
	"github.com/arthur-debert/logpeek/pkg/logging"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Writer is the check sink. Each non-empty rule output is written as one
// block followed by a blank separator line.
type Writer struct {
	out    io.Writer
	errOut io.Writer
	format Format
	styles map[string]lipgloss.Style
}

// NewWriter creates a Writer emitting to out with diagnostics on errOut.
// FormatAuto is treated as FormatText; resolve it with DetectFormat first.
func NewWriter(out, errOut io.Writer, format Format) *Writer {
	w := &Writer{out: out, errOut: errOut, format: format}
	if format == FormatTerminal {
		r := lipgloss.NewRenderer(out)
		// forced color on a pipe still needs a profile
		if r.ColorProfile() == termenv.Ascii {
			r.SetColorProfile(termenv.ANSI256)
		}
		w.styles = DefaultStyleSheet().Build(r)
	}

	logger := logging.GetLogger("output.writer")
	logger.Debug().
		Str("format", format.String()).
		Msg("Writer created")
	return w
}

// Format returns the writer's format
func (w *Writer) Format() Format { return w.format }

// Emit writes a rule output block. Empty output writes nothing.
func (w *Writer) Emit(block string) error {
	if block == "" {
		return nil
	}
	if err := w.write(w.out, w.styled(StyleMatch, block)+"\n"); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write output")
	}
	return nil
}

// WriteRaw writes data to the sink without styling
func (w *Writer) WriteRaw(data []byte) error {
	if _, err := w.out.Write(data); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write output")
	}
	return nil
}

// RenderError writes "Error: <err>" to the error stream
func (w *Writer) RenderError(err error) error {
	return w.write(w.errOut, w.styled(StyleError, "Error:")+" "+err.Error()+"\n")
}

// RenderSummary writes a one-line summary to the error stream
func (w *Writer) RenderSummary(text string) error {
	return w.write(w.errOut, w.styled(StyleSummary, text)+"\n")
}

// styled applies a named style to every line of text, leaving newlines
// and empty lines untouched. Text mode returns text as is.
func (w *Writer) styled(name, text string) string {
	style, ok := w.styles[name]
	if !ok {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (w *Writer) write(dst io.Writer, s string) error {
	_, err := io.WriteString(dst, s)
	return err
}
