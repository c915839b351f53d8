package check

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/arthur-debert/logpeek/pkg/errors"
	"github.com/arthur-debert/logpeek/pkg/logging"
	"github.com/arthur-debert/logpeek/pkg/output"
	"github.com/arthur-debert/logpeek/pkg/rules"
	"github.com/dustin/go-humanize"
)

// DefaultMaxLineBytes is the longest line accepted when Options leaves it unset
const DefaultMaxLineBytes = 1 << 20

// Options defines the options for the Run command.
type Options struct {
	// Config is the rule set applied to every line.
	Config rules.Config
	// Input provides the lines. Line terminators are "\n" or "\r\n".
	Input io.Reader
	// Path is passed to every Check as the path tag. Empty for stdin.
	Path string
	// Writer receives the rule output.
	Writer *output.Writer
	// MaxLineBytes bounds the line buffer.
	MaxLineBytes int
	// Strict compiles every pattern before reading input.
	Strict bool
	// PrintJSON writes the rule set as JSON after the input is consumed.
	PrintJSON bool
}

// Result reports what a Run did
type Result struct {
	Lines    int
	Matched  int
	Duration time.Duration
}

// Summary formats r for the --stats line
func (r Result) Summary() string {
	return fmt.Sprintf("%s %s read, %s matched in %s",
		humanize.Comma(int64(r.Lines)),
		plural(r.Lines, "line", "lines"),
		humanize.Comma(int64(r.Matched)),
		r.Duration.Round(time.Microsecond),
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Run checks every line of opts.Input against opts.Config and writes each
// non-empty output through opts.Writer. The first error stops the run;
// output already written for earlier lines stays written.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := logging.GetLogger("commands.check")
	log.Debug().Str("command", "Check").Str("path", opts.Path).Msg("Executing command")
	start := time.Now()

	if opts.Strict {
		if err := rules.Validate(opts.Config); err != nil {
			return nil, err
		}
	}

	maxLine := opts.MaxLineBytes
	if maxLine <= 0 {
		maxLine = DefaultMaxLineBytes
	}
	scanner := bufio.NewScanner(opts.Input)
	scanner.Buffer(make([]byte, 0, min(64*1024, maxLine)), maxLine)

	result := &Result{}
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return result, errors.Wrap(err, errors.ErrInternal, "check cancelled")
		}

		result.Lines++
		line := scanner.Text()

		out, err := opts.Config.Check(line, opts.Path)
		if err != nil {
			log.Debug().Int("line", result.Lines).Err(err).Msg("Line check failed")
			return result, errors.Locate(err, fmt.Sprintf("line %d", result.Lines), "line", result.Lines)
		}
		if out == "" {
			continue
		}
		result.Matched++
		if err := opts.Writer.Emit(out); err != nil {
			return result, err
		}
	}
	if err := scanner.Err(); err != nil {
		if err == bufio.ErrTooLong {
			return result, errors.Wrapf(err, errors.ErrInvalidInput, "line %d exceeds %d bytes", result.Lines+1, maxLine).
				WithDetail("line", result.Lines+1)
		}
		return result, errors.Wrap(err, errors.ErrFileAccess, "failed to read input")
	}

	if opts.PrintJSON {
		data, err := rules.Encode(opts.Config, rules.FormatJSON, false)
		if err != nil {
			return result, err
		}
		if err := opts.Writer.WriteRaw(append(data, '\n')); err != nil {
			return result, err
		}
	}

	result.Duration = time.Since(start)
	log.Info().
		Str("command", "Check").
		Int("lines", result.Lines).
		Int("matched", result.Matched).
		Dur("duration", result.Duration).
		Msg("Command finished")
	return result, nil
}

// OpenInput opens path for reading, or returns stdin when path is empty
func OpenInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot open input %s", path).
			WithDetail("path", path)
	}
	return f, nil
}
