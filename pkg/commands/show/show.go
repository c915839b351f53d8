package show

import (
	"github.com/arthur-debert/logpeek/pkg/errors"
	"github.com/arthur-debert/logpeek/pkg/logging"
	"github.com/arthur-debert/logpeek/pkg/output"
	"github.com/arthur-debert/logpeek/pkg/rules"
)

// FormatTree renders the rule set as a tree instead of a document
const FormatTree = "tree"

// Options defines the options for the Show command.
type Options struct {
	// Config is the rule set to print.
	Config rules.Config
	// Format is json, yaml, toml or tree.
	Format string
	// Pretty indents JSON output.
	Pretty bool
	// Color styles the tree.
	Color bool
}

// Show renders opts.Config. Documents end with a newline and decode back
// to the same rule set.
func Show(opts Options) ([]byte, error) {
	log := logging.GetLogger("commands.show")
	log.Debug().Str("command", "Show").Str("format", opts.Format).Msg("Executing command")

	if opts.Format == FormatTree {
		tree, err := output.RenderTree(opts.Config, opts.Color)
		if err != nil {
			return nil, err
		}
		return []byte(tree), nil
	}

	format, err := rules.ParseFormat(opts.Format)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "show")
	}

	data, err := rules.Encode(opts.Config, format, opts.Pretty)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data, nil
}
