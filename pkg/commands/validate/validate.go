package validate

import (
	"fmt"

	"github.com/arthur-debert/logpeek/pkg/logging"
	"github.com/arthur-debert/logpeek/pkg/rules"
)

// Options defines the options for the Validate command.
type Options struct {
	// Config is the rule set to check.
	Config rules.Config
}

// Result describes a rule set that compiled cleanly
type Result struct {
	Stats rules.Stats
}

// Message is the line printed for a valid rule set
func (r Result) Message() string {
	return fmt.Sprintf("ok: %d conditions, %d predicates", r.Stats.Conditions, r.Stats.Patterns)
}

// Validate compiles every pattern of opts.Config, including else-branches
// no input line may reach. The error names the failing node.
func Validate(opts Options) (*Result, error) {
	log := logging.GetLogger("commands.validate")
	log.Debug().Str("command", "Validate").Msg("Executing command")
	defer logging.LogOperationStart(log, "validate rules")()

	if err := rules.Validate(opts.Config); err != nil {
		log.Debug().Err(err).Msg("Validation failed")
		return nil, err
	}

	result := &Result{Stats: rules.Summarize(opts.Config)}
	log.Info().
		Str("command", "Validate").
		Int("conditions", result.Stats.Conditions).
		Int("matchers", result.Stats.Matchers).
		Msg("Command finished")
	return result, nil
}
