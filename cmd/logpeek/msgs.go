package logpeek

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Filter log lines through a tree of regex rules"
	MsgValidateShort   = "Compile every pattern of a rule set"
	MsgShowShort       = "Print the active rule set"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgNoInputFile = "reading from stdin"

	// Error messages
	MsgErrTooManyArgs = "expected at most one input file, got %d"
	MsgErrFlags       = "invalid flags"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagSettings   = "Settings file (default $XDG_CONFIG_HOME/logpeek/config.toml)"
	MsgFlagColor      = "Color emitted lines: auto, always or never"
	MsgFlagConfigFile = "Rule document (.json, .yaml, .yml or .toml)"
	MsgFlagJSON       = "Inline JSON rule document"
	MsgFlagRegex      = "Pattern of the single rule"
	MsgFlagNot        = "Negate the single rule"
	MsgFlagOutput     = "Output template of the single rule"
	MsgFlagPrintInput = "Replace {} in the output template with the input line"
	MsgFlagPrintJSON  = "Print the active rule set as JSON after processing"
	MsgFlagStrict     = "Compile every pattern before reading input"
	MsgFlagStats      = "Print a summary of lines read and matched to stderr"
	MsgFlagFormat     = "Output format: json, yaml, toml or tree"
	MsgFlagPretty     = "Indent JSON output"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimSpace(msgRootExampleRaw)

	//go:embed msgs/validate-long.txt
	msgValidateLongRaw string
	MsgValidateLong    = strings.TrimSpace(msgValidateLongRaw)

	//go:embed msgs/show-long.txt
	msgShowLongRaw string
	MsgShowLong    = strings.TrimSpace(msgShowLongRaw)

	//go:embed msgs/show-example.txt
	msgShowExampleRaw string
	MsgShowExample    = strings.TrimSpace(msgShowExampleRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
