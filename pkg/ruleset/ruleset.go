// Package ruleset builds the active rules.Config from command-line sources.
package ruleset

import (
	"os"

	"github.com/arthur-debert/logpeek/pkg/errors"
	"github.com/arthur-debert/logpeek/pkg/logging"
	"github.com/arthur-debert/logpeek/pkg/rules"
)

// Origin names where a Config came from
type Origin string

const (
	OriginFile        Origin = "file"
	OriginJSON        Origin = "json"
	OriginDefaultFile Origin = "default-file"
	OriginFlags       Origin = "flags"
)

// Source holds every way a rule set can be given. The first non-empty of
// ConfigFile, JSON and DefaultFile wins; otherwise the single rule is
// built from Regex, Not, Output and PrintInput.
type Source struct {
	ConfigFile  string
	JSON        string
	Regex       string
	Not         bool
	Output      string
	PrintInput  bool
	DefaultFile string
}

// Origin reports which field of s Load will use
func (s Source) Origin() Origin {
	switch {
	case s.ConfigFile != "":
		return OriginFile
	case s.JSON != "":
		return OriginJSON
	case s.DefaultFile != "":
		return OriginDefaultFile
	default:
		return OriginFlags
	}
}

// Load builds the Config described by s. Unreadable files are FILE_ACCESS
// errors and undecodable documents CONFIG_PARSE errors. Patterns are not
// compiled here.
func Load(s Source) (rules.Config, error) {
	logger := logging.GetLogger("ruleset")
	origin := s.Origin()
	logger.Debug().Str("origin", string(origin)).Msg("Loading rules")

	switch origin {
	case OriginFile:
		return LoadFile(s.ConfigFile)
	case OriginJSON:
		return rules.Decode([]byte(s.JSON), rules.FormatJSON)
	case OriginDefaultFile:
		return LoadFile(s.DefaultFile)
	default:
		return rules.NewSingleRule(s.Regex, s.Not, s.Output, s.PrintInput), nil
	}
}

// LoadFile reads a rule document, picking the format from the extension
func LoadFile(path string) (rules.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rules.Config{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot read rule file %s", path).
			WithDetail("path", path)
	}

	cfg, err := rules.Decode(data, rules.FormatForPath(path))
	if err != nil {
		return rules.Config{}, errors.Locate(err, "rule file "+path, "path", path)
	}

	logger := logging.GetLogger("ruleset")
	logger.Debug().
		Str("path", path).
		Int("conditions", cfg.Len()).
		Msg("Rule file loaded")
	return cfg, nil
}
