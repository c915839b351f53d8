package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/logpeek/pkg/errors"
	"github.com/arthur-debert/logpeek/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides: LOGPEEK_OUTPUT_COLOR sets output.color
const EnvPrefix = "LOGPEEK_"

// LoadOptions selects the optional layers of Load
type LoadOptions struct {
	// SettingsFile replaces the user settings file lookup when set
	SettingsFile string
	// Overrides are applied last, keyed by dotted path ("output.color")
	Overrides map[string]interface{}
}

// Load builds Settings from, in increasing precedence: embedded defaults,
// the user settings file, LOGPEEK_* environment variables and overrides.
func Load(opts LoadOptions) (*Settings, error) {
	logger := logging.GetLogger("config.loader")
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default settings")
	}

	// 2. User settings file
	path := opts.SettingsFile
	if path == "" {
		path = findUserSettings()
	} else if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "settings file %s", path).
			WithDetail("path", path)
	}
	if path != "" {
		logger.Debug().Str("path", path).Msg("Loading settings file")
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load settings from %s", path).
				WithDetail("path", path)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				stringToColorModeHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal settings")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	logger.Trace().
		Str("color", string(s.Output.Color)).
		Str("format", s.Output.Format).
		Bool("strict", s.Rules.Strict).
		Int("maxLineBytes", s.Input.MaxLineBytes).
		Msg("Settings loaded")
	return &s, nil
}

// envKey maps LOGPEEK_RULES_DEFAULT_FILE to rules.default_file. Only the
// first underscore separates the section from the key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, name, ok := strings.Cut(key, "_")
	if !ok || name == "" {
		return ""
	}
	return section + "." + name
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// SettingsDir returns the directory holding the user settings file
func SettingsDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "logpeek")
	}
	return filepath.Join(xdg.ConfigHome, "logpeek")
}

func findUserSettings() string {
	dir := SettingsDir()
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func stringToColorModeHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() == reflect.String && t == reflect.TypeOf(ColorMode("")) {
			return ColorMode(strings.ToLower(strings.TrimSpace(reflect.ValueOf(data).String()))), nil
		}
		return data, nil
	}
}
