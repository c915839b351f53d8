package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/logpeek/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a rule document encoding
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

// String returns the name of the format
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return FormatJSON, errors.Newf(errors.ErrInvalidInput, "unknown rule document format: %s", s)
	}
}

// FormatForPath picks the format from a file extension, JSON by default
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Decode parses a rule document. YAML and TOML documents have the same
// shape as JSON ones. Any failure is a CONFIG_PARSE error.
func Decode(data []byte, format Format) (Config, error) {
	jsonData, err := toJSON(data, format)
	if err != nil {
		return Config{}, errors.Wrapf(err, errors.ErrConfigParse, "malformed %s rule document", format)
	}

	trimmed := bytes.TrimSpace(jsonData)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Config{}, errors.Newf(errors.ErrConfigParse, "empty %s rule document", format)
	}

	var cfg Config
	if err := json.Unmarshal(trimmed, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, errors.ErrConfigParse, "malformed %s rule document", format)
	}
	return cfg, nil
}

// Encode serializes cfg. Decoding the output yields an identical Config.
func Encode(cfg Config, format Format, pretty bool) ([]byte, error) {
	data, err := marshalJSON(cfg, pretty && format == FormatJSON)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode rule document")
	}

	switch format {
	case FormatJSON:
		return data, nil
	case FormatYAML, FormatTOML:
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode rule document")
		}
		var out []byte
		if format == FormatYAML {
			out, err = yaml.Marshal(doc)
		} else {
			// TOML has no null
			out, err = toml.Marshal(dropNulls(doc))
		}
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "failed to encode %s rule document", format)
		}
		return out, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown rule document format %d", int(format))
	}
}

func toJSON(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return data, nil
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return json.Marshal(doc)
	case FormatTOML:
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return json.Marshal(doc)
	default:
		return nil, fmt.Errorf("unknown format %d", int(format))
	}
}

// marshalJSON encodes v without HTML escaping so patterns such as `a<b&c`
// read back exactly as written.
func marshalJSON(v any, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func dropNulls(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if child == nil {
				delete(t, k)
				continue
			}
			t[k] = dropNulls(child)
		}
		return t
	case []any:
		for i, child := range t {
			t[i] = dropNulls(child)
		}
		return t
	default:
		return v
	}
}

// Wire format. Variants are externally tagged: unit variants are bare
// strings, variants with data are single key objects.

// fields holds the members of a JSON object. Lookups are exact:
// encoding/json matches struct tags case insensitively, rule documents
// do not.
type fields map[string]json.RawMessage

func decodeFields(data []byte, what string) (fields, error) {
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s must be an object: %w", what, err)
	}
	return f, nil
}

// get decodes the member named key into v. Absent members leave v untouched.
func (f fields) get(key string, v any) error {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("field `%s`: %w", key, err)
	}
	return nil
}

type exprBody struct {
	Expr string `json:"expr"`
}

type keywordsBody struct {
	Words           []string `json:"words"`
	CaseInsensitive bool     `json:"case_insensitive"`
}

// MarshalJSON implements json.Marshaler
func (p Predicate) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case KindAlwaysTrue, KindAlwaysFalse:
		return marshalJSON(p.kind.String(), false)
	case KindRegex, KindExpr:
		return marshalJSON(map[string]exprBody{p.kind.String(): {Expr: p.pattern}}, false)
	case KindKeywords:
		words := p.words
		if words == nil {
			words = []string{}
		}
		return marshalJSON(map[string]keywordsBody{p.kind.String(): {Words: words, CaseInsensitive: p.caseInsensitive}}, false)
	default:
		return nil, fmt.Errorf("unknown predicate kind %d", int(p.kind))
	}
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Predicate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("predicate kind must not be null")
	}

	if len(data) > 0 && data[0] == '"' {
		var tag string
		if err := json.Unmarshal(data, &tag); err != nil {
			return err
		}
		switch tag {
		case KindAlwaysTrue.String():
			*p = AlwaysTrue()
		case KindAlwaysFalse.String():
			*p = AlwaysFalse()
		case KindRegex.String(), KindKeywords.String(), KindExpr.String():
			return fmt.Errorf("predicate kind %q needs a body", tag)
		default:
			return fmt.Errorf("unknown predicate kind %q", tag)
		}
		return nil
	}

	var variants map[string]json.RawMessage
	if err := json.Unmarshal(data, &variants); err != nil {
		return fmt.Errorf("predicate kind must be a string or an object: %w", err)
	}
	if len(variants) != 1 {
		return fmt.Errorf("predicate kind must have exactly one variant, got %d", len(variants))
	}

	for tag, body := range variants {
		switch tag {
		case KindRegex.String(), KindExpr.String():
			f, err := decodeFields(body, fmt.Sprintf("predicate %q", tag))
			if err != nil {
				return err
			}
			var expr *string
			if err := f.get("expr", &expr); err != nil {
				return fmt.Errorf("predicate %q: %w", tag, err)
			}
			if expr == nil {
				return fmt.Errorf("predicate %q: missing field `expr`", tag)
			}
			if tag == KindRegex.String() {
				*p = NewRegex(*expr)
			} else {
				*p = NewExpr(*expr)
			}
		case KindKeywords.String():
			f, err := decodeFields(body, fmt.Sprintf("predicate %q", tag))
			if err != nil {
				return err
			}
			var words *[]string
			var caseInsensitive bool
			if err := f.get("words", &words); err != nil {
				return fmt.Errorf("predicate %q: %w", tag, err)
			}
			if err := f.get("case_insensitive", &caseInsensitive); err != nil {
				return fmt.Errorf("predicate %q: %w", tag, err)
			}
			if words == nil {
				return fmt.Errorf("predicate %q: missing field `words`", tag)
			}
			*p = NewKeywords(*words, caseInsensitive)
		case KindAlwaysTrue.String():
			*p = AlwaysTrue()
		case KindAlwaysFalse.String():
			*p = AlwaysFalse()
		default:
			return fmt.Errorf("unknown predicate kind %q", tag)
		}
	}
	return nil
}

type matcherWire struct {
	Kind Predicate `json:"kind"`
	Or   []Matcher `json:"or"`
	And  []Matcher `json:"and"`
	Not  bool      `json:"not"`
}

// MarshalJSON implements json.Marshaler
func (m Matcher) MarshalJSON() ([]byte, error) {
	w := matcherWire{Kind: m.predicate, Or: m.or, And: m.and, Not: m.not}
	if w.Or == nil {
		w.Or = []Matcher{}
	}
	if w.And == nil {
		w.And = []Matcher{}
	}
	return marshalJSON(w, false)
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Matcher) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data, "matcher")
	if err != nil {
		return err
	}
	var kind *Predicate
	var or, and []Matcher
	var not bool
	if err := f.get("kind", &kind); err != nil {
		return fmt.Errorf("matcher: %w", err)
	}
	if kind == nil {
		return fmt.Errorf("matcher: missing field `kind`")
	}
	if err := f.get("or", &or); err != nil {
		return fmt.Errorf("matcher: %w", err)
	}
	if err := f.get("and", &and); err != nil {
		return fmt.Errorf("matcher: %w", err)
	}
	if err := f.get("not", &not); err != nil {
		return fmt.Errorf("matcher: %w", err)
	}
	*m = NewMatcher(*kind, or, and, not)
	return nil
}

type messageBody struct {
	Message string `json:"message"`
}

// MarshalJSON implements json.Marshaler
func (r Result) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case ResultBasic:
		return marshalJSON(map[string]messageBody{r.kind.String(): {Message: r.message}}, false)
	default:
		return nil, fmt.Errorf("unknown result kind %d", int(r.kind))
	}
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Result) UnmarshalJSON(data []byte) error {
	var variants map[string]json.RawMessage
	if err := json.Unmarshal(data, &variants); err != nil {
		return fmt.Errorf("result must be an object: %w", err)
	}
	if len(variants) != 1 {
		return fmt.Errorf("result must have exactly one variant, got %d", len(variants))
	}
	for tag, body := range variants {
		if tag != ResultBasic.String() {
			return fmt.Errorf("unknown result kind %q", tag)
		}
		f, err := decodeFields(body, fmt.Sprintf("result %q", tag))
		if err != nil {
			return err
		}
		var message *string
		if err := f.get("message", &message); err != nil {
			return fmt.Errorf("result %q: %w", tag, err)
		}
		if message == nil {
			return fmt.Errorf("result %q: missing field `message`", tag)
		}
		*r = NewBasicResult(*message)
	}
	return nil
}

type conditionWire struct {
	IfMatch     Matcher    `json:"if_match"`
	Then        Result     `json:"then"`
	OutputInput bool       `json:"output_input"`
	ElseThen    *Condition `json:"else_then"`
}

// MarshalJSON implements json.Marshaler
func (c Condition) MarshalJSON() ([]byte, error) {
	return marshalJSON(conditionWire{
		IfMatch:     c.rule,
		Then:        c.then,
		OutputInput: c.echoInput,
		ElseThen:    c.otherwise,
	}, false)
}

// UnmarshalJSON implements json.Unmarshaler
func (c *Condition) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data, "condition")
	if err != nil {
		return err
	}
	var ifMatch *Matcher
	var then *Result
	var outputInput *bool
	var elseThen *Condition
	for _, field := range []struct {
		key string
		dst any
	}{
		{"if_match", &ifMatch},
		{"then", &then},
		{"output_input", &outputInput},
		{"else_then", &elseThen},
	} {
		if err := f.get(field.key, field.dst); err != nil {
			return fmt.Errorf("condition: %w", err)
		}
	}
	switch {
	case ifMatch == nil:
		return fmt.Errorf("condition: missing field `if_match`")
	case then == nil:
		return fmt.Errorf("condition: missing field `then`")
	case outputInput == nil:
		return fmt.Errorf("condition: missing field `output_input`")
	}
	*c = Condition{
		rule:      *ifMatch,
		then:      *then,
		echoInput: *outputInput,
		otherwise: elseThen,
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (c Config) MarshalJSON() ([]byte, error) {
	conditions := c.conditions
	if conditions == nil {
		conditions = []Condition{}
	}
	return marshalJSON(struct {
		Conditions []Condition `json:"conditions"`
	}{conditions}, false)
}

// UnmarshalJSON implements json.Unmarshaler
func (c *Config) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data, "config")
	if err != nil {
		return err
	}
	var conditions *[]Condition
	if err := f.get("conditions", &conditions); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if conditions == nil {
		return fmt.Errorf("config: missing field `conditions`")
	}
	*c = NewConfig(*conditions...)
	return nil
}
