package testutil

import (
	"fmt"
	"strconv"
	"strings"
)

// RuleJSON returns a one-condition rule document: a regex rule with the
// given negation, output and echo flags
func RuleJSON(pattern string, not bool, message string, echo bool) string {
	return fmt.Sprintf(`{"if_match":{"kind":{"Re":{"expr":%s}},"or":[],"and":[],"not":%t},"then":{"Basic":{"message":%s}},"output_input":%t,"else_then":null}`,
		strconv.Quote(pattern), not, strconv.Quote(message), echo)
}

// ConfigJSON wraps conditions built with RuleJSON into a rule document
func ConfigJSON(conditions ...string) string {
	return `{"conditions":[` + strings.Join(conditions, ",") + `]}`
}
