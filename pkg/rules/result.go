package rules

import "strings"

// InputPlaceholder is replaced with the input line when echo is enabled
const InputPlaceholder = "{}"

// ResultKind tags the variant held by a Result
type ResultKind int

const (
	// ResultBasic renders a static message
	ResultBasic ResultKind = iota
)

// String returns the tag used for the kind in rule documents
func (k ResultKind) String() string {
	switch k {
	case ResultBasic:
		return "Basic"
	default:
		return "Unknown"
	}
}

// Result produces the output text of a matched Condition
type Result struct {
	kind    ResultKind
	message string
}

// NewBasicResult returns a Result rendering message
func NewBasicResult(message string) Result {
	return Result{kind: ResultBasic, message: message}
}

// Kind returns the variant tag
func (r Result) Kind() ResultKind { return r.kind }

// Message returns the raw message template
func (r Result) Message() string { return r.message }

// Render returns the output for line. With echo set, every literal `{}`
// in the message is replaced by line verbatim.
func (r Result) Render(line string, echo bool) string {
	switch r.kind {
	case ResultBasic:
		if echo {
			return strings.ReplaceAll(r.message, InputPlaceholder, line)
		}
		return r.message
	default:
		return ""
	}
}
