// Package rules implements logpeek's line classification engine.
//
// A rule set is a Config: an ordered list of Conditions. Each Condition pairs
// a Matcher tree with a Result and an optional else-Condition, forming an
// if / else-if / else chain. Every input line is checked against every
// Condition independently; the non-empty outputs are joined, one per line.
//
// # Matchers
//
// A Matcher wraps a single Predicate (regex, keyword set, expression or a
// constant) plus two lists of child Matchers. Evaluation happens in two passes:
//
//	result = predicate(line) XOR not
//	for each or-branch:  stop once result is true,  else result = result || branch
//	for each and-branch: stop once result is false, else result = result && branch
//
// This is not operator precedence. The OR pass always runs before the AND
// pass, so `a OR b AND c` reads as `(a || b) && c`. Rule files depend on this
// order, keep it.
//
// # Results
//
// A Result renders the output text. When the owning Condition enables input
// echo, every `{}` in the message is replaced with the raw input line.
//
// # Documents
//
// Rule sets serialize to JSON, YAML or TOML with the same shape:
//
//	{"conditions": [{
//	    "if_match": {"kind": {"Re": {"expr": "error"}}, "or": [], "and": [], "not": false},
//	    "then": {"Basic": {"message": "E: {}"}},
//	    "output_input": true,
//	    "else_then": null
//	}]}
//
// Patterns compile lazily, on the first evaluation that reaches them. A bad
// pattern in an unreached else-branch only fails once a line gets there; use
// Validate to check a whole tree up front.
package rules
