// Package output writes check results to the sink and renders rule sets
// for humans.
//
// The sink is the only consumer of stdout. In Text mode the Writer emits
// the exact bytes produced by the rule engine; in Terminal mode each line
// is styled with lipgloss using the embedded style sheet (styles.yaml).
// Diagnostics go to the error stream.
package output
