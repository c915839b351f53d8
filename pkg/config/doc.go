// Package config handles the tool settings for logpeek.
// Settings are layered from embedded defaults, a user settings file,
// LOGPEEK_* environment variables and command-line overrides. Rule trees
// are not settings; they are loaded by package ruleset.
package config
