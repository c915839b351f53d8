// Package testutil provides isolated test environments for logpeek tests:
// temporary settings and state directories, file fixtures and rule
// documents.
package testutil
