package main

// Default limits for CLI commands.
const (
	DefaultHistoryLimit = 20
)

// Valid output formats.
var validFormats = []string{"text", "json", "csv", "markdown"}
