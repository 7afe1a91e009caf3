package utils

import (
	"strings"
)

// EscapeString escapes a value for use inside a single-quoted DuckDB string
// literal. DuckDB follows the SQL standard: a quote inside a literal is
// doubled.
func EscapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// EscapeIdentifier quotes a DuckDB identifier, doubling any embedded
// double quotes.
func EscapeIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
