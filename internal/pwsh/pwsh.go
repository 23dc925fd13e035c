// Package pwsh builds PowerShell command text safely from untrusted strings.
package pwsh

import (
	"encoding/base64"
	"strings"
	"unicode/utf16"
)

// Quote returns s as a single-quoted PowerShell literal. Nothing inside a
// single-quoted string is expanded; embedded quotes are doubled.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// QuoteList quotes each item and joins them with commas, forming a
// PowerShell array literal.
func QuoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = Quote(item)
	}
	return strings.Join(quoted, ",")
}

// EncodeCommand produces the argument for powershell -EncodedCommand:
// base64 of the UTF-16LE script.
func EncodeCommand(script string) string {
	units := utf16.Encode([]rune(script))
	buf := make([]byte, 2*len(units))
	for i, u := range units {
		buf[2*i] = byte(u)
		buf[2*i+1] = byte(u >> 8)
	}
	return base64.StdEncoding.EncodeToString(buf)
}
