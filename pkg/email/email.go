// Package email holds helpers for addressing outgoing mail.
package email

import (
	"strings"
	"unicode"
)

// DisplayName returns name when present, otherwise a readable name derived
// from the local part of addr ("jane.doe@x" -> "Jane Doe").
func DisplayName(name, addr string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}

	local := addr
	if at := strings.IndexByte(addr, '@'); at > 0 {
		local = addr[:at]
	}
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "Applicant"
	}
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

// FirstName returns the first word of a display name.
func FirstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
